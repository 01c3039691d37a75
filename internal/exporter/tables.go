package exporter

import (
	"fmt"
	"strconv"

	"retailcli/internal/intelligence"
)

// File names for the exported derived tables
const (
	RFMFileName       = "rfm_profiles.csv"
	RetentionFileName = "cohort_retention.csv"
	CLVFileName       = "clv.csv"
	ParetoFileName    = "pareto.csv"
	SegmentFileName   = "segment_summary.csv"
	CountryFileName   = "country_summary.csv"
)

// WriteRFM exports the RFM profile table
func (w *CSVWriter) WriteRFM(profiles []intelligence.RFMProfile) error {
	headers := []string{"CustomerID", "RecencyDays", "Frequency", "Monetary", "RScore", "FScore", "MScore", "Segment"}
	records := make([][]string, len(profiles))
	for i, p := range profiles {
		records[i] = []string{
			p.CustomerID,
			strconv.Itoa(p.RecencyDays),
			strconv.Itoa(p.Frequency),
			formatAmount(p.Monetary),
			strconv.Itoa(p.RScore),
			strconv.Itoa(p.FScore),
			strconv.Itoa(p.MScore),
			p.Segment,
		}
	}
	return w.WriteSimpleCSV(RFMFileName, headers, records)
}

// WriteRetention exports the cohort retention matrix in long form, one row
// per (cohort, period) cell
func (w *CSVWriter) WriteRetention(matrix *intelligence.RetentionMatrix) error {
	headers := []string{"CohortMonth", "PeriodIndex", "Customers", "RetentionRatio"}
	var records [][]string
	for i, cohort := range matrix.CohortMonths {
		for period, cellValue := range matrix.Cells[i] {
			records = append(records, []string{
				cohort.Format("2006-01"),
				strconv.Itoa(period),
				strconv.Itoa(cellValue.Customers),
				strconv.FormatFloat(cellValue.Ratio, 'f', 4, 64),
			})
		}
	}
	return w.WriteSimpleCSV(RetentionFileName, headers, records)
}

// WriteCLV exports the customer lifetime value table
func (w *CSVWriter) WriteCLV(records []intelligence.CLVRecord) error {
	headers := []string{"CustomerID", "AvgOrderValue", "Frequency", "LifespanMonths", "CLV"}
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{
			r.CustomerID,
			formatAmount(r.AvgOrderValue),
			strconv.Itoa(r.Frequency),
			strconv.FormatFloat(r.LifespanMonths, 'f', 2, 64),
			formatAmount(r.CLV),
		}
	}
	return w.WriteSimpleCSV(CLVFileName, headers, rows)
}

// WritePareto exports the revenue concentration ranking
func (w *CSVWriter) WritePareto(rank *intelligence.ParetoRank) error {
	headers := []string{"Rank", "CustomerID", "Revenue", "CumRevenue", "CumRevenueShare", "CumCustomerShare"}
	rows := make([][]string, len(rank.Entries))
	for i, e := range rank.Entries {
		rows[i] = []string{
			strconv.Itoa(e.Rank),
			e.CustomerID,
			formatAmount(e.Revenue),
			formatAmount(e.CumRevenue),
			strconv.FormatFloat(e.CumRevenueShare, 'f', 6, 64),
			strconv.FormatFloat(e.CumCustomerShare, 'f', 6, 64),
		}
	}
	return w.WriteSimpleCSV(ParetoFileName, headers, rows)
}

// WriteSegmentSummary exports the per-segment aggregates
func (w *CSVWriter) WriteSegmentSummary(summaries []intelligence.SegmentSummary) error {
	headers := []string{"Segment", "Customers", "Revenue", "CustomerShare", "RevenueShare"}
	rows := make([][]string, len(summaries))
	for i, s := range summaries {
		rows[i] = []string{
			s.Segment,
			strconv.Itoa(s.Customers),
			formatAmount(s.Revenue),
			strconv.FormatFloat(s.CustomerShare, 'f', 6, 64),
			strconv.FormatFloat(s.RevenueShare, 'f', 6, 64),
		}
	}
	return w.WriteSimpleCSV(SegmentFileName, headers, rows)
}

// WriteCountrySummary exports the per-country aggregates
func (w *CSVWriter) WriteCountrySummary(summaries []intelligence.CountrySummary) error {
	headers := []string{"Country", "Customers", "Revenue", "CustomerShare", "RevenueShare"}
	rows := make([][]string, len(summaries))
	for i, s := range summaries {
		rows[i] = []string{
			s.Country,
			strconv.Itoa(s.Customers),
			formatAmount(s.Revenue),
			strconv.FormatFloat(s.CustomerShare, 'f', 6, 64),
			strconv.FormatFloat(s.RevenueShare, 'f', 6, 64),
		}
	}
	return w.WriteSimpleCSV(CountryFileName, headers, rows)
}

// formatAmount formats a currency amount with two decimal places
func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
