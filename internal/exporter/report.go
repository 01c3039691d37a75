package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"retailcli/internal/intelligence"
)

// ReportFileName is the default workbook name
const ReportFileName = "customer_analytics.xlsx"

// ReportBuilder assembles a multi-sheet Excel workbook from the derived
// tables, one sheet per table, for readers who want the numbers without
// running the pipeline themselves.
type ReportBuilder struct {
	outDir string
}

// NewReportBuilder creates a report builder rooted at the output directory
func NewReportBuilder(outDir string) *ReportBuilder {
	return &ReportBuilder{outDir: outDir}
}

// Build writes the workbook and returns its path
func (b *ReportBuilder) Build(
	profiles []intelligence.RFMProfile,
	matrix *intelligence.RetentionMatrix,
	clv []intelligence.CLVRecord,
	pareto *intelligence.ParetoRank,
	segments []intelligence.SegmentSummary,
	countries []intelligence.CountrySummary,
) (string, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", "RFM")
	setRow(f, "RFM", 1, "CustomerID", "RecencyDays", "Frequency", "Monetary", "RScore", "FScore", "MScore", "Segment")
	for i, p := range profiles {
		setRow(f, "RFM", i+2, p.CustomerID, p.RecencyDays, p.Frequency, p.Monetary, p.RScore, p.FScore, p.MScore, p.Segment)
	}

	f.NewSheet("Retention")
	setRow(f, "Retention", 1, "CohortMonth", "PeriodIndex", "Customers", "RetentionRatio")
	row := 2
	for i, cohort := range matrix.CohortMonths {
		for period, cellValue := range matrix.Cells[i] {
			setRow(f, "Retention", row, cohort.Format("2006-01"), period, cellValue.Customers, cellValue.Ratio)
			row++
		}
	}

	f.NewSheet("CLV")
	setRow(f, "CLV", 1, "CustomerID", "AvgOrderValue", "Frequency", "LifespanMonths", "CLV")
	for i, r := range clv {
		setRow(f, "CLV", i+2, r.CustomerID, r.AvgOrderValue, r.Frequency, r.LifespanMonths, r.CLV)
	}

	f.NewSheet("Pareto")
	setRow(f, "Pareto", 1, "Rank", "CustomerID", "Revenue", "CumRevenueShare", "CumCustomerShare")
	for i, e := range pareto.Entries {
		setRow(f, "Pareto", i+2, e.Rank, e.CustomerID, e.Revenue, e.CumRevenueShare, e.CumCustomerShare)
	}

	f.NewSheet("Segments")
	setRow(f, "Segments", 1, "Segment", "Customers", "Revenue", "CustomerShare", "RevenueShare")
	for i, s := range segments {
		setRow(f, "Segments", i+2, s.Segment, s.Customers, s.Revenue, s.CustomerShare, s.RevenueShare)
	}

	f.NewSheet("Countries")
	setRow(f, "Countries", 1, "Country", "Customers", "Revenue", "CustomerShare", "RevenueShare")
	for i, s := range countries {
		setRow(f, "Countries", i+2, s.Country, s.Customers, s.Revenue, s.CustomerShare, s.RevenueShare)
	}

	if err := os.MkdirAll(b.outDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(b.outDir, ReportFileName)
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}

	slog.Info("wrote analytics workbook", slog.String("path", path))
	return path, nil
}

// setRow writes one row of cell values starting at column A
func setRow(f *excelize.File, sheet string, row int, values ...interface{}) {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			continue
		}
		f.SetCellValue(sheet, cell, v)
	}
}
