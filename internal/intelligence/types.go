package intelligence

import (
	"time"
)

// Options contains the tunable parameters of the engine. The zero value is
// not usable; construct with DefaultOptions and override as needed.
type Options struct {
	// Quantiles is the number of score buckets per RFM dimension (1..k)
	Quantiles int
	// ReferenceDate is the analysis "now". The zero time means max observed
	// invoice date plus one day.
	ReferenceDate time.Time
	// LifespanMonths is the fixed CLV horizon in months; used only when
	// ObservedLifespan is false
	LifespanMonths int
	// ObservedLifespan derives each customer's lifespan from the span
	// between their first and last transaction instead of a fixed horizon
	ObservedLifespan bool
	// ParetoThreshold is the target cumulative revenue share for the
	// concentration query (canonically 0.8)
	ParetoThreshold float64
}

// DefaultOptions returns engine options matching the documented defaults
func DefaultOptions() Options {
	return Options{
		Quantiles:        5,
		LifespanMonths:   12,
		ObservedLifespan: true,
		ParetoThreshold:  0.8,
	}
}

// RFMProfile is one customer's recency/frequency/monetary profile.
// Every customer with at least one attributable non-cancelled transaction
// has exactly one profile.
type RFMProfile struct {
	CustomerID  string  `json:"customer_id"`
	RecencyDays int     `json:"recency_days"`
	Frequency   int     `json:"frequency"`
	Monetary    float64 `json:"monetary"`
	RScore      int     `json:"r_score"`
	FScore      int     `json:"f_score"`
	MScore      int     `json:"m_score"`
	Segment     string  `json:"segment"`
}

// ScoreKey returns the concatenated R/F/M score string ("543")
func (p RFMProfile) ScoreKey() string {
	return scoreDigit(p.RScore) + scoreDigit(p.FScore) + scoreDigit(p.MScore)
}

func scoreDigit(s int) string {
	return string(rune('0' + s))
}

// CohortCell is one (cohort month, period index) observation
type CohortCell struct {
	Customers int     `json:"customers"`
	Ratio     float64 `json:"ratio"`
}

// RetentionMatrix holds cohort retention, rows ordered by cohort month
// ascending and columns by 0-based period index ascending
type RetentionMatrix struct {
	CohortMonths []time.Time  `json:"cohort_months"`
	Periods      int          `json:"periods"`
	Cells        [][]CohortCell `json:"cells"` // [cohort][period]
}

// Empty reports whether the matrix has no cohorts
func (m *RetentionMatrix) Empty() bool {
	return m == nil || len(m.CohortMonths) == 0
}

// Ratio returns the retention ratio at (cohort, period), or 0 when out of
// range
func (m *RetentionMatrix) Ratio(cohort, period int) float64 {
	if cohort < 0 || cohort >= len(m.Cells) || period < 0 || period >= len(m.Cells[cohort]) {
		return 0
	}
	return m.Cells[cohort][period].Ratio
}

// CLVRecord is one customer's lifetime value estimate
type CLVRecord struct {
	CustomerID     string  `json:"customer_id"`
	AvgOrderValue  float64 `json:"avg_order_value"`
	Frequency      int     `json:"frequency"`
	LifespanMonths float64 `json:"lifespan_months"`
	CLV            float64 `json:"clv"`
}

// ParetoEntry is one rank in the revenue concentration ordering
type ParetoEntry struct {
	Rank               int     `json:"rank"`
	CustomerID         string  `json:"customer_id"`
	Revenue            float64 `json:"revenue"`
	CumRevenue         float64 `json:"cum_revenue"`
	CumRevenueShare    float64 `json:"cum_revenue_share"`
	CumCustomerShare   float64 `json:"cum_customer_share"`
}

// ParetoRank is the full descending-revenue ordering plus the threshold
// query result
type ParetoRank struct {
	Entries []ParetoEntry `json:"entries"`
	// Threshold is the cumulative revenue share target the query below uses
	Threshold float64 `json:"threshold"`
	// ThresholdRank is the size of the minimal customer prefix whose
	// cumulative revenue share reaches the threshold; 0 when Entries is
	// empty
	ThresholdRank int `json:"threshold_rank"`
}

// SegmentSummary aggregates the RFM table per segment label
type SegmentSummary struct {
	Segment       string  `json:"segment"`
	Customers     int     `json:"customers"`
	Revenue       float64 `json:"revenue"`
	CustomerShare float64 `json:"customer_share"`
	RevenueShare  float64 `json:"revenue_share"`
}

// CountrySummary aggregates the cleaned table per country
type CountrySummary struct {
	Country       string  `json:"country"`
	Customers     int     `json:"customers"`
	Revenue       float64 `json:"revenue"`
	CustomerShare float64 `json:"customer_share"`
	RevenueShare  float64 `json:"revenue_share"`
}
