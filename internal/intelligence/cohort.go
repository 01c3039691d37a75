package intelligence

import (
	"sort"
	"time"

	"retailcli/internal/errors"
	"retailcli/internal/preprocess"
)

// BuildRetention constructs the cohort retention matrix. A customer's cohort
// is the calendar month of their first non-cancelled transaction; the period
// index of an observation is the number of whole months elapsed since that
// cohort month, starting at zero. Each row is normalized by its period-0
// count, so the ratio at period 0 is 1 by construction.
func BuildRetention(table *preprocess.Table, diags *errors.Diagnostics) *RetentionMatrix {
	matrix := &RetentionMatrix{}
	if table.Empty() {
		return matrix
	}

	// First transaction month per customer
	cohortOf := make(map[string]time.Time)
	for _, row := range table.Rows {
		if row.Cancelled || !row.Attributable() {
			continue
		}
		if first, ok := cohortOf[row.CustomerID]; !ok || row.YearMonth.Before(first) {
			cohortOf[row.CustomerID] = row.YearMonth
		}
	}
	if len(cohortOf) == 0 {
		return matrix
	}

	// Distinct active customers per (cohort month, period index)
	type cellKey struct {
		cohort time.Time
		period int
	}
	active := make(map[cellKey]map[string]struct{})
	maxPeriod := 0
	for _, row := range table.Rows {
		if row.Cancelled || !row.Attributable() {
			continue
		}
		cohort := cohortOf[row.CustomerID]
		period := preprocess.MonthDiff(cohort, row.YearMonth)
		if period < 0 {
			continue
		}
		if period > maxPeriod {
			maxPeriod = period
		}
		key := cellKey{cohort, period}
		if active[key] == nil {
			active[key] = make(map[string]struct{})
		}
		active[key][row.CustomerID] = struct{}{}
	}

	// Ordered cohort months
	seen := make(map[time.Time]struct{})
	for _, cohort := range cohortOf {
		seen[cohort] = struct{}{}
	}
	months := make([]time.Time, 0, len(seen))
	for m := range seen {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	matrix.Periods = maxPeriod + 1
	for _, cohort := range months {
		base := len(active[cellKey{cohort, 0}])
		if base == 0 {
			// A cohort without period-0 activity cannot be normalized
			if diags != nil {
				diags.Record(errors.DivisionGuardError(cohort.Format("2006-01")))
			}
			continue
		}
		row := make([]CohortCell, matrix.Periods)
		for period := 0; period < matrix.Periods; period++ {
			count := len(active[cellKey{cohort, period}])
			row[period] = CohortCell{
				Customers: count,
				Ratio:     float64(count) / float64(base),
			}
		}
		matrix.CohortMonths = append(matrix.CohortMonths, cohort)
		matrix.Cells = append(matrix.Cells, row)
	}

	return matrix
}
