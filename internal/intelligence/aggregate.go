package intelligence

import (
	"sort"

	"retailcli/internal/preprocess"
)

// AggregateBySegment groups the RFM table by segment label. Revenue shares
// are taken against the summed monetary of all profiles, so shares across
// segments sum to one.
func AggregateBySegment(profiles []RFMProfile) []SegmentSummary {
	if len(profiles) == 0 {
		return nil
	}

	type bucket struct {
		customers int
		revenue   float64
	}
	bySegment := make(map[string]*bucket)
	totalRevenue := 0.0
	for _, p := range profiles {
		b, ok := bySegment[p.Segment]
		if !ok {
			b = &bucket{}
			bySegment[p.Segment] = b
		}
		b.customers++
		b.revenue += p.Monetary
		totalRevenue += p.Monetary
	}

	summaries := make([]SegmentSummary, 0, len(bySegment))
	for segment, b := range bySegment {
		s := SegmentSummary{
			Segment:       segment,
			Customers:     b.customers,
			Revenue:       b.revenue,
			CustomerShare: float64(b.customers) / float64(len(profiles)),
		}
		if totalRevenue != 0 {
			s.RevenueShare = b.revenue / totalRevenue
		}
		summaries = append(summaries, s)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Revenue != summaries[j].Revenue {
			return summaries[i].Revenue > summaries[j].Revenue
		}
		return summaries[i].Segment < summaries[j].Segment
	})
	return summaries
}

// AggregateByCountry groups non-cancelled cleaned rows by country: distinct
// customers, total revenue, and both shares against the respective grand
// totals.
func AggregateByCountry(table *preprocess.Table) []CountrySummary {
	if table.Empty() {
		return nil
	}

	type bucket struct {
		customers map[string]struct{}
		revenue   float64
	}
	byCountry := make(map[string]*bucket)
	totalRevenue := 0.0
	totalCustomers := 0

	for _, row := range table.Rows {
		if row.Cancelled {
			continue
		}
		b, ok := byCountry[row.Country]
		if !ok {
			b = &bucket{customers: make(map[string]struct{})}
			byCountry[row.Country] = b
		}
		if row.Attributable() {
			b.customers[row.CustomerID] = struct{}{}
		}
		b.revenue += row.Revenue
		totalRevenue += row.Revenue
	}
	for _, b := range byCountry {
		totalCustomers += len(b.customers)
	}

	summaries := make([]CountrySummary, 0, len(byCountry))
	for country, b := range byCountry {
		s := CountrySummary{
			Country:   country,
			Customers: len(b.customers),
			Revenue:   b.revenue,
		}
		if totalCustomers > 0 {
			s.CustomerShare = float64(len(b.customers)) / float64(totalCustomers)
		}
		if totalRevenue != 0 {
			s.RevenueShare = b.revenue / totalRevenue
		}
		summaries = append(summaries, s)
	}

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Revenue != summaries[j].Revenue {
			return summaries[i].Revenue > summaries[j].Revenue
		}
		return summaries[i].Country < summaries[j].Country
	})
	return summaries
}
