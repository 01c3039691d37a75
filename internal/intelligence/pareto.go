package intelligence

import (
	"sort"

	"retailcli/internal/preprocess"
)

// BuildPareto ranks customers by descending non-cancelled revenue and
// computes cumulative revenue and customer shares. Only customers with
// positive revenue participate; the final cumulative revenue share reaches
// 1.0 exactly by dividing against the same grand total the ranking sums.
func BuildPareto(table *preprocess.Table, threshold float64) *ParetoRank {
	rank := &ParetoRank{Threshold: threshold}
	if table.Empty() {
		return rank
	}

	revenueOf := make(map[string]float64)
	for _, row := range table.Rows {
		if row.Cancelled || !row.Attributable() {
			continue
		}
		revenueOf[row.CustomerID] += row.Revenue
	}

	type customerRevenue struct {
		id      string
		revenue float64
	}
	customers := make([]customerRevenue, 0, len(revenueOf))
	grandTotal := 0.0
	for id, rev := range revenueOf {
		if rev <= 0 {
			continue
		}
		customers = append(customers, customerRevenue{id, rev})
		grandTotal += rev
	}
	if len(customers) == 0 || grandTotal <= 0 {
		return rank
	}

	sort.Slice(customers, func(i, j int) bool {
		if customers[i].revenue != customers[j].revenue {
			return customers[i].revenue > customers[j].revenue
		}
		return customers[i].id < customers[j].id
	})

	rank.Entries = make([]ParetoEntry, len(customers))
	cum := 0.0
	for i, c := range customers {
		cum += c.revenue
		rank.Entries[i] = ParetoEntry{
			Rank:             i + 1,
			CustomerID:       c.id,
			Revenue:          c.revenue,
			CumRevenue:       cum,
			CumRevenueShare:  cum / grandTotal,
			CumCustomerShare: float64(i+1) / float64(len(customers)),
		}
		if rank.ThresholdRank == 0 && rank.Entries[i].CumRevenueShare >= threshold {
			rank.ThresholdRank = i + 1
		}
	}
	// Guard against the threshold never being reached through accumulated
	// float error
	if rank.ThresholdRank == 0 {
		rank.ThresholdRank = len(customers)
	}

	return rank
}
