package intelligence

import (
	"log/slog"
	"sort"
	"time"

	"retailcli/internal/errors"
	"retailcli/internal/preprocess"
)

// DefaultSegment is assigned to score combinations without a mapping
const DefaultSegment = "Other"

// segmentRule maps an inclusive R/F score rectangle to a segment label
type segmentRule struct {
	rLo, rHi, fLo, fHi int
	label              string
}

// segmentRules is the fixed R×F grid used for segment labels. First match
// wins. The grid covers every combination for the default five quantiles;
// anything outside it falls back to DefaultSegment.
var segmentRules = []segmentRule{
	{1, 2, 1, 2, "Lost"},
	{1, 2, 3, 4, "At risk"},
	{1, 2, 5, 5, "Can't lose"},
	{3, 3, 1, 2, "About to sleep"},
	{3, 3, 3, 3, "Need attention"},
	{4, 4, 1, 1, "Promising"},
	{3, 4, 4, 5, "Loyal customer"},
	{5, 5, 1, 1, "New customers"},
	{4, 5, 2, 3, "Potential Loyalist"},
	{5, 5, 4, 5, "Champion"},
}

// segmentFor resolves the segment label for an R/F score pair
func segmentFor(r, f int) (string, bool) {
	for _, rule := range segmentRules {
		if r >= rule.rLo && r <= rule.rHi && f >= rule.fLo && f <= rule.fHi {
			return rule.label, true
		}
	}
	return DefaultSegment, false
}

// BuildRFM computes one RFM profile per customer with at least one
// attributable, non-cancelled transaction. Cancelled lines contribute to
// none of the three dimensions. The reference date defaults to the latest
// non-cancelled invoice timestamp plus one day.
func BuildRFM(table *preprocess.Table, opts Options, diags *errors.Diagnostics) []RFMProfile {
	if table.Empty() {
		return nil
	}

	reference := opts.ReferenceDate
	if reference.IsZero() {
		max := table.MaxInvoiceDate()
		if max.IsZero() {
			return nil
		}
		reference = max.AddDate(0, 0, 1)
	}

	type accumulator struct {
		lastDate time.Time
		invoices map[string]struct{}
		monetary float64
	}
	byCustomer := make(map[string]*accumulator)

	for _, row := range table.Rows {
		if row.Cancelled || !row.Attributable() {
			continue
		}
		acc, ok := byCustomer[row.CustomerID]
		if !ok {
			acc = &accumulator{invoices: make(map[string]struct{})}
			byCustomer[row.CustomerID] = acc
		}
		if row.InvoiceDate.After(acc.lastDate) {
			acc.lastDate = row.InvoiceDate
		}
		acc.invoices[row.InvoiceNo] = struct{}{}
		acc.monetary += row.Revenue
	}

	if len(byCustomer) == 0 {
		return nil
	}

	profiles := make([]RFMProfile, 0, len(byCustomer))
	for id, acc := range byCustomer {
		recency := int(reference.Sub(acc.lastDate).Hours() / 24)
		if recency < 0 {
			recency = 0
		}
		profiles = append(profiles, RFMProfile{
			CustomerID:  id,
			RecencyDays: recency,
			Frequency:   len(acc.invoices),
			Monetary:    acc.monetary,
		})
	}
	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].CustomerID < profiles[j].CustomerID
	})

	scoreProfiles(profiles, opts.Quantiles, diags)
	return profiles
}

// scoreProfiles assigns quantile scores and segment labels in place
func scoreProfiles(profiles []RFMProfile, k int, diags *errors.Diagnostics) {
	n := len(profiles)
	recency := make([]float64, n)
	frequency := make([]float64, n)
	monetary := make([]float64, n)
	for i, p := range profiles {
		recency[i] = float64(p.RecencyDays)
		frequency[i] = float64(p.Frequency)
		monetary[i] = p.Monetary
	}

	// Recency and monetary collapse tied boundaries; frequency uses first
	// ranking since distinct-invoice counts tie heavily
	rScores := quantileScoresCollapsed(recency, k)
	fScores := quantileScores(frequency, k)
	mScores := quantileScoresCollapsed(monetary, k)

	unmapped := 0
	for i := range profiles {
		profiles[i].RScore = invertScore(rScores[i], k)
		profiles[i].FScore = fScores[i]
		profiles[i].MScore = mScores[i]

		label, ok := segmentFor(profiles[i].RScore, profiles[i].FScore)
		if !ok {
			unmapped++
			if diags != nil {
				diags.Record(errors.SegmentationError(profiles[i].ScoreKey()))
			}
		}
		profiles[i].Segment = label
	}

	if unmapped > 0 {
		slog.Warn("rfm combinations without a segment mapping defaulted",
			slog.Int("count", unmapped),
			slog.String("default", DefaultSegment))
	}
}
