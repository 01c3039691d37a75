// Package intelligence implements the customer analytics core: RFM scoring
// and segmentation, cohort retention, customer lifetime value, Pareto
// revenue concentration, and segment/country aggregation.
//
// Every computation is a pure function over the cleaned transaction table.
// The four analyses are independent of one another and may be invoked in any
// order; none mutates the table or shares state. An empty table is a valid
// degenerate input and yields empty results rather than an error.
//
// # Usage
//
// Build RFM profiles and segment aggregates:
//
//	diags := errors.NewDiagnostics()
//	profiles := intelligence.BuildRFM(table, intelligence.DefaultOptions(), diags)
//	segments := intelligence.AggregateBySegment(profiles)
//
// Build the cohort retention matrix:
//
//	matrix := intelligence.BuildRetention(table, diags)
//	ratio := matrix.Ratio(0, 1) // cohort 0, one month out
//
// Rank customers by revenue concentration:
//
//	rank := intelligence.BuildPareto(table, 0.8)
//	top := rank.Entries[:rank.ThresholdRank]
package intelligence
