package intelligence

import (
	"sort"
)

// quantileScores buckets values into k rank-based quantile scores 1..k,
// ascending (the smallest values land in bucket 1). Ties are broken by the
// original order, so equal values may straddle a bucket boundary; this is
// the "first" ranking used for frequency scoring, where long runs of equal
// counts would otherwise collapse entire quantiles.
func quantileScores(values []float64, k int) []int {
	n := len(values)
	scores := make([]int, n)
	if n == 0 || k <= 0 {
		return scores
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return values[order[a]] < values[order[b]]
	})

	for pos, idx := range order {
		scores[idx] = bucketFor(pos, n, k)
	}
	return scores
}

// quantileScoresCollapsed buckets like quantileScores but keeps equal values
// in the same bucket: each tied run takes the bucket of its first element.
// Duplicate-boundary bins therefore collapse rather than splitting a tie.
func quantileScoresCollapsed(values []float64, k int) []int {
	n := len(values)
	scores := make([]int, n)
	if n == 0 || k <= 0 {
		return scores
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return values[order[a]] < values[order[b]]
	})

	for pos, idx := range order {
		if pos > 0 && values[idx] == values[order[pos-1]] {
			scores[idx] = scores[order[pos-1]]
			continue
		}
		scores[idx] = bucketFor(pos, n, k)
	}
	return scores
}

// bucketFor maps a 0-based sorted position to a 1..k bucket
func bucketFor(pos, n, k int) int {
	b := pos*k/n + 1
	if b > k {
		b = k
	}
	return b
}

// invertScore flips an ascending 1..k score into a descending one, so that
// small input values earn the highest score (used for recency)
func invertScore(score, k int) int {
	return k + 1 - score
}
