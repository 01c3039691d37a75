package intelligence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPareto(t *testing.T) {
	t.Run("two customers concentrated on one", func(t *testing.T) {
		table := tableOf(
			txRow("1001", "A1", day(2011, 1, 5), 500),
			txRow("1002", "B1", day(2011, 1, 6), 50),
		)
		rank := BuildPareto(table, 0.8)
		require.Len(t, rank.Entries, 2)

		first := rank.Entries[0]
		assert.Equal(t, 1, first.Rank)
		assert.Equal(t, "1001", first.CustomerID)
		assert.InDelta(t, 500.0/550.0, first.CumRevenueShare, 1e-9)
		assert.InDelta(t, 0.5, first.CumCustomerShare, 1e-9)

		last := rank.Entries[1]
		assert.InDelta(t, 1.0, last.CumRevenueShare, 1e-9)
		assert.InDelta(t, 1.0, last.CumCustomerShare, 1e-9)

		// 500/550 already exceeds 0.8
		assert.Equal(t, 1, rank.ThresholdRank)
	})

	t.Run("cumulative shares increase monotonically", func(t *testing.T) {
		table := tableOf(
			txRow("1", "I1", day(2011, 1, 1), 10),
			txRow("2", "I2", day(2011, 1, 2), 40),
			txRow("3", "I3", day(2011, 1, 3), 25),
			txRow("4", "I4", day(2011, 1, 4), 5),
			txRow("5", "I5", day(2011, 1, 5), 20),
		)
		rank := BuildPareto(table, 0.8)
		require.Len(t, rank.Entries, 5)
		for i := 1; i < len(rank.Entries); i++ {
			assert.Greater(t, rank.Entries[i].CumRevenueShare, rank.Entries[i-1].CumRevenueShare)
			assert.Greater(t, rank.Entries[i].CumCustomerShare, rank.Entries[i-1].CumCustomerShare)
			assert.LessOrEqual(t, rank.Entries[i].Revenue, rank.Entries[i-1].Revenue)
		}
		assert.InDelta(t, 1.0, rank.Entries[4].CumRevenueShare, 1e-9)
	})

	t.Run("threshold rank is the minimal prefix", func(t *testing.T) {
		table := tableOf(
			txRow("1", "I1", day(2011, 1, 1), 50),
			txRow("2", "I2", day(2011, 1, 2), 30),
			txRow("3", "I3", day(2011, 1, 3), 20),
		)
		rank := BuildPareto(table, 0.8)
		// 0.5 then 0.8: the second customer reaches the threshold
		assert.Equal(t, 2, rank.ThresholdRank)
		assert.Equal(t, 0.8, rank.Threshold)
	})

	t.Run("ties ordered by customer id", func(t *testing.T) {
		table := tableOf(
			txRow("1002", "B1", day(2011, 1, 1), 100),
			txRow("1001", "A1", day(2011, 1, 2), 100),
		)
		rank := BuildPareto(table, 0.8)
		require.Len(t, rank.Entries, 2)
		assert.Equal(t, "1001", rank.Entries[0].CustomerID)
	})

	t.Run("non-positive revenue customers are excluded", func(t *testing.T) {
		table := tableOf(
			txRow("1001", "A1", day(2011, 1, 1), 100),
			txRow("1002", "B1", day(2011, 1, 2), -40),
		)
		rank := BuildPareto(table, 0.8)
		require.Len(t, rank.Entries, 1)
		assert.Equal(t, "1001", rank.Entries[0].CustomerID)
	})

	t.Run("empty table yields empty ranking", func(t *testing.T) {
		rank := BuildPareto(tableOf(), 0.8)
		assert.Empty(t, rank.Entries)
		assert.Equal(t, 0, rank.ThresholdRank)
	})
}
