package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailcli/internal/intelligence"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := strings.TrimPrefix(string(content), "\xEF\xBB\xBF")
	records, err := csv.NewReader(strings.NewReader(text)).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriteCSV(t *testing.T) {
	t.Run("writes headers and records with BOM", func(t *testing.T) {
		dir := t.TempDir()
		w := NewCSVWriter(dir)

		err := w.WriteCSV("out.csv", WriteOptions{
			Headers:   []string{"a", "b"},
			Records:   [][]string{{"1", "2"}, {"3", "4"}},
			BOMPrefix: true,
		})
		require.NoError(t, err)

		content, err := os.ReadFile(filepath.Join(dir, "out.csv"))
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(content), "\xEF\xBB\xBF"))

		records := readCSV(t, filepath.Join(dir, "out.csv"))
		require.Len(t, records, 3)
		assert.Equal(t, []string{"a", "b"}, records[0])
	})

	t.Run("append skips headers and BOM", func(t *testing.T) {
		dir := t.TempDir()
		w := NewCSVWriter(dir)

		require.NoError(t, w.WriteSimpleCSV("out.csv", []string{"a"}, [][]string{{"1"}}))
		require.NoError(t, w.WriteCSV("out.csv", WriteOptions{
			Headers: []string{"a"},
			Records: [][]string{{"2"}},
			Append:  true,
		}))

		records := readCSV(t, filepath.Join(dir, "out.csv"))
		require.Len(t, records, 3)
		assert.Equal(t, []string{"2"}, records[2])
	})

	t.Run("creates the output directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "out")
		w := NewCSVWriter(dir)
		require.NoError(t, w.WriteSimpleCSV("out.csv", []string{"a"}, nil))
		_, err := os.Stat(filepath.Join(dir, "out.csv"))
		assert.NoError(t, err)
	})
}

func TestWriteDerivedTables(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir)

	t.Run("rfm profiles", func(t *testing.T) {
		profiles := []intelligence.RFMProfile{
			{CustomerID: "17850", RecencyDays: 3, Frequency: 5, Monetary: 1234.5, RScore: 5, FScore: 4, MScore: 5, Segment: "Champion"},
		}
		require.NoError(t, w.WriteRFM(profiles))

		records := readCSV(t, filepath.Join(dir, RFMFileName))
		require.Len(t, records, 2)
		assert.Equal(t, "CustomerID", records[0][0])
		assert.Equal(t, []string{"17850", "3", "5", "1234.50", "5", "4", "5", "Champion"}, records[1])
	})

	t.Run("retention matrix in long form", func(t *testing.T) {
		matrix := &intelligence.RetentionMatrix{
			CohortMonths: []time.Time{time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)},
			Periods:      2,
			Cells: [][]intelligence.CohortCell{
				{{Customers: 2, Ratio: 1}, {Customers: 1, Ratio: 0.5}},
			},
		}
		require.NoError(t, w.WriteRetention(matrix))

		records := readCSV(t, filepath.Join(dir, RetentionFileName))
		require.Len(t, records, 3)
		assert.Equal(t, []string{"2011-01", "0", "2", "1.0000"}, records[1])
		assert.Equal(t, []string{"2011-01", "1", "1", "0.5000"}, records[2])
	})

	t.Run("clv records", func(t *testing.T) {
		clv := []intelligence.CLVRecord{
			{CustomerID: "17850", AvgOrderValue: 150, Frequency: 2, LifespanMonths: 31.0 / 30.0, CLV: 310},
		}
		require.NoError(t, w.WriteCLV(clv))

		records := readCSV(t, filepath.Join(dir, CLVFileName))
		require.Len(t, records, 2)
		assert.Equal(t, []string{"17850", "150.00", "2", "1.03", "310.00"}, records[1])
	})

	t.Run("pareto ranking", func(t *testing.T) {
		rank := &intelligence.ParetoRank{
			Threshold:     0.8,
			ThresholdRank: 1,
			Entries: []intelligence.ParetoEntry{
				{Rank: 1, CustomerID: "17850", Revenue: 500, CumRevenue: 500, CumRevenueShare: 500.0 / 550.0, CumCustomerShare: 0.5},
			},
		}
		require.NoError(t, w.WritePareto(rank))

		records := readCSV(t, filepath.Join(dir, ParetoFileName))
		require.Len(t, records, 2)
		assert.Equal(t, "0.909091", records[1][4])
	})

	t.Run("segment and country summaries", func(t *testing.T) {
		require.NoError(t, w.WriteSegmentSummary([]intelligence.SegmentSummary{
			{Segment: "Champion", Customers: 2, Revenue: 800, CustomerShare: 0.5, RevenueShare: 0.8},
		}))
		require.NoError(t, w.WriteCountrySummary([]intelligence.CountrySummary{
			{Country: "United Kingdom", Customers: 10, Revenue: 1000, CustomerShare: 1, RevenueShare: 1},
		}))

		segments := readCSV(t, filepath.Join(dir, SegmentFileName))
		require.Len(t, segments, 2)
		assert.Equal(t, "Champion", segments[1][0])

		countries := readCSV(t, filepath.Join(dir, CountryFileName))
		require.Len(t, countries, 2)
		assert.Equal(t, "United Kingdom", countries[1][0])
	})

	t.Run("empty tables still produce headers", func(t *testing.T) {
		emptyDir := t.TempDir()
		we := NewCSVWriter(emptyDir)
		require.NoError(t, we.WriteRFM(nil))
		records := readCSV(t, filepath.Join(emptyDir, RFMFileName))
		require.Len(t, records, 1)
	})
}
