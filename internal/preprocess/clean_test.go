package preprocess

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailcli/internal/dataset"
	"retailcli/internal/errors"
)

func TestClean(t *testing.T) {
	t.Run("parses dates and derives fields", func(t *testing.T) {
		raw := []dataset.Transaction{
			{
				InvoiceNo:   "536365",
				StockCode:   "85123A",
				Description: "  WHITE HANGING HEART T-LIGHT HOLDER ",
				Quantity:    6,
				InvoiceDate: "12/1/2010 8:26",
				UnitPrice:   2.55,
				CustomerID:  "17850.0",
				Country:     "united kingdom",
			},
		}

		table, diags := Clean(raw, "C")
		require.Len(t, table.Rows, 1)
		assert.Equal(t, 0, diags.Total())

		row := table.Rows[0]
		assert.Equal(t, time.Date(2010, 12, 1, 8, 26, 0, 0, time.UTC), row.InvoiceDate)
		assert.Equal(t, "17850", row.CustomerID)
		assert.Equal(t, "white hanging heart t-light holder", row.Description)
		assert.Equal(t, "United Kingdom", row.Country)
		assert.InDelta(t, 15.30, row.Revenue, 1e-9)
		assert.False(t, row.Cancelled)
		assert.Equal(t, time.Date(2010, 12, 1, 0, 0, 0, 0, time.UTC), row.YearMonth)
	})

	t.Run("year month has no day or time component", func(t *testing.T) {
		raw := []dataset.Transaction{
			{InvoiceNo: "1", StockCode: "10002", Quantity: 1, InvoiceDate: "2011-03-28 17:59:00", UnitPrice: 1, CustomerID: "12345"},
		}
		table, _ := Clean(raw, "C")
		require.Len(t, table.Rows, 1)
		ym := table.Rows[0].YearMonth
		assert.Equal(t, 1, ym.Day())
		assert.Equal(t, 0, ym.Hour())
		assert.Equal(t, 0, ym.Minute())
	})

	t.Run("unparseable dates are dropped and counted", func(t *testing.T) {
		raw := []dataset.Transaction{
			{InvoiceNo: "1", StockCode: "10002", Quantity: 1, InvoiceDate: "not a date", UnitPrice: 1, CustomerID: "1"},
			{InvoiceNo: "2", StockCode: "10002", Quantity: 1, InvoiceDate: "12/1/2010 8:26", UnitPrice: 1, CustomerID: "1"},
		}
		table, diags := Clean(raw, "C")
		assert.Len(t, table.Rows, 1)
		assert.Equal(t, 1, diags.Count(errors.CodeDataQuality))
	})

	t.Run("cancellation marker sets the flag", func(t *testing.T) {
		raw := []dataset.Transaction{
			{InvoiceNo: "C536379", StockCode: "10002", Quantity: -1, InvoiceDate: "12/1/2010 9:41", UnitPrice: 27.50, CustomerID: "14527"},
		}
		table, _ := Clean(raw, "C")
		require.Len(t, table.Rows, 1)
		assert.True(t, table.Rows[0].Cancelled)
		assert.InDelta(t, -27.50, table.Rows[0].Revenue, 1e-9)
	})

	t.Run("negative quantity without marker is a return not a cancellation", func(t *testing.T) {
		raw := []dataset.Transaction{
			{InvoiceNo: "536380", StockCode: "10002", Quantity: -2, InvoiceDate: "12/1/2010 9:41", UnitPrice: 5, CustomerID: "14527"},
		}
		table, _ := Clean(raw, "C")
		require.Len(t, table.Rows, 1)
		assert.False(t, table.Rows[0].Cancelled)
		assert.InDelta(t, -10.0, table.Rows[0].Revenue, 1e-9)
	})

	t.Run("missing customer id is retained but unattributable", func(t *testing.T) {
		raw := []dataset.Transaction{
			{InvoiceNo: "536381", StockCode: "10002", Quantity: 1, InvoiceDate: "12/1/2010 9:41", UnitPrice: 5, CustomerID: ""},
		}
		table, _ := Clean(raw, "C")
		require.Len(t, table.Rows, 1)
		assert.False(t, table.Rows[0].Attributable())
	})

	t.Run("missing description gets the sentinel", func(t *testing.T) {
		raw := []dataset.Transaction{
			{InvoiceNo: "536382", StockCode: "10002", Quantity: 1, InvoiceDate: "12/1/2010 9:41", UnitPrice: 5, CustomerID: "1"},
		}
		table, _ := Clean(raw, "C")
		require.Len(t, table.Rows, 1)
		assert.Equal(t, UnknownDescription, table.Rows[0].Description)
	})

	t.Run("letters-only stock codes are dropped", func(t *testing.T) {
		raw := []dataset.Transaction{
			{InvoiceNo: "536383", StockCode: "POST", Quantity: 1, InvoiceDate: "12/1/2010 9:41", UnitPrice: 18, CustomerID: "1"},
			{InvoiceNo: "536383", StockCode: "85123A", Quantity: 1, InvoiceDate: "12/1/2010 9:41", UnitPrice: 2, CustomerID: "1"},
		}
		table, _ := Clean(raw, "C")
		require.Len(t, table.Rows, 1)
		assert.Equal(t, "85123A", table.Rows[0].StockCode)
	})

	t.Run("empty input yields empty table", func(t *testing.T) {
		table, diags := Clean(nil, "C")
		assert.True(t, table.Empty())
		assert.Equal(t, 0, diags.Total())
	})
}

func TestMonthDiff(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"same month", time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC), 0},
		{"next month", time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2011, 2, 1, 0, 0, 0, 0, time.UTC), 1},
		{"across year", time.Date(2010, 12, 1, 0, 0, 0, 0, time.UTC), time.Date(2011, 3, 1, 0, 0, 0, 0, time.UTC), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthDiff(tt.a, tt.b))
		})
	}
}

func TestMaxInvoiceDate(t *testing.T) {
	raw := []dataset.Transaction{
		{InvoiceNo: "1", StockCode: "10002", Quantity: 1, InvoiceDate: "12/1/2010 8:00", UnitPrice: 1, CustomerID: "1"},
		{InvoiceNo: "C2", StockCode: "10002", Quantity: -1, InvoiceDate: "12/9/2010 8:00", UnitPrice: 1, CustomerID: "1"},
		{InvoiceNo: "3", StockCode: "10002", Quantity: 1, InvoiceDate: "12/5/2010 8:00", UnitPrice: 1, CustomerID: "1"},
	}
	table, _ := Clean(raw, "C")
	// Cancelled rows do not move the reference date
	assert.Equal(t, time.Date(2010, 12, 5, 8, 0, 0, 0, time.UTC), table.MaxInvoiceDate())
}
