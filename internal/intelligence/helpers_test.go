package intelligence

import (
	"time"

	"retailcli/internal/preprocess"
)

// txRow builds a cleaned row with the fields the engine reads
func txRow(customer, invoice string, date time.Time, revenue float64) preprocess.Row {
	return preprocess.Row{
		InvoiceNo:   invoice,
		StockCode:   "10002",
		Description: "test product",
		InvoiceDate: date,
		CustomerID:  customer,
		Country:     "United Kingdom",
		Revenue:     revenue,
		YearMonth:   preprocess.TruncateToMonth(date),
	}
}

func cancelledRow(customer, invoice string, date time.Time, revenue float64) preprocess.Row {
	row := txRow(customer, invoice, date, revenue)
	row.Cancelled = true
	return row
}

func tableOf(rows ...preprocess.Row) *preprocess.Table {
	return &preprocess.Table{Rows: rows}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
