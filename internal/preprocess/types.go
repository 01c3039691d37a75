package preprocess

import (
	"time"
)

// Row is one cleaned invoice line. All derived fields are computed once by
// Clean; downstream computations treat rows as immutable.
type Row struct {
	InvoiceNo   string    `json:"invoice_no"`
	StockCode   string    `json:"stock_code"`
	Description string    `json:"description"`
	Quantity    float64   `json:"quantity"`
	InvoiceDate time.Time `json:"invoice_date"`
	UnitPrice   float64   `json:"unit_price"`
	CustomerID  string    `json:"customer_id"` // empty when the line is unattributable
	Country     string    `json:"country"`
	Revenue     float64   `json:"revenue"`
	Cancelled   bool      `json:"cancelled"`
	YearMonth   time.Time `json:"year_month"` // first of month, zero clock, UTC
}

// Attributable reports whether the row can be assigned to a customer.
// Rows without a customer id still count toward revenue totals but are
// excluded from every customer-keyed aggregate.
func (r Row) Attributable() bool {
	return r.CustomerID != ""
}

// Table is the cleaned transaction table handed to the intelligence engine
type Table struct {
	Rows []Row
}

// Empty reports whether the table holds no rows
func (t *Table) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// MaxInvoiceDate returns the latest invoice timestamp across non-cancelled
// rows, or the zero time for an empty table
func (t *Table) MaxInvoiceDate() time.Time {
	var max time.Time
	for _, row := range t.Rows {
		if row.Cancelled {
			continue
		}
		if row.InvoiceDate.After(max) {
			max = row.InvoiceDate
		}
	}
	return max
}

// TruncateToMonth returns the first day of t's calendar month with a zero
// time component, in UTC
func TruncateToMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// MonthDiff returns the number of calendar months from a to b. Both inputs
// are expected to be month-truncated.
func MonthDiff(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}
