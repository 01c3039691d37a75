package preprocess

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"retailcli/internal/dataset"
	"retailcli/internal/errors"
)

// UnknownDescription is the sentinel used for missing product descriptions
const UnknownDescription = "UNKNOWN"

// timestamp layouts tried in order when parsing invoice dates
var dateLayouts = []string{
	"1/2/2006 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006 15:04",
	"2006-01-02",
}

var titleCaser = cases.Title(language.English)

// Clean normalizes the raw transaction table into the typed cleaned table.
// It is pure apart from the returned diagnostics: rows with unparseable
// timestamps are dropped and counted, never silently lost.
func Clean(raw []dataset.Transaction, cancellationMarker string) (*Table, *errors.Diagnostics) {
	diags := errors.NewDiagnostics()
	table := &Table{Rows: make([]Row, 0, len(raw))}

	dropped := 0
	for _, tx := range raw {
		invoiceDate, err := parseInvoiceDate(tx.InvoiceDate)
		if err != nil {
			diags.Record(errors.DataQualityError("invoice date", err))
			dropped++
			continue
		}

		// Letters-only stock codes are manual adjustments (postage, bank
		// charges), not product lines
		if isAlphabeticCode(tx.StockCode) {
			dropped++
			continue
		}

		row := Row{
			InvoiceNo:   strings.TrimSpace(tx.InvoiceNo),
			StockCode:   strings.TrimSpace(tx.StockCode),
			Description: normalizeDescription(tx.Description),
			Quantity:    tx.Quantity,
			InvoiceDate: invoiceDate,
			UnitPrice:   tx.UnitPrice,
			CustomerID:  canonicalCustomerID(tx.CustomerID),
			Country:     normalizeCountry(tx.Country),
			Revenue:     revenue(tx.Quantity, tx.UnitPrice),
			Cancelled:   strings.HasPrefix(strings.TrimSpace(tx.InvoiceNo), cancellationMarker),
			YearMonth:   TruncateToMonth(invoiceDate),
		}

		table.Rows = append(table.Rows, row)
	}

	if dropped > 0 {
		slog.Warn("dropped rows during preprocessing",
			slog.Int("dropped", dropped),
			slog.Int("kept", len(table.Rows)))
	}

	return table, diags
}

// parseInvoiceDate tries the known timestamp layouts in order
func parseInvoiceDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// canonicalCustomerID coerces the raw customer id into a canonical string
// identity. The source data stores ids as floats ("17850.0"), so a numeric
// coercion round-trip removes the fractional artifact. Missing or
// non-numeric ids collapse to the empty string (unattributable).
func canonicalCustomerID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return ""
	}
	return strconv.FormatInt(int64(f), 10)
}

// normalizeDescription trims and lowercases the description for grouping,
// substituting the sentinel for missing values
func normalizeDescription(desc string) string {
	desc = strings.ToLower(strings.TrimSpace(desc))
	if desc == "" {
		return UnknownDescription
	}
	return desc
}

// normalizeCountry title-cases and trims the country name
func normalizeCountry(country string) string {
	country = strings.TrimSpace(country)
	if country == "" {
		return "Unspecified"
	}
	return titleCaser.String(strings.ToLower(country))
}

// revenue computes quantity * unit price with decimal arithmetic, rounded to
// two places, so that repeated aggregation does not accumulate float
// artifacts from the multiplication itself
func revenue(quantity, unitPrice float64) float64 {
	rev := decimal.NewFromFloat(quantity).Mul(decimal.NewFromFloat(unitPrice)).Round(2)
	f, _ := rev.Float64()
	return f
}

// isAlphabeticCode reports whether the stock code consists only of letters
func isAlphabeticCode(code string) bool {
	code = strings.TrimSpace(code)
	if code == "" {
		return false
	}
	for _, r := range code {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
