package dataset

import (
	"strings"

	"retailcli/internal/errors"
)

// columnIndices holds the indices of the dataset columns in the header
type columnIndices struct {
	invoiceCol  int
	stockCol    int
	descCol     int
	quantityCol int
	dateCol     int
	priceCol    int
	customerCol int
	countryCol  int
}

// findColumnIndices finds the indices of dataset columns in the header.
// Matching is tolerant: exact names are tried first, then lowercase aliases.
func findColumnIndices(header []string) columnIndices {
	indices := columnIndices{
		invoiceCol:  -1,
		stockCol:    -1,
		descCol:     -1,
		quantityCol: -1,
		dateCol:     -1,
		priceCol:    -1,
		customerCol: -1,
		countryCol:  -1,
	}

	for i, col := range header {
		cleanCol := cleanHeaderCell(col)
		lowerCol := strings.ToLower(cleanCol)

		switch cleanCol {
		case "InvoiceNo":
			indices.invoiceCol = i
		case "StockCode":
			indices.stockCol = i
		case "Description":
			indices.descCol = i
		case "Quantity":
			indices.quantityCol = i
		case "InvoiceDate":
			indices.dateCol = i
		case "UnitPrice":
			indices.priceCol = i
		case "CustomerID":
			indices.customerCol = i
		case "Country":
			indices.countryCol = i
		default:
			// Fallback to lowercase alias matching
			switch lowerCol {
			case "invoiceno", "invoice_no", "invoice":
				indices.invoiceCol = i
			case "stockcode", "stock_code", "sku":
				indices.stockCol = i
			case "description", "product_description":
				indices.descCol = i
			case "quantity", "qty":
				indices.quantityCol = i
			case "invoicedate", "invoice_date", "date":
				indices.dateCol = i
			case "unitprice", "unit_price", "price":
				indices.priceCol = i
			case "customerid", "customer_id", "customer":
				indices.customerCol = i
			case "country":
				indices.countryCol = i
			}
		}
	}

	return indices
}

// validate reports the first missing required column as a schema error
func (c columnIndices) validate() *errors.AnalyticsError {
	found := map[string]int{
		"InvoiceNo":   c.invoiceCol,
		"InvoiceDate": c.dateCol,
		"Quantity":    c.quantityCol,
		"UnitPrice":   c.priceCol,
		"CustomerID":  c.customerCol,
	}
	for _, name := range requiredColumns {
		if found[name] == -1 {
			return errors.SchemaError(name)
		}
	}
	return nil
}

// cleanHeaderCell strips the UTF-8 BOM and zero-width characters that Excel
// exports tend to leave on the first header cell
func cleanHeaderCell(col string) string {
	cleanCol := strings.TrimSpace(col)
	cleanCol = strings.TrimPrefix(cleanCol, "\uFEFF")
	if strings.HasPrefix(cleanCol, string([]byte{0xEF, 0xBB, 0xBF})) {
		cleanCol = cleanCol[3:]
	}
	cleanCol = strings.TrimLeft(cleanCol, "​‌‍⁠\uFEFF")
	return strings.TrimSpace(cleanCol)
}

// cell returns the value at index idx, or empty when the column is absent or
// the row is short
func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}
