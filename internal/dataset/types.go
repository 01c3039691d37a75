package dataset

// Transaction represents one raw invoice line as read from the input file.
// Values are kept as strings where parsing belongs to the preprocessor;
// Quantity and UnitPrice are coerced at load time since rows without numeric
// values in those columns carry no analyzable signal.
type Transaction struct {
	InvoiceNo   string
	StockCode   string
	Description string
	Quantity    float64
	InvoiceDate string
	UnitPrice   float64
	CustomerID  string
	Country     string
}

// Required input columns. A missing required column is a schema error and
// aborts the run; optional columns degrade to empty values.
var requiredColumns = []string{"InvoiceNo", "InvoiceDate", "Quantity", "UnitPrice", "CustomerID"}
