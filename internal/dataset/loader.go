package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadCSV reads the transactional dataset from a CSV file. The header row is
// matched leniently (see findColumnIndices); a missing required column fails
// the load with a schema error.
func LoadCSV(path string) ([]Transaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	// Read full content to strip a UTF-8 BOM before CSV parsing
	content, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	if len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		content = content[3:]
	}

	reader := csv.NewReader(strings.NewReader(string(content)))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}

	return fromRecords(path, records)
}

// LoadXLSX reads the transactional dataset from an Excel workbook sheet.
// The canonical Online Retail dataset ships as a workbook, so this path is
// first-class rather than requiring a CSV conversion step.
func LoadXLSX(path, sheet string) ([]Transaction, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	return fromRecords(path, rows)
}

// fromRecords converts raw rows (header + data) into transactions
func fromRecords(source string, records [][]string) ([]Transaction, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("input %s is empty", source)
	}

	columns := findColumnIndices(records[0])
	if err := columns.validate(); err != nil {
		return nil, err
	}

	transactions := make([]Transaction, 0, len(records)-1)
	skipped := 0

	for _, record := range records[1:] {
		qty, qtyErr := strconv.ParseFloat(cell(record, columns.quantityCol), 64)
		price, priceErr := strconv.ParseFloat(cell(record, columns.priceCol), 64)
		if qtyErr != nil || priceErr != nil {
			skipped++
			continue
		}

		transactions = append(transactions, Transaction{
			InvoiceNo:   cell(record, columns.invoiceCol),
			StockCode:   cell(record, columns.stockCol),
			Description: cell(record, columns.descCol),
			Quantity:    qty,
			InvoiceDate: cell(record, columns.dateCol),
			UnitPrice:   price,
			CustomerID:  cell(record, columns.customerCol),
			Country:     cell(record, columns.countryCol),
		})
	}

	slog.Info("loaded transactional dataset",
		slog.String("source", source),
		slog.Int("rows", len(transactions)),
		slog.Int("skipped_non_numeric", skipped))

	return transactions, nil
}
