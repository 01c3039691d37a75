package intelligence

import (
	"sort"
	"time"

	"retailcli/internal/preprocess"
)

// BuildCLV estimates customer lifetime value as
//
//	clv = average order value × purchase frequency × lifespan
//
// where average order value is monetary / frequency over non-cancelled
// transactions. The lifespan is either the observed span between a
// customer's first and last transaction (in months, counting a single-day
// history as one day) or a fixed configured horizon. Customers whose
// monetary total is not positive are excluded: a lifetime value projection
// for a customer who only returned goods is meaningless.
func BuildCLV(table *preprocess.Table, opts Options) []CLVRecord {
	if table.Empty() {
		return nil
	}

	type span struct {
		first, last time.Time
		invoices    map[string]struct{}
		monetary    float64
	}
	byCustomer := make(map[string]*span)

	for _, row := range table.Rows {
		if row.Cancelled || !row.Attributable() {
			continue
		}
		s, ok := byCustomer[row.CustomerID]
		if !ok {
			s = &span{first: row.InvoiceDate, last: row.InvoiceDate, invoices: make(map[string]struct{})}
			byCustomer[row.CustomerID] = s
		}
		if row.InvoiceDate.Before(s.first) {
			s.first = row.InvoiceDate
		}
		if row.InvoiceDate.After(s.last) {
			s.last = row.InvoiceDate
		}
		s.invoices[row.InvoiceNo] = struct{}{}
		s.monetary += row.Revenue
	}

	records := make([]CLVRecord, 0, len(byCustomer))
	for id, s := range byCustomer {
		if s.monetary <= 0 {
			continue
		}
		frequency := len(s.invoices)
		aov := s.monetary / float64(frequency)

		lifespan := float64(opts.LifespanMonths)
		if opts.ObservedLifespan {
			days := s.last.Sub(s.first).Hours()/24 + 1
			lifespan = days / 30
		}

		records = append(records, CLVRecord{
			CustomerID:     id,
			AvgOrderValue:  aov,
			Frequency:      frequency,
			LifespanMonths: lifespan,
			CLV:            aov * float64(frequency) * lifespan,
		})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CustomerID < records[j].CustomerID
	})
	return records
}
