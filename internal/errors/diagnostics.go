package errors

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Diagnostics aggregates the non-fatal errors recovered during a pipeline
// run. It is returned to the caller alongside the successful result so that
// dropped rows and defaulted values stay visible.
type Diagnostics struct {
	mu      sync.Mutex
	counts  map[Code]int
	samples map[Code]*AnalyticsError
}

// NewDiagnostics creates an empty diagnostics collector
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{
		counts:  make(map[Code]int),
		samples: make(map[Code]*AnalyticsError),
	}
}

// Record adds a recovered error to the summary. The first error of each code
// is kept as a sample; later occurrences only increment the count.
func (d *Diagnostics) Record(err *AnalyticsError) {
	if err == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.counts[err.Code]++
	if _, ok := d.samples[err.Code]; !ok {
		d.samples[err.Code] = err
	}
}

// Count returns the number of recorded errors for a code
func (d *Diagnostics) Count(code Code) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.counts[code]
}

// Total returns the total number of recorded errors
func (d *Diagnostics) Total() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	total := 0
	for _, n := range d.counts {
		total += n
	}
	return total
}

// Sample returns the first recorded error for a code, or nil
func (d *Diagnostics) Sample(code Code) *AnalyticsError {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.samples[code]
}

// Merge folds another diagnostics summary into this one
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other == nil {
		return
	}
	other.mu.Lock()
	defer other.mu.Unlock()
	d.mu.Lock()
	defer d.mu.Unlock()
	for code, n := range other.counts {
		d.counts[code] += n
		if _, ok := d.samples[code]; !ok {
			d.samples[code] = other.samples[code]
		}
	}
}

// Summary returns a human-readable one-line summary, or "clean" when nothing
// was recorded
func (d *Diagnostics) Summary() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.counts) == 0 {
		return "clean"
	}
	codes := make([]string, 0, len(d.counts))
	for code := range d.counts {
		codes = append(codes, string(code))
	}
	sort.Strings(codes)
	parts := make([]string, 0, len(codes))
	for _, code := range codes {
		parts = append(parts, fmt.Sprintf("%s=%d", code, d.counts[Code(code)]))
	}
	return strings.Join(parts, " ")
}
