// Package indicator computes technical-analysis columns over candlestick
// tables. Each computator takes a Frame, validates its source columns,
// and returns a new Frame with derived columns appended; the input is
// never mutated. The indicator math itself is delegated to
// github.com/markcheno/go-talib.
package indicator

import (
	"fmt"
	"time"
)

// Frame is an ordered table of equal-length float64 columns aligned on a
// time index. Column order is preserved across copies so CSV output is
// deterministic.
type Frame struct {
	// Symbol identifies the instrument the rows belong to. Informational
	// only; computators never read it.
	Symbol string

	index []time.Time
	order []string
	cols  map[string][]float64
}

// NewFrame creates an empty Frame over the given time index.
func NewFrame(symbol string, index []time.Time) *Frame {
	return &Frame{
		Symbol: symbol,
		index:  index,
		order:  make([]string, 0, 8),
		cols:   make(map[string][]float64, 8),
	}
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.index)
}

// Index returns the time index. Callers must not modify it.
func (f *Frame) Index() []time.Time {
	return f.index
}

// ColumnNames returns the column names in insertion order.
func (f *Frame) ColumnNames() []string {
	names := make([]string, len(f.order))
	copy(names, f.order)
	return names
}

// HasColumn reports whether a column exists.
func (f *Frame) HasColumn(name string) bool {
	_, ok := f.cols[name]
	return ok
}

// Column returns a single named column. Callers must not modify it.
func (f *Frame) Column(name string) ([]float64, error) {
	vals, ok := f.cols[name]
	if !ok {
		return nil, &MissingColumnsError{Columns: []string{name}}
	}
	return vals, nil
}

// Columns returns the named columns in order. When any are absent it fails
// with a MissingColumnsError naming every missing column, not just the
// first.
func (f *Frame) Columns(names ...string) ([][]float64, error) {
	var missing []string
	for _, name := range names {
		if _, ok := f.cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	out := make([][]float64, len(names))
	for i, name := range names {
		out[i] = f.cols[name]
	}
	return out, nil
}

// SetColumn appends a column, or replaces it in place when the name already
// exists. The values must match the frame's row count.
func (f *Frame) SetColumn(name string, values []float64) error {
	if len(values) != f.Len() {
		return fmt.Errorf("column %s: length %d does not match %d rows", name, len(values), f.Len())
	}
	if _, ok := f.cols[name]; !ok {
		f.order = append(f.order, name)
	}
	f.cols[name] = values
	return nil
}

// copy returns a shallow copy: column order and the name map are cloned,
// while the index and the value slices are shared. Computators append to
// the copy so the source frame stays untouched.
func (f *Frame) copy() *Frame {
	order := make([]string, len(f.order))
	copy(order, f.order)

	cols := make(map[string][]float64, len(f.cols)+4)
	for name, vals := range f.cols {
		cols[name] = vals
	}

	return &Frame{
		Symbol: f.Symbol,
		index:  f.index,
		order:  order,
		cols:   cols,
	}
}
