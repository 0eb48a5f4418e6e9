package indicator

import (
	"errors"
	"testing"
	"time"
)

func testIndex(n int) []time.Time {
	base := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	idx := make([]time.Time, n)
	for i := range idx {
		idx[i] = base.AddDate(0, 0, i)
	}
	return idx
}

// testFrame builds a gap-free candle table with deterministic values.
func testFrame(t *testing.T, n int) *Frame {
	t.Helper()
	f := NewFrame("700.HK", testIndex(n))

	open := make([]float64, n)
	high := make([]float64, n)
	low := make([]float64, n)
	closes := make([]float64, n)
	volume := make([]float64, n)
	for i := 0; i < n; i++ {
		closes[i] = 100 + float64(i)
		open[i] = closes[i] - 0.5
		high[i] = closes[i] + 1
		low[i] = closes[i] - 1
		volume[i] = 1000 + 10*float64(i)
	}
	for name, vals := range map[string][]float64{
		"open": open, "high": high, "low": low, "close": closes, "volume": volume,
	} {
		if err := f.SetColumn(name, vals); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}
	return f
}

func TestColumnsMissingListsAll(t *testing.T) {
	f := NewFrame("700.HK", testIndex(3))
	if err := f.SetColumn("close", []float64{1, 2, 3}); err != nil {
		t.Fatalf("set close: %v", err)
	}

	_, err := f.Columns("high", "close", "volume")
	if err == nil {
		t.Fatalf("expected error")
	}
	var missing *MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnsError, got %T", err)
	}
	if len(missing.Columns) != 2 || missing.Columns[0] != "high" || missing.Columns[1] != "volume" {
		t.Fatalf("unexpected missing columns %v", missing.Columns)
	}
}

func TestSetColumnLengthMismatch(t *testing.T) {
	f := NewFrame("700.HK", testIndex(3))
	if err := f.SetColumn("close", []float64{1, 2}); err == nil {
		t.Fatalf("expected length mismatch error")
	}
}

func TestSetColumnOverwriteKeepsOrder(t *testing.T) {
	f := testFrame(t, 4)
	before := len(f.ColumnNames())
	if err := f.SetColumn("close", []float64{1, 2, 3, 4}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if got := len(f.ColumnNames()); got != before {
		t.Fatalf("overwrite changed column count: %d != %d", got, before)
	}
}

func TestCopyIsolatesColumns(t *testing.T) {
	f := testFrame(t, 4)
	c := f.copy()
	if err := c.SetColumn("extra", []float64{1, 2, 3, 4}); err != nil {
		t.Fatalf("set extra: %v", err)
	}
	if f.HasColumn("extra") {
		t.Fatalf("copy leaked a column into the source frame")
	}
	if c.Len() != f.Len() {
		t.Fatalf("copy row count %d != %d", c.Len(), f.Len())
	}
}
