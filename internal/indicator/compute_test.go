package indicator

import (
	"errors"
	"math"
	"testing"

	talib "github.com/markcheno/go-talib"
)

func sameValues(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.IsNaN(a[i]) && math.IsNaN(b[i]) {
			continue
		}
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestComputatorsPreserveInput(t *testing.T) {
	f := testFrame(t, 80)
	before := f.ColumnNames()

	out, err := All(f)
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if out.Len() != f.Len() {
		t.Fatalf("row count changed: %d != %d", out.Len(), f.Len())
	}
	if got := len(f.ColumnNames()); got != len(before) {
		t.Fatalf("input frame gained columns: %d != %d", got, len(before))
	}
	for _, name := range before {
		src, _ := f.Column(name)
		dst, err := out.Column(name)
		if err != nil {
			t.Fatalf("output dropped column %s", name)
		}
		if !sameValues(src, dst) {
			t.Fatalf("column %s modified by computation", name)
		}
	}
}

func TestWarmupPrefixes(t *testing.T) {
	f := testFrame(t, 80)
	out, err := All(f)
	if err != nil {
		t.Fatalf("all: %v", err)
	}

	cases := []struct {
		column   string
		lookback int
	}{
		{"change_pct_1", 1},
		{"change_pct_20", 20},
		{"mid_price", 1},
		{"ema_5", 4},
		{"ema_60", 59},
		{"macd", 33},
		{"macd_signal", 33},
		{"macd_hist", 33},
		{"adx_14", 27},
		{"adx_7", 13},
		{"rsi_7", 7},
		{"rsi_14", 14},
		{"cci_14", 13},
		{"stoch_k_9", 12},
		{"stoch_d_9", 12},
		{"atr_3", 3},
		{"atr_14", 14},
		{"bb_upper_5", 4},
		{"bb_middle_5", 4},
		{"bb_lower_5", 4},
		{"obv", 0},
		{"ad", 0},
		{"volume_sma_5", 4},
		{"vwma_10", 9},
	}
	for _, tc := range cases {
		vals, err := out.Column(tc.column)
		if err != nil {
			t.Fatalf("%s: %v", tc.column, err)
		}
		for i := 0; i < tc.lookback; i++ {
			if !math.IsNaN(vals[i]) {
				t.Fatalf("%s[%d] = %v, expected NaN warm-up", tc.column, i, vals[i])
			}
		}
		for i := tc.lookback; i < len(vals); i++ {
			if math.IsNaN(vals[i]) || math.IsInf(vals[i], 0) {
				t.Fatalf("%s[%d] = %v, expected finite value", tc.column, i, vals[i])
			}
		}
	}
}

func TestChangeKnownValue(t *testing.T) {
	f := testFrame(t, 10)
	out, err := Change(f, WithPeriods(1))
	if err != nil {
		t.Fatalf("change: %v", err)
	}
	vals, err := out.Column("change_pct_1")
	if err != nil {
		t.Fatalf("column: %v", err)
	}
	// close goes 100 -> 101, so the 1-period change is exactly 1%.
	if vals[1] != 0.01 {
		t.Fatalf("change_pct_1[1] = %v, want 0.01", vals[1])
	}
}

func TestIdempotentOverwrite(t *testing.T) {
	f := testFrame(t, 80)
	once, err := EMA(f, WithPeriods(5))
	if err != nil {
		t.Fatalf("ema: %v", err)
	}
	twice, err := EMA(once, WithPeriods(5))
	if err != nil {
		t.Fatalf("ema rerun: %v", err)
	}
	if len(twice.ColumnNames()) != len(once.ColumnNames()) {
		t.Fatalf("rerun duplicated columns: %v", twice.ColumnNames())
	}
	a, _ := once.Column("ema_5")
	b, _ := twice.Column("ema_5")
	if !sameValues(a, b) {
		t.Fatalf("rerun with the same period produced different values")
	}
}

func TestEmptyPeriodListIsNoop(t *testing.T) {
	f := testFrame(t, 20)
	out, err := RSI(f, WithPeriods())
	if err != nil {
		t.Fatalf("rsi: %v", err)
	}
	if len(out.ColumnNames()) != len(f.ColumnNames()) {
		t.Fatalf("empty period list added columns: %v", out.ColumnNames())
	}
}

func TestMACDArityError(t *testing.T) {
	f := testFrame(t, 80)
	_, err := MACD(f, WithPeriods(12, 26))
	if err == nil {
		t.Fatalf("expected arity error")
	}
	var arity *ArityError
	if !errors.As(err, &arity) {
		t.Fatalf("expected ArityError, got %T", err)
	}
	if arity.Want != 3 || arity.Got != 2 {
		t.Fatalf("unexpected arity %d/%d", arity.Want, arity.Got)
	}
	if f.HasColumn("macd") {
		t.Fatalf("failed call added columns")
	}
}

func TestStochArityError(t *testing.T) {
	f := testFrame(t, 80)
	_, err := Stoch(f, WithPeriods(9, 3, 3, 3))
	var arity *ArityError
	if !errors.As(err, &arity) {
		t.Fatalf("expected ArityError, got %v", err)
	}
}

func TestBBandsArityError(t *testing.T) {
	f := testFrame(t, 80)
	_, err := BBands(f, WithBBandParams(5, 2.0))
	var arity *ArityError
	if !errors.As(err, &arity) {
		t.Fatalf("expected ArityError, got %v", err)
	}
	if arity.Want != 4 {
		t.Fatalf("want arity 4, got %d", arity.Want)
	}
}

func TestOBVMissingVolume(t *testing.T) {
	f := NewFrame("700.HK", testIndex(5))
	if err := f.SetColumn("close", []float64{1, 2, 3, 4, 5}); err != nil {
		t.Fatalf("set close: %v", err)
	}
	_, err := OBV(f)
	var missing *MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnsError, got %v", err)
	}
	if len(missing.Columns) != 1 || missing.Columns[0] != "volume" {
		t.Fatalf("unexpected missing columns %v", missing.Columns)
	}
}

func TestVWMAIdentity(t *testing.T) {
	const period = 5
	f := testFrame(t, 40)
	out, err := VWMA(f, WithPeriods(period))
	if err != nil {
		t.Fatalf("vwma: %v", err)
	}
	got, err := out.Column("vwma_5")
	if err != nil {
		t.Fatalf("column: %v", err)
	}

	closes, _ := f.Column("close")
	volume, _ := f.Column("volume")
	pv := make([]float64, len(closes))
	for i := range closes {
		pv[i] = closes[i] * volume[i]
	}
	pvSum := talib.Sum(pv, period)
	vSum := talib.Sum(volume, period)
	for i := period - 1; i < len(got); i++ {
		want := math.Round(pvSum[i]/vSum[i]*1000) / 1000
		if got[i] != want {
			t.Fatalf("vwma_5[%d] = %v, want %v", i, got[i], want)
		}
	}
}

func TestColumnNameOverride(t *testing.T) {
	f := NewFrame("700.HK", testIndex(30))
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 50 + float64(i)
	}
	if err := f.SetColumn("adj_close", closes); err != nil {
		t.Fatalf("set adj_close: %v", err)
	}

	out, err := EMA(f, WithPeriods(5), WithCloseColumn("adj_close"))
	if err != nil {
		t.Fatalf("ema: %v", err)
	}
	if !out.HasColumn("ema_5") {
		t.Fatalf("ema_5 not computed from overridden column")
	}
}
