package longport

import (
	"testing"

	"github.com/shopspring/decimal"
)

func bar(ts int64, close float64, volume int64) Candlestick {
	d := decimal.NewFromFloat(close)
	return Candlestick{
		Timestamp: ts,
		Open:      d,
		High:      d.Add(decimal.NewFromInt(1)),
		Low:       d.Sub(decimal.NewFromInt(1)),
		Close:     d,
		Volume:    volume,
		Turnover:  d.Mul(decimal.NewFromInt(volume)),
	}
}

func TestToFrame(t *testing.T) {
	candles := []Candlestick{
		bar(1700086400, 102.5, 2000),
		bar(1700000000, 101.0, 1500),
	}

	f := ToFrame("700.HK", candles)
	if f.Symbol != "700.HK" {
		t.Fatalf("unexpected symbol %s", f.Symbol)
	}
	if f.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", f.Len())
	}
	for _, name := range []string{"open", "high", "low", "close", "volume", "turnover"} {
		if !f.HasColumn(name) {
			t.Fatalf("missing column %s", name)
		}
	}

	idx := f.Index()
	if !idx[0].Before(idx[1]) {
		t.Fatalf("frame index not sorted ascending")
	}
	closes, err := f.Column("close")
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if closes[0] != 101.0 || closes[1] != 102.5 {
		t.Fatalf("rows not reordered with index: %v", closes)
	}
	volume, _ := f.Column("volume")
	if volume[1] != 2000 {
		t.Fatalf("unexpected volume %v", volume)
	}
}
