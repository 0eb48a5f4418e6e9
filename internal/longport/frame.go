package longport

import (
	"sort"
	"time"

	"github.com/zhuxining/skills-dev/internal/indicator"
)

// ToFrame converts candlesticks into an indicator Frame with the standard
// open/high/low/close/volume/turnover columns, sorted by time ascending.
func ToFrame(symbol string, candles []Candlestick) *indicator.Frame {
	sorted := make([]Candlestick, len(candles))
	copy(sorted, candles)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Timestamp < sorted[j].Timestamp })

	n := len(sorted)
	index := make([]time.Time, n)
	open := make([]float64, n)
	high := make([]float64, n)
	low := make([]float64, n)
	closes := make([]float64, n)
	volume := make([]float64, n)
	turnover := make([]float64, n)
	for i, c := range sorted {
		index[i] = time.Unix(c.Timestamp, 0).UTC()
		open[i] = c.Open.InexactFloat64()
		high[i] = c.High.InexactFloat64()
		low[i] = c.Low.InexactFloat64()
		closes[i] = c.Close.InexactFloat64()
		volume[i] = float64(c.Volume)
		turnover[i] = c.Turnover.InexactFloat64()
	}

	f := indicator.NewFrame(symbol, index)
	// SetColumn only fails on a length mismatch, impossible here.
	_ = f.SetColumn("open", open)
	_ = f.SetColumn("high", high)
	_ = f.SetColumn("low", low)
	_ = f.SetColumn("close", closes)
	_ = f.SetColumn("volume", volume)
	_ = f.SetColumn("turnover", turnover)
	return f
}
