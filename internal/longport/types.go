// Package longport is a thin client for the LongPort OpenAPI: candlestick
// history, watchlist groups, and the real-time quote push stream.
package longport

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Candlestick is one OHLCV bar. Price fields are decimals on the wire;
// convert to float64 only at the computation boundary.
type Candlestick struct {
	Timestamp int64           `json:"timestamp"`
	Open      decimal.Decimal `json:"open"`
	High      decimal.Decimal `json:"high"`
	Low       decimal.Decimal `json:"low"`
	Close     decimal.Decimal `json:"close"`
	Volume    int64           `json:"volume"`
	Turnover  decimal.Decimal `json:"turnover"`
}

// Quote is a real-time quote push event.
type Quote struct {
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"last_done"`
	Volume    int64           `json:"volume"`
	Turnover  decimal.Decimal `json:"turnover"`
	Timestamp int64           `json:"timestamp"`
}

// Security is one watchlist member.
type Security struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Group is a brokerage-side watchlist group. The API owns its persistence.
type Group struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Securities []Security `json:"securities"`
}

// Symbols returns the member symbols in group order.
func (g *Group) Symbols() []string {
	symbols := make([]string, len(g.Securities))
	for i, s := range g.Securities {
		symbols[i] = s.Symbol
	}
	return symbols
}

// UpdateMode selects how UpdateGroup merges symbols into a group.
type UpdateMode string

const (
	UpdateAdd     UpdateMode = "add"
	UpdateRemove  UpdateMode = "remove"
	UpdateReplace UpdateMode = "replace"
)

// AdjustType selects price adjustment for candlestick history.
type AdjustType int

const (
	AdjustNone    AdjustType = 0
	AdjustForward AdjustType = 1
)

// Period is a candlestick interval in wire form.
type Period string

const (
	PeriodDay     Period = "day"
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

var periodAliases = map[string]Period{
	"1m":      "1m",
	"2m":      "2m",
	"3m":      "3m",
	"5m":      "5m",
	"10m":     "10m",
	"15m":     "15m",
	"20m":     "20m",
	"30m":     "30m",
	"45m":     "45m",
	"60m":     "60m",
	"120m":    "120m",
	"180m":    "180m",
	"240m":    "240m",
	"1h":      "60m",
	"4h":      "240m",
	"day":     PeriodDay,
	"d":       PeriodDay,
	"week":    PeriodWeek,
	"w":       PeriodWeek,
	"month":   PeriodMonth,
	"m":       PeriodMonth,
	"quarter": PeriodQuarter,
	"q":       PeriodQuarter,
	"year":    PeriodYear,
	"y":       PeriodYear,
}

// ParsePeriod resolves a user-facing period string (1m/5m/1h/4h/day/week/
// month/quarter/year and short forms) to its wire value.
func ParsePeriod(s string) (Period, error) {
	p, ok := periodAliases[strings.ToLower(s)]
	if !ok {
		return "", fmt.Errorf("unsupported period: %s", s)
	}
	return p, nil
}
