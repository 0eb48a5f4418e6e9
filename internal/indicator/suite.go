package indicator

import "sort"

// Computator is the shared shape of every indicator function: it returns a
// new frame with columns appended and never mutates its input.
type Computator func(*Frame, ...Option) (*Frame, error)

// registry maps the closed set of indicator identifiers to their
// computators. Apply validates names against it before running anything.
var registry = map[string]Computator{
	"change":     Change,
	"mid_price":  MidPrice,
	"ema":        EMA,
	"macd":       MACD,
	"adx":        ADX,
	"rsi":        RSI,
	"cci":        CCI,
	"stoch":      Stoch,
	"atr":        ATR,
	"bbands":     BBands,
	"obv":        OBV,
	"ad":         AD,
	"volume_sma": VolumeSMA,
	"vwma":       VWMA,
}

// allOrder is the canonical full suite: every computator, in catalog order.
var allOrder = []string{
	"change", "mid_price", "ema", "macd", "adx", "rsi", "cci",
	"stoch", "atr", "bbands", "obv", "ad", "volume_sma", "vwma",
}

// coreOrder is the lightweight suite: the trend/momentum/volatility set
// most callers want when annotating for a quick look.
var coreOrder = []string{"ema", "macd", "rsi", "atr", "obv", "bbands"}

// Names returns the sorted list of recognized indicator identifiers.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply runs the named computators in the order given, each consuming the
// frame produced by the prior step. Unknown names fail with an
// UnknownIndicatorError before any computation runs. Options are passed to
// every computator; mixed suites should only override column names here and
// use per-indicator calls for period overrides.
func Apply(f *Frame, names []string, opts ...Option) (*Frame, error) {
	var unknown []string
	for _, name := range names {
		if _, ok := registry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return nil, &UnknownIndicatorError{Names: unknown}
	}

	out := f
	for _, name := range names {
		next, err := registry[name](out, opts...)
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}

// All applies the canonical full suite of fourteen computators with their
// default parameters.
func All(f *Frame, opts ...Option) (*Frame, error) {
	return Apply(f, allOrder, opts...)
}

// Core applies the lightweight six-indicator suite
// (ema, macd, rsi, atr, obv, bbands).
func Core(f *Frame, opts ...Option) (*Frame, error) {
	return Apply(f, coreOrder, opts...)
}
