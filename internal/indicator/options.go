package indicator

import (
	"math"

	talib "github.com/markcheno/go-talib"
)

// Default parameter tuples. Callers override per call via WithPeriods /
// WithBBandParams; these values are read-only.
var (
	DefaultChangePeriods    = []int{1, 5, 10, 20}
	DefaultEMAPeriods       = []int{5, 10, 20, 60}
	DefaultMACDPeriods      = []int{12, 26, 9}
	DefaultADXPeriods       = []int{14, 7}
	DefaultRSIPeriods       = []int{7, 14}
	DefaultCCIPeriods       = []int{14, 7}
	DefaultStochPeriods     = []int{9, 3, 3}
	DefaultATRPeriods       = []int{3, 14}
	DefaultBBandParams      = []float64{5, 2.0, 2.0, float64(talib.SMA)}
	DefaultVolumeSMAPeriods = []int{5, 10, 20}
	DefaultVWMAPeriods      = []int{5, 10}
)

// Default source column names.
const (
	DefaultCloseColumn  = "close"
	DefaultHighColumn   = "high"
	DefaultLowColumn    = "low"
	DefaultVolumeColumn = "volume"
)

// Option configures a single computator call.
type Option func(*settings)

type settings struct {
	periods []int     // nil means "use the computator's defaults"
	bbands  []float64 // same, for the BBANDS tuple
	close   string
	high    string
	low     string
	volume  string
}

func newSettings(opts []Option) settings {
	s := settings{
		close:  DefaultCloseColumn,
		high:   DefaultHighColumn,
		low:    DefaultLowColumn,
		volume: DefaultVolumeColumn,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (s settings) periodsOr(def []int) []int {
	if s.periods == nil {
		return def
	}
	return s.periods
}

func (s settings) bbandsOr(def []float64) []float64 {
	if s.bbands == nil {
		return def
	}
	return s.bbands
}

// WithPeriods overrides the period list. Calling it with no arguments yields
// an empty list, which is a degenerate no-op for the list-based computators.
func WithPeriods(periods ...int) Option {
	return func(s *settings) {
		s.periods = append([]int{}, periods...)
	}
}

// WithBBandParams overrides the Bollinger tuple
// (timeperiod, nbdev_up, nbdev_dn, matype).
func WithBBandParams(params ...float64) Option {
	return func(s *settings) {
		s.bbands = append([]float64{}, params...)
	}
}

// WithCloseColumn overrides the close-price column name.
func WithCloseColumn(name string) Option {
	return func(s *settings) { s.close = name }
}

// WithHighColumn overrides the high-price column name.
func WithHighColumn(name string) Option {
	return func(s *settings) { s.high = name }
}

// WithLowColumn overrides the low-price column name.
func WithLowColumn(name string) Option {
	return func(s *settings) { s.low = name }
}

// WithVolumeColumn overrides the volume column name.
func WithVolumeColumn(name string) Option {
	return func(s *settings) { s.volume = name }
}

// maskWarmup replaces the leading lookback entries with NaN. The TA library
// leaves the warm-up region zeroed, which is indistinguishable from a real
// value; undefined entries must be missing-value sentinels.
func maskWarmup(values []float64, lookback int) []float64 {
	if lookback > len(values) {
		lookback = len(values)
	}
	for i := 0; i < lookback; i++ {
		values[i] = math.NaN()
	}
	return values
}

// roundAll rounds every value to the given number of decimal places.
// The rounding is a presentation contract carried over from the CSV
// consumers: 3 places for price-scale outputs, 5 for change ratios.
// NaN passes through unchanged.
func roundAll(values []float64, places int) []float64 {
	pow := math.Pow(10, float64(places))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		values[i] = math.Round(v*pow) / pow
	}
	return values
}
