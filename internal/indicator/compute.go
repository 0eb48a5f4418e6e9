package indicator

import (
	"fmt"

	talib "github.com/markcheno/go-talib"
)

// Change appends rate-of-change-percent columns change_pct_{p} for each
// period. Output is rounded to 5 decimal places (fractional change ratio).
func Change(f *Frame, opts ...Option) (*Frame, error) {
	s := newSettings(opts)
	cols, err := f.Columns(s.close)
	if err != nil {
		return nil, err
	}
	close := cols[0]

	out := f.copy()
	for _, p := range s.periodsOr(DefaultChangePeriods) {
		vals := roundAll(maskWarmup(talib.Rocp(close, p), p), 5)
		if err := out.SetColumn(fmt.Sprintf("change_pct_%d", p), vals); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// MidPrice appends the rolling midpoint of high/low over a fixed 2-bar
// window as mid_price.
func MidPrice(f *Frame, opts ...Option) (*Frame, error) {
	s := newSettings(opts)
	cols, err := f.Columns(s.high, s.low)
	if err != nil {
		return nil, err
	}
	high, low := cols[0], cols[1]

	out := f.copy()
	vals := roundAll(maskWarmup(talib.MidPrice(high, low, 2), 1), 3)
	if err := out.SetColumn("mid_price", vals); err != nil {
		return nil, err
	}
	return out, nil
}

// EMA appends exponential moving average columns ema_{p} for each period.
func EMA(f *Frame, opts ...Option) (*Frame, error) {
	s := newSettings(opts)
	cols, err := f.Columns(s.close)
	if err != nil {
		return nil, err
	}
	close := cols[0]

	out := f.copy()
	for _, p := range s.periodsOr(DefaultEMAPeriods) {
		vals := roundAll(maskWarmup(talib.Ema(close, p), p-1), 3)
		if err := out.SetColumn(fmt.Sprintf("ema_%d", p), vals); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// MACD appends macd, macd_signal and macd_hist. The parameter tuple is
// exactly (fast, slow, signal); any other arity fails before computation.
func MACD(f *Frame, opts ...Option) (*Frame, error) {
	s := newSettings(opts)
	periods := s.periodsOr(DefaultMACDPeriods)
	if len(periods) != 3 {
		return nil, &ArityError{Indicator: "macd", Want: 3, Got: len(periods)}
	}
	cols, err := f.Columns(s.close)
	if err != nil {
		return nil, err
	}
	close := cols[0]

	fast, slow, signal := periods[0], periods[1], periods[2]
	macd, macdSignal, macdHist := talib.Macd(close, fast, slow, signal)
	lookback := slow + signal - 2

	out := f.copy()
	for _, c := range []struct {
		name string
		vals []float64
	}{
		{"macd", macd},
		{"macd_signal", macdSignal},
		{"macd_hist", macdHist},
	} {
		if err := out.SetColumn(c.name, roundAll(maskWarmup(c.vals, lookback), 3)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ADX appends average directional index columns adx_{p} for each period.
func ADX(f *Frame, opts ...Option) (*Frame, error) {
	s := newSettings(opts)
	cols, err := f.Columns(s.high, s.low, s.close)
	if err != nil {
		return nil, err
	}
	high, low, close := cols[0], cols[1], cols[2]

	out := f.copy()
	for _, p := range s.periodsOr(DefaultADXPeriods) {
		vals := roundAll(maskWarmup(talib.Adx(high, low, close, p), 2*p-1), 3)
		if err := out.SetColumn(fmt.Sprintf("adx_%d", p), vals); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// RSI appends relative strength index columns rsi_{p} for each period.
func RSI(f *Frame, opts ...Option) (*Frame, error) {
	s := newSettings(opts)
	cols, err := f.Columns(s.close)
	if err != nil {
		return nil, err
	}
	close := cols[0]

	out := f.copy()
	for _, p := range s.periodsOr(DefaultRSIPeriods) {
		vals := roundAll(maskWarmup(talib.Rsi(close, p), p), 3)
		if err := out.SetColumn(fmt.Sprintf("rsi_%d", p), vals); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// CCI appends commodity channel index columns cci_{p} for each period.
func CCI(f *Frame, opts ...Option) (*Frame, error) {
	s := newSettings(opts)
	cols, err := f.Columns(s.high, s.low, s.close)
	if err != nil {
		return nil, err
	}
	high, low, close := cols[0], cols[1], cols[2]

	out := f.copy()
	for _, p := range s.periodsOr(DefaultCCIPeriods) {
		vals := roundAll(maskWarmup(talib.Cci(high, low, close, p), p-1), 3)
		if err := out.SetColumn(fmt.Sprintf("cci_%d", p), vals); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Stoch appends stochastic oscillator columns stoch_k_{p} and stoch_d_{p}.
// The parameter tuple is exactly (period, fastk, fastd); the K and D lines
// are SMA-smoothed, named after the main period.
func Stoch(f *Frame, opts ...Option) (*Frame, error) {
	s := newSettings(opts)
	periods := s.periodsOr(DefaultStochPeriods)
	if len(periods) != 3 {
		return nil, &ArityError{Indicator: "stoch", Want: 3, Got: len(periods)}
	}
	cols, err := f.Columns(s.high, s.low, s.close)
	if err != nil {
		return nil, err
	}
	high, low, close := cols[0], cols[1], cols[2]

	period, fastK, fastD := periods[0], periods[1], periods[2]
	kLine, dLine := talib.Stoch(high, low, close, period, fastK, talib.SMA, fastD, talib.SMA)
	lookback := period + fastK + fastD - 3

	out := f.copy()
	if err := out.SetColumn(fmt.Sprintf("stoch_k_%d", period), roundAll(maskWarmup(kLine, lookback), 3)); err != nil {
		return nil, err
	}
	if err := out.SetColumn(fmt.Sprintf("stoch_d_%d", period), roundAll(maskWarmup(dLine, lookback), 3)); err != nil {
		return nil, err
	}
	return out, nil
}

// ATR appends average true range columns atr_{p} for each period.
func ATR(f *Frame, opts ...Option) (*Frame, error) {
	s := newSettings(opts)
	cols, err := f.Columns(s.high, s.low, s.close)
	if err != nil {
		return nil, err
	}
	high, low, close := cols[0], cols[1], cols[2]

	out := f.copy()
	for _, p := range s.periodsOr(DefaultATRPeriods) {
		vals := roundAll(maskWarmup(talib.Atr(high, low, close, p), p), 3)
		if err := out.SetColumn(fmt.Sprintf("atr_%d", p), vals); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// BBands appends one Bollinger band set: bb_upper_{p}, bb_middle_{p},
// bb_lower_{p}. The parameter tuple is exactly
// (timeperiod, nbdev_up, nbdev_dn, matype).
func BBands(f *Frame, opts ...Option) (*Frame, error) {
	s := newSettings(opts)
	params := s.bbandsOr(DefaultBBandParams)
	if len(params) != 4 {
		return nil, &ArityError{Indicator: "bbands", Want: 4, Got: len(params)}
	}
	cols, err := f.Columns(s.close)
	if err != nil {
		return nil, err
	}
	close := cols[0]

	period := int(params[0])
	upper, middle, lower := talib.BBands(close, period, params[1], params[2], talib.MaType(params[3]))

	out := f.copy()
	for _, c := range []struct {
		name string
		vals []float64
	}{
		{fmt.Sprintf("bb_upper_%d", period), upper},
		{fmt.Sprintf("bb_middle_%d", period), middle},
		{fmt.Sprintf("bb_lower_%d", period), lower},
	} {
		if err := out.SetColumn(c.name, roundAll(maskWarmup(c.vals, period-1), 3)); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// OBV appends the cumulative on-balance volume column obv.
func OBV(f *Frame, opts ...Option) (*Frame, error) {
	s := newSettings(opts)
	cols, err := f.Columns(s.close, s.volume)
	if err != nil {
		return nil, err
	}
	close, volume := cols[0], cols[1]

	out := f.copy()
	if err := out.SetColumn("obv", roundAll(talib.Obv(close, volume), 3)); err != nil {
		return nil, err
	}
	return out, nil
}

// AD appends the cumulative accumulation/distribution column ad.
func AD(f *Frame, opts ...Option) (*Frame, error) {
	s := newSettings(opts)
	cols, err := f.Columns(s.high, s.low, s.close, s.volume)
	if err != nil {
		return nil, err
	}
	high, low, close, volume := cols[0], cols[1], cols[2], cols[3]

	out := f.copy()
	if err := out.SetColumn("ad", roundAll(talib.Ad(high, low, close, volume), 3)); err != nil {
		return nil, err
	}
	return out, nil
}

// VolumeSMA appends simple moving averages of volume as volume_sma_{p}.
func VolumeSMA(f *Frame, opts ...Option) (*Frame, error) {
	s := newSettings(opts)
	cols, err := f.Columns(s.volume)
	if err != nil {
		return nil, err
	}
	volume := cols[0]

	out := f.copy()
	for _, p := range s.periodsOr(DefaultVolumeSMAPeriods) {
		vals := roundAll(maskWarmup(talib.Sma(volume, p), p-1), 3)
		if err := out.SetColumn(fmt.Sprintf("volume_sma_%d", p), vals); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// VWMA appends volume-weighted moving averages as vwma_{p}:
// rolling-sum(close*volume, p) / rolling-sum(volume, p).
func VWMA(f *Frame, opts ...Option) (*Frame, error) {
	s := newSettings(opts)
	cols, err := f.Columns(s.close, s.volume)
	if err != nil {
		return nil, err
	}
	close, volume := cols[0], cols[1]

	pv := make([]float64, len(close))
	for i := range close {
		pv[i] = close[i] * volume[i]
	}

	out := f.copy()
	for _, p := range s.periodsOr(DefaultVWMAPeriods) {
		pvSum := talib.Sum(pv, p)
		vSum := talib.Sum(volume, p)
		vals := make([]float64, len(pvSum))
		for i := range pvSum {
			vals[i] = pvSum[i] / vSum[i]
		}
		if err := out.SetColumn(fmt.Sprintf("vwma_%d", p), roundAll(maskWarmup(vals, p-1), 3)); err != nil {
			return nil, err
		}
	}
	return out, nil
}
