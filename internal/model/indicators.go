package model

// IndicatorSet holds the technical indicators computed for the most recent completed bar.
type IndicatorSet struct {
	Close      float64
	RSI        float64 // 0 ~ 100
	MACD       float64
	MACDSignal float64
	MA50       float64
	MA200      float64
}

// MACDBullish reports whether the MACD line is above its signal line.
func (i IndicatorSet) MACDBullish() bool {
	return i.MACD > i.MACDSignal
}

// TrendUp reports whether MA50 is above MA200.
func (i IndicatorSet) TrendUp() bool {
	return i.MA50 > i.MA200
}
