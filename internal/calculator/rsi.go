package calculator

import (
	"errors"

	"github.com/markcheno/go-talib"
)

// RSIPeriod is the lookback of the momentum oscillator.
const RSIPeriod = 14

// CalculateRSI computes the Wilder-smoothed RSI over the given period and returns the latest value.
// Requires at least period+1 closes.
func CalculateRSI(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(closes) < period+1 {
		return 0, errors.New("not enough data for RSI calculation")
	}
	return last(talib.Rsi(closes, period))
}
