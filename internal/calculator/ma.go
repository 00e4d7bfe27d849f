package calculator

import (
	"errors"

	"github.com/markcheno/go-talib"
)

const (
	FastMAPeriod = 50
	SlowMAPeriod = 200
)

// CalculateSMA computes the simple moving average of the trailing `period` closes.
func CalculateSMA(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(closes) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	return last(talib.Sma(closes, period))
}

// CalculateMA50 returns the 50-period simple moving average.
func CalculateMA50(closes []float64) (float64, error) {
	return CalculateSMA(closes, FastMAPeriod)
}

// CalculateMA200 returns the 200-period simple moving average.
func CalculateMA200(closes []float64) (float64, error) {
	return CalculateSMA(closes, SlowMAPeriod)
}
