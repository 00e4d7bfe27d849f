package calculator

import (
	"errors"

	"github.com/markcheno/go-talib"
)

// Standard MACD periods.
const (
	MACDFast   = 12
	MACDSlow   = 26
	MACDSignal = 9
)

// CalculateMACD returns the latest MACD line and signal line values.
// Requires at least slow+signal-1 closes.
func CalculateMACD(closes []float64, fast, slow, signal int) (macd, macdSignal float64, err error) {
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return 0, 0, errors.New("periods must be positive")
	}
	if fast >= slow {
		return 0, 0, errors.New("fast period must be shorter than slow period")
	}
	if len(closes) < slow+signal-1 {
		return 0, 0, errors.New("not enough data for MACD calculation")
	}
	line, sig, _ := talib.Macd(closes, fast, slow, signal)
	if macd, err = last(line); err != nil {
		return 0, 0, err
	}
	if macdSignal, err = last(sig); err != nil {
		return 0, 0, err
	}
	return macd, macdSignal, nil
}
