// Package calculator computes the technical indicators the signal engine classifies on.
package calculator

import (
	"errors"
	"fmt"
	"math"

	"FXSentinel/internal/model"
)

// MinHistory is the number of closes needed for every indicator to be defined.
const MinHistory = SlowMAPeriod

var (
	ErrInsufficientHistory = errors.New("insufficient history")
	errInvalidValue        = errors.New("indicator produced an invalid value")
)

// Compute derives the full IndicatorSet from closes, evaluated on the last close.
func Compute(closes []float64) (*model.IndicatorSet, error) {
	if len(closes) < MinHistory {
		return nil, fmt.Errorf("%w: need %d samples, got %d", ErrInsufficientHistory, MinHistory, len(closes))
	}
	for i, c := range closes {
		if math.IsNaN(c) || math.IsInf(c, 0) || c <= 0 {
			return nil, fmt.Errorf("invalid close %v at index %d", c, i)
		}
	}

	ind := &model.IndicatorSet{Close: closes[len(closes)-1]}
	var err error

	if ind.RSI, err = CalculateRSI(closes, RSIPeriod); err != nil {
		return nil, fmt.Errorf("rsi: %w", err)
	}
	if ind.MACD, ind.MACDSignal, err = CalculateMACD(closes, MACDFast, MACDSlow, MACDSignal); err != nil {
		return nil, fmt.Errorf("macd: %w", err)
	}
	if ind.MA50, err = CalculateMA50(closes); err != nil {
		return nil, fmt.Errorf("ma50: %w", err)
	}
	if ind.MA200, err = CalculateMA200(closes); err != nil {
		return nil, fmt.Errorf("ma200: %w", err)
	}
	return ind, nil
}

func last(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, errInvalidValue
	}
	v := values[len(values)-1]
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errInvalidValue
	}
	return v, nil
}
