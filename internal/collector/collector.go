package collector

import (
	"context"
	"sync/atomic"
	"time"

	"FXSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Closes []float64
	Err    error
	calls  atomic.Int64
}

func (m *MockFetcher) Name() string { return "mock" }

// Calls returns how many times FetchSeries was invoked.
func (m *MockFetcher) Calls() int { return int(m.calls.Load()) }

func (m *MockFetcher) FetchSeries(_ context.Context, pair, timeframe, _ string) (*model.PriceSeries, error) {
	m.calls.Add(1)
	if m.Err != nil {
		return nil, m.Err
	}
	return &model.PriceSeries{
		Symbol:    pair,
		Timeframe: timeframe,
		Bars:      BarsFromCloses(m.Closes, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), time.Minute),
	}, nil
}

// BarsFromCloses builds evenly spaced bars whose OHLC all equal the given closes.
func BarsFromCloses(closes []float64, start time.Time, step time.Duration) []model.OHLCV {
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:  start.Add(time.Duration(i) * step),
			Open:  c,
			High:  c,
			Low:   c,
			Close: c,
		}
	}
	return bars
}
