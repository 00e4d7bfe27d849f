package strategy

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"FXSentinel/internal/collector"
	"FXSentinel/internal/metrics"
	"FXSentinel/internal/model"
)

func baseIndicators() model.IndicatorSet {
	return model.IndicatorSet{RSI: 45.00, MACD: 1.2, MACDSignal: 0.8, MA50: 1.10, MA200: 1.05}
}

func TestEvaluate_BuyExample(t *testing.T) {
	sig := Evaluate("EURUSD", "1m", baseIndicators())
	require.Equal(t, model.ClassBuy, sig.Classification)
	require.Equal(t, "EURUSD | 1m | BUY ✅\nReason: RSI=45.00, MACD=Bullish, Trend=Up", sig.Rationale)
}

func TestEvaluate_RSIAloneFlipsToSell(t *testing.T) {
	ind := baseIndicators()
	ind.RSI = 55.00
	sig := Evaluate("EURUSD", "1m", ind)
	require.Equal(t, model.ClassSell, sig.Classification)
	require.Equal(t, "EURUSD | 1m | SELL ❌\nReason: RSI=55.00, MACD=Bullish, Trend=Up", sig.Rationale)
}

func TestClassify_EachConditionRequired(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.IndicatorSet)
		want   model.Classification
	}{
		{"all conditions hold", func(*model.IndicatorSet) {}, model.ClassBuy},
		{"rsi at threshold", func(i *model.IndicatorSet) { i.RSI = 50 }, model.ClassSell},
		{"rsi above threshold", func(i *model.IndicatorSet) { i.RSI = 70 }, model.ClassSell},
		{"macd equal to signal", func(i *model.IndicatorSet) { i.MACDSignal = i.MACD }, model.ClassSell},
		{"macd below signal", func(i *model.IndicatorSet) { i.MACD = 0.1 }, model.ClassSell},
		{"ma50 equal to ma200", func(i *model.IndicatorSet) { i.MA50 = i.MA200 }, model.ClassSell},
		{"ma50 below ma200", func(i *model.IndicatorSet) { i.MA50 = 1.00 }, model.ClassSell},
		{"everything bearish", func(i *model.IndicatorSet) {
			i.RSI, i.MACD, i.MA50 = 80, 0.1, 1.00
		}, model.ClassSell},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ind := baseIndicators()
			tt.mutate(&ind)
			require.Equal(t, tt.want, Classify(ind))
		})
	}
}

func TestDescribe_Tags(t *testing.T) {
	ind := model.IndicatorSet{RSI: 61.236, MACD: -0.4, MACDSignal: -0.2, MA50: 1.2, MA200: 1.3}
	got := Describe("GBPUSD", "5m", model.ClassSell, ind)
	require.Equal(t, "GBPUSD | 5m | SELL ❌\nReason: RSI=61.24, MACD=Bearish, Trend=Down", got)
}

func TestEvaluate_Pure(t *testing.T) {
	a := Evaluate("USDJPY", "1d", baseIndicators())
	b := Evaluate("USDJPY", "1d", baseIndicators())
	require.Equal(t, a.Classification, b.Classification)
	require.Equal(t, a.Rationale, b.Rationale)
}

func quadratic(n int, start, accel float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = start + accel*float64(i*i)
	}
	return closes
}

func newTestEngine(f collector.Fetcher) *Engine {
	return NewEngine(f, "", metrics.New(prometheus.NewRegistry()), zerolog.Nop())
}

func TestEngine_Generate_Uptrend(t *testing.T) {
	e := newTestEngine(&collector.MockFetcher{Closes: quadratic(250, 1.0, 0.00001)})
	sig := e.Generate(context.Background(), "EURUSD", "1m")
	require.Equal(t, model.ClassSell, sig.Classification)
	require.Equal(t, "EURUSD | 1m | SELL ❌\nReason: RSI=100.00, MACD=Bullish, Trend=Up", sig.Rationale)
	require.NotNil(t, sig.Indicators)
	require.False(t, sig.GeneratedAt.IsZero())
}

func TestEngine_Generate_Downtrend(t *testing.T) {
	e := newTestEngine(&collector.MockFetcher{Closes: quadratic(250, 10.0, -0.00001)})
	sig := e.Generate(context.Background(), "USDJPY", "5m")
	require.Equal(t, model.ClassSell, sig.Classification)
	require.Equal(t, "USDJPY | 5m | SELL ❌\nReason: RSI=0.00, MACD=Bearish, Trend=Down", sig.Rationale)
}

func TestEngine_Generate_Idempotent(t *testing.T) {
	e := newTestEngine(&collector.MockFetcher{Closes: quadratic(300, 1.0, 0.00002)})
	a := e.Generate(context.Background(), "EURUSD", "1m")
	b := e.Generate(context.Background(), "EURUSD", "1m")
	require.Equal(t, a.Rationale, b.Rationale)
}

func TestEngine_Generate_FetchError(t *testing.T) {
	f := &collector.MockFetcher{Err: errors.New("network down")}
	sig := newTestEngine(f).Generate(context.Background(), "EURUSD", "1m")
	require.Equal(t, model.ClassError, sig.Classification)
	require.Equal(t, "EURUSD | Error: network down", sig.Rationale)
	require.Nil(t, sig.Indicators)
	require.Equal(t, 1, f.Calls())
}

func TestEngine_Generate_InsufficientHistory(t *testing.T) {
	e := newTestEngine(&collector.MockFetcher{Closes: quadratic(120, 1.0, 0.00001)})
	sig := e.Generate(context.Background(), "GBPUSD", "1m")
	require.Equal(t, model.ClassError, sig.Classification)
	require.Contains(t, sig.Rationale, "insufficient history")
}

type panicFetcher struct{}

func (panicFetcher) Name() string { return "panic" }
func (panicFetcher) FetchSeries(context.Context, string, string, string) (*model.PriceSeries, error) {
	panic("provider exploded")
}

func TestEngine_Generate_RecoversPanic(t *testing.T) {
	sig := newTestEngine(panicFetcher{}).Generate(context.Background(), "EURUSD", "1m")
	require.Equal(t, model.ClassError, sig.Classification)
	require.Contains(t, sig.Rationale, "provider exploded")
}
