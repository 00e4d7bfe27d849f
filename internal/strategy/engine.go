// Package strategy turns a price series into a BUY / SELL / ERROR signal.
package strategy

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"FXSentinel/internal/calculator"
	"FXSentinel/internal/collector"
	"FXSentinel/internal/metrics"
	"FXSentinel/internal/model"
)

// RSIThreshold separates the oversold half of the oscillator.
const RSIThreshold = 50.0

// DefaultWindow is the trailing history requested from the provider.
const DefaultWindow = "1mo"

// Classify maps an indicator set to BUY or SELL. There is no neutral state.
func Classify(ind model.IndicatorSet) model.Classification {
	if ind.RSI < RSIThreshold && ind.MACDBullish() && ind.TrendUp() {
		return model.ClassBuy
	}
	return model.ClassSell
}

// Describe renders the single-line rationale for a BUY or SELL signal.
func Describe(pair, timeframe string, class model.Classification, ind model.IndicatorSet) string {
	macd := "Bearish"
	if ind.MACDBullish() {
		macd = "Bullish"
	}
	trend := "Down"
	if ind.TrendUp() {
		trend = "Up"
	}
	return fmt.Sprintf("%s | %s | %s\nReason: RSI=%.2f, MACD=%s, Trend=%s",
		pair, timeframe, class.Label(), ind.RSI, macd, trend)
}

// DescribeError renders the rationale carried by an ERROR signal.
func DescribeError(pair string, err error) string {
	return fmt.Sprintf("%s | Error: %v", pair, err)
}

// Evaluate classifies ind and builds the resulting signal.
func Evaluate(pair, timeframe string, ind model.IndicatorSet) model.Signal {
	class := Classify(ind)
	return model.Signal{
		Pair:           pair,
		Timeframe:      timeframe,
		Classification: class,
		Rationale:      Describe(pair, timeframe, class, ind),
		Indicators:     &ind,
	}
}

// Engine fetches history, computes indicators and classifies the latest completed bar.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	Fetcher collector.Fetcher
	Window  string
	Metrics *metrics.Recorder
	Log     zerolog.Logger
	Now     func() time.Time
}

// NewEngine creates an Engine requesting `window` of history per call.
func NewEngine(fetcher collector.Fetcher, window string, rec *metrics.Recorder, log zerolog.Logger) *Engine {
	if window == "" {
		window = DefaultWindow
	}
	return &Engine{
		Fetcher: fetcher,
		Window:  window,
		Metrics: rec,
		Log:     log.With().Str("component", "engine").Logger(),
		Now:     time.Now,
	}
}

// Generate never fails: fetch and computation errors come back as an ERROR signal.
func (e *Engine) Generate(ctx context.Context, pair, timeframe string) (sig model.Signal) {
	defer func() {
		if r := recover(); r != nil {
			sig = e.errorSignal(pair, timeframe, fmt.Errorf("panic: %v", r))
		}
		sig.GeneratedAt = e.Now()
		e.Metrics.RecordSignal(pair, timeframe, string(sig.Classification))
	}()

	ind, err := e.indicators(ctx, pair, timeframe)
	if err != nil {
		return e.errorSignal(pair, timeframe, err)
	}

	sig = Evaluate(pair, timeframe, *ind)
	e.Log.Debug().
		Str("pair", pair).
		Str("timeframe", timeframe).
		Str("classification", string(sig.Classification)).
		Float64("rsi", ind.RSI).
		Float64("macd", ind.MACD).
		Float64("macd_signal", ind.MACDSignal).
		Float64("ma50", ind.MA50).
		Float64("ma200", ind.MA200).
		Msg("signal generated")
	return sig
}

func (e *Engine) indicators(ctx context.Context, pair, timeframe string) (*model.IndicatorSet, error) {
	start := time.Now()
	series, err := e.Fetcher.FetchSeries(ctx, pair, timeframe, e.Window)
	e.Metrics.RecordFetch(e.Fetcher.Name(), time.Since(start))
	if err != nil {
		return nil, err
	}
	return calculator.Compute(series.Closes())
}

func (e *Engine) errorSignal(pair, timeframe string, err error) model.Signal {
	e.Log.Warn().Err(err).Str("pair", pair).Str("timeframe", timeframe).Msg("signal generation failed")
	return model.Signal{
		Pair:           pair,
		Timeframe:      timeframe,
		Classification: model.ClassError,
		Rationale:      DescribeError(pair, err),
	}
}
