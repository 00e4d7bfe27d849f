// Package metrics exposes Prometheus instruments for signal generation and delivery.
// A nil *Recorder is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the process instruments.
type Recorder struct {
	signals      *prometheus.CounterVec
	fetchLatency *prometheus.HistogramVec
	deliveries   *prometheus.CounterVec
	rejections   *prometheus.CounterVec
}

// New registers all instruments on reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		signals: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxsentinel_signals_total",
				Help: "Signals generated, by pair, timeframe and classification",
			},
			[]string{"pair", "timeframe", "classification"},
		),
		fetchLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fxsentinel_fetch_duration_seconds",
				Help:    "Market data fetch latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"},
		),
		deliveries: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxsentinel_deliveries_total",
				Help: "Outbound Telegram deliveries, by kind and result",
			},
			[]string{"kind", "result"},
		),
		rejections: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxsentinel_command_rejections_total",
				Help: "On-demand commands rejected before signal generation",
			},
			[]string{"reason"},
		),
	}
}

// RecordSignal counts a generated signal.
func (r *Recorder) RecordSignal(pair, timeframe, classification string) {
	if r == nil {
		return
	}
	r.signals.WithLabelValues(pair, timeframe, classification).Inc()
}

// RecordFetch observes how long a provider call took.
func (r *Recorder) RecordFetch(provider string, d time.Duration) {
	if r == nil {
		return
	}
	r.fetchLatency.WithLabelValues(provider).Observe(d.Seconds())
}

// RecordDelivery counts an outbound message. kind is "text" or "photo".
func (r *Recorder) RecordDelivery(kind string, err error) {
	if r == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.deliveries.WithLabelValues(kind, result).Inc()
}

// RecordRejection counts an on-demand command rejected by validation.
func (r *Recorder) RecordRejection(reason string) {
	if r == nil {
		return
	}
	r.rejections.WithLabelValues(reason).Inc()
}
