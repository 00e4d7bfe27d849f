package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"FXSentinel/internal/metrics"
)

func TestServer_Healthz(t *testing.T) {
	srv := New(":0", prometheus.NewRegistry(), zerolog.Nop())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestServer_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.New(reg).RecordSignal("EURUSD", "1m", "BUY")
	srv := New(":0", reg, zerolog.Nop())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `fxsentinel_signals_total{classification="BUY",pair="EURUSD",timeframe="1m"} 1`)
}
