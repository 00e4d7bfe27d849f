package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg)

	r.RecordSignal("EURUSD", "1m", "BUY")
	r.RecordSignal("EURUSD", "1m", "BUY")
	r.RecordDelivery("photo", nil)
	r.RecordDelivery("text", errors.New("boom"))
	r.RecordRejection("usage")
	r.RecordFetch("yahoo", 150*time.Millisecond)

	require.Equal(t, 2.0, testutil.ToFloat64(r.signals.WithLabelValues("EURUSD", "1m", "BUY")))
	require.Equal(t, 1.0, testutil.ToFloat64(r.deliveries.WithLabelValues("photo", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(r.deliveries.WithLabelValues("text", "error")))
	require.Equal(t, 1.0, testutil.ToFloat64(r.rejections.WithLabelValues("usage")))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	require.True(t, names["fxsentinel_fetch_duration_seconds"])
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	r.RecordSignal("EURUSD", "1m", "SELL")
	r.RecordFetch("yahoo", time.Second)
	r.RecordDelivery("text", nil)
	r.RecordRejection("pair")
}
