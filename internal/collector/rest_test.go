package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRESTFetcher_FetchSeries(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		_, _ = w.Write([]byte(`[{"timestamp":1700000300,"close":151.2},{"timestamp":1700000000,"close":151.0}]`))
	}))
	defer srv.Close()

	f := NewRESTFetcher(srv.URL, "secret", "", time.Second)
	f.Now = func() time.Time { return time.Unix(1700001000, 0) }

	series, err := f.FetchSeries(context.Background(), "USDJPY", "5m", "1mo")
	require.NoError(t, err)
	require.Equal(t, "/api/v1/bars", got.URL.Path)
	require.Equal(t, "USDJPY", got.URL.Query().Get("symbol"))
	require.Equal(t, "5m", got.URL.Query().Get("interval"))
	require.Equal(t, "Bearer secret", got.Header.Get("Authorization"))
	require.Equal(t, []float64{151.0, 151.2}, series.Closes())
}

func TestRESTFetcher_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	f := NewRESTFetcher(srv.URL, "", "", time.Second)
	_, err := f.FetchSeries(context.Background(), "USDJPY", "5m", "1mo")
	require.ErrorContains(t, err, "status 502")
}
