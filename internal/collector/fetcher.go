package collector

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"FXSentinel/internal/model"
)

// ErrNoData is returned when the provider answers without any usable bars.
var ErrNoData = errors.New("no data returned")

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	// FetchSeries returns bars for pair at the given timeframe covering the trailing window
	// (a provider range token such as "1mo"), oldest first.
	FetchSeries(ctx context.Context, pair, timeframe, window string) (*model.PriceSeries, error)
	Name() string
}

func newHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
