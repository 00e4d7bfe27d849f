package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xhit/go-str2duration/v2"

	"FXSentinel/internal/model"
)

const (
	DefaultYahooBaseURL = "https://query1.finance.yahoo.com"
	// FXSuffix marks a symbol as a foreign-exchange pair on Yahoo ("EURUSD=X").
	FXSuffix = "=X"
)

// Yahoo caps how far back intraday intervals reach in a single request.
var yahooMaxRange = map[string]string{
	"1m": "7d",
}

// YahooFetcher implements Fetcher using the Yahoo Finance chart API.
type YahooFetcher struct {
	BaseURL string
	Suffix  string
	Client  *http.Client
	Now     func() time.Time
}

// NewYahooFetcher creates a new Yahoo Finance fetcher with optional proxy support.
func NewYahooFetcher(baseURL, suffix, proxyURL string, timeout time.Duration) *YahooFetcher {
	if baseURL == "" {
		baseURL = DefaultYahooBaseURL
	}
	return &YahooFetcher{
		BaseURL: baseURL,
		Suffix:  suffix,
		Client:  newHTTPClient(proxyURL, timeout),
		Now:     time.Now,
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// Ticker maps an internal pair symbol to the Yahoo ticker.
func (f *YahooFetcher) Ticker(pair string) string {
	return pair + f.Suffix
}

// yahooChart is the response structure from Yahoo Finance chart API.
// Price arrays contain nulls for missing samples.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func at(values []*float64, i int) float64 {
	if i >= len(values) || values[i] == nil {
		return 0
	}
	return *values[i]
}

// clampRange shortens rng to the provider limit for interval. Shorter ranges pass through.
func clampRange(interval, rng string) string {
	limit, ok := yahooMaxRange[interval]
	if !ok {
		return rng
	}
	want, ok := rangeSpan(rng)
	if !ok {
		return limit
	}
	if maxSpan, _ := rangeSpan(limit); want > maxSpan {
		return limit
	}
	return rng
}

// rangeSpan approximates a Yahoo range token ("1d", "5d", "1mo", "1y", "ytd", "max").
func rangeSpan(rng string) (time.Duration, bool) {
	const day = 24 * time.Hour
	r := strings.ToLower(strings.TrimSpace(rng))
	switch {
	case r == "ytd" || r == "max":
		return math.MaxInt64, true
	case strings.HasSuffix(r, "mo"):
		n, err := strconv.Atoi(strings.TrimSuffix(r, "mo"))
		if err != nil || n <= 0 {
			return 0, false
		}
		return time.Duration(n) * 30 * day, true
	case strings.HasSuffix(r, "y"):
		n, err := strconv.Atoi(strings.TrimSuffix(r, "y"))
		if err != nil || n <= 0 {
			return 0, false
		}
		return time.Duration(n) * 365 * day, true
	}
	d, err := str2duration.ParseDuration(r)
	if err != nil || d <= 0 {
		return 0, false
	}
	return d, true
}

func (f *YahooFetcher) FetchSeries(ctx context.Context, pair, timeframe, window string) (*model.PriceSeries, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		f.BaseURL, url.PathEscape(f.Ticker(pair)), url.QueryEscape(timeframe), url.QueryEscape(clampRange(timeframe, window)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
		}
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d", resp.StatusCode)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 ||
		len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo %s: %w", f.Ticker(pair), ErrNoData)
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	bars := make([]model.OHLCV, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		c := at(quote.Close, i)
		if c == 0 {
			continue // skip null bars
		}
		bars = append(bars, model.OHLCV{
			Time:   time.Unix(ts, 0),
			Open:   at(quote.Open, i),
			High:   at(quote.High, i),
			Low:    at(quote.Low, i),
			Close:  c,
			Volume: at(quote.Volume, i),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })

	now := f.Now()
	bars = TrimIncomplete(bars, timeframe, now)
	if len(bars) == 0 {
		return nil, fmt.Errorf("yahoo %s: %w", f.Ticker(pair), ErrNoData)
	}

	return &model.PriceSeries{
		Symbol:    pair,
		Timeframe: timeframe,
		Bars:      bars,
		FetchedAt: now,
	}, nil
}
