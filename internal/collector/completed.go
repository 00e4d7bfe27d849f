package collector

import (
	"strings"
	"time"

	"github.com/xhit/go-str2duration/v2"

	"FXSentinel/internal/model"
)

// TimeframeDuration converts a provider granularity token ("1m", "1h", "1d", "1wk") to a duration.
// Calendar-month tokens have no fixed duration and return false.
func TimeframeDuration(timeframe string) (time.Duration, bool) {
	tf := strings.ToLower(strings.TrimSpace(timeframe))
	if tf == "" || strings.HasSuffix(tf, "mo") {
		return 0, false
	}
	tf = strings.TrimSuffix(tf, "k") // "1wk" -> "1w"
	d, err := str2duration.ParseDuration(tf)
	if err != nil || d <= 0 {
		return 0, false
	}
	return d, true
}

// TrimIncomplete drops the trailing bar while it is still forming at `now`.
func TrimIncomplete(bars []model.OHLCV, timeframe string, now time.Time) []model.OHLCV {
	if len(bars) == 0 {
		return bars
	}
	d, ok := TimeframeDuration(timeframe)
	if !ok {
		return bars
	}
	last := bars[len(bars)-1]
	if last.Time.Add(d).After(now) {
		return bars[:len(bars)-1]
	}
	return bars
}
