package collector

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimeframeDuration(t *testing.T) {
	tests := []struct {
		tf   string
		want time.Duration
		ok   bool
	}{
		{"1m", time.Minute, true},
		{"5m", 5 * time.Minute, true},
		{"1h", time.Hour, true},
		{"1d", 24 * time.Hour, true},
		{"1wk", 7 * 24 * time.Hour, true},
		{"1mo", 0, false},
		{"", 0, false},
		{"bogus", 0, false},
	}
	for _, tt := range tests {
		got, ok := TimeframeDuration(tt.tf)
		require.Equal(t, tt.ok, ok, tt.tf)
		require.Equal(t, tt.want, got, tt.tf)
	}
}

func TestTrimIncomplete(t *testing.T) {
	start := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	bars := BarsFromCloses([]float64{1, 2, 3}, start, time.Minute)

	forming := TrimIncomplete(bars, "1m", start.Add(2*time.Minute+30*time.Second))
	require.Len(t, forming, 2)

	closed := TrimIncomplete(bars, "1m", start.Add(3*time.Minute))
	require.Len(t, closed, 3)

	monthly := TrimIncomplete(bars, "1mo", start)
	require.Len(t, monthly, 3)

	require.Empty(t, TrimIncomplete(nil, "1m", start))
}
