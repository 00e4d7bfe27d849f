package notifier

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"FXSentinel/internal/model"
)

func TestFormatWarning(t *testing.T) {
	require.Equal(t, "⚠️ EURUSD | 1-minute warning before signal!", FormatWarning("EURUSD", time.Minute))
	require.Equal(t, "⚠️ GBPUSD | 30-second warning before signal!", FormatWarning("GBPUSD", 30*time.Second))
	require.Equal(t, "⚠️ USDJPY | 2-minute warning before signal!", FormatWarning("USDJPY", 2*time.Minute))
}

func TestFormatUnsupportedPair(t *testing.T) {
	pairs := model.NewPairConfig(model.DefaultPairs)
	require.Equal(t, "Pair not supported: EURUSD, GBPUSD, USDJPY", FormatUnsupportedPair(pairs))
	require.Contains(t, FormatHelp(pairs), UsageMessage)
	require.Equal(t, "Supported pairs: EURUSD, GBPUSD, USDJPY", FormatPairs(pairs))
}

func TestParseArgs(t *testing.T) {
	require.Equal(t, []string{"eurusd", "1m"}, ParseArgs("  eurusd   1m "))
	require.Empty(t, ParseArgs(""))
}
