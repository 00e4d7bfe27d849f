package notifier

import (
	"fmt"
	"time"

	"FXSentinel/internal/model"
)

// UsageMessage is the reply to a malformed /signal command.
const UsageMessage = "Usage: /signal PAIR TIMEFRAME\nExample: /signal EURUSD 1m"

// FormatWarning announces an upcoming scheduled signal.
func FormatWarning(pair string, lead time.Duration) string {
	return fmt.Sprintf("⚠️ %s | %s warning before signal!", pair, formatLead(lead))
}

func formatLead(d time.Duration) string {
	if d >= time.Minute && d%time.Minute == 0 {
		return fmt.Sprintf("%d-minute", int(d/time.Minute))
	}
	return fmt.Sprintf("%d-second", int(d.Round(time.Second)/time.Second))
}

// FormatUnsupportedPair lists the pairs the bot accepts.
func FormatUnsupportedPair(pairs model.PairConfig) string {
	return "Pair not supported: " + pairs.String()
}

// FormatPairs answers the /pairs command.
func FormatPairs(pairs model.PairConfig) string {
	return "Supported pairs: " + pairs.String()
}

// FormatHelp answers /help and /start.
func FormatHelp(pairs model.PairConfig) string {
	return UsageMessage + "\n\n/pairs - list supported pairs\nSupported pairs: " + pairs.String()
}
