package model

import "time"

// Classification is the directional outcome of a signal.
type Classification string

const (
	ClassBuy   Classification = "BUY"
	ClassSell  Classification = "SELL"
	ClassError Classification = "ERROR"
)

// Marker returns the decorative marker shown next to the classification.
func (c Classification) Marker() string {
	switch c {
	case ClassBuy:
		return "✅"
	case ClassSell:
		return "❌"
	default:
		return ""
	}
}

// Label returns the classification with its marker, e.g. "BUY ✅".
func (c Classification) Label() string {
	if m := c.Marker(); m != "" {
		return string(c) + " " + m
	}
	return string(c)
}

// Signal is the final output of the signal engine. It is never stored.
type Signal struct {
	Pair           string
	Timeframe      string
	Classification Classification
	Rationale      string
	Indicators     *IndicatorSet // nil for ERROR
	GeneratedAt    time.Time
}
