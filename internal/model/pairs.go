package model

import (
	"strings"

	"github.com/samber/lo"
)

// DefaultPairs is the pair list used when none is configured.
var DefaultPairs = []string{"EURUSD", "GBPUSD", "USDJPY"}

// PairConfig is the read-only list of supported currency pairs.
type PairConfig struct {
	pairs []string
}

// NewPairConfig normalizes the given symbols to uppercase, dropping blanks and duplicates.
func NewPairConfig(pairs []string) PairConfig {
	normalized := lo.FilterMap(pairs, func(p string, _ int) (string, bool) {
		p = NormalizePair(p)
		return p, p != ""
	})
	return PairConfig{pairs: lo.Uniq(normalized)}
}

// NormalizePair trims and uppercases a pair symbol.
func NormalizePair(pair string) string {
	return strings.ToUpper(strings.TrimSpace(pair))
}

// Pairs returns a copy of the configured pairs in order.
func (c PairConfig) Pairs() []string {
	return append([]string(nil), c.pairs...)
}

// Contains reports whether pair is supported, ignoring case.
func (c PairConfig) Contains(pair string) bool {
	return lo.Contains(c.pairs, NormalizePair(pair))
}

// Len returns the number of configured pairs.
func (c PairConfig) Len() int { return len(c.pairs) }

// String joins the pairs with ", ".
func (c PairConfig) String() string {
	return strings.Join(c.pairs, ", ")
}
