package analysis

import "strings"

// rule pairs a label with the keywords that select it. A rule matches when
// any keyword occurs as a substring of the lower-cased query.
type rule[T any] struct {
	label    T
	keywords []string
}

func (r rule[T]) matches(lower string) bool {
	return containsAny(lower, r.keywords)
}

// firstMatch evaluates rules in priority order and returns the first label
// whose rule matches, or fallback.
func firstMatch[T any](lower string, rules []rule[T], fallback T) T {
	for _, r := range rules {
		if r.matches(lower) {
			return r.label
		}
	}
	return fallback
}

func containsAny(lower string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// countMatches returns how many distinct keywords occur in lower.
func countMatches(lower string, keywords []string) int {
	n := 0
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			n++
		}
	}
	return n
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
