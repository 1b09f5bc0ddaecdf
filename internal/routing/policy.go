// Package routing decides, per inbound message, whether to answer it with
// live search data, a generative reply, or both, and shapes the final
// payload.
package routing

import "strings"

// PolicyFilter rejects messages matching a blocked-content list before any
// external call is made. Substring matching is a blunt instrument and a
// known limitation: it over-blocks terms inside innocuous words and
// under-blocks paraphrases.
type PolicyFilter struct {
	terms []string
}

// NewPolicyFilter builds a filter over the given terms. Matching is
// case-insensitive.
func NewPolicyFilter(terms []string) *PolicyFilter {
	lowered := make([]string, len(terms))
	for i, t := range terms {
		lowered[i] = strings.ToLower(t)
	}
	return &PolicyFilter{terms: lowered}
}

// Blocked reports whether the message contains any blocked term. It
// short-circuits on the first hit and cannot fail.
func (f *PolicyFilter) Blocked(message string) bool {
	lower := strings.ToLower(message)
	for _, t := range f.terms {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}
