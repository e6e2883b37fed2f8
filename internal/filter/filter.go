// Package filter narrows a collection of summaries down to the working view:
// keyword search on titles plus a list of exclusion terms.
package filter

import (
	"strings"

	"github.com/matheuskafuri/billwatch/internal/congress"
)

// DefaultTerms hides ceremonial resolutions.
var DefaultTerms = []string{
	"Congratulating",
	"Recognizing",
	"Expressing support",
	"Commemorating",
	"Condemning",
	"Acknowledging",
	"Designating",
	"To Name",
	"Honoring",
}

// Tokens splits a search query into lowercase whitespace-separated words.
func Tokens(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// Apply returns the records that match query and none of terms.
//
// With at least one query token, a record is kept when its title contains
// any token; records without a title are dropped. Then every record whose
// title contains one of terms is dropped; records without a title survive
// that step. Matching is case-insensitive substring matching. bills is not
// modified.
func Apply(bills []congress.BillSummary, query string, terms []string) []congress.BillSummary {
	tokens := Tokens(query)
	lowered := make([]string, 0, len(terms))
	for _, t := range terms {
		if t = strings.ToLower(t); t != "" {
			lowered = append(lowered, t)
		}
	}

	out := make([]congress.BillSummary, 0, len(bills))
	for _, b := range bills {
		title := strings.ToLower(b.Title())
		if len(tokens) > 0 && (title == "" || !containsAny(title, tokens)) {
			continue
		}
		if title != "" && containsAny(title, lowered) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
