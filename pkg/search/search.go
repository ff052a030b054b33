// Package search filters catalog records by a free-text term.
package search

import (
	"strings"

	"langcat/pkg/model"
)

// Normalize lowercases the term and trims surrounding whitespace.
func Normalize(term string) string {
	return strings.TrimSpace(strings.ToLower(term))
}

// Matches reports whether the record's name or description contains the
// normalized term. Record fields are case-folded but not trimmed.
func Matches(l *model.Language, normalized string) bool {
	if normalized == "" {
		return true
	}
	return strings.Contains(strings.ToLower(l.Name), normalized) ||
		strings.Contains(strings.ToLower(l.Description), normalized)
}

// Filter returns the records matching term, in their original order.
// The input slice is never modified; the result is always a new slice.
func Filter(records []model.Language, term string) []model.Language {
	normalized := Normalize(term)

	out := make([]model.Language, 0, len(records))
	for i := range records {
		if Matches(&records[i], normalized) {
			out = append(out, records[i])
		}
	}
	return out
}
