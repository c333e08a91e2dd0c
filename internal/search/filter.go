// Package search implements the directory's substring search: filtering,
// match highlighting and a debounced interactive session.
package search

import (
	"strings"
	"unicode"
)

// Searchable exposes the text fields a query is matched against.
type Searchable interface {
	SearchFields() []string
}

// Filter returns the items where query is a case-insensitive substring of
// any search field, in their original order.
//
// A blank query means no filter is active and Filter returns nil; callers
// decide whether that shows the full collection or nothing.
func Filter[T Searchable](query string, items []T) []T {
	q := normalize(query)
	if q == "" {
		return nil
	}

	out := make([]T, 0)
	for _, item := range items {
		if Matches(item, q) {
			out = append(out, item)
		}
	}
	return out
}

// Matches reports whether query occurs in any search field of item.
func Matches(item Searchable, query string) bool {
	q := normalize(query)
	if q == "" {
		return false
	}
	for _, field := range item.SearchFields() {
		if field != "" && strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Active reports whether query would filter anything.
func Active(query string) bool {
	return strings.TrimFunc(query, unicode.IsSpace) != ""
}

func normalize(query string) string {
	return strings.ToLower(strings.TrimFunc(query, unicode.IsSpace))
}
