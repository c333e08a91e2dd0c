// Package pagination splits ordered collections into numbered pages and
// reads page selections from query strings.
package pagination

import (
	"net/http"
	"strconv"
)

// Page size bounds for page selections read from requests.
const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// Params is a page selection: a 1-based page number and a page size.
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// DefaultParams selects the first page at the default size.
func DefaultParams() Params {
	return Params{Page: 1, PerPage: DefaultPerPage}
}

// FromRequest reads the page and per_page query parameters. Missing or
// malformed values fall back to the defaults; per_page is clamped to
// MaxPerPage. Page numbers past the end are clamped later by the Pager.
func FromRequest(r *http.Request) Params {
	q := r.URL.Query()
	p := DefaultParams()
	if n, ok := positive(q.Get("page")); ok {
		p.Page = n
	}
	if n, ok := positive(q.Get("per_page")); ok {
		p.PerPage = min(n, MaxPerPage)
	}
	return p
}

func positive(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
