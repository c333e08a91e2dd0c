package search

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/pagination"
)

// Record is a searchable item that can be ordered by name.
type Record interface {
	Searchable
	SortName() string
}

// SessionConfig configures a Session.
type SessionConfig struct {
	Delay    time.Duration
	PageSize int
	MaxPages int
}

// Session is an interactive search over a fixed collection. Queries typed
// through Type are debounced; when one fires the results are re-filtered,
// sorted by name and the pager goes back to page 1. A search that finishes
// after a newer one has started is discarded.
type Session[T Record] struct {
	mu        sync.RWMutex
	all       []T
	query     string
	results   []T
	pager     *pagination.Pager[T]
	debouncer *Debouncer
	onUpdate  func(query string, results []T)
}

// NewSession creates a session over items. onUpdate, if not nil, is
// called after every completed search.
func NewSession[T Record](items []T, cfg SessionConfig, onUpdate func(query string, results []T)) *Session[T] {
	s := &Session[T]{
		all:      items,
		pager:    pagination.NewPager[T](nil, cfg.PageSize, cfg.MaxPages),
		onUpdate: onUpdate,
	}
	s.debouncer = NewDebouncer(cfg.Delay, s.apply)
	return s
}

// Type records a keystroke-level query change.
func (s *Session[T]) Type(query string) {
	s.debouncer.Trigger(query)
}

// Submit runs query immediately, cancelling any pending debounced search.
func (s *Session[T]) Submit(query string) {
	s.debouncer.Flush(query)
}

// Clear empties the query and the result list.
func (s *Session[T]) Clear() {
	s.debouncer.Flush("")
}

// Close stops the debouncer.
func (s *Session[T]) Close() {
	s.debouncer.Stop()
}

func (s *Session[T]) apply(query string, gen uint64) {
	results := Filter(query, s.snapshot())
	if results != nil {
		SortByName(results)
	}

	s.mu.Lock()
	if !s.debouncer.Current(gen) {
		s.mu.Unlock()
		return
	}
	s.query = query
	s.results = results
	s.pager.Reset(results)
	s.mu.Unlock()

	if s.onUpdate != nil {
		s.onUpdate(query, results)
	}
}

func (s *Session[T]) snapshot() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.all
}

// Query returns the last applied query.
func (s *Session[T]) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// Results returns the current matches, nil when no query is active.
func (s *Session[T]) Results() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.results)
}

// View is a consistent snapshot of a session.
type View[T any] struct {
	Query  string
	Active bool
	Page   pagination.Page[T]
}

// View returns the query, whether it filters anything and the current
// page, all taken from the same applied search.
func (s *Session[T]) View() View[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return View[T]{Query: s.query, Active: s.results != nil, Page: s.pager.Page()}
}

// Page returns the current page of results.
func (s *Session[T]) Page() pagination.Page[T] {
	return s.pager.Page()
}

// GoTo moves the result pager to page n (clamped).
func (s *Session[T]) GoTo(n int) int {
	return s.pager.GoTo(n)
}

// SortByName orders records by name, case-insensitively, keeping the
// original order of equal names.
func SortByName[T interface{ SortName() string }](items []T) {
	slices.SortStableFunc(items, func(a, b T) int {
		return strings.Compare(strings.ToLower(a.SortName()), strings.ToLower(b.SortName()))
	})
}
