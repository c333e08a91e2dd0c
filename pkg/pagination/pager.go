package pagination

import "sync"

// Page is one slice of a Pager's collection plus navigation state.
type Page[T any] struct {
	Items      []T  `json:"items"`
	PageNumber int  `json:"page"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

// Pager slices an ordered collection into fixed-size pages.
//
// The current page always lies in [1, TotalPages]. TotalPages is at least 1,
// so an empty collection is shown as a single empty page. When maxPages is
// positive the page count is capped and items past the cap are unreachable.
type Pager[T any] struct {
	mu       sync.RWMutex
	items    []T
	pageSize int
	maxPages int
	current  int
}

// NewPager creates a pager positioned on page 1. A non-positive pageSize
// falls back to DefaultParams().PerPage.
func NewPager[T any](items []T, pageSize, maxPages int) *Pager[T] {
	if pageSize <= 0 {
		pageSize = DefaultParams().PerPage
	}
	return &Pager[T]{
		items:    items,
		pageSize: pageSize,
		maxPages: maxPages,
		current:  1,
	}
}

// TotalPages returns the number of reachable pages.
func (p *Pager[T]) TotalPages() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.totalPages()
}

func (p *Pager[T]) totalPages() int {
	total := (len(p.items) + p.pageSize - 1) / p.pageSize
	if total < 1 {
		total = 1
	}
	if p.maxPages > 0 && total > p.maxPages {
		total = p.maxPages
	}
	return total
}

// CurrentPage returns the 1-based current page number.
func (p *Pager[T]) CurrentPage() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// GoTo moves to page n, clamped to [1, TotalPages], and returns the page
// actually selected.
func (p *Pager[T]) GoTo(n int) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	total := p.totalPages()
	switch {
	case n < 1:
		n = 1
	case n > total:
		n = total
	}
	p.current = n
	return n
}

// Next advances one page if possible.
func (p *Pager[T]) Next() int {
	return p.GoTo(p.CurrentPage() + 1)
}

// Prev goes back one page if possible.
func (p *Pager[T]) Prev() int {
	return p.GoTo(p.CurrentPage() - 1)
}

// Reset replaces the source collection and returns to page 1.
func (p *Pager[T]) Reset(items []T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = items
	p.current = 1
}

// Len returns the size of the underlying collection, including any items
// beyond the page cap.
func (p *Pager[T]) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.items)
}

// Page returns the items and navigation state of the current page.
func (p *Pager[T]) Page() Page[T] {
	p.mu.RLock()
	defer p.mu.RUnlock()

	total := p.totalPages()
	start := (p.current - 1) * p.pageSize
	end := start + p.pageSize
	if start > len(p.items) {
		start = len(p.items)
	}
	if end > len(p.items) {
		end = len(p.items)
	}

	items := make([]T, end-start)
	copy(items, p.items[start:end])

	return Page[T]{
		Items:      items,
		PageNumber: p.current,
		TotalPages: total,
		HasNext:    p.current < total,
		HasPrev:    p.current > 1,
	}
}

// Paginate returns page n of items without keeping pager state. It is the
// one-shot form used by request handlers.
func Paginate[T any](items []T, pageSize, maxPages, n int) Page[T] {
	p := NewPager(items, pageSize, maxPages)
	p.GoTo(n)
	return p.Page()
}
