package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPager_TotalPagesRoundsUp(t *testing.T) {
	p := NewPager(seq(125), 50, 0)
	assert.Equal(t, 3, p.TotalPages())
	assert.Equal(t, 1, p.CurrentPage())
}

func TestPager_LastPageIsPartial(t *testing.T) {
	p := NewPager(seq(125), 50, 0)
	assert.Equal(t, 3, p.GoTo(3))

	page := p.Page()
	require.Len(t, page.Items, 25)
	assert.Equal(t, 101, page.Items[0])
	assert.Equal(t, 125, page.Items[24])
	assert.Equal(t, 3, page.PageNumber)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrev)
}

func TestPager_EmptyCollectionHasOnePage(t *testing.T) {
	p := NewPager[int](nil, 12, 0)
	page := p.Page()
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 1, page.PageNumber)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrev)
}

func TestPager_GoToClamps(t *testing.T) {
	p := NewPager(seq(30), 10, 0)
	assert.Equal(t, 1, p.GoTo(0))
	assert.Equal(t, 1, p.GoTo(-4))
	assert.Equal(t, 3, p.GoTo(99))
	assert.Equal(t, 2, p.GoTo(2))
}

func TestPager_ResetReturnsToFirstPage(t *testing.T) {
	p := NewPager(seq(125), 50, 0)
	p.GoTo(3)
	require.Equal(t, 3, p.CurrentPage())

	p.Reset(seq(7))
	assert.Equal(t, 1, p.CurrentPage())

	page := p.Page()
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7}, page.Items)
	assert.Equal(t, 1, page.TotalPages)
}

func TestPager_MaxPagesCapsTail(t *testing.T) {
	p := NewPager(seq(700), 50, 10)
	assert.Equal(t, 10, p.TotalPages())
	assert.Equal(t, 700, p.Len())

	assert.Equal(t, 10, p.GoTo(14))
	page := p.Page()
	assert.Equal(t, 451, page.Items[0])
	assert.Equal(t, 500, page.Items[len(page.Items)-1])
	assert.False(t, page.HasNext)
}

func TestPager_NextPrev(t *testing.T) {
	p := NewPager(seq(25), 10, 0)
	assert.Equal(t, 2, p.Next())
	assert.Equal(t, 3, p.Next())
	assert.Equal(t, 3, p.Next())
	assert.Equal(t, 2, p.Prev())
	assert.Equal(t, 1, p.Prev())
	assert.Equal(t, 1, p.Prev())
}

func TestPager_NonPositivePageSizeUsesDefault(t *testing.T) {
	p := NewPager(seq(45), 0, 0)
	assert.Equal(t, 3, p.TotalPages())
	assert.Len(t, p.Page().Items, 20)
}

func TestPager_PageItemsAreCopied(t *testing.T) {
	src := seq(5)
	p := NewPager(src, 5, 0)
	page := p.Page()
	page.Items[0] = 99
	assert.Equal(t, 1, src[0])
}

func TestPaginate(t *testing.T) {
	page := Paginate(seq(13), 12, 0, 2)
	assert.Equal(t, []int{13}, page.Items)
	assert.Equal(t, 2, page.TotalPages)
	assert.True(t, page.HasPrev)
}
