package service

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/domain"
)

type staticLister []domain.Business

func (l staticLister) AllBusinesses(context.Context) ([]domain.Business, error) {
	return l, nil
}

func manyBusinesses(n int) staticLister {
	out := make(staticLister, n)
	for i := range out {
		out[i] = domain.Business{ID: fmt.Sprintf("b%03d", i), Name: fmt.Sprintf("Business %03d", i)}
	}
	return out
}

func TestSitemapPage_PagingAndCap(t *testing.T) {
	svc := NewSitemapService(manyBusinesses(620), "https://dir.example")

	first, err := svc.Page(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, SitemapPageSize*SitemapMaxPages, first.Total)
	assert.Equal(t, 620, first.Indexed)
	assert.Equal(t, SitemapMaxPages, first.Businesses.TotalPages)
	assert.Len(t, first.Businesses.Items, SitemapPageSize)
	assert.Equal(t, StaticPages, first.StaticPages)
	assert.Equal(t, "/business/b000", first.Businesses.Items[0].Path)
	assert.Equal(t, "/quote/b000", first.Businesses.Items[0].QuotePath)

	last, err := svc.Page(context.Background(), 99)
	require.NoError(t, err)
	assert.Equal(t, SitemapMaxPages, last.Businesses.PageNumber)
	assert.Equal(t, "b450", last.Businesses.Items[0].ID)
	assert.False(t, last.Businesses.HasNext)
}

func TestSitemapPage_TotalBelowCap(t *testing.T) {
	svc := NewSitemapService(manyBusinesses(120), "https://dir.example")

	page, err := svc.Page(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 120, page.Total)
	assert.Equal(t, 120, page.Indexed)
	assert.Equal(t, 3, page.Businesses.TotalPages)
	assert.Len(t, page.Businesses.Items, 20)
}

func TestSitemapXML(t *testing.T) {
	svc := NewSitemapService(manyBusinesses(2), "https://dir.example/")
	svc.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	out, err := svc.XML(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), xml.Header))

	var set urlSet
	require.NoError(t, xml.Unmarshal(out, &set))
	require.Len(t, set.URLs, len(StaticPages)+2)
	assert.Equal(t, "https://dir.example/", set.URLs[0].Loc)
	assert.Equal(t, "https://dir.example/business/b001", set.URLs[len(set.URLs)-1].Loc)
	assert.Equal(t, "2024-01-02T03:04:05Z", set.URLs[0].LastMod)
	assert.Equal(t, "weekly", set.URLs[0].ChangeFreq)
	assert.Contains(t, string(out), `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`)
}
