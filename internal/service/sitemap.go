package service

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/domain"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/pagination"
)

// Sitemap paging limits.
const (
	SitemapPageSize = 50
	SitemapMaxPages = 10
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// StaticPages are listed at the top of every sitemap.
var StaticPages = []SitemapLink{
	{Title: "Home", Path: "/"},
	{Title: "About Us", Path: "/about"},
	{Title: "Contact Us", Path: "/contact"},
	{Title: "Services", Path: "/services"},
}

// BusinessLister returns the business index sorted by name.
// *DirectoryService implements it.
type BusinessLister interface {
	AllBusinesses(ctx context.Context) ([]domain.Business, error)
}

// SitemapLink is a static page.
type SitemapLink struct {
	Title string `json:"title"`
	Path  string `json:"path"`
}

// SitemapBusiness is a business entry with the pages that act on it.
type SitemapBusiness struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Path          string `json:"path"`
	QuotePath     string `json:"quote_path"`
	ReviewPath    string `json:"review_path"`
	ComplaintPath string `json:"complaint_path"`
}

// SitemapPage is one page of the browsable sitemap. Total counts the
// businesses reachable through its pages; Indexed counts every business,
// including those past the page cap that only the XML sitemap lists.
type SitemapPage struct {
	StaticPages []SitemapLink
	Businesses  pagination.Page[SitemapBusiness]
	Total       int
	Indexed     int
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

// SitemapService builds the HTML and XML sitemaps.
type SitemapService struct {
	businesses BusinessLister
	baseURL    string
	now        func() time.Time
}

// NewSitemapService creates a new sitemap service. Absolute URLs in the
// XML sitemap are rooted at baseURL.
func NewSitemapService(businesses BusinessLister, baseURL string) *SitemapService {
	return &SitemapService{
		businesses: businesses,
		baseURL:    strings.TrimRight(baseURL, "/"),
		now:        time.Now,
	}
}

// Page returns page n of the browsable sitemap: businesses A to Z, at most
// SitemapMaxPages pages of SitemapPageSize.
func (s *SitemapService) Page(ctx context.Context, n int) (*SitemapPage, error) {
	all, err := s.businesses.AllBusinesses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list businesses for sitemap: %w", err)
	}

	entries := make([]SitemapBusiness, 0, len(all))
	for _, b := range all {
		entries = append(entries, SitemapBusiness{
			ID:            b.ID,
			Name:          b.Name,
			Path:          "/business/" + b.ID,
			QuotePath:     "/quote/" + b.ID,
			ReviewPath:    "/review/" + b.ID,
			ComplaintPath: "/complaint/" + b.ID,
		})
	}

	return &SitemapPage{
		StaticPages: StaticPages,
		Businesses:  pagination.Paginate(entries, SitemapPageSize, SitemapMaxPages, n),
		Total:       min(len(entries), SitemapPageSize*SitemapMaxPages),
		Indexed:     len(entries),
	}, nil
}

// XML renders the sitemaps.org document of every static page and business.
func (s *SitemapService) XML(ctx context.Context) ([]byte, error) {
	all, err := s.businesses.AllBusinesses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list businesses for sitemap: %w", err)
	}

	lastMod := s.now().UTC().Format(time.RFC3339)
	set := urlSet{Xmlns: sitemapNamespace, URLs: make([]sitemapURL, 0, len(StaticPages)+len(all))}
	add := func(path string) {
		set.URLs = append(set.URLs, sitemapURL{
			Loc:        s.baseURL + path,
			LastMod:    lastMod,
			ChangeFreq: "weekly",
			Priority:   0.8,
		})
	}
	for _, p := range StaticPages {
		add(p.Path)
	}
	for _, b := range all {
		add("/business/" + b.ID)
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode sitemap: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}
