package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/aggregate"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/domain"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/repository"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/search"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/pagination"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/slug"
)

// ListingPageSize is the number of business cards per listing page.
const ListingPageSize = 12

// seoDescriptionLength bounds the meta description of a business page.
const seoDescriptionLength = 160

// BusinessCard is one entry of the business listing.
type BusinessCard struct {
	ID           string                  `json:"id"`
	Name         string                  `json:"name"`
	Slug         string                  `json:"slug"`
	Location     string                  `json:"location,omitempty"`
	ContactEmail string                  `json:"contact_email,omitempty"`
	Industry     string                  `json:"industry,omitempty"`
	Rating       aggregate.RatingSummary `json:"rating"`
}

// ListingPage is one page of the business listing.
type ListingPage struct {
	Page  pagination.Page[BusinessCard]
	Total int
	Query string
}

// ProductCard is a product together with the summary of its reviews.
type ProductCard struct {
	domain.Product
	Rating aggregate.RatingSummary `json:"rating"`
}

// SEOMeta holds the page metadata of a business.
type SEOMeta struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Keywords     string `json:"keywords,omitempty"`
	Slug         string `json:"slug"`
	CanonicalURL string `json:"canonical_url"`
}

// BusinessDetail is everything shown on a business page.
type BusinessDetail struct {
	domain.Business
	Rating          aggregate.RatingSummary `json:"rating"`
	ComplaintCounts []aggregate.WindowCount `json:"complaint_counts"`
	Products        []ProductCard           `json:"products"`
	JobListings     []domain.JobListing     `json:"job_listings"`
	SEO             SEOMeta                 `json:"seo"`
}

// ProductReviews groups the reviews of one product.
type ProductReviews struct {
	ProductID   string                  `json:"product_id"`
	ProductName string                  `json:"product_name"`
	Rating      aggregate.RatingSummary `json:"rating"`
	Reviews     []domain.Review         `json:"reviews"`
}

// ReviewList is one page of a business's reviews plus its product reviews.
type ReviewList struct {
	BusinessID     string
	BusinessName   string
	Rating         aggregate.RatingSummary
	Page           pagination.Page[domain.Review]
	Total          int
	ProductReviews []ProductReviews
}

// ComplaintList is the displayed complaints of a business.
type ComplaintList struct {
	BusinessID   string                  `json:"business_id"`
	BusinessName string                  `json:"business_name"`
	Counts       []aggregate.WindowCount `json:"counts"`
	Complaints   []domain.Complaint      `json:"complaints"`
}

// ProductDetail is a product page.
type ProductDetail struct {
	domain.Product
	Rating  aggregate.RatingSummary `json:"rating"`
	Reviews []domain.Review         `json:"reviews"`
}

// DirectoryService serves the read side of the directory.
type DirectoryService struct {
	businesses repository.BusinessRepository
	products   repository.ProductRepository
	jobs       repository.JobRepository
	cache      repository.ListingCache
	baseURL    string
	logger     *slog.Logger
	now        func() time.Time
}

// NewDirectoryService creates a new directory service. cache may be nil.
func NewDirectoryService(
	businesses repository.BusinessRepository,
	products repository.ProductRepository,
	jobs repository.JobRepository,
	cache repository.ListingCache,
	baseURL string,
	logger *slog.Logger,
) *DirectoryService {
	return &DirectoryService{
		businesses: businesses,
		products:   products,
		jobs:       jobs,
		cache:      cache,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
		now:        time.Now,
	}
}

// AllBusinesses returns the business index sorted by name. The index is
// read through the listing cache when one is configured; cache failures
// fall back to the content API.
func (s *DirectoryService) AllBusinesses(ctx context.Context) ([]domain.Business, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			s.logger.WarnContext(ctx, "listing cache read failed", slog.String("error", err.Error()))
		case ok:
			return sortedByName(cached), nil
		}
	}

	businesses, err := s.businesses.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, businesses); err != nil {
			s.logger.WarnContext(ctx, "listing cache write failed", slog.String("error", err.Error()))
		}
	}
	return sortedByName(businesses), nil
}

// ListBusinesses returns page n of the listing filtered by query. An empty
// query lists every business.
func (s *DirectoryService) ListBusinesses(ctx context.Context, query string, n int) (*ListingPage, error) {
	all, err := s.AllBusinesses(ctx)
	if err != nil {
		return nil, err
	}

	matched := all
	if search.Active(query) {
		matched = search.Filter(query, all)
	}

	cards := make([]BusinessCard, 0, len(matched))
	for _, b := range matched {
		cards = append(cards, toCard(b))
	}

	return &ListingPage{
		Page:  pagination.Paginate(cards, ListingPageSize, 0, n),
		Total: len(cards),
		Query: strings.TrimSpace(query),
	}, nil
}

// GetBusiness returns the detail page of a business.
func (s *DirectoryService) GetBusiness(ctx context.Context, id string) (*BusinessDetail, error) {
	b, err := s.businesses.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get business %s: %w", id, err)
	}

	products := make([]ProductCard, 0, len(b.Products))
	for _, p := range b.Products {
		products = append(products, ProductCard{Product: p, Rating: aggregate.Summarize(p.Reviews)})
	}
	jobs := b.JobListings
	if jobs == nil {
		jobs = []domain.JobListing{}
	}

	return &BusinessDetail{
		Business:        *b,
		Rating:          aggregate.Summarize(b.Reviews),
		ComplaintCounts: aggregate.CountWindows(b.Complaints, s.now()),
		Products:        products,
		JobListings:     jobs,
		SEO:             s.seoMeta(b),
	}, nil
}

// ListReviews returns page n of a business's approved reviews, oldest
// first, with perPage reviews per page.
func (s *DirectoryService) ListReviews(ctx context.Context, id string, n, perPage int) (*ReviewList, error) {
	b, err := s.businesses.GetReviews(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get reviews of business %s: %w", id, err)
	}

	reviews := publicReviews(b.Reviews)
	slices.SortStableFunc(reviews, func(a, b domain.Review) int {
		return a.CreatedAt.Compare(b.CreatedAt.Time)
	})

	productReviews := make([]ProductReviews, 0, len(b.Products))
	for _, p := range b.Products {
		if len(p.Reviews) == 0 {
			continue
		}
		productReviews = append(productReviews, ProductReviews{
			ProductID:   p.ID,
			ProductName: p.Name,
			Rating:      aggregate.Summarize(p.Reviews),
			Reviews:     publicReviews(p.Reviews),
		})
	}

	return &ReviewList{
		BusinessID:     b.ID,
		BusinessName:   b.Name,
		Rating:         aggregate.Summarize(b.Reviews),
		Page:           pagination.Paginate(reviews, perPage, 0, n),
		Total:          len(reviews),
		ProductReviews: productReviews,
	}, nil
}

// ListComplaints returns the displayed complaints of a business, newest
// first, with the number filed in each default window.
func (s *DirectoryService) ListComplaints(ctx context.Context, id string) (*ComplaintList, error) {
	b, err := s.businesses.GetComplaints(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get complaints of business %s: %w", id, err)
	}

	complaints := make([]domain.Complaint, 0, len(b.Complaints))
	for _, c := range b.Complaints {
		complaints = append(complaints, c.Public())
	}
	slices.SortStableFunc(complaints, func(a, b domain.Complaint) int {
		return b.CreatedAt.Compare(a.CreatedAt.Time)
	})

	return &ComplaintList{
		BusinessID:   b.ID,
		BusinessName: b.Name,
		Counts:       aggregate.CountWindows(b.Complaints, s.now()),
		Complaints:   complaints,
	}, nil
}

// ListProducts returns the product cards of a business.
func (s *DirectoryService) ListProducts(ctx context.Context, businessID string) ([]ProductCard, error) {
	products, err := s.products.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("list products of business %s: %w", businessID, err)
	}

	cards := make([]ProductCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, ProductCard{Product: p, Rating: aggregate.Summarize(p.Reviews)})
	}
	return cards, nil
}

// GetProduct returns a product page.
func (s *DirectoryService) GetProduct(ctx context.Context, id string) (*ProductDetail, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", id, err)
	}
	return &ProductDetail{
		Product: *p,
		Rating:  aggregate.Summarize(p.Reviews),
		Reviews: publicReviews(p.Reviews),
	}, nil
}

// GetJob returns a job listing.
func (s *DirectoryService) GetJob(ctx context.Context, id string) (*domain.JobListing, error) {
	j, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get job listing %s: %w", id, err)
	}
	return j, nil
}

func (s *DirectoryService) seoMeta(b *domain.Business) SEOMeta {
	desc := strings.Join(strings.Fields(b.Description), " ")
	if desc == "" {
		desc = fmt.Sprintf("%s reviews, complaints, products and contact details.", b.Name)
	}
	if r := []rune(desc); len(r) > seoDescriptionLength {
		desc = strings.TrimSpace(string(r[:seoDescriptionLength-3])) + "..."
	}

	title := b.Name
	if b.Location != "" {
		title = fmt.Sprintf("%s | %s", b.Name, b.Location)
	}

	return SEOMeta{
		Title:        title,
		Description:  desc,
		Keywords:     b.Keywords,
		Slug:         slug.Generate(b.Name),
		CanonicalURL: s.BusinessURL(b.ID),
	}
}

// BusinessURL returns the public page of a business.
func (s *DirectoryService) BusinessURL(id string) string {
	return s.baseURL + "/business/" + id
}

func toCard(b domain.Business) BusinessCard {
	return BusinessCard{
		ID:           b.ID,
		Name:         b.Name,
		Slug:         slug.Generate(b.Name),
		Location:     b.Location,
		ContactEmail: b.ContactEmail,
		Industry:     b.Industry,
		Rating:       aggregate.Summarize(b.Reviews),
	}
}

func publicReviews(in []domain.Review) []domain.Review {
	out := make([]domain.Review, 0, len(in))
	for _, r := range in {
		out = append(out, r.Public())
	}
	return out
}

func sortedByName(in []domain.Business) []domain.Business {
	out := slices.Clone(in)
	search.SortByName(out)
	return out
}
