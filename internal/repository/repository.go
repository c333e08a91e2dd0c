package repository

import (
	"context"

	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/domain"
)

// BusinessRepository reads and creates directory listings.
type BusinessRepository interface {
	// List returns every business with the ratings of its approved reviews.
	List(ctx context.Context) ([]domain.Business, error)

	// Get returns a business with approved reviews, displayed complaints,
	// products (with their review ratings) and job listings.
	Get(ctx context.Context, id string) (*domain.Business, error)

	// GetReviews returns a business with its approved reviews, oldest first,
	// and its products with their approved reviews.
	GetReviews(ctx context.Context, id string) (*domain.Business, error)

	// GetComplaints returns a business with its displayed complaints and replies.
	GetComplaints(ctx context.Context, id string) (*domain.Business, error)

	// Create adds a business and returns its id.
	Create(ctx context.Context, in domain.BusinessImport) (string, error)
}

// ProductRepository reads products.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	ListByBusiness(ctx context.Context, businessID string) ([]domain.Product, error)
}

// JobRepository reads job listings.
type JobRepository interface {
	GetByID(ctx context.Context, id string) (*domain.JobListing, error)
}

// FeedbackRepository submits reviews, complaints and quote requests. Each
// call returns the id assigned upstream.
type FeedbackRepository interface {
	CreateReview(ctx context.Context, in domain.ReviewSubmission) (string, error)
	CreateComplaint(ctx context.Context, in domain.ComplaintSubmission) (string, error)
	CreateQuote(ctx context.Context, in domain.QuoteSubmission) (string, error)
}

// UserRepository manages accounts on the content API.
type UserRepository interface {
	// Authenticate checks credentials and returns the user, or an
	// Unauthorized error when they do not match.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	Create(ctx context.Context, name, email, password, role string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id, name, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, password string) error
}

// ListingCache holds the business index between requests.
type ListingCache interface {
	// Get returns the cached index and whether it was present.
	Get(ctx context.Context) ([]domain.Business, bool, error)
	Set(ctx context.Context, businesses []domain.Business) error
	Invalidate(ctx context.Context) error
}
