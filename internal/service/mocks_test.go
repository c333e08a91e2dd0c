package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/domain"
)

// --- Mock Business Repository ---

type mockBusinessRepository struct {
	mock.Mock
}

func (m *mockBusinessRepository) List(ctx context.Context) ([]domain.Business, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Business), args.Error(1)
}

func (m *mockBusinessRepository) Get(ctx context.Context, id string) (*domain.Business, error) {
	return m.business(m.Called(ctx, id))
}

func (m *mockBusinessRepository) GetReviews(ctx context.Context, id string) (*domain.Business, error) {
	return m.business(m.Called(ctx, id))
}

func (m *mockBusinessRepository) GetComplaints(ctx context.Context, id string) (*domain.Business, error) {
	return m.business(m.Called(ctx, id))
}

func (m *mockBusinessRepository) business(args mock.Arguments) (*domain.Business, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

func (m *mockBusinessRepository) Create(ctx context.Context, in domain.BusinessImport) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

// --- Mock Product Repository ---

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *mockProductRepository) ListByBusiness(ctx context.Context, businessID string) ([]domain.Product, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

// --- Mock Job Repository ---

type mockJobRepository struct {
	mock.Mock
}

func (m *mockJobRepository) GetByID(ctx context.Context, id string) (*domain.JobListing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobListing), args.Error(1)
}

// --- Mock Feedback Repository ---

type mockFeedbackRepository struct {
	mock.Mock
}

func (m *mockFeedbackRepository) CreateReview(ctx context.Context, in domain.ReviewSubmission) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *mockFeedbackRepository) CreateComplaint(ctx context.Context, in domain.ComplaintSubmission) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *mockFeedbackRepository) CreateQuote(ctx context.Context, in domain.QuoteSubmission) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

// --- Mock User Repository ---

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) user(args mock.Arguments) (*domain.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	return m.user(m.Called(ctx, email, password))
}

func (m *mockUserRepository) Create(ctx context.Context, name, email, password, role string) (*domain.User, error) {
	return m.user(m.Called(ctx, name, email, password, role))
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, id, name, email string) (*domain.User, error) {
	return m.user(m.Called(ctx, id, name, email))
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, id, password string) error {
	args := m.Called(ctx, id, password)
	return args.Error(0)
}

// --- Mock Listing Cache ---

type mockListingCache struct {
	mock.Mock
}

func (m *mockListingCache) Get(ctx context.Context) ([]domain.Business, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]domain.Business), args.Bool(1), args.Error(2)
}

func (m *mockListingCache) Set(ctx context.Context, businesses []domain.Business) error {
	args := m.Called(ctx, businesses)
	return args.Error(0)
}

func (m *mockListingCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Mock Event Publisher ---

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) PublishReviewSubmitted(ctx context.Context, reviewID string, in domain.ReviewSubmission) error {
	return m.Called(ctx, reviewID, in).Error(0)
}

func (m *mockEventPublisher) PublishComplaintSubmitted(ctx context.Context, complaintID string, in domain.ComplaintSubmission) error {
	return m.Called(ctx, complaintID, in).Error(0)
}

func (m *mockEventPublisher) PublishQuoteRequested(ctx context.Context, quoteID string, in domain.QuoteSubmission) error {
	return m.Called(ctx, quoteID, in).Error(0)
}

func (m *mockEventPublisher) PublishContactSubmitted(ctx context.Context, msg domain.ContactMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *mockEventPublisher) PublishBusinessImported(ctx context.Context, businessID, name, importedBy string) error {
	return m.Called(ctx, businessID, name, importedBy).Error(0)
}

// --- Mock Token Issuer ---

type mockTokenIssuer struct {
	mock.Mock
}

func (m *mockTokenIssuer) GenerateToken(u domain.User) (string, time.Time, error) {
	args := m.Called(u)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// --- Test Helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func monthsAgo(n int) domain.Timestamp {
	return domain.NewTimestamp(testNow.AddDate(0, -n, 0))
}

func review(rating float64, created domain.Timestamp) domain.Review {
	return domain.Review{Rating: domain.NewRating(rating), Content: "ok", CreatedAt: created}
}
