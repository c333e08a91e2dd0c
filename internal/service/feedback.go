package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/domain"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/repository"
	apperrors "github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/errors"
)

// ReviewInput is a review as entered by a signed-in user.
type ReviewInput struct {
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
	Content     string `json:"content" validate:"required,max=5000"`
	IsAnonymous bool   `json:"is_anonymous"`
}

// ComplaintInput is a complaint as entered by a signed-in user.
type ComplaintInput struct {
	Subject     string `json:"subject" validate:"required,max=200"`
	Content     string `json:"content" validate:"required,max=5000"`
	IsAnonymous bool   `json:"is_anonymous"`
}

// QuoteInput is a quote request as entered by a signed-in user.
type QuoteInput struct {
	Service string `json:"service" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

// Submission is the outcome of a feedback submission.
type Submission struct {
	ID         string `json:"id"`
	BusinessID string `json:"business_id"`
	Status     string `json:"status"`
}

// FeedbackService submits reviews, complaints and quote requests. Nothing
// submitted is shown until the content API moderates it, so no cached
// list is touched.
type FeedbackService struct {
	repo   repository.FeedbackRepository
	events EventPublisher
	logger *slog.Logger
}

// NewFeedbackService creates a new feedback service. events may be nil.
func NewFeedbackService(repo repository.FeedbackRepository, events EventPublisher, logger *slog.Logger) *FeedbackService {
	return &FeedbackService{
		repo:   repo,
		events: events,
		logger: logger,
	}
}

// SubmitReview files a review for moderation.
func (s *FeedbackService) SubmitReview(ctx context.Context, businessID, userID string, in ReviewInput) (*Submission, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("sign in to write a review")
	}
	sub := domain.ReviewSubmission{
		BusinessID:  businessID,
		UserID:      userID,
		Rating:      in.Rating,
		Content:     in.Content,
		IsAnonymous: in.IsAnonymous,
	}

	id, err := s.repo.CreateReview(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	if s.events != nil {
		if err := s.events.PublishReviewSubmitted(ctx, id, sub); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish review.submitted event",
				slog.String("review_id", id),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "review submitted",
		slog.String("review_id", id),
		slog.String("business_id", businessID),
	)

	return &Submission{ID: id, BusinessID: businessID, Status: "pending_moderation"}, nil
}

// SubmitComplaint files a complaint. New complaints start as pending.
func (s *FeedbackService) SubmitComplaint(ctx context.Context, businessID, userID string, in ComplaintInput) (*Submission, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("sign in to file a complaint")
	}
	sub := domain.ComplaintSubmission{
		BusinessID:  businessID,
		UserID:      userID,
		Subject:     in.Subject,
		Content:     in.Content,
		IsAnonymous: in.IsAnonymous,
	}

	id, err := s.repo.CreateComplaint(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("create complaint: %w", err)
	}

	if s.events != nil {
		if err := s.events.PublishComplaintSubmitted(ctx, id, sub); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish complaint.submitted event",
				slog.String("complaint_id", id),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "complaint submitted",
		slog.String("complaint_id", id),
		slog.String("business_id", businessID),
	)

	return &Submission{ID: id, BusinessID: businessID, Status: "pending"}, nil
}

// RequestQuote sends a quote request to a business.
func (s *FeedbackService) RequestQuote(ctx context.Context, businessID, userID string, in QuoteInput) (*Submission, error) {
	if userID == "" {
		return nil, apperrors.Unauthorized("sign in to request a quote")
	}
	sub := domain.QuoteSubmission{
		BusinessID: businessID,
		UserID:     userID,
		Service:    in.Service,
		Message:    in.Message,
	}

	id, err := s.repo.CreateQuote(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("create quote: %w", err)
	}

	if s.events != nil {
		if err := s.events.PublishQuoteRequested(ctx, id, sub); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish quote.requested event",
				slog.String("quote_id", id),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.InfoContext(ctx, "quote requested",
		slog.String("quote_id", id),
		slog.String("business_id", businessID),
	)

	return &Submission{ID: id, BusinessID: businessID, Status: domain.QuoteStatusPending}, nil
}
