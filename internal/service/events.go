package service

import (
	"context"

	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/domain"
)

// EventPublisher publishes directory events. *event.Producer implements it.
type EventPublisher interface {
	PublishReviewSubmitted(ctx context.Context, reviewID string, in domain.ReviewSubmission) error
	PublishComplaintSubmitted(ctx context.Context, complaintID string, in domain.ComplaintSubmission) error
	PublishQuoteRequested(ctx context.Context, quoteID string, in domain.QuoteSubmission) error
	PublishContactSubmitted(ctx context.Context, msg domain.ContactMessage) error
	PublishBusinessImported(ctx context.Context, businessID, name, importedBy string) error
}
