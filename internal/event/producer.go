package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/domain"
	pkgkafka "github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/kafka"
)

// Kafka topic constants for directory events.
const (
	TopicReviewSubmitted    = "directory.review.submitted"
	TopicComplaintSubmitted = "directory.complaint.submitted"
	TopicQuoteRequested     = "directory.quote.requested"
	TopicContactSubmitted   = "directory.contact.submitted"
	TopicBusinessImported   = "directory.business.imported"
)

// Aggregate types.
const (
	AggregateTypeBusiness = "business"
	AggregateTypeContact  = "contact"
)

// SourceDirectoryService identifies events originating from this service.
const SourceDirectoryService = "directory-service"

// ReviewSubmittedData is the payload for a directory.review.submitted event.
type ReviewSubmittedData struct {
	ReviewID    string `json:"review_id"`
	BusinessID  string `json:"business_id"`
	UserID      string `json:"user_id"`
	Rating      int    `json:"rating"`
	IsAnonymous bool   `json:"is_anonymous"`
}

// ComplaintSubmittedData is the payload for a directory.complaint.submitted event.
type ComplaintSubmittedData struct {
	ComplaintID string `json:"complaint_id"`
	BusinessID  string `json:"business_id"`
	UserID      string `json:"user_id"`
	Subject     string `json:"subject"`
	IsAnonymous bool   `json:"is_anonymous"`
}

// QuoteRequestedData is the payload for a directory.quote.requested event.
type QuoteRequestedData struct {
	QuoteID    string `json:"quote_id"`
	BusinessID string `json:"business_id"`
	UserID     string `json:"user_id"`
	Service    string `json:"service"`
	Message    string `json:"message"`
}

// ContactSubmittedData is the payload for a directory.contact.submitted event.
// The notification worker turns it into the email the contact form used to send.
type ContactSubmittedData struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// BusinessImportedData is the payload for a directory.business.imported event.
type BusinessImportedData struct {
	BusinessID string `json:"business_id"`
	Name       string `json:"name"`
	ImportedBy string `json:"imported_by,omitempty"`
}

// Publisher writes an event envelope to a topic. *pkgkafka.Producer satisfies it.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes directory events to Kafka.
type Producer struct {
	kafka  Publisher
	logger *slog.Logger
}

// NewProducer creates a new event producer for the directory service.
func NewProducer(kafka Publisher, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishReviewSubmitted publishes a directory.review.submitted event.
func (p *Producer) PublishReviewSubmitted(ctx context.Context, reviewID string, in domain.ReviewSubmission) error {
	return p.publish(ctx, TopicReviewSubmitted, in.BusinessID, AggregateTypeBusiness, ReviewSubmittedData{
		ReviewID:    reviewID,
		BusinessID:  in.BusinessID,
		UserID:      in.UserID,
		Rating:      in.Rating,
		IsAnonymous: in.IsAnonymous,
	})
}

// PublishComplaintSubmitted publishes a directory.complaint.submitted event.
func (p *Producer) PublishComplaintSubmitted(ctx context.Context, complaintID string, in domain.ComplaintSubmission) error {
	return p.publish(ctx, TopicComplaintSubmitted, in.BusinessID, AggregateTypeBusiness, ComplaintSubmittedData{
		ComplaintID: complaintID,
		BusinessID:  in.BusinessID,
		UserID:      in.UserID,
		Subject:     in.Subject,
		IsAnonymous: in.IsAnonymous,
	})
}

// PublishQuoteRequested publishes a directory.quote.requested event.
func (p *Producer) PublishQuoteRequested(ctx context.Context, quoteID string, in domain.QuoteSubmission) error {
	return p.publish(ctx, TopicQuoteRequested, in.BusinessID, AggregateTypeBusiness, QuoteRequestedData{
		QuoteID:    quoteID,
		BusinessID: in.BusinessID,
		UserID:     in.UserID,
		Service:    in.Service,
		Message:    in.Message,
	})
}

// PublishContactSubmitted publishes a directory.contact.submitted event.
func (p *Producer) PublishContactSubmitted(ctx context.Context, msg domain.ContactMessage) error {
	return p.publish(ctx, TopicContactSubmitted, "", AggregateTypeContact, ContactSubmittedData{
		Name:    msg.Name,
		Email:   msg.Email,
		Subject: msg.Subject,
		Message: msg.Message,
	})
}

// PublishBusinessImported publishes a directory.business.imported event.
func (p *Producer) PublishBusinessImported(ctx context.Context, businessID, name, importedBy string) error {
	return p.publish(ctx, TopicBusinessImported, businessID, AggregateTypeBusiness, BusinessImportedData{
		BusinessID: businessID,
		Name:       name,
		ImportedBy: importedBy,
	})
}

func (p *Producer) publish(ctx context.Context, topic, aggregateID, aggregateType string, data any) error {
	event, err := pkgkafka.NewEvent(topic, aggregateID, aggregateType, SourceDirectoryService, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, event); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("topic", topic),
		slog.String("aggregate_id", aggregateID),
	)
	return nil
}
