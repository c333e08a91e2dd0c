package service

import (
	"context"
	"log/slog"

	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/domain"
	apperrors "github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/errors"
)

// ContactService forwards contact form messages. The published event is
// the only delivery, so a failed publish fails the request.
type ContactService struct {
	events EventPublisher
	logger *slog.Logger
}

// NewContactService creates a new contact service. events may be nil, in
// which case every message is refused.
func NewContactService(events EventPublisher, logger *slog.Logger) *ContactService {
	return &ContactService{events: events, logger: logger}
}

// Submit delivers msg.
func (s *ContactService) Submit(ctx context.Context, msg domain.ContactMessage) error {
	if s.events == nil {
		return apperrors.Unavailable("the contact form is not available", nil)
	}
	if err := s.events.PublishContactSubmitted(ctx, msg); err != nil {
		return apperrors.Unavailable("your message could not be sent, please try again later", err)
	}

	s.logger.InfoContext(ctx, "contact message accepted", slog.String("subject", msg.Subject))
	return nil
}
