package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/domain"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/service"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/httputil"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/middleware"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/validator"
)

// FeedbackHandler handles review, complaint, quote and contact submissions.
type FeedbackHandler struct {
	feedback *service.FeedbackService
	contact  *service.ContactService
	logger   *slog.Logger
}

// NewFeedbackHandler creates a new feedback HTTP handler.
func NewFeedbackHandler(feedback *service.FeedbackService, contact *service.ContactService, logger *slog.Logger) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback, contact: contact, logger: logger}
}

// CreateReview handles POST /api/v1/businesses/{id}/reviews
func (h *FeedbackHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.PathID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req service.ReviewInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	sub, err := h.feedback.SubmitReview(r.Context(), id, middleware.UserIDFromContext(r.Context()), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusCreated, sub)
}

// CreateComplaint handles POST /api/v1/businesses/{id}/complaints
func (h *FeedbackHandler) CreateComplaint(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.PathID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req service.ComplaintInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	sub, err := h.feedback.SubmitComplaint(r.Context(), id, middleware.UserIDFromContext(r.Context()), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusCreated, sub)
}

// CreateQuote handles POST /api/v1/businesses/{id}/quotes
func (h *FeedbackHandler) CreateQuote(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.PathID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	var req service.QuoteInput
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	sub, err := h.feedback.RequestQuote(r.Context(), id, middleware.UserIDFromContext(r.Context()), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusCreated, sub)
}

// Contact handles POST /api/v1/contact
func (h *FeedbackHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var req domain.ContactMessage
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	if err := h.contact.Submit(r.Context(), req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusAccepted, map[string]string{"status": "sent"})
}
