package http

import (
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"

	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/aggregate"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/domain"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/search"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/service"
	apperrors "github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/errors"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/httputil"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/pagination"
)

// maxHighlightText bounds the text accepted by the highlight endpoint.
const maxHighlightText = 10000

// DirectoryHandler handles HTTP requests for the read side of the directory.
type DirectoryHandler struct {
	service *service.DirectoryService
	logger  *slog.Logger
}

// NewDirectoryHandler creates a new directory HTTP handler.
func NewDirectoryHandler(svc *service.DirectoryService, logger *slog.Logger) *DirectoryHandler {
	return &DirectoryHandler{service: svc, logger: logger}
}

// --- Response types ---

// ListingResponse is one page of the business listing.
type ListingResponse struct {
	httputil.PaginatedResponse[service.BusinessCard]
	Query string `json:"query,omitempty"`
}

// ReviewsResponse is one page of a business's reviews.
type ReviewsResponse struct {
	BusinessID     string                                    `json:"business_id"`
	BusinessName   string                                    `json:"business_name"`
	Rating         aggregate.RatingSummary                   `json:"rating"`
	Reviews        httputil.PaginatedResponse[domain.Review] `json:"reviews"`
	ProductReviews []service.ProductReviews                  `json:"product_reviews"`
}

// --- Handlers ---

// List handles GET /api/v1/businesses
func (h *DirectoryHandler) List(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)

	page, err := h.service.ListBusinesses(r.Context(), r.URL.Query().Get("q"), params.Page)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, ListingResponse{
		PaginatedResponse: httputil.FromPage(page.Page, page.Total, service.ListingPageSize),
		Query:             page.Query,
	})
}

// Get handles GET /api/v1/businesses/{id}
func (h *DirectoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.PathID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	detail, err := h.service.GetBusiness(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, detail)
}

// Reviews handles GET /api/v1/businesses/{id}/reviews
func (h *DirectoryHandler) Reviews(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.PathID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	params := pagination.FromRequest(r)

	list, err := h.service.ListReviews(r.Context(), id, params.Page, params.PerPage)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, ReviewsResponse{
		BusinessID:     list.BusinessID,
		BusinessName:   list.BusinessName,
		Rating:         list.Rating,
		Reviews:        httputil.FromPage(list.Page, list.Total, params.PerPage),
		ProductReviews: list.ProductReviews,
	})
}

// Complaints handles GET /api/v1/businesses/{id}/complaints
func (h *DirectoryHandler) Complaints(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.PathID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	list, err := h.service.ListComplaints(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, list)
}

// Products handles GET /api/v1/businesses/{id}/products
func (h *DirectoryHandler) Products(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.PathID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	cards, err := h.service.ListProducts(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, cards)
}

// Product handles GET /api/v1/products/{id}
func (h *DirectoryHandler) Product(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.PathID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, product)
}

// Job handles GET /api/v1/jobs/{id}
func (h *DirectoryHandler) Job(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.PathID(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	job, err := h.service.GetJob(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, job)
}

// Highlight handles GET /api/v1/search/highlight
func (h *DirectoryHandler) Highlight(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if utf8.RuneCountInString(text) > maxHighlightText {
		httputil.WriteError(w, r, apperrors.InvalidInput("text is too long"), h.logger)
		return
	}

	segments := search.Highlight(text, r.URL.Query().Get("q"))
	if segments == nil {
		segments = []search.Segment{}
	}
	httputil.WriteData(w, http.StatusOK, segments)
}
