package http

import (
	"log/slog"
	"net/http"

	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/service"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/httputil"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/pagination"
)

// SitemapHandler serves the browsable and XML sitemaps.
type SitemapHandler struct {
	service *service.SitemapService
	logger  *slog.Logger
}

// NewSitemapHandler creates a new sitemap HTTP handler.
func NewSitemapHandler(svc *service.SitemapService, logger *slog.Logger) *SitemapHandler {
	return &SitemapHandler{service: svc, logger: logger}
}

// SitemapResponse is one page of the browsable sitemap.
type SitemapResponse struct {
	StaticPages []service.SitemapLink                               `json:"static_pages"`
	Businesses  httputil.PaginatedResponse[service.SitemapBusiness] `json:"businesses"`
}

// Page handles GET /api/v1/sitemap
func (h *SitemapHandler) Page(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)

	page, err := h.service.Page(r.Context(), params.Page)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, SitemapResponse{
		StaticPages: page.StaticPages,
		Businesses:  httputil.FromPage(page.Businesses, page.Total, service.SitemapPageSize),
	})
}

// XML handles GET /sitemap.xml
func (h *SitemapHandler) XML(w http.ResponseWriter, r *http.Request) {
	body, err := h.service.XML(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
