package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/domain"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/internal/service"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/health"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/middleware"
)

// Cache lifetimes, in seconds, of public documents.
const (
	sitemapXMLMaxAge  = 3600
	sitemapPageMaxAge = 300
)

// Services are the application services exposed over HTTP.
type Services struct {
	Directory *service.DirectoryService
	Feedback  *service.FeedbackService
	Contact   *service.ContactService
	Account   *service.AccountService
	Sitemap   *service.SitemapService
	Bulk      *service.BulkImportService
}

// RouterConfig holds the transport settings of the router.
type RouterConfig struct {
	ServiceName       string
	CORS              middleware.CORSConfig
	RateLimitRPS      float64
	RateLimitBurst    int
	PprofAllowedCIDRs []string
	// TrustedProxies are the networks whose forwarding headers name the client.
	TrustedProxies []string
}

// NewRouter creates a chi router with all directory routes registered. The
// rate limiter's eviction loop stops when ctx is canceled.
func NewRouter(
	ctx context.Context,
	svc Services,
	tokens middleware.TokenValidator,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RealIP(cfg.TrustedProxies, logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Tracing(cfg.ServiceName, "/health/live", "/health/ready", "/metrics"))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())
	if len(cfg.PprofAllowedCIDRs) > 0 {
		middleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, logger)
	}

	directoryHandler := NewDirectoryHandler(svc.Directory, logger)
	feedbackHandler := NewFeedbackHandler(svc.Feedback, svc.Contact, logger)
	accountHandler := NewAccountHandler(svc.Account, logger)
	sitemapHandler := NewSitemapHandler(svc.Sitemap, logger)
	bulkHandler := NewBulkHandler(svc.Bulk, logger)

	// One limiter for every write a visitor can make.
	limitWrites := middleware.RateLimit(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst, logger)
	authenticated := middleware.Auth(tokens)
	// Auth adds the user id after the global RequestLogger ran.
	userLogger := middleware.RequestLogger(logger)

	r.With(middleware.CacheControl(sitemapXMLMaxAge)).Get("/sitemap.xml", sitemapHandler.XML)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/businesses", func(r chi.Router) {
			r.Get("/", directoryHandler.List)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", directoryHandler.Get)
				r.Get("/reviews", directoryHandler.Reviews)
				r.Get("/complaints", directoryHandler.Complaints)
				r.Get("/products", directoryHandler.Products)

				r.Group(func(r chi.Router) {
					r.Use(limitWrites)
					r.Use(middleware.ContentTypeJSON)
					r.Use(authenticated)
					r.Use(userLogger)

					r.Post("/reviews", feedbackHandler.CreateReview)
					r.Post("/complaints", feedbackHandler.CreateComplaint)
					r.Post("/quotes", feedbackHandler.CreateQuote)
				})
			})
		})

		r.Get("/products/{id}", directoryHandler.Product)
		r.Get("/jobs/{id}", directoryHandler.Job)
		r.Get("/search/highlight", directoryHandler.Highlight)
		r.With(middleware.CacheControl(sitemapPageMaxAge)).Get("/sitemap", sitemapHandler.Page)

		// Auth endpoints (public)
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.NoStore)
			r.Use(limitWrites)
			r.Use(middleware.ContentTypeJSON)

			r.Post("/register", accountHandler.Register)
			r.Post("/signin", accountHandler.SignIn)
		})

		// Account endpoints (auth required)
		r.Route("/account", func(r chi.Router) {
			r.Use(middleware.NoStore)
			r.Use(middleware.ContentTypeJSON)
			r.Use(authenticated)
			r.Use(userLogger)

			r.Get("/", accountHandler.GetProfile)
			r.Put("/", accountHandler.UpdateProfile)
			r.Put("/password", accountHandler.ChangePassword)
		})

		r.With(limitWrites, middleware.ContentTypeJSON).Post("/contact", feedbackHandler.Contact)

		// Admin endpoints
		r.Route("/admin", func(r chi.Router) {
			r.Use(authenticated)
			r.Use(middleware.RequireRole(domain.RoleAdmin))
			r.Use(userLogger)

			r.With(middleware.ContentType(BulkContentTypes...)).Post("/businesses/bulk", bulkHandler.Import)
			r.Get("/businesses/template.csv", bulkHandler.Template)
		})
	})

	return r
}
