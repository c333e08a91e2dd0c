package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
)

var (
	defaultCORSMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions}
	defaultCORSHeaders = []string{"Accept", "Authorization", "Content-Type", CorrelationHeader}
)

const defaultCORSMaxAge = 3600

// CORSConfig describes which frontend origins may call the API.
type CORSConfig struct {
	// AllowedOrigins lists the frontend origins. "*" allows any origin.
	AllowedOrigins []string

	// AllowedMethods defaults to GET, POST, PUT, OPTIONS.
	AllowedMethods []string

	// AllowedHeaders defaults to Accept, Authorization, Content-Type, X-Correlation-ID.
	AllowedHeaders []string

	ExposedHeaders []string

	// MaxAge is how long, in seconds, browsers may cache a preflight. Zero
	// means one hour.
	MaxAge int

	AllowCredentials bool

	// Environment "development" allows any origin regardless of AllowedOrigins.
	Environment string
}

// DefaultCORSConfig allows any origin, as the frontend dev server needs.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: []string{"*"},
		AllowedMethods: defaultCORSMethods,
		AllowedHeaders: defaultCORSHeaders,
		ExposedHeaders: []string{CorrelationHeader},
		MaxAge:         defaultCORSMaxAge,
		Environment:    "development",
	}
}

// corsPolicy is a CORSConfig with its header values precomputed.
type corsPolicy struct {
	anyOrigin   bool
	origins     []string
	credentials bool
	fixed       map[string]string
}

func newCORSPolicy(cfg CORSConfig) corsPolicy {
	methods := cmpOr(cfg.AllowedMethods, defaultCORSMethods)
	headers := cmpOr(cfg.AllowedHeaders, defaultCORSHeaders)
	maxAge := cfg.MaxAge
	if maxAge == 0 {
		maxAge = defaultCORSMaxAge
	}

	p := corsPolicy{
		anyOrigin:   cfg.Environment == "development" || slices.Contains(cfg.AllowedOrigins, "*"),
		origins:     cfg.AllowedOrigins,
		credentials: cfg.AllowCredentials,
		fixed: map[string]string{
			"Access-Control-Allow-Methods": strings.Join(methods, ", "),
			"Access-Control-Allow-Headers": strings.Join(headers, ", "),
			"Access-Control-Max-Age":       strconv.Itoa(maxAge),
		},
	}
	if len(cfg.ExposedHeaders) > 0 {
		p.fixed["Access-Control-Expose-Headers"] = strings.Join(cfg.ExposedHeaders, ", ")
	}
	if cfg.AllowCredentials {
		p.fixed["Access-Control-Allow-Credentials"] = "true"
	}
	return p
}

// allowOrigin returns the Access-Control-Allow-Origin value for origin and
// whether the value depends on the request origin.
func (p corsPolicy) allowOrigin(origin string) (value string, varies bool) {
	switch {
	case p.anyOrigin && p.credentials && origin != "":
		// Browsers reject a wildcard origin on credentialed requests.
		return origin, true
	case p.anyOrigin:
		return "*", false
	case origin != "" && slices.Contains(p.origins, origin):
		return origin, true
	default:
		return "", false
	}
}

// CORS sets Cross-Origin Resource Sharing headers and answers preflight
// requests with 204.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	policy := newCORSPolicy(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			if value, varies := policy.allowOrigin(r.Header.Get("Origin")); value != "" {
				h.Set("Access-Control-Allow-Origin", value)
				if varies {
					h.Add("Vary", "Origin")
				}
			}
			for k, v := range policy.fixed {
				h.Set(k, v)
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func cmpOr(v, fallback []string) []string {
	if len(v) == 0 {
		return fallback
	}
	return v
}
