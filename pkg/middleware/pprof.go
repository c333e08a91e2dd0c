package middleware

import (
	"log/slog"
	"net/http"
	"net/http/pprof"
	"net/netip"

	"github.com/go-chi/chi/v5"

	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/httputil"
)

// RegisterPprof mounts the runtime profiler under /debug/pprof for clients
// inside allowedCIDRs.
func RegisterPprof(r chi.Router, allowedCIDRs []string, logger *slog.Logger) {
	r.Route("/debug/pprof", func(r chi.Router) {
		r.Use(IPAllowlist(allowedCIDRs, logger))
		r.HandleFunc("/cmdline", pprof.Cmdline)
		r.HandleFunc("/profile", pprof.Profile)
		r.HandleFunc("/symbol", pprof.Symbol)
		r.HandleFunc("/trace", pprof.Trace)
		r.HandleFunc("/*", pprof.Index)
	})
}

// ParsePrefixes parses CIDR strings, returning the valid prefixes and the
// entries that could not be parsed.
func ParsePrefixes(cidrs []string) (valid []netip.Prefix, invalid []string) {
	for _, c := range cidrs {
		p, err := netip.ParsePrefix(c)
		if err != nil {
			invalid = append(invalid, c)
			continue
		}
		valid = append(valid, p.Masked())
	}
	return valid, invalid
}

// IPAllowlist rejects requests whose peer address is outside cidrs with 403.
// Only RemoteAddr is consulted; forwarding headers can be forged.
func IPAllowlist(cidrs []string, logger *slog.Logger) func(http.Handler) http.Handler {
	prefixes, invalid := ParsePrefixes(cidrs)
	for _, c := range invalid {
		logger.Warn("ignoring invalid allowlist CIDR", slog.String("cidr", c))
	}

	allowed := func(remote string) bool {
		ip, ok := peerAddr(remote)
		return ok && containsAddr(prefixes, ip)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !allowed(r.RemoteAddr) {
				logger.Warn("debug endpoint refused",
					slog.String("remote_addr", r.RemoteAddr),
					slog.String("path", r.URL.Path),
				)
				httputil.WriteJSON(w, http.StatusForbidden, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "FORBIDDEN", Message: "debug endpoints are not available from this network"},
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
