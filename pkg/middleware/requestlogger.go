package middleware

import (
	"log/slog"
	"net/http"

	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/logger"
)

// RequestLogger stores a logger enriched with correlation_id, user_id,
// trace_id and span_id in the request context. Handlers retrieve it with
// logger.FromContext.
//
// Mount it after RequestLogging and Tracing. Routes behind Auth get the user
// id because Auth records it in the context before the handler runs, so
// RequestLogger is also mounted again inside authenticated groups.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if id, ok := IdentityFromContext(ctx); ok {
				ctx = logger.WithUserID(ctx, id.UserID)
			}
			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
