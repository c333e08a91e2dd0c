package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/httputil"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/logger"
)

// idleLimiterTTL is how long a client's bucket is kept after its last request.
const idleLimiterTTL = 3 * time.Minute

type bucket struct {
	*rate.Limiter
	seen time.Time
}

// limiterSet holds one token bucket per client address.
type limiterSet struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   rate.Limit
	burst   int
	ttl     time.Duration
	now     func() time.Time
}

func newLimiterSet(rps float64, burst int, ttl time.Duration) *limiterSet {
	return &limiterSet{
		buckets: map[string]*bucket{},
		limit:   rate.Limit(rps),
		burst:   burst,
		ttl:     ttl,
		now:     time.Now,
	}
}

// allow takes a token from key's bucket.
func (s *limiterSet) allow(key string) bool {
	s.mu.Lock()
	now := s.now()
	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{Limiter: rate.NewLimiter(s.limit, s.burst)}
		s.buckets[key] = b
	}
	b.seen = now
	s.mu.Unlock()
	return b.AllowN(now, 1)
}

// evictIdle drops buckets unused for longer than ttl and reports how many
// remain.
func (s *limiterSet) evictIdle() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-s.ttl)
	for key, b := range s.buckets {
		if b.seen.Before(cutoff) {
			delete(s.buckets, key)
		}
	}
	return len(s.buckets)
}

func (s *limiterSet) evictLoop(ctx context.Context) {
	t := time.NewTicker(s.ttl)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.evictIdle()
		}
	}
}

// RateLimit allows each client address rps requests per second with the
// given burst and answers 429 beyond that. Idle buckets are evicted until
// ctx is canceled.
func RateLimit(ctx context.Context, rps float64, burst int, l *slog.Logger) func(http.Handler) http.Handler {
	set := newLimiterSet(rps, burst, idleLimiterTTL)
	go set.evictLoop(ctx)
	return limitBy(set, l)
}

func limitBy(set *limiterSet, l *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r)
			if set.allow(ip) {
				next.ServeHTTP(w, r)
				return
			}
			l.WarnContext(r.Context(), "rate limit exceeded",
				slog.String("ip", ip),
				slog.String("path", r.URL.Path),
			)
			w.Header().Set("Retry-After", "1")
			httputil.WriteJSON(w, http.StatusTooManyRequests, httputil.Response{
				Error: &httputil.ErrorResponse{
					Code:      "RATE_LIMITED",
					Message:   "too many requests",
					RequestID: logger.CorrelationIDFromContext(r.Context()),
				},
			})
		})
	}
}
