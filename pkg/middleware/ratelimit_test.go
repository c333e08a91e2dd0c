package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
}

func sendFrom(h http.Handler, remote string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/businesses/b1/reviews", nil)
	req.RemoteAddr = remote
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := RateLimit(ctx, 0.01, 2, quietLogger())(okHandler())

	codes := []int{
		sendFrom(h, "10.0.0.1:1").Code,
		sendFrom(h, "10.0.0.1:2").Code,
		sendFrom(h, "10.0.0.2:1").Code,
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusOK}, codes)

	rec := sendFrom(h, "10.0.0.1:3")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"error":{"code":"RATE_LIMITED","message":"too many requests"}}`, rec.Body.String())
}

func TestLimiterSet_Refills(t *testing.T) {
	set := newLimiterSet(1, 1, time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	set.now = func() time.Time { return now }

	assert.True(t, set.allow("a"))
	assert.False(t, set.allow("a"))

	now = now.Add(time.Second)
	assert.True(t, set.allow("a"))
}

func TestLimiterSet_EvictIdle(t *testing.T) {
	set := newLimiterSet(1, 1, time.Minute)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	set.now = func() time.Time { return now }

	set.allow("10.0.0.1")
	now = now.Add(30 * time.Second)
	set.allow("10.0.0.2")
	now = now.Add(45 * time.Second)

	assert.Equal(t, 1, set.evictIdle())
	_, kept := set.buckets["10.0.0.2"]
	assert.True(t, kept)
}

func TestRealIP(t *testing.T) {
	proxies := []string{"10.0.0.0/8", "2001:db8:ffff::/48"}
	tests := []struct {
		name    string
		trusted []string
		xff     string
		realIP  string
		remote  string
		want    string
	}{
		{"remote addr", proxies, "", "", "192.0.2.1:5555", "192.0.2.1"},
		{"remote ipv6", proxies, "", "", "[2001:db8::1]:443", "2001:db8::1"},
		{"remote without port", proxies, "", "", "192.0.2.5", "192.0.2.5"},
		{"untrusted peer ignores forwarding", proxies, "203.0.113.7", "198.51.100.9", "192.0.2.1:5555", "192.0.2.1"},
		{"no trusted proxies ignores forwarding", nil, "203.0.113.7", "", "10.0.0.1:80", "10.0.0.1"},
		{"forwarded by trusted proxy", proxies, "203.0.113.7", "", "10.0.0.1:80", "203.0.113.7"},
		{"spoofed leftmost entry", proxies, "1.2.3.4, 203.0.113.7", "", "10.0.0.1:80", "203.0.113.7"},
		{"chain of trusted proxies", proxies, "203.0.113.7, 10.0.0.5, 10.0.0.6", "", "10.0.0.1:80", "203.0.113.7"},
		{"all hops trusted", proxies, "10.0.0.9, 10.0.0.5", "", "10.0.0.1:80", "10.0.0.9"},
		{"garbage hop stops the walk", proxies, "203.0.113.7, unknown, 10.0.0.5", "", "10.0.0.1:80", "10.0.0.5"},
		{"mapped ipv4", proxies, "::ffff:198.51.100.4", "", "10.0.0.1:80", "198.51.100.4"},
		{"real ip from trusted proxy", proxies, "", "198.51.100.9", "10.0.0.1:80", "198.51.100.9"},
		{"ipv6 proxy", proxies, "203.0.113.8", "", "[2001:db8:ffff::2]:443", "203.0.113.8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			h := RealIP(tt.trusted, quietLogger())(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				got = ClientIP(r)
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.realIP != "" {
				req.Header.Set("X-Real-IP", tt.realIP)
			}

			h.ServeHTTP(httptest.NewRecorder(), req)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClientIP_WithoutRealIPUsesPeer(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:5555"
	req.Header.Set("X-Forwarded-For", "203.0.113.7")

	assert.Equal(t, "192.0.2.1", ClientIP(req))
}

func TestRateLimit_RotatingForwardedForSharesBucket(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h := RealIP([]string{"10.0.0.0/8"}, quietLogger())(RateLimit(ctx, 0.01, 1, quietLogger())(okHandler()))

	codes := make([]int, 0, 3)
	for _, spoofed := range []string{"1.1.1.1", "2.2.2.2", "3.3.3.3"} {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.RemoteAddr = "10.0.0.1:80"
		req.Header.Set("X-Forwarded-For", spoofed+", 203.0.113.7")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
}
