// Package httpclient is the outbound HTTP stack for the content API: a
// pooled client with bounded retries and a circuit breaker in front of it.
package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net"
	"net/http"
	"time"
)

// Config holds HTTP client configuration.
type Config struct {
	Timeout         time.Duration
	MaxRetries      int
	RetryWaitMin    time.Duration
	RetryWaitMax    time.Duration
	MaxConnsPerHost int

	// Headers are added to requests that do not already set them.
	Headers map[string]string
}

// DefaultConfig returns a 30 second timeout and three retries.
func DefaultConfig() Config {
	return Config{
		Timeout:         30 * time.Second,
		MaxRetries:      3,
		RetryWaitMin:    time.Second,
		RetryWaitMax:    5 * time.Second,
		MaxConnsPerHost: 100,
	}
}

// Client sends requests with connection pooling and retries network errors
// and 5xx answers with jittered exponential backoff.
type Client struct {
	hc  *http.Client
	cfg Config
}

// New creates a Client.
func New(cfg Config) *Client {
	dialer := &net.Dialer{Timeout: 10 * time.Second, KeepAlive: 30 * time.Second}
	return &Client{
		hc: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy:                 http.ProxyFromEnvironment,
				DialContext:           dialer.DialContext,
				ForceAttemptHTTP2:     true,
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   cfg.MaxConnsPerHost,
				MaxConnsPerHost:       cfg.MaxConnsPerHost,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: time.Second,
			},
		},
		cfg: cfg,
	}
}

type noRetryKey struct{}

// WithoutRetry marks ctx so requests made with it are sent exactly once.
// GraphQL mutations use it.
func WithoutRetry(ctx context.Context) context.Context {
	return context.WithValue(ctx, noRetryKey{}, true)
}

func (c *Client) retriesFor(ctx context.Context) int {
	if off, _ := ctx.Value(noRetryKey{}).(bool); off {
		return 0
	}
	return c.cfg.MaxRetries
}

// Do sends req, retrying up to MaxRetries times. The last response is
// returned as is when every attempt answered 5xx.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)
	for k, v := range c.cfg.Headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}

	retries := c.retriesFor(ctx)
	replay, err := bufferBody(req, retries > 0)
	if err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, c.backoff(attempt)); err != nil {
				return nil, err
			}
		}
		if replay != nil {
			req.Body = io.NopCloser(bytes.NewReader(replay))
			req.ContentLength = int64(len(replay))
		}

		resp, err := c.hc.Do(req)
		last := attempt >= retries
		switch {
		case err != nil && (last || !isRetryableError(err)):
			return nil, fmt.Errorf("http request failed after %d attempts: %w", attempt+1, err)
		case err != nil:
			continue
		case retryableStatus(resp.StatusCode) && !last:
			_ = resp.Body.Close()
			continue
		default:
			return resp, nil
		}
	}
}

// bufferBody reads the request body once so every attempt can resend it.
func bufferBody(req *http.Request, needed bool) ([]byte, error) {
	if !needed || req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}
	b, err := io.ReadAll(req.Body)
	_ = req.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}
	return b, nil
}

// backoff doubles RetryWaitMin per attempt up to RetryWaitMax.
func (c *Client) backoff(attempt int) time.Duration {
	wait := c.cfg.RetryWaitMin << (attempt - 1)
	if wait > c.cfg.RetryWaitMax || wait <= 0 {
		wait = c.cfg.RetryWaitMax
	}
	return addJitter(wait)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// 501 means the upstream will never support the call.
func retryableStatus(code int) bool {
	return code >= http.StatusInternalServerError && code != http.StatusNotImplemented
}

func isRetryableError(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr)
}

// addJitter spreads d by 25% either way.
func addJitter(d time.Duration) time.Duration {
	if d <= 0 {
		return d
	}
	spread := float64(d) / 4
	return time.Duration(float64(d) - spread + rand.Float64()*2*spread)
}
