package httpclient

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker/v2"
)

// Doer sends a request on behalf of ctx.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// ErrCircuitOpen is returned while the breaker is open. ErrProbeLimit is
// returned in the half-open state once the trial calls are in flight.
var (
	ErrCircuitOpen = gobreaker.ErrOpenState
	ErrProbeLimit  = gobreaker.ErrTooManyRequests
)

// Rejected reports whether err came from the breaker rather than the
// upstream.
func Rejected(err error) bool {
	return errors.Is(err, ErrCircuitOpen) || errors.Is(err, ErrProbeLimit)
}

// BreakerConfig tunes when a Breaker trips and how it recovers.
type BreakerConfig struct {
	// Name labels the breaker in metrics, logs and upstream errors.
	Name string
	// HalfOpenProbes is how many trial calls are let through once Cooldown
	// has passed.
	HalfOpenProbes uint32
	// Window clears the closed-state counts periodically. Zero keeps them
	// until the next state change.
	Window time.Duration
	// Cooldown is how long the breaker stays open.
	Cooldown time.Duration
	// FailureRatio trips the breaker once at least MinRequests calls were
	// seen in the window.
	FailureRatio float64
	MinRequests  uint32
}

// DefaultBreakerConfig trips at half of five or more calls failing and
// probes again after 30 seconds.
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:           name,
		HalfOpenProbes: 1,
		Window:         time.Minute,
		Cooldown:       30 * time.Second,
		FailureRatio:   0.5,
		MinRequests:    5,
	}
}

var (
	breakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "upstream_circuit_breaker_state",
		Help: "Upstream circuit breaker state (0=closed, 1=half-open, 2=open)",
	}, []string{"name"})

	breakerRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_circuit_breaker_rejected_total",
		Help: "Calls rejected without reaching the upstream because the breaker was open",
	}, []string{"name"})
)

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

// Breaker guards a Doer with a circuit breaker. Transport errors and 5xx
// answers count as failures; a 5xx body is consumed and returned as an
// upstream error. Other responses pass through untouched.
type Breaker struct {
	next Doer
	cb   *gobreaker.CircuitBreaker[*http.Response]
	name string
}

// NewBreaker wraps next.
func NewBreaker(next Doer, cfg BreakerConfig, logger *slog.Logger) *Breaker {
	breakerState.WithLabelValues(cfg.Name).Set(0)

	cb := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.HalfOpenProbes,
		Interval:    cfg.Window,
		Timeout:     cfg.Cooldown,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.Requests >= cfg.MinRequests &&
				float64(c.TotalFailures)/float64(c.Requests) >= cfg.FailureRatio
		},
		// A caller giving up says nothing about the upstream.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
			breakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})

	return &Breaker{next: next, cb: cb, name: cfg.Name}
}

// Do sends req unless the breaker is open.
func (b *Breaker) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := b.cb.Execute(func() (*http.Response, error) {
		resp, err := b.next.Do(ctx, req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, ParseResponseError(resp, b.name)
		}
		return resp, nil
	})
	if Rejected(err) {
		breakerRejected.WithLabelValues(b.name).Inc()
	}
	return resp, err
}

// State reports the breaker's current state.
func (b *Breaker) State() gobreaker.State {
	return b.cb.State()
}
