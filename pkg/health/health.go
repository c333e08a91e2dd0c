// Package health serves liveness and readiness probes. Readiness runs every
// registered dependency check in parallel under one deadline.
package health

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/httputil"
)

// DefaultTimeout bounds a full readiness probe.
const DefaultTimeout = 5 * time.Second

// Checker reports whether a dependency is usable.
type Checker func(ctx context.Context) error

// Status is the state of one dependency or of the whole service.
type Status string

const (
	StatusUp       Status = "up"
	StatusDown     Status = "down"
	StatusDegraded Status = "degraded"
)

// Response is the body of both probe endpoints.
type Response struct {
	Status    Status                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

// CheckResult is the outcome of one dependency check.
type CheckResult struct {
	Status   Status `json:"status"`
	Critical bool   `json:"critical"`
	Error    string `json:"error,omitempty"`
}

type dependency struct {
	name     string
	check    Checker
	critical bool
}

// Handler tracks dependencies. A critical dependency that is down makes the
// service unready; any other one only degrades it.
type Handler struct {
	mu      sync.RWMutex
	deps    map[string]dependency
	timeout time.Duration
}

// NewHandler returns a Handler with no dependencies.
func NewHandler() *Handler {
	return &Handler{deps: map[string]dependency{}, timeout: DefaultTimeout}
}

// RegisterCritical adds or replaces a dependency the service cannot run
// without.
func (h *Handler) RegisterCritical(name string, check Checker) {
	h.add(dependency{name: name, check: check, critical: true})
}

// RegisterNonCritical adds or replaces an optional dependency.
func (h *Handler) RegisterNonCritical(name string, check Checker) {
	h.add(dependency{name: name, check: check})
}

func (h *Handler) add(d dependency) {
	h.mu.Lock()
	h.deps[d.name] = d
	h.mu.Unlock()
}

func (h *Handler) snapshot() []dependency {
	h.mu.RLock()
	defer h.mu.RUnlock()
	deps := make([]dependency, 0, len(h.deps))
	for _, d := range h.deps {
		deps = append(deps, d)
	}
	return deps
}

// Check probes every dependency and folds the results into one status.
func (h *Handler) Check(ctx context.Context) Response {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	deps := h.snapshot()
	results := make([]CheckResult, len(deps))
	var wg sync.WaitGroup
	for i, d := range deps {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = CheckResult{Status: StatusUp, Critical: d.critical}
			if err := d.check(ctx); err != nil {
				results[i].Status = StatusDown
				results[i].Error = err.Error()
			}
		}()
	}
	wg.Wait()

	resp := Response{Status: StatusUp, Timestamp: time.Now().UTC(), Checks: make(map[string]CheckResult, len(deps))}
	for i, d := range deps {
		res := results[i]
		resp.Checks[d.name] = res
		switch {
		case res.Status == StatusUp:
		case res.Critical:
			resp.Status = StatusDown
		case resp.Status == StatusUp:
			resp.Status = StatusDegraded
		}
	}
	return resp
}

// LivenessHandler answers 200 while the process serves requests.
func (h *Handler) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, Response{Status: StatusUp, Timestamp: time.Now().UTC()})
	}
}

// ReadinessHandler answers 503 when a critical dependency is down.
func (h *Handler) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := h.Check(r.Context())
		code := http.StatusOK
		if resp.Status == StatusDown {
			code = http.StatusServiceUnavailable
		}
		httputil.WriteJSON(w, code, resp)
	}
}
