package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/vektah/gqlparser/v2/gqlerror"

	apperrors "github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/errors"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/httpclient"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/logger"
)

// Doer sends HTTP requests. *httpclient.Breaker and *httpclient.Client
// both satisfy it.
type Doer = httpclient.Doer

// Request is the JSON body of a GraphQL call.
type Request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

// Response is the JSON body returned by the content API.
type Response struct {
	Data   json.RawMessage `json:"data"`
	Errors gqlerror.List   `json:"errors,omitempty"`
}

// Vars is shorthand for operation variables.
type Vars = map[string]any

// Options tune a Client.
type Options struct {
	// SlowThreshold logs operations that take longer. Zero disables it.
	SlowThreshold time.Duration
}

// Client executes documents against a single GraphQL endpoint.
type Client struct {
	endpoint string
	http     Doer
	logger   *slog.Logger
	opts     Options
}

// NewClient creates a client for endpoint.
func NewClient(endpoint string, doer Doer, logger *slog.Logger, opts Options) *Client {
	return &Client{
		endpoint: endpoint,
		http:     doer,
		logger:   logger,
		opts:     opts,
	}
}

// Endpoint returns the upstream URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Do executes doc with vars and decodes the data object into out (which may
// be nil). Mutations are sent exactly once. Failures are returned as
// AppErrors: transport problems, non-2xx responses and GraphQL errors map
// to 502, an open circuit to 503.
func (c *Client) Do(ctx context.Context, doc Document, vars Vars, out any) (err error) {
	start := time.Now()
	ctx, end := traceOperation(ctx, doc, c.opts.SlowThreshold, c.logger)
	outcome := outcomeOK
	defer func() {
		end(err)
		operationsTotal.WithLabelValues(doc.Name, outcome).Inc()
		operationDuration.WithLabelValues(doc.Name).Observe(time.Since(start).Seconds())
	}()

	body, err := json.Marshal(Request{Query: doc.Query, OperationName: doc.Name, Variables: vars})
	if err != nil {
		return apperrors.Internal(fmt.Errorf("encode %s request: %w", doc.Name, err))
	}

	if doc.IsMutation() {
		ctx = httpclient.WithoutRetry(ctx)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return apperrors.Internal(fmt.Errorf("build %s request: %w", doc.Name, err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		req.Header.Set("X-Correlation-ID", id)
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		outcome = outcomeTransport
		return c.transportError(ctx, doc, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		outcome = outcomeTransport
		return httpclient.ParseResponseError(resp, "content API")
	}

	var gr Response
	if err := json.NewDecoder(io.LimitReader(resp.Body, 32<<20)).Decode(&gr); err != nil {
		outcome = outcomeDecode
		return apperrors.Upstream("content API returned an unreadable response", fmt.Errorf("decode %s response: %w", doc.Name, err))
	}

	if len(gr.Errors) > 0 {
		outcome = outcomeGraphQL
		gqlErr := &ResponseError{Operation: doc.Name, Errors: gr.Errors}
		logger.WithContext(ctx, c.logger).WarnContext(ctx, "graphql operation returned errors",
			slog.String("operation", doc.Name),
			slog.Any("messages", gqlErr.Messages()),
		)
		return apperrors.Upstream("content API rejected the request", gqlErr)
	}

	if out == nil || len(gr.Data) == 0 || bytes.Equal(gr.Data, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(gr.Data, out); err != nil {
		outcome = outcomeDecode
		return apperrors.Upstream("content API returned unexpected data", fmt.Errorf("decode %s data: %w", doc.Name, err))
	}
	return nil
}

func (c *Client) transportError(ctx context.Context, doc Document, err error) error {
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		return err
	case httpclient.Rejected(err):
		return apperrors.Unavailable("content API is temporarily unavailable", err)
	case errors.Is(err, context.Canceled):
		return err
	}
	logger.WithContext(ctx, c.logger).ErrorContext(ctx, "graphql transport failure",
		slog.String("operation", doc.Name),
		slog.String("error", err.Error()),
	)
	return apperrors.Upstream("content API is unreachable", fmt.Errorf("%s: %w", doc.Name, err))
}

var pingDoc = MustParse(`query Ping { __typename }`)

// Ping runs a trivial query. Readiness checks use it to see that the content
// API answers.
func (c *Client) Ping(ctx context.Context) error {
	return c.Do(ctx, pingDoc, nil, nil)
}
