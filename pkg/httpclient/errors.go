package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/errors"
)

// UpstreamErrorResponse covers the two error bodies the content API emits
// on non-2xx responses: a GraphQL envelope ({"errors":[{"message":...}]})
// and a plain {"error":{"code","message"}} object from its HTTP layer.
type UpstreamErrorResponse struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (r UpstreamErrorResponse) message() string {
	if r.Error != nil && r.Error.Message != "" {
		return r.Error.Message
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		if e.Message != "" {
			msgs = append(msgs, e.Message)
		}
	}
	return strings.Join(msgs, "; ")
}

// ParseResponseError reads the body of a non-2xx HTTP response and translates
// it into an AppError. Every upstream failure surfaces as a 502 except
// 503 and 429, which tell the caller to come back later.
//
// The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response, serviceName string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err != nil {
		return apperrors.Upstream(
			fmt.Sprintf("%s returned status %d", serviceName, resp.StatusCode),
			fmt.Errorf("read body: %w", err),
		)
	}

	detail := strings.TrimSpace(string(bodyBytes))
	var parsed UpstreamErrorResponse
	if json.Unmarshal(bodyBytes, &parsed) == nil {
		if msg := parsed.message(); msg != "" {
			detail = msg
		}
	}

	return mapUpstreamError(resp.StatusCode, detail, serviceName)
}

func mapUpstreamError(status int, detail, serviceName string) error {
	cause := fmt.Errorf("%s status %d: %s", serviceName, status, detail)

	switch status {
	case http.StatusServiceUnavailable, http.StatusTooManyRequests:
		return apperrors.Unavailable(fmt.Sprintf("%s is temporarily unavailable", serviceName), cause)
	default:
		return apperrors.Upstream(fmt.Sprintf("%s request failed", serviceName), cause)
	}
}

// IsClientError returns true if the HTTP status code is a 4xx client error.
// The circuit breaker uses it to avoid counting rejected requests as outages.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
