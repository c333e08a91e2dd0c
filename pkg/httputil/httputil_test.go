package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/errors"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/logger"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/pagination"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/validator"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func errorBody(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error, rec.Body.String())
	return *resp.Error
}

func TestWriteData_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteData(rec, http.StatusCreated, map[string]string{"id": "b1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, map[string]any{"data": map[string]any{"id": "b1"}}, decode(t, rec))
}

func TestWriteError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{"app error", apperrors.NotFound("business", "b1"), http.StatusNotFound, "NOT_FOUND", "business with id b1 not found"},
		{"wrapped app error", fmt.Errorf("detail: %w", apperrors.Unauthorized("invalid credentials")), http.StatusUnauthorized, "UNAUTHORIZED", "invalid credentials"},
		{"sentinel not found", apperrors.ErrNotFound, http.StatusNotFound, "NOT_FOUND", "resource not found"},
		{"sentinel conflict", apperrors.ErrAlreadyExists, http.StatusConflict, "ALREADY_EXISTS", "resource already exists"},
		{"upstream hides detail", apperrors.Upstream("content API failed", errors.New("prisma: P2024")), http.StatusBadGateway, "UPSTREAM_ERROR", "content API failed"},
		{"open circuit", apperrors.Unavailable("content API is temporarily unavailable", errors.New("circuit breaker is open")), http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "content API is temporarily unavailable"},
		{"unknown", errors.New("nil map write"), http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, httptest.NewRequest(http.MethodGet, "/api/v1/businesses/b1", nil), tt.err, nil)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := errorBody(t, rec)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantMessage, body.Message)
			assert.NotContains(t, rec.Body.String(), "prisma")
		})
	}
}

func TestWriteError_RequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	WriteError(rec, req, apperrors.ErrNotFound, nil)
	assert.NotContains(t, decode(t, rec)["error"], "request_id")

	req = req.WithContext(logger.WithCorrelationID(req.Context(), "corr-9"))
	rec = httptest.NewRecorder()
	WriteError(rec, req, apperrors.ErrNotFound, nil)
	assert.Equal(t, "corr-9", errorBody(t, rec).RequestID)
}

func TestWriteError_LogsServerFailures(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantLevel string
	}{
		{"client error is not logged", apperrors.InvalidInput("bad"), ""},
		{"upstream logs a warning", apperrors.Upstream("down", errors.New("eof")), "WARN"},
		{"internal logs an error", errors.New("boom"), "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			fallback := slog.New(slog.NewJSONHandler(&buf, nil))

			WriteError(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil), tt.err, fallback)

			if tt.wantLevel == "" {
				assert.Empty(t, buf.String())
				return
			}
			var line map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
			assert.Equal(t, tt.wantLevel, line["level"])
			assert.Equal(t, "/x", line["path"])
			assert.Contains(t, line["error"], tt.err.Error())
		})
	}
}

func TestWriteError_PrefersRequestLogger(t *testing.T) {
	var scoped, fallback bytes.Buffer
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(logger.NewContext(req.Context(), slog.New(slog.NewJSONHandler(&scoped, nil))))

	WriteError(httptest.NewRecorder(), req, errors.New("boom"), slog.New(slog.NewJSONHandler(&fallback, nil)))

	assert.Contains(t, scoped.String(), "request failed")
	assert.Empty(t, fallback.String())
}

func TestWriteError_ClientCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	WriteError(rec, req, fmt.Errorf("fetch: %w", context.Canceled), nil)

	assert.Equal(t, StatusClientClosedRequest, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestWriteError_CanceledUpstreamWithLiveRequest(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), context.Canceled, nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWriteValidationError(t *testing.T) {
	type contactForm struct {
		Email string `json:"email" validate:"required,email"`
	}

	rec := httptest.NewRecorder()
	WriteValidationError(rec, httptest.NewRequest(http.MethodPost, "/", nil), validator.Validate(contactForm{Email: "nope"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := errorBody(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	assert.Equal(t, map[string]string{"email": "must be a valid email address"}, body.Fields)

	rec = httptest.NewRecorder()
	WriteValidationError(rec, httptest.NewRequest(http.MethodPost, "/", nil), errors.New("decode request body: unexpected EOF"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body = errorBody(t, rec)
	assert.Equal(t, "INVALID_INPUT", body.Code)
	assert.Equal(t, "decode request body: unexpected EOF", body.Message)
	assert.Nil(t, body.Fields)
}

func TestFromPage(t *testing.T) {
	page := pagination.Page[string]{Items: []string{"c"}, PageNumber: 2, TotalPages: 3, HasNext: true, HasPrev: true}

	assert.Equal(t, PaginatedResponse[string]{
		Data:       []string{"c"},
		TotalCount: 5,
		Page:       2,
		PerPage:    2,
		TotalPages: 3,
		HasNext:    true,
		HasPrev:    true,
	}, FromPage(page, 5, 2))

	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusOK, FromPage(pagination.Page[string]{PageNumber: 1, TotalPages: 1}, 0, 20))
	assert.Equal(t, []any{}, decode(t, rec)["data"])
}

func TestPathID(t *testing.T) {
	tests := []struct {
		raw string
		ok  bool
	}{
		{"ckv9x2b1f0000qz", true},
		{"550e8400-e29b-41d4-a716-446655440000", true},
		{"biz_42", true},
		{"", false},
		{"b!1", false},
		{"../etc", false},
		{"café", false},
		{strings.Repeat("a", maxIDLength), true},
		{strings.Repeat("a", maxIDLength+1), false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			rec := httptest.NewRecorder()
			id, ok := PathID(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.raw)

			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.raw, id)
				assert.Equal(t, 0, rec.Body.Len())
				return
			}
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "INVALID_PARAMETER", errorBody(t, rec).Code)
		})
	}
}
