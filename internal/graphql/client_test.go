package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/errors"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/httpclient"
	"github.com/jl-simplyintel/CompanyName-FrontEnd/pkg/logger"
)

var (
	getBusinessDoc = MustParse(`query GetBusiness($id: ID!) { business(where: { id: $id }) { id name } }`)
	createQuoteDoc = MustParse(`mutation CreateQuote($service: String!) { createQuote(data: { service: $service }) { id } }`)
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc, retries int) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	hc := httpclient.New(httpclient.Config{
		Timeout:         5 * time.Second,
		MaxRetries:      retries,
		RetryWaitMin:    time.Millisecond,
		RetryWaitMax:    2 * time.Millisecond,
		MaxConnsPerHost: 10,
	})
	return NewClient(server.URL, hc, testLogger(), Options{})
}

func TestClient_Do_DecodesData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "corr-1", r.Header.Get("X-Correlation-ID"))

		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "GetBusiness", req.OperationName)
		assert.Equal(t, getBusinessDoc.Query, req.Query)
		assert.Equal(t, "b-1", req.Variables["id"])

		_, _ = w.Write([]byte(`{"data":{"business":{"id":"b-1","name":"ACME"}}}`))
	}, 0)

	var out struct {
		Business *struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"business"`
	}
	ctx := logger.WithCorrelationID(context.Background(), "corr-1")
	err := client.Do(ctx, getBusinessDoc, Vars{"id": "b-1"}, &out)
	require.NoError(t, err)
	require.NotNil(t, out.Business)
	assert.Equal(t, "ACME", out.Business.Name)
}

func TestClient_Do_NullDataIsNotAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":null}`))
	}, 0)

	var out struct{ Business *struct{} }
	require.NoError(t, client.Do(context.Background(), getBusinessDoc, Vars{"id": "x"}, &out))
	assert.Nil(t, out.Business)
}

func TestClient_Do_GraphQLErrorsAreUpstreamErrors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":null,"errors":[{"message":"Access denied","path":["business"]}]}`))
	}, 0)

	err := client.Do(context.Background(), getBusinessDoc, Vars{"id": "x"}, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, apperrors.HTTPStatus(err))
	assert.True(t, errors.Is(err, ErrGraphQL))
	assert.True(t, errors.Is(err, apperrors.ErrUpstream))

	var respErr *ResponseError
	require.True(t, errors.As(err, &respErr))
	assert.Equal(t, []string{"Access denied"}, respErr.Messages())
	assert.Equal(t, "GetBusiness", respErr.Operation)
}

func TestClient_Do_Non2xxIsUpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":[{"message":"Variable \"$id\" is required"}]}`))
	}, 0)

	err := client.Do(context.Background(), getBusinessDoc, nil, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, apperrors.HTTPStatus(err))
	assert.Contains(t, err.Error(), `Variable "$id" is required`)
}

func TestClient_Do_UnreadableBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>oops</html>`))
	}, 0)

	err := client.Do(context.Background(), getBusinessDoc, nil, nil)
	assert.Equal(t, http.StatusBadGateway, apperrors.HTTPStatus(err))
}

func TestClient_Do_UnreachableEndpoint(t *testing.T) {
	hc := httpclient.New(httpclient.Config{Timeout: time.Second, MaxConnsPerHost: 1})
	client := NewClient("http://127.0.0.1:1/graphql", hc, testLogger(), Options{})

	err := client.Do(context.Background(), getBusinessDoc, nil, nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, apperrors.HTTPStatus(err))
}

func TestClient_Do_MutationsAreNeverRetried(t *testing.T) {
	var attempts int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusBadGateway)
	}, 3)

	err := client.Do(context.Background(), createQuoteDoc, Vars{"service": "audit"}, nil)
	require.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}

func TestClient_Do_QueriesUseConfiguredRetries(t *testing.T) {
	var attempts int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"data":{}}`))
	}, 2)

	require.NoError(t, client.Do(context.Background(), getBusinessDoc, nil, nil))
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestClient_Do_OpenCircuitIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	hc := httpclient.New(httpclient.Config{Timeout: time.Second, MaxConnsPerHost: 1})
	cb := httpclient.NewBreaker(hc, httpclient.BreakerConfig{
		Name:           "graphql-client-test",
		HalfOpenProbes: 1,
		Window:         time.Minute,
		Cooldown:       time.Minute,
		FailureRatio:   0.5,
		MinRequests:    1,
	}, testLogger())
	client := NewClient(server.URL, cb, testLogger(), Options{})

	err := client.Do(context.Background(), getBusinessDoc, nil, nil)
	assert.Equal(t, http.StatusBadGateway, apperrors.HTTPStatus(err))

	err = client.Do(context.Background(), getBusinessDoc, nil, nil)
	assert.Equal(t, http.StatusServiceUnavailable, apperrors.HTTPStatus(err))
	assert.ErrorIs(t, err, httpclient.ErrCircuitOpen)
}

func TestClient_Do_CanceledContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.Do(ctx, getBusinessDoc, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_Ping(t *testing.T) {
	var op atomic.Value
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		op.Store(req.OperationName)
		_, _ = w.Write([]byte(`{"data":{"__typename":"Query"}}`))
	}, 0)

	require.NoError(t, client.Ping(context.Background()))
	assert.Equal(t, "Ping", op.Load())
}

func TestClient_Ping_Unreachable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, 0)

	err := client.Ping(context.Background())

	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, apperrors.HTTPStatus(err))
}
