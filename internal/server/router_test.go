package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/runvoy/contactform/internal/api"
	"github.com/runvoy/contactform/internal/contact"
	"github.com/runvoy/contactform/internal/handlers"
	"github.com/runvoy/contactform/internal/logger"
	"github.com/runvoy/contactform/internal/metrics"
	dynamoRepo "github.com/runvoy/contactform/internal/providers/aws/database/dynamodb"
	"github.com/runvoy/contactform/internal/testutil"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	client *dynamoRepo.MemoryClient
	sender *testutil.RecordingSender
	router *Router
}

func newTestEnv(t *testing.T, requestTimeout time.Duration) *testEnv {
	t.Helper()
	log := testutil.SilentLogger()
	client := dynamoRepo.NewMemoryClient()
	sender := testutil.NewRecordingSender()
	reg := prometheus.NewRegistry()
	rec := metrics.NewRecorder(reg)

	repo := dynamoRepo.NewSubmissionRepository(client, "submissions", log)
	svc := contact.NewService(repo, sender, "admin@example.com", log, contact.WithMetrics(rec))
	h := handlers.NewHandler(svc, rec, log)

	return &testEnv{
		client: client,
		sender: sender,
		router: NewRouter(h, reg, requestTimeout, log),
	}
}

func TestRouter_Contact(t *testing.T) {
	for _, path := range []string{"/contact", "/"} {
		t.Run(path, func(t *testing.T) {
			env := newTestEnv(t, 0)

			req := httptest.NewRequest(http.MethodPost, path,
				strings.NewReader(`{"name":"Ada","email":"ada@example.com","message":"Hello"}`))
			rec := httptest.NewRecorder()
			env.router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, `{"message":"Form submitted successfully"}`, rec.Body.String())
			assert.Len(t, env.client.Items("submissions"), 1)
			assert.Len(t, env.sender.Sent(), 2)
		})
	}
}

func TestRouter_ContactErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{name: "empty body", body: "", wantStatus: http.StatusBadRequest, wantError: "Missing request body"},
		{name: "missing fields", body: `{"name":"Ada"}`, wantStatus: http.StatusBadRequest, wantError: "Missing required fields: name, email, message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, time.Second)

			req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			env.router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "OPTIONS,POST", rec.Header().Get("Access-Control-Allow-Methods"))

			var resp api.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantError, resp.Error)
			assert.Zero(t, env.client.PutItemCalls)
		})
	}
}

func TestRouter_EveryResponseCarriesCORS(t *testing.T) {
	valid := `{"name":"Ada","email":"ada@example.com","message":"Hello"}`
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantStored int
	}{
		{name: "GET without body", method: http.MethodGet, path: "/contact", wantStatus: http.StatusBadRequest},
		{name: "DELETE without body", method: http.MethodDelete, path: "/", wantStatus: http.StatusBadRequest},
		{name: "PUT with submission", method: http.MethodPut, path: "/contact", body: valid, wantStatus: http.StatusOK, wantStored: 1},
		{name: "unknown path", method: http.MethodPost, path: "/other", body: valid, wantStatus: http.StatusOK, wantStored: 1},
		{name: "unsupported method on health", method: http.MethodPost, path: "/health", wantStatus: http.StatusBadRequest},
		{name: "preflight on unknown path", method: http.MethodOptions, path: "/other", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, 0)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			env.router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "OPTIONS,POST", rec.Header().Get("Access-Control-Allow-Methods"))
			assert.Len(t, env.client.Items("submissions"), tt.wantStored)
			if tt.wantStatus == http.StatusBadRequest {
				var resp api.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, "Missing request body", resp.Error)
			}
		})
	}
}

func TestRouter_Preflight(t *testing.T) {
	env := newTestEnv(t, 0)

	req := httptest.NewRequest(http.MethodOptions, "/contact", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "OPTIONS,POST", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	assert.Empty(t, rec.Body.String())
	assert.Zero(t, env.client.PutItemCalls)
}

func TestRouter_Health(t *testing.T) {
	env := newTestEnv(t, 0)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp api.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.Version)
}

func TestRouter_Metrics(t *testing.T) {
	env := newTestEnv(t, 0)

	env.router.ServeHTTP(httptest.NewRecorder(),
		httptest.NewRequest(http.MethodOptions, "/contact", nil))

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `contactform_submissions_total{outcome="preflight"} 1`)
}

func TestRouter_MetricsDisabled(t *testing.T) {
	log := testutil.SilentLogger()
	router := NewRouter(handlers.NewHandler(nil, nil, log), nil, 0, log)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotContains(t, rec.Body.String(), "contactform_submissions_total")
}

func TestRequestIDMiddleware(t *testing.T) {
	log := testutil.SilentLogger()
	router := &Router{logger: log}

	var got string
	next := http.HandlerFunc(func(_ http.ResponseWriter, req *http.Request) {
		got = logger.GetRequestID(req.Context())
	})

	t.Run("lambda request id wins", func(t *testing.T) {
		ctx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{AwsRequestID: "aws-req-1"})
		req := httptest.NewRequest(http.MethodPost, "/contact", nil).WithContext(ctx)

		router.requestIDMiddleware(next).ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, "aws-req-1", got)
	})

	t.Run("no request id available", func(t *testing.T) {
		got = "unchanged"
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)

		router.requestIDMiddleware(next).ServeHTTP(httptest.NewRecorder(), req)

		assert.Empty(t, got)
	})
}
