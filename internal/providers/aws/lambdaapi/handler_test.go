package lambdaapi

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/runvoy/contactform/internal/constants"
	"github.com/runvoy/contactform/internal/contact"
	"github.com/runvoy/contactform/internal/handlers"
	dynamoRepo "github.com/runvoy/contactform/internal/providers/aws/database/dynamodb"
	"github.com/runvoy/contactform/internal/server"
	"github.com/runvoy/contactform/internal/testutil"

	awsevents "github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validBody = `{"name":"Ada","email":"ada@example.com","message":"Hello"}`

func newContactHandler() (*handlers.Handler, *dynamoRepo.MemoryClient, *testutil.RecordingSender) {
	log := testutil.SilentLogger()
	client := dynamoRepo.NewMemoryClient()
	sender := testutil.NewRecordingSender()
	repo := dynamoRepo.NewSubmissionRepository(client, "submissions", log)
	svc := contact.NewService(repo, sender, "admin@example.com", log,
		contact.WithClock(func() time.Time { return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC) }))
	return handlers.NewHandler(svc, nil, log), client, sender
}

func invokeProxy(t *testing.T, event awsevents.APIGatewayProxyRequest) awsevents.APIGatewayProxyResponse {
	t.Helper()
	h, _, _ := newContactHandler()
	return invoke(t, NewProxyHandler(h, 0), event)
}

func invoke(t *testing.T, handler interface {
	Invoke(context.Context, []byte) ([]byte, error)
}, event awsevents.APIGatewayProxyRequest) awsevents.APIGatewayProxyResponse {
	t.Helper()
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	out, err := handler.Invoke(context.Background(), payload)
	require.NoError(t, err)

	var resp awsevents.APIGatewayProxyResponse
	require.NoError(t, json.Unmarshal(out, &resp))
	return resp
}

func TestProxyHandler(t *testing.T) {
	tests := []struct {
		name       string
		event      awsevents.APIGatewayProxyRequest
		wantStatus int
		wantBody   string
	}{
		{
			name:       "valid submission",
			event:      awsevents.APIGatewayProxyRequest{HTTPMethod: http.MethodPost, Body: validBody},
			wantStatus: http.StatusOK,
			wantBody:   `{"message":"Form submitted successfully"}`,
		},
		{
			name: "base64 encoded body",
			event: awsevents.APIGatewayProxyRequest{
				HTTPMethod:      http.MethodPost,
				Body:            base64.StdEncoding.EncodeToString([]byte(validBody)),
				IsBase64Encoded: true,
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"message":"Form submitted successfully"}`,
		},
		{
			name:       "missing body",
			event:      awsevents.APIGatewayProxyRequest{HTTPMethod: http.MethodPost},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Missing request body"}`,
		},
		{
			name:       "missing fields",
			event:      awsevents.APIGatewayProxyRequest{HTTPMethod: http.MethodPost, Body: `{"name":"Ada"}`},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Missing required fields: name, email, message"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := invokeProxy(t, tt.event)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.JSONEq(t, tt.wantBody, resp.Body)
			assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
			assert.Equal(t, "OPTIONS,POST", resp.Headers["Access-Control-Allow-Methods"])
		})
	}
}

func TestProxyHandler_Preflight(t *testing.T) {
	h, client, sender := newContactHandler()

	resp := invoke(t, NewProxyHandler(h, 0), awsevents.APIGatewayProxyRequest{
		HTTPMethod: http.MethodOptions,
		Body:       validBody,
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Body)
	assert.Equal(t, "true", resp.Headers["Access-Control-Allow-Credentials"])
	assert.Zero(t, client.PutItemCalls)
	assert.Empty(t, sender.Sent())
}

type deadlineRecorder struct {
	deadline    time.Time
	hasDeadline bool
}

func (d *deadlineRecorder) Handle(ctx context.Context, _ handlers.Request) handlers.Response {
	d.deadline, d.hasDeadline = ctx.Deadline()
	return handlers.Response{StatusCode: http.StatusOK}
}

func TestProxyHandler_RequestTimeout(t *testing.T) {
	t.Run("timeout bounds the handler context", func(t *testing.T) {
		rec := &deadlineRecorder{}
		start := time.Now()

		resp := invoke(t, NewProxyHandler(rec, 5*time.Second), awsevents.APIGatewayProxyRequest{HTTPMethod: http.MethodPost})

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		require.True(t, rec.hasDeadline)
		assert.WithinDuration(t, start.Add(5*time.Second), rec.deadline, time.Second)
	})

	t.Run("zero timeout adds no deadline", func(t *testing.T) {
		rec := &deadlineRecorder{}

		invoke(t, NewProxyHandler(rec, 0), awsevents.APIGatewayProxyRequest{HTTPMethod: http.MethodPost})

		assert.False(t, rec.hasDeadline)
	})
}

func TestToRequest(t *testing.T) {
	tests := []struct {
		name     string
		event    awsevents.APIGatewayProxyRequest
		wantBody *string
	}{
		{name: "no body", event: awsevents.APIGatewayProxyRequest{HTTPMethod: "POST"}},
		{name: "plain body", event: awsevents.APIGatewayProxyRequest{HTTPMethod: "POST", Body: "hi"}, wantBody: ptr("hi")},
		{
			name:     "base64 body",
			event:    awsevents.APIGatewayProxyRequest{HTTPMethod: "POST", Body: "aGk=", IsBase64Encoded: true},
			wantBody: ptr("hi"),
		},
		{
			name:     "invalid base64 is passed through",
			event:    awsevents.APIGatewayProxyRequest{HTTPMethod: "POST", Body: "not base64!", IsBase64Encoded: true},
			wantBody: ptr("not base64!"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := toRequest(tt.event)

			assert.Equal(t, "POST", req.Method)
			assert.Equal(t, tt.wantBody, req.Body)
		})
	}
}

func TestNewHandler(t *testing.T) {
	h, _, _ := newContactHandler()
	router := server.NewRouter(h, nil, 0, testutil.SilentLogger())

	for _, adapter := range []constants.LambdaAdapter{constants.LambdaAdapterProxy, constants.LambdaAdapterRouter} {
		handler, err := NewHandler(adapter, h, router, time.Second)
		require.NoError(t, err)
		assert.NotNil(t, handler)
	}

	_, err := NewHandler("alb", h, router, 0)
	require.Error(t, err)
}

func TestRouterHandler(t *testing.T) {
	h, client, _ := newContactHandler()
	router := server.NewRouter(h, nil, 0, testutil.SilentLogger())

	resp := invoke(t, NewRouterHandler(router), awsevents.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/contact",
		Resource:   "/contact",
		Body:       validBody,
		RequestContext: awsevents.APIGatewayProxyRequestContext{
			AccountID:  "123456789012",
			RequestID:  "req-1",
			Stage:      "prod",
			HTTPMethod: http.MethodPost,
		},
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Form submitted successfully"}`, resp.Body)
	assert.Len(t, client.Items("submissions"), 1)
}

func ptr(s string) *string {
	return &s
}
