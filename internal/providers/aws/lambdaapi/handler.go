// Package lambdaapi provides Lambda handler creation for AWS Lambda,
// translating API Gateway events into calls to the transport-agnostic contact handler.
package lambdaapi

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/runvoy/contactform/internal/constants"
	"github.com/runvoy/contactform/internal/handlers"

	"github.com/akrylysov/algnhsa"
	awsevents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
)

// Handler is the transport-agnostic contact handler served by the proxy adapter.
type Handler interface {
	Handle(ctx context.Context, req handlers.Request) handlers.Response
}

// NewHandler returns the Lambda handler for the configured adapter.
// requestTimeout bounds each proxy invocation; the router applies its own.
func NewHandler(
	adapter constants.LambdaAdapter,
	h *handlers.Handler,
	router http.Handler,
	requestTimeout time.Duration,
) (lambda.Handler, error) {
	switch adapter {
	case constants.LambdaAdapterProxy:
		return NewProxyHandler(h, requestTimeout), nil
	case constants.LambdaAdapterRouter:
		return NewRouterHandler(router), nil
	default:
		return nil, fmt.Errorf("unknown lambda adapter: %s (supported: %s, %s)",
			adapter, constants.LambdaAdapterProxy, constants.LambdaAdapterRouter)
	}
}

// NewProxyHandler handles API Gateway proxy events. Every invocation yields a
// response; the returned error is always nil so API Gateway never sees a
// function error. A zero requestTimeout leaves the invocation context as is.
func NewProxyHandler(h Handler, requestTimeout time.Duration) lambda.Handler {
	return lambda.NewHandler(func(
		ctx context.Context,
		event awsevents.APIGatewayProxyRequest,
	) (awsevents.APIGatewayProxyResponse, error) {
		if requestTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, requestTimeout)
			defer cancel()
		}

		resp := h.Handle(ctx, toRequest(event))
		return awsevents.APIGatewayProxyResponse{
			StatusCode: resp.StatusCode,
			Headers:    resp.Headers,
			Body:       resp.Body,
		}, nil
	})
}

// NewRouterHandler serves the HTTP router through algnhsa, which accepts
// API Gateway, ALB and Function URL events.
func NewRouterHandler(router http.Handler) lambda.Handler {
	return algnhsa.New(router, nil)
}

func toRequest(event awsevents.APIGatewayProxyRequest) handlers.Request {
	req := handlers.Request{Method: event.HTTPMethod}
	if event.Body == "" {
		return req
	}

	body := event.Body
	if event.IsBase64Encoded {
		if decoded, err := base64.StdEncoding.DecodeString(body); err == nil {
			body = string(decoded)
		}
	}
	if body != "" {
		req.Body = &body
	}
	return req
}
