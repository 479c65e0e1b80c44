// Package logger provides structured logging utilities for contactform.
// It includes context-aware logging and log level management.
package logger

import (
	"context"
	"log/slog"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
)

type contextKey string

const (
	requestIDContextKey contextKey = "requestID"
)

// RequestIDLogField is the field name used for request ID in log entries
const RequestIDLogField = "request_id"

// GetRequestID extracts the request ID from the context.
// The request ID is set by server middleware when available.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDContextKey).(string); ok {
		return requestID
	}

	return ""
}

// WithRequestID returns a copy of ctx carrying the given request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, requestID)
}

// DeriveRequestLogger returns a logger enriched with request-scoped fields
// available in the provided context. The HTTP server request ID wins over the
// AWS Lambda request ID.
func DeriveRequestLogger(ctx context.Context, base *slog.Logger) *slog.Logger {
	if base == nil {
		base = slog.Default()
	}

	if requestID := GetRequestID(ctx); requestID != "" {
		return base.With(RequestIDLogField, requestID)
	}

	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return base.With(RequestIDLogField, lc.AwsRequestID)
	}

	return base
}

// GetDeadlineInfo returns logging attributes for context deadline information.
// Returns the absolute deadline time and remaining duration if set, or "none" if no deadline.
func GetDeadlineInfo(ctx context.Context) []any {
	deadline, ok := ctx.Deadline()
	if !ok {
		return []any{"deadline", "none", "deadline_remaining", "none"}
	}

	remaining := time.Until(deadline)
	return []any{
		"deadline", deadline.Format(time.RFC3339),
		"deadline_remaining", remaining.String(),
	}
}

// SliceToMap converts a slice of alternating key-value pairs to a map[string]any.
// It expects the slice to have an even number of elements with string keys.
// Non-string keys are skipped.
func SliceToMap(args []any) map[string]any {
	argsMap := make(map[string]any)
	for i := 0; i < len(args); i += 2 {
		if i+1 < len(args) {
			if key, ok := args[i].(string); ok {
				argsMap[key] = args[i+1]
			}
		}
	}
	return argsMap
}
