package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/runvoy/contactform/internal/logger"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/go-chi/chi/v5/middleware"
)

// requestIDMiddleware stores the request ID where the logger can find it.
// Priority: 1) Lambda request ID, 2) the ID generated by chi's RequestID middleware.
func (r *Router) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		requestID := ""
		if lc, ok := lambdacontext.FromContext(req.Context()); ok && lc.AwsRequestID != "" {
			requestID = lc.AwsRequestID
		}
		if requestID == "" {
			requestID = middleware.GetReqID(req.Context())
		}

		if requestID != "" {
			req = req.WithContext(logger.WithRequestID(req.Context(), requestID))
		}
		next.ServeHTTP(w, req)
	})
}

// requestTimeoutMiddleware creates a context with timeout for each request.
func (r *Router) requestTimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx, cancel := context.WithTimeout(req.Context(), timeout)
			defer cancel()

			req = req.WithContext(ctx)

			next.ServeHTTP(w, req)

			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				logger.DeriveRequestLogger(ctx, r.logger).Warn("request timeout exceeded", "request", map[string]any{
					"method":  req.Method,
					"path":    req.URL.Path,
					"timeout": timeout.String(),
				})
			}
		})
	}
}

// requestLoggingMiddleware logs incoming requests and their responses.
func (r *Router) requestLoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		log := logger.DeriveRequestLogger(req.Context(), r.logger)
		start := time.Now()

		wrapped := middleware.NewWrapResponseWriter(w, req.ProtoMajor)

		log.Info("processing incoming client request", "request", map[string]string{
			"method":     req.Method,
			"path":       req.URL.Path,
			"remoteAddr": req.RemoteAddr,
		})

		next.ServeHTTP(wrapped, req)

		status := wrapped.Status()
		if status == 0 {
			status = http.StatusOK
		}
		log.Info("response sent to client", "response", map[string]any{
			"status":   status,
			"duration": time.Since(start).String(),
		})
	})
}
