// Package server exposes the contact handler over HTTP with a chi router.
// The router backs the local development server and the algnhsa Lambda adapter.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/runvoy/contactform/internal/constants"
	"github.com/runvoy/contactform/internal/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router wraps the chi mux and the contact handler.
type Router struct {
	router  *chi.Mux
	handler *handlers.Handler
	logger  *slog.Logger
}

// NewRouter creates a chi router with the contact, health and metrics routes.
// A zero requestTimeout disables the per-request timeout. gatherer may be nil,
// in which case /metrics is not served.
func NewRouter(
	h *handlers.Handler,
	gatherer prometheus.Gatherer,
	requestTimeout time.Duration,
	log *slog.Logger,
) *Router {
	r := chi.NewRouter()
	router := &Router{
		router:  r,
		handler: h,
		logger:  log,
	}

	r.Use(middleware.RequestID)
	r.Use(router.requestIDMiddleware)
	r.Use(router.requestLoggingMiddleware)
	r.Use(middleware.Recoverer)
	if requestTimeout > 0 {
		r.Use(router.requestTimeoutMiddleware(requestTimeout))
	}

	// Every method on the contact paths reaches the handler, as it does behind
	// the proxy adapter, so each response carries the CORS headers.
	for _, path := range []string{"/", constants.ContactPath} {
		r.HandleFunc(path, router.handleContact)
	}

	r.Get(constants.HealthPath, router.handleHealth)
	r.NotFound(router.handleContact)
	r.MethodNotAllowed(router.handleContact)

	if gatherer != nil {
		r.Handle(constants.MetricsPath, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return router
}

// Handler returns the underlying http.Handler.
func (r *Router) Handler() http.Handler {
	return r.router
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
