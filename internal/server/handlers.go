package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/runvoy/contactform/internal/api"
	"github.com/runvoy/contactform/internal/constants"
	"github.com/runvoy/contactform/internal/handlers"
	"github.com/runvoy/contactform/internal/logger"
)

// handleContact translates the HTTP request into a handlers.Request and
// writes back the Response unchanged.
func (r *Router) handleContact(w http.ResponseWriter, req *http.Request) {
	in := handlers.Request{Method: req.Method}

	if req.Body != nil {
		defer func() {
			_ = req.Body.Close()
		}()
		body, err := io.ReadAll(req.Body)
		if err != nil {
			logger.DeriveRequestLogger(req.Context(), r.logger).Warn("failed to read request body", "error", err)
		}
		if len(body) > 0 {
			s := string(body)
			in.Body = &s
		}
	}

	writeResponse(w, r.handler.Handle(req.Context(), in))
}

// handleHealth returns a simple health check response
func (r *Router) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set(constants.ContentTypeHeader, constants.ContentTypeJSON)
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(api.HealthResponse{
		Status:  "ok",
		Version: *constants.GetVersion(),
	})
}

func writeResponse(w http.ResponseWriter, resp handlers.Response) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	if resp.Body != "" {
		_, _ = io.WriteString(w, resp.Body)
	}
}
