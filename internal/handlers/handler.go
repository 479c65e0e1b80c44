// Package handlers contains the contact endpoint's request handler. It is
// transport agnostic: the Lambda adapters and the HTTP router translate their
// own request types into Request and write back the Response.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/runvoy/contactform/internal/api"
	"github.com/runvoy/contactform/internal/constants"
	"github.com/runvoy/contactform/internal/contact"
	appErrors "github.com/runvoy/contactform/internal/errors"
	"github.com/runvoy/contactform/internal/logger"
	"github.com/runvoy/contactform/internal/metrics"
)

// Request is an inbound call. Body is nil when the caller sent none.
type Request struct {
	Method string
	Body   *string
}

// Response is the outbound result. Body is a JSON document, or empty for preflight.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       string
}

// Submitter dispatches a validated submission.
type Submitter interface {
	Submit(ctx context.Context, req *api.SubmissionRequest) (*api.Submission, error)
}

// Handler produces exactly one Response per Request.
type Handler struct {
	svc     Submitter
	metrics *metrics.Recorder
	logger  *slog.Logger
}

// NewHandler creates a Handler. rec may be nil.
func NewHandler(svc Submitter, rec *metrics.Recorder, log *slog.Logger) *Handler {
	return &Handler{
		svc:     svc,
		metrics: rec,
		logger:  log,
	}
}

// Handle runs preflight detection, body decoding, validation and dispatch.
// A panic in a collaborator is reported as a 500 like any other failure.
func (h *Handler) Handle(ctx context.Context, req Request) (resp Response) {
	reqLogger := logger.DeriveRequestLogger(ctx, h.logger)

	defer func() {
		if r := recover(); r != nil {
			h.metrics.ObserveSubmission(constants.OutcomeError)
			resp = h.errorResponse(ctx, appErrors.ErrInternalError("panic while handling request", fmt.Errorf("%v", r)))
		}
	}()

	if strings.EqualFold(req.Method, http.MethodOptions) {
		h.metrics.ObserveSubmission(constants.OutcomePreflight)
		return Response{
			StatusCode: http.StatusOK,
			Headers:    corsHeaders(),
		}
	}

	body := ""
	if req.Body != nil {
		body = *req.Body
	}
	reqLogger.Debug("received event", "event", map[string]any{
		"method":      req.Method,
		"body_length": len(body),
	})

	if body == "" {
		h.metrics.ObserveSubmission(constants.OutcomeInvalid)
		return h.errorResponse(ctx, appErrors.ErrBadRequest(constants.MissingBodyMessage, nil))
	}

	decoded := contact.ParseBody(body)
	if _, raw := decoded.(contact.Raw); raw {
		reqLogger.Debug("request body is not a JSON object, passing it through as raw text")
	}

	submission, err := contact.Validate(decoded)
	if err != nil {
		h.metrics.ObserveSubmission(constants.OutcomeInvalid)
		return h.errorResponse(ctx, err)
	}

	if _, err = h.svc.Submit(ctx, submission); err != nil {
		h.metrics.ObserveSubmission(constants.OutcomeError)
		return h.errorResponse(ctx, err)
	}

	h.metrics.ObserveSubmission(constants.OutcomeSuccess)
	return jsonResponse(http.StatusOK, api.SuccessResponse{Message: constants.SubmissionSucceededMessage})
}

// errorResponse maps client errors to 400 with their message and every other
// failure to a generic 500. Server-side details only reach the log.
func (h *Handler) errorResponse(ctx context.Context, err error) Response {
	reqLogger := logger.DeriveRequestLogger(ctx, h.logger)

	if appErrors.IsClientError(err) {
		reqLogger.Info("rejected request", "error", map[string]string{
			"code":    appErrors.GetErrorCode(err),
			"message": appErrors.GetErrorMessage(err),
			"details": appErrors.GetErrorDetails(err),
		})
		return jsonResponse(appErrors.GetStatusCode(err), api.ErrorResponse{Error: appErrors.GetErrorMessage(err)})
	}

	reqLogger.Error("error processing request", "error", map[string]string{
		"code":    appErrors.GetErrorCode(err),
		"message": appErrors.GetErrorMessage(err),
		"details": appErrors.GetErrorDetails(err),
	})
	return jsonResponse(http.StatusInternalServerError, api.ErrorResponse{Error: constants.InternalErrorMessage})
}

func jsonResponse(status int, payload any) Response {
	headers := corsHeaders()
	headers[constants.ContentTypeHeader] = constants.ContentTypeJSON

	// Response payloads are plain string structs; Marshal cannot fail on them.
	body, _ := json.Marshal(payload)

	return Response{
		StatusCode: status,
		Headers:    headers,
		Body:       string(body),
	}
}

func corsHeaders() map[string]string {
	return map[string]string{
		constants.HeaderAllowOrigin:      constants.CORSAllowOrigin,
		constants.HeaderAllowMethods:     constants.CORSAllowMethods,
		constants.HeaderAllowHeaders:     constants.CORSAllowHeaders,
		constants.HeaderAllowCredentials: constants.CORSAllowCredentials,
	}
}
