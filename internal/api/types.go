// Package api defines the API types and structures used across contactform.
// It contains the submission model and the request and response bodies of the endpoint.
package api

import "time"

// SubmissionRequest is the JSON body accepted by the contact endpoint.
type SubmissionRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// Submission is a validated contact-form entry. Timestamp is assigned by the
// server when the record is written.
type Submission struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// SuccessResponse is returned when a submission was stored and both emails were sent.
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse represents the response to a health check request
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
