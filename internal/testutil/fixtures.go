// Package testutil provides shared testing utilities and helpers.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/runvoy/contactform/internal/api"
	"github.com/runvoy/contactform/internal/email"
)

// SilentLogger creates a logger that discards all output.
func SilentLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError + 1, // Suppress all logs
	}))
}

// SubmissionRequestBuilder provides a fluent interface for building test submissions.
type SubmissionRequestBuilder struct {
	req api.SubmissionRequest
}

// NewSubmissionRequestBuilder starts from the Ada fixture.
func NewSubmissionRequestBuilder() *SubmissionRequestBuilder {
	return &SubmissionRequestBuilder{
		req: api.SubmissionRequest{
			Name:    "Ada",
			Email:   "ada@example.com",
			Message: "Hello",
		},
	}
}

// WithName sets the name.
func (b *SubmissionRequestBuilder) WithName(name string) *SubmissionRequestBuilder {
	b.req.Name = name
	return b
}

// WithEmail sets the email.
func (b *SubmissionRequestBuilder) WithEmail(addr string) *SubmissionRequestBuilder {
	b.req.Email = addr
	return b
}

// WithMessage sets the message.
func (b *SubmissionRequestBuilder) WithMessage(msg string) *SubmissionRequestBuilder {
	b.req.Message = msg
	return b
}

// Build returns the request.
func (b *SubmissionRequestBuilder) Build() *api.SubmissionRequest {
	req := b.req
	return &req
}

// RecordingSender is an email.Sender that records every message.
// Errors maps a call index (0-based) to the error returned by that call.
type RecordingSender struct {
	mu       sync.Mutex
	Messages []email.Message
	Errors   map[int]error
}

// NewRecordingSender creates a sender that succeeds on every call.
func NewRecordingSender() *RecordingSender {
	return &RecordingSender{Errors: map[int]error{}}
}

// FailOn makes the call with the given index return err.
func (s *RecordingSender) FailOn(call int, err error) *RecordingSender {
	s.Errors[call] = err
	return s
}

// Send implements email.Sender.
func (s *RecordingSender) Send(_ context.Context, msg email.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	call := len(s.Messages)
	s.Messages = append(s.Messages, msg)
	return s.Errors[call]
}

// Provider implements email.Sender.
func (s *RecordingSender) Provider() string {
	return "recording"
}

// Sent returns a copy of the recorded messages.
func (s *RecordingSender) Sent() []email.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]email.Message(nil), s.Messages...)
}
