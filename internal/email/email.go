// Package email defines the outbound notification contract.
package email

import (
	"context"
	"log/slog"

	"github.com/runvoy/contactform/internal/logger"
)

// Message is a plain-text email. The source address is fixed by the Sender.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a single message and returns an error when delivery fails.
type Sender interface {
	Send(ctx context.Context, msg Message) error
	// Provider names the backend for logs and metrics.
	Provider() string
}

// LogSender writes messages to the logger instead of delivering them.
// It backs the local dry-run mode.
type LogSender struct {
	from   string
	logger *slog.Logger
}

// NewLogSender creates a LogSender that reports from as the source address.
func NewLogSender(from string, log *slog.Logger) *LogSender {
	return &LogSender{from: from, logger: log}
}

// Send logs the message.
func (s *LogSender) Send(ctx context.Context, msg Message) error {
	logger.DeriveRequestLogger(ctx, s.logger).Info("email not delivered (log provider)", "email", map[string]string{
		"from":    s.from,
		"to":      msg.To,
		"subject": msg.Subject,
		"body":    msg.Body,
	})
	return nil
}

// Provider implements Sender.
func (s *LogSender) Provider() string {
	return "log"
}
