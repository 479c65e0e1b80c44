// Package resend delivers notification emails through the Resend HTTP API.
package resend

import (
	"context"
	"log/slog"

	"github.com/runvoy/contactform/internal/constants"
	"github.com/runvoy/contactform/internal/email"
	appErrors "github.com/runvoy/contactform/internal/errors"
	"github.com/runvoy/contactform/internal/logger"

	"github.com/resend/resend-go/v2"
)

// EmailsAPI is the subset of the Resend emails service used by the sender.
type EmailsAPI interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// Sender implements email.Sender on Resend.
type Sender struct {
	emails EmailsAPI
	from   string
	logger *slog.Logger
}

// NewSender creates a Sender authenticated with apiKey.
func NewSender(apiKey, from string, log *slog.Logger) *Sender {
	return newSender(resend.NewClient(apiKey).Emails, from, log)
}

func newSender(emails EmailsAPI, from string, log *slog.Logger) *Sender {
	return &Sender{
		emails: emails,
		from:   from,
		logger: log,
	}
}

// Send delivers msg as a plain-text email.
func (s *Sender) Send(ctx context.Context, msg email.Message) error {
	reqLogger := logger.DeriveRequestLogger(ctx, s.logger)

	logArgs := []any{
		"operation", "Resend.SendEmail",
		"to", msg.To,
		"subject", msg.Subject,
	}
	logArgs = append(logArgs, logger.GetDeadlineInfo(ctx)...)
	reqLogger.Debug("calling external service", "context", logger.SliceToMap(logArgs))

	resp, err := s.emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Text:    msg.Body,
	})
	if err != nil {
		reqLogger.Error("failed to send email", "context", map[string]string{
			"to":    msg.To,
			"error": err.Error(),
		})
		return appErrors.ErrEmailError("failed to send email", err)
	}

	reqLogger.Debug("email sent", "context", map[string]string{
		"to": msg.To,
		"id": resp.Id,
	})
	return nil
}

// Provider implements email.Sender.
func (s *Sender) Provider() string {
	return string(constants.EmailProviderResend)
}
