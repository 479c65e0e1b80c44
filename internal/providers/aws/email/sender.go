// Package email delivers notification emails through Amazon SES (v2 API).
package email

import (
	"context"
	"errors"
	"log/slog"

	"github.com/runvoy/contactform/internal/constants"
	"github.com/runvoy/contactform/internal/email"
	appErrors "github.com/runvoy/contactform/internal/errors"
	"github.com/runvoy/contactform/internal/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/aws/smithy-go"
)

// Client defines the SES operations used by the sender.
// *sesv2.Client satisfies it.
type Client interface {
	SendEmail(
		ctx context.Context,
		params *sesv2.SendEmailInput,
		optFns ...func(*sesv2.Options),
	) (*sesv2.SendEmailOutput, error)
}

// Sender implements email.Sender on SES.
type Sender struct {
	client Client
	from   string
	logger *slog.Logger
}

// NewSender creates a Sender that sends from the given verified identity.
func NewSender(client Client, from string, log *slog.Logger) *Sender {
	return &Sender{
		client: client,
		from:   from,
		logger: log,
	}
}

// Send delivers msg as a simple plain-text email.
func (s *Sender) Send(ctx context.Context, msg email.Message) error {
	reqLogger := logger.DeriveRequestLogger(ctx, s.logger)

	logArgs := []any{
		"operation", "SES.SendEmail",
		"to", msg.To,
		"subject", msg.Subject,
	}
	logArgs = append(logArgs, logger.GetDeadlineInfo(ctx)...)
	reqLogger.Debug("calling external service", "context", logger.SliceToMap(logArgs))

	out, err := s.client.SendEmail(ctx, buildInput(s.from, msg))
	if err != nil {
		failure := map[string]any{
			"to":    msg.To,
			"error": err.Error(),
		}
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			failure["aws_error_code"] = apiErr.ErrorCode()
		}
		reqLogger.Error("failed to send email", "context", failure)
		return appErrors.ErrEmailError("failed to send email", err)
	}

	reqLogger.Debug("email sent", "context", map[string]string{
		"to":         msg.To,
		"message_id": aws.ToString(out.MessageId),
	})
	return nil
}

// Provider implements email.Sender.
func (s *Sender) Provider() string {
	return string(constants.EmailProviderSES)
}

func buildInput(from string, msg email.Message) *sesv2.SendEmailInput {
	return &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(msg.Body)},
				},
			},
		},
	}
}
