// Package app assembles the contact endpoint from its configuration.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/runvoy/contactform/internal/config"
	"github.com/runvoy/contactform/internal/constants"
	"github.com/runvoy/contactform/internal/contact"
	"github.com/runvoy/contactform/internal/database"
	"github.com/runvoy/contactform/internal/email"
	"github.com/runvoy/contactform/internal/handlers"
	"github.com/runvoy/contactform/internal/metrics"
	awsApp "github.com/runvoy/contactform/internal/providers/aws/app"
	dynamoRepo "github.com/runvoy/contactform/internal/providers/aws/database/dynamodb"
	"github.com/runvoy/contactform/internal/providers/resend"

	"github.com/prometheus/client_golang/prometheus"
)

// App holds the assembled endpoint.
type App struct {
	Handler  *handlers.Handler
	Service  *contact.Service
	Registry *prometheus.Registry
	// Store is the in-memory table client used in dry-run mode; nil otherwise.
	Store *dynamoRepo.MemoryClient
}

type options struct {
	dryRun bool
}

// Option customises Initialize.
type Option func(*options)

// WithDryRun replaces DynamoDB with an in-memory table and logs emails instead
// of sending them. No AWS call is made.
func WithDryRun() Option {
	return func(o *options) {
		o.dryRun = true
	}
}

// Initialize builds the repository, the email sender, the metrics registry,
// the contact service and the request handler. It returns an error if the
// context is canceled or the AWS configuration cannot be loaded.
func Initialize(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger.Debug(fmt.Sprintf("initializing %s", constants.ProjectName), "context", map[string]any{
		"version":              *constants.GetVersion(),
		"email_provider":       cfg.EmailProvider,
		"dry_run":              o.dryRun,
		"init_timeout_seconds": cfg.InitTimeout.Seconds(),
	})

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("initialization aborted: %w", err)
	}

	app := &App{Registry: prometheus.NewRegistry()}

	var (
		repo   database.SubmissionRepository
		sender email.Sender
	)

	if o.dryRun {
		app.Store = dynamoRepo.NewMemoryClient()
		repo = dynamoRepo.NewSubmissionRepository(app.Store, cfg.TableName, logger)
		sender = email.NewLogSender(cfg.SenderEmail, logger)
	} else {
		deps, err := awsApp.Initialize(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize AWS: %w", err)
		}
		repo = deps.SubmissionRepo
		sender, err = selectSender(cfg, deps, logger)
		if err != nil {
			return nil, err
		}
	}

	rec := metrics.NewRecorder(app.Registry)
	app.Service = contact.NewService(repo, sender, cfg.AdminEmail, logger, contact.WithMetrics(rec))
	app.Handler = handlers.NewHandler(app.Service, rec, logger)

	logger.Debug(constants.ProjectName+" initialized successfully", "email_provider", sender.Provider())

	return app, nil
}

func selectSender(cfg *config.Config, deps *awsApp.Dependencies, logger *slog.Logger) (email.Sender, error) {
	switch cfg.EmailProvider {
	case constants.EmailProviderSES:
		if deps == nil || deps.EmailSender == nil {
			return nil, fmt.Errorf("SES sender was not initialized")
		}
		return deps.EmailSender, nil
	case constants.EmailProviderResend:
		return resend.NewSender(cfg.ResendAPIKey, cfg.SenderEmail, logger), nil
	case constants.EmailProviderLog:
		return email.NewLogSender(cfg.SenderEmail, logger), nil
	default:
		return nil, fmt.Errorf("unknown email provider: %s (supported: ses, resend, log)", cfg.EmailProvider)
	}
}
