package contact

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/runvoy/contactform/internal/api"
	"github.com/runvoy/contactform/internal/database"
	"github.com/runvoy/contactform/internal/email"
	appErrors "github.com/runvoy/contactform/internal/errors"
	"github.com/runvoy/contactform/internal/logger"
	"github.com/runvoy/contactform/internal/metrics"
)

// Service stores submissions and sends the two notification emails.
type Service struct {
	repo       database.SubmissionRepository
	sender     email.Sender
	adminEmail string
	metrics    *metrics.Recorder
	logger     *slog.Logger
	now        func() time.Time
}

// Option customises a Service.
type Option func(*Service)

// WithClock overrides the clock used to stamp submissions.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithMetrics attaches a metrics recorder.
func WithMetrics(r *metrics.Recorder) Option {
	return func(s *Service) {
		s.metrics = r
	}
}

// NewService creates a Service. adminEmail receives the new-submission notice.
func NewService(
	repo database.SubmissionRepository,
	sender email.Sender,
	adminEmail string,
	log *slog.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		repo:       repo,
		sender:     sender,
		adminEmail: adminEmail,
		logger:     log,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit persists the submission, then notifies the administrator, then the
// submitter. Each step runs only after the previous one succeeded. A stored
// record is kept when a later email fails.
func (s *Service) Submit(ctx context.Context, req *api.SubmissionRequest) (*api.Submission, error) {
	reqLogger := logger.DeriveRequestLogger(ctx, s.logger)

	sub := &api.Submission{
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		Timestamp: s.now().UTC(),
	}

	if err := s.repo.CreateSubmission(ctx, sub); err != nil {
		return nil, err
	}

	if err := s.send(ctx, AdminNotification(s.adminEmail, sub)); err != nil {
		return nil, err
	}

	if err := s.send(ctx, Confirmation(sub)); err != nil {
		return nil, err
	}

	reqLogger.Info("submission processed", "submission", map[string]string{
		"email": sub.Email,
		"name":  sub.Name,
	})

	return sub, nil
}

func (s *Service) send(ctx context.Context, msg email.Message) error {
	start := time.Now()
	err := s.sender.Send(ctx, msg)
	s.metrics.ObserveEmailSend(s.sender.Provider(), time.Since(start), err)
	if err != nil {
		var appErr *appErrors.AppError
		if errors.As(err, &appErr) {
			return err
		}
		return appErrors.ErrEmailError("failed to send email", err)
	}
	return nil
}
