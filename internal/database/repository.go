// Package database defines repository interfaces for data persistence.
package database

import (
	"context"

	"github.com/runvoy/contactform/internal/api"
)

// SubmissionRepository persists contact-form submissions.
// This abstraction allows for different implementations without changing the business logic layer.
type SubmissionRepository interface {
	// CreateSubmission writes the submission once. Implementations do not
	// deduplicate and must return an error when the write fails.
	CreateSubmission(ctx context.Context, submission *api.Submission) error
}
