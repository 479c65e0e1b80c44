package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/runvoy/contactform/internal/api"
	"github.com/runvoy/contactform/internal/constants"

	"github.com/spf13/cobra"
)

var (
	submitEndpoint string
	submitName     string
	submitEmail    string
	submitMessage  string
	submitTimeout  time.Duration
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Post a contact form submission to an endpoint",
	Example: fmt.Sprintf(`  - %s submit --name Ada --email ada@example.com --message "Hello"
  - %s submit --endpoint https://abc.execute-api.eu-west-1.amazonaws.com/prod/contact --name Ada --email ada@example.com --message "Hello"`,
		constants.ProjectName, constants.ProjectName),
	RunE: submitRun,
}

func init() {
	defaultEndpoint := fmt.Sprintf("http://localhost:%s%s", constants.DevServerPort, constants.ContactPath)
	submitCmd.Flags().StringVar(&submitEndpoint, "endpoint", defaultEndpoint, "Contact endpoint URL")
	submitCmd.Flags().StringVar(&submitName, "name", "", "Submitter name")
	submitCmd.Flags().StringVar(&submitEmail, "email", "", "Submitter email address")
	submitCmd.Flags().StringVar(&submitMessage, "message", "", "Message body")
	submitCmd.Flags().DurationVar(&submitTimeout, "timeout", constants.SubmitClientTimeout, "HTTP request timeout")
	rootCmd.AddCommand(submitCmd)
}

func submitRun(cmd *cobra.Command, _ []string) error {
	service := NewSubmitService(api.NewClient(submitEndpoint, submitTimeout), NewOutputWrapper())
	return service.Submit(cmd.Context(), submitEndpoint, api.SubmissionRequest{
		Name:    submitName,
		Email:   submitEmail,
		Message: submitMessage,
	})
}

// SubmitClient posts a submission.
type SubmitClient interface {
	Submit(ctx context.Context, req api.SubmissionRequest) (*api.SuccessResponse, error)
}

// SubmitService handles the submit command logic.
type SubmitService struct {
	client SubmitClient
	output OutputInterface
}

// NewSubmitService creates a new SubmitService with the provided dependencies.
func NewSubmitService(client SubmitClient, outputter OutputInterface) *SubmitService {
	return &SubmitService{
		client: client,
		output: outputter,
	}
}

// Submit sends the submission and reports the outcome. Empty fields are sent
// as-is so the endpoint's own validation can be exercised.
func (s *SubmitService) Submit(ctx context.Context, endpoint string, req api.SubmissionRequest) error {
	if ctx == nil {
		ctx = context.Background()
	}

	s.output.KeyValue("Endpoint", endpoint)
	s.output.KeyValue("Name", req.Name)
	s.output.KeyValue("Email", req.Email)
	s.output.Blank()
	s.output.Infof("Submitting contact form…")

	resp, err := s.client.Submit(ctx, req)
	if err != nil {
		var statusErr *api.StatusError
		if errors.As(err, &statusErr) {
			return fmt.Errorf("submission rejected (%d): %s", statusErr.StatusCode, statusErr.Message)
		}
		return fmt.Errorf("failed to submit: %w", err)
	}

	s.output.Successf("%s", resp.Message)
	return nil
}
