// Package aws wires the AWS-backed dependencies of the contact endpoint.
package aws

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/runvoy/contactform/internal/config"
	"github.com/runvoy/contactform/internal/constants"
	"github.com/runvoy/contactform/internal/database"
	dynamoRepo "github.com/runvoy/contactform/internal/providers/aws/database/dynamodb"
	awsEmail "github.com/runvoy/contactform/internal/providers/aws/email"

	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
)

// Dependencies bundles the AWS-backed implementations required by the contact service.
type Dependencies struct {
	SubmissionRepo database.SubmissionRepository
	// EmailSender is nil unless the SES provider is configured.
	EmailSender *awsEmail.Sender
}

// Initialize loads the default AWS configuration and builds the clients.
// Credentials and region come from the standard AWS environment.
func Initialize(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (*Dependencies, error) {
	awsCfg, err := awsConfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	dynamoClient := dynamodb.NewFromConfig(awsCfg)

	logger.Debug("DynamoDB backend configured", "context", map[string]string{
		"table":  cfg.TableName,
		"region": awsCfg.Region,
	})

	deps := &Dependencies{
		SubmissionRepo: dynamoRepo.NewSubmissionRepository(dynamoClient, cfg.TableName, logger),
	}

	if cfg.EmailProvider == constants.EmailProviderSES {
		deps.EmailSender = awsEmail.NewSender(sesv2.NewFromConfig(awsCfg), cfg.SenderEmail, logger)
		logger.Debug("SES email backend configured", "context", map[string]string{
			"sender": cfg.SenderEmail,
		})
	}

	return deps, nil
}
