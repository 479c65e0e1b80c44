package dynamodb

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/runvoy/contactform/internal/api"
	"github.com/runvoy/contactform/internal/constants"
	"github.com/runvoy/contactform/internal/database"
	appErrors "github.com/runvoy/contactform/internal/errors"
	"github.com/runvoy/contactform/internal/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
)

// SubmissionRepository implements the database.SubmissionRepository interface using DynamoDB.
type SubmissionRepository struct {
	client    Client
	tableName string
	logger    *slog.Logger
}

// NewSubmissionRepository creates a new DynamoDB-backed submission repository.
func NewSubmissionRepository(
	client Client,
	tableName string,
	log *slog.Logger,
) database.SubmissionRepository {
	return &SubmissionRepository{
		client:    client,
		tableName: tableName,
		logger:    log,
	}
}

// submissionItem represents the structure stored in DynamoDB.
// This keeps the database schema separate from the API types.
type submissionItem struct {
	Email     string `dynamodbav:"email"`
	Name      string `dynamodbav:"name"`
	Message   string `dynamodbav:"message"`
	Timestamp string `dynamodbav:"timestamp"`
}

// toSubmissionItem converts an api.Submission to a submissionItem.
func toSubmissionItem(sub *api.Submission) *submissionItem {
	return &submissionItem{
		Email:     sub.Email,
		Name:      sub.Name,
		Message:   sub.Message,
		Timestamp: sub.Timestamp.UTC().Format(constants.SubmissionTimestampFormat),
	}
}

// CreateSubmission stores a submission record in DynamoDB. The put is
// conditional on the key being unused; when another submission from the same
// address already holds the timestamp, the timestamp is moved forward by one
// millisecond and the put retried. sub.Timestamp reflects the stored value.
func (r *SubmissionRepository) CreateSubmission(ctx context.Context, sub *api.Submission) error {
	reqLogger := logger.DeriveRequestLogger(ctx, r.logger)

	cond, err := expression.NewBuilder().
		WithCondition(expression.AttributeNotExists(expression.Name(constants.SubmissionPartitionKey))).
		Build()
	if err != nil {
		return appErrors.ErrDatabaseError("failed to build condition expression", err)
	}

	for attempt := 1; ; attempt++ {
		item := toSubmissionItem(sub)

		av, marshalErr := attributevalue.MarshalMap(item)
		if marshalErr != nil {
			return appErrors.ErrDatabaseError("failed to marshal submission item", marshalErr)
		}

		logArgs := []any{
			"operation", "DynamoDB.PutItem",
			"table", r.tableName,
			"email", item.Email,
			"timestamp", item.Timestamp,
			"attempt", attempt,
		}
		logArgs = append(logArgs, logger.GetDeadlineInfo(ctx)...)
		reqLogger.Debug("calling external service", "context", logger.SliceToMap(logArgs))

		_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:                 aws.String(r.tableName),
			Item:                      av,
			ConditionExpression:       cond.Condition(),
			ExpressionAttributeNames:  cond.Names(),
			ExpressionAttributeValues: cond.Values(),
		})

		var conflict *types.ConditionalCheckFailedException
		if errors.As(err, &conflict) && attempt < constants.SubmissionPutAttempts {
			reqLogger.Warn("submission key already taken, retrying with a later timestamp", "context", map[string]string{
				"email":     item.Email,
				"timestamp": item.Timestamp,
			})
			sub.Timestamp = sub.Timestamp.Add(time.Millisecond)
			continue
		}
		if err != nil {
			failure := map[string]any{
				"table": r.tableName,
				"error": err.Error(),
			}
			var apiErr smithy.APIError
			if errors.As(err, &apiErr) {
				failure["aws_error_code"] = apiErr.ErrorCode()
			}
			reqLogger.Error("failed to store submission", "context", failure)
			return appErrors.ErrDatabaseError("failed to store submission", err)
		}

		reqLogger.Debug("submission stored successfully", "context", map[string]string{
			"email":     item.Email,
			"timestamp": item.Timestamp,
		})
		return nil
	}
}
