// Package dynamodb implements the submission repository on Amazon DynamoDB.
package dynamodb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// Client defines the DynamoDB operations used by the repository.
// *dynamodb.Client satisfies it; tests and dry runs use MemoryClient.
type Client interface {
	PutItem(
		ctx context.Context,
		params *dynamodb.PutItemInput,
		optFns ...func(*dynamodb.Options),
	) (*dynamodb.PutItemOutput, error)
}
