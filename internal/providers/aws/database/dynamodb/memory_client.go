package dynamodb

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/runvoy/contactform/internal/constants"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// MemoryClient is an in-memory implementation of Client keyed like the
// submissions table (email + timestamp). It backs tests and the local dry-run mode.
type MemoryClient struct {
	mu sync.RWMutex

	// Tables maps table name -> "<email>#<timestamp>" -> item
	Tables map[string]map[string]map[string]types.AttributeValue

	// Error injection for testing error scenarios
	PutItemError error

	// Call tracking for test assertions
	PutItemCalls int
}

// NewMemoryClient creates an empty in-memory client.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{
		Tables: make(map[string]map[string]map[string]types.AttributeValue),
	}
}

// PutItem stores or replaces an item. Any condition expression is treated as
// attribute_not_exists on the key, the only condition the repository sends.
func (m *MemoryClient) PutItem(
	_ context.Context,
	params *dynamodb.PutItemInput,
	_ ...func(*dynamodb.Options),
) (*dynamodb.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PutItemCalls++

	if m.PutItemError != nil {
		return nil, m.PutItemError
	}
	if params.TableName == nil || *params.TableName == "" {
		return nil, errors.New("table name is required")
	}

	partitionKey := getStringValue(params.Item[constants.SubmissionPartitionKey])
	sortKey := getStringValue(params.Item[constants.SubmissionSortKey])
	if partitionKey == "" || sortKey == "" {
		return nil, errors.New("item is missing key attributes")
	}

	table := m.Tables[*params.TableName]
	if table == nil {
		table = make(map[string]map[string]types.AttributeValue)
		m.Tables[*params.TableName] = table
	}
	key := partitionKey + "#" + sortKey
	if _, exists := table[key]; exists && params.ConditionExpression != nil {
		return nil, &types.ConditionalCheckFailedException{
			Message: aws.String("The conditional request failed"),
		}
	}
	table[key] = params.Item

	return &dynamodb.PutItemOutput{}, nil
}

// Items returns the items of a table ordered by key.
func (m *MemoryClient) Items(tableName string) []map[string]types.AttributeValue {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.Tables[tableName]))
	for k := range m.Tables[tableName] {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	items := make([]map[string]types.AttributeValue, 0, len(keys))
	for _, k := range keys {
		items = append(items, m.Tables[tableName][k])
	}
	return items
}

func getStringValue(av types.AttributeValue) string {
	if s, ok := av.(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}
