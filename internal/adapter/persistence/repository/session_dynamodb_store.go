package repository

import (
	"context"
	"fmt"
	"time"

	"donation_interface/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultSessionsTableName = "donor_sessions"
	defaultSessionTTL        = 24 * time.Hour
)

type sessionItem struct {
	SessionID string `dynamodbav:"session_id"`
	Key       string `dynamodbav:"key"`
	Value     string `dynamodbav:"value"`
	ExpiresAt int64  `dynamodbav:"expires_at"`
}

// SessionDynamoStore keeps donor session values in DynamoDB, one item per
// session key.
//
// Table requirements:
//   - PK: session_id (string)
//   - SK: key (string)
//   - TTL attribute: expires_at

type SessionDynamoStore struct {
	ddb       dynamoAPI
	tableName string
	ttl       time.Duration
	now       func() time.Time
}

var _ interfaces.ISessionStore = (*SessionDynamoStore)(nil)

func NewSessionDynamoStore(ddb dynamoAPI) *SessionDynamoStore {
	return &SessionDynamoStore{
		ddb:       ddb,
		tableName: getenvDefault("SESSIONS_TABLE", defaultSessionsTableName),
		ttl:       getenvDuration("SESSION_TTL", defaultSessionTTL),
		now:       time.Now,
	}
}

func (s *SessionDynamoStore) itemKey(namespace, key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"session_id": &types.AttributeValueMemberS{Value: namespace},
		"key":        &types.AttributeValueMemberS{Value: key},
	}
}

func (s *SessionDynamoStore) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	out, err := s.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.tableName),
		Key:            s.itemKey(namespace, key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return "", false, err
	}
	if len(out.Item) == 0 {
		return "", false, nil
	}
	var it sessionItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return "", false, err
	}
	// TTL deletion is lazy, expired items can still be read.
	if it.ExpiresAt > 0 && it.ExpiresAt <= s.now().Unix() {
		return "", false, nil
	}
	return it.Value, true, nil
}

func (s *SessionDynamoStore) Set(ctx context.Context, namespace, key, value string) error {
	av, err := attributevalue.MarshalMap(sessionItem{
		SessionID: namespace,
		Key:       key,
		Value:     value,
		ExpiresAt: s.now().Add(s.ttl).Unix(),
	})
	if err != nil {
		return err
	}
	_, err = s.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	})
	return err
}

// Clear deletes the given keys, or every key of the session when none are
// given.
func (s *SessionDynamoStore) Clear(ctx context.Context, namespace string, keys ...string) error {
	if len(keys) == 0 {
		var err error
		if keys, err = s.keys(ctx, namespace); err != nil {
			return err
		}
	}
	for _, key := range keys {
		if _, err := s.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: aws.String(s.tableName),
			Key:       s.itemKey(namespace, key),
		}); err != nil {
			return fmt.Errorf("delete session key %s: %w", key, err)
		}
	}
	return nil
}

func (s *SessionDynamoStore) keys(ctx context.Context, namespace string) ([]string, error) {
	var (
		keys  []string
		start map[string]types.AttributeValue
	)
	for {
		out, err := s.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(s.tableName),
			KeyConditionExpression: aws.String("#sid = :sid"),
			ExpressionAttributeNames: map[string]string{
				"#sid": "session_id",
				"#key": "key",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":sid": &types.AttributeValueMemberS{Value: namespace},
			},
			ProjectionExpression: aws.String("#key"),
			ExclusiveStartKey:    start,
		})
		if err != nil {
			return nil, err
		}
		for _, item := range out.Items {
			if v, ok := item["key"].(*types.AttributeValueMemberS); ok {
				keys = append(keys, v.Value)
			}
		}
		if len(out.LastEvaluatedKey) == 0 {
			return keys, nil
		}
		start = out.LastEvaluatedKey
	}
}
