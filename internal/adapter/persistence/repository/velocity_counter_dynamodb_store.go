package repository

import (
	"context"
	"time"

	"donation_interface/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const defaultVelocityTableName = "velocity_counters"

type velocityItem struct {
	Key       string  `dynamodbav:"key"`
	Stamps    []int64 `dynamodbav:"stamps"`
	ExpiresAt int64   `dynamodbav:"expires_at"`
}

// VelocityCounterDynamoStore is the shared counter store of the velocity
// filters.
//
// Table requirements:
//   - PK: key (string)
//   - TTL attribute: expires_at

type VelocityCounterDynamoStore struct {
	ddb       dynamoAPI
	tableName string
	now       func() time.Time
}

var _ interfaces.ICounterStore = (*VelocityCounterDynamoStore)(nil)

func NewVelocityCounterDynamoStore(ddb dynamoAPI) *VelocityCounterDynamoStore {
	return &VelocityCounterDynamoStore{
		ddb:       ddb,
		tableName: getenvDefault("VELOCITY_TABLE", defaultVelocityTableName),
		now:       time.Now,
	}
}

func (s *VelocityCounterDynamoStore) Get(ctx context.Context, key string) ([]int64, bool, error) {
	out, err := s.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.tableName),
		Key:            stringKey("key", key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, false, err
	}
	if len(out.Item) == 0 {
		return nil, false, nil
	}
	var it velocityItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, false, err
	}
	if it.ExpiresAt > 0 && it.ExpiresAt <= s.now().Unix() {
		return nil, false, nil
	}
	return it.Stamps, true, nil
}

func (s *VelocityCounterDynamoStore) Set(ctx context.Context, key string, stamps []int64, ttl time.Duration) error {
	av, err := attributevalue.MarshalMap(velocityItem{
		Key:       key,
		Stamps:    stamps,
		ExpiresAt: s.now().Add(ttl).Unix(),
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
