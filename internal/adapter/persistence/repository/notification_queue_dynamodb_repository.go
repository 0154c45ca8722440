package repository

import (
	"context"
	"log"
	"time"

	"donation_interface/internal/domain/entities"
	"donation_interface/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultQueueTableName = "donation_queue"

type queueItem struct {
	Queue         string            `dynamodbav:"queue"`
	CorrelationID string            `dynamodbav:"correlation_id"`
	Body          map[string]string `dynamodbav:"body"`
	EnqueuedAt    string            `dynamodbav:"enqueued_at"`
}

// NotificationQueueDynamoRepository writes downstream donation messages to
// a DynamoDB table consumed by the donation pipeline. An anti-message removes
// the limbo item of the same order.
//
// Table requirements:
//   - PK: queue (string)
//   - SK: correlation_id (string)

type NotificationQueueDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
	now       func() time.Time
}

var _ interfaces.INotificationQueue = (*NotificationQueueDynamoRepository)(nil)

func NewNotificationQueueDynamoRepository(ddb dynamoAPI) *NotificationQueueDynamoRepository {
	return &NotificationQueueDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("QUEUE_TABLE", defaultQueueTableName),
		now:       time.Now,
	}
}

func (r *NotificationQueueDynamoRepository) Send(ctx context.Context, msg entities.QueueMessage) error {
	if msg.Antimessage {
		_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
			TableName: aws.String(r.tableName),
			Key: map[string]types.AttributeValue{
				"queue":          &types.AttributeValueMemberS{Value: string(entities.QueueLimbo)},
				"correlation_id": &types.AttributeValueMemberS{Value: msg.CorrelationID},
			},
		})
		if err == nil {
			log.Printf("[gateway][queue] limbo cleared correlation_id=%s", msg.CorrelationID)
		}
		return err
	}

	av, err := attributevalue.MarshalMap(queueItem{
		Queue:         string(msg.Queue),
		CorrelationID: msg.CorrelationID,
		Body:          msg.Body,
		EnqueuedAt:    r.now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err == nil {
		log.Printf("[gateway][queue] enqueued queue=%s correlation_id=%s", msg.Queue, msg.CorrelationID)
	}
	return err
}
