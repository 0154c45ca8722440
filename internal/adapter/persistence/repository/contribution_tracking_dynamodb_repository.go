package repository

import (
	"context"
	"errors"
	"log"
	"time"

	"donation_interface/internal/domain/entities"
	"donation_interface/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultContributionTrackingTableName = "contribution_tracking"

type contributionTrackingItem struct {
	ID           string `dynamodbav:"id"`
	Note         string `dynamodbav:"note,omitempty"`
	Referrer     string `dynamodbav:"referrer,omitempty"`
	Anonymous    bool   `dynamodbav:"anonymous"`
	UtmSource    string `dynamodbav:"utm_source,omitempty"`
	UtmMedium    string `dynamodbav:"utm_medium,omitempty"`
	UtmCampaign  string `dynamodbav:"utm_campaign,omitempty"`
	Optout       bool   `dynamodbav:"optout"`
	Language     string `dynamodbav:"language,omitempty"`
	Gateway      string `dynamodbav:"gateway,omitempty"`
	Amount       string `dynamodbav:"amount,omitempty"`
	CurrencyCode string `dynamodbav:"currency_code,omitempty"`
	TS           string `dynamodbav:"ts"`
	CreatedAt    string `dynamodbav:"created_at"`
	UpdatedAt    string `dynamodbav:"updated_at"`
}

// ContributionTrackingDynamoRepository persists ContributionTracking rows in
// DynamoDB.
//
// Table requirements:
//   - PK: id (string)

type ContributionTrackingDynamoRepository struct {
	ddb       dynamoAPI
	tableName string
}

var _ interfaces.IContributionTrackingRepository = (*ContributionTrackingDynamoRepository)(nil)

func NewContributionTrackingDynamoRepository(ddb dynamoAPI) *ContributionTrackingDynamoRepository {
	return &ContributionTrackingDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("CONTRIBUTION_TRACKING_TABLE", defaultContributionTrackingTableName),
	}
}

func (r *ContributionTrackingDynamoRepository) Create(ctx context.Context, t entities.ContributionTracking) (entities.ContributionTracking, error) {
	av, err := attributevalue.MarshalMap(toContributionTrackingItem(t))
	if err != nil {
		return entities.ContributionTracking{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.ContributionTracking{}, err
	}
	return t, nil
}

func (r *ContributionTrackingDynamoRepository) GetByID(ctx context.Context, id string) (entities.ContributionTracking, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            stringKey("id", id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.ContributionTracking{}, err
	}
	if len(out.Item) == 0 {
		return entities.ContributionTracking{}, nil
	}

	var it contributionTrackingItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.ContributionTracking{}, err
	}
	return fromContributionTrackingItem(it), nil
}

// Update overwrites the tracked columns of an existing row. A missing row
// yields a zero value.
func (r *ContributionTrackingDynamoRepository) Update(ctx context.Context, t entities.ContributionTracking) (entities.ContributionTracking, error) {
	it := toContributionTrackingItem(t)
	values, err := attributevalue.MarshalMap(map[string]any{
		":note":          it.Note,
		":referrer":      it.Referrer,
		":anonymous":     it.Anonymous,
		":utm_source":    it.UtmSource,
		":utm_medium":    it.UtmMedium,
		":utm_campaign":  it.UtmCampaign,
		":optout":        it.Optout,
		":language":      it.Language,
		":gateway":       it.Gateway,
		":amount":        it.Amount,
		":currency_code": it.CurrencyCode,
		":ts":            it.TS,
		":updated_at":    it.UpdatedAt,
	})
	if err != nil {
		return entities.ContributionTracking{}, err
	}
	names := map[string]string{
		"#note":          "note",
		"#referrer":      "referrer",
		"#anonymous":     "anonymous",
		"#utm_source":    "utm_source",
		"#utm_medium":    "utm_medium",
		"#utm_campaign":  "utm_campaign",
		"#optout":        "optout",
		"#language":      "language",
		"#gateway":       "gateway",
		"#amount":        "amount",
		"#currency_code": "currency_code",
		"#ts":            "ts",
		"#updated_at":    "updated_at",
	}
	expr := "SET #note = :note, #referrer = :referrer, #anonymous = :anonymous, " +
		"#utm_source = :utm_source, #utm_medium = :utm_medium, #utm_campaign = :utm_campaign, " +
		"#optout = :optout, #language = :language, #gateway = :gateway, #amount = :amount, " +
		"#currency_code = :currency_code, #ts = :ts, #updated_at = :updated_at"

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       stringKey("id", t.ID),
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			log.Printf("[tracking][repository] update of missing row contribution_tracking_id=%s", t.ID)
			return entities.ContributionTracking{}, nil
		}
		return entities.ContributionTracking{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.ContributionTracking{}, nil
	}
	var updated contributionTrackingItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &updated); err != nil {
		return entities.ContributionTracking{}, err
	}
	return fromContributionTrackingItem(updated), nil
}

func toContributionTrackingItem(t entities.ContributionTracking) contributionTrackingItem {
	return contributionTrackingItem{
		ID:           t.ID,
		Note:         t.Note,
		Referrer:     t.Referrer,
		Anonymous:    t.Anonymous,
		UtmSource:    t.UtmSource,
		UtmMedium:    t.UtmMedium,
		UtmCampaign:  t.UtmCampaign,
		Optout:       t.Optout,
		Language:     t.Language,
		Gateway:      t.Gateway,
		Amount:       t.Amount,
		CurrencyCode: t.CurrencyCode,
		TS:           t.TS,
		CreatedAt:    t.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:    t.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromContributionTrackingItem(it contributionTrackingItem) entities.ContributionTracking {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.ContributionTracking{
		ID:           it.ID,
		Note:         it.Note,
		Referrer:     it.Referrer,
		Anonymous:    it.Anonymous,
		UtmSource:    it.UtmSource,
		UtmMedium:    it.UtmMedium,
		UtmCampaign:  it.UtmCampaign,
		Optout:       it.Optout,
		Language:     it.Language,
		Gateway:      it.Gateway,
		Amount:       it.Amount,
		CurrencyCode: it.CurrencyCode,
		TS:           it.TS,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}
