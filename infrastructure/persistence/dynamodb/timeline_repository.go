package dynamodb

import (
	"context"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"journaline/application/ports"
	"journaline/domain/core/entities"
	"journaline/domain/core/valueobjects"
	pkgerrors "journaline/pkg/errors"
)

type originItem struct {
	TimelineID string `dynamodbav:"TimelineId"`
	Date       string `dynamodbav:"Date"`
}

type timelineItem struct {
	PK          string       `dynamodbav:"PK"`
	SK          string       `dynamodbav:"SK"`
	EntityType  string       `dynamodbav:"EntityType"`
	TimelineID  string       `dynamodbav:"TimelineID"`
	Name        string       `dynamodbav:"Name"`
	Description string       `dynamodbav:"Description"`
	Color       string       `dynamodbav:"Color"`
	GroupOrder  []string     `dynamodbav:"GroupOrder"`
	SortField   string       `dynamodbav:"SortField"`
	SortOrder   string       `dynamodbav:"SortOrder"`
	Publish     bool         `dynamodbav:"Publish"`
	IsArchived  bool         `dynamodbav:"IsArchived"`
	Origin      []originItem `dynamodbav:"Origin"`
	CreatedAt   string       `dynamodbav:"CreatedAt"`
	UpdatedAt   string       `dynamodbav:"UpdatedAt"`
}

// TimelineRepository implements ports.TimelineRepository using DynamoDB
type TimelineRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewTimelineRepository creates a new TimelineRepository
func NewTimelineRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) *TimelineRepository {
	return &TimelineRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

var _ ports.TimelineRepository = (*TimelineRepository)(nil)

// Save persists a timeline with a full put
func (r *TimelineRepository) Save(ctx context.Context, timeline *entities.Timeline) error {
	origin := make([]originItem, 0, len(timeline.Origin()))
	for _, rec := range timeline.Origin() {
		origin = append(origin, originItem{
			TimelineID: rec.TimelineID,
			Date:       rec.Date.Format(time.RFC3339),
		})
	}

	item := timelineItem{
		PK:          journalPartition,
		SK:          timelineSKPrefix + timeline.ID().String(),
		EntityType:  "TIMELINE",
		TimelineID:  timeline.ID().String(),
		Name:        timeline.Name(),
		Description: timeline.Description(),
		Color:       timeline.Color(),
		GroupOrder:  timeline.GroupOrder(),
		SortField:   string(timeline.SortPreference().Field),
		SortOrder:   string(timeline.SortPreference().Order),
		Publish:     timeline.IsPublished(),
		IsArchived:  timeline.IsArchived(),
		Origin:      origin,
		CreatedAt:   timeline.CreatedAt().Format(time.RFC3339),
		UpdatedAt:   timeline.UpdatedAt().Format(time.RFC3339),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return pkgerrors.NewDatabaseError("marshal timeline", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		r.logger.Error("Failed to save timeline",
			zap.String("timelineID", timeline.ID().String()),
			zap.Error(err),
		)
		return pkgerrors.NewDatabaseError("save timeline", err)
	}

	return nil
}

// FindByID loads one timeline, archived or not
func (r *TimelineRepository) FindByID(ctx context.Context, id string) (*entities.Timeline, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: journalPartition},
			"SK": &types.AttributeValueMemberS{Value: timelineSKPrefix + id},
		},
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get timeline", err)
	}
	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("timeline")
	}

	var item timelineItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, pkgerrors.NewDatabaseError("unmarshal timeline", err)
	}

	return item.toEntity()
}

// FindAll lists timelines newest first. Archived timelines are filtered
// out in the store unless includeArchived is set.
func (r *TimelineRepository) FindAll(ctx context.Context, includeArchived bool) ([]*entities.Timeline, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(journalPartition)).
		And(expression.Key("SK").BeginsWith(timelineSKPrefix))

	builder := expression.NewBuilder().WithKeyCondition(keyCond)
	if !includeArchived {
		builder = builder.WithFilter(expression.Equal(expression.Name("IsArchived"), expression.Value(false)))
	}

	expr, err := builder.Build()
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("build timeline query", err)
	}

	var out []*entities.Timeline
	var lastKey map[string]types.AttributeValue
	for {
		result, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			KeyConditionExpression:    expr.KeyCondition(),
			FilterExpression:          expr.Filter(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         lastKey,
		})
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("query timelines", err)
		}

		for _, raw := range result.Items {
			var item timelineItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, pkgerrors.NewDatabaseError("unmarshal timeline", err)
			}
			timeline, err := item.toEntity()
			if err != nil {
				return nil, err
			}
			out = append(out, timeline)
		}

		lastKey = result.LastEvaluatedKey
		if lastKey == nil {
			break
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})

	return out, nil
}

func (it timelineItem) toEntity() (*entities.Timeline, error) {
	id, err := valueobjects.NewTimelineIDFromString(it.TimelineID)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("parse timeline id", err)
	}

	sortPref, err := valueobjects.NewSortPreference(it.SortField, it.SortOrder)
	if err != nil {
		sortPref = valueobjects.DefaultSortPreference()
	}

	createdAt, err := time.Parse(time.RFC3339, it.CreatedAt)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("parse timeline createdAt", err)
	}
	updatedAt, err := time.Parse(time.RFC3339, it.UpdatedAt)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("parse timeline updatedAt", err)
	}

	origin := make([]entities.OriginRecord, 0, len(it.Origin))
	for _, rec := range it.Origin {
		date, err := time.Parse(time.RFC3339, rec.Date)
		if err != nil {
			return nil, pkgerrors.NewDatabaseError("parse origin date", err)
		}
		origin = append(origin, entities.OriginRecord{TimelineID: rec.TimelineID, Date: date})
	}

	return entities.ReconstructTimeline(
		id,
		it.Name, it.Description, it.Color,
		it.GroupOrder,
		sortPref,
		it.Publish, it.IsArchived,
		origin,
		createdAt, updatedAt,
	)
}
