// Package dynamodb implements the repository ports on a single DynamoDB
// table. Items share the journal partition and are typed by sort-key
// prefix: EVENT#{id} and TIMELINE#{id}.
package dynamodb

import (
	"context"
	"errors"
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

const (
	journalPartition = "JOURNAL"
	eventSKPrefix    = "EVENT#"
	timelineSKPrefix = "TIMELINE#"
)

// eventItem is the DynamoDB item shape for a journal event. TimelineIds is
// a string set so membership mutations can use ADD/DELETE set semantics;
// DynamoDB forbids empty sets, hence omitempty.
type eventItem struct {
	PK          string   `dynamodbav:"PK"`
	SK          string   `dynamodbav:"SK"`
	EntityType  string   `dynamodbav:"EntityType"`
	EventID     string   `dynamodbav:"EventID"`
	Title       string   `dynamodbav:"Title"`
	Description string   `dynamodbav:"Description"`
	Date        string   `dynamodbav:"Date"`
	TimelineIds []string `dynamodbav:"TimelineIds,stringset,omitempty"`
	CreatedAt   string   `dynamodbav:"CreatedAt"`
	UpdatedAt   string   `dynamodbav:"UpdatedAt"`
}

// EventRepository implements ports.EventRepository using DynamoDB
type EventRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) *EventRepository {
	return &EventRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

var _ ports.EventRepository = (*EventRepository)(nil)

// Save persists an event with a full put
func (r *EventRepository) Save(ctx context.Context, event *entities.Event) error {
	item := eventItem{
		PK:          journalPartition,
		SK:          eventSKPrefix + event.ID().String(),
		EntityType:  "EVENT",
		EventID:     event.ID().String(),
		Title:       event.Title(),
		Description: event.Description(),
		Date:        event.Date().Format(time.RFC3339),
		TimelineIds: event.TimelineIDs(),
		CreatedAt:   event.CreatedAt().Format(time.RFC3339),
		UpdatedAt:   event.UpdatedAt().Format(time.RFC3339),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return pkgerrors.NewDatabaseError("marshal event", err)
	}

	if _, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}); err != nil {
		r.logger.Error("Failed to save event",
			zap.String("eventID", event.ID().String()),
			zap.Error(err),
		)
		return pkgerrors.NewDatabaseError("save event", err)
	}

	return nil
}

// FindByID loads one event
func (r *EventRepository) FindByID(ctx context.Context, id string) (*entities.Event, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       eventKey(id),
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get event", err)
	}
	if result.Item == nil {
		return nil, pkgerrors.NewNotFoundError("event")
	}

	var item eventItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, pkgerrors.NewDatabaseError("unmarshal event", err)
	}

	return item.toEntity()
}

// FindAll lists events, filtered in the store where the filter allows
func (r *EventRepository) FindAll(ctx context.Context, filter ports.EventFilter) ([]*entities.Event, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(journalPartition)).
		And(expression.Key("SK").BeginsWith(eventSKPrefix))

	builder := expression.NewBuilder().WithKeyCondition(keyCond)

	var filters []expression.ConditionBuilder
	if filter.TimelineID != "" {
		filters = append(filters, expression.Contains(expression.Name("TimelineIds"), filter.TimelineID))
	}
	if !filter.From.IsZero() {
		filters = append(filters, expression.GreaterThanEqual(
			expression.Name("Date"), expression.Value(filter.From.Format(time.RFC3339))))
	}
	if !filter.To.IsZero() {
		filters = append(filters, expression.LessThanEqual(
			expression.Name("Date"), expression.Value(filter.To.Format(time.RFC3339))))
	}
	if len(filters) > 0 {
		cond := filters[0]
		for _, f := range filters[1:] {
			cond = cond.And(f)
		}
		builder = builder.WithFilter(cond)
	}

	expr, err := builder.Build()
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("build event query", err)
	}

	var out []*entities.Event
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
			return nil, pkgerrors.NewDatabaseError("query events", err)
		}

		for _, raw := range result.Items {
			var item eventItem
			if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
				return nil, pkgerrors.NewDatabaseError("unmarshal event", err)
			}
			event, err := item.toEntity()
			if err != nil {
				return nil, err
			}
			out = append(out, event)
		}

		lastKey = result.LastEvaluatedKey
		if lastKey == nil {
			break
		}
	}

	return out, nil
}

// Delete removes an event permanently
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 eventKey(id),
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	if err != nil {
		if isConditionFailed(err) {
			return pkgerrors.NewNotFoundError("event")
		}
		return pkgerrors.NewDatabaseError("delete event", err)
	}
	return nil
}

// AddTimelineRef adds a timeline id to the event's membership set with a
// store-side ADD. Adding an id already in the set is a no-op, so the
// operation is idempotent and immune to the stale-array race.
func (r *EventRepository) AddTimelineRef(ctx context.Context, eventID, timelineID string) error {
	return r.updateTimelineSet(ctx, eventID, timelineID, "ADD")
}

// RemoveTimelineRef removes a timeline id from the membership set with a
// store-side DELETE. Removing an absent id is a no-op.
func (r *EventRepository) RemoveTimelineRef(ctx context.Context, eventID, timelineID string) error {
	return r.updateTimelineSet(ctx, eventID, timelineID, "DELETE")
}

func (r *EventRepository) updateTimelineSet(ctx context.Context, eventID, timelineID, verb string) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 eventKey(eventID),
		UpdateExpression:    aws.String(verb + " TimelineIds :t SET UpdatedAt = :u"),
		ConditionExpression: aws.String("attribute_exists(PK)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t": &types.AttributeValueMemberSS{Value: []string{timelineID}},
			":u": &types.AttributeValueMemberS{Value: time.Now().Format(time.RFC3339)},
		},
	})
	if err != nil {
		if isConditionFailed(err) {
			return pkgerrors.NewNotFoundError("event")
		}
		return pkgerrors.NewDatabaseError("update event timelines", err)
	}
	return nil
}

// PropagateTimelineRef queries every event whose membership set contains
// fromTimelineID and ADDs toTimelineID to each, one conditional update per
// document. There is no cross-document transaction; on failure the count
// of already-updated events is still reported.
func (r *EventRepository) PropagateTimelineRef(ctx context.Context, fromTimelineID, toTimelineID string) (int, error) {
	members, err := r.FindAll(ctx, ports.EventFilter{TimelineID: fromTimelineID})
	if err != nil {
		return 0, err
	}

	count := 0
	for _, event := range members {
		if err := r.AddTimelineRef(ctx, event.ID().String(), toTimelineID); err != nil {
			r.logger.Error("Failed to propagate timeline ref",
				zap.String("eventID", event.ID().String()),
				zap.String("toTimelineID", toTimelineID),
				zap.Int("propagated", count),
				zap.Error(err),
			)
			return count, err
		}
		count++
	}
	return count, nil
}

func (it eventItem) toEntity() (*entities.Event, error) {
	id, err := valueobjects.NewEventIDFromString(it.EventID)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("parse event id", err)
	}

	date, err := time.Parse(time.RFC3339, it.Date)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("parse event date", err)
	}
	createdAt, err := time.Parse(time.RFC3339, it.CreatedAt)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("parse event createdAt", err)
	}
	updatedAt, err := time.Parse(time.RFC3339, it.UpdatedAt)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("parse event updatedAt", err)
	}

	return entities.ReconstructEvent(id, it.Title, it.Description, date, it.TimelineIds, createdAt, updatedAt)
}

func eventKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: journalPartition},
		"SK": &types.AttributeValueMemberS{Value: eventSKPrefix + id},
	}
}

func isConditionFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}
