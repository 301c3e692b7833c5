package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"journaline/application/ports"
	"journaline/domain/core/entities"
	"journaline/domain/events"
)

// CreateEventInput carries the data for recording a new journal event
type CreateEventInput struct {
	Title       string
	Description string
	Date        time.Time
	TimelineIDs []string
}

// UpdateEventInput carries the data for mutating an existing event
type UpdateEventInput struct {
	Title       string
	Description string
	Date        time.Time
}

// EventService implements event CRUD. Events are created by explicit user
// action and hard-deleted on explicit delete. There is no soft-delete for
// events, unlike timelines.
type EventService struct {
	events    ports.EventRepository
	timelines ports.TimelineRepository
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewEventService creates an event service
func NewEventService(
	events ports.EventRepository,
	timelines ports.TimelineRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *EventService {
	return &EventService{
		events:    events,
		timelines: timelines,
		publisher: publisher,
		logger:    logger,
	}
}

// Create records a new event, optionally pre-associated with timelines
// (the bulk "select events" step at timeline creation works through this).
func (s *EventService) Create(ctx context.Context, input CreateEventInput) (*entities.Event, error) {
	event, err := entities.NewEvent(input.Title, input.Description, input.Date)
	if err != nil {
		return nil, err
	}

	for _, tid := range input.TimelineIDs {
		// Events may only reference timelines that exist
		timeline, err := s.timelines.FindByID(ctx, tid)
		if err != nil {
			return nil, err
		}
		event.AddToTimeline(timeline.ID())
	}

	if err := s.events.Save(ctx, event); err != nil {
		return nil, err
	}

	s.publishCommitted(ctx, event)
	s.broadcast(ctx, event.ID().String())

	s.logger.Info("Event created",
		zap.String("eventID", event.ID().String()),
		zap.Time("date", event.Date()),
	)

	return event, nil
}

// Get returns one event by id
func (s *EventService) Get(ctx context.Context, id string) (*entities.Event, error) {
	return s.events.FindByID(ctx, id)
}

// List returns events matching the filter
func (s *EventService) List(ctx context.Context, filter ports.EventFilter) ([]*entities.Event, error) {
	return s.events.FindAll(ctx, filter)
}

// Update mutates an event's title, description and date
func (s *EventService) Update(ctx context.Context, id string, input UpdateEventInput) (*entities.Event, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := event.UpdateDetails(input.Title, input.Description, input.Date); err != nil {
		return nil, err
	}

	if err := s.events.Save(ctx, event); err != nil {
		return nil, err
	}

	s.publishCommitted(ctx, event)
	s.broadcast(ctx, id)

	return event, nil
}

// Purge hard-deletes an event. Distinct from removing a timeline
// association: the record is physically gone afterwards.
func (s *EventService) Purge(ctx context.Context, id string) error {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.events.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.publisher.Publish(ctx, events.NewEventPurged(event.ID(), time.Now())); err != nil {
		s.logger.Warn("Failed to publish event purged", zap.Error(err))
	}
	s.broadcast(ctx, id)

	return nil
}

func (s *EventService) publishCommitted(ctx context.Context, event *entities.Event) {
	if err := s.publisher.PublishBatch(ctx, event.GetUncommittedEvents()); err != nil {
		s.logger.Warn("Failed to publish domain events", zap.Error(err))
	}
	event.MarkEventsAsCommitted()
}

func (s *EventService) broadcast(ctx context.Context, eventID string) {
	if err := s.publisher.Publish(ctx, events.NewEventsChanged(eventID, time.Now())); err != nil {
		s.logger.Warn("Failed to broadcast events changed", zap.Error(err))
	}
}
