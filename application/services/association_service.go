package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"journaline/application/ports"
	"journaline/domain/core/entities"
	"journaline/domain/events"
	pkgerrors "journaline/pkg/errors"
)

// AssociationService manages the many-to-many relationship between events
// and timelines. Every mutation goes through store-side atomic set
// operations, so add and remove are idempotent and race-free per document,
// and each successful change broadcasts an EventsChanged notification for
// subscribed views to re-fetch.
type AssociationService struct {
	events    ports.EventRepository
	timelines ports.TimelineRepository
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewAssociationService creates an association service
func NewAssociationService(
	events ports.EventRepository,
	timelines ports.TimelineRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *AssociationService {
	return &AssociationService{
		events:    events,
		timelines: timelines,
		publisher: publisher,
		logger:    logger,
	}
}

// AddEventToTimeline associates an event with a timeline. Adding an
// already-present association is a no-op that still succeeds.
func (s *AssociationService) AddEventToTimeline(ctx context.Context, eventID, timelineID string) error {
	// Events may only reference timelines that exist
	if _, err := s.timelines.FindByID(ctx, timelineID); err != nil {
		return err
	}

	if err := s.events.AddTimelineRef(ctx, eventID, timelineID); err != nil {
		s.logger.Error("Failed to add event to timeline",
			zap.String("eventID", eventID),
			zap.String("timelineID", timelineID),
			zap.Error(err),
		)
		return err
	}

	s.broadcast(ctx, eventID)
	return nil
}

// RemoveEventFromTimeline severs one association. This is "remove from this
// timeline", not "delete event": the event record always survives.
func (s *AssociationService) RemoveEventFromTimeline(ctx context.Context, eventID, timelineID string) error {
	// Confirm the event exists so a bad id surfaces as NOT_FOUND rather
	// than a silent no-op set removal.
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		return err
	}

	if err := s.events.RemoveTimelineRef(ctx, eventID, timelineID); err != nil {
		s.logger.Error("Failed to remove event from timeline",
			zap.String("eventID", eventID),
			zap.String("timelineID", timelineID),
			zap.Error(err),
		)
		return err
	}

	s.broadcast(ctx, eventID)
	return nil
}

// SetEventTimelines replaces the event's full membership set, used by the
// multi-select checklist flow.
func (s *AssociationService) SetEventTimelines(ctx context.Context, eventID string, timelineIDs []string) (*entities.Event, error) {
	for _, tid := range timelineIDs {
		if _, err := s.timelines.FindByID(ctx, tid); err != nil {
			if pkgerrors.IsNotFound(err) {
				return nil, pkgerrors.NewValidationError("timelineIds references a timeline that does not exist")
			}
			return nil, err
		}
	}

	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	event.SetTimelines(timelineIDs)

	if err := s.events.Save(ctx, event); err != nil {
		return nil, err
	}

	s.publishCommitted(ctx, event)
	s.broadcast(ctx, eventID)
	return event, nil
}

func (s *AssociationService) publishCommitted(ctx context.Context, event *entities.Event) {
	if err := s.publisher.PublishBatch(ctx, event.GetUncommittedEvents()); err != nil {
		s.logger.Warn("Failed to publish domain events", zap.Error(err))
	}
	event.MarkEventsAsCommitted()
}

func (s *AssociationService) broadcast(ctx context.Context, eventID string) {
	if err := s.publisher.Publish(ctx, events.NewEventsChanged(eventID, time.Now())); err != nil {
		s.logger.Warn("Failed to broadcast events changed", zap.Error(err))
	}
}
