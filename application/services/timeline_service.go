package services

import (
	"context"

	"go.uber.org/zap"

	"journaline/application/ports"
	"journaline/domain/core/entities"
	"journaline/domain/core/valueobjects"
)

// CreateTimelineInput carries the data for creating a timeline. EventIDs is
// the optional bulk "select events" step: listed events are associated with
// the new timeline immediately after creation.
type CreateTimelineInput struct {
	Name        string
	Description string
	EventIDs    []string
}

// UpdateTimelineInput carries configuration changes for a timeline. Nil
// pointers leave the corresponding field untouched.
type UpdateTimelineInput struct {
	Name        *string
	Description *string
	Color       *string
	SortField   *string
	SortOrder   *string
	Publish     *bool
}

// TimelineService implements timeline CRUD, archiving, and manual group
// reordering. Archiving is the soft-delete: a deleted timeline is retained
// but excluded from default listings.
type TimelineService struct {
	events    ports.EventRepository
	timelines ports.TimelineRepository
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewTimelineService creates a timeline service
func NewTimelineService(
	events ports.EventRepository,
	timelines ports.TimelineRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *TimelineService {
	return &TimelineService{
		events:    events,
		timelines: timelines,
		publisher: publisher,
		logger:    logger,
	}
}

// Create creates a timeline, empty or seeded with the given events
func (s *TimelineService) Create(ctx context.Context, input CreateTimelineInput) (*entities.Timeline, error) {
	timeline, err := entities.NewTimeline(input.Name, input.Description)
	if err != nil {
		return nil, err
	}

	if err := s.timelines.Save(ctx, timeline); err != nil {
		return nil, err
	}

	for _, eventID := range input.EventIDs {
		if err := s.events.AddTimelineRef(ctx, eventID, timeline.ID().String()); err != nil {
			s.logger.Warn("Failed to associate event at timeline creation",
				zap.String("eventID", eventID),
				zap.String("timelineID", timeline.ID().String()),
				zap.Error(err),
			)
		}
	}

	s.publishCommitted(ctx, timeline)

	return timeline, nil
}

// Get returns one timeline by id, archived or not
func (s *TimelineService) Get(ctx context.Context, id string) (*entities.Timeline, error) {
	return s.timelines.FindByID(ctx, id)
}

// List returns timelines, excluding archived ones unless asked
func (s *TimelineService) List(ctx context.Context, includeArchived bool) ([]*entities.Timeline, error) {
	return s.timelines.FindAll(ctx, includeArchived)
}

// Update applies configuration changes to a timeline
func (s *TimelineService) Update(ctx context.Context, id string, input UpdateTimelineInput) (*entities.Timeline, error) {
	timeline, err := s.timelines.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := timeline.Name()
	if input.Name != nil {
		name = *input.Name
	}
	description := timeline.Description()
	if input.Description != nil {
		description = *input.Description
	}
	color := timeline.Color()
	if input.Color != nil {
		color = *input.Color
	}
	if err := timeline.UpdateDetails(name, description, color); err != nil {
		return nil, err
	}

	if input.SortField != nil || input.SortOrder != nil {
		pref := timeline.SortPreference()
		field := string(pref.Field)
		if input.SortField != nil {
			field = *input.SortField
		}
		order := string(pref.Order)
		if input.SortOrder != nil {
			order = *input.SortOrder
		}
		next, err := valueobjects.NewSortPreference(field, order)
		if err != nil {
			return nil, err
		}
		if err := timeline.SetSortPreference(next); err != nil {
			return nil, err
		}
	}

	if input.Publish != nil {
		timeline.SetPublished(*input.Publish)
	}

	if err := s.timelines.Save(ctx, timeline); err != nil {
		return nil, err
	}

	s.publishCommitted(ctx, timeline)

	return timeline, nil
}

// Archive soft-deletes a timeline. Member events keep their reference to
// the archived id; associations are intentionally not cascade-cleaned.
func (s *TimelineService) Archive(ctx context.Context, id string) error {
	timeline, err := s.timelines.FindByID(ctx, id)
	if err != nil {
		return err
	}

	timeline.Archive()

	if err := s.timelines.Save(ctx, timeline); err != nil {
		return err
	}

	s.publishCommitted(ctx, timeline)

	return nil
}

// ReorderGroups replaces a timeline's manual bucket order wholesale. The
// client treats this as fire-and-forget; a failure here is surfaced and
// logged but any divergence self-heals on the next reconciled render.
func (s *TimelineService) ReorderGroups(ctx context.Context, id string, order []string) error {
	timeline, err := s.timelines.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := timeline.ReplaceGroupOrder(order); err != nil {
		return err
	}

	if err := s.timelines.Save(ctx, timeline); err != nil {
		s.logger.Error("Failed to persist group order",
			zap.String("timelineID", id),
			zap.Error(err),
		)
		return err
	}

	s.publishCommitted(ctx, timeline)

	return nil
}

func (s *TimelineService) publishCommitted(ctx context.Context, timeline *entities.Timeline) {
	if err := s.publisher.PublishBatch(ctx, timeline.GetUncommittedEvents()); err != nil {
		s.logger.Warn("Failed to publish domain events", zap.Error(err))
	}
	timeline.MarkEventsAsCommitted()
}
