// Package ports declares the interfaces the application services depend on.
// Infrastructure supplies the implementations; services never see store
// handle types, only entities and plain string identifiers.
package ports

import (
	"context"
	"time"

	"journaline/domain/core/entities"
	"journaline/domain/events"
)

// EventFilter narrows event listings. Zero values mean "no constraint".
type EventFilter struct {
	TimelineID string
	From       time.Time
	To         time.Time
}

// EventRepository persists journal events. FindByID returns a NOT_FOUND
// AppError for unknown ids rather than a nil entity.
type EventRepository interface {
	Save(ctx context.Context, event *entities.Event) error
	FindByID(ctx context.Context, id string) (*entities.Event, error)
	FindAll(ctx context.Context, filter EventFilter) ([]*entities.Event, error)
	Delete(ctx context.Context, id string) error

	// AddTimelineRef and RemoveTimelineRef mutate an event's membership set
	// with store-side atomic set semantics: add-if-absent and
	// remove-if-present, no client-computed array replacement. This closes
	// the read-modify-write window when two timeline views mutate the same
	// event concurrently.
	AddTimelineRef(ctx context.Context, eventID, timelineID string) error
	RemoveTimelineRef(ctx context.Context, eventID, timelineID string) error

	// PropagateTimelineRef adds toTimelineID to every event whose membership
	// set contains fromTimelineID, per document atomically, and reports how
	// many events were touched. There is no cross-document transaction;
	// partial application is possible and surfaced through the count/error.
	PropagateTimelineRef(ctx context.Context, fromTimelineID, toTimelineID string) (int, error)
}

// TimelineRepository persists timelines. Timelines are never physically
// deleted; archiving is a Save of the soft-deleted entity.
type TimelineRepository interface {
	Save(ctx context.Context, timeline *entities.Timeline) error
	FindByID(ctx context.Context, id string) (*entities.Timeline, error)
	FindAll(ctx context.Context, includeArchived bool) ([]*entities.Timeline, error)
}

// EventPublisher fans domain events out to subscribers. In-process dispatch
// is the tab-local "data changed, re-fetch" mechanism; implementations may
// additionally forward events to an external bus.
type EventPublisher interface {
	Publish(ctx context.Context, event events.DomainEvent) error
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}
