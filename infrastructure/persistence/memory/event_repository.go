// Package memory provides in-memory repository implementations backing
// tests and local development. Entities are copied on the way in and out so
// no caller ever aliases stored state.
package memory

import (
	"context"
	"sync"

	"journaline/application/ports"
	"journaline/domain/core/entities"
	"journaline/domain/core/valueobjects"
	pkgerrors "journaline/pkg/errors"
)

// EventRepository is an in-memory ports.EventRepository
type EventRepository struct {
	mu     sync.RWMutex
	events map[string]*entities.Event
}

// NewEventRepository creates an empty in-memory event repository
func NewEventRepository() *EventRepository {
	return &EventRepository{
		events: make(map[string]*entities.Event),
	}
}

var _ ports.EventRepository = (*EventRepository)(nil)

// Save stores a snapshot of the event
func (r *EventRepository) Save(ctx context.Context, event *entities.Event) error {
	snapshot, err := copyEvent(event)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[event.ID().String()] = snapshot
	return nil
}

// FindByID returns a copy of the stored event
func (r *EventRepository) FindByID(ctx context.Context, id string) (*entities.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.events[id]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("event")
	}
	return copyEvent(stored)
}

// FindAll returns copies of events matching the filter
func (r *EventRepository) FindAll(ctx context.Context, filter ports.EventFilter) ([]*entities.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.Event, 0, len(r.events))
	for _, stored := range r.events {
		if filter.TimelineID != "" && !stored.BelongsTo(filter.TimelineID) {
			continue
		}
		if !filter.From.IsZero() && stored.Date().Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && stored.Date().After(filter.To) {
			continue
		}
		c, err := copyEvent(stored)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Delete removes an event permanently
func (r *EventRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[id]; !ok {
		return pkgerrors.NewNotFoundError("event")
	}
	delete(r.events, id)
	return nil
}

// AddTimelineRef atomically adds a membership, no-op if already present
func (r *EventRepository) AddTimelineRef(ctx context.Context, eventID, timelineID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.events[eventID]
	if !ok {
		return pkgerrors.NewNotFoundError("event")
	}

	tid, err := valueobjects.NewTimelineIDFromString(timelineID)
	if err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}

	stored.AddToTimeline(tid)
	stored.MarkEventsAsCommitted()
	return nil
}

// RemoveTimelineRef atomically removes a membership, no-op if absent
func (r *EventRepository) RemoveTimelineRef(ctx context.Context, eventID, timelineID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.events[eventID]
	if !ok {
		return pkgerrors.NewNotFoundError("event")
	}

	tid, err := valueobjects.NewTimelineIDFromString(timelineID)
	if err != nil {
		return pkgerrors.NewValidationError(err.Error())
	}

	stored.RemoveFromTimeline(tid)
	stored.MarkEventsAsCommitted()
	return nil
}

// PropagateTimelineRef adds toTimelineID to every event referencing
// fromTimelineID and returns how many events were touched
func (r *EventRepository) PropagateTimelineRef(ctx context.Context, fromTimelineID, toTimelineID string) (int, error) {
	tid, err := valueobjects.NewTimelineIDFromString(toTimelineID)
	if err != nil {
		return 0, pkgerrors.NewValidationError(err.Error())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, stored := range r.events {
		if !stored.BelongsTo(fromTimelineID) {
			continue
		}
		stored.AddToTimeline(tid)
		stored.MarkEventsAsCommitted()
		count++
	}
	return count, nil
}

// copyEvent rebuilds an independent entity from another's state
func copyEvent(e *entities.Event) (*entities.Event, error) {
	return entities.ReconstructEvent(
		e.ID(),
		e.Title(),
		e.Description(),
		e.Date(),
		e.TimelineIDs(),
		e.CreatedAt(),
		e.UpdatedAt(),
	)
}
