package entities

import (
	"time"

	"journaline/domain/core/valueobjects"
	"journaline/domain/events"
	pkgerrors "journaline/pkg/errors"
)

// Event is a single dated journal entry. An event is shared across
// timelines (many-to-many); no timeline owns it, and an empty membership
// set is valid; the event simply appears in no timeline view.
type Event struct {
	// Private fields ensure encapsulation
	id          valueobjects.EventID
	title       string
	description string
	date        time.Time
	timelineIDs []string
	createdAt   time.Time
	updatedAt   time.Time

	// Domain events that occurred during this aggregate's lifetime
	events []events.DomainEvent
}

// NewEvent creates a new event with business rule validation. The date is
// the event's semantic occurrence date, distinct from bookkeeping timestamps.
func NewEvent(title, description string, date time.Time) (*Event, error) {
	if title == "" {
		return nil, pkgerrors.NewValidationError("title cannot be empty")
	}
	if description == "" {
		return nil, pkgerrors.NewValidationError("description cannot be empty")
	}
	if date.IsZero() {
		return nil, pkgerrors.NewValidationError("date cannot be empty")
	}

	now := time.Now()
	e := &Event{
		id:          valueobjects.NewEventID(),
		title:       title,
		description: description,
		date:        date,
		timelineIDs: []string{},
		createdAt:   now,
		updatedAt:   now,
		events:      []events.DomainEvent{},
	}

	e.addEvent(events.NewEventCreated(e.id, title, date, now))

	return e, nil
}

// ReconstructEvent rebuilds an event from repository data with preserved
// timestamps. No domain events are raised.
func ReconstructEvent(
	id valueobjects.EventID,
	title, description string,
	date time.Time,
	timelineIDs []string,
	createdAt, updatedAt time.Time,
) (*Event, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("event ID cannot be empty")
	}
	if title == "" {
		return nil, pkgerrors.NewValidationError("title cannot be empty")
	}

	ids := make([]string, len(timelineIDs))
	copy(ids, timelineIDs)

	return &Event{
		id:          id,
		title:       title,
		description: description,
		date:        date,
		timelineIDs: ids,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		events:      []events.DomainEvent{},
	}, nil
}

// ID returns the event's unique identifier
func (e *Event) ID() valueobjects.EventID {
	return e.id
}

// Title returns the event's title
func (e *Event) Title() string {
	return e.title
}

// Description returns the event's markdown-flavored description
func (e *Event) Description() string {
	return e.description
}

// Date returns the event's occurrence date
func (e *Event) Date() time.Time {
	return e.date
}

// TimelineIDs returns the timelines this event belongs to. Insertion order
// is preserved for display but carries no semantics.
func (e *Event) TimelineIDs() []string {
	ids := make([]string, len(e.timelineIDs))
	copy(ids, e.timelineIDs)
	return ids
}

// BelongsTo reports whether the event is associated with the given timeline
func (e *Event) BelongsTo(timelineID string) bool {
	for _, id := range e.timelineIDs {
		if id == timelineID {
			return true
		}
	}
	return false
}

// CreatedAt returns when the event was recorded
func (e *Event) CreatedAt() time.Time {
	return e.createdAt
}

// UpdatedAt returns when the event was last mutated
func (e *Event) UpdatedAt() time.Time {
	return e.updatedAt
}

// UpdateDetails changes the event's title, description and date
func (e *Event) UpdateDetails(title, description string, date time.Time) error {
	if title == "" {
		return pkgerrors.NewValidationError("title cannot be empty")
	}
	if description == "" {
		return pkgerrors.NewValidationError("description cannot be empty")
	}
	if date.IsZero() {
		return pkgerrors.NewValidationError("date cannot be empty")
	}

	if title == e.title && description == e.description && date.Equal(e.date) {
		return nil // No change needed
	}

	e.title = title
	e.description = description
	e.date = date
	e.updatedAt = time.Now()

	e.addEvent(events.NewEventUpdated(e.id, e.updatedAt))

	return nil
}

// AddToTimeline associates the event with a timeline. Set semantics: adding
// an already-present id is a no-op and reports false.
func (e *Event) AddToTimeline(timelineID valueobjects.TimelineID) bool {
	if timelineID.IsZero() {
		return false
	}
	if e.BelongsTo(timelineID.String()) {
		return false
	}

	e.timelineIDs = append(e.timelineIDs, timelineID.String())
	e.updatedAt = time.Now()

	e.addEvent(events.NewAssociationAdded(e.id, timelineID, e.updatedAt))

	return true
}

// RemoveFromTimeline severs one association. The event record itself is
// never deleted by this operation.
func (e *Event) RemoveFromTimeline(timelineID valueobjects.TimelineID) bool {
	found := false
	kept := e.timelineIDs[:0]
	for _, id := range e.timelineIDs {
		if id == timelineID.String() {
			found = true
			continue
		}
		kept = append(kept, id)
	}

	if !found {
		return false
	}

	e.timelineIDs = kept
	e.updatedAt = time.Now()

	e.addEvent(events.NewAssociationRemoved(e.id, timelineID, e.updatedAt))

	return true
}

// SetTimelines replaces the full membership set, used by the multi-select
// checklist flow. Duplicates in the input collapse to one.
func (e *Event) SetTimelines(timelineIDs []string) {
	seen := make(map[string]bool, len(timelineIDs))
	next := make([]string, 0, len(timelineIDs))
	for _, id := range timelineIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		next = append(next, id)
	}

	e.timelineIDs = next
	e.updatedAt = time.Now()

	e.addEvent(events.NewEventUpdated(e.id, e.updatedAt))
}

// GetUncommittedEvents returns all uncommitted domain events
func (e *Event) GetUncommittedEvents() []events.DomainEvent {
	return e.events
}

// MarkEventsAsCommitted clears the uncommitted events
func (e *Event) MarkEventsAsCommitted() {
	e.events = []events.DomainEvent{}
}

// addEvent adds a domain event to the uncommitted list
func (e *Event) addEvent(event events.DomainEvent) {
	e.events = append(e.events, event)
}
