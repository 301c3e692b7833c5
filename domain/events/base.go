package events

import (
	"time"

	"journaline/domain/core/valueobjects"
)

// SourceJournaline identifies this service on the outbound event bus
const SourceJournaline = "journaline.api"

// DomainEvent is the base interface for all domain events.
// Events represent something that has happened in the past.
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }

// Event events

// EventCreated is raised when a new journal event is recorded
type EventCreated struct {
	BaseEvent
	EventID valueobjects.EventID `json:"event_id"`
	Title   string               `json:"title"`
	Date    time.Time            `json:"date"`
}

// NewEventCreated creates an EventCreated event
func NewEventCreated(eventID valueobjects.EventID, title string, date, timestamp time.Time) EventCreated {
	return EventCreated{
		BaseEvent: BaseEvent{
			AggregateID: eventID.String(),
			EventType:   "event.created",
			Timestamp:   timestamp,
		},
		EventID: eventID,
		Title:   title,
		Date:    date,
	}
}

// EventUpdated is raised when a journal event's details change
type EventUpdated struct {
	BaseEvent
	EventID valueobjects.EventID `json:"event_id"`
}

// NewEventUpdated creates an EventUpdated event
func NewEventUpdated(eventID valueobjects.EventID, timestamp time.Time) EventUpdated {
	return EventUpdated{
		BaseEvent: BaseEvent{
			AggregateID: eventID.String(),
			EventType:   "event.updated",
			Timestamp:   timestamp,
		},
		EventID: eventID,
	}
}

// EventPurged is raised when a journal event is hard-deleted
type EventPurged struct {
	BaseEvent
	EventID valueobjects.EventID `json:"event_id"`
}

// NewEventPurged creates an EventPurged event
func NewEventPurged(eventID valueobjects.EventID, timestamp time.Time) EventPurged {
	return EventPurged{
		BaseEvent: BaseEvent{
			AggregateID: eventID.String(),
			EventType:   "event.purged",
			Timestamp:   timestamp,
		},
		EventID: eventID,
	}
}

// Association events

// EventsChanged is the broadcast emitted after every successful mutation of
// event data or associations. Subscribed views re-fetch on receipt; this is
// the sole cross-component consistency mechanism.
type EventsChanged struct {
	BaseEvent
	EventID string `json:"event_id,omitempty"`
}

// NewEventsChanged creates an EventsChanged broadcast
func NewEventsChanged(eventID string, timestamp time.Time) EventsChanged {
	return EventsChanged{
		BaseEvent: BaseEvent{
			AggregateID: eventID,
			EventType:   "events.changed",
			Timestamp:   timestamp,
		},
		EventID: eventID,
	}
}

// AssociationAdded is raised when an event joins a timeline
type AssociationAdded struct {
	BaseEvent
	EventID    valueobjects.EventID    `json:"event_id"`
	TimelineID valueobjects.TimelineID `json:"timeline_id"`
}

// NewAssociationAdded creates an AssociationAdded event
func NewAssociationAdded(eventID valueobjects.EventID, timelineID valueobjects.TimelineID, timestamp time.Time) AssociationAdded {
	return AssociationAdded{
		BaseEvent: BaseEvent{
			AggregateID: eventID.String(),
			EventType:   "association.added",
			Timestamp:   timestamp,
		},
		EventID:    eventID,
		TimelineID: timelineID,
	}
}

// AssociationRemoved is raised when an event leaves a timeline. The event
// record itself survives; only the membership is severed.
type AssociationRemoved struct {
	BaseEvent
	EventID    valueobjects.EventID    `json:"event_id"`
	TimelineID valueobjects.TimelineID `json:"timeline_id"`
}

// NewAssociationRemoved creates an AssociationRemoved event
func NewAssociationRemoved(eventID valueobjects.EventID, timelineID valueobjects.TimelineID, timestamp time.Time) AssociationRemoved {
	return AssociationRemoved{
		BaseEvent: BaseEvent{
			AggregateID: eventID.String(),
			EventType:   "association.removed",
			Timestamp:   timestamp,
		},
		EventID:    eventID,
		TimelineID: timelineID,
	}
}

// Timeline events

// TimelineCreated is raised when a timeline is created
type TimelineCreated struct {
	BaseEvent
	TimelineID valueobjects.TimelineID `json:"timeline_id"`
	Name       string                  `json:"name"`
}

// NewTimelineCreated creates a TimelineCreated event
func NewTimelineCreated(timelineID valueobjects.TimelineID, name string, timestamp time.Time) TimelineCreated {
	return TimelineCreated{
		BaseEvent: BaseEvent{
			AggregateID: timelineID.String(),
			EventType:   "timeline.created",
			Timestamp:   timestamp,
		},
		TimelineID: timelineID,
		Name:       name,
	}
}

// TimelineUpdated is raised when a timeline's configuration changes
type TimelineUpdated struct {
	BaseEvent
	TimelineID valueobjects.TimelineID `json:"timeline_id"`
}

// NewTimelineUpdated creates a TimelineUpdated event
func NewTimelineUpdated(timelineID valueobjects.TimelineID, timestamp time.Time) TimelineUpdated {
	return TimelineUpdated{
		BaseEvent: BaseEvent{
			AggregateID: timelineID.String(),
			EventType:   "timeline.updated",
			Timestamp:   timestamp,
		},
		TimelineID: timelineID,
	}
}

// TimelineArchived is raised when a timeline is soft-deleted
type TimelineArchived struct {
	BaseEvent
	TimelineID valueobjects.TimelineID `json:"timeline_id"`
}

// NewTimelineArchived creates a TimelineArchived event
func NewTimelineArchived(timelineID valueobjects.TimelineID, timestamp time.Time) TimelineArchived {
	return TimelineArchived{
		BaseEvent: BaseEvent{
			AggregateID: timelineID.String(),
			EventType:   "timeline.archived",
			Timestamp:   timestamp,
		},
		TimelineID: timelineID,
	}
}

// GroupOrderChanged is raised when a timeline's manual bucket order is replaced
type GroupOrderChanged struct {
	BaseEvent
	TimelineID valueobjects.TimelineID `json:"timeline_id"`
	GroupOrder []string                `json:"group_order"`
}

// NewGroupOrderChanged creates a GroupOrderChanged event
func NewGroupOrderChanged(timelineID valueobjects.TimelineID, order []string, timestamp time.Time) GroupOrderChanged {
	return GroupOrderChanged{
		BaseEvent: BaseEvent{
			AggregateID: timelineID.String(),
			EventType:   "timeline.group_order_changed",
			Timestamp:   timestamp,
		},
		TimelineID: timelineID,
		GroupOrder: order,
	}
}

// TimelineForked is raised when a timeline is cloned
type TimelineForked struct {
	BaseEvent
	SourceID valueobjects.TimelineID `json:"source_id"`
	ForkID   valueobjects.TimelineID `json:"fork_id"`
}

// NewTimelineForked creates a TimelineForked event
func NewTimelineForked(sourceID, forkID valueobjects.TimelineID, timestamp time.Time) TimelineForked {
	return TimelineForked{
		BaseEvent: BaseEvent{
			AggregateID: forkID.String(),
			EventType:   "timeline.forked",
			Timestamp:   timestamp,
		},
		SourceID: sourceID,
		ForkID:   forkID,
	}
}
