package entities

import (
	"time"

	"journaline/domain/core/valueobjects"
	"journaline/domain/events"
	pkgerrors "journaline/pkg/errors"
)

// ForkPrefix is prepended to a timeline's name when it is cloned
const ForkPrefix = "Copy of "

// OriginRecord is one entry in a timeline's fork lineage, most recent first.
type OriginRecord struct {
	TimelineID string    `json:"timelineId"`
	Date       time.Time `json:"date"`
}

// Timeline is a named, user-curated, reorderable view over a subset of
// events. It exclusively owns its group order and sort preference; the
// events themselves are shared. Archiving is the soft-delete mechanism;
// timelines are never physically removed.
type Timeline struct {
	id          valueobjects.TimelineID
	name        string
	description string
	color       string
	groupOrder  []string
	sortPref    valueobjects.SortPreference
	publish     bool
	isArchived  bool
	origin      []OriginRecord
	createdAt   time.Time
	updatedAt   time.Time

	events []events.DomainEvent
}

// NewTimeline creates an empty timeline. Events are associated afterwards.
func NewTimeline(name, description string) (*Timeline, error) {
	if name == "" {
		return nil, pkgerrors.NewValidationError("name cannot be empty")
	}

	now := time.Now()
	t := &Timeline{
		id:          valueobjects.NewTimelineID(),
		name:        name,
		description: description,
		groupOrder:  []string{},
		sortPref:    valueobjects.DefaultSortPreference(),
		origin:      []OriginRecord{},
		createdAt:   now,
		updatedAt:   now,
		events:      []events.DomainEvent{},
	}

	t.addEvent(events.NewTimelineCreated(t.id, name, now))

	return t, nil
}

// ReconstructTimeline rebuilds a timeline from repository data
func ReconstructTimeline(
	id valueobjects.TimelineID,
	name, description, color string,
	groupOrder []string,
	sortPref valueobjects.SortPreference,
	publish, isArchived bool,
	origin []OriginRecord,
	createdAt, updatedAt time.Time,
) (*Timeline, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("timeline ID cannot be empty")
	}
	if name == "" {
		return nil, pkgerrors.NewValidationError("name cannot be empty")
	}
	if sortPref.IsZero() {
		sortPref = valueobjects.DefaultSortPreference()
	}

	order := make([]string, len(groupOrder))
	copy(order, groupOrder)
	lineage := make([]OriginRecord, len(origin))
	copy(lineage, origin)

	return &Timeline{
		id:          id,
		name:        name,
		description: description,
		color:       color,
		groupOrder:  order,
		sortPref:    sortPref,
		publish:     publish,
		isArchived:  isArchived,
		origin:      lineage,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
		events:      []events.DomainEvent{},
	}, nil
}

// ID returns the timeline's unique identifier
func (t *Timeline) ID() valueobjects.TimelineID {
	return t.id
}

// Name returns the timeline's name
func (t *Timeline) Name() string {
	return t.name
}

// Description returns the timeline's description
func (t *Timeline) Description() string {
	return t.description
}

// Color returns the timeline's display color
func (t *Timeline) Color() string {
	return t.color
}

// GroupOrder returns the persisted manual bucket order. May be stale against
// the live bucket set; callers reconcile before rendering.
func (t *Timeline) GroupOrder() []string {
	order := make([]string, len(t.groupOrder))
	copy(order, t.groupOrder)
	return order
}

// SortPreference returns the timeline's event ordering
func (t *Timeline) SortPreference() valueobjects.SortPreference {
	return t.sortPref
}

// IsPublished returns the publish flag
func (t *Timeline) IsPublished() bool {
	return t.publish
}

// IsArchived reports whether the timeline is soft-deleted
func (t *Timeline) IsArchived() bool {
	return t.isArchived
}

// Origin returns the fork lineage, most recent fork first
func (t *Timeline) Origin() []OriginRecord {
	lineage := make([]OriginRecord, len(t.origin))
	copy(lineage, t.origin)
	return lineage
}

// CreatedAt returns when the timeline was created
func (t *Timeline) CreatedAt() time.Time {
	return t.createdAt
}

// UpdatedAt returns when the timeline was last updated
func (t *Timeline) UpdatedAt() time.Time {
	return t.updatedAt
}

// UpdateDetails changes the timeline's name, description and color
func (t *Timeline) UpdateDetails(name, description, color string) error {
	if t.isArchived {
		return pkgerrors.NewValidationError("cannot update archived timeline")
	}
	if name == "" {
		return pkgerrors.NewValidationError("name cannot be empty")
	}

	if name == t.name && description == t.description && color == t.color {
		return nil // No change needed
	}

	t.name = name
	t.description = description
	t.color = color
	t.updatedAt = time.Now()

	t.addEvent(events.NewTimelineUpdated(t.id, t.updatedAt))

	return nil
}

// SetSortPreference changes how events are ordered within groups
func (t *Timeline) SetSortPreference(pref valueobjects.SortPreference) error {
	if t.isArchived {
		return pkgerrors.NewValidationError("cannot update archived timeline")
	}
	if pref.Equals(t.sortPref) {
		return nil
	}

	t.sortPref = pref
	t.updatedAt = time.Now()

	t.addEvent(events.NewTimelineUpdated(t.id, t.updatedAt))

	return nil
}

// SetPublished toggles the publish flag
func (t *Timeline) SetPublished(publish bool) {
	if t.publish == publish {
		return
	}
	t.publish = publish
	t.updatedAt = time.Now()
	t.addEvent(events.NewTimelineUpdated(t.id, t.updatedAt))
}

// ReplaceGroupOrder replaces the manual bucket order wholesale, as produced
// by a drag-reorder of the group pills.
func (t *Timeline) ReplaceGroupOrder(order []string) error {
	if t.isArchived {
		return pkgerrors.NewValidationError("cannot reorder archived timeline")
	}

	next := make([]string, len(order))
	copy(next, order)
	t.groupOrder = next
	t.updatedAt = time.Now()

	t.addEvent(events.NewGroupOrderChanged(t.id, t.GroupOrder(), t.updatedAt))

	return nil
}

// Archive soft-deletes the timeline. Member events are untouched: their
// timelineIds keep referencing this id and views simply skip it.
func (t *Timeline) Archive() {
	if t.isArchived {
		return // Already archived
	}

	t.isArchived = true
	t.updatedAt = time.Now()

	t.addEvent(events.NewTimelineArchived(t.id, t.updatedAt))
}

// Fork clones the timeline's configuration into a brand-new timeline.
// The copy is always unarchived and unpublished regardless of the source's
// flags, and records its provenance at the head of origin. The source is
// not mutated; association propagation is the caller's responsibility.
func (t *Timeline) Fork(now time.Time) *Timeline {
	order := make([]string, len(t.groupOrder))
	copy(order, t.groupOrder)

	lineage := make([]OriginRecord, 0, len(t.origin)+1)
	lineage = append(lineage, OriginRecord{TimelineID: t.id.String(), Date: now})
	lineage = append(lineage, t.origin...)

	fork := &Timeline{
		id:          valueobjects.NewTimelineID(),
		name:        ForkPrefix + t.name,
		description: t.description,
		color:       t.color,
		groupOrder:  order,
		sortPref:    t.sortPref,
		publish:     false,
		isArchived:  false,
		origin:      lineage,
		createdAt:   now,
		updatedAt:   now,
		events:      []events.DomainEvent{},
	}

	fork.addEvent(events.NewTimelineForked(t.id, fork.id, now))

	return fork
}

// GetUncommittedEvents returns all uncommitted domain events
func (t *Timeline) GetUncommittedEvents() []events.DomainEvent {
	return t.events
}

// MarkEventsAsCommitted clears the uncommitted events
func (t *Timeline) MarkEventsAsCommitted() {
	t.events = []events.DomainEvent{}
}

func (t *Timeline) addEvent(event events.DomainEvent) {
	t.events = append(t.events, event)
}
