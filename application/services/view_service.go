package services

import (
	"context"

	"go.uber.org/zap"

	"journaline/application/ports"
	"journaline/domain/core/entities"
	"journaline/domain/core/valueobjects"
	domainservices "journaline/domain/services"
)

// Group is one renderable time bucket: its canonical key, human label, and
// the member events ordered by the timeline's sort preference. Groups are
// derived per render and never persisted.
type Group struct {
	Key    string
	Label  string
	Events []*entities.Event
}

// TimelineView is the fully reconciled, renderable state of one timeline
// under a grouping mode.
type TimelineView struct {
	Timeline *entities.Timeline
	Mode     valueobjects.GroupingMode
	Groups   []Group
}

// ViewService assembles ordered group views: bucket the timeline's events
// under the active grouping mode, reconcile the persisted manual order
// against the live buckets, and sort events within each bucket.
type ViewService struct {
	events    ports.EventRepository
	timelines ports.TimelineRepository
	logger    *zap.Logger
}

// NewViewService creates a view service
func NewViewService(
	events ports.EventRepository,
	timelines ports.TimelineRepository,
	logger *zap.Logger,
) *ViewService {
	return &ViewService{
		events:    events,
		timelines: timelines,
		logger:    logger,
	}
}

// OrderedGroups builds the renderable group list for a timeline. A timeline
// with no events yields an empty list regardless of its stored order. The
// stored order is not rewritten here: a stale order self-heals in the
// returned view and persists only when the user next reorders manually.
func (s *ViewService) OrderedGroups(ctx context.Context, timelineID string, mode valueobjects.GroupingMode) (*TimelineView, error) {
	timeline, err := s.timelines.FindByID(ctx, timelineID)
	if err != nil {
		return nil, err
	}

	evts, err := s.events.FindAll(ctx, ports.EventFilter{TimelineID: timelineID})
	if err != nil {
		return nil, err
	}

	buckets := make(map[string][]*entities.Event)
	live := make(map[string]bool)
	for _, e := range evts {
		key := domainservices.GroupKey(e.Date(), mode)
		buckets[key] = append(buckets[key], e)
		live[key] = true
	}

	order := domainservices.ReconcileGroupOrder(timeline.GroupOrder(), live)

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		members, ok := buckets[key]
		if !ok {
			continue
		}
		domainservices.SortEvents(members, timeline.SortPreference())
		groups = append(groups, Group{
			Key:    key,
			Label:  domainservices.GroupLabel(key, mode, order),
			Events: members,
		})
	}

	return &TimelineView{
		Timeline: timeline,
		Mode:     mode,
		Groups:   groups,
	}, nil
}
