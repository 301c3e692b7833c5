package memory

import (
	"context"
	"sort"
	"sync"

	"journaline/application/ports"
	"journaline/domain/core/entities"
	pkgerrors "journaline/pkg/errors"
)

// TimelineRepository is an in-memory ports.TimelineRepository
type TimelineRepository struct {
	mu        sync.RWMutex
	timelines map[string]*entities.Timeline
}

// NewTimelineRepository creates an empty in-memory timeline repository
func NewTimelineRepository() *TimelineRepository {
	return &TimelineRepository{
		timelines: make(map[string]*entities.Timeline),
	}
}

var _ ports.TimelineRepository = (*TimelineRepository)(nil)

// Save stores a snapshot of the timeline
func (r *TimelineRepository) Save(ctx context.Context, timeline *entities.Timeline) error {
	snapshot, err := copyTimeline(timeline)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.timelines[timeline.ID().String()] = snapshot
	return nil
}

// FindByID returns a copy of the stored timeline, archived or not
func (r *TimelineRepository) FindByID(ctx context.Context, id string) (*entities.Timeline, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.timelines[id]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("timeline")
	}
	return copyTimeline(stored)
}

// FindAll returns copies of all timelines, skipping archived ones unless
// asked. Ordered by creation time, newest first.
func (r *TimelineRepository) FindAll(ctx context.Context, includeArchived bool) ([]*entities.Timeline, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*entities.Timeline, 0, len(r.timelines))
	for _, stored := range r.timelines {
		if stored.IsArchived() && !includeArchived {
			continue
		}
		c, err := copyTimeline(stored)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})

	return out, nil
}

// copyTimeline rebuilds an independent entity from another's state
func copyTimeline(t *entities.Timeline) (*entities.Timeline, error) {
	return entities.ReconstructTimeline(
		t.ID(),
		t.Name(),
		t.Description(),
		t.Color(),
		t.GroupOrder(),
		t.SortPreference(),
		t.IsPublished(),
		t.IsArchived(),
		t.Origin(),
		t.CreatedAt(),
		t.UpdatedAt(),
	)
}
