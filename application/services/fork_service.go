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

// ForkResult reports the outcome of cloning a timeline. PropagatedEvents is
// how many events inherited the fork's id; callers compare it against their
// own expectations to detect partial propagation.
type ForkResult struct {
	Timeline         *entities.Timeline
	PropagatedEvents int
}

// ForkService clones a timeline's configuration into a new timeline and
// re-points all of the source's event associations at the copy. The source
// timeline and its events are never mutated.
type ForkService struct {
	events    ports.EventRepository
	timelines ports.TimelineRepository
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewForkService creates a fork service
func NewForkService(
	events ports.EventRepository,
	timelines ports.TimelineRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *ForkService {
	return &ForkService{
		events:    events,
		timelines: timelines,
		publisher: publisher,
		logger:    logger,
	}
}

// Fork clones the timeline with the given id. Archived sources may be
// forked; the copy is always live. A missing source fails cleanly before
// any write. The new-timeline write and the bulk association propagation
// are two separate non-transactional writes: if propagation partially
// fails the copy still exists, and the error carries the partial count.
func (s *ForkService) Fork(ctx context.Context, timelineID string) (*ForkResult, error) {
	source, err := s.timelines.FindByID(ctx, timelineID)
	if err != nil {
		return nil, err
	}

	fork := source.Fork(time.Now())

	if err := s.timelines.Save(ctx, fork); err != nil {
		return nil, err
	}

	// Inherit every event referencing the source, add-if-absent per event.
	count, err := s.events.PropagateTimelineRef(ctx, source.ID().String(), fork.ID().String())
	if err != nil {
		s.logger.Error("Fork association propagation incomplete",
			zap.String("sourceID", source.ID().String()),
			zap.String("forkID", fork.ID().String()),
			zap.Int("propagated", count),
			zap.Error(err),
		)
		return &ForkResult{Timeline: fork, PropagatedEvents: count},
			pkgerrors.Wrap(err, "timeline copied but event membership is incomplete")
	}

	s.publishCommitted(ctx, fork)
	s.broadcast(ctx)

	s.logger.Info("Timeline forked",
		zap.String("sourceID", source.ID().String()),
		zap.String("forkID", fork.ID().String()),
		zap.Int("propagated", count),
	)

	return &ForkResult{Timeline: fork, PropagatedEvents: count}, nil
}

func (s *ForkService) publishCommitted(ctx context.Context, timeline *entities.Timeline) {
	if err := s.publisher.PublishBatch(ctx, timeline.GetUncommittedEvents()); err != nil {
		s.logger.Warn("Failed to publish domain events", zap.Error(err))
	}
	timeline.MarkEventsAsCommitted()
}

func (s *ForkService) broadcast(ctx context.Context) {
	if err := s.publisher.Publish(ctx, events.NewEventsChanged("", time.Now())); err != nil {
		s.logger.Warn("Failed to broadcast events changed", zap.Error(err))
	}
}
