package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journaline/domain/core/entities"
	pkgerrors "journaline/pkg/errors"
)

func TestFork_CopiesConfigurationAndMembership(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	sourceID := env.mustCreateTimeline(t, "Travel")
	first := env.mustCreateEvent(t, "Trip", day(t, "2024-03-10"), sourceID)
	second := env.mustCreateEvent(t, "Flight", day(t, "2024-03-12"), sourceID)
	outsider := env.mustCreateEvent(t, "Unrelated", day(t, "2024-03-15"))

	result, err := env.forkSvc.Fork(ctx, sourceID)
	require.NoError(t, err)

	fork := result.Timeline
	assert.Equal(t, entities.ForkPrefix+"Travel", fork.Name())
	assert.NotEqual(t, sourceID, fork.ID().String())
	assert.False(t, fork.IsPublished())
	assert.False(t, fork.IsArchived())
	assert.Equal(t, 2, result.PropagatedEvents)

	// Lineage points back at the source
	require.Len(t, fork.Origin(), 1)
	assert.Equal(t, sourceID, fork.Origin()[0].TimelineID)

	// Both member events now reference source and fork
	for _, id := range []string{first, second} {
		event, err := env.eventSvc.Get(ctx, id)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{sourceID, fork.ID().String()}, event.TimelineIDs())
	}

	// Events outside the source are untouched
	event, err := env.eventSvc.Get(ctx, outsider)
	require.NoError(t, err)
	assert.Empty(t, event.TimelineIDs())
}

func TestFork_IndependenceAfterFork(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	sourceID := env.mustCreateTimeline(t, "Travel")
	eventID := env.mustCreateEvent(t, "Trip", day(t, "2024-03-10"), sourceID)

	result, err := env.forkSvc.Fork(ctx, sourceID)
	require.NoError(t, err)
	forkID := result.Timeline.ID().String()

	// Removing the event from the fork leaves the source membership alone
	require.NoError(t, env.assocSvc.RemoveEventFromTimeline(ctx, eventID, forkID))

	event, err := env.eventSvc.Get(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, []string{sourceID}, event.TimelineIDs())

	// Renaming the source does not touch the fork
	name := "Travel 2024"
	_, err = env.timelineSvc.Update(ctx, sourceID, updateName(name))
	require.NoError(t, err)

	fork, err := env.timelineSvc.Get(ctx, forkID)
	require.NoError(t, err)
	assert.Equal(t, entities.ForkPrefix+"Travel", fork.Name())
}

func TestFork_ArchivedSourceAllowed(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	sourceID := env.mustCreateTimeline(t, "Old journal")
	require.NoError(t, env.timelineSvc.Archive(ctx, sourceID))

	result, err := env.forkSvc.Fork(ctx, sourceID)
	require.NoError(t, err)
	assert.False(t, result.Timeline.IsArchived())
}

func TestFork_MissingSource(t *testing.T) {
	env := newTestEnv()

	result, err := env.forkSvc.Fork(context.Background(), "2fd4e1c6-7a2d-4b0c-9f1e-8a6d5c4b3a2f")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestFork_EmptySource(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	sourceID := env.mustCreateTimeline(t, "Empty")

	result, err := env.forkSvc.Fork(ctx, sourceID)
	require.NoError(t, err)
	assert.Equal(t, 0, result.PropagatedEvents)
}
