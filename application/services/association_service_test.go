package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "journaline/pkg/errors"
)

func TestAddEventToTimeline_Idempotent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	timelineID := env.mustCreateTimeline(t, "Travel")
	eventID := env.mustCreateEvent(t, "Trip", day(t, "2024-03-10"))

	require.NoError(t, env.assocSvc.AddEventToTimeline(ctx, eventID, timelineID))
	require.NoError(t, env.assocSvc.AddEventToTimeline(ctx, eventID, timelineID))

	event, err := env.eventSvc.Get(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, []string{timelineID}, event.TimelineIDs())
}

func TestAddEventToTimeline_UnknownTimeline(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	eventID := env.mustCreateEvent(t, "Trip", day(t, "2024-03-10"))

	err := env.assocSvc.AddEventToTimeline(ctx, eventID, "2fd4e1c6-7a2d-4b0c-9f1e-8a6d5c4b3a2f")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestAddEventToTimeline_BroadcastsChange(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	timelineID := env.mustCreateTimeline(t, "Travel")
	eventID := env.mustCreateEvent(t, "Trip", day(t, "2024-03-10"))

	before := len(env.publisher.byType("events.changed"))
	require.NoError(t, env.assocSvc.AddEventToTimeline(ctx, eventID, timelineID))
	after := len(env.publisher.byType("events.changed"))

	assert.Equal(t, before+1, after)
}

func TestRemoveEventFromTimeline_RoundTrip(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	timelineID := env.mustCreateTimeline(t, "Travel")
	eventID := env.mustCreateEvent(t, "Trip", day(t, "2024-03-10"), timelineID)

	require.NoError(t, env.assocSvc.RemoveEventFromTimeline(ctx, eventID, timelineID))

	// The event record survives with an empty membership set
	event, err := env.eventSvc.Get(ctx, eventID)
	require.NoError(t, err)
	assert.Empty(t, event.TimelineIDs())

	// Removing again is still a success
	require.NoError(t, env.assocSvc.RemoveEventFromTimeline(ctx, eventID, timelineID))
}

func TestRemoveEventFromTimeline_UnknownEvent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	timelineID := env.mustCreateTimeline(t, "Travel")

	err := env.assocSvc.RemoveEventFromTimeline(ctx, "2fd4e1c6-7a2d-4b0c-9f1e-8a6d5c4b3a2f", timelineID)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestSetEventTimelines_ReplacesMembership(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	first := env.mustCreateTimeline(t, "Travel")
	second := env.mustCreateTimeline(t, "Work")
	eventID := env.mustCreateEvent(t, "Trip", day(t, "2024-03-10"), first)

	event, err := env.assocSvc.SetEventTimelines(ctx, eventID, []string{second})
	require.NoError(t, err)

	assert.Equal(t, []string{second}, event.TimelineIDs())

	stored, err := env.eventSvc.Get(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, []string{second}, stored.TimelineIDs())
}

func TestSetEventTimelines_RejectsUnknownTimeline(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	eventID := env.mustCreateEvent(t, "Trip", day(t, "2024-03-10"))

	_, err := env.assocSvc.SetEventTimelines(ctx, eventID, []string{"2fd4e1c6-7a2d-4b0c-9f1e-8a6d5c4b3a2f"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestAssociations_EventInMultipleTimelines(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	travel := env.mustCreateTimeline(t, "Travel")
	work := env.mustCreateTimeline(t, "Work")
	eventID := env.mustCreateEvent(t, "Conference abroad", time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC))

	require.NoError(t, env.assocSvc.AddEventToTimeline(ctx, eventID, travel))
	require.NoError(t, env.assocSvc.AddEventToTimeline(ctx, eventID, work))

	event, err := env.eventSvc.Get(ctx, eventID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{travel, work}, event.TimelineIDs())

	// Removing from one timeline leaves the other intact
	require.NoError(t, env.assocSvc.RemoveEventFromTimeline(ctx, eventID, travel))
	event, err = env.eventSvc.Get(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, []string{work}, event.TimelineIDs())
}
