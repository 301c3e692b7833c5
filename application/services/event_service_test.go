package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journaline/application/ports"
	"journaline/application/services"
	pkgerrors "journaline/pkg/errors"
)

func TestCreateEvent_WithPreselectedTimelines(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	travel := env.mustCreateTimeline(t, "Travel")
	work := env.mustCreateTimeline(t, "Work")

	event, err := env.eventSvc.Create(ctx, services.CreateEventInput{
		Title:       "Conference",
		Description: "Offsite in Lisbon",
		Date:        day(t, "2024-06-10"),
		TimelineIDs: []string{travel, work},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{travel, work}, event.TimelineIDs())
}

func TestCreateEvent_RejectsUnknownTimeline(t *testing.T) {
	env := newTestEnv()

	_, err := env.eventSvc.Create(context.Background(), services.CreateEventInput{
		Title:       "Conference",
		Description: "Offsite",
		Date:        day(t, "2024-06-10"),
		TimelineIDs: []string{"2fd4e1c6-7a2d-4b0c-9f1e-8a6d5c4b3a2f"},
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestCreateEvent_RequiresAllFields(t *testing.T) {
	env := newTestEnv()

	_, err := env.eventSvc.Create(context.Background(), services.CreateEventInput{
		Title: "No description",
		Date:  day(t, "2024-06-10"),
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestCreateEvent_Broadcasts(t *testing.T) {
	env := newTestEnv()

	env.mustCreateEvent(t, "Entry", day(t, "2024-06-10"))

	assert.Len(t, env.publisher.byType("event.created"), 1)
	assert.Len(t, env.publisher.byType("events.changed"), 1)
}

func TestUpdateEvent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	eventID := env.mustCreateEvent(t, "Draft", day(t, "2024-06-10"))

	updated, err := env.eventSvc.Update(ctx, eventID, services.UpdateEventInput{
		Title:       "Final",
		Description: "rewritten",
		Date:        day(t, "2024-06-11"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Final", updated.Title())
	assert.Equal(t, day(t, "2024-06-11"), updated.Date())
}

func TestListEvents_FilterByTimeline(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	travel := env.mustCreateTimeline(t, "Travel")
	inTimeline := env.mustCreateEvent(t, "Trip", day(t, "2024-06-10"), travel)
	env.mustCreateEvent(t, "Unrelated", day(t, "2024-06-11"))

	events, err := env.eventSvc.List(ctx, ports.EventFilter{TimelineID: travel})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, inTimeline, events[0].ID().String())
}

func TestPurgeEvent_RemovesRecordEverywhere(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	travel := env.mustCreateTimeline(t, "Travel")
	eventID := env.mustCreateEvent(t, "Trip", day(t, "2024-06-10"), travel)

	require.NoError(t, env.eventSvc.Purge(ctx, eventID))

	_, err := env.eventSvc.Get(ctx, eventID)
	assert.True(t, pkgerrors.IsNotFound(err))

	// Gone from timeline listings too
	events, err := env.eventSvc.List(ctx, ports.EventFilter{TimelineID: travel})
	require.NoError(t, err)
	assert.Empty(t, events)

	assert.Len(t, env.publisher.byType("event.purged"), 1)
}

func TestPurgeEvent_Missing(t *testing.T) {
	env := newTestEnv()

	err := env.eventSvc.Purge(context.Background(), "2fd4e1c6-7a2d-4b0c-9f1e-8a6d5c4b3a2f")
	assert.True(t, pkgerrors.IsNotFound(err))
}
