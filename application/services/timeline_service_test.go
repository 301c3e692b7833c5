package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journaline/application/services"
	pkgerrors "journaline/pkg/errors"
)

func TestCreateTimeline_WithBulkEventSelection(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	first := env.mustCreateEvent(t, "one", day(t, "2024-01-05"))
	second := env.mustCreateEvent(t, "two", day(t, "2024-01-06"))

	timeline, err := env.timelineSvc.Create(ctx, services.CreateTimelineInput{
		Name:     "Backfill",
		EventIDs: []string{first, second},
	})
	require.NoError(t, err)

	for _, id := range []string{first, second} {
		event, err := env.eventSvc.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, []string{timeline.ID().String()}, event.TimelineIDs())
	}
}

func TestCreateTimeline_BadEventIDDoesNotAbort(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	good := env.mustCreateEvent(t, "one", day(t, "2024-01-05"))

	timeline, err := env.timelineSvc.Create(ctx, services.CreateTimelineInput{
		Name:     "Backfill",
		EventIDs: []string{"2fd4e1c6-7a2d-4b0c-9f1e-8a6d5c4b3a2f", good},
	})
	require.NoError(t, err)

	event, err := env.eventSvc.Get(ctx, good)
	require.NoError(t, err)
	assert.Equal(t, []string{timeline.ID().String()}, event.TimelineIDs())
}

func TestUpdateTimeline_PartialFields(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	id := env.mustCreateTimeline(t, "Journal")

	color := "#1a6b3c"
	updated, err := env.timelineSvc.Update(ctx, id, services.UpdateTimelineInput{Color: &color})
	require.NoError(t, err)

	assert.Equal(t, "Journal", updated.Name())
	assert.Equal(t, color, updated.Color())
}

func TestUpdateTimeline_SortPreference(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	id := env.mustCreateTimeline(t, "Journal")

	field := "createdAt"
	order := "asc"
	updated, err := env.timelineSvc.Update(ctx, id, services.UpdateTimelineInput{
		SortField: &field,
		SortOrder: &order,
	})
	require.NoError(t, err)
	assert.Equal(t, "createdAt", string(updated.SortPreference().Field))
	assert.Equal(t, "asc", string(updated.SortPreference().Order))
}

func TestUpdateTimeline_InvalidSortField(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	id := env.mustCreateTimeline(t, "Journal")

	field := "popularity"
	_, err := env.timelineSvc.Update(ctx, id, services.UpdateTimelineInput{SortField: &field})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestArchiveTimeline_SoftDelete(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	id := env.mustCreateTimeline(t, "Old")
	eventID := env.mustCreateEvent(t, "entry", day(t, "2024-01-05"), id)

	require.NoError(t, env.timelineSvc.Archive(ctx, id))

	// Excluded from default listings, still fetchable directly
	visible, err := env.timelineSvc.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, visible)

	all, err := env.timelineSvc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].IsArchived())

	// Member events keep their reference; no cascade clean
	event, err := env.eventSvc.Get(ctx, eventID)
	require.NoError(t, err)
	assert.Equal(t, []string{id}, event.TimelineIDs())
}

func TestArchiveTimeline_Idempotent(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	id := env.mustCreateTimeline(t, "Old")
	require.NoError(t, env.timelineSvc.Archive(ctx, id))
	require.NoError(t, env.timelineSvc.Archive(ctx, id))
}

func TestReorderGroups_Persists(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	id := env.mustCreateTimeline(t, "Journal")
	order := []string{"2024-01-01", "2024-03-01", "2024-02-01"}

	require.NoError(t, env.timelineSvc.ReorderGroups(ctx, id, order))

	timeline, err := env.timelineSvc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, order, timeline.GroupOrder())
}

func TestReorderGroups_ArchivedRejected(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	id := env.mustCreateTimeline(t, "Old")
	require.NoError(t, env.timelineSvc.Archive(ctx, id))

	err := env.timelineSvc.ReorderGroups(ctx, id, []string{"2024-01-01"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
}
