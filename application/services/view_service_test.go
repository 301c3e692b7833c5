package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journaline/domain/core/valueobjects"
)

func TestOrderedGroups_MonthlyNewestFirst(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	timelineID := env.mustCreateTimeline(t, "Journal")
	e1 := env.mustCreateEvent(t, "early january", day(t, "2024-01-05"), timelineID)
	e2 := env.mustCreateEvent(t, "late january", day(t, "2024-01-20"), timelineID)
	e3 := env.mustCreateEvent(t, "february", day(t, "2024-02-02"), timelineID)

	view, err := env.viewSvc.OrderedGroups(ctx, timelineID, valueobjects.GroupMonthly)
	require.NoError(t, err)

	require.Len(t, view.Groups, 2)
	assert.Equal(t, "2024-02-01", view.Groups[0].Key)
	assert.Equal(t, "2024-01-01", view.Groups[1].Key)

	// Default sort preference is date descending within each group
	require.Len(t, view.Groups[0].Events, 1)
	assert.Equal(t, e3, view.Groups[0].Events[0].ID().String())
	require.Len(t, view.Groups[1].Events, 2)
	assert.Equal(t, e2, view.Groups[1].Events[0].ID().String())
	assert.Equal(t, e1, view.Groups[1].Events[1].ID().String())
}

func TestOrderedGroups_RespectsManualOrder(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	timelineID := env.mustCreateTimeline(t, "Journal")
	env.mustCreateEvent(t, "january", day(t, "2024-01-05"), timelineID)
	env.mustCreateEvent(t, "february", day(t, "2024-02-02"), timelineID)

	// Pin the older month on top
	require.NoError(t, env.timelineSvc.ReorderGroups(ctx, timelineID, []string{"2024-01-01", "2024-02-01"}))

	view, err := env.viewSvc.OrderedGroups(ctx, timelineID, valueobjects.GroupMonthly)
	require.NoError(t, err)

	require.Len(t, view.Groups, 2)
	assert.Equal(t, "2024-01-01", view.Groups[0].Key)
	assert.Equal(t, "2024-02-01", view.Groups[1].Key)
}

func TestOrderedGroups_StaleOrderSelfHeals(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	timelineID := env.mustCreateTimeline(t, "Journal")
	eventID := env.mustCreateEvent(t, "january", day(t, "2024-01-05"), timelineID)
	env.mustCreateEvent(t, "february", day(t, "2024-02-02"), timelineID)

	require.NoError(t, env.timelineSvc.ReorderGroups(ctx, timelineID, []string{"2024-01-01", "2024-02-01"}))

	// Dropping the january event leaves a dangling key in the stored order
	require.NoError(t, env.assocSvc.RemoveEventFromTimeline(ctx, eventID, timelineID))

	view, err := env.viewSvc.OrderedGroups(ctx, timelineID, valueobjects.GroupMonthly)
	require.NoError(t, err)

	require.Len(t, view.Groups, 1)
	assert.Equal(t, "2024-02-01", view.Groups[0].Key)

	// The stored order is untouched; self-healing happens in the view only
	timeline, err := env.timelineSvc.Get(ctx, timelineID)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-01-01", "2024-02-01"}, timeline.GroupOrder())
}

func TestOrderedGroups_ModeSwitchKeepsStoredOrder(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	timelineID := env.mustCreateTimeline(t, "Journal")
	env.mustCreateEvent(t, "one", day(t, "2024-03-04"), timelineID)
	env.mustCreateEvent(t, "two", day(t, "2024-03-12"), timelineID)

	require.NoError(t, env.timelineSvc.ReorderGroups(ctx, timelineID, []string{"2024-03-01"}))

	// Weekly keys share nothing with the stored monthly keys, so the view
	// falls back to newest first without touching the stored order.
	view, err := env.viewSvc.OrderedGroups(ctx, timelineID, valueobjects.GroupWeekly)
	require.NoError(t, err)

	require.Len(t, view.Groups, 2)
	assert.Equal(t, "2024-03-11", view.Groups[0].Key)
	assert.Equal(t, "2024-03-04", view.Groups[1].Key)

	timeline, err := env.timelineSvc.Get(ctx, timelineID)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-01"}, timeline.GroupOrder())
}

func TestOrderedGroups_WeeklyLabels(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	timelineID := env.mustCreateTimeline(t, "Journal")
	env.mustCreateEvent(t, "older", day(t, "2024-03-05"), timelineID)
	env.mustCreateEvent(t, "newer", day(t, "2024-03-12"), timelineID)

	view, err := env.viewSvc.OrderedGroups(ctx, timelineID, valueobjects.GroupWeekly)
	require.NoError(t, err)

	require.Len(t, view.Groups, 2)
	assert.Equal(t, "Week 1 | 11", view.Groups[0].Label)
	assert.Equal(t, "Week 2 | 10", view.Groups[1].Label)
}

func TestOrderedGroups_EmptyTimeline(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	timelineID := env.mustCreateTimeline(t, "Journal")

	view, err := env.viewSvc.OrderedGroups(ctx, timelineID, valueobjects.GroupMonthly)
	require.NoError(t, err)
	assert.Empty(t, view.Groups)
}
