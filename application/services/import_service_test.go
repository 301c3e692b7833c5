package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"journaline/application/ports"
	"journaline/application/services"
)

func TestImportLegacy_AllSucceed(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	entries := []services.LegacyCacheEntry{
		{Title: "first", Description: "cached offline", Date: day(t, "2023-11-01")},
		{Title: "second", Description: "cached offline", Date: day(t, "2023-11-02")},
	}

	report := env.importSvc.ImportLegacy(ctx, entries)

	assert.Equal(t, 2, report.Imported)
	assert.Equal(t, 0, report.Failed)
	assert.Empty(t, report.Errors)

	events, err := env.eventSvc.List(ctx, ports.EventFilter{})
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestImportLegacy_PartialFailure(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	entries := []services.LegacyCacheEntry{
		{Title: "good", Description: "cached offline", Date: day(t, "2023-11-01")},
		{Title: "", Description: "missing title", Date: day(t, "2023-11-02")},
		{Title: "also good", Description: "cached offline", Date: day(t, "2023-11-03")},
	}

	report := env.importSvc.ImportLegacy(ctx, entries)

	assert.Equal(t, 2, report.Imported)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Errors, 1)

	// Surviving entries are persisted despite the failure in the middle
	events, err := env.eventSvc.List(ctx, ports.EventFilter{})
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestImportLegacy_EmptyBatch(t *testing.T) {
	env := newTestEnv()

	report := env.importSvc.ImportLegacy(context.Background(), nil)
	assert.Equal(t, 0, report.Imported)
	assert.Equal(t, 0, report.Failed)
}
