package services

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// LegacyCacheEntry is one record from the browser-local cache that predates
// server persistence. Clients submit their whole cache in a single call
// during the one-shot startup migration and clear it only on full success.
type LegacyCacheEntry struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// ImportReport summarizes a legacy cache migration. Errors holds one
// message per failed record, in input order.
type ImportReport struct {
	Imported int      `json:"imported"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
}

// ImportService replays legacy cached events through the regular create
// path. Not part of steady-state operation.
type ImportService struct {
	events *EventService
	logger *zap.Logger
}

// NewImportService creates an import service
func NewImportService(events *EventService, logger *zap.Logger) *ImportService {
	return &ImportService{
		events: events,
		logger: logger,
	}
}

// ImportLegacy re-submits each cached record as a create. Individual
// failures do not abort the batch; the report tells the client whether the
// local cache is safe to clear.
func (s *ImportService) ImportLegacy(ctx context.Context, entries []LegacyCacheEntry) *ImportReport {
	report := &ImportReport{}

	for i, entry := range entries {
		_, err := s.events.Create(ctx, CreateEventInput{
			Title:       entry.Title,
			Description: entry.Description,
			Date:        entry.Date,
		})
		if err != nil {
			report.Failed++
			report.Errors = append(report.Errors, err.Error())
			s.logger.Warn("Legacy import entry failed",
				zap.Int("index", i),
				zap.Error(err),
			)
			continue
		}
		report.Imported++
	}

	s.logger.Info("Legacy cache import finished",
		zap.Int("imported", report.Imported),
		zap.Int("failed", report.Failed),
	)

	return report
}
