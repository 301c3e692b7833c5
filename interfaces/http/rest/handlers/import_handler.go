package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"journaline/application/services"
	"journaline/pkg/common"
)

// ImportHandler handles the one-shot legacy cache migration endpoint
type ImportHandler struct {
	imports *services.ImportService
	logger  *zap.Logger
}

// NewImportHandler creates a new import handler
func NewImportHandler(imports *services.ImportService, logger *zap.Logger) *ImportHandler {
	return &ImportHandler{
		imports: imports,
		logger:  logger,
	}
}

// ImportLegacy handles POST /import/legacy. The client submits its entire
// cached event list in one call; the report tells it whether the cache can
// be cleared (zero failures) or must be retained and retried.
func (h *ImportHandler) ImportLegacy(w http.ResponseWriter, r *http.Request) {
	var entries []services.LegacyCacheEntry
	if err := json.NewDecoder(r.Body).Decode(&entries); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body: "+err.Error())
		return
	}

	report := h.imports.ImportLegacy(r.Context(), entries)

	status := http.StatusOK
	if report.Failed > 0 {
		status = http.StatusMultiStatus
	}
	common.RespondJSON(w, status, report)
}
