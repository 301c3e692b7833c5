package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"journaline/application/services"
	"journaline/domain/core/valueobjects"
	"journaline/pkg/common"
	"journaline/pkg/utils"
)

// TimelineHandler handles timeline HTTP requests
type TimelineHandler struct {
	timelines *services.TimelineService
	forks     *services.ForkService
	views     *services.ViewService
	logger    *zap.Logger
}

// NewTimelineHandler creates a new timeline handler
func NewTimelineHandler(
	timelines *services.TimelineService,
	forks *services.ForkService,
	views *services.ViewService,
	logger *zap.Logger,
) *TimelineHandler {
	return &TimelineHandler{
		timelines: timelines,
		forks:     forks,
		views:     views,
		logger:    logger,
	}
}

// CreateTimelineRequest represents the request body for creating a timeline
type CreateTimelineRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description,omitempty"`
	EventIDs    []string `json:"eventIds,omitempty" validate:"omitempty,dive,uuid4"`
}

// UpdateTimelineRequest represents the request body for reconfiguring a
// timeline. Omitted fields are left untouched.
type UpdateTimelineRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
	SortField   *string `json:"sortField,omitempty" validate:"omitempty,oneof=date createdAt updatedAt"`
	SortOrder   *string `json:"sortOrder,omitempty" validate:"omitempty,oneof=asc desc"`
	Publish     *bool   `json:"publish,omitempty"`
}

// ReorderGroupsRequest carries a manually arranged group-key order
type ReorderGroupsRequest struct {
	GroupOrder []string `json:"groupOrder" validate:"required"`
}

// ForkResponse reports the outcome of a timeline fork
type ForkResponse struct {
	Timeline         TimelineResponse `json:"timeline"`
	PropagatedEvents int              `json:"propagatedEvents"`
}

// CreateTimeline handles POST /timelines
func (h *TimelineHandler) CreateTimeline(w http.ResponseWriter, r *http.Request) {
	var req CreateTimelineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	timeline, err := h.timelines.Create(r.Context(), services.CreateTimelineInput{
		Name:        req.Name,
		Description: req.Description,
		EventIDs:    req.EventIDs,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, toTimelineResponse(timeline))
}

// GetTimeline handles GET /timelines/{timelineID}
func (h *TimelineHandler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	timeline, err := h.timelines.Get(r.Context(), chi.URLParam(r, "timelineID"))
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, toTimelineResponse(timeline))
}

// ListTimelines handles GET /timelines. Archived timelines are excluded
// unless include_archived=true.
func (h *TimelineHandler) ListTimelines(w http.ResponseWriter, r *http.Request) {
	includeArchived := r.URL.Query().Get("include_archived") == "true"

	timelines, err := h.timelines.List(r.Context(), includeArchived)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	out := make([]TimelineResponse, 0, len(timelines))
	for _, t := range timelines {
		out = append(out, toTimelineResponse(t))
	}
	common.RespondJSON(w, http.StatusOK, out)
}

// UpdateTimeline handles PUT /timelines/{timelineID}
func (h *TimelineHandler) UpdateTimeline(w http.ResponseWriter, r *http.Request) {
	var req UpdateTimelineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	timeline, err := h.timelines.Update(r.Context(), chi.URLParam(r, "timelineID"), services.UpdateTimelineInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		SortField:   req.SortField,
		SortOrder:   req.SortOrder,
		Publish:     req.Publish,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, toTimelineResponse(timeline))
}

// ArchiveTimeline handles DELETE /timelines/{timelineID}. The timeline is
// archived, not removed; its events keep their membership.
func (h *TimelineHandler) ArchiveTimeline(w http.ResponseWriter, r *http.Request) {
	if err := h.timelines.Archive(r.Context(), chi.URLParam(r, "timelineID")); err != nil {
		common.RespondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ForkTimeline handles POST /timelines/{timelineID}/fork
func (h *TimelineHandler) ForkTimeline(w http.ResponseWriter, r *http.Request) {
	result, err := h.forks.Fork(r.Context(), chi.URLParam(r, "timelineID"))
	if err != nil {
		// A partial result means the copy exists but some events were not
		// re-pointed; surface both the copy and the failure.
		if result != nil && result.Timeline != nil {
			common.RespondJSON(w, http.StatusMultiStatus, ForkResponse{
				Timeline:         toTimelineResponse(result.Timeline),
				PropagatedEvents: result.PropagatedEvents,
			})
			return
		}
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, ForkResponse{
		Timeline:         toTimelineResponse(result.Timeline),
		PropagatedEvents: result.PropagatedEvents,
	})
}

// ReorderGroups handles PUT /timelines/{timelineID}/group-order
func (h *TimelineHandler) ReorderGroups(w http.ResponseWriter, r *http.Request) {
	var req ReorderGroupsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	if err := h.timelines.ReorderGroups(r.Context(), chi.URLParam(r, "timelineID"), req.GroupOrder); err != nil {
		common.RespondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetGroups handles GET /timelines/{timelineID}/groups?mode=monthly
func (h *TimelineHandler) GetGroups(w http.ResponseWriter, r *http.Request) {
	mode, err := valueobjects.ParseGroupingMode(r.URL.Query().Get("mode"))
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	view, err := h.views.OrderedGroups(r.Context(), chi.URLParam(r, "timelineID"), mode)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, toTimelineViewResponse(view))
}
