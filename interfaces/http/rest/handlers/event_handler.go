package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"journaline/application/ports"
	"journaline/application/services"
	"journaline/pkg/common"
	"journaline/pkg/utils"
)

// EventHandler handles journal event HTTP requests
type EventHandler struct {
	events       *services.EventService
	associations *services.AssociationService
	logger       *zap.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(
	events *services.EventService,
	associations *services.AssociationService,
	logger *zap.Logger,
) *EventHandler {
	return &EventHandler{
		events:       events,
		associations: associations,
		logger:       logger,
	}
}

// CreateEventRequest represents the request body for recording an event
type CreateEventRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"required"`
	Date        string   `json:"date" validate:"required"`
	TimelineIDs []string `json:"timelineIds,omitempty" validate:"omitempty,dive,uuid4"`
}

// UpdateEventRequest represents the request body for editing an event
type UpdateEventRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	Date        string `json:"date" validate:"required"`
}

// SetTimelinesRequest replaces an event's full timeline membership
type SetTimelinesRequest struct {
	TimelineIDs []string `json:"timelineIds" validate:"dive,uuid4"`
}

// CreateEvent handles POST /events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	date, err := utils.ParseRFC3339(req.Date)
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "date must be RFC 3339")
		return
	}

	event, err := h.events.Create(r.Context(), services.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
		TimelineIDs: req.TimelineIDs,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, toEventResponse(event))
}

// GetEvent handles GET /events/{eventID}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.events.Get(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		common.RespondAppError(w, err)
		return
	}
	common.RespondJSON(w, http.StatusOK, toEventResponse(event))
}

// ListEvents handles GET /events with optional timeline/date filters
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	filter := ports.EventFilter{
		TimelineID: r.URL.Query().Get("timeline_id"),
	}
	if from := r.URL.Query().Get("from"); from != "" {
		t, err := utils.ParseRFC3339(from)
		if err != nil {
			common.RespondError(w, http.StatusBadRequest, "VALIDATION", "from must be RFC 3339")
			return
		}
		filter.From = t
	}
	if to := r.URL.Query().Get("to"); to != "" {
		t, err := utils.ParseRFC3339(to)
		if err != nil {
			common.RespondError(w, http.StatusBadRequest, "VALIDATION", "to must be RFC 3339")
			return
		}
		filter.To = t
	}

	events, err := h.events.List(r.Context(), filter)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, toEventResponses(events))
}

// UpdateEvent handles PUT /events/{eventID}
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	date, err := utils.ParseRFC3339(req.Date)
	if err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "date must be RFC 3339")
		return
	}

	event, err := h.events.Update(r.Context(), chi.URLParam(r, "eventID"), services.UpdateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, toEventResponse(event))
}

// DeleteEvent handles DELETE /events/{eventID}. Deletion is permanent.
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.events.Purge(r.Context(), chi.URLParam(r, "eventID")); err != nil {
		common.RespondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddToTimeline handles POST /events/{eventID}/timelines/{timelineID}
func (h *EventHandler) AddToTimeline(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")
	timelineID := chi.URLParam(r, "timelineID")

	if err := h.associations.AddEventToTimeline(r.Context(), eventID, timelineID); err != nil {
		common.RespondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RemoveFromTimeline handles DELETE /events/{eventID}/timelines/{timelineID}
func (h *EventHandler) RemoveFromTimeline(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")
	timelineID := chi.URLParam(r, "timelineID")

	if err := h.associations.RemoveEventFromTimeline(r.Context(), eventID, timelineID); err != nil {
		common.RespondAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetTimelines handles PUT /events/{eventID}/timelines
func (h *EventHandler) SetTimelines(w http.ResponseWriter, r *http.Request) {
	var req SetTimelinesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "INVALID_BODY", "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", err.Error())
		return
	}

	event, err := h.associations.SetEventTimelines(r.Context(), chi.URLParam(r, "eventID"), req.TimelineIDs)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, toEventResponse(event))
}
