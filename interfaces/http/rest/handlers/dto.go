// Package handlers contains the HTTP request handlers for the REST API.
package handlers

import (
	"time"

	"journaline/application/services"
	"journaline/domain/core/entities"
)

// EventResponse is the wire shape of a journal event
type EventResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	TimelineIDs []string `json:"timelineIds"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

// OriginResponse is one fork-lineage entry
type OriginResponse struct {
	TimelineID string `json:"timelineId"`
	Date       string `json:"date"`
}

// TimelineResponse is the wire shape of a timeline
type TimelineResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Color       string           `json:"color,omitempty"`
	GroupOrder  []string         `json:"groupOrder"`
	SortField   string           `json:"sortField"`
	SortOrder   string           `json:"sortOrder"`
	Publish     bool             `json:"publish"`
	IsArchived  bool             `json:"isArchived"`
	Origin      []OriginResponse `json:"origin,omitempty"`
	CreatedAt   string           `json:"createdAt"`
	UpdatedAt   string           `json:"updatedAt"`
}

// GroupResponse is one rendered group of a timeline view
type GroupResponse struct {
	Key    string          `json:"key"`
	Label  string          `json:"label"`
	Events []EventResponse `json:"events"`
}

// TimelineViewResponse is a fully grouped and ordered timeline
type TimelineViewResponse struct {
	Timeline TimelineResponse `json:"timeline"`
	Mode     string           `json:"mode"`
	Groups   []GroupResponse  `json:"groups"`
}

func toEventResponse(e *entities.Event) EventResponse {
	return EventResponse{
		ID:          e.ID().String(),
		Title:       e.Title(),
		Description: e.Description(),
		Date:        e.Date().Format(time.RFC3339),
		TimelineIDs: e.TimelineIDs(),
		CreatedAt:   e.CreatedAt().Format(time.RFC3339),
		UpdatedAt:   e.UpdatedAt().Format(time.RFC3339),
	}
}

func toEventResponses(events []*entities.Event) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(e))
	}
	return out
}

func toTimelineResponse(t *entities.Timeline) TimelineResponse {
	origin := make([]OriginResponse, 0, len(t.Origin()))
	for _, rec := range t.Origin() {
		origin = append(origin, OriginResponse{
			TimelineID: rec.TimelineID,
			Date:       rec.Date.Format(time.RFC3339),
		})
	}

	return TimelineResponse{
		ID:          t.ID().String(),
		Name:        t.Name(),
		Description: t.Description(),
		Color:       t.Color(),
		GroupOrder:  t.GroupOrder(),
		SortField:   string(t.SortPreference().Field),
		SortOrder:   string(t.SortPreference().Order),
		Publish:     t.IsPublished(),
		IsArchived:  t.IsArchived(),
		Origin:      origin,
		CreatedAt:   t.CreatedAt().Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt().Format(time.RFC3339),
	}
}

func toTimelineViewResponse(view *services.TimelineView) TimelineViewResponse {
	groups := make([]GroupResponse, 0, len(view.Groups))
	for _, g := range view.Groups {
		groups = append(groups, GroupResponse{
			Key:    g.Key,
			Label:  g.Label,
			Events: toEventResponses(g.Events),
		})
	}

	return TimelineViewResponse{
		Timeline: toTimelineResponse(view.Timeline),
		Mode:     string(view.Mode),
		Groups:   groups,
	}
}
