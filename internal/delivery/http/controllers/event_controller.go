package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventportal/internal/delivery/http/helpers"
	"eventportal/internal/domain"
)

// EventController serves the public event discovery endpoints.
type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// ListEventsResponse is the success response envelope for GET /events.
type ListEventsResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListEvents godoc
// @Summary List published events
// @Description Returns all published upcoming events for the public portal, soonest first. Draft, ended, and cancelled events are excluded.
// @Tags events
// @Produce json
// @Success 200 {object} ListEventsResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.ListPublishedEvents(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "list events failed", "error", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not list events")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetEventResponse is the success response envelope for GET /events/{eventID}.
type GetEventResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetEvent godoc
// @Summary Get a published event
// @Description Returns one event by ID with its full schedule and facilitators. Events that are not published return 404.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} GetEventResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	event, err := c.Service.GetEventByID(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "get event failed", "event_id", eventID, "error", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not get event")
		return
	}
	if event.Status != domain.StatusPublished {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}
