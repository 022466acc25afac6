package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"eventportal/internal/delivery/http/helpers"
	"eventportal/internal/domain"
)

// DashboardController serves the admin console read endpoints.
type DashboardController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewDashboardController(logger *slog.Logger, svc domain.EventService) *DashboardController {
	return &DashboardController{
		Logger:  logger,
		Service: svc,
	}
}

// DashboardResponse is the success response envelope for GET /admin/dashboard.
type DashboardResponse struct {
	Data  *domain.DashboardReport `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// Dashboard godoc
// @Summary Admin dashboard
// @Description Returns this month's headline metrics and the full event table for the admin console.
// @Tags admin
// @Produce json
// @Success 200 {object} DashboardResponse
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/dashboard [get]
func (c *DashboardController) Dashboard(w http.ResponseWriter, r *http.Request) {
	report, err := c.Service.Dashboard(r.Context(), time.Now())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "dashboard failed", "error", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not build dashboard")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, report)
}

// AdminEventDetails is the data object for GET /admin/events/{eventID}.
type AdminEventDetails struct {
	Event      *domain.Event          `json:"event"`
	Attendees  []*domain.TicketOrder  `json:"attendees"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// AdminEventDetailsResponse is the success response envelope for GET /admin/events/{eventID}.
type AdminEventDetailsResponse struct {
	Data  *AdminEventDetails `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// EventDetails godoc
// @Summary Admin event details
// @Description Returns one event regardless of status, with a paginated attendee list.
// @Tags admin
// @Produce json
// @Param eventID path string true "Event ID"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} AdminEventDetailsResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events/{eventID} [get]
func (c *DashboardController) EventDetails(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	params := helpers.ParsePagination(r)
	event, orders, total, err := c.Service.AdminEventDetails(r.Context(), eventID, params)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "admin event details failed", "event_id", eventID, "error", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not get event details")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, &AdminEventDetails{
		Event:      event,
		Attendees:  orders,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// ExportAttendees godoc
// @Summary Export attendees as CSV
// @Description Streams the full attendee list of an event as a CSV download.
// @Tags admin
// @Produce text/csv
// @Param eventID path string true "Event ID"
// @Success 200 {string} string "CSV content"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events/{eventID}/attendees/export [get]
func (c *DashboardController) ExportAttendees(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	csvData, err := c.Service.ExportAttendeesCSV(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "export attendees failed", "event_id", eventID, "error", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not export attendees")
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "attendees-"+eventID+".csv"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(csvData)
}
