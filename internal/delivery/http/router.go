package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventportal/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	eventController *controllers.EventController,
	orderController *controllers.OrderController,
	dashboardController *controllers.DashboardController,
	draftController *controllers.DraftController,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Public portal
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("GET /events/{eventID}", eventController.GetEvent)
	mux.HandleFunc("POST /events/{eventID}/orders", orderController.PlaceOrder)
	mux.HandleFunc("GET /orders/{confirmationNumber}", orderController.GetOrder)

	// Admin console
	mux.HandleFunc("GET /admin/dashboard", dashboardController.Dashboard)
	mux.HandleFunc("GET /admin/events/{eventID}", dashboardController.EventDetails)
	mux.HandleFunc("GET /admin/events/{eventID}/attendees/export", dashboardController.ExportAttendees)

	// Event creation form sessions
	mux.HandleFunc("POST /admin/drafts", draftController.CreateDraft)
	mux.HandleFunc("GET /admin/drafts/{draftID}", draftController.GetDraft)
	mux.HandleFunc("PATCH /admin/drafts/{draftID}", draftController.UpdateDraft)
	mux.HandleFunc("DELETE /admin/drafts/{draftID}", draftController.DeleteDraft)
	mux.HandleFunc("POST /admin/drafts/{draftID}/submit", draftController.SubmitDraft)
	mux.HandleFunc("PUT /admin/drafts/{draftID}/attachments/{slot}", draftController.UploadAttachment)
	mux.HandleFunc("DELETE /admin/drafts/{draftID}/attachments/{slot}", draftController.RemoveAttachment)
	mux.HandleFunc("POST /admin/drafts/{draftID}/{collection}", draftController.AppendRow)
	mux.HandleFunc("PATCH /admin/drafts/{draftID}/{collection}/{index}", draftController.UpdateRow)
	mux.HandleFunc("DELETE /admin/drafts/{draftID}/{collection}/{index}", draftController.RemoveRow)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
