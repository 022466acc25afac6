package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"eventportal/internal/delivery/http/helpers"
	"eventportal/internal/domain"
)

// OrderController serves the public ticket purchase endpoints.
type OrderController struct {
	Logger  *slog.Logger
	Service domain.OrderService
}

func NewOrderController(logger *slog.Logger, svc domain.OrderService) *OrderController {
	return &OrderController{
		Logger:  logger,
		Service: svc,
	}
}

// PlaceOrderRequest is the request body for POST /events/{eventID}/orders.
type PlaceOrderRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	TicketType string `json:"ticket_type"`
	Quantity   int    `json:"quantity"`
}

// PlaceOrderResponse is the success response envelope for POST /events/{eventID}/orders (201).
type PlaceOrderResponse struct {
	Data  *domain.TicketOrder `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// PlaceOrder godoc
// @Summary Purchase tickets for an event
// @Description Places a ticket order for a published event. Field violations are returned with status 422 and error.fields keyed by form field; no order is created in that case. A confirmation email is sent best-effort.
// @Tags orders
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param order body PlaceOrderRequest true "Purchase form"
// @Success 201 {object} PlaceOrderResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 422 {object} helpers.APIResponse "error.code: validation_failed"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/orders [post]
func (c *OrderController) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	var req PlaceOrderRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	form := &domain.OrderForm{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		TicketType: req.TicketType,
		Quantity:   req.Quantity,
	}
	order, violations, err := c.Service.PlaceOrder(r.Context(), eventID, form)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "place order failed", "event_id", eventID, "error", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not place order")
		return
	}
	if len(violations) > 0 {
		helpers.WriteJSONValidationError(w, violations)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, order)
}

// GetOrderResponse is the success response envelope for GET /orders/{confirmationNumber}.
type GetOrderResponse struct {
	Data  *OrderWithEvent   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// OrderWithEvent pairs an order with the event it was placed for, for the
// confirmation and ticket download pages.
type OrderWithEvent struct {
	Order *domain.TicketOrder `json:"order"`
	Event *domain.Event       `json:"event"`
}

// GetOrder godoc
// @Summary Look up an order by confirmation number
// @Description Returns the order and its event for a confirmation number such as GH-12345678.
// @Tags orders
// @Produce json
// @Param confirmationNumber path string true "Confirmation number"
// @Success 200 {object} GetOrderResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /orders/{confirmationNumber} [get]
func (c *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	confirmation := r.PathValue("confirmationNumber")
	order, event, err := c.Service.GetOrder(r.Context(), confirmation)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "order not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "get order failed", "confirmation", confirmation, "error", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not get order")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, &OrderWithEvent{Order: order, Event: event})
}
