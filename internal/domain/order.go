package domain

import (
	"context"
	"time"
)

// TicketType is the fixed set of ticket kinds sold for an event.
type TicketType string

const (
	TicketStandard TicketType = "standard"
	TicketVip      TicketType = "vip"
	TicketGroup    TicketType = "group"
)

// Valid reports whether t is one of the known ticket types.
func (t TicketType) Valid() bool {
	return t == TicketStandard || t == TicketVip || t == TicketGroup
}

// PaymentStatus of a ticket order.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "paid"
	PaymentPending PaymentStatus = "pending"
)

// TicketOrder is a confirmed ticket reservation for an event. It doubles as
// the attendee record shown on the admin event details page.
// swagger:model TicketOrder
type TicketOrder struct {
	ID                 string        `json:"id"`
	ConfirmationNumber string        `json:"confirmation_number"`
	EventID            string        `json:"event_id"`
	FirstName          string        `json:"first_name"`
	LastName           string        `json:"last_name"`
	Email              string        `json:"email"`
	Phone              string        `json:"phone"`
	TicketType         TicketType    `json:"ticket_type"`
	Quantity           int           `json:"quantity"`
	UnitPrice          float64       `json:"unit_price"`
	TotalPrice         float64       `json:"total_price"`
	PaymentStatus      PaymentStatus `json:"payment_status"`
	CreatedAt          time.Time     `json:"created_at"`
}

// OrderForm is the attendee-entered purchase form for an event.
type OrderForm struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	TicketType string `json:"ticket_type"`
	Quantity   int    `json:"quantity"`
}

// OrderRepository defines storage for ticket orders.
type OrderRepository interface {
	Create(ctx context.Context, order *TicketOrder) error
	GetByConfirmationNumber(ctx context.Context, confirmation string) (*TicketOrder, error)
	ListByEventID(ctx context.Context, eventID string, params PaginationParams) ([]*TicketOrder, int, error)
	ListAllByEventID(ctx context.Context, eventID string) ([]*TicketOrder, error)
}

// OrderService defines the customer-facing ticket purchase operations.
// PlaceOrder returns field violations keyed by form field path when the form
// is invalid; the order is only created when there are none.
type OrderService interface {
	PlaceOrder(ctx context.Context, eventID string, form *OrderForm) (*TicketOrder, map[string]string, error)
	GetOrder(ctx context.Context, confirmation string) (*TicketOrder, *Event, error)
}
