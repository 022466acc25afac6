package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/big"
	"regexp"
	"strings"
	"time"

	"eventportal/internal/domain"
)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// Quantity limits of the purchase form.
const (
	minTicketQuantity = 1
	maxTicketQuantity = 10
)

type orderService struct {
	orderRepo      domain.OrderRepository
	eventRepo      domain.EventRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewOrderService returns the customer-facing ticket order service.
func NewOrderService(orderRepo domain.OrderRepository,
	eventRepo domain.EventRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.OrderService {
	return &orderService{
		orderRepo:      orderRepo,
		eventRepo:      eventRepo,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

// validateOrderForm checks every field of the purchase form and returns all
// violations keyed by field path.
func validateOrderForm(f *domain.OrderForm) map[string]string {
	v := map[string]string{}

	switch n := len(strings.TrimSpace(f.FirstName)); {
	case n == 0:
		v["first_name"] = "First name is required"
	case n > 100:
		v["first_name"] = "First name must be less than 100 characters"
	}
	switch n := len(strings.TrimSpace(f.LastName)); {
	case n == 0:
		v["last_name"] = "Last name is required"
	case n > 100:
		v["last_name"] = "Last name must be less than 100 characters"
	}

	email := strings.TrimSpace(f.Email)
	switch {
	case !emailRegex.MatchString(email):
		v["email"] = "Invalid email address"
	case len(email) > 255:
		v["email"] = "Email must be less than 255 characters"
	}

	switch n := len(strings.TrimSpace(f.Phone)); {
	case n < 10:
		v["phone"] = "Phone number must be at least 10 digits"
	case n > 20:
		v["phone"] = "Phone number must be less than 20 digits"
	}

	if f.TicketType == "" {
		v["ticket_type"] = "Please select a ticket type"
	} else if !domain.TicketType(f.TicketType).Valid() {
		v["ticket_type"] = "Invalid ticket type"
	}

	switch {
	case f.Quantity < minTicketQuantity:
		v["quantity"] = "Quantity must be at least 1"
	case f.Quantity > maxTicketQuantity:
		v["quantity"] = "Quantity must be 10 or less"
	}

	return v
}

// unitPrice resolves the per-ticket price from the event. Group tickets get
// a 20% discount off the general price.
func unitPrice(event *domain.Event, t domain.TicketType) float64 {
	switch t {
	case domain.TicketVip:
		return event.TicketPriceVip
	case domain.TicketGroup:
		return math.Round(event.TicketPriceGeneral*0.8*100) / 100
	default:
		return event.TicketPriceGeneral
	}
}

const confirmationDigits = 8

// generateConfirmationNumber returns a confirmation of the form GH-XXXXXXXX.
func generateConfirmationNumber() (string, error) {
	max := big.NewInt(10)
	b := make([]byte, confirmationDigits)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = byte('0' + n.Int64())
	}
	return "GH-" + string(b), nil
}

// PlaceOrder validates the form, reserves the tickets, and sends the
// confirmation email. Field violations are returned as data; the order is
// only created when the form is clean. Email failure never fails the order.
func (s *orderService) PlaceOrder(ctx context.Context, eventID string, form *domain.OrderForm) (*domain.TicketOrder, map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if v := validateOrderForm(form); len(v) > 0 {
		return nil, v, nil
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get event: %w", err)
	}
	// Draft events are not visible to the public.
	if event.Status != domain.StatusPublished {
		return nil, nil, domain.ErrNotFound
	}

	confirmation, err := generateConfirmationNumber()
	if err != nil {
		return nil, nil, fmt.Errorf("generate confirmation number: %w", err)
	}

	ticketType := domain.TicketType(form.TicketType)
	price := unitPrice(event, ticketType)
	order := &domain.TicketOrder{
		ConfirmationNumber: confirmation,
		EventID:            event.ID,
		FirstName:          strings.TrimSpace(form.FirstName),
		LastName:           strings.TrimSpace(form.LastName),
		Email:              strings.TrimSpace(strings.ToLower(form.Email)),
		Phone:              strings.TrimSpace(form.Phone),
		TicketType:         ticketType,
		Quantity:           form.Quantity,
		UnitPrice:          price,
		TotalPrice:         math.Round(price*float64(form.Quantity)*100) / 100,
		PaymentStatus:      domain.PaymentPending,
		CreatedAt:          time.Now(),
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, nil, fmt.Errorf("create order: %w", err)
	}
	if err := s.eventRepo.AddRegistrations(ctx, event.ID, order.Quantity, order.TotalPrice); err != nil {
		return nil, nil, fmt.Errorf("add registrations: %w", err)
	}

	data := &domain.OrderConfirmationEmailData{
		Email:              order.Email,
		FirstName:          order.FirstName,
		EventTitle:         event.Title,
		EventDate:          event.Date.Format("January 2, 2006"),
		EventTime:          event.StartTime + " - " + event.EndTime,
		EventLocation:      event.Location + ", " + event.Venue,
		TicketType:         string(order.TicketType),
		Quantity:           order.Quantity,
		TotalPrice:         fmt.Sprintf("RM%.2f", order.TotalPrice),
		ConfirmationNumber: order.ConfirmationNumber,
	}
	if err := s.emailService.SendOrderConfirmation(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "order confirmation email failed",
			"confirmation", order.ConfirmationNumber, "err", err)
	}

	return order, nil, nil
}

func (s *orderService) GetOrder(ctx context.Context, confirmation string) (*domain.TicketOrder, *domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	order, err := s.orderRepo.GetByConfirmationNumber(ctx, confirmation)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get order: %w", err)
	}
	event, err := s.eventRepo.GetByID(ctx, order.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get event: %w", err)
	}
	return order, event, nil
}
