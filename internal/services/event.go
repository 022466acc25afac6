package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"eventportal/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	orderRepo      domain.OrderRepository
	contextTimeout time.Duration
}

// NewEventService returns the catalog/admin event service.
func NewEventService(eventRepo domain.EventRepository, orderRepo domain.OrderRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		orderRepo:      orderRepo,
		contextTimeout: timeout,
	}
}

func (s *eventService) ListPublishedEvents(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("list published events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) GetEventByID(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// CreateEventFromDraft persists a draft that has already passed validation.
// Pending image attachments never leave the form session; only resolved
// references carry over onto the stored event.
func (s *eventService) CreateEventFromDraft(ctx context.Context, d *domain.EventDraft) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	date, err := time.Parse("2006-01-02", d.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date: %v", domain.ErrInvalidInput, err)
	}
	capacity, err := strconv.Atoi(d.Capacity)
	if err != nil {
		return nil, fmt.Errorf("%w: capacity: %v", domain.ErrInvalidInput, err)
	}
	priceGeneral, err := strconv.ParseFloat(d.TicketPriceGeneral, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: ticket_price_general: %v", domain.ErrInvalidInput, err)
	}
	priceVip, err := strconv.ParseFloat(d.TicketPriceVip, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: ticket_price_vip: %v", domain.ErrInvalidInput, err)
	}

	now := time.Now()
	event := &domain.Event{
		Title:              d.Title,
		Description:        d.Description,
		ImageURL:           referenceURL(d.Banner),
		Date:               date,
		StartTime:          d.StartTime,
		EndTime:            d.EndTime,
		Location:           d.Location,
		Venue:              d.Venue,
		Category:           domain.EventCategory(d.Category),
		Capacity:           capacity,
		TicketPriceGeneral: priceGeneral,
		TicketPriceVip:     priceVip,
		Status:             domain.EventStatus(d.Status),
		Schedule:           d.Schedule,
		Facilitators:       stripPendingFacilitatorPhotos(d.Facilitators),
		Sponsors:           stripPendingSponsorLogos(d.Sponsors),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

// referenceURL extracts an already-resolved URL from an attachment; pending
// files yield "".
func referenceURL(a *domain.ImageAttachment) string {
	if a != nil && a.Kind == domain.AttachmentReference {
		return a.Ref
	}
	return ""
}

func sanitizeAttachment(a *domain.ImageAttachment) *domain.ImageAttachment {
	if a == nil || a.Kind != domain.AttachmentReference {
		return nil
	}
	return a
}

func stripPendingFacilitatorPhotos(in []domain.Facilitator) []domain.Facilitator {
	out := make([]domain.Facilitator, len(in))
	copy(out, in)
	for i := range out {
		out[i].Photo = sanitizeAttachment(out[i].Photo)
	}
	return out
}

func stripPendingSponsorLogos(in []domain.Sponsor) []domain.Sponsor {
	out := make([]domain.Sponsor, len(in))
	copy(out, in)
	for i := range out {
		out[i].Logo = sanitizeAttachment(out[i].Logo)
	}
	return out
}

// Dashboard aggregates the monthly metrics and the event table. The three
// headline numbers cover events dated in now's calendar month; upcoming
// additionally means published and not yet past.
func (s *eventService) Dashboard(ctx context.Context, now time.Time) (*domain.DashboardReport, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	report := &domain.DashboardReport{Events: []domain.DashboardEventRow{}}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for _, e := range events {
		report.Events = append(report.Events, domain.DashboardEventRow{
			EventID:       e.ID,
			Name:          e.Title,
			Date:          e.Date,
			Registrations: e.Registrations,
			Revenue:       e.Revenue,
			Status:        e.Status,
		})
		if e.Date.Year() != now.Year() || e.Date.Month() != now.Month() {
			continue
		}
		report.Metrics.TotalRegistrations += e.Registrations
		report.Metrics.TotalRevenue += e.Revenue
		if e.Status == domain.StatusPublished && !e.Date.Before(today) {
			report.Metrics.UpcomingEvents++
		}
	}
	report.Metrics.TotalRevenue = math.Round(report.Metrics.TotalRevenue*100) / 100
	return report, nil
}

func (s *eventService) AdminEventDetails(ctx context.Context, eventID string, params domain.PaginationParams) (*domain.Event, []*domain.TicketOrder, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, 0, domain.ErrNotFound
		}
		return nil, nil, 0, fmt.Errorf("get event: %w", err)
	}
	orders, total, err := s.orderRepo.ListByEventID(ctx, eventID, params)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("list attendees: %w", err)
	}
	if orders == nil {
		orders = []*domain.TicketOrder{}
	}
	return event, orders, total, nil
}

// attendeeCSVHeader is the first row of the attendee export.
var attendeeCSVHeader = []string{"Name", "Email", "Ticket Type", "Payment Status", "Registration Date"}

func (s *eventService) ExportAttendeesCSV(ctx context.Context, eventID string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	orders, err := s.orderRepo.ListAllByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(attendeeCSVHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, o := range orders {
		row := []string{
			o.FirstName + " " + o.LastName,
			o.Email,
			string(o.TicketType),
			string(o.PaymentStatus),
			o.CreatedAt.Format("January 2, 2006"),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
