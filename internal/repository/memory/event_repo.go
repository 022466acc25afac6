// Package memory provides in-memory repository implementations seeded with
// the portal's sample data. There is no durable persistence: the repositories
// stand in for a database behind the same interfaces a real one would use.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"eventportal/internal/domain"
)

// EventRepo is an in-memory domain.EventRepository.
type EventRepo struct {
	mu     sync.RWMutex
	events map[string]*domain.Event
}

// NewEventRepo returns a repository seeded with the sample catalog.
func NewEventRepo() *EventRepo {
	r := &EventRepo{events: make(map[string]*domain.Event)}
	for _, e := range sampleEvents() {
		r.events[e.ID] = e
	}
	return r
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// sampleEvents is the hard-coded catalog the portal ships with.
func sampleEvents() []*domain.Event {
	created := date(2025, time.June, 1)
	return []*domain.Event{
		{
			ID:                 "1",
			Title:              "Halal Competency Training",
			Description:        "Understanding on Halal related body that manage Halal industry.",
			ImageURL:           "https://images.unsplash.com/photo-1540575467063-178a50c2df87?w=400&h=300&fit=crop",
			Date:               date(2025, time.November, 5),
			StartTime:          "09:00",
			EndTime:            "17:00",
			Location:           "Kuala Lumpur Convention Centre",
			Venue:              "Hall A",
			Category:           domain.CategoryTraining,
			Capacity:           200,
			TicketPriceGeneral: 50,
			TicketPriceVip:     100,
			Status:             domain.StatusPublished,
			CreatedAt:          created,
			UpdatedAt:          created,
		},
		{
			ID:                 "2",
			Title:              "Halal Talk",
			Description:        "Adakah DNA Babi itu Babi dari perspektif sains?",
			ImageURL:           "https://images.unsplash.com/photo-1475721027785-f74eccf877e2?w=400&h=300&fit=crop",
			Date:               date(2025, time.July, 15),
			StartTime:          "10:00",
			EndTime:            "14:00",
			Location:           "Business Hub",
			Venue:              "Room 301",
			Category:           domain.CategorySeminar,
			Capacity:           150,
			TicketPriceGeneral: 30,
			TicketPriceVip:     60,
			Status:             domain.StatusEnded,
			Registrations:      100,
			Revenue:            5000,
			CreatedAt:          created,
			UpdatedAt:          created,
		},
		{
			ID:                 "3",
			Title:              "Halal Talk",
			Description:        "Alkohol dan Arak Sama ke?",
			ImageURL:           "https://images.unsplash.com/photo-1511578314322-379afb476865?w=400&h=300&fit=crop",
			Date:               date(2025, time.September, 20),
			StartTime:          "10:00",
			EndTime:            "14:00",
			Location:           "Business Hub",
			Venue:              "Room 301",
			Category:           domain.CategorySeminar,
			Capacity:           150,
			TicketPriceGeneral: 30,
			TicketPriceVip:     60,
			Status:             domain.StatusCancelled,
			CreatedAt:          created,
			UpdatedAt:          created,
		},
		{
			ID:                 "4",
			Title:              "Halal Awareness Training",
			Description:        "Comprehensive training on Halal certification and compliance standards.",
			ImageURL:           "https://images.unsplash.com/photo-1517245386807-bb43f82c33c4?w=400&h=300&fit=crop",
			Date:               date(2025, time.August, 5),
			StartTime:          "09:00",
			EndTime:            "17:00",
			Location:           "Kuala Lumpur Convention Centre",
			Venue:              "Hall A",
			Category:           domain.CategoryTraining,
			Capacity:           200,
			TicketPriceGeneral: 50,
			TicketPriceVip:     100,
			Status:             domain.StatusPublished,
			Registrations:      150,
			Revenue:            10000,
			Schedule: []domain.ScheduleItem{
				{Title: "Opening Keynote", StartTime: "10:00", EndTime: "10:30"},
				{Title: "First Session", StartTime: "10:30", EndTime: "12:00"},
				{Title: "Second Session", StartTime: "12:00", EndTime: "13:30"},
				{Title: "Question and Answer", StartTime: "13:30", EndTime: "14:00"},
			},
			Facilitators: []domain.Facilitator{
				{Name: "Dr. Ahmad Jabbar", Role: "JAKIM Halal Trainer"},
				{Name: "Sarah Chen", Role: "Halal Product Journalist (Moderator)"},
				{Name: "Noranim Mohd Noor", Role: "CEO Global Haltech"},
			},
			CreatedAt: created,
			UpdatedAt: created,
		},
		{
			ID:                 "5",
			Title:              "Halal Science Awareness Training",
			Description:        "Understanding more on Halal Science and its roles.",
			ImageURL:           "https://images.unsplash.com/photo-1524178232363-1fb2b075b655?w=400&h=300&fit=crop",
			Date:               date(2025, time.September, 20),
			StartTime:          "09:00",
			EndTime:            "17:00",
			Location:           "Global Haltech HQ",
			Venue:              "Training Room 2",
			Category:           domain.CategoryTraining,
			Capacity:           100,
			TicketPriceGeneral: 40,
			TicketPriceVip:     80,
			Status:             domain.StatusDraft,
			CreatedAt:          created,
			UpdatedAt:          created,
		},
		{
			ID:                 "6",
			Title:              "Halal Executive Training",
			Description:        "Get certified from our professional speaker.",
			ImageURL:           "https://images.unsplash.com/photo-1591115765373-5207764f72e7?w=400&h=300&fit=crop",
			Date:               date(2025, time.October, 12),
			StartTime:          "09:00",
			EndTime:            "17:00",
			Location:           "Global Haltech HQ",
			Venue:              "Training Room 1",
			Category:           domain.CategoryTraining,
			Capacity:           80,
			TicketPriceGeneral: 120,
			TicketPriceVip:     200,
			Status:             domain.StatusPublished,
			CreatedAt:          created,
			UpdatedAt:          created,
		},
	}
}

func cloneEvent(e *domain.Event) *domain.Event {
	out := *e
	out.Schedule = append([]domain.ScheduleItem(nil), e.Schedule...)
	out.Facilitators = append([]domain.Facilitator(nil), e.Facilitators...)
	out.Sponsors = append([]domain.Sponsor(nil), e.Sponsors...)
	return &out
}

func (r *EventRepo) Create(ctx context.Context, event *domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	r.events[event.ID] = cloneEvent(event)
	return nil
}

func (r *EventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneEvent(e), nil
}

func (r *EventRepo) ListPublished(ctx context.Context) ([]*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Event
	for _, e := range r.events {
		if e.Status == domain.StatusPublished {
			out = append(out, cloneEvent(e))
		}
	}
	sortByDate(out)
	return out, nil
}

func (r *EventRepo) ListAll(ctx context.Context) ([]*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Event, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, cloneEvent(e))
	}
	sortByDate(out)
	return out, nil
}

func (r *EventRepo) AddRegistrations(ctx context.Context, eventID string, count int, revenue float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[eventID]
	if !ok {
		return domain.ErrNotFound
	}
	e.Registrations += count
	e.Revenue += revenue
	e.UpdatedAt = time.Now()
	return nil
}

// sortByDate orders events by date ascending, then ID for a stable order.
func sortByDate(events []*domain.Event) {
	sort.Slice(events, func(i, j int) bool {
		if events[i].Date.Equal(events[j].Date) {
			return events[i].ID < events[j].ID
		}
		return events[i].Date.Before(events[j].Date)
	})
}
