package domain

import (
	"context"
	"time"
)

// EventCategory is the fixed set of categories an event can belong to.
type EventCategory string

const (
	CategoryConference EventCategory = "conference"
	CategoryWorkshop   EventCategory = "workshop"
	CategorySeminar    EventCategory = "seminar"
	CategoryTraining   EventCategory = "training"
	CategoryNetworking EventCategory = "networking"
	CategoryOther      EventCategory = "other"
)

// Valid reports whether c is one of the known categories.
func (c EventCategory) Valid() bool {
	switch c {
	case CategoryConference, CategoryWorkshop, CategorySeminar,
		CategoryTraining, CategoryNetworking, CategoryOther:
		return true
	}
	return false
}

// EventStatus is the lifecycle status of an event. Only draft and published
// are selectable at creation time; ended and cancelled appear on the admin
// dashboard for historical records.
type EventStatus string

const (
	StatusDraft     EventStatus = "draft"
	StatusPublished EventStatus = "published"
	StatusEnded     EventStatus = "ended"
	StatusCancelled EventStatus = "cancelled"
)

// CreatableStatus reports whether s may be chosen on the creation form.
func (s EventStatus) CreatableStatus() bool {
	return s == StatusDraft || s == StatusPublished
}

// Event is a stored event as shown on the customer catalog and the admin
// console.
// swagger:model Event
type Event struct {
	ID                 string        `json:"id"`
	Title              string        `json:"title"`
	Description        string        `json:"description"`
	ImageURL           string        `json:"image_url,omitempty"`
	Date               time.Time     `json:"date"`
	StartTime          string        `json:"start_time"`
	EndTime            string        `json:"end_time"`
	Location           string        `json:"location"`
	Venue              string        `json:"venue"`
	Category           EventCategory `json:"category"`
	Capacity           int           `json:"capacity"`
	TicketPriceGeneral float64       `json:"ticket_price_general"`
	TicketPriceVip     float64       `json:"ticket_price_vip"`
	Status             EventStatus   `json:"status"`
	Registrations      int           `json:"registrations"`
	Revenue            float64       `json:"revenue"`
	Schedule           []ScheduleItem `json:"schedule,omitempty"`
	Facilitators       []Facilitator  `json:"facilitators,omitempty"`
	Sponsors           []Sponsor      `json:"sponsors,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	ListPublished(ctx context.Context) ([]*Event, error)
	ListAll(ctx context.Context) ([]*Event, error)
	// AddRegistrations increments the registration count and revenue of an
	// event after a successful ticket order.
	AddRegistrations(ctx context.Context, eventID string, count int, revenue float64) error
}

// EventService defines catalog and admin operations over events.
type EventService interface {
	ListPublishedEvents(ctx context.Context) ([]*Event, error)
	GetEventByID(ctx context.Context, eventID string) (*Event, error)
	// CreateEventFromDraft persists a draft that has already passed
	// validation. Pending image attachments are not uploaded anywhere; only
	// already-resolved references carry over.
	CreateEventFromDraft(ctx context.Context, draft *EventDraft) (*Event, error)
	Dashboard(ctx context.Context, now time.Time) (*DashboardReport, error)
	AdminEventDetails(ctx context.Context, eventID string, params PaginationParams) (*Event, []*TicketOrder, int, error)
	ExportAttendeesCSV(ctx context.Context, eventID string) ([]byte, error)
}
