package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"eventportal/internal/domain"
)

// OrderRepo is an in-memory domain.OrderRepository.
type OrderRepo struct {
	mu     sync.RWMutex
	orders map[string]*domain.TicketOrder // keyed by ID
}

// NewOrderRepo returns a repository seeded with the sample attendee list.
func NewOrderRepo() *OrderRepo {
	r := &OrderRepo{orders: make(map[string]*domain.TicketOrder)}
	for _, o := range sampleOrders() {
		r.orders[o.ID] = o
	}
	return r
}

// sampleOrders is the attendee list shown on the admin event details page.
func sampleOrders() []*domain.TicketOrder {
	return []*domain.TicketOrder{
		{
			ID: "o-1", ConfirmationNumber: "GH-10000001", EventID: "4",
			FirstName: "Ahmad", LastName: "bin Abdullah", Email: "ahmad@example.com",
			Phone: "+60123456701", TicketType: domain.TicketStandard, Quantity: 1,
			UnitPrice: 50, TotalPrice: 50, PaymentStatus: domain.PaymentPaid,
			CreatedAt: date(2025, time.July, 1),
		},
		{
			ID: "o-2", ConfirmationNumber: "GH-10000002", EventID: "4",
			FirstName: "Fatimah", LastName: "binti Hassan", Email: "fatimah@example.com",
			Phone: "+60123456702", TicketType: domain.TicketVip, Quantity: 1,
			UnitPrice: 100, TotalPrice: 100, PaymentStatus: domain.PaymentPaid,
			CreatedAt: date(2025, time.July, 2),
		},
		{
			ID: "o-3", ConfirmationNumber: "GH-10000003", EventID: "4",
			FirstName: "Muhammad", LastName: "bin Ali", Email: "muhammad@example.com",
			Phone: "+60123456703", TicketType: domain.TicketStandard, Quantity: 1,
			UnitPrice: 50, TotalPrice: 50, PaymentStatus: domain.PaymentPaid,
			CreatedAt: date(2025, time.July, 3),
		},
		{
			ID: "o-4", ConfirmationNumber: "GH-10000004", EventID: "4",
			FirstName: "Aisha", LastName: "binti Omar", Email: "aisha@example.com",
			Phone: "+60123456704", TicketType: domain.TicketVip, Quantity: 1,
			UnitPrice: 100, TotalPrice: 100, PaymentStatus: domain.PaymentPending,
			CreatedAt: date(2025, time.July, 4),
		},
	}
}

func cloneOrder(o *domain.TicketOrder) *domain.TicketOrder {
	out := *o
	return &out
}

func (r *OrderRepo) Create(ctx context.Context, order *domain.TicketOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	r.orders[order.ID] = cloneOrder(order)
	return nil
}

func (r *OrderRepo) GetByConfirmationNumber(ctx context.Context, confirmation string) (*domain.TicketOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.ConfirmationNumber == confirmation {
			return cloneOrder(o), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *OrderRepo) ListByEventID(ctx context.Context, eventID string, params domain.PaginationParams) ([]*domain.TicketOrder, int, error) {
	all := r.allByEventID(eventID)
	total := len(all)
	offset := params.Offset()
	if offset >= total {
		return []*domain.TicketOrder{}, total, nil
	}
	end := offset + params.PageSize
	if params.PageSize <= 0 || end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (r *OrderRepo) ListAllByEventID(ctx context.Context, eventID string) ([]*domain.TicketOrder, error) {
	return r.allByEventID(eventID), nil
}

func (r *OrderRepo) allByEventID(eventID string) []*domain.TicketOrder {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*domain.TicketOrder{}
	for _, o := range r.orders {
		if o.EventID == eventID {
			out = append(out, cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
