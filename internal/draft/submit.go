package draft

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"eventportal/internal/domain"
)

// Coordinator runs the submission protocol: project the session into a
// draft payload, validate the whole payload, and either report every
// violation or finalize the event through the event service.
type Coordinator struct {
	events domain.EventService
	logger *slog.Logger
	now    func() time.Time
}

// NewCoordinator returns a Coordinator that creates events through events.
func NewCoordinator(events domain.EventService, logger *slog.Logger) *Coordinator {
	return &Coordinator{events: events, logger: logger, now: time.Now}
}

// Result is the outcome of a successful submission. Location names the view
// the caller should navigate to.
type Result struct {
	Event    *domain.Event `json:"event"`
	Message  string        `json:"message"`
	Location string        `json:"location"`
}

// Submit validates the session's current payload. If any field is violated,
// all violations are returned and no state is mutated anywhere. Otherwise
// the event is created and the caller should discard the session.
func (c *Coordinator) Submit(ctx context.Context, s *Session) (*Result, Violations, error) {
	d := s.Snapshot()
	if v := Validate(d, c.now()); !v.OK() {
		return nil, v, nil
	}
	event, err := c.events.CreateEventFromDraft(ctx, d)
	if err != nil {
		return nil, nil, fmt.Errorf("create event: %w", err)
	}
	c.logger.InfoContext(ctx, "event created", "event_id", event.ID, "title", event.Title)
	return &Result{
		Event:    event,
		Message:  fmt.Sprintf("%s has been created and saved.", event.Title),
		Location: "/admin",
	}, nil, nil
}
