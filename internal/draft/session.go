package draft

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"eventportal/internal/domain"
)

// Session is one event-creation form session: the scalar fields, the three
// repeatable collections, and the attachment slots. All state is private to
// the session and lives only in memory; it is discarded on submit or
// abandonment. Methods are safe for concurrent use and each operation is
// atomic with respect to other callers.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu           sync.Mutex
	scalars      domain.EventDraft // collections and banner live below
	schedule     collection[domain.ScheduleItem]
	facilitators collection[domain.Facilitator]
	sponsors     collection[domain.Sponsor]
	attach       *attachments
}

// NewSession returns a session with the form's default values and, as the
// form renders, one empty row per repeatable section.
func NewSession() *Session {
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		scalars:   *domain.NewEventDraft(),
		attach:    newAttachments(),
	}
	s.schedule.append(domain.ScheduleItem{})
	s.facilitators.append(domain.Facilitator{})
	s.sponsors.append(domain.Sponsor{})
	return s
}

// Scalar field names accepted by SetField.
const (
	FieldTitle              = "title"
	FieldDescription        = "description"
	FieldDate               = "date"
	FieldStartTime          = "start_time"
	FieldEndTime            = "end_time"
	FieldLocation           = "location"
	FieldVenue              = "venue"
	FieldCategory           = "category"
	FieldCapacity           = "capacity"
	FieldTicketPriceGeneral = "ticket_price_general"
	FieldTicketPriceVip     = "ticket_price_vip"
	FieldStatus             = "status"
)

// SetField sets one scalar field of the draft. Values are stored as entered;
// validation happens at submission. Unknown names return ErrInvalidInput.
func (s *Session) SetField(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch name {
	case FieldTitle:
		s.scalars.Title = value
	case FieldDescription:
		s.scalars.Description = value
	case FieldDate:
		s.scalars.Date = value
	case FieldStartTime:
		s.scalars.StartTime = value
	case FieldEndTime:
		s.scalars.EndTime = value
	case FieldLocation:
		s.scalars.Location = value
	case FieldVenue:
		s.scalars.Venue = value
	case FieldCategory:
		s.scalars.Category = value
	case FieldCapacity:
		s.scalars.Capacity = value
	case FieldTicketPriceGeneral:
		s.scalars.TicketPriceGeneral = value
	case FieldTicketPriceVip:
		s.scalars.TicketPriceVip = value
	case FieldStatus:
		s.scalars.Status = value
	default:
		return fmt.Errorf("%w: unknown field %q", domain.ErrInvalidInput, name)
	}
	return nil
}

// AppendScheduleItem adds an empty schedule row and returns the new count.
func (s *Session) AppendScheduleItem() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.schedule.append(domain.ScheduleItem{})
}

// AppendFacilitator adds an empty facilitator row and returns the new count.
func (s *Session) AppendFacilitator() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.facilitators.append(domain.Facilitator{})
}

// AppendSponsor adds an empty sponsor row and returns the new count.
func (s *Session) AppendSponsor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sponsors.append(domain.Sponsor{})
}

// RemoveScheduleItem removes the schedule row at i. Removing the sole
// remaining row is a no-op; the report says whether a row went away.
func (s *Session) RemoveScheduleItem(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.schedule.removeAt(i)
}

// RemoveFacilitator removes the facilitator row at i and migrates photo
// slots so attachment state stays aligned with the re-indexed rows.
func (s *Session) RemoveFacilitator(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.facilitators.removeAt(i) {
		return false
	}
	s.attach.shiftAfterRemoval(SlotFacilitatorPhoto, i)
	return true
}

// RemoveSponsor removes the sponsor row at i and migrates logo slots.
func (s *Session) RemoveSponsor(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.sponsors.removeAt(i) {
		return false
	}
	s.attach.shiftAfterRemoval(SlotSponsorLogo, i)
	return true
}

// ScheduleField names a field of one schedule row.
type ScheduleField string

const (
	ScheduleTitle     ScheduleField = "title"
	ScheduleStartTime ScheduleField = "start_time"
	ScheduleEndTime   ScheduleField = "end_time"
)

// SetScheduleField updates one field of the schedule row at i. An
// out-of-range index is ignored; an unknown field returns ErrInvalidInput.
func (s *Session) SetScheduleField(i int, field ScheduleField, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch field {
	case ScheduleTitle:
		s.schedule.update(i, func(it *domain.ScheduleItem) { it.Title = value })
	case ScheduleStartTime:
		s.schedule.update(i, func(it *domain.ScheduleItem) { it.StartTime = value })
	case ScheduleEndTime:
		s.schedule.update(i, func(it *domain.ScheduleItem) { it.EndTime = value })
	default:
		return fmt.Errorf("%w: unknown schedule field %q", domain.ErrInvalidInput, field)
	}
	return nil
}

// FacilitatorField names a field of one facilitator row.
type FacilitatorField string

const (
	FacilitatorName FacilitatorField = "name"
	FacilitatorRole FacilitatorField = "role"
)

// SetFacilitatorField updates one field of the facilitator row at i.
func (s *Session) SetFacilitatorField(i int, field FacilitatorField, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch field {
	case FacilitatorName:
		s.facilitators.update(i, func(f *domain.Facilitator) { f.Name = value })
	case FacilitatorRole:
		s.facilitators.update(i, func(f *domain.Facilitator) { f.Role = value })
	default:
		return fmt.Errorf("%w: unknown facilitator field %q", domain.ErrInvalidInput, field)
	}
	return nil
}

// SponsorField names a field of one sponsor row.
type SponsorField string

const (
	SponsorName        SponsorField = "name"
	SponsorDescription SponsorField = "description"
)

// SetSponsorField updates one field of the sponsor row at i.
func (s *Session) SetSponsorField(i int, field SponsorField, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch field {
	case SponsorName:
		s.sponsors.update(i, func(sp *domain.Sponsor) { sp.Name = value })
	case SponsorDescription:
		s.sponsors.update(i, func(sp *domain.Sponsor) { sp.Description = value })
	default:
		return fmt.Errorf("%w: unknown sponsor field %q", domain.ErrInvalidInput, field)
	}
	return nil
}

// Attach stores file as the slot's pending attachment. The slot must address
// the banner or an existing row; preview decoding completes asynchronously.
func (s *Session) Attach(slot Slot, file *domain.PendingFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch slot.Kind {
	case SlotFacilitatorPhoto:
		if slot.Index >= s.facilitators.len() {
			return fmt.Errorf("%w: no facilitator row %d", domain.ErrInvalidInput, slot.Index)
		}
	case SlotSponsorLogo:
		if slot.Index >= s.sponsors.len() {
			return fmt.Errorf("%w: no sponsor row %d", domain.ErrInvalidInput, slot.Index)
		}
	}
	return s.attach.attach(slot, file)
}

// ClearAttachment removes the slot's pending file and preview.
func (s *Session) ClearAttachment(slot Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attach.clear(slot)
}

// Snapshot projects the session into a validation-ready EventDraft. Pending
// attachments carry the raw file handle; transient preview state stays
// behind. The mapping is one-directional: mutating the snapshot never
// affects the session.
func (s *Session) Snapshot() *domain.EventDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.scalars
	d.Schedule = s.schedule.snapshot()
	d.Facilitators = s.facilitators.snapshot()
	d.Sponsors = s.sponsors.snapshot()
	if f, _ := s.attach.get(BannerSlot()); f != nil {
		d.Banner = &domain.ImageAttachment{Kind: domain.AttachmentPending, File: f}
	}
	for i := range d.Facilitators {
		if f, _ := s.attach.get(FacilitatorPhotoSlot(i)); f != nil {
			d.Facilitators[i].Photo = &domain.ImageAttachment{Kind: domain.AttachmentPending, File: f}
		}
	}
	for i := range d.Sponsors {
		if f, _ := s.attach.get(SponsorLogoSlot(i)); f != nil {
			d.Sponsors[i].Logo = &domain.ImageAttachment{Kind: domain.AttachmentPending, File: f}
		}
	}
	return &d
}

// View is the renderable state of a session: the draft plus any ready
// previews keyed by field path. Previews are UI-only state and are never
// part of the validated payload.
type View struct {
	ID        string             `json:"id"`
	CreatedAt time.Time          `json:"created_at"`
	Draft     *domain.EventDraft `json:"draft"`
	Previews  map[string]string  `json:"previews,omitempty"`
}

// View returns the current renderable state of the session.
func (s *Session) View() *View {
	snap := s.Snapshot()
	previews := s.attach.previews()
	if len(previews) == 0 {
		previews = nil
	}
	return &View{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		Draft:     snap,
		Previews:  previews,
	}
}
