package draft

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"eventportal/internal/domain"
)

// SlotKind identifies which attachment family a slot belongs to.
type SlotKind string

const (
	SlotBanner           SlotKind = "banner"
	SlotFacilitatorPhoto SlotKind = "facilitator_photo"
	SlotSponsorLogo      SlotKind = "sponsor_logo"
)

// Slot is an addressable attachment location: the event banner, one
// facilitator's photo, or one sponsor's logo. Index is -1 for the banner.
type Slot struct {
	Kind  SlotKind
	Index int
}

// BannerSlot returns the banner slot.
func BannerSlot() Slot { return Slot{Kind: SlotBanner, Index: -1} }

// FacilitatorPhotoSlot returns the photo slot of the facilitator row at i.
func FacilitatorPhotoSlot(i int) Slot { return Slot{Kind: SlotFacilitatorPhoto, Index: i} }

// SponsorLogoSlot returns the logo slot of the sponsor row at i.
func SponsorLogoSlot(i int) Slot { return Slot{Kind: SlotSponsorLogo, Index: i} }

// FieldPath returns the validation field path of the slot.
func (s Slot) FieldPath() string {
	switch s.Kind {
	case SlotFacilitatorPhoto:
		return fmt.Sprintf("facilitators[%d].photo", s.Index)
	case SlotSponsorLogo:
		return fmt.Sprintf("sponsors[%d].logo", s.Index)
	default:
		return "banner"
	}
}

// ParseSlot parses the URL form of a slot: "banner", "facilitators.2.photo",
// or "sponsors.0.logo".
func ParseSlot(raw string) (Slot, error) {
	if raw == "banner" {
		return BannerSlot(), nil
	}
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return Slot{}, fmt.Errorf("unknown attachment slot %q", raw)
	}
	i, err := strconv.Atoi(parts[1])
	if err != nil || i < 0 {
		return Slot{}, fmt.Errorf("invalid attachment slot index %q", parts[1])
	}
	switch {
	case parts[0] == "facilitators" && parts[2] == "photo":
		return FacilitatorPhotoSlot(i), nil
	case parts[0] == "sponsors" && parts[2] == "logo":
		return SponsorLogoSlot(i), nil
	}
	return Slot{}, fmt.Errorf("unknown attachment slot %q", raw)
}

// SlotError reports an attachment constraint violation on a specific slot.
type SlotError struct {
	Slot    Slot
	Message string
}

func (e *SlotError) Error() string { return e.Slot.FieldPath() + ": " + e.Message }

// MaxAttachmentBytes is the advertised per-image size limit (5MB).
const MaxAttachmentBytes = 5 << 20

func allowedImageType(contentType string) bool {
	switch contentType {
	case "image/png", "image/jpeg", "image/webp":
		return true
	}
	return false
}

// attachmentViolation checks the advertised type/size limits against a file
// and returns the violation message, or "" when the file is acceptable.
// The type is sniffed from content, not trusted from the client.
func attachmentViolation(file *domain.PendingFile) string {
	if len(file.Data) > MaxAttachmentBytes {
		return "Image must be 5MB or less"
	}
	if !allowedImageType(http.DetectContentType(file.Data)) {
		return "Only PNG, JPEG, or WEBP images are allowed"
	}
	return ""
}

// slotState holds one slot's pending file and derived preview. gen is a
// store-wide unique token identifying the latest attach/clear on the slot;
// a decode result is published only if its token is still current.
type slotState struct {
	file    *domain.PendingFile
	preview string
	gen     uint64
}

// attachments manages pending image files and their derived previews, keyed
// by slot. Preview decoding runs asynchronously; when a slot is re-attached
// or cleared before an earlier decode finishes, the stale result is dropped
// (last write wins).
type attachments struct {
	mu      sync.Mutex
	slots   map[Slot]*slotState
	nextGen uint64
	decode  func(contentType string, data []byte) string
	decoded func() // test hook, fired after each decode resolves
}

func newAttachments() *attachments {
	return &attachments{
		slots:  make(map[Slot]*slotState),
		decode: dataPreview,
	}
}

// dataPreview renders the file as a base64 data URI, the displayable
// representation a browser FileReader would produce.
func dataPreview(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// attach stores file as the slot's pending attachment and schedules preview
// decoding. The sniffed content type is written back onto the file. Returns
// a *SlotError when the file violates the type/size limits.
func (a *attachments) attach(slot Slot, file *domain.PendingFile) error {
	if msg := attachmentViolation(file); msg != "" {
		return &SlotError{Slot: slot, Message: msg}
	}
	file.ContentType = http.DetectContentType(file.Data)

	a.mu.Lock()
	st, ok := a.slots[slot]
	if !ok {
		st = &slotState{}
		a.slots[slot] = st
	}
	a.nextGen++
	st.file = file
	st.preview = ""
	st.gen = a.nextGen
	gen := st.gen
	a.mu.Unlock()

	go a.publishPreview(st, gen, file.ContentType, file.Data)
	return nil
}

// publishPreview decodes and, if the slot state has not moved on since the
// attach that scheduled it, publishes the preview.
func (a *attachments) publishPreview(st *slotState, gen uint64, contentType string, data []byte) {
	preview := a.decode(contentType, data)
	a.mu.Lock()
	if st.gen == gen && st.file != nil {
		st.preview = preview
	}
	hook := a.decoded
	a.mu.Unlock()
	if hook != nil {
		hook()
	}
}

// clear drops the slot's pending file and preview. Any in-flight decode for
// the slot is invalidated.
func (a *attachments) clear(slot Slot) {
	a.mu.Lock()
	if st, ok := a.slots[slot]; ok {
		a.nextGen++
		st.file = nil
		st.preview = ""
		st.gen = a.nextGen
	}
	a.mu.Unlock()
}

// get returns the slot's pending file and preview, if any.
func (a *attachments) get(slot Slot) (*domain.PendingFile, string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	st, ok := a.slots[slot]
	if !ok {
		return nil, ""
	}
	return st.file, st.preview
}

// shiftAfterRemoval migrates index-keyed slots after the row at removed was
// deleted from its collection: the removed row's slot is dropped and every
// higher-indexed slot of the same kind moves down by one, keeping slot state
// and row data in sync. In-flight decodes follow their state to the new slot.
func (a *attachments) shiftAfterRemoval(kind SlotKind, removed int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.slots, Slot{Kind: kind, Index: removed})
	moved := make(map[Slot]*slotState)
	for s, st := range a.slots {
		if s.Kind == kind && s.Index > removed {
			moved[Slot{Kind: kind, Index: s.Index - 1}] = st
			delete(a.slots, s)
		}
	}
	for s, st := range moved {
		a.slots[s] = st
	}
}

// previews returns every ready preview keyed by field path.
func (a *attachments) previews() map[string]string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[string]string)
	for s, st := range a.slots {
		if st.preview != "" {
			out[s.FieldPath()] = st.preview
		}
	}
	return out
}
