package domain

// AttachmentKind tags the two states an image attachment can be in.
type AttachmentKind string

const (
	// AttachmentPending is a locally selected file that has not been
	// persisted anywhere.
	AttachmentPending AttachmentKind = "pending"
	// AttachmentReference is an already-resolved reference, e.g. a URL.
	AttachmentReference AttachmentKind = "reference"
)

// PendingFile is a raw locally-selected file. The bytes never leave the form
// session.
type PendingFile struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// ImageAttachment is a tagged union: either a pending local file or a
// resolved reference. Exactly one of File and Ref is set, according to Kind.
type ImageAttachment struct {
	Kind AttachmentKind `json:"kind"`
	File *PendingFile   `json:"file,omitempty"`
	Ref  string         `json:"ref,omitempty"`
}

// ScheduleItem is one row of the repeatable schedule section.
type ScheduleItem struct {
	Title     string `json:"title"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Facilitator is one row of the repeatable facilitators section.
type Facilitator struct {
	Name  string           `json:"name"`
	Role  string           `json:"role"`
	Photo *ImageAttachment `json:"photo,omitempty"`
}

// Sponsor is one row of the repeatable sponsors section.
type Sponsor struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Logo        *ImageAttachment `json:"logo,omitempty"`
}

// EventDraft is the in-progress event-creation payload. Numeric fields are
// kept as strings exactly as entered; the validator owns parsing them.
// Repeatable collections are optional at this level even though the form
// keeps at least one row on screen.
type EventDraft struct {
	Title              string           `json:"title"`
	Description        string           `json:"description"`
	Banner             *ImageAttachment `json:"banner,omitempty"`
	Date               string           `json:"date"` // YYYY-MM-DD
	StartTime          string           `json:"start_time"`
	EndTime            string           `json:"end_time"`
	Location           string           `json:"location"`
	Venue              string           `json:"venue"`
	Category           string           `json:"category"`
	Capacity           string           `json:"capacity"`
	TicketPriceGeneral string           `json:"ticket_price_general"`
	TicketPriceVip     string           `json:"ticket_price_vip"`
	Status             string           `json:"status"`
	Schedule           []ScheduleItem   `json:"schedule,omitempty"`
	Facilitators       []Facilitator    `json:"facilitators,omitempty"`
	Sponsors           []Sponsor        `json:"sponsors,omitempty"`
}

// NewEventDraft returns a draft with the form's default values.
func NewEventDraft() *EventDraft {
	return &EventDraft{
		StartTime:          "09:00",
		EndTime:            "17:00",
		Capacity:           "100",
		TicketPriceGeneral: "0.00",
		TicketPriceVip:     "0.00",
		Status:             string(StatusDraft),
	}
}
