package draft

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventportal/internal/domain"
)

var testNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

// validDraft returns a draft that passes every rule.
func validDraft() *domain.EventDraft {
	d := domain.NewEventDraft()
	d.Title = "Annual Tech Conference"
	d.Description = "Two days of talks and workshops on modern software."
	d.Date = "2025-09-01"
	d.Location = "Kuala Lumpur"
	d.Venue = "KL Convention Centre"
	d.Category = "conference"
	d.Schedule = []domain.ScheduleItem{{Title: "Opening Keynote", StartTime: "09:00", EndTime: "10:00"}}
	d.Facilitators = []domain.Facilitator{{Name: "Dr. Ahmad Jabbar", Role: "Keynote Speaker"}}
	d.Sponsors = []domain.Sponsor{{Name: "Acme Corp", Description: "Platinum sponsor"}}
	return d
}

func TestValidate_ValidDraft(t *testing.T) {
	v := Validate(validDraft(), testNow)
	assert.True(t, v.OK(), "unexpected violations: %v", v)
}

func TestValidate_CollectsAllViolationsAtOnce(t *testing.T) {
	d := domain.NewEventDraft()
	d.Capacity = ""
	v := Validate(d, testNow)

	require.False(t, v.OK())
	assert.Equal(t, "Event title must be at least 3 characters", v["title"])
	assert.Equal(t, "Description must be at least 10 characters", v["description"])
	assert.Equal(t, "Event date is required", v["date"])
	assert.Equal(t, "Location must be at least 3 characters", v["location"])
	assert.Equal(t, "Venue must be at least 3 characters", v["venue"])
	assert.Equal(t, "Please select a category", v["category"])
	assert.Equal(t, "Capacity must be a number", v["capacity"])
}

// A single bad field on an otherwise valid draft produces exactly one
// violation.
func TestValidate_SingleViolationOnly(t *testing.T) {
	d := validDraft()
	d.Title = "AB"
	v := Validate(d, testNow)
	assert.Equal(t, Violations{"title": "Event title must be at least 3 characters"}, v)
}

func TestValidate_Title(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"too short", "ab", "Event title must be at least 3 characters"},
		{"whitespace only", "   ", "Event title must be at least 3 characters"},
		{"too long", strings.Repeat("x", 101), "Event title must be less than 100 characters"},
		{"min length ok", "abc", ""},
		{"max length ok", strings.Repeat("x", 100), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			d.Title = tt.title
			v := Validate(d, testNow)
			assert.Equal(t, tt.want, v["title"])
		})
	}
}

func TestValidate_Date(t *testing.T) {
	tests := []struct {
		name string
		date string
		want string
	}{
		{"empty", "", "Event date is required"},
		{"bad format", "01/09/2025", "Invalid date format (YYYY-MM-DD)"},
		{"yesterday", "2025-06-14", "Event date cannot be in the past"},
		{"today ok", "2025-06-15", ""},
		{"future ok", "2026-01-01", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			d.Date = tt.date
			v := Validate(d, testNow)
			assert.Equal(t, tt.want, v["date"])
		})
	}
}

func TestValidate_Times(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"24h rejected", "24:00", "Invalid time format (HH:MM)"},
		{"minutes out of range", "12:60", "Invalid time format (HH:MM)"},
		{"not a time", "morning", "Invalid time format (HH:MM)"},
		{"empty", "", "Invalid time format (HH:MM)"},
		{"single digit hour ok", "9:30", ""},
		{"boundary ok", "23:59", ""},
		{"midnight ok", "0:00", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			d.StartTime = tt.value
			v := Validate(d, testNow)
			assert.Equal(t, tt.want, v["start_time"])
		})
	}
}

// Entering an end time earlier than the start time is accepted; the form has
// no ordering rule between the two.
func TestValidate_NoTimeOrderingRule(t *testing.T) {
	d := validDraft()
	d.StartTime = "17:00"
	d.EndTime = "09:00"
	v := Validate(d, testNow)
	assert.True(t, v.OK(), "unexpected violations: %v", v)

	d.Schedule[0].StartTime = "15:00"
	d.Schedule[0].EndTime = "08:00"
	v = Validate(d, testNow)
	assert.True(t, v.OK(), "unexpected violations: %v", v)
}

func TestValidate_Category(t *testing.T) {
	d := validDraft()
	d.Category = ""
	assert.Equal(t, "Please select a category", Validate(d, testNow)["category"])

	d.Category = "festival"
	assert.Equal(t, "Invalid category", Validate(d, testNow)["category"])

	for _, c := range []string{"conference", "workshop", "seminar", "training", "networking", "other"} {
		d.Category = c
		assert.Empty(t, Validate(d, testNow)["category"], "category %q", c)
	}
}

func TestValidate_Status(t *testing.T) {
	d := validDraft()
	d.Status = ""
	assert.Equal(t, "Please select a status", Validate(d, testNow)["status"])

	d.Status = "ended"
	assert.Equal(t, "Invalid status", Validate(d, testNow)["status"])

	d.Status = "published"
	assert.Empty(t, Validate(d, testNow)["status"])
	d.Status = "draft"
	assert.Empty(t, Validate(d, testNow)["status"])
}

func TestValidate_Capacity(t *testing.T) {
	tests := []struct {
		name     string
		capacity string
		want     string
	}{
		{"empty", "", "Capacity must be a number"},
		{"not a number", "many", "Capacity must be a number"},
		{"negative", "-5", "Capacity must be a number"},
		{"zero", "0", "Capacity must be greater than 0"},
		{"too large", "10001", "Capacity must be 10000 or less"},
		{"upper bound ok", "10000", ""},
		{"one ok", "1", ""},
		{"typical ok", "250", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			d.Capacity = tt.capacity
			v := Validate(d, testNow)
			assert.Equal(t, tt.want, v["capacity"])
		})
	}
}

func TestValidate_Prices(t *testing.T) {
	tests := []struct {
		name  string
		price string
		want  string
	}{
		{"empty", "", "Invalid price format"},
		{"negative", "-5", "Invalid price format"},
		{"three decimals", "10.999", "Invalid price format"},
		{"not a number", "free", "Invalid price format"},
		{"zero ok", "0", ""},
		{"two decimals ok", "49.90", ""},
		{"integer ok", "100", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			d.TicketPriceGeneral = tt.price
			v := Validate(d, testNow)
			assert.Equal(t, tt.want, v["ticket_price_general"])
		})
	}
}

func TestValidate_NestedRowPaths(t *testing.T) {
	d := validDraft()
	d.Schedule = append(d.Schedule, domain.ScheduleItem{Title: "", StartTime: "25:00", EndTime: "10:00"})
	d.Facilitators = append(d.Facilitators, domain.Facilitator{Name: " ", Role: ""})
	d.Sponsors = append(d.Sponsors, domain.Sponsor{Name: "", Description: ""})

	v := Validate(d, testNow)
	assert.Equal(t, "Session title is required", v["schedule[1].title"])
	assert.Equal(t, "Invalid time format (HH:MM)", v["schedule[1].start_time"])
	assert.Empty(t, v["schedule[1].end_time"])
	assert.Equal(t, "Name is required", v["facilitators[1].name"])
	assert.Equal(t, "Role is required", v["facilitators[1].role"])
	assert.Equal(t, "Name is required", v["sponsors[1].name"])
	assert.Equal(t, "Description is required", v["sponsors[1].description"])

	// First rows stay clean.
	assert.Empty(t, v["schedule[0].title"])
	assert.Empty(t, v["facilitators[0].name"])
}

func TestValidate_EmptyCollectionsAreLegal(t *testing.T) {
	d := validDraft()
	d.Schedule = nil
	d.Facilitators = nil
	d.Sponsors = nil
	v := Validate(d, testNow)
	assert.True(t, v.OK(), "unexpected violations: %v", v)
}

func TestValidate_Attachments(t *testing.T) {
	pngHeader := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)

	t.Run("valid png banner", func(t *testing.T) {
		d := validDraft()
		d.Banner = &domain.ImageAttachment{
			Kind: domain.AttachmentPending,
			File: &domain.PendingFile{Name: "banner.png", Data: pngHeader},
		}
		assert.Empty(t, Validate(d, testNow)["banner"])
	})

	t.Run("oversized file", func(t *testing.T) {
		d := validDraft()
		d.Banner = &domain.ImageAttachment{
			Kind: domain.AttachmentPending,
			File: &domain.PendingFile{Name: "huge.png", Data: make([]byte, MaxAttachmentBytes+1)},
		}
		assert.Equal(t, "Image must be 5MB or less", Validate(d, testNow)["banner"])
	})

	t.Run("non-image content", func(t *testing.T) {
		d := validDraft()
		d.Facilitators[0].Photo = &domain.ImageAttachment{
			Kind: domain.AttachmentPending,
			File: &domain.PendingFile{Name: "notes.txt", Data: []byte("plain text, not an image")},
		}
		assert.Equal(t, "Only PNG, JPEG, or WEBP images are allowed", Validate(d, testNow)["facilitators[0].photo"])
	})

	t.Run("reference attachment skipped", func(t *testing.T) {
		d := validDraft()
		d.Banner = &domain.ImageAttachment{Kind: domain.AttachmentReference, Ref: "https://example.com/banner.jpg"}
		assert.Empty(t, Validate(d, testNow)["banner"])
	})
}

// Validating twice yields the same result and leaves the draft untouched.
func TestValidate_PureAndIdempotent(t *testing.T) {
	d := domain.NewEventDraft()
	d.Title = "x"
	first := Validate(d, testNow)
	second := Validate(d, testNow)
	assert.Equal(t, first, second)
	assert.Equal(t, "x", d.Title)
	assert.Equal(t, "09:00", d.StartTime)
}
