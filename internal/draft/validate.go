package draft

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"eventportal/internal/domain"
)

// Violations maps a field path (e.g. "title", "schedule[2].start_time") to a
// human-readable message. An empty map means the payload is valid.
type Violations map[string]string

// OK reports whether no field was violated.
func (v Violations) OK() bool { return len(v) == 0 }

var (
	// Single-digit hours are allowed, "24:00" is not.
	timeRE     = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)
	priceRE    = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	capacityRE = regexp.MustCompile(`^\d+$`)
)

// DateLayout is the wire format of the draft's calendar date.
const DateLayout = "2006-01-02"

// Validate checks every constraint of the event-creation form against the
// draft and returns all violations at once rather than stopping at the first
// failure. now anchors the past-date rule. Validate is pure: it never mutates
// the draft.
//
// There is deliberately no ordering rule between start and end times, at the
// top level or per schedule row.
func Validate(d *domain.EventDraft, now time.Time) Violations {
	v := Violations{}

	checkLength(v, "title", "Event title", d.Title, 3, 100)
	checkLength(v, "description", "Description", d.Description, 10, 2000)

	if strings.TrimSpace(d.Date) == "" {
		v["date"] = "Event date is required"
	} else if date, err := time.ParseInLocation(DateLayout, strings.TrimSpace(d.Date), now.Location()); err != nil {
		v["date"] = "Invalid date format (YYYY-MM-DD)"
	} else {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if date.Before(today) {
			v["date"] = "Event date cannot be in the past"
		}
	}

	checkTime(v, "start_time", d.StartTime)
	checkTime(v, "end_time", d.EndTime)

	checkLength(v, "location", "Location", d.Location, 3, 200)
	checkLength(v, "venue", "Venue", d.Venue, 3, 200)

	if d.Category == "" {
		v["category"] = "Please select a category"
	} else if !domain.EventCategory(d.Category).Valid() {
		v["category"] = "Invalid category"
	}

	if d.Status == "" {
		v["status"] = "Please select a status"
	} else if !domain.EventStatus(d.Status).CreatableStatus() {
		v["status"] = "Invalid status"
	}

	if !capacityRE.MatchString(d.Capacity) {
		v["capacity"] = "Capacity must be a number"
	} else if n, err := strconv.Atoi(d.Capacity); err != nil || n <= 0 {
		v["capacity"] = "Capacity must be greater than 0"
	} else if n > 10000 {
		v["capacity"] = "Capacity must be 10000 or less"
	}

	checkPrice(v, "ticket_price_general", d.TicketPriceGeneral)
	checkPrice(v, "ticket_price_vip", d.TicketPriceVip)

	for i, item := range d.Schedule {
		if strings.TrimSpace(item.Title) == "" {
			v[fmt.Sprintf("schedule[%d].title", i)] = "Session title is required"
		}
		checkTime(v, fmt.Sprintf("schedule[%d].start_time", i), item.StartTime)
		checkTime(v, fmt.Sprintf("schedule[%d].end_time", i), item.EndTime)
	}

	for i, f := range d.Facilitators {
		if strings.TrimSpace(f.Name) == "" {
			v[fmt.Sprintf("facilitators[%d].name", i)] = "Name is required"
		}
		if strings.TrimSpace(f.Role) == "" {
			v[fmt.Sprintf("facilitators[%d].role", i)] = "Role is required"
		}
		checkAttachment(v, fmt.Sprintf("facilitators[%d].photo", i), f.Photo)
	}

	for i, sp := range d.Sponsors {
		if strings.TrimSpace(sp.Name) == "" {
			v[fmt.Sprintf("sponsors[%d].name", i)] = "Name is required"
		}
		if strings.TrimSpace(sp.Description) == "" {
			v[fmt.Sprintf("sponsors[%d].description", i)] = "Description is required"
		}
		checkAttachment(v, fmt.Sprintf("sponsors[%d].logo", i), sp.Logo)
	}

	checkAttachment(v, "banner", d.Banner)

	return v
}

func checkLength(v Violations, path, label, value string, min, max int) {
	switch n := len(strings.TrimSpace(value)); {
	case n < min:
		v[path] = fmt.Sprintf("%s must be at least %d characters", label, min)
	case n > max:
		v[path] = fmt.Sprintf("%s must be less than %d characters", label, max)
	}
}

func checkTime(v Violations, path, value string) {
	if !timeRE.MatchString(strings.TrimSpace(value)) {
		v[path] = "Invalid time format (HH:MM)"
	}
}

func checkPrice(v Violations, path, value string) {
	if !priceRE.MatchString(value) {
		v[path] = "Invalid price format"
		return
	}
	if n, err := strconv.ParseFloat(value, 64); err != nil || n < 0 {
		v[path] = "Price cannot be negative"
	}
}

func checkAttachment(v Violations, path string, a *domain.ImageAttachment) {
	if a == nil || a.Kind != domain.AttachmentPending || a.File == nil {
		return
	}
	if msg := attachmentViolation(a.File); msg != "" {
		v[path] = msg
	}
}
