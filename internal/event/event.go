package event

import (
	"time"

	"github.com/pfrederiksen/bin-schedule/internal/date"
)

// Kind tells how an event's start was recorded.
type Kind int

const (
	// Unresolved marks a record that carried neither a date nor an instant.
	Unresolved Kind = iota
	// DateOnly is an all-day start with no time component.
	DateOnly
	// Instant is a start at a specific moment.
	Instant
)

func (k Kind) String() string {
	switch k {
	case DateOnly:
		return "date"
	case Instant:
		return "instant"
	default:
		return "unresolved"
	}
}

// Start is either a calendar day or an instant. The zero value is Unresolved.
type Start struct {
	kind Kind
	day  date.Date
	at   time.Time
}

// OnDate returns an all-day Start.
func OnDate(d date.Date) Start {
	return Start{kind: DateOnly, day: d}
}

// At returns a Start at the given instant.
func At(t time.Time) Start {
	return Start{kind: Instant, at: t}
}

// Kind reports which variant s holds.
func (s Start) Kind() Kind {
	return s.kind
}

// Date resolves s to a calendar day. Instants are truncated to their date,
// in loc when it is non-nil and in the instant's own offset otherwise.
// It returns false for an Unresolved start.
func (s Start) Date(loc *time.Location) (date.Date, bool) {
	switch s.kind {
	case DateOnly:
		return s.day, true
	case Instant:
		at := s.at
		if loc != nil {
			at = at.In(loc)
		}
		return date.Of(at), true
	default:
		return date.Date{}, false
	}
}

func (s Start) String() string {
	switch s.kind {
	case DateOnly:
		return s.day.String()
	case Instant:
		return s.at.Format(time.RFC3339)
	default:
		return "unresolved"
	}
}

// Event is a discrete calendar record: a title and when it starts.
type Event struct {
	Title string
	Start Start
}

// New creates an Event.
func New(title string, start Start) Event {
	return Event{Title: title, Start: start}
}
