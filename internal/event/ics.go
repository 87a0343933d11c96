package event

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/pfrederiksen/bin-schedule/internal/date"
)

// ExpandWindow bounds recurrence expansion for iCalendar input.
// A zero Until disables expansion: recurring events keep only their first start.
type ExpandWindow struct {
	From  time.Time
	Until time.Time
}

// DecodeICS reads the VEVENTs of an iCalendar document.
//
// SUMMARY becomes the title. DTSTART becomes a DateOnly start when it is a
// DATE value and an Instant otherwise. RRULE series are expanded inside
// window, minus any EXDATE. A VEVENT without a usable DTSTART is returned
// with an Unresolved start.
func DecodeICS(r io.Reader, window ExpandWindow) ([]Event, error) {
	cal, err := ical.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("parsing calendar: %w", err)
	}

	events := make([]Event, 0)
	for _, ve := range cal.Events() {
		title := ""
		if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
			title = p.Value
		}

		dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
		if dtStart == nil {
			events = append(events, New(title, Start{}))
			continue
		}

		allDay := isDateValue(dtStart.Value, dtStart.ICalParameters)
		start, err := parseICSTime(dtStart.Value, dtStart.ICalParameters)
		if err != nil {
			events = append(events, New(title, Start{}))
			continue
		}

		rule := ve.GetProperty(ical.ComponentPropertyRrule)
		if rule == nil || window.Until.IsZero() {
			events = append(events, New(title, icsStart(start, allDay)))
			continue
		}

		occurrences, err := expand(rule.Value, start, exDates(ve), window)
		if err != nil {
			// Keep the first instance of a series whose rule we cannot read.
			events = append(events, New(title, icsStart(start, allDay)))
			continue
		}
		for _, occ := range occurrences {
			events = append(events, New(title, icsStart(occ, allDay)))
		}
	}

	return events, nil
}

func icsStart(t time.Time, allDay bool) Start {
	if allDay {
		return OnDate(date.Of(t))
	}
	return At(t)
}

// expand lists the starts of an RRULE series inside window.
func expand(rawRule string, start time.Time, excluded []time.Time, window ExpandWindow) ([]time.Time, error) {
	r, err := rrule.StrToRRule(rawRule)
	if err != nil {
		return nil, fmt.Errorf("parsing RRULE %q: %w", rawRule, err)
	}
	r.DTStart(start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range excluded {
		set.ExDate(ex.In(start.Location()))
	}

	return set.Between(window.From, window.Until, true), nil
}

// exDates collects EXDATE values, which may repeat and may be comma separated.
func exDates(ve *ical.VEvent) []time.Time {
	var out []time.Time
	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if t, err := parseICSTime(part, p.ICalParameters); err == nil {
				out = append(out, t)
			}
		}
	}
	return out
}

func isDateValue(value string, params map[string][]string) bool {
	if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(value, "T")
}

// parseICSTime parses a DATE or DATE-TIME value. Floating times use TZID when
// present and UTC otherwise; DATE values are midnight UTC.
func parseICSTime(value string, params map[string][]string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty time value")
	}

	if strings.HasSuffix(value, "Z") {
		return time.Parse("20060102T150405Z", value)
	}

	if strings.Contains(value, "T") {
		loc := time.UTC
		if tzs, ok := params["TZID"]; ok && len(tzs) > 0 {
			if l, err := time.LoadLocation(tzs[0]); err == nil {
				loc = l
			}
		}
		return time.ParseInLocation("20060102T150405", value, loc)
	}

	return time.Parse("20060102", value)
}
