package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/pfrederiksen/bin-schedule/internal/schedule"
)

// ProductID identifies bin-schedule as the producer of exported calendars.
const ProductID = "-//bin-schedule//bin-schedule//EN"

// Build creates an iCalendar document with one all-day VEVENT per
// collection day. stamp is written as DTSTAMP on every event.
func Build(res *schedule.EventResult, stamp time.Time) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.SetProductId(ProductID)
	cal.SetMethod(ical.MethodPublish)

	for _, c := range res.Collections {
		day := c.Date.Time()

		// UID - one per collection day
		evt := cal.AddEvent(fmt.Sprintf("%s@bin-schedule", day.Format("20060102")))
		evt.SetDtStampTime(stamp.UTC())
		evt.SetAllDayStartAt(day)
		evt.SetAllDayEndAt(day.AddDate(0, 0, 1))
		evt.SetSummary(Summary(c.Keywords))
		for _, keyword := range c.Keywords {
			evt.AddProperty(ical.ComponentPropertyCategories, keyword)
		}

		// TRANSP - collections do not block time
		evt.SetProperty(ical.ComponentPropertyTransp, "TRANSPARENT")
	}

	return cal
}

// Write serializes the collection days of res as an iCalendar document with
// CRLF line endings.
func Write(w io.Writer, res *schedule.EventResult, stamp time.Time) error {
	return Build(res, stamp).SerializeTo(w, ical.WithNewLineWindows)
}

// Summary is the event title for a collection of the given categories.
func Summary(keywords []string) string {
	return "Bin collection: " + strings.Join(keywords, ", ")
}
