package schedule

import (
	"github.com/pfrederiksen/bin-schedule/internal/category"
	"github.com/pfrederiksen/bin-schedule/internal/date"
	"github.com/pfrederiksen/bin-schedule/internal/event"
	"github.com/pfrederiksen/bin-schedule/internal/logger"
)

// Group turns calendar events into a date-ordered collection schedule.
//
// Each event's title is matched against every category; an event that
// matches none contributes nothing, and one that matches several adds all
// of them to its date. Events without a resolvable start are skipped.
// The result does not depend on the order of events.
func Group(events []event.Event, table category.Table, opts ...Option) *EventResult {
	o := newOptions(opts)
	byDate := make(map[date.Date]map[string]struct{})

	for _, evt := range events {
		day, ok := evt.Start.Date(o.location)
		if !ok {
			o.metrics.IncrCounter("events.skipped")
			o.log.Debug("Skipping event without start", logger.Fields{"title": evt.Title})
			continue
		}

		matched := table.Match(evt.Title)
		if len(matched) == 0 {
			o.metrics.IncrCounter("events.unmatched")
			continue
		}

		set, exists := byDate[day]
		if !exists {
			set = make(map[string]struct{}, len(matched))
			byDate[day] = set
		}
		for _, id := range matched {
			set[id] = struct{}{}
		}
		o.metrics.IncrCounter("events.matched")
	}

	return newEventResult(byDate)
}
