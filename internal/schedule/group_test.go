package schedule

import (
	"bytes"
	"testing"
	"time"

	"github.com/pfrederiksen/bin-schedule/internal/category"
	"github.com/pfrederiksen/bin-schedule/internal/date"
	"github.com/pfrederiksen/bin-schedule/internal/event"
	"github.com/pfrederiksen/bin-schedule/internal/logger"
)

func binTable() category.Table {
	return category.Table{
		{ID: "Green", Aliases: []string{"green"}},
		{ID: "Black", Aliases: []string{"black bin"}},
		{ID: "Box", Aliases: []string{"box"}},
	}
}

func onDate(y int, m time.Month, d int) event.Start {
	return event.OnDate(date.New(y, m, d))
}

func TestGroup(t *testing.T) {
	events := []event.Event{
		event.New("Green bin collection", onDate(2025, time.March, 4)),
		event.New("Black box collection", onDate(2025, time.March, 4)),
		event.New("Street fair", onDate(2025, time.March, 5)),
	}

	got := marshal(t, Group(events, binTable()))
	want := `{"collections":[{"date":"2025-03-04","keywords":["Box","Green"]}]}`
	if got != want {
		t.Errorf("Group() = %s, want %s", got, want)
	}
}

func TestGroup_Cases(t *testing.T) {
	tests := []struct {
		name   string
		events []event.Event
		opts   []Option
		want   string
	}{
		{
			name:   "No events",
			events: nil,
			want:   `{"collections":[]}`,
		},
		{
			name: "Nothing matches",
			events: []event.Event{
				event.New("Street fair", onDate(2025, time.March, 5)),
			},
			want: `{"collections":[]}`,
		},
		{
			name: "Sorted by date",
			events: []event.Event{
				event.New("Box", onDate(2025, time.April, 1)),
				event.New("Green", onDate(2024, time.December, 30)),
				event.New("Black bin", onDate(2025, time.January, 2)),
			},
			want: `{"collections":[{"date":"2024-12-30","keywords":["Green"]},{"date":"2025-01-02","keywords":["Black"]},{"date":"2025-04-01","keywords":["Box"]}]}`,
		},
		{
			name: "Duplicate events collapse",
			events: []event.Event{
				event.New("Green bin", onDate(2025, time.March, 4)),
				event.New("GREEN BIN", onDate(2025, time.March, 4)),
			},
			want: `{"collections":[{"date":"2025-03-04","keywords":["Green"]}]}`,
		},
		{
			name: "One title matching several categories",
			events: []event.Event{
				event.New("Green and black bin with box", onDate(2025, time.March, 4)),
			},
			want: `{"collections":[{"date":"2025-03-04","keywords":["Black","Box","Green"]}]}`,
		},
		{
			name: "Instant truncated to its date",
			events: []event.Event{
				event.New("Green bin", event.At(time.Date(2025, time.March, 4, 6, 45, 0, 0, time.UTC))),
				event.New("Box", onDate(2025, time.March, 4)),
			},
			want: `{"collections":[{"date":"2025-03-04","keywords":["Box","Green"]}]}`,
		},
		{
			name: "Instant truncated in configured location",
			events: []event.Event{
				event.New("Green bin", event.At(time.Date(2025, time.March, 4, 23, 0, 0, 0, time.UTC))),
			},
			opts: []Option{WithLocation(time.FixedZone("UTC+2", 2*60*60))},
			want: `{"collections":[{"date":"2025-03-05","keywords":["Green"]}]}`,
		},
		{
			name: "Malformed event skipped",
			events: []event.Event{
				event.New("Green bin", event.Start{}),
				event.New("Box", onDate(2025, time.March, 11)),
			},
			want: `{"collections":[{"date":"2025-03-11","keywords":["Box"]}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := marshal(t, Group(tt.events, binTable(), tt.opts...)); got != tt.want {
				t.Errorf("Group() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestGroup_Idempotent(t *testing.T) {
	events := []event.Event{
		event.New("Green bin", onDate(2025, time.March, 4)),
		event.New("Black bin", onDate(2025, time.March, 11)),
		event.New("Box", onDate(2025, time.March, 4)),
	}

	first := marshal(t, Group(events, binTable()))
	second := marshal(t, Group(events, binTable()))
	if first != second {
		t.Errorf("Group() not idempotent:\n%s\n%s", first, second)
	}
}

func TestGroup_OrderIndependent(t *testing.T) {
	events := []event.Event{
		event.New("Green bin", onDate(2025, time.March, 4)),
		event.New("Black bin", onDate(2025, time.March, 11)),
		event.New("Box", onDate(2025, time.March, 4)),
		event.New("Street fair", onDate(2025, time.March, 5)),
		event.New("Green bin", onDate(2025, time.March, 18)),
	}
	want := marshal(t, Group(events, binTable()))

	// Every rotation and the reversal of the list give the same schedule.
	for shift := 1; shift < len(events); shift++ {
		rotated := append(append([]event.Event{}, events[shift:]...), events[:shift]...)
		if got := marshal(t, Group(rotated, binTable())); got != want {
			t.Errorf("rotation %d: Group() = %s, want %s", shift, got, want)
		}
	}

	reversed := make([]event.Event, len(events))
	for i, evt := range events {
		reversed[len(events)-1-i] = evt
	}
	if got := marshal(t, Group(reversed, binTable())); got != want {
		t.Errorf("reversed: Group() = %s, want %s", got, want)
	}
}

func TestGroup_NoDuplicateDatesOrEmptySets(t *testing.T) {
	var events []event.Event
	for i := 0; i < 30; i++ {
		titles := []string{"Green bin", "Black bin", "Box", "Fete"}
		events = append(events, event.New(titles[i%4], onDate(2025, time.March, 1+i%7)))
	}

	result := Group(events, binTable())
	seen := make(map[date.Date]bool)
	for i, c := range result.Collections {
		if seen[c.Date] {
			t.Errorf("date %v appears twice", c.Date)
		}
		seen[c.Date] = true
		if len(c.Keywords) == 0 {
			t.Errorf("date %v has no keywords", c.Date)
		}
		if i > 0 && !result.Collections[i-1].Date.Before(c.Date) {
			t.Errorf("collections not ascending at %d", i)
		}
	}
}

func TestGroup_Metrics(t *testing.T) {
	metrics := logger.NewMetrics()
	var buf bytes.Buffer
	events := []event.Event{
		event.New("Green bin", onDate(2025, time.March, 4)),
		event.New("Fete", onDate(2025, time.March, 4)),
		event.New("Box", event.Start{}),
	}

	Group(events, binTable(), WithMetrics(metrics), WithLogger(logger.New(logger.LevelDebug, &buf)))

	if metrics.Counter("events.matched") != 1 || metrics.Counter("events.unmatched") != 1 || metrics.Counter("events.skipped") != 1 {
		t.Errorf("metrics = %v", metrics.Snapshot())
	}
	if !bytes.Contains(buf.Bytes(), []byte("Skipping event without start")) {
		t.Errorf("missing skip log: %s", buf.String())
	}
}

func TestEventResult_Next(t *testing.T) {
	result := Group([]event.Event{
		event.New("Green", onDate(2025, time.March, 4)),
		event.New("Box", onDate(2025, time.March, 11)),
	}, binTable())

	c, ok := result.Next(date.New(2025, time.March, 5))
	if !ok || c.Date != date.New(2025, time.March, 11) {
		t.Errorf("Next() = %+v, %v", c, ok)
	}
	c, ok = result.Next(date.New(2025, time.March, 4))
	if !ok || c.Date != date.New(2025, time.March, 4) {
		t.Errorf("Next() on collection day = %+v, %v", c, ok)
	}
	if _, ok := result.Next(date.New(2025, time.April, 1)); ok {
		t.Error("Next() after last collection should report false")
	}
}
