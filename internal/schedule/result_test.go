package schedule

import (
	"bytes"
	"reflect"
	"testing"
	"time"

	"github.com/pfrederiksen/bin-schedule/internal/category"
	"github.com/pfrederiksen/bin-schedule/internal/date"
)

func TestTextResult_FirstAssignmentWins(t *testing.T) {
	r := NewTextResult(category.Default())

	if !r.assign("glass", date.New(2025, time.March, 4)) {
		t.Fatal("first assign should succeed")
	}
	if r.assign("glass", date.New(2025, time.March, 11)) {
		t.Error("second assign should be rejected")
	}
	if got, _ := r.Get("glass"); got != date.New(2025, time.March, 4) {
		t.Errorf("Get(glass) = %v, want 2025-03-04", got)
	}
	if r.assign("garden", date.New(2025, time.March, 4)) {
		t.Error("assign to unconfigured category should be rejected")
	}
	if r.Resolved() != 1 {
		t.Errorf("Resolved() = %d, want 1", r.Resolved())
	}
}

func TestTextResult_TotalMapping(t *testing.T) {
	table := category.Table{
		{ID: "zeta", Aliases: []string{"z"}},
		{ID: "alpha", Aliases: []string{"a"}},
		{ID: "zeta", Aliases: []string{"again"}},
	}
	r := NewTextResult(table)

	if got := r.Categories(); !reflect.DeepEqual(got, []string{"zeta", "alpha"}) {
		t.Errorf("Categories() = %v", got)
	}
	if got := marshal(t, r); got != `{"zeta":null,"alpha":null}` {
		t.Errorf("MarshalJSON() = %s", got)
	}
}

func TestTextResult_WriteText(t *testing.T) {
	r := NewTextResult(category.Default())
	r.assign("recycling", date.New(2025, time.March, 4))

	var buf bytes.Buffer
	if err := r.WriteText(&buf); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	want := "general:     unknown\nrecycling:   2025-03-04\nglass:       unknown\n"
	if buf.String() != want {
		t.Errorf("WriteText() = %q, want %q", buf.String(), want)
	}
}

func TestEventResult_WriteText(t *testing.T) {
	tests := []struct {
		name   string
		result *EventResult
		want   string
	}{
		{
			name:   "Empty",
			result: newEventResult(nil),
			want:   "No collections found.\n",
		},
		{
			name: "Two days",
			result: newEventResult(map[date.Date]map[string]struct{}{
				date.New(2025, time.March, 11): {"Box": {}},
				date.New(2025, time.March, 4):  {"Green": {}, "Box": {}},
			}),
			want: "2025-03-04  Box, Green\n2025-03-11  Box\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := tt.result.WriteText(&buf); err != nil {
				t.Fatalf("WriteText() error = %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("WriteText() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestNewEventResult_DropsEmptySets(t *testing.T) {
	r := newEventResult(map[date.Date]map[string]struct{}{
		date.New(2025, time.March, 4): {},
	})
	if r.Resolved() != 0 || r.Collections == nil {
		t.Errorf("newEventResult() = %+v", r)
	}
}
