package schedule

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pfrederiksen/bin-schedule/internal/category"
	"github.com/pfrederiksen/bin-schedule/internal/date"
)

// slot holds one category's date. It can be filled once.
type slot struct {
	date date.Date
	set  bool
}

func (s *slot) fill(d date.Date) bool {
	if s.set {
		return false
	}
	s.date = d
	s.set = true
	return true
}

// TextResult maps every configured category to its collection date or to
// unknown. The first date assigned to a category is final.
type TextResult struct {
	order []string
	slots map[string]*slot
}

// NewTextResult creates a result with an unknown slot for every category in table.
func NewTextResult(table category.Table) *TextResult {
	r := &TextResult{
		order: make([]string, 0, len(table)),
		slots: make(map[string]*slot, len(table)),
	}
	for _, c := range table {
		if _, exists := r.slots[c.ID]; exists {
			continue
		}
		r.order = append(r.order, c.ID)
		r.slots[c.ID] = &slot{}
	}
	return r
}

// assign sets a category's date unless it is already set or not configured.
func (r *TextResult) assign(id string, d date.Date) bool {
	s, ok := r.slots[id]
	if !ok {
		return false
	}
	return s.fill(d)
}

// Categories returns the category identifiers in configuration order.
func (r *TextResult) Categories() []string {
	return append([]string(nil), r.order...)
}

// Get returns the date of a category and whether it is known.
func (r *TextResult) Get(id string) (date.Date, bool) {
	s, ok := r.slots[id]
	if !ok || !s.set {
		return date.Date{}, false
	}
	return s.date, true
}

// Resolved counts categories with a known date.
func (r *TextResult) Resolved() int {
	n := 0
	for _, s := range r.slots {
		if s.set {
			n++
		}
	}
	return n
}

// MarshalJSON writes one key per category, in configuration order, with a
// "YYYY-MM-DD" value or null.
func (r *TextResult) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range r.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		if d, ok := r.Get(id); ok {
			value, err := json.Marshal(d)
			if err != nil {
				return nil, err
			}
			buf.Write(value)
		} else {
			buf.WriteString("null")
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// WriteText renders one line per category.
func (r *TextResult) WriteText(w io.Writer) error {
	for _, id := range r.order {
		value := "unknown"
		if d, ok := r.Get(id); ok {
			value = d.String()
		}
		if _, err := fmt.Fprintf(w, "%-12s %s\n", id+":", value); err != nil {
			return err
		}
	}
	return nil
}

// Collection is one collection day and the categories collected on it.
type Collection struct {
	Date     date.Date `json:"date"`
	Keywords []string  `json:"keywords"`
}

// EventResult is the grouped schedule: collection days in ascending order,
// each date at most once, each with at least one category.
type EventResult struct {
	Collections []Collection `json:"collections"`
}

func newEventResult(byDate map[date.Date]map[string]struct{}) *EventResult {
	collections := make([]Collection, 0, len(byDate))
	for day, set := range byDate {
		if len(set) == 0 {
			continue
		}
		keywords := make([]string, 0, len(set))
		for id := range set {
			keywords = append(keywords, id)
		}
		sort.Strings(keywords)
		collections = append(collections, Collection{Date: day, Keywords: keywords})
	}

	sort.Slice(collections, func(i, j int) bool {
		return collections[i].Date.Before(collections[j].Date)
	})

	return &EventResult{Collections: collections}
}

// Resolved counts collection days.
func (r *EventResult) Resolved() int {
	return len(r.Collections)
}

// Next returns the first collection on or after from.
func (r *EventResult) Next(from date.Date) (Collection, bool) {
	for _, c := range r.Collections {
		if !c.Date.Before(from) {
			return c, true
		}
	}
	return Collection{}, false
}

// WriteText renders one line per collection day.
func (r *EventResult) WriteText(w io.Writer) error {
	if len(r.Collections) == 0 {
		_, err := fmt.Fprintln(w, "No collections found.")
		return err
	}
	for _, c := range r.Collections {
		if _, err := fmt.Fprintf(w, "%s  %s\n", c.Date, strings.Join(c.Keywords, ", ")); err != nil {
			return err
		}
	}
	return nil
}
