package event

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/bin-schedule/internal/date"
)

// wireEvent accepts both the plain {"title", "start"} shape and the
// calendar-API shape {"summary", "start": {"date"|"dateTime"}}.
type wireEvent struct {
	Title   string          `json:"title"`
	Summary string          `json:"summary"`
	Start   json.RawMessage `json:"start"`
}

type wireStart struct {
	Date     string `json:"date"`
	DateTime string `json:"dateTime"`
	TimeZone string `json:"timeZone"`
}

// DecodeJSON reads a list of events. The input is either a JSON array of
// events or an object holding them in an "items" array.
//
// Only a malformed document is an error. A record whose start cannot be
// read is returned with an Unresolved start.
func DecodeJSON(r io.Reader) ([]Event, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading events: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []Event{}, nil
	}

	var records []wireEvent
	if data[0] == '{' {
		var list struct {
			Items []wireEvent `json:"items"`
		}
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("parsing events: %w", err)
		}
		records = list.Items
	} else if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing events: %w", err)
	}

	events := make([]Event, 0, len(records))
	for _, rec := range records {
		title := rec.Title
		if title == "" {
			title = rec.Summary
		}
		events = append(events, New(title, parseStart(rec.Start)))
	}

	return events, nil
}

// parseStart resolves the start field, which may be a bare string or an
// object with "date" or "dateTime".
func parseStart(raw json.RawMessage) Start {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Start{}
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return Start{}
		}
		return parseStartString(s)
	case '{':
		var ws wireStart
		if err := json.Unmarshal(raw, &ws); err != nil {
			return Start{}
		}
		if ws.Date != "" {
			if d, err := date.Parse(ws.Date); err == nil {
				return OnDate(d)
			}
			return Start{}
		}
		if ws.DateTime != "" {
			t, err := time.Parse(time.RFC3339, ws.DateTime)
			if err != nil {
				return Start{}
			}
			if ws.TimeZone != "" {
				if loc, err := time.LoadLocation(ws.TimeZone); err == nil {
					t = t.In(loc)
				}
			}
			return At(t)
		}
	}

	return Start{}
}

func parseStartString(s string) Start {
	if d, err := date.Parse(s); err == nil {
		return OnDate(d)
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return At(t)
	}
	return Start{}
}
