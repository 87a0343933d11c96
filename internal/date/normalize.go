package date

import (
	"regexp"
	"strings"
	"time"
)

// shape is one accepted way of writing a date. The regular expression
// decides whether a substring is written this way; the layouts then parse it.
type shape struct {
	name    string
	pattern *regexp.Regexp
	layouts []string
}

// Order matters: the first shape whose pattern matches owns the substring.
var shapes = []shape{
	{
		name:    "day month-name year",
		pattern: regexp.MustCompile(`\b\d{1,2}\s+[A-Za-z]+\s+\d{4}\b`),
		layouts: []string{"2 January 2006", "2 Jan 2006"},
	},
	{
		name:    "day/month/year",
		pattern: regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`),
		layouts: []string{"2/1/2006"},
	},
	{
		name:    "day-month-year",
		pattern: regexp.MustCompile(`\b\d{1,2}-\d{1,2}-\d{4}\b`),
		layouts: []string{"2-1-2006"},
	},
}

const monthNames = `January|February|March|April|May|June|July|August|September|October|November|December|` +
	`Jan|Feb|Mar|Apr|Jun|Jul|Aug|Sep|Oct|Nov|Dec`

// candidatePattern finds date-like substrings inside a larger window of text.
var candidatePattern = regexp.MustCompile(
	`(?i)\b(?:\d{1,2}\s+(?:` + monthNames + `)\s+\d{4}|\d{1,2}/\d{1,2}/\d{4}|\d{1,2}-\d{1,2}-\d{4})\b`,
)

// Normalize parses s into a Date.
// Supports formats: "14 February 2025", "14 Feb 2025", "14/02/2025", "14-02-2025".
//
// The first shape that structurally matches s decides the format. If the
// matched text then fails strict calendar validation (day 32, month 13,
// 30 February) Normalize gives up instead of trying the remaining shapes.
func Normalize(s string) (Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, false
	}

	for _, sh := range shapes {
		m := sh.pattern.FindString(s)
		if m == "" {
			continue
		}
		// Collapse line breaks and repeated spaces between the parts
		candidate := strings.Join(strings.Fields(m), " ")
		for _, layout := range sh.layouts {
			if t, err := time.Parse(layout, candidate); err == nil {
				return Of(t), true
			}
		}
		return Date{}, false
	}

	return Date{}, false
}

// Find returns the first date-like substring of window together with its
// normalized Date. Only the first candidate is considered: if it does not
// normalize, Find reports no match.
func Find(window string) (Date, string, bool) {
	raw := candidatePattern.FindString(window)
	if raw == "" {
		return Date{}, "", false
	}
	d, ok := Normalize(raw)
	if !ok {
		return Date{}, raw, false
	}
	return d, raw, true
}
