package schedule

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/pfrederiksen/bin-schedule/internal/category"
	"github.com/pfrederiksen/bin-schedule/internal/date"
	"github.com/pfrederiksen/bin-schedule/internal/logger"
)

const (
	// windowRadius is how many characters either side of an alias are searched.
	windowRadius = 120
	// lineMargin widens the fallback window beyond the alias's own line.
	lineMargin = 200
)

// nextCollectionPattern finds generic "next collection" phrases and the rest
// of their line, up to 120 characters.
var nextCollectionPattern = regexp.MustCompile(
	`(?i)(?:next collection|next collections|collection date|collection dates).{0,120}`,
)

// match records how a category's date was found.
type match struct {
	span category.Span
	raw  string
	date date.Date
	wide bool
}

// ExtractText resolves a collection date for every category in table from
// the flattened text of a page.
//
// Categories are resolved independently, so one date may be reported for
// several categories. When no category resolves at all, the first date
// following a "next collection" phrase is assigned to the fallback category.
func ExtractText(text string, table category.Table, opts ...Option) *TextResult {
	o := newOptions(opts)
	result := NewTextResult(table)

	for _, c := range table {
		m, ok := locate(text, c)
		if !ok {
			o.metrics.IncrCounter("text.unresolved")
			o.log.Debug("No date near category", logger.Fields{"category": c.ID})
			continue
		}
		if result.assign(c.ID, m.date) {
			o.metrics.IncrCounter("text.resolved")
			o.log.Debug("Found category date", logger.Fields{
				"category": c.ID,
				"alias":    m.span.Alias,
				"raw":      m.raw,
				"date":     m.date.String(),
				"fallback": m.wide,
			})
		}
	}

	if result.Resolved() > 0 {
		return result
	}

	if d, raw, ok := nextCollection(text); ok && result.assign(o.fallback, d) {
		o.metrics.IncrCounter("text.next_collection")
		o.log.Debug("Found generic next-collection date", logger.Fields{
			"category": o.fallback,
			"raw":      raw,
			"date":     d.String(),
		})
	}

	return result
}

// locate walks the occurrences of c's aliases and returns the first one with
// a date nearby, trying the character window before the line window.
func locate(text string, c category.Category) (match, bool) {
	for span := range c.Occurrences(text) {
		start := backRunes(text, span.Start, windowRadius)
		end := forwardRunes(text, span.End, windowRadius)
		if d, raw, ok := date.Find(text[start:end]); ok {
			return match{span: span, raw: raw, date: d}, true
		}

		start, end = lineWindow(text, span)
		if d, raw, ok := date.Find(text[start:end]); ok {
			return match{span: span, raw: raw, date: d, wide: true}, true
		}
	}
	return match{}, false
}

// lineWindow spans from lineMargin characters before the newline preceding
// span to lineMargin characters after the newline following it. Without such
// a newline the window reaches the start or end of text.
func lineWindow(text string, span category.Span) (int, int) {
	start := 0
	if i := strings.LastIndexByte(text[:span.Start], '\n'); i >= 0 {
		start = backRunes(text, i, lineMargin)
	}

	end := len(text)
	if i := strings.IndexByte(text[span.End:], '\n'); i >= 0 {
		end = forwardRunes(text, span.End+i, lineMargin)
	}

	return start, end
}

// nextCollection returns the first date that follows a "next collection"
// phrase on the same line.
func nextCollection(text string) (date.Date, string, bool) {
	for _, loc := range nextCollectionPattern.FindAllStringIndex(text, -1) {
		if d, raw, ok := date.Find(text[loc[0]:loc[1]]); ok {
			return d, raw, true
		}
	}
	return date.Date{}, "", false
}

// backRunes moves the byte offset i back by up to n characters.
func backRunes(s string, i, n int) int {
	for ; n > 0 && i > 0; n-- {
		_, size := utf8.DecodeLastRuneInString(s[:i])
		i -= size
	}
	return i
}

// forwardRunes moves the byte offset i forward by up to n characters.
func forwardRunes(s string, i, n int) int {
	for ; n > 0 && i < len(s); n-- {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return i
}
