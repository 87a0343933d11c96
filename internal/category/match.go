package category

import (
	"iter"
	"regexp"
	"strings"
)

// Span is one occurrence of an alias in a text, as byte offsets [Start, End).
type Span struct {
	Alias string
	Start int
	End   int
}

// Occurrences yields every place an alias of c appears in text.
//
// Aliases are tried in declared order and each alias is exhausted, left to
// right, before the next one is tried. Matching ignores case and is plain
// substring search, so "black" also matches inside "blackout".
// The sequence is lazy: nothing is searched beyond what the caller consumes.
func (c Category) Occurrences(text string) iter.Seq[Span] {
	return func(yield func(Span) bool) {
		for _, alias := range c.Aliases {
			if alias == "" {
				continue
			}
			rx := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(alias))
			for pos := 0; pos < len(text); {
				loc := rx.FindStringIndex(text[pos:])
				if loc == nil {
					break
				}
				span := Span{Alias: alias, Start: pos + loc[0], End: pos + loc[1]}
				if !yield(span) {
					return
				}
				pos = span.End
			}
		}
	}
}

// MatchesTitle reports whether any alias of c occurs in title, ignoring case.
func (c Category) MatchesTitle(title string) bool {
	lowered := strings.ToLower(title)
	for _, alias := range c.Aliases {
		if alias != "" && strings.Contains(lowered, strings.ToLower(alias)) {
			return true
		}
	}
	return false
}

// Match returns the identifiers of every category whose aliases occur in
// title, in table order. A title may match none, one or several categories.
func (t Table) Match(title string) []string {
	var ids []string
	for _, c := range t {
		if c.MatchesTitle(title) {
			ids = append(ids, c.ID)
		}
	}
	return ids
}
