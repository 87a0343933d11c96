// Package event provides the raw calendar event model and the decoders that
// produce it.
//
// An Event's Start is resolved once, at decoding time, into one of two
// variants: an all-day date or an instant. Records that carry neither are
// kept as Unresolved so callers can skip them without failing the whole list.
// Events can be decoded from calendar-API style JSON or from iCalendar files,
// with recurring iCalendar series expanded inside a caller-supplied window.
package event
