// Package date provides the canonical calendar Date used across bin-schedule
// and the normalizer that turns human-written dates into it.
//
// Accepted spellings are day-first: "14 February 2025", "14 Feb 2025",
// "14/02/2025" and "14-02-2025". Every accepted spelling of the same day
// normalizes to the same Date.
package date
