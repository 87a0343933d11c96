// Package schedule resolves household bin collection dates.
//
// ExtractText reads the flattened text of a council results page and
// reports, for every configured category, the date found nearest to one of
// its aliases. Group reads calendar events and reports which categories are
// collected on each day. Both are pure functions of their input and the
// category table: they keep no state between calls and never fail; missing
// information is reported as unknown or simply left out.
package schedule
