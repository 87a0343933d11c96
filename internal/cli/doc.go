// Package cli implements the command-line interface for bin-schedule.
//
// The cli package provides the Cobra-based CLI with a text subcommand that
// extracts one date per category from collection page text or HTML, an events
// subcommand that groups JSON or iCalendar events into collection days, and a
// config subcommand that prints the effective category table. It coordinates
// the config, page, event, schedule and storage packages, and reports through
// the exit code whether any date was resolved.
package cli
