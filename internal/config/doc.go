// Package config loads the bin-schedule YAML configuration: the ordered
// category table, the fallback category for generic "next collection" dates,
// an optional timezone for event instants and the recurrence horizon.
//
// Missing values fall back to the built-in defaults, and every loaded
// configuration is validated before use.
package config
