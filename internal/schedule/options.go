package schedule

import (
	"time"

	"github.com/pfrederiksen/bin-schedule/internal/logger"
)

// DefaultFallbackCategory receives a "next collection" date when no
// category could be resolved from its aliases.
const DefaultFallbackCategory = "general"

type options struct {
	fallback string
	location *time.Location
	log      *logger.Logger
	metrics  *logger.Metrics
}

// Option configures an extraction or grouping run.
type Option func(*options)

// WithFallbackCategory sets the category that receives the global
// "next collection" fallback date of the text extractor.
func WithFallbackCategory(id string) Option {
	return func(o *options) {
		o.fallback = id
	}
}

// WithLocation makes the grouper truncate event instants in loc instead of
// in each instant's own offset.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		o.location = loc
	}
}

// WithLogger receives a debug entry for every resolved category or skipped event.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithMetrics counts resolved, unresolved and skipped items.
func WithMetrics(m *logger.Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

func newOptions(opts []Option) options {
	o := options{fallback: DefaultFallbackCategory}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
