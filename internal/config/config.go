package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/bin-schedule/internal/category"
)

// DefaultHorizonDays bounds recurrence expansion of iCalendar input.
const DefaultHorizonDays = 365

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the static input shared by every run: the category table and
// the knobs around it.
type Config struct {
	// Categories is the ordered category → alias table.
	Categories category.Table

	// FallbackCategory receives a generic "next collection" date from page
	// text when no category could be resolved.
	FallbackCategory string

	// Timezone is an optional IANA zone used to truncate event instants to
	// dates. Empty keeps each instant's own offset.
	Timezone string

	// HorizonDays is how far ahead recurring iCalendar events are expanded.
	HorizonDays int
}

// document is the on-disk shape. Categories are a YAML mapping whose key
// order is the declaration order.
type document struct {
	Categories       orderedTable `yaml:"categories"`
	FallbackCategory string       `yaml:"fallback_category"`
	Timezone         string       `yaml:"timezone"`
	HorizonDays      int          `yaml:"horizon_days"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Categories:       category.Default(),
		FallbackCategory: "general",
		HorizonDays:      DefaultHorizonDays,
	}
}

// Normalize fills in missing values with defaults so that partial files
// still behave like the built-in configuration.
func (c *Config) Normalize() {
	if len(c.Categories) == 0 {
		c.Categories = category.Default()
	}
	if c.FallbackCategory == "" {
		c.FallbackCategory = "general"
	}
	if c.HorizonDays <= 0 {
		c.HorizonDays = DefaultHorizonDays
	}
}

// Validate checks the category table and the timezone.
func (c *Config) Validate() error {
	if err := c.Categories.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// Location resolves Timezone. It returns nil when no timezone is configured.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return nil, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Load reads configuration from a YAML file. An empty path yields Default.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	return Parse(data)
}

// Parse decodes, normalizes and validates a YAML document.
func Parse(data []byte) (*Config, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg := &Config{
		Categories:       category.Table(doc.Categories),
		FallbackCategory: doc.FallbackCategory,
		Timezone:         doc.Timezone,
		HorizonDays:      doc.HorizonDays,
	}
	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Marshal encodes cfg in the same shape Load reads.
func Marshal(cfg *Config) ([]byte, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	return yaml.Marshal(document{
		Categories:       orderedTable(cfg.Categories),
		FallbackCategory: cfg.FallbackCategory,
		Timezone:         cfg.Timezone,
		HorizonDays:      cfg.HorizonDays,
	})
}
