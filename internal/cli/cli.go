package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/bin-schedule/internal/config"
	"github.com/pfrederiksen/bin-schedule/internal/date"
	"github.com/pfrederiksen/bin-schedule/internal/event"
	"github.com/pfrederiksen/bin-schedule/internal/logger"
	"github.com/pfrederiksen/bin-schedule/internal/page"
	"github.com/pfrederiksen/bin-schedule/internal/schedule"
	"github.com/pfrederiksen/bin-schedule/internal/storage"
)

const (
	ExitSuccess      = 0
	ExitError        = 1
	ExitNoCollection = 2
)

// ErrNothingResolved is returned when a run completes without a single date.
var ErrNothingResolved = errors.New("no collection dates resolved")

// options holds the flags shared by every subcommand.
type options struct {
	configPath string
	format     string
	outputPath string
	logLevel   string
	verbose    bool

	log     *logger.Logger
	metrics *logger.Metrics
	cfg     *config.Config
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "bin-schedule",
		Short: "Extract bin collection dates from council pages and calendars",
		Long: `A CLI tool that turns a council collection page or a calendar export
into a normalized bin collection schedule keyed by category.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "YAML file with categories and aliases (default: built-in table)")
	flags.StringVar(&opts.format, "format", string(FormatText), "Output format: text, json or ics (events only)")
	flags.StringVar(&opts.outputPath, "output", "", "Also write the JSON result to this file")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Minimum log level on stderr: debug, info, warn or error")
	flags.BoolVar(&opts.verbose, "verbose", false, "Enable debug logging on stderr (same as --log-level debug)")

	cmd.AddCommand(newTextCmd(opts), newEventsCmd(opts), newConfigCmd(opts))

	return cmd
}

// setup validates the shared flags and loads the configuration.
func (o *options) setup(cmd *cobra.Command) error {
	if _, err := parseFormat(o.format); err != nil {
		return err
	}

	level, err := logger.ParseLevel(o.logLevel)
	if err != nil {
		return err
	}
	if o.verbose {
		level = logger.LevelDebug
	}
	o.log = logger.New(level, cmd.ErrOrStderr())
	o.metrics = logger.NewMetrics()

	cfg, err := config.Load(o.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	o.cfg = cfg

	o.log.Debug("Configuration loaded", logger.Fields{
		"path":       o.configPath,
		"categories": cfg.Categories.IDs(),
		"fallback":   cfg.FallbackCategory,
	})

	if _, ok := cfg.Categories.Lookup(cfg.FallbackCategory); !ok {
		o.log.Warn("Fallback category is not in the category table", logger.Fields{
			"fallback": cfg.FallbackCategory,
		})
	}

	return nil
}

// result is what every subcommand produces.
type result interface {
	Resolved() int
	WriteText(w io.Writer) error
}

// finish renders res, persists it when requested and maps an empty result
// to ErrNothingResolved.
func (o *options) finish(cmd *cobra.Command, res result) error {
	format, err := parseFormat(o.format)
	if err != nil {
		return err
	}

	if err := WriteOutput(cmd.OutOrStdout(), res, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if o.outputPath != "" {
		if err := storage.Save(o.outputPath, res); err != nil {
			o.log.Error("Result not saved", logger.Fields{"path": o.outputPath}, err)
			return fmt.Errorf("saving result: %w", err)
		}
		o.log.Debug("Result saved", logger.Fields{"path": o.outputPath})
	}

	o.log.Debug("Run metrics", o.metrics.Snapshot())

	if res.Resolved() == 0 {
		return ErrNothingResolved
	}
	return nil
}

func newTextCmd(opts *options) *cobra.Command {
	var (
		input string
		html  bool
	)

	cmd := &cobra.Command{
		Use:   "text",
		Short: "Extract one date per category from collection page text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()

			data, err := readInput(cmd, input)
			if err != nil {
				return err
			}

			var text string
			if html {
				text, err = page.Text(bytes.NewReader(data))
				if err != nil {
					return fmt.Errorf("extracting page text: %w", err)
				}
			} else {
				text = page.Flatten(string(data))
			}

			opts.log.Debug("Input read", logger.Fields{
				"bytes": len(data),
				"html":  html,
			})

			res := schedule.ExtractText(text, opts.cfg.Categories,
				schedule.WithFallbackCategory(opts.cfg.FallbackCategory),
				schedule.WithLogger(opts.log),
				schedule.WithMetrics(opts.metrics),
			)
			opts.metrics.RecordTiming("text.extract", time.Since(start))

			return opts.finish(cmd, res)
		},
	}

	cmd.Flags().StringVar(&input, "input", "-", "Page text file, or - for stdin")
	cmd.Flags().BoolVar(&html, "html", false, "Treat the input as HTML and flatten it to text first")

	return cmd
}

func newEventsCmd(opts *options) *cobra.Command {
	var (
		input       string
		ics         bool
		from        string
		horizonDays int
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Group calendar events into collection days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Now()

			loc, err := opts.cfg.Location()
			if err != nil {
				return err
			}

			fromDate, err := parseFrom(from, loc)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("horizon-days") {
				if horizonDays <= 0 {
					return fmt.Errorf("invalid --horizon-days: %d (must be positive)", horizonDays)
				}
				opts.cfg.HorizonDays = horizonDays
			}

			data, err := readInput(cmd, input)
			if err != nil {
				return err
			}

			var events []event.Event
			if ics {
				window := event.ExpandWindow{
					From:  fromDate.Time(),
					Until: fromDate.Time().AddDate(0, 0, opts.cfg.HorizonDays),
				}
				events, err = event.DecodeICS(bytes.NewReader(data), window)
			} else {
				events, err = event.DecodeJSON(bytes.NewReader(data))
			}
			if err != nil {
				return fmt.Errorf("decoding events: %w", err)
			}

			opts.log.Debug("Events decoded", logger.Fields{
				"count": len(events),
				"ics":   ics,
			})

			res := schedule.Group(events, opts.cfg.Categories,
				schedule.WithLocation(loc),
				schedule.WithLogger(opts.log),
				schedule.WithMetrics(opts.metrics),
			)
			opts.metrics.RecordTiming("events.group", time.Since(start))

			if next, ok := res.Next(fromDate); ok {
				opts.log.Info("Next collection", logger.Fields{
					"date":     next.Date.String(),
					"keywords": next.Keywords,
				})
			}

			return opts.finish(cmd, res)
		},
	}

	cmd.Flags().StringVar(&input, "input", "-", "Event file, or - for stdin")
	cmd.Flags().BoolVar(&ics, "ics", false, "Read an iCalendar file instead of a JSON event list")
	cmd.Flags().StringVar(&from, "from", "", "First day of the schedule, YYYY-MM-DD (default: today)")
	cmd.Flags().IntVar(&horizonDays, "horizon-days", config.DefaultHorizonDays, "Days ahead to expand recurring iCalendar events")

	return cmd
}

func newConfigCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Marshal(opts.cfg)
			if err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

// readInput reads the whole input file, or stdin when path is "-" or empty.
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}

	path, err := storage.ExpandPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return data, nil
}

// parseFrom reads --from, defaulting to today in loc (or local time).
func parseFrom(s string, loc *time.Location) (date.Date, error) {
	if strings.TrimSpace(s) == "" {
		now := time.Now()
		if loc != nil {
			now = now.In(loc)
		}
		return date.Of(now), nil
	}
	d, err := date.Parse(strings.TrimSpace(s))
	if err != nil {
		return date.Date{}, fmt.Errorf("invalid --from: %w", err)
	}
	return d, nil
}

// Run executes the CLI with args and returns the process exit code.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrNothingResolved):
		return ExitNoCollection
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitError
	}
}

// Execute runs the CLI
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
