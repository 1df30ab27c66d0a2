package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/roach88/ritual/internal/calendar"
	"github.com/roach88/ritual/internal/config"
	"github.com/roach88/ritual/internal/habit"
	"github.com/roach88/ritual/internal/store"
)

// RootOptions holds global flags for all commands.
//
// Timezone, Database and Format start as flag values and are filled from
// the config file and environment before a subcommand runs, unless the
// flag was given explicitly.
type RootOptions struct {
	ConfigPath string
	Verbose    bool
	Format     string // "json" | "text"
	Timezone   string
	Database   string

	// Now supplies the current instant for commands that default to today.
	Now func() time.Time
	// Logger is built from the resolved settings. Nil discards.
	Logger *zap.Logger
}

// Version is reported by --version. Release builds override it with
// -ldflags "-X github.com/roach88/ritual/internal/cli.Version=...".
var Version = "0.1.0"

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the ritual CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{Now: time.Now})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ritual",
		Short:   "ritual - habit schedules and completion",
		Version: Version,
		Long: `Track recurring habits and answer what was expected, what was done,
and how far along each habit is, consistently across timezones.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	// Global flags
	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.ConfigPath, "config", "", "config file (.yaml, .yml or .toml)")
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	pf.StringVar(&opts.Format, "format", "text", "output format (json|text)")
	pf.StringVar(&opts.Timezone, "tz", "", "timezone calendar days are resolved in (default from config, UTC)")
	pf.StringVar(&opts.Database, "db", "", "SQLite database path (default from config, ritual.db)")

	// Add subcommands
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewLogCommand(opts))
	cmd.AddCommand(NewProgressCommand(opts))
	cmd.AddCommand(NewWeekCommand(opts))
	cmd.AddCommand(NewDueCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))

	return cmd
}

// resolve layers config file, environment and explicit flags, then builds
// the logger.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	flags := cmd.Flags()
	if !flags.Changed("format") {
		o.Format = cfg.Format
	}
	if !flags.Changed("tz") {
		o.Timezone = cfg.Timezone
	}
	if !flags.Changed("db") {
		o.Database = cfg.Database
	}

	if !isValidFormat(o.Format) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
	}
	if _, err := calendar.LoadZone(o.Timezone); err != nil {
		return WrapExitError(ExitCommandError, "invalid --tz", err)
	}

	level, err := cfg.Level()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid log level", err)
	}
	o.Logger = newLogger(cmd.ErrOrStderr(), level, o.Verbose)
	return nil
}

// newLogger writes JSON lines at level, or human-readable debug output when
// verbose. Logs go to w (stderr) so JSON results on stdout stay clean.
func newLogger(w io.Writer, level zapcore.Level, verbose bool) *zap.Logger {
	encoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	if verbose {
		level = zapcore.DebugLevel
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}
	return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(w), level))
}

func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{Format: o.Format, Writer: cmd.OutOrStdout()}
}

func (o *RootOptions) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o *RootOptions) location() (*time.Location, error) {
	return calendar.LoadZone(o.Timezone)
}

// today returns the current calendar day in loc.
func (o *RootOptions) today(loc *time.Location) calendar.Date {
	now := time.Now
	if o.Now != nil {
		now = o.Now
	}
	return calendar.DateOf(now(), loc)
}

func (o *RootOptions) openStore() (*store.Store, error) {
	if o.Database == "" {
		return nil, errors.New("no database configured (use --db or RITUAL_DB)")
	}
	return store.Open(o.Database, store.WithLogger(o.logger()))
}

// dateArg parses an optional YYYY-MM-DD flag value, defaulting to today.
func (o *RootOptions) dateArg(value string, loc *time.Location) (calendar.Date, error) {
	if value == "" {
		return o.today(loc), nil
	}
	return calendar.ParseDate(value)
}

// loadHabit opens the store and fetches one habit, turning the usual
// failures into command errors. The caller closes the store.
func (o *RootOptions) loadHabit(ctx context.Context, f *OutputFormatter, id string) (*store.Store, habit.Habit, error) {
	st, err := o.openStore()
	if err != nil {
		return nil, habit.Habit{}, f.Fail(ExitCommandError, CodeStore, err.Error(), nil)
	}
	h, err := st.GetHabit(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		st.Close()
		return nil, habit.Habit{}, f.Fail(ExitCommandError, CodeNotFound, fmt.Sprintf("habit not found: %s", id), nil)
	}
	if err != nil {
		st.Close()
		return nil, habit.Habit{}, f.Fail(ExitCommandError, CodeStore, err.Error(), nil)
	}
	return st, h, nil
}
