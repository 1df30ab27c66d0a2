package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/ritual/internal/calendar"
	"github.com/roach88/ritual/internal/completion"
	"github.com/roach88/ritual/internal/habit"
)

// LogOptions holds flags for the log command.
type LogOptions struct {
	*RootOptions
	Value       float64
	NoValue     bool
	LogTimezone string
}

// LogResult describes a recorded log.
type LogResult struct {
	ID        string        `json:"id"`
	HabitID   string        `json:"habit_id"`
	Date      calendar.Date `json:"date"`
	Timezone  string        `json:"timezone"`
	Value     *float64      `json:"value"`
	Inserted  bool          `json:"inserted"`
	Completes bool          `json:"completes"`
}

// NewLogCommand creates the log command.
func NewLogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "log <habit-id> <YYYY-MM-DD>",
		Short: "Record a log for a habit",
		Long: `Record a log for the given calendar day.

The day is pinned to the log's timezone (--log-tz, default --tz): a log made
for 2024-01-05 in Pacific/Kiritimati stays on 2024-01-05 when progress is
later computed from New York. Logging the same entry twice is a no-op.

Examples:
  ritual log gym 2024-01-05
  ritual log water 2024-01-05 --value 6
  ritual log gym 2024-01-05 --log-tz Pacific/Kiritimati`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().Float64Var(&opts.Value, "value", 1, "logged value (binary habits complete on any value above zero)")
	cmd.Flags().BoolVar(&opts.NoValue, "no-value", false, "record the log without a value")
	cmd.Flags().StringVar(&opts.LogTimezone, "log-tz", "", "timezone the day belongs to (default --tz)")

	return cmd
}

func runLog(opts *LogOptions, habitID, dateArg string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	day, err := calendar.ParseDate(dateArg)
	if err != nil {
		return f.Fail(ExitCommandError, CodeBadArgument, err.Error(), nil)
	}
	if opts.NoValue && cmd.Flags().Changed("value") {
		return f.Fail(ExitCommandError, CodeBadArgument, "--value and --no-value are mutually exclusive", nil)
	}

	loc, err := opts.location()
	if err != nil {
		return f.Fail(ExitCommandError, CodeBadArgument, err.Error(), nil)
	}
	if opts.LogTimezone != "" {
		if loc, err = calendar.LoadZone(opts.LogTimezone); err != nil {
			return f.Fail(ExitCommandError, CodeBadArgument, err.Error(), nil)
		}
	}

	st, h, err := opts.loadHabit(cmd.Context(), f, habitID)
	if err != nil {
		return err
	}
	defer st.Close()

	value := habit.Float(opts.Value)
	if opts.NoValue {
		value = nil
	}
	l := habit.NewLog(h.ID, day, loc, value)

	inserted, err := st.PutLog(cmd.Context(), l)
	if err != nil {
		return f.Fail(ExitCommandError, CodeStore, err.Error(), nil)
	}

	opts.logger().Debug("recorded log",
		zap.String("habit_id", h.ID),
		zap.String("log_id", l.ID),
		zap.Stringer("date", day),
		zap.Bool("inserted", inserted),
	)

	result := LogResult{
		ID:        l.ID,
		HabitID:   h.ID,
		Date:      day,
		Timezone:  calendar.ZoneName(loc),
		Value:     value,
		Inserted:  inserted,
		Completes: completion.IsLogCompleted(l, h),
	}
	return f.Success(result, func(w io.Writer) {
		verb := "logged"
		if !inserted {
			verb = "already logged"
		}
		fmt.Fprintf(w, "✓ %s %s on %s (%s)\n", verb, h.ID, day, result.Timezone)
		if !result.Completes {
			fmt.Fprintln(w, "  this log does not complete the day")
		}
	})
}
