package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/ritual/internal/calendar"
	"github.com/roach88/ritual/internal/progress"
	"github.com/roach88/ritual/internal/schedule"
)

// ProgressOptions holds flags for the progress command.
type ProgressOptions struct {
	*RootOptions
	From string
	To   string
}

// NewProgressCommand creates the progress command.
func NewProgressCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProgressOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "progress <habit-id>",
		Short: "Show completion over a date range",
		Long: `Show the completion rate of a habit between two calendar days (inclusive),
with the expected and completed counts behind it and the streaks as of the
last day. The range is clamped to the habit's start and end days.

--from defaults to the habit's start day, --to to today.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProgress(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "", "first day of the range (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.To, "to", "", "last day of the range (YYYY-MM-DD)")

	return cmd
}

func runProgress(opts *ProgressOptions, habitID string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	loc, err := opts.location()
	if err != nil {
		return f.Fail(ExitCommandError, CodeBadArgument, err.Error(), nil)
	}
	to, err := opts.dateArg(opts.To, loc)
	if err != nil {
		return f.Fail(ExitCommandError, CodeBadArgument, fmt.Sprintf("--to: %v", err), nil)
	}

	st, h, err := opts.loadHabit(cmd.Context(), f, habitID)
	if err != nil {
		return err
	}
	defer st.Close()

	start := schedule.StartDay(h, loc)
	from := start
	if opts.From != "" {
		if from, err = calendar.ParseDate(opts.From); err != nil {
			return f.Fail(ExitCommandError, CodeBadArgument, fmt.Sprintf("--from: %v", err), nil)
		}
	}
	if to.Before(from) {
		return f.Fail(ExitCommandError, CodeBadArgument, fmt.Sprintf("--to %s is before --from %s", to, from), nil)
	}

	// Streaks look back to the start day, so read from there.
	logs, err := st.LogsInWindow(cmd.Context(), h.ID, calendar.MinDate(from, start), to)
	if err != nil {
		return f.Fail(ExitCommandError, CodeStore, err.Error(), nil)
	}

	summary := progress.NewEvaluator(loc).Summarize(h, logs, from, to)
	return f.Success(summary, func(w io.Writer) {
		fmt.Fprintf(w, "%s  %s\n", h.ID, summary.Schedule)
		fmt.Fprintf(w, "  %s .. %s\n", summary.From, summary.To)
		fmt.Fprintf(w, "  progress  %d/%d (%.1f%%)\n", summary.Completed, summary.Expected, summary.Rate*100)
		fmt.Fprintf(w, "  streak    current %d, longest %d\n", summary.Streak.Current, summary.Streak.Longest)
	})
}
