package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/ritual/internal/calendar"
	"github.com/roach88/ritual/internal/progress"
	"github.com/roach88/ritual/internal/schedule"
)

// WeekResult is the weekly view of one habit.
type WeekResult struct {
	HabitID   string        `json:"habit_id"`
	Date      calendar.Date `json:"date"`
	WeekStart calendar.Date `json:"week_start"`
	WeekEnd   calendar.Date `json:"week_end"`
	Completed int           `json:"completed"`
	Target    int           `json:"target"`
	Expected  bool          `json:"expected"` // whether Date is expected
	Daily     float64       `json:"daily"`    // 1 when Date is completed
}

// NewWeekCommand creates the week command.
func NewWeekCommand(rootOpts *RootOptions) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "week <habit-id>",
		Short: "Show progress for the week containing a day",
		Long: `Show (completed, target) for the Monday-to-Sunday week containing --date
(default today), and whether that day itself is expected and done.

For times-per-week habits the target is the weekly quota and completions
above it are not counted.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWeek(rootOpts, args[0], date, cmd)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "a day in the week (YYYY-MM-DD, default today)")

	return cmd
}

func runWeek(opts *RootOptions, habitID, dateArg string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	loc, err := opts.location()
	if err != nil {
		return f.Fail(ExitCommandError, CodeBadArgument, err.Error(), nil)
	}
	day, err := opts.dateArg(dateArg, loc)
	if err != nil {
		return f.Fail(ExitCommandError, CodeBadArgument, fmt.Sprintf("--date: %v", err), nil)
	}

	st, h, err := opts.loadHabit(cmd.Context(), f, habitID)
	if err != nil {
		return err
	}
	defer st.Close()

	week := schedule.WeekOf(day)
	logs, err := st.LogsInWindow(cmd.Context(), h.ID, week.Start, week.End())
	if err != nil {
		return f.Fail(ExitCommandError, CodeStore, err.Error(), nil)
	}

	ev := progress.NewEvaluator(loc)
	at := day.In(loc)
	completed, target := ev.WeeklyProgress(h, logs, at)
	result := WeekResult{
		HabitID:   h.ID,
		Date:      day,
		WeekStart: week.Start,
		WeekEnd:   week.End(),
		Completed: completed,
		Target:    target,
		Expected:  ev.IsExpectedDay(h, at),
		Daily:     ev.DailyProgress(h, logs, at),
	}

	return f.Success(result, func(w io.Writer) {
		fmt.Fprintf(w, "%s  week of %s: %d/%d\n", h.ID, result.WeekStart, result.Completed, result.Target)
		switch {
		case result.Daily == 1:
			fmt.Fprintf(w, "  %s: done\n", day)
		case result.Expected:
			fmt.Fprintf(w, "  %s: not done\n", day)
		default:
			fmt.Fprintf(w, "  %s: not expected\n", day)
		}
	})
}
