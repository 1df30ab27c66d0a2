package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/ritual/internal/calendar"
	"github.com/roach88/ritual/internal/progress"
	"github.com/roach88/ritual/internal/schedule"
)

// DueHabit is a habit that still needs doing.
type DueHabit struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Schedule string `json:"schedule"`
}

// DueResult lists the habits needing a reminder on Date.
type DueResult struct {
	Date   calendar.Date `json:"date"`
	Habits []DueHabit    `json:"habits"`
}

// NewDueCommand creates the due command.
func NewDueCommand(rootOpts *RootOptions) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "due",
		Short: "List habits that still need doing on a day",
		Long: `List active habits that are expected on --date (default today) and not
yet completed. Times-per-week habits drop off once the week's quota is met.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDue(rootOpts, date, cmd)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day to check (YYYY-MM-DD, default today)")

	return cmd
}

func runDue(opts *RootOptions, dateArg string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	ctx := cmd.Context()

	loc, err := opts.location()
	if err != nil {
		return f.Fail(ExitCommandError, CodeBadArgument, err.Error(), nil)
	}
	day, err := opts.dateArg(dateArg, loc)
	if err != nil {
		return f.Fail(ExitCommandError, CodeBadArgument, fmt.Sprintf("--date: %v", err), nil)
	}

	st, err := opts.openStore()
	if err != nil {
		return f.Fail(ExitCommandError, CodeStore, err.Error(), nil)
	}
	defer st.Close()

	habits, err := st.ListHabits(ctx, true)
	if err != nil {
		return f.Fail(ExitCommandError, CodeStore, err.Error(), nil)
	}

	ev := progress.NewEvaluator(loc)
	week := schedule.WeekOf(day)
	result := DueResult{Date: day, Habits: []DueHabit{}}
	for _, h := range habits {
		logs, err := st.LogsInWindow(ctx, h.ID, week.Start, week.End())
		if err != nil {
			return f.Fail(ExitCommandError, CodeStore, err.Error(), nil)
		}
		if ev.NeedsReminder(h, logs, day.In(loc)) {
			result.Habits = append(result.Habits, DueHabit{ID: h.ID, Name: h.Name, Schedule: h.Schedule.String()})
		}
	}

	opts.logger().Debug("due habits",
		zap.Stringer("date", day),
		zap.Int("active", len(habits)),
		zap.Int("due", len(result.Habits)),
	)

	return f.Success(result, func(w io.Writer) {
		if len(result.Habits) == 0 {
			fmt.Fprintf(w, "Nothing due on %s.\n", day)
			return
		}
		fmt.Fprintf(w, "Due on %s:\n", day)
		for _, h := range result.Habits {
			name := h.Name
			if name == "" {
				name = h.ID
			}
			fmt.Fprintf(w, "  %s  %s\n", name, h.Schedule)
		}
	})
}
