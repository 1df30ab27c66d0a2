package harness

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/roach88/ritual/internal/calendar"
	"github.com/roach88/ritual/internal/completion"
	"github.com/roach88/ritual/internal/progress"
	"github.com/roach88/ritual/internal/schedule"
	"github.com/roach88/ritual/internal/store"
)

// fractionTolerance absorbs the rounding of expectations written with four
// decimals, such as 0.6667 for 2/3.
const fractionTolerance = 1e-4

// evaluator answers checks from store snapshots.
type evaluator struct {
	store *store.Store
	loc   *time.Location
}

func (e *evaluator) evaluate(ctx context.Context, c Check) (CheckResult, error) {
	loc := e.loc
	if c.Timezone != "" {
		var err error
		if loc, err = calendar.LoadZone(c.Timezone); err != nil {
			return CheckResult{}, err
		}
	}

	h, err := e.store.GetHabit(ctx, c.Habit)
	if err != nil {
		return CheckResult{}, err
	}

	res := CheckResult{Type: c.Type, Habit: c.Habit}
	date, from, to := parseOptional(c.Date), parseOptional(c.From), parseOptional(c.To)

	switch c.Type {
	case CheckRangeProgress:
		logs, err := e.store.LogsInWindow(ctx, h.ID, from, to)
		if err != nil {
			return res, err
		}
		got := progress.RangeProgressBetween(h, logs, from, to, loc)
		res.Got = formatFraction(got)
		res.Pass, res.Message = fractionMatches(got, *c.Expect)

	case CheckExpectedDays:
		got := schedule.CountExpectedDates(h, from, to, loc)
		res.Got = strconv.Itoa(got)
		res.Pass, res.Message = intMatches("count", got, *c.Count)

	case CheckDailyProgress:
		logs, err := e.store.LogsInWindow(ctx, h.ID, date, date)
		if err != nil {
			return res, err
		}
		got := progress.DailyProgressOn(h, logs, date, loc)
		res.Got = formatFraction(got)
		res.Pass, res.Message = fractionMatches(got, *c.Expect)

	case CheckWeeklyProgress:
		week := schedule.WeekOf(date)
		logs, err := e.store.LogsInWindow(ctx, h.ID, week.Start, week.End())
		if err != nil {
			return res, err
		}
		done, target := progress.WeeklyProgressOn(h, logs, date, loc)
		res.Got = fmt.Sprintf("%d/%d", done, target)
		res.Pass = done == *c.Completed && target == *c.Target
		if !res.Pass {
			res.Message = fmt.Sprintf("expected %d/%d, got %s", *c.Completed, *c.Target, res.Got)
		}

	case CheckIsExpected:
		got := schedule.IsExpectedDate(h, date, loc)
		res.Got = strconv.FormatBool(got)
		res.Pass, res.Message = boolMatches(got, *c.Want)

	case CheckDayCompleted:
		logs, err := e.store.LogsInWindow(ctx, h.ID, date, date)
		if err != nil {
			return res, err
		}
		got := completion.IsDateCompleted(h, logs, date, loc)
		res.Got = strconv.FormatBool(got)
		res.Pass, res.Message = boolMatches(got, *c.Want)

	case CheckNeedsReminder:
		week := schedule.WeekOf(date)
		logs, err := e.store.LogsInWindow(ctx, h.ID, week.Start, week.End())
		if err != nil {
			return res, err
		}
		got := progress.NeedsReminder(h, logs, date.In(loc), loc)
		res.Got = strconv.FormatBool(got)
		res.Pass, res.Message = boolMatches(got, *c.Want)

	case CheckStreak:
		logs, err := e.store.LogsForHabit(ctx, h.ID)
		if err != nil {
			return res, err
		}
		got := progress.Streak(h, logs, date, loc)
		res.Got = fmt.Sprintf("current=%d longest=%d", got.Current, got.Longest)
		res.Pass = got.Current == *c.Current && got.Longest == *c.Longest
		if !res.Pass {
			res.Message = fmt.Sprintf("expected current=%d longest=%d, got %s", *c.Current, *c.Longest, res.Got)
		}

	default:
		return res, fmt.Errorf("unknown check type %q", c.Type)
	}

	return res, nil
}

// parseOptional parses a date validated by LoadScenario; empty gives the zero Date.
func parseOptional(s string) calendar.Date {
	if s == "" {
		return calendar.Date{}
	}
	d, _ := calendar.ParseDate(s)
	return d
}

func formatFraction(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}

func fractionMatches(got, want float64) (bool, string) {
	if math.Abs(got-want) <= fractionTolerance {
		return true, ""
	}
	return false, fmt.Sprintf("expected %s, got %s", formatFraction(want), formatFraction(got))
}

func intMatches(what string, got, want int) (bool, string) {
	if got == want {
		return true, ""
	}
	return false, fmt.Sprintf("expected %s %d, got %d", what, want, got)
}

func boolMatches(got, want bool) (bool, string) {
	if got == want {
		return true, ""
	}
	return false, fmt.Sprintf("expected %t, got %t", want, got)
}
