package progress

import (
	"time"

	"github.com/roach88/ritual/internal/calendar"
	"github.com/roach88/ritual/internal/completion"
	"github.com/roach88/ritual/internal/habit"
	"github.com/roach88/ritual/internal/schedule"
)

// Evaluator supplies a default zone to the package functions. It holds no
// other state and is safe for concurrent use.
type Evaluator struct {
	Location *time.Location
}

// NewEvaluator returns an Evaluator for loc. A nil loc means UTC.
func NewEvaluator(loc *time.Location) Evaluator {
	if loc == nil {
		loc = time.UTC
	}
	return Evaluator{Location: loc}
}

func (e Evaluator) loc() *time.Location {
	if e.Location == nil {
		return time.UTC
	}
	return e.Location
}

// Today returns the calendar day containing now in the evaluator's zone.
func (e Evaluator) Today(now time.Time) calendar.Date {
	return calendar.DateOf(now, e.loc())
}

// IsExpectedDay is schedule.IsExpectedDay in the evaluator's zone.
func (e Evaluator) IsExpectedDay(h habit.Habit, day time.Time) bool {
	return schedule.IsExpectedDay(h, day, e.loc())
}

// CountExpectedDays is schedule.CountExpectedDays in the evaluator's zone.
func (e Evaluator) CountExpectedDays(h habit.Habit, rangeStart, rangeEnd time.Time) int {
	return schedule.CountExpectedDays(h, rangeStart, rangeEnd, e.loc())
}

// IsDayCompleted is completion.IsDayCompleted with the evaluator's zone as fallback.
func (e Evaluator) IsDayCompleted(h habit.Habit, logs []habit.Log, day time.Time) bool {
	return completion.IsDayCompleted(h, logs, day, e.loc())
}

// DailyProgress returns 1 when day is completed, else 0.
func (e Evaluator) DailyProgress(h habit.Habit, logs []habit.Log, day time.Time) float64 {
	return DailyProgress(h, logs, day, e.loc())
}

// WeeklyProgress returns (completed, target) for the week containing day.
func (e Evaluator) WeeklyProgress(h habit.Habit, logs []habit.Log, day time.Time) (int, int) {
	return WeeklyProgress(h, logs, day, e.loc())
}

// RangeProgress returns the completion rate over the days of [rangeStart, rangeEnd].
func (e Evaluator) RangeProgress(h habit.Habit, logs []habit.Log, rangeStart, rangeEnd time.Time) float64 {
	return RangeProgress(h, logs, rangeStart, rangeEnd, e.loc())
}

// Streak returns the current and longest streaks as of asOf.
func (e Evaluator) Streak(h habit.Habit, logs []habit.Log, asOf calendar.Date) StreakResult {
	return Streak(h, logs, asOf, e.loc())
}

// NeedsReminder reports whether the habit still needs doing on now's day.
func (e Evaluator) NeedsReminder(h habit.Habit, logs []habit.Log, now time.Time) bool {
	return NeedsReminder(h, logs, now, e.loc())
}

// Summarize bundles the range rate and streaks for reporting.
func (e Evaluator) Summarize(h habit.Habit, logs []habit.Log, from, to calendar.Date) Summary {
	return Summarize(h, logs, from, to, e.loc())
}
