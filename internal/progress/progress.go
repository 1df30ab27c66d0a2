package progress

import (
	"time"

	"github.com/roach88/ritual/internal/calendar"
	"github.com/roach88/ritual/internal/completion"
	"github.com/roach88/ritual/internal/habit"
	"github.com/roach88/ritual/internal/schedule"
)

// DailyProgress returns 1.0 when the calendar day containing day (in loc)
// has a completed log for the habit, and 0.0 otherwise.
func DailyProgress(h habit.Habit, logs []habit.Log, day time.Time, loc *time.Location) float64 {
	return DailyProgressOn(h, logs, calendar.DateOf(day, loc), loc)
}

// DailyProgressOn is DailyProgress for a resolved calendar day.
func DailyProgressOn(h habit.Habit, logs []habit.Log, d calendar.Date, loc *time.Location) float64 {
	if completion.IsDateCompleted(h, logs, d, loc) {
		return 1
	}
	return 0
}

// WeeklyProgress reports progress within the Monday-anchored week containing
// day, bounded by the habit's start and end days.
//
// For TimesPerWeek it returns the distinct completed days capped at the
// quota, and the quota. For the other schedules the target is the number of
// expected days in the week and only completed expected days count.
func WeeklyProgress(h habit.Habit, logs []habit.Log, day time.Time, loc *time.Location) (completed, target int) {
	return WeeklyProgressOn(h, logs, calendar.DateOf(day, loc), loc)
}

// WeeklyProgressOn is WeeklyProgress for a resolved calendar day.
func WeeklyProgressOn(h habit.Habit, logs []habit.Log, d calendar.Date, loc *time.Location) (completed, target int) {
	w := schedule.WeekOf(d)
	done := completion.CompletedDays(h, logs, loc)

	if s, ok := h.Schedule.(habit.TimesPerWeek); ok {
		lo, hi, ok := schedule.Clamp(h, w.From, w.To, loc)
		if !ok {
			return 0, s.Target
		}
		return min(done.CountIn(lo, hi), s.Target), s.Target
	}

	for _, e := range schedule.ExpectedDays(h, w.From, w.To, loc) {
		target++
		if done.Has(e) {
			completed++
		}
	}
	return completed, target
}

// RangeProgress returns the completion rate in [0, 1] between the calendar
// days containing rangeStart and rangeEnd (inclusive), clamped to the habit's
// bounds. It is 0 when no day is expected.
//
//   - Daily, DaysOfWeek: completed expected days / expected days.
//   - TimesPerWeek: sum over the weeks touched of min(unique completed days
//     in the week's in-range part, target), divided by weeks * target.
func RangeProgress(h habit.Habit, logs []habit.Log, rangeStart, rangeEnd time.Time, loc *time.Location) float64 {
	return RangeProgressBetween(h, logs, calendar.DateOf(rangeStart, loc), calendar.DateOf(rangeEnd, loc), loc)
}

// RangeProgressBetween is RangeProgress over resolved calendar days.
func RangeProgressBetween(h habit.Habit, logs []habit.Log, from, to calendar.Date, loc *time.Location) float64 {
	done, expected := rangeCounts(h, logs, from, to, loc)
	return ratio(done, expected)
}

// rangeCounts returns the numerator and denominator of the range rate.
func rangeCounts(h habit.Habit, logs []habit.Log, from, to calendar.Date, loc *time.Location) (done, expected int) {
	lo, hi, ok := schedule.Clamp(h, from, to, loc)
	if !ok {
		return 0, 0
	}
	completed := completion.CompletedDays(h, logs, loc)

	switch s := h.Schedule.(type) {
	case habit.Daily, habit.DaysOfWeek:
		for _, d := range schedule.ExpectedDays(h, lo, hi, loc) {
			expected++
			if completed.Has(d) {
				done++
			}
		}
		return done, expected
	case habit.TimesPerWeek:
		weeks := schedule.Weeks(lo, hi)
		for _, w := range weeks {
			done += min(completed.CountIn(w.From, w.To), s.Target)
		}
		return done, len(weeks) * s.Target
	default:
		return 0, 0
	}
}

func ratio(done, expected int) float64 {
	if expected <= 0 {
		return 0
	}
	return clamp01(float64(done) / float64(expected))
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}
