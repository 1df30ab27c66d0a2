package schedule

import (
	"time"

	"github.com/roach88/ritual/internal/calendar"
	"github.com/roach88/ritual/internal/habit"
)

// StartDay returns the habit's first calendar day in loc.
func StartDay(h habit.Habit, loc *time.Location) calendar.Date {
	return calendar.DateOf(h.StartDate, loc)
}

// EndDay returns the habit's last calendar day in loc, if it has one.
func EndDay(h habit.Habit, loc *time.Location) (calendar.Date, bool) {
	if h.EndDate == nil {
		return calendar.Date{}, false
	}
	return calendar.DateOf(*h.EndDate, loc), true
}

// IsExpectedDay reports whether the habit expects tracking on the calendar
// day containing day, resolved in loc.
func IsExpectedDay(h habit.Habit, day time.Time, loc *time.Location) bool {
	return IsExpectedDate(h, calendar.DateOf(day, loc), loc)
}

// IsExpectedDate is IsExpectedDay for an already resolved calendar day.
//
//   - Daily: every day from the start day on.
//   - DaysOfWeek: days whose ISO weekday is in the set, from the start day on.
//   - TimesPerWeek: every day from the start day on; the user may log any day.
func IsExpectedDate(h habit.Habit, d calendar.Date, loc *time.Location) bool {
	if d.Before(StartDay(h, loc)) {
		return false
	}
	switch s := h.Schedule.(type) {
	case habit.Daily:
		return true
	case habit.DaysOfWeek:
		return s.Days.Contains(d.Weekday())
	case habit.TimesPerWeek:
		return true
	default:
		return false
	}
}

// Clamp narrows [from, to] to [max(start, from), min(end ?? to, to)].
// ok is false when the clamped range is empty.
func Clamp(h habit.Habit, from, to calendar.Date, loc *time.Location) (calendar.Date, calendar.Date, bool) {
	lo := calendar.MaxDate(StartDay(h, loc), from)
	hi := to
	if end, ok := EndDay(h, loc); ok {
		hi = calendar.MinDate(end, to)
	}
	if lo.After(hi) {
		return lo, hi, false
	}
	return lo, hi, true
}

// CountExpectedDays counts the expected days between the calendar days
// containing rangeStart and rangeEnd (inclusive), after clamping to the
// habit's bounds.
//
// For TimesPerWeek the count is weeksInRange * target, where weeksInRange is
// the number of Monday-anchored weeks the clamped range touches.
func CountExpectedDays(h habit.Habit, rangeStart, rangeEnd time.Time, loc *time.Location) int {
	return CountExpectedDates(h, calendar.DateOf(rangeStart, loc), calendar.DateOf(rangeEnd, loc), loc)
}

// CountExpectedDates is CountExpectedDays over resolved calendar days.
func CountExpectedDates(h habit.Habit, from, to calendar.Date, loc *time.Location) int {
	lo, hi, ok := Clamp(h, from, to, loc)
	if !ok {
		return 0
	}

	switch s := h.Schedule.(type) {
	case habit.Daily:
		return calendar.DaysInclusive(lo, hi)
	case habit.DaysOfWeek:
		n := 0
		for d := lo; !d.After(hi); d = d.Next() {
			if s.Days.Contains(d.Weekday()) {
				n++
			}
		}
		return n
	case habit.TimesPerWeek:
		return WeeksInRange(lo, hi) * s.Target
	default:
		return 0
	}
}

// ExpectedDays lists the expected days in the clamped range in ascending order.
// For TimesPerWeek every day of the range is listed.
func ExpectedDays(h habit.Habit, from, to calendar.Date, loc *time.Location) []calendar.Date {
	lo, hi, ok := Clamp(h, from, to, loc)
	if !ok {
		return nil
	}
	days := make([]calendar.Date, 0, calendar.DaysInclusive(lo, hi))
	for d := lo; !d.After(hi); d = d.Next() {
		if IsExpectedDate(h, d, loc) {
			days = append(days, d)
		}
	}
	return days
}
