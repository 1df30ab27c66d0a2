package schedule

import "github.com/roach88/ritual/internal/calendar"

// Week is one Monday-anchored week intersected with a range.
type Week struct {
	Start calendar.Date // Monday of the week
	From  calendar.Date // first day of the week inside the range
	To    calendar.Date // last day of the week inside the range
}

// End returns the Sunday of the week.
func (w Week) End() calendar.Date {
	return w.Start.AddDays(6)
}

// Contains reports whether d falls inside the week's in-range portion.
func (w Week) Contains(d calendar.Date) bool {
	return !d.Before(w.From) && !d.After(w.To)
}

// WeeksInRange counts the Monday-anchored weeks touched by [from, to],
// inclusive on both ends. It is 0 when to is before from.
func WeeksInRange(from, to calendar.Date) int {
	if to.Before(from) {
		return 0
	}
	return calendar.DaysBetween(from.StartOfWeek(), to.StartOfWeek())/7 + 1
}

// Weeks splits [from, to] into the Monday-anchored weeks it touches.
func Weeks(from, to calendar.Date) []Week {
	n := WeeksInRange(from, to)
	if n == 0 {
		return nil
	}
	weeks := make([]Week, 0, n)
	for start := from.StartOfWeek(); !start.After(to); start = start.AddWeeks(1) {
		weeks = append(weeks, Week{
			Start: start,
			From:  calendar.MaxDate(start, from),
			To:    calendar.MinDate(start.AddDays(6), to),
		})
	}
	return weeks
}

// WeekOf returns the full Monday-to-Sunday week containing d.
func WeekOf(d calendar.Date) Week {
	start := d.StartOfWeek()
	return Week{Start: start, From: start, To: start.AddDays(6)}
}
