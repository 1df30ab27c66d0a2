package completion

import (
	"sort"
	"time"

	"github.com/roach88/ritual/internal/calendar"
	"github.com/roach88/ritual/internal/habit"
)

// IsLogCompleted reports whether one log satisfies the habit's kind.
//
//   - Binary: value present and > 0.
//   - Numeric with a daily target: value present and >= target.
//   - Numeric without a target: value present and > 0.
func IsLogCompleted(l habit.Log, h habit.Habit) bool {
	if l.Value == nil {
		return false
	}
	v := *l.Value

	switch k := h.Kind.(type) {
	case habit.Binary:
		return v > 0
	case habit.Numeric:
		if k.DailyTarget != nil {
			return v >= *k.DailyTarget
		}
		return v > 0
	default:
		return false
	}
}

// LogsOnDate returns the habit's logs whose calendar day is d.
// Each log's day is resolved in its own zone, or in loc when it has none.
func LogsOnDate(h habit.Habit, logs []habit.Log, d calendar.Date, loc *time.Location) []habit.Log {
	var out []habit.Log
	for _, l := range logs {
		if l.HabitID == h.ID && l.Day(loc) == d {
			out = append(out, l)
		}
	}
	return out
}

// IsDayCompleted reports whether the calendar day containing day (resolved in
// loc) has at least one completed log for the habit.
func IsDayCompleted(h habit.Habit, logs []habit.Log, day time.Time, loc *time.Location) bool {
	return IsDateCompleted(h, logs, calendar.DateOf(day, loc), loc)
}

// IsDateCompleted is IsDayCompleted for an already resolved calendar day.
func IsDateCompleted(h habit.Habit, logs []habit.Log, d calendar.Date, loc *time.Location) bool {
	for _, l := range logs {
		if l.HabitID == h.ID && l.Day(loc) == d && IsLogCompleted(l, h) {
			return true
		}
	}
	return false
}

// DaySet is a set of calendar days.
type DaySet map[calendar.Date]struct{}

// CompletedDays returns the distinct calendar days with at least one
// completed log for the habit. Two completed logs on one day yield one entry.
func CompletedDays(h habit.Habit, logs []habit.Log, loc *time.Location) DaySet {
	days := make(DaySet)
	for _, l := range logs {
		if l.HabitID == h.ID && IsLogCompleted(l, h) {
			days[l.Day(loc)] = struct{}{}
		}
	}
	return days
}

// Has reports whether d is in the set.
func (s DaySet) Has(d calendar.Date) bool {
	_, ok := s[d]
	return ok
}

// CountIn counts members in [from, to].
func (s DaySet) CountIn(from, to calendar.Date) int {
	n := 0
	for d := range s {
		if !d.Before(from) && !d.After(to) {
			n++
		}
	}
	return n
}

// Sorted returns the members in ascending order.
func (s DaySet) Sorted() []calendar.Date {
	days := make([]calendar.Date, 0, len(s))
	for d := range s {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}
