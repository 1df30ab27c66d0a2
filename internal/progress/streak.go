package progress

import (
	"time"

	"github.com/roach88/ritual/internal/calendar"
	"github.com/roach88/ritual/internal/completion"
	"github.com/roach88/ritual/internal/habit"
	"github.com/roach88/ritual/internal/schedule"
)

// StreakResult holds streak lengths. Units are expected days for Daily and
// DaysOfWeek habits and weeks for TimesPerWeek habits.
type StreakResult struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// Streak computes streaks from the habit's start day through asOf.
//
// A missed expected day (or a week below quota) resets the current streak,
// except asOf itself (or asOf's week) which is still in progress and only
// extends the streak once completed.
func Streak(h habit.Habit, logs []habit.Log, asOf calendar.Date, loc *time.Location) StreakResult {
	lo, hi, ok := schedule.Clamp(h, schedule.StartDay(h, loc), asOf, loc)
	if !ok {
		return StreakResult{}
	}
	completed := completion.CompletedDays(h, logs, loc)

	switch s := h.Schedule.(type) {
	case habit.Daily, habit.DaysOfWeek:
		var r StreakResult
		for _, d := range schedule.ExpectedDays(h, lo, hi, loc) {
			switch {
			case completed.Has(d):
				r.Current++
				r.Longest = max(r.Longest, r.Current)
			case d == asOf:
			default:
				r.Current = 0
			}
		}
		return r
	case habit.TimesPerWeek:
		var r StreakResult
		for _, w := range schedule.Weeks(lo, hi) {
			switch {
			case completed.CountIn(w.From, w.To) >= s.Target:
				r.Current++
				r.Longest = max(r.Longest, r.Current)
			case w.Contains(asOf):
			default:
				r.Current = 0
			}
		}
		return r
	default:
		return StreakResult{}
	}
}
