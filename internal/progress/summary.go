package progress

import (
	"time"

	"github.com/roach88/ritual/internal/calendar"
	"github.com/roach88/ritual/internal/habit"
)

// Summary bundles range figures for reporting.
type Summary struct {
	HabitID   string        `json:"habit_id"`
	Schedule  string        `json:"schedule"`
	From      calendar.Date `json:"from"`
	To        calendar.Date `json:"to"`
	Expected  int           `json:"expected"`
	Completed int           `json:"completed"`
	Rate      float64       `json:"rate"`
	Streak    StreakResult  `json:"streak"`
}

// Summarize computes the range rate over [from, to] with its numerator and
// denominator, plus streaks as of to. Completed is capped per week for
// TimesPerWeek habits, so Completed/Expected always equals Rate.
func Summarize(h habit.Habit, logs []habit.Log, from, to calendar.Date, loc *time.Location) Summary {
	done, expected := rangeCounts(h, logs, from, to, loc)
	return Summary{
		HabitID:   h.ID,
		Schedule:  h.Schedule.String(),
		From:      from,
		To:        to,
		Expected:  expected,
		Completed: done,
		Rate:      ratio(done, expected),
		Streak:    Streak(h, logs, to, loc),
	}
}
