package progress

import (
	"github.com/roach88/ritual/internal/calendar"
	"github.com/roach88/ritual/internal/habit"
)

// Prefilter keeps the habit's logs whose raw timestamp falls within
// calendar.DayWindow(from, to).
//
// The window is built from the days alone, not from any query zone, so a
// log pinned anywhere between UTC-12 and UTC+14 to a day in [from, to]
// survives. Day identity is still decided per log with its own zone, and
// passing unfiltered logs to the other functions gives the same results.
func Prefilter(logs []habit.Log, habitID string, from, to calendar.Date) []habit.Log {
	lo, hi := calendar.DayWindow(from, to)
	var out []habit.Log
	for _, l := range logs {
		if l.HabitID == habitID && calendar.InWindow(l.Date, lo, hi) {
			out = append(out, l)
		}
	}
	return out
}
