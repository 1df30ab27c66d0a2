package progress

import (
	"time"

	"github.com/roach88/ritual/internal/calendar"
	"github.com/roach88/ritual/internal/completion"
	"github.com/roach88/ritual/internal/habit"
	"github.com/roach88/ritual/internal/schedule"
)

// NeedsReminder reports whether a reminder should still fire for the habit on
// the calendar day containing now.
//
// It is false for inactive habits, days outside the habit's bounds, days the
// schedule does not expect, and days already completed. TimesPerWeek habits
// also stop needing reminders once the week's quota is met.
func NeedsReminder(h habit.Habit, logs []habit.Log, now time.Time, loc *time.Location) bool {
	d := calendar.DateOf(now, loc)
	if !h.IsActive {
		return false
	}
	if _, _, ok := schedule.Clamp(h, d, d, loc); !ok {
		return false
	}
	if !schedule.IsExpectedDate(h, d, loc) {
		return false
	}
	if completion.IsDateCompleted(h, logs, d, loc) {
		return false
	}
	if _, ok := h.Schedule.(habit.TimesPerWeek); ok {
		done, target := WeeklyProgressOn(h, logs, d, loc)
		return done < target
	}
	return true
}
