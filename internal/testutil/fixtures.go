package testutil

import (
	"fmt"
	"time"

	"github.com/roach88/ritual/internal/calendar"
	"github.com/roach88/ritual/internal/habit"
)

// Day parses a YYYY-MM-DD literal and panics on malformed input.
func Day(s string) calendar.Date {
	return calendar.MustParseDate(s)
}

// Zone returns a fixed-offset zone named like "UTC+14" or "UTC-5".
func Zone(offsetHours int) *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+d", offsetHours), offsetHours*3600)
}

// MustHabit builds a validated habit starting at the UTC midnight of start.
// It panics on invalid input, which is a test bug.
func MustHabit(id string, sched habit.Schedule, kind habit.Kind, start string, opts ...habit.Option) habit.Habit {
	h, err := habit.New(id, sched, kind, Day(start).In(time.UTC), opts...)
	if err != nil {
		panic(err)
	}
	return h
}

// EndingOn is habit.WithEndDate for a YYYY-MM-DD literal at UTC midnight.
func EndingOn(end string) habit.Option {
	return habit.WithEndDate(Day(end).In(time.UTC))
}

// DoneLog is a completed binary log for day, created in loc.
func DoneLog(habitID, day string, loc *time.Location) habit.Log {
	return habit.NewLog(habitID, Day(day), loc, habit.Float(1))
}

// ValueLog is a log carrying v for day, created in loc.
func ValueLog(habitID, day string, loc *time.Location, v float64) habit.Log {
	return habit.NewLog(habitID, Day(day), loc, habit.Float(v))
}

// EmptyLog is a log with no value for day, created in loc.
func EmptyLog(habitID, day string, loc *time.Location) habit.Log {
	return habit.NewLog(habitID, Day(day), loc, nil)
}

// DoneLogs returns a completed UTC log for each day.
func DoneLogs(habitID string, days ...string) []habit.Log {
	logs := make([]habit.Log, len(days))
	for i, d := range days {
		logs[i] = DoneLog(habitID, d, time.UTC)
	}
	return logs
}
