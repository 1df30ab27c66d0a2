package calendar

import "time"

// WorldwideBuffer widens a naive UTC range so that every instant whose local
// calendar day falls inside the range is kept. UTC offsets span -12h to +14h;
// one extra hour covers daylight saving time.
const WorldwideBuffer = 15 * time.Hour

// BufferedWindow returns [start-WorldwideBuffer, end+WorldwideBuffer].
//
// The window is only a pre-filter on raw timestamps. Whether a log belongs to
// a given day is still decided by SameCalendarDay.
func BufferedWindow(start, end time.Time) (time.Time, time.Time) {
	return start.Add(-WorldwideBuffer), end.Add(WorldwideBuffer)
}

// InWindow reports whether t lies in the closed interval [start, end].
func InWindow(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// DayWindow returns the buffered raw-timestamp window covering the calendar
// days from through to in any zone. The naive range is taken in UTC, so the
// window does not depend on the zone a query resolves days in.
func DayWindow(from, to Date) (time.Time, time.Time) {
	return BufferedWindow(from.In(time.UTC), to.Next().In(time.UTC))
}
