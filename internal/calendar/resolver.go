package calendar

import "time"

// DateOf returns the calendar day containing t as seen in loc.
func DateOf(t time.Time, loc *time.Location) Date {
	y, m, d := t.In(resolve(loc)).Date()
	return Date{Year: y, Month: m, Day: d}
}

// StartOfDay returns the start of loc's civil day containing t.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	return DateOf(t, loc).In(loc)
}

// SameCalendarDay reports whether t1 (resolved in loc1) and t2 (resolved in
// loc2) fall on the same year, month and day. The two instants need not be
// equal: midnight Dec 11 in UTC+14 and midnight Dec 11 in UTC-5 are 19 hours
// apart but name the same calendar day.
func SameCalendarDay(t1 time.Time, loc1 *time.Location, t2 time.Time, loc2 *time.Location) bool {
	return DateOf(t1, loc1) == DateOf(t2, loc2)
}

// Weekday returns the ISO weekday (Monday=1, Sunday=7) of t in loc.
func Weekday(t time.Time, loc *time.Location) int {
	return ISOWeekday(t.In(resolve(loc)).Weekday())
}

// ISOWeekday maps time.Weekday (Sunday=0) onto ISO numbering.
// Sunday becomes 7; every other day keeps its value.
func ISOWeekday(wd time.Weekday) int {
	if wd == time.Sunday {
		return 7
	}
	return int(wd)
}

// NextDay returns the start of the day after the one containing t.
func NextDay(t time.Time, loc *time.Location) time.Time {
	return AddDays(t, 1, loc)
}

// AddDays returns the start of the day n days after the one containing t.
func AddDays(t time.Time, n int, loc *time.Location) time.Time {
	return DateOf(t, loc).AddDays(n).In(loc)
}

// StartOfWeek returns the start of the Monday of the week containing t.
func StartOfWeek(t time.Time, loc *time.Location) time.Time {
	return DateOf(t, loc).StartOfWeek().In(loc)
}

// AddWeeks returns the start of the day n weeks after the one containing t.
func AddWeeks(t time.Time, n int, loc *time.Location) time.Time {
	return AddDays(t, 7*n, loc)
}

func resolve(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
