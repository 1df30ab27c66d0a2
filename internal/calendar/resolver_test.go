package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	plus14  = time.FixedZone("UTC+14", 14*60*60)
	minus5  = time.FixedZone("UTC-5", -5*60*60)
	minus12 = time.FixedZone("UTC-12", -12*60*60)
)

func TestStartOfDay(t *testing.T) {
	instant := time.Date(2025, 12, 10, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC), StartOfDay(instant, time.UTC))
	// 15:30 UTC is 05:30 on Dec 11 in UTC+14.
	assert.Equal(t, time.Date(2025, 12, 11, 0, 0, 0, 0, plus14), StartOfDay(instant, plus14))
	assert.Equal(t, time.Date(2025, 12, 10, 0, 0, 0, 0, minus5), StartOfDay(instant, minus5))
}

func TestStartOfDay_NilLocationIsUTC(t *testing.T) {
	instant := time.Date(2025, 12, 10, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC), StartOfDay(instant, nil))
}

func TestSameCalendarDay_StickyAcrossZones(t *testing.T) {
	// A log representing Dec 11 created in UTC+14; the absolute instant is Dec 10 in UTC.
	logDate := time.Date(2025, 12, 11, 0, 0, 0, 0, plus14)
	require.Equal(t, 10, logDate.UTC().Day())

	queryDec11 := time.Date(2025, 12, 11, 0, 0, 0, 0, minus5)
	queryDec10 := time.Date(2025, 12, 10, 0, 0, 0, 0, minus5)

	assert.True(t, SameCalendarDay(logDate, plus14, queryDec11, minus5))
	assert.False(t, SameCalendarDay(logDate, plus14, queryDec10, minus5))
}

func TestSameCalendarDay_SameInstantDifferentDays(t *testing.T) {
	instant := time.Date(2025, 12, 10, 11, 0, 0, 0, time.UTC)

	assert.True(t, SameCalendarDay(instant, time.UTC, instant, time.UTC))
	// 11:00 UTC is Dec 11 in UTC+14 but Dec 9 in UTC-12.
	assert.False(t, SameCalendarDay(instant, plus14, instant, minus12))
}

func TestWeekday_ISOMapping(t *testing.T) {
	cases := map[time.Weekday]int{
		time.Monday:    1,
		time.Tuesday:   2,
		time.Wednesday: 3,
		time.Thursday:  4,
		time.Friday:    5,
		time.Saturday:  6,
		time.Sunday:    7,
	}
	for wd, want := range cases {
		assert.Equal(t, want, ISOWeekday(wd), wd.String())
	}
}

func TestWeekday_DependsOnZone(t *testing.T) {
	// Sunday 2025-12-14 20:00 UTC is already Monday in UTC+14.
	instant := time.Date(2025, 12, 14, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, 7, Weekday(instant, time.UTC))
	assert.Equal(t, 1, Weekday(instant, plus14))
}

func TestNextDayAndAddDays(t *testing.T) {
	instant := time.Date(2025, 12, 31, 22, 0, 0, 0, minus5)

	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, minus5), NextDay(instant, minus5))
	assert.Equal(t, time.Date(2025, 12, 24, 0, 0, 0, 0, minus5), AddDays(instant, -7, minus5))
}

func TestNextDay_DST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	before := time.Date(2025, 11, 2, 0, 0, 0, 0, ny) // 25-hour day
	next := NextDay(before, ny)
	assert.Equal(t, time.Date(2025, 11, 3, 0, 0, 0, 0, ny), next)
	assert.Equal(t, 25*time.Hour, next.Sub(before))
}

func TestStartOfWeekAndAddWeeks(t *testing.T) {
	thursday := time.Date(2025, 12, 11, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 12, 8, 0, 0, 0, 0, time.UTC), StartOfWeek(thursday, time.UTC))
	assert.Equal(t, time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC), AddWeeks(thursday, 2, time.UTC))
}
