package habit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ritual/internal/calendar"
)

func TestLogID_Deterministic(t *testing.T) {
	day := calendar.MustParseDate("2025-12-11")
	a := NewLog("h1", day, time.UTC, Float(1))
	b := NewLog("h1", day, time.UTC, Float(1))

	assert.Equal(t, a.ID, b.ID)
	assert.Len(t, a.ID, 64)
}

func TestLogID_SensitiveToContent(t *testing.T) {
	day := calendar.MustParseDate("2025-12-11")
	plus14 := time.FixedZone("UTC+14", 14*3600)
	base := NewLog("h1", day, time.UTC, Float(1))

	assert.NotEqual(t, base.ID, NewLog("h2", day, time.UTC, Float(1)).ID)
	assert.NotEqual(t, base.ID, NewLog("h1", day.Next(), time.UTC, Float(1)).ID)
	assert.NotEqual(t, base.ID, NewLog("h1", day, plus14, Float(1)).ID)
	assert.NotEqual(t, base.ID, NewLog("h1", day, time.UTC, Float(2)).ID)
	assert.NotEqual(t, base.ID, NewLog("h1", day, time.UTC, nil).ID)
}

func TestDigest(t *testing.T) {
	h, err := New("h1", DaysOfWeek{Days: NewWeekdaySet(1, 3, 5)}, Binary{}, start)
	require.NoError(t, err)

	d1, err := Digest(h)
	require.NoError(t, err)
	d2, err := Digest(h)
	require.NoError(t, err)
	assert.Equal(t, d1, d2)

	h.Schedule = DaysOfWeek{Days: NewWeekdaySet(1, 3)}
	d3, err := Digest(h)
	require.NoError(t, err)
	assert.NotEqual(t, d1, d3)
}

func TestHashWithDomain_Separation(t *testing.T) {
	data := []byte(`{"a":1}`)
	assert.NotEqual(t, hashWithDomain(DomainLog, data), hashWithDomain(DomainHabit, data))
}

func TestLogID_ZonelessUsesInstant(t *testing.T) {
	minus10 := time.FixedZone("UTC-10", -10*3600)
	// Midnight Dec 10 in UTC-10 and midnight Dec 10 UTC: the same UTC day,
	// but Dec 10 and Dec 9 once resolved in a UTC-10 fallback.
	a := Log{HabitID: "h1", Date: time.Date(2025, 12, 10, 0, 0, 0, 0, minus10), Value: Float(1)}
	b := Log{HabitID: "h1", Date: time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC), Value: Float(1)}
	require.NotEqual(t, a.Day(minus10), b.Day(minus10))

	assert.NotEqual(t, LogID(a), LogID(b))
	assert.Equal(t, LogID(a), LogID(Log{HabitID: "h1", Date: a.Date.In(time.UTC), Value: Float(1)}),
		"same instant, same ID")
}
