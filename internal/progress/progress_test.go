package progress

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/ritual/internal/habit"
	"github.com/roach88/ritual/internal/testutil"
)

func at(day string) time.Time {
	return testutil.Day(day).In(time.UTC)
}

var mwf = habit.DaysOfWeek{Days: habit.NewWeekdaySet(1, 3, 5)}

func TestRangeProgress_DailyTwoOfThree(t *testing.T) {
	h := testutil.MustHabit("h", habit.Daily{}, habit.Binary{}, "2025-12-01")
	logs := testutil.DoneLogs("h", "2025-12-01", "2025-12-03")

	got := RangeProgress(h, logs, at("2025-12-01"), at("2025-12-03"), time.UTC)
	assert.Equal(t, 2.0/3.0, got)
}

func TestRangeProgress_Idempotent(t *testing.T) {
	h := testutil.MustHabit("h", habit.TimesPerWeek{Target: 3}, habit.Binary{}, "2025-12-01")
	logs := testutil.DoneLogs("h", "2025-12-03", "2025-12-01", "2025-12-09", "2025-12-09")
	before := slices.Clone(logs)

	first := RangeProgress(h, logs, at("2025-12-01"), at("2025-12-14"), time.UTC)
	second := RangeProgress(h, logs, at("2025-12-01"), at("2025-12-14"), time.UTC)

	assert.Equal(t, first, second)
	assert.Equal(t, before, logs, "input must not be reordered or mutated")
}

func TestRangeProgress_BoundaryClamping(t *testing.T) {
	h := testutil.MustHabit("h", habit.Daily{}, habit.Binary{}, "2025-12-04")
	logs := testutil.DoneLogs("h", "2025-12-01", "2025-12-02", "2025-12-03", "2025-12-04", "2025-12-05")

	s := Summarize(h, logs, testutil.Day("2025-12-01"), testutil.Day("2025-12-07"), time.UTC)
	assert.Equal(t, 4, s.Expected)
	assert.Equal(t, 2, s.Completed, "logs before the start day do not count")
	assert.Equal(t, 0.5, s.Rate)
}

func TestRangeProgress_EndDateClamping(t *testing.T) {
	h := testutil.MustHabit("h", habit.Daily{}, habit.Binary{}, "2025-12-01", testutil.EndingOn("2025-12-02"))
	logs := testutil.DoneLogs("h", "2025-12-01", "2025-12-02", "2025-12-03")

	assert.Equal(t, 1.0, RangeProgress(h, logs, at("2025-12-01"), at("2025-12-10"), time.UTC))
}

func TestRangeProgress_DaysOfWeekIgnoresOffDays(t *testing.T) {
	h := testutil.MustHabit("h", mwf, habit.Binary{}, "2025-12-01")
	// Tuesday and Thursday completions do not count toward MWF.
	logs := testutil.DoneLogs("h", "2025-12-01", "2025-12-02", "2025-12-04")

	s := Summarize(h, logs, testutil.Day("2025-12-03"), testutil.Day("2025-12-09"), time.UTC)
	assert.Equal(t, 3, s.Expected)
	assert.Equal(t, 0, s.Completed)

	s = Summarize(h, logs, testutil.Day("2025-12-01"), testutil.Day("2025-12-07"), time.UTC)
	assert.Equal(t, 3, s.Expected)
	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 1.0/3.0, s.Rate)
}

func TestRangeProgress_TimesPerWeekCapsEachWeek(t *testing.T) {
	h := testutil.MustHabit("h", habit.TimesPerWeek{Target: 2}, habit.Binary{}, "2025-12-01")
	// Four days in the first week, none in the second.
	logs := testutil.DoneLogs("h", "2025-12-01", "2025-12-02", "2025-12-03", "2025-12-04")

	got := RangeProgress(h, logs, at("2025-12-01"), at("2025-12-14"), time.UTC)
	assert.Equal(t, 0.5, got, "surplus in one week must not cover a shortfall in another")
}

func TestRangeProgress_TimesPerWeekCountsWeekIntersection(t *testing.T) {
	h := testutil.MustHabit("h", habit.TimesPerWeek{Target: 2}, habit.Binary{}, "2025-12-01")
	// Mon and Tue fall outside a range starting Wednesday.
	logs := testutil.DoneLogs("h", "2025-12-01", "2025-12-02", "2025-12-05")

	s := Summarize(h, logs, testutil.Day("2025-12-03"), testutil.Day("2025-12-07"), time.UTC)
	assert.Equal(t, 2, s.Expected)
	assert.Equal(t, 1, s.Completed)
}

func TestRangeProgress_DegenerateInputs(t *testing.T) {
	h := testutil.MustHabit("h", habit.Daily{}, habit.Binary{}, "2025-12-01")

	assert.Zero(t, RangeProgress(h, nil, at("2025-12-01"), at("2025-12-07"), time.UTC), "no logs")
	assert.Zero(t, RangeProgress(h, testutil.DoneLogs("h", "2025-12-05"), at("2025-12-07"), at("2025-12-01"), time.UTC), "reversed range")

	ended := testutil.MustHabit("e", habit.Daily{}, habit.Binary{}, "2025-11-01", testutil.EndingOn("2025-11-10"))
	assert.Zero(t, RangeProgress(ended, testutil.DoneLogs("e", "2025-12-02"), at("2025-12-01"), at("2025-12-07"), time.UTC), "no expected days")
}

func TestRangeProgress_NumericTarget(t *testing.T) {
	h := testutil.MustHabit("w", habit.Daily{}, habit.Numeric{DailyTarget: habit.Float(8)}, "2025-12-01")
	logs := []habit.Log{
		testutil.ValueLog("w", "2025-12-01", time.UTC, 8),
		testutil.ValueLog("w", "2025-12-02", time.UTC, 5),
		testutil.ValueLog("w", "2025-12-02", time.UTC, 5),
		testutil.EmptyLog("w", "2025-12-03", time.UTC),
		testutil.ValueLog("w", "2025-12-04", time.UTC, 10),
	}
	assert.Equal(t, 0.5, RangeProgress(h, logs, at("2025-12-01"), at("2025-12-04"), time.UTC))
}

func TestWeeklyProgress_CappedAtTarget(t *testing.T) {
	h := testutil.MustHabit("h", habit.TimesPerWeek{Target: 3}, habit.Binary{}, "2025-12-01")
	logs := testutil.DoneLogs("h", "2025-12-08", "2025-12-09", "2025-12-10", "2025-12-11")

	done, target := WeeklyProgress(h, logs, at("2025-12-10"), time.UTC)
	assert.Equal(t, 3, done)
	assert.Equal(t, 3, target)
}

func TestWeeklyProgress_UniqueDays(t *testing.T) {
	h := testutil.MustHabit("h", habit.TimesPerWeek{Target: 3}, habit.Binary{}, "2025-12-01")
	logs := []habit.Log{
		testutil.DoneLog("h", "2025-12-08", time.UTC),
		testutil.DoneLog("h", "2025-12-08", testutil.Zone(9)),
	}

	done, target := WeeklyProgress(h, logs, at("2025-12-14"), time.UTC)
	assert.Equal(t, 1, done)
	assert.Equal(t, 3, target)
}

func TestWeeklyProgress_WeekBoundaries(t *testing.T) {
	h := testutil.MustHabit("h", habit.TimesPerWeek{Target: 2}, habit.Binary{}, "2025-12-01")
	// Sunday Dec 7 belongs to the previous week, Monday Dec 8 to this one.
	logs := testutil.DoneLogs("h", "2025-12-07", "2025-12-08")

	done, _ := WeeklyProgress(h, logs, at("2025-12-07"), time.UTC)
	assert.Equal(t, 1, done)
	done, _ = WeeklyProgress(h, logs, at("2025-12-08"), time.UTC)
	assert.Equal(t, 1, done)
}

func TestWeeklyProgress_BeforeStart(t *testing.T) {
	h := testutil.MustHabit("h", habit.TimesPerWeek{Target: 2}, habit.Binary{}, "2025-12-10")
	logs := testutil.DoneLogs("h", "2025-12-08", "2025-12-09")

	done, target := WeeklyProgress(h, logs, at("2025-12-08"), time.UTC)
	assert.Equal(t, 0, done, "days before the start day are outside the habit")
	assert.Equal(t, 2, target)
}

func TestWeeklyProgress_DaysOfWeek(t *testing.T) {
	h := testutil.MustHabit("h", mwf, habit.Binary{}, "2025-12-01")
	logs := testutil.DoneLogs("h", "2025-12-08", "2025-12-09", "2025-12-12")

	done, target := WeeklyProgress(h, logs, at("2025-12-10"), time.UTC)
	assert.Equal(t, 2, done)
	assert.Equal(t, 3, target)
}

func TestDailyProgress_CrossTimezoneStickiness(t *testing.T) {
	h := testutil.MustHabit("h", habit.Daily{}, habit.Binary{}, "2025-12-01")
	logs := []habit.Log{testutil.DoneLog("h", "2025-12-11", testutil.Zone(14))}
	minus5 := testutil.Zone(-5)

	assert.Equal(t, 1.0, DailyProgress(h, logs, time.Date(2025, 12, 11, 12, 0, 0, 0, minus5), minus5))
	assert.Equal(t, 0.0, DailyProgress(h, logs, time.Date(2025, 12, 10, 12, 0, 0, 0, minus5), minus5))
}

func TestDailyProgress_EmptyLogs(t *testing.T) {
	h := testutil.MustHabit("h", habit.Daily{}, habit.Binary{}, "2025-12-01")
	assert.Equal(t, 0.0, DailyProgress(h, nil, at("2025-12-02"), time.UTC))
}

func TestPrefilter_BufferKeepsShiftedLogs(t *testing.T) {
	// Dec 11 in UTC+14 is Dec 10 10:00 UTC, outside a naive Dec 11 UTC window.
	shifted := testutil.DoneLog("h", "2025-12-11", testutil.Zone(14))
	logs := []habit.Log{
		shifted,
		testutil.DoneLog("h", "2025-12-09", time.UTC),
		testutil.DoneLog("other", "2025-12-11", time.UTC),
	}

	got := Prefilter(logs, "h", testutil.Day("2025-12-11"), testutil.Day("2025-12-11"))
	assert.Equal(t, []habit.Log{shifted}, got)
}

func TestPrefilter_IndependentOfQueryZone(t *testing.T) {
	// Queried from UTC+14, Dec 7 ends at Dec 7 10:00 UTC; Dec 7 in UTC-12
	// starts at Dec 7 12:00 UTC.
	plus14 := testutil.Zone(14)
	h := testutil.MustHabit("h", habit.Daily{}, habit.Binary{}, "2025-12-01")
	late := testutil.DoneLog("h", "2025-12-07", testutil.Zone(-12))
	logs := []habit.Log{late}
	from, to := testutil.Day("2025-12-01"), testutil.Day("2025-12-07")

	kept := Prefilter(logs, "h", from, to)
	assert.Equal(t, []habit.Log{late}, kept)

	start, end := from.In(plus14), to.In(plus14)
	assert.InDelta(t, 1.0/7.0, RangeProgress(h, logs, start, end, plus14), 1e-9)
	assert.Equal(t, RangeProgress(h, logs, start, end, plus14), RangeProgress(h, kept, start, end, plus14))
}

func TestPrefilter_DoesNotChangeResults(t *testing.T) {
	h := testutil.MustHabit("h", habit.Daily{}, habit.Binary{}, "2025-11-01")
	var logs []habit.Log
	for _, d := range []string{"2025-11-03", "2025-11-20", "2025-12-01", "2025-12-02", "2025-12-20"} {
		logs = append(logs, testutil.DoneLog("h", d, testutil.Zone(-11)))
	}
	start, end := at("2025-12-01"), at("2025-12-07")
	kept := Prefilter(logs, "h", testutil.Day("2025-12-01"), testutil.Day("2025-12-07"))

	assert.Equal(t,
		RangeProgress(h, logs, start, end, time.UTC),
		RangeProgress(h, kept, start, end, time.UTC))
}

func TestEvaluator_DefaultsToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, NewEvaluator(nil).Location)
	assert.Equal(t, testutil.Day("2025-12-10"), Evaluator{}.Today(time.Date(2025, 12, 10, 23, 0, 0, 0, time.UTC)))
}

func TestEvaluator_DelegatesWithItsZone(t *testing.T) {
	plus14 := testutil.Zone(14)
	e := NewEvaluator(plus14)
	h := testutil.MustHabit("h", habit.Daily{}, habit.Binary{}, "2025-12-01")
	logs := []habit.Log{testutil.DoneLog("h", "2025-12-11", plus14)}
	now := time.Date(2025, 12, 10, 12, 0, 0, 0, time.UTC) // Dec 11 02:00 in UTC+14

	assert.Equal(t, testutil.Day("2025-12-11"), e.Today(now))
	assert.Equal(t, 1.0, e.DailyProgress(h, logs, now))
	assert.True(t, e.IsDayCompleted(h, logs, now))
	assert.True(t, e.IsExpectedDay(h, now))
	assert.False(t, e.NeedsReminder(h, logs, now))
	assert.Equal(t, DailyProgress(h, logs, now, plus14), e.DailyProgress(h, logs, now))
	assert.Equal(t, RangeProgress(h, logs, now, now, plus14), e.RangeProgress(h, logs, now, now))
	assert.Equal(t, 11, e.CountExpectedDays(h, at("2025-12-01"), now))
}
