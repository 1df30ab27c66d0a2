package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ritual/internal/habit"
	"github.com/roach88/ritual/internal/testutil"
)

func TestPutHabit_InsertThenUnchanged(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	h := testutil.MustHabit("run", habit.TimesPerWeek{Target: 3}, habit.Binary{}, "2025-12-01", habit.WithName("Run"))

	change, err := s.PutHabit(ctx, h)
	require.NoError(t, err)
	assert.Equal(t, Inserted, change)

	change, err = s.PutHabit(ctx, h)
	require.NoError(t, err)
	assert.Equal(t, Unchanged, change)
}

func TestPutHabit_UpdatesChangedDefinition(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	h := testutil.MustHabit("run", habit.TimesPerWeek{Target: 3}, habit.Binary{}, "2025-12-01")
	_, err := s.PutHabit(ctx, h)
	require.NoError(t, err)

	h.Schedule = habit.TimesPerWeek{Target: 4}
	change, err := s.PutHabit(ctx, h)
	require.NoError(t, err)
	assert.Equal(t, Updated, change)

	got, err := s.GetHabit(ctx, "run")
	require.NoError(t, err)
	assert.Equal(t, habit.TimesPerWeek{Target: 4}, got.Schedule)
}

func TestPutHabit_RejectsInvalid(t *testing.T) {
	s := createTestStore(t)
	h := testutil.MustHabit("run", habit.Daily{}, habit.Binary{}, "2025-12-01")
	h.Schedule = habit.TimesPerWeek{Target: 0}

	_, err := s.PutHabit(context.Background(), h)
	require.Error(t, err)
	assert.True(t, habit.IsValidationError(err))
}

func TestGetHabit_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	h := testutil.MustHabit("water", habit.DaysOfWeek{Days: habit.NewWeekdaySet(1, 3, 5)},
		habit.Numeric{DailyTarget: habit.Float(8)}, "2025-12-01",
		habit.WithName("Water"), testutil.EndingOn("2026-01-31"), habit.Inactive())
	_, err := s.PutHabit(ctx, h)
	require.NoError(t, err)

	got, err := s.GetHabit(ctx, "water")
	require.NoError(t, err)

	assert.Equal(t, h.ID, got.ID)
	assert.Equal(t, h.Name, got.Name)
	assert.Equal(t, h.Schedule, got.Schedule)
	assert.Equal(t, h.Kind, got.Kind)
	assert.True(t, h.StartDate.Equal(got.StartDate))
	require.NotNil(t, got.EndDate)
	assert.True(t, h.EndDate.Equal(*got.EndDate))
	assert.False(t, got.IsActive)
}

func TestGetHabit_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.GetHabit(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListHabits_InsertionOrderAndActiveFilter(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	for _, h := range []habit.Habit{
		testutil.MustHabit("zz", habit.Daily{}, habit.Binary{}, "2025-12-01"),
		testutil.MustHabit("aa", habit.Daily{}, habit.Binary{}, "2025-12-01", habit.Inactive()),
		testutil.MustHabit("mm", habit.Daily{}, habit.Binary{}, "2025-12-01"),
	} {
		_, err := s.PutHabit(ctx, h)
		require.NoError(t, err)
	}

	all, err := s.ListHabits(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"zz", "aa", "mm"}, habitIDs(all))

	active, err := s.ListHabits(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"zz", "mm"}, habitIDs(active))
}

func TestListHabits_EmptyNotNil(t *testing.T) {
	s := createTestStore(t)

	habits, err := s.ListHabits(context.Background(), false)
	require.NoError(t, err)
	assert.NotNil(t, habits)
	assert.Empty(t, habits)
}

func TestPutHabit_KeepsNonUTCStart(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	loc := testutil.Zone(14)
	h, err := habit.New("h", habit.Daily{}, habit.Binary{}, time.Date(2025, 12, 1, 0, 0, 0, 0, loc))
	require.NoError(t, err)
	_, err = s.PutHabit(ctx, h)
	require.NoError(t, err)

	got, err := s.GetHabit(ctx, "h")
	require.NoError(t, err)
	assert.True(t, h.StartDate.Equal(got.StartDate))
	_, offset := got.StartDate.Zone()
	assert.Equal(t, 14*3600, offset)
}

func habitIDs(habits []habit.Habit) []string {
	ids := make([]string, len(habits))
	for i, h := range habits {
		ids[i] = h.ID
	}
	return ids
}
