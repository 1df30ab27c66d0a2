package harness

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/roach88/ritual/internal/calendar"
	"github.com/roach88/ritual/internal/habit"
	"github.com/roach88/ritual/internal/store"
)

// Runner executes scenarios. The zero value is usable and logs nothing.
type Runner struct {
	Logger *zap.Logger
}

// NewRunner returns a Runner logging to logger (nil discards).
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{Logger: logger}
}

// Run executes a scenario with a silent Runner.
func Run(scenario *Scenario) (*Result, error) {
	return NewRunner(nil).Run(context.Background(), scenario)
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation.
// An error means the scenario itself is unusable (bad fixture); check
// mismatches are reported in the Result.
func (r *Runner) Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("scenario", scenario.Name))

	loc, err := calendar.LoadZone(scenario.Timezone)
	if err != nil {
		return nil, fmt.Errorf("scenario timezone: %w", err)
	}

	// The per-scenario store stays silent; its schema migration runs every time.
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	for i, def := range scenario.Habits {
		h, err := buildHabit(def, loc)
		if err != nil {
			return nil, fmt.Errorf("habits[%d]: %w", i, err)
		}
		if _, err := st.PutHabit(ctx, h); err != nil {
			return nil, fmt.Errorf("habits[%d]: %w", i, err)
		}
	}

	for i, def := range scenario.Logs {
		l, err := buildLog(def, loc)
		if err != nil {
			return nil, fmt.Errorf("logs[%d]: %w", i, err)
		}
		if _, err := st.PutLog(ctx, l); err != nil {
			return nil, fmt.Errorf("logs[%d]: %w", i, err)
		}
	}
	logger.Debug("fixtures loaded",
		zap.Int("habits", len(scenario.Habits)),
		zap.Int("logs", len(scenario.Logs)),
	)

	result := NewResult()
	ev := &evaluator{store: st, loc: loc}
	for i, c := range scenario.Checks {
		cr, err := ev.evaluate(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("checks[%d]: %w", i, err)
		}
		result.AddCheck(i, cr)
	}

	logger.Debug("scenario finished",
		zap.Bool("pass", result.Pass),
		zap.Int("checks", len(result.Checks)),
	)
	return result, nil
}

func buildHabit(def HabitDef, loc *time.Location) (habit.Habit, error) {
	sched, err := habit.ScheduleFromParts(def.Schedule.Type, def.Schedule.Days, def.Schedule.Target)
	if err != nil {
		return habit.Habit{}, err
	}

	kind := habit.Kind(habit.Binary{})
	if def.Kind != nil {
		if kind, err = habit.KindFromParts(def.Kind.Type, def.Kind.DailyTarget); err != nil {
			return habit.Habit{}, err
		}
	}

	start, err := calendar.ParseDate(def.StartDate)
	if err != nil {
		return habit.Habit{}, err
	}

	opts := []habit.Option{habit.WithName(def.Name)}
	if def.EndDate != "" {
		end, err := calendar.ParseDate(def.EndDate)
		if err != nil {
			return habit.Habit{}, err
		}
		opts = append(opts, habit.WithEndDate(end.In(loc)))
	}
	if def.Active != nil && !*def.Active {
		opts = append(opts, habit.Inactive())
	}

	return habit.New(def.ID, sched, kind, start.In(loc), opts...)
}

func buildLog(def LogDef, loc *time.Location) (habit.Log, error) {
	day, err := calendar.ParseDate(def.Date)
	if err != nil {
		return habit.Log{}, err
	}

	logLoc := loc
	if def.Timezone != "" {
		if logLoc, err = calendar.LoadZone(def.Timezone); err != nil {
			return habit.Log{}, err
		}
	}

	value := habit.Float(1)
	switch {
	case def.NoValue:
		value = nil
	case def.Value != nil:
		value = habit.Float(*def.Value)
	}

	l := habit.NewLog(def.Habit, day, logLoc, value)
	if def.NoTimezone {
		// The instant stays the day start in logLoc; only the zone is dropped.
		l.Timezone = nil
		l.ID = habit.LogID(l)
	}
	return l, nil
}
