package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/roach88/ritual/internal/habit"
)

// Change describes what PutHabit did.
type Change int

const (
	Unchanged Change = iota
	Inserted
	Updated
)

func (c Change) String() string {
	switch c {
	case Inserted:
		return "inserted"
	case Updated:
		return "updated"
	default:
		return "unchanged"
	}
}

// PutHabit validates and stores a habit definition.
//
// A habit with a new ID is inserted. An existing ID is updated only when the
// definition digest or name differ; otherwise the call is a no-op and
// returns Unchanged. The insert order (seq) of an existing habit is kept.
func (s *Store) PutHabit(ctx context.Context, h habit.Habit) (Change, error) {
	if errs := h.Validate(); len(errs) > 0 {
		return Unchanged, fmt.Errorf("put habit %q: %w", h.ID, errs)
	}

	digest, err := habit.Digest(h)
	if err != nil {
		return Unchanged, fmt.Errorf("put habit %q: %w", h.ID, err)
	}
	sched, err := habit.MarshalSchedule(h.Schedule)
	if err != nil {
		return Unchanged, fmt.Errorf("put habit %q: %w", h.ID, err)
	}
	kind, err := habit.MarshalKind(h.Kind)
	if err != nil {
		return Unchanged, fmt.Errorf("put habit %q: %w", h.ID, err)
	}
	var end sql.NullString
	if h.EndDate != nil {
		end = sql.NullString{String: h.EndDate.Format(time.RFC3339Nano), Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Unchanged, fmt.Errorf("put habit: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var oldDigest, oldName string
	err = tx.QueryRowContext(ctx, `SELECT digest, name FROM habits WHERE id = ?`, h.ID).Scan(&oldDigest, &oldName)

	var change Change
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = tx.ExecContext(ctx, `
			INSERT INTO habits
			(id, name, schedule, kind, start_date, end_date, is_active, digest, seq)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM habits))
		`,
			h.ID,
			h.Name,
			string(sched),
			string(kind),
			h.StartDate.Format(time.RFC3339Nano),
			end,
			boolToInt(h.IsActive),
			digest,
		)
		change = Inserted
	case err != nil:
		return Unchanged, fmt.Errorf("put habit: lookup: %w", err)
	case oldDigest == digest && oldName == h.Name:
		return Unchanged, nil
	default:
		_, err = tx.ExecContext(ctx, `
			UPDATE habits
			SET name = ?, schedule = ?, kind = ?, start_date = ?, end_date = ?, is_active = ?, digest = ?
			WHERE id = ?
		`,
			h.Name,
			string(sched),
			string(kind),
			h.StartDate.Format(time.RFC3339Nano),
			end,
			boolToInt(h.IsActive),
			digest,
			h.ID,
		)
		change = Updated
	}
	if err != nil {
		return Unchanged, fmt.Errorf("put habit %q: %w", h.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return Unchanged, fmt.Errorf("put habit: commit: %w", err)
	}

	s.logger.Debug("habit stored",
		zap.String("habit_id", h.ID),
		zap.Stringer("change", change),
	)
	return change, nil
}

// GetHabit retrieves a habit by ID.
// Returns an error wrapping ErrNotFound if it does not exist.
func (s *Store) GetHabit(ctx context.Context, id string) (habit.Habit, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, schedule, kind, start_date, end_date, is_active
		FROM habits
		WHERE id = ?
	`, id)

	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return habit.Habit{}, fmt.Errorf("habit %q: %w", id, ErrNotFound)
	}
	return h, err
}

// ListHabits returns habits in insertion order.
// With activeOnly, inactive habits are skipped.
//
// Returns an empty slice (not nil) if there are none.
func (s *Store) ListHabits(ctx context.Context, activeOnly bool) ([]habit.Habit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, schedule, kind, start_date, end_date, is_active
		FROM habits
		WHERE is_active = 1 OR ? = 0
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, boolToInt(activeOnly))
	if err != nil {
		return nil, fmt.Errorf("query habits: %w", err)
	}
	defer rows.Close()

	habits := []habit.Habit{}
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate habits: %w", err)
	}

	return habits, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHabit(row scanner) (habit.Habit, error) {
	var (
		id, name, sched, kind, start string
		end                          sql.NullString
		active                       int
	)
	if err := row.Scan(&id, &name, &sched, &kind, &start, &end, &active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return habit.Habit{}, err
		}
		return habit.Habit{}, fmt.Errorf("scan habit: %w", err)
	}

	h := habit.Habit{ID: id, Name: name, IsActive: active != 0}
	var err error
	if h.Schedule, err = habit.UnmarshalSchedule([]byte(sched)); err != nil {
		return habit.Habit{}, fmt.Errorf("scan habit %q: %w", id, err)
	}
	if h.Kind, err = habit.UnmarshalKind([]byte(kind)); err != nil {
		return habit.Habit{}, fmt.Errorf("scan habit %q: %w", id, err)
	}
	if h.StartDate, err = time.Parse(time.RFC3339Nano, start); err != nil {
		return habit.Habit{}, fmt.Errorf("scan habit %q: start_date: %w", id, err)
	}
	if end.Valid {
		t, err := time.Parse(time.RFC3339Nano, end.String)
		if err != nil {
			return habit.Habit{}, fmt.Errorf("scan habit %q: end_date: %w", id, err)
		}
		h.EndDate = &t
	}
	return h, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
