package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/roach88/ritual/internal/calendar"
	"github.com/roach88/ritual/internal/habit"
)

// PutLog stores a log. The habit must already exist.
// Uses ON CONFLICT(id) DO NOTHING for idempotency: inserted is false when a
// log with the same content-addressed ID is already stored.
//
// A log without an ID gets habit.LogID.
func (s *Store) PutLog(ctx context.Context, l habit.Log) (inserted bool, err error) {
	if l.ID == "" {
		l.ID = habit.LogID(l)
	}

	var exists int
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM habits WHERE id = ?`, l.HabitID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("put log: lookup habit: %w", err)
	}
	if exists == 0 {
		return false, fmt.Errorf("put log: habit %q: %w", l.HabitID, ErrNotFound)
	}

	var value sql.NullFloat64
	if l.Value != nil {
		value = sql.NullFloat64{Float64: *l.Value, Valid: true}
	}
	var tz sql.NullString
	if l.Timezone != nil {
		tz = sql.NullString{String: calendar.ZoneName(l.Timezone), Valid: true}
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO logs
		(id, habit_id, date_ns, value, timezone, seq)
		VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM logs))
		ON CONFLICT(id) DO NOTHING
	`,
		l.ID,
		l.HabitID,
		l.Date.UnixNano(),
		value,
		tz,
	)
	if err != nil {
		return false, fmt.Errorf("put log: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("put log: rows affected: %w", err)
	}

	s.logger.Debug("log stored",
		zap.String("log_id", l.ID),
		zap.String("habit_id", l.HabitID),
		zap.Bool("inserted", n > 0),
	)
	return n > 0, nil
}

// LogsForHabit returns every log of the habit ordered by timestamp, then ID.
//
// Returns an empty slice (not nil) if there are none.
func (s *Store) LogsForHabit(ctx context.Context, habitID string) ([]habit.Log, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, habit_id, date_ns, value, timezone
		FROM logs
		WHERE habit_id = ?
		ORDER BY date_ns ASC, id COLLATE BINARY ASC
	`, habitID)
	if err != nil {
		return nil, fmt.Errorf("query logs: %w", err)
	}
	return collectLogs(rows)
}

// LogsInWindow returns the habit's logs that may fall on the calendar days
// from through to, whatever zone those days are resolved in.
//
// The query uses calendar.DayWindow, so it over-selects by up to
// calendar.WorldwideBuffer on each side. Callers decide day membership with
// the engine, which uses each log's own zone.
func (s *Store) LogsInWindow(ctx context.Context, habitID string, from, to calendar.Date) ([]habit.Log, error) {
	lo, hi := calendar.DayWindow(from, to)
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, habit_id, date_ns, value, timezone
		FROM logs
		WHERE habit_id = ? AND date_ns BETWEEN ? AND ?
		ORDER BY date_ns ASC, id COLLATE BINARY ASC
	`, habitID, lo.UnixNano(), hi.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("query logs in window: %w", err)
	}
	return collectLogs(rows)
}

func collectLogs(rows *sql.Rows) ([]habit.Log, error) {
	defer rows.Close()

	logs := []habit.Log{}
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate logs: %w", err)
	}
	return logs, nil
}

func scanLog(row scanner) (habit.Log, error) {
	var (
		l      habit.Log
		dateNS int64
		value  sql.NullFloat64
		tz     sql.NullString
	)
	if err := row.Scan(&l.ID, &l.HabitID, &dateNS, &value, &tz); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return habit.Log{}, err
		}
		return habit.Log{}, fmt.Errorf("scan log: %w", err)
	}

	if value.Valid {
		l.Value = habit.Float(value.Float64)
	}
	if tz.Valid {
		loc, err := calendar.LoadZone(tz.String)
		if err != nil {
			return habit.Log{}, fmt.Errorf("scan log %q: %w", l.ID, err)
		}
		l.Timezone = loc
	}
	l.Date = time.Unix(0, dateNS).In(l.Location(time.UTC))
	return l, nil
}
