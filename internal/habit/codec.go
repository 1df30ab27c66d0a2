package habit

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/roach88/ritual/internal/calendar"
)

// Wire discriminators for the sealed unions.
const (
	ScheduleDaily        = "daily"
	ScheduleDaysOfWeek   = "days_of_week"
	ScheduleTimesPerWeek = "times_per_week"

	KindBinary  = "binary"
	KindNumeric = "numeric"
)

// scheduleWire is the tagged JSON form of a Schedule.
type scheduleWire struct {
	Type   string `json:"type"`
	Days   []int  `json:"days,omitempty"`
	Target int    `json:"target,omitempty"`
}

// kindWire is the tagged JSON form of a Kind.
type kindWire struct {
	Type        string   `json:"type"`
	DailyTarget *float64 `json:"daily_target,omitempty"`
}

// MarshalSchedule encodes s as {"type": ..., ...}.
func MarshalSchedule(s Schedule) ([]byte, error) {
	w, err := scheduleToWire(s)
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// UnmarshalSchedule decodes the tagged form produced by MarshalSchedule.
func UnmarshalSchedule(data []byte) (Schedule, error) {
	var w scheduleWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode schedule: %w", err)
	}
	return ScheduleFromParts(w.Type, w.Days, w.Target)
}

// ScheduleFromParts builds a Schedule from its discriminator and payload.
// Shared by the JSON, YAML and CUE front ends.
func ScheduleFromParts(typ string, days []int, target int) (Schedule, error) {
	switch typ {
	case ScheduleDaily:
		return Daily{}, nil
	case ScheduleDaysOfWeek:
		set, err := ParseWeekdays(days)
		if err != nil {
			return nil, fmt.Errorf("days_of_week: %w", err)
		}
		return DaysOfWeek{Days: set}, nil
	case ScheduleTimesPerWeek:
		return TimesPerWeek{Target: target}, nil
	default:
		return nil, fmt.Errorf("unknown schedule type %q", typ)
	}
}

func scheduleToWire(s Schedule) (scheduleWire, error) {
	switch v := s.(type) {
	case Daily:
		return scheduleWire{Type: ScheduleDaily}, nil
	case DaysOfWeek:
		return scheduleWire{Type: ScheduleDaysOfWeek, Days: v.Days.Days()}, nil
	case TimesPerWeek:
		return scheduleWire{Type: ScheduleTimesPerWeek, Target: v.Target}, nil
	default:
		return scheduleWire{}, fmt.Errorf("unknown schedule variant: %T", s)
	}
}

// MarshalKind encodes k as {"type": ..., ...}.
func MarshalKind(k Kind) ([]byte, error) {
	w, err := kindToWire(k)
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// UnmarshalKind decodes the tagged form produced by MarshalKind.
func UnmarshalKind(data []byte) (Kind, error) {
	var w kindWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode kind: %w", err)
	}
	return KindFromParts(w.Type, w.DailyTarget)
}

// KindFromParts builds a Kind from its discriminator and payload.
func KindFromParts(typ string, dailyTarget *float64) (Kind, error) {
	switch typ {
	case KindBinary:
		return Binary{}, nil
	case KindNumeric:
		return Numeric{DailyTarget: dailyTarget}, nil
	default:
		return nil, fmt.Errorf("unknown kind type %q", typ)
	}
}

func kindToWire(k Kind) (kindWire, error) {
	switch v := k.(type) {
	case Binary:
		return kindWire{Type: KindBinary}, nil
	case Numeric:
		return kindWire{Type: KindNumeric, DailyTarget: v.DailyTarget}, nil
	default:
		return kindWire{}, fmt.Errorf("unknown kind variant: %T", k)
	}
}

// habitWire is the JSON form of a Habit.
type habitWire struct {
	ID        string          `json:"id"`
	Name      string          `json:"name,omitempty"`
	Schedule  json.RawMessage `json:"schedule"`
	Kind      json.RawMessage `json:"kind"`
	StartDate time.Time       `json:"start_date"`
	EndDate   *time.Time      `json:"end_date,omitempty"`
	IsActive  bool            `json:"is_active"`
}

// MarshalJSON implements json.Marshaler for Habit.
func (h Habit) MarshalJSON() ([]byte, error) {
	sched, err := MarshalSchedule(h.Schedule)
	if err != nil {
		return nil, fmt.Errorf("habit %q: %w", h.ID, err)
	}
	kind, err := MarshalKind(h.Kind)
	if err != nil {
		return nil, fmt.Errorf("habit %q: %w", h.ID, err)
	}
	return json.Marshal(habitWire{
		ID:        h.ID,
		Name:      h.Name,
		Schedule:  sched,
		Kind:      kind,
		StartDate: h.StartDate,
		EndDate:   h.EndDate,
		IsActive:  h.IsActive,
	})
}

// UnmarshalJSON implements json.Unmarshaler for Habit.
// It decodes structure only; call Validate for the invariants.
func (h *Habit) UnmarshalJSON(data []byte) error {
	var w habitWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	sched, err := UnmarshalSchedule(w.Schedule)
	if err != nil {
		return fmt.Errorf("habit %q: %w", w.ID, err)
	}
	kind, err := UnmarshalKind(w.Kind)
	if err != nil {
		return fmt.Errorf("habit %q: %w", w.ID, err)
	}
	*h = Habit{
		ID:        w.ID,
		Name:      w.Name,
		Schedule:  sched,
		Kind:      kind,
		StartDate: w.StartDate,
		EndDate:   w.EndDate,
		IsActive:  w.IsActive,
	}
	return nil
}

// logWire is the JSON form of a Log. Timezone is an IANA name or a
// fixed offset such as "UTC+14"; it is omitted when the log has none.
type logWire struct {
	ID       string    `json:"id"`
	HabitID  string    `json:"habit_id"`
	Date     time.Time `json:"date"`
	Value    *float64  `json:"value"`
	Timezone string    `json:"timezone,omitempty"`
}

// MarshalJSON implements json.Marshaler for Log.
func (l Log) MarshalJSON() ([]byte, error) {
	w := logWire{
		ID:      l.ID,
		HabitID: l.HabitID,
		Date:    l.Date,
		Value:   l.Value,
	}
	if l.Timezone != nil {
		w.Timezone = calendar.ZoneName(l.Timezone)
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler for Log.
func (l *Log) UnmarshalJSON(data []byte) error {
	var w logWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	var loc *time.Location
	if w.Timezone != "" {
		var err error
		loc, err = calendar.LoadZone(w.Timezone)
		if err != nil {
			return fmt.Errorf("log %q: %w", w.ID, err)
		}
	}
	*l = Log{
		ID:       w.ID,
		HabitID:  w.HabitID,
		Date:     w.Date,
		Value:    w.Value,
		Timezone: loc,
	}
	return nil
}
