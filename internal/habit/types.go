package habit

import (
	"fmt"
	"strings"
	"time"

	"github.com/roach88/ritual/internal/calendar"
)

// Schedule is a sealed interface over the supported recurrence rules.
// Only Daily, DaysOfWeek and TimesPerWeek implement it.
type Schedule interface {
	schedule() // Sealed
	fmt.Stringer
}

// Daily expects the habit every day.
type Daily struct{}

func (Daily) schedule() {}

func (Daily) String() string { return "daily" }

// DaysOfWeek expects the habit on a fixed set of ISO weekdays.
type DaysOfWeek struct {
	Days WeekdaySet
}

func (DaysOfWeek) schedule() {}

func (s DaysOfWeek) String() string { return "days_of_week(" + s.Days.String() + ")" }

// TimesPerWeek expects the habit on Target distinct days of each
// Monday-anchored week. Any day of the week may be used.
type TimesPerWeek struct {
	Target int
}

func (TimesPerWeek) schedule() {}

func (s TimesPerWeek) String() string { return fmt.Sprintf("times_per_week(%d)", s.Target) }

// Kind is a sealed interface over how a habit is tracked.
// Only Binary and Numeric implement it.
type Kind interface {
	kind() // Sealed
	fmt.Stringer
}

// Binary habits are done or not done.
type Binary struct{}

func (Binary) kind() {}

func (Binary) String() string { return "binary" }

// Numeric habits record a quantity. With a DailyTarget a log completes the
// day once its value reaches the target; without one any positive value does.
type Numeric struct {
	DailyTarget *float64
}

func (Numeric) kind() {}

func (k Numeric) String() string {
	if k.DailyTarget == nil {
		return "numeric"
	}
	return fmt.Sprintf("numeric(%g)", *k.DailyTarget)
}

// WeekdaySet is a set of ISO weekdays (Monday=1 ... Sunday=7).
// Bit i is set when weekday i is a member.
type WeekdaySet uint8

// NewWeekdaySet builds a set from ISO weekdays. Values outside 1..7 are ignored;
// use ParseWeekdays to reject them instead.
func NewWeekdaySet(days ...int) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		if d >= 1 && d <= 7 {
			s |= 1 << d
		}
	}
	return s
}

// ParseWeekdays builds a set from ISO weekdays, rejecting values outside 1..7.
func ParseWeekdays(days []int) (WeekdaySet, error) {
	for _, d := range days {
		if d < 1 || d > 7 {
			return 0, fmt.Errorf("weekday %d out of range 1..7", d)
		}
	}
	return NewWeekdaySet(days...), nil
}

// Contains reports whether ISO weekday d is in the set.
func (s WeekdaySet) Contains(d int) bool {
	if d < 1 || d > 7 {
		return false
	}
	return s&(1<<d) != 0
}

// Days returns the members in ascending order.
func (s WeekdaySet) Days() []int {
	days := make([]int, 0, 7)
	for d := 1; d <= 7; d++ {
		if s.Contains(d) {
			days = append(days, d)
		}
	}
	return days
}

// Len returns the number of members.
func (s WeekdaySet) Len() int {
	return len(s.Days())
}

func (s WeekdaySet) String() string {
	parts := make([]string, 0, 7)
	for _, d := range s.Days() {
		parts = append(parts, weekdayAbbrev[d])
	}
	return strings.Join(parts, ",")
}

var weekdayAbbrev = [8]string{"", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Habit is an immutable snapshot of a recurring habit.
type Habit struct {
	ID        string
	Name      string
	Schedule  Schedule
	Kind      Kind
	StartDate time.Time
	EndDate   *time.Time // nil while the habit is open-ended
	IsActive  bool
}

// Option configures a Habit built by New.
type Option func(*Habit)

// WithName sets the display name.
func WithName(name string) Option {
	return func(h *Habit) { h.Name = name }
}

// WithEndDate bounds the habit.
func WithEndDate(end time.Time) Option {
	return func(h *Habit) { h.EndDate = &end }
}

// Inactive marks the habit as paused.
func Inactive() Option {
	return func(h *Habit) { h.IsActive = false }
}

// New builds an active habit and checks its construction-time invariants.
func New(id string, sched Schedule, kind Kind, start time.Time, opts ...Option) (Habit, error) {
	h := Habit{
		ID:        id,
		Schedule:  sched,
		Kind:      kind,
		StartDate: start,
		IsActive:  true,
	}
	for _, opt := range opts {
		opt(&h)
	}
	if errs := h.Validate(); len(errs) > 0 {
		return Habit{}, errs
	}
	return h, nil
}

// Log is an immutable snapshot of one habit log entry.
//
// Date is the start of the logged calendar day in the zone that was active
// when the log was created. Timezone records that zone; when nil the caller's
// default zone is used instead.
type Log struct {
	ID       string
	HabitID  string
	Date     time.Time
	Value    *float64
	Timezone *time.Location
}

// NewLog creates a log for day as seen in loc. The zone is stored on the log
// so the log keeps representing day whatever zone later queries use.
func NewLog(habitID string, day calendar.Date, loc *time.Location, value *float64) Log {
	l := Log{
		HabitID:  habitID,
		Date:     day.In(loc),
		Value:    value,
		Timezone: loc,
	}
	l.ID = LogID(l)
	return l
}

// Location returns the log's own zone, or fallback when it has none.
func (l Log) Location(fallback *time.Location) *time.Location {
	if l.Timezone != nil {
		return l.Timezone
	}
	return fallback
}

// Day returns the calendar day the log represents.
func (l Log) Day(fallback *time.Location) calendar.Date {
	return calendar.DateOf(l.Date, l.Location(fallback))
}

// Float returns a pointer to v, for Log.Value and Numeric.DailyTarget literals.
func Float(v float64) *float64 {
	return &v
}
