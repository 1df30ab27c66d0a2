package harness

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/ritual/internal/calendar"
)

// Scenario defines a set of habits, their logs, and checks on the engine's
// answers for them.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Timezone is the default zone for dates, logs and checks. Defaults to UTC.
	Timezone string `yaml:"timezone,omitempty"`

	Habits []HabitDef `yaml:"habits"`
	Logs   []LogDef   `yaml:"logs,omitempty"`
	Checks []Check    `yaml:"checks"`
}

// HabitDef declares a habit. Dates are YYYY-MM-DD in the scenario zone.
type HabitDef struct {
	ID        string      `yaml:"id"`
	Name      string      `yaml:"name,omitempty"`
	Schedule  ScheduleDef `yaml:"schedule"`
	Kind      *KindDef    `yaml:"kind,omitempty"` // defaults to binary
	StartDate string      `yaml:"start_date"`
	EndDate   string      `yaml:"end_date,omitempty"`
	Active    *bool       `yaml:"active,omitempty"` // defaults to true
}

// ScheduleDef is the YAML form of habit.Schedule.
type ScheduleDef struct {
	Type   string `yaml:"type"`
	Days   []int  `yaml:"days,omitempty"`
	Target int    `yaml:"target,omitempty"`
}

// KindDef is the YAML form of habit.Kind.
type KindDef struct {
	Type        string   `yaml:"type"`
	DailyTarget *float64 `yaml:"daily_target,omitempty"`
}

// LogDef declares a log for the calendar day Date as seen in Timezone.
type LogDef struct {
	Habit string `yaml:"habit"`
	Date  string `yaml:"date"`

	// Timezone is the sticky zone stored on the log. Defaults to the
	// scenario zone. NoTimezone stores no zone, so queries fall back to
	// their own zone.
	Timezone   string `yaml:"timezone,omitempty"`
	NoTimezone bool   `yaml:"no_timezone,omitempty"`

	// Value defaults to 1. NoValue stores a log without a value.
	Value   *float64 `yaml:"value,omitempty"`
	NoValue bool     `yaml:"no_value,omitempty"`
}

// Check asks the engine one question about one habit.
type Check struct {
	// Type selects the question:
	//   - "range_progress": rate over [from, to]; expect
	//   - "expected_days": expected-day count over [from, to]; count
	//   - "daily_progress": 0 or 1 for date; expect
	//   - "weekly_progress": (completed, target) for date's week; completed, target
	//   - "is_expected": whether date is expected; want
	//   - "day_completed": whether date is completed; want
	//   - "needs_reminder": whether a reminder fires on date; want
	//   - "streak": streaks as of date; current, longest
	Type  string `yaml:"type"`
	Habit string `yaml:"habit"`

	Date string `yaml:"date,omitempty"`
	From string `yaml:"from,omitempty"`
	To   string `yaml:"to,omitempty"`

	// Timezone overrides the scenario zone for this query.
	Timezone string `yaml:"timezone,omitempty"`

	Expect    *float64 `yaml:"expect,omitempty"`
	Count     *int     `yaml:"count,omitempty"`
	Completed *int     `yaml:"completed,omitempty"`
	Target    *int     `yaml:"target,omitempty"`
	Want      *bool    `yaml:"want,omitempty"`
	Current   *int     `yaml:"current,omitempty"`
	Longest   *int     `yaml:"longest,omitempty"`
}

// Check type constants.
const (
	CheckRangeProgress  = "range_progress"
	CheckExpectedDays   = "expected_days"
	CheckDailyProgress  = "daily_progress"
	CheckWeeklyProgress = "weekly_progress"
	CheckIsExpected     = "is_expected"
	CheckDayCompleted   = "day_completed"
	CheckNeedsReminder  = "needs_reminder"
	CheckStreak         = "streak"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "check:" vs "checks:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// FindScenarioFiles returns the .yaml/.yml files under dir whose base name
// (without extension) matches the glob filter. An empty filter matches all.
func FindScenarioFiles(dir, filter string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})

	return files, err
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Timezone != "" {
		if _, err := calendar.LoadZone(s.Timezone); err != nil {
			return fmt.Errorf("timezone: %w", err)
		}
	}
	if len(s.Habits) == 0 {
		return fmt.Errorf("habits list is required and must be non-empty")
	}
	if len(s.Checks) == 0 {
		return fmt.Errorf("checks list is required and must be non-empty")
	}

	ids := make(map[string]bool, len(s.Habits))
	for i, h := range s.Habits {
		if h.ID == "" {
			return fmt.Errorf("habits[%d]: id is required", i)
		}
		if ids[h.ID] {
			return fmt.Errorf("habits[%d]: duplicate id %q", i, h.ID)
		}
		ids[h.ID] = true
		if h.Schedule.Type == "" {
			return fmt.Errorf("habits[%d]: schedule.type is required", i)
		}
		if err := validDate(h.StartDate); err != nil {
			return fmt.Errorf("habits[%d].start_date: %w", i, err)
		}
		if h.EndDate != "" {
			if err := validDate(h.EndDate); err != nil {
				return fmt.Errorf("habits[%d].end_date: %w", i, err)
			}
		}
	}

	for i, l := range s.Logs {
		if !ids[l.Habit] {
			return fmt.Errorf("logs[%d]: unknown habit %q", i, l.Habit)
		}
		if err := validDate(l.Date); err != nil {
			return fmt.Errorf("logs[%d].date: %w", i, err)
		}
		if l.NoTimezone && l.Timezone != "" {
			return fmt.Errorf("logs[%d]: timezone and no_timezone are exclusive", i)
		}
		if l.NoValue && l.Value != nil {
			return fmt.Errorf("logs[%d]: value and no_value are exclusive", i)
		}
	}

	for i := range s.Checks {
		if err := validateCheck(i, &s.Checks[i], ids); err != nil {
			return err
		}
	}

	return nil
}

// validateCheck validates a single check based on its type.
func validateCheck(index int, c *Check, ids map[string]bool) error {
	if c.Type == "" {
		return fmt.Errorf("checks[%d]: type is required", index)
	}
	if !ids[c.Habit] {
		return fmt.Errorf("checks[%d]: unknown habit %q", index, c.Habit)
	}

	needRange := func() error {
		if err := validDate(c.From); err != nil {
			return fmt.Errorf("checks[%d].from: %w", index, err)
		}
		if err := validDate(c.To); err != nil {
			return fmt.Errorf("checks[%d].to: %w", index, err)
		}
		return nil
	}
	needDate := func() error {
		if err := validDate(c.Date); err != nil {
			return fmt.Errorf("checks[%d].date: %w", index, err)
		}
		return nil
	}
	require := func(ok bool, field string) error {
		if !ok {
			return fmt.Errorf("checks[%d]: %s is required for %s", index, field, c.Type)
		}
		return nil
	}

	switch c.Type {
	case CheckRangeProgress:
		if err := needRange(); err != nil {
			return err
		}
		return require(c.Expect != nil, "expect")
	case CheckExpectedDays:
		if err := needRange(); err != nil {
			return err
		}
		return require(c.Count != nil, "count")
	case CheckDailyProgress:
		if err := needDate(); err != nil {
			return err
		}
		return require(c.Expect != nil, "expect")
	case CheckWeeklyProgress:
		if err := needDate(); err != nil {
			return err
		}
		if err := require(c.Completed != nil, "completed"); err != nil {
			return err
		}
		return require(c.Target != nil, "target")
	case CheckIsExpected, CheckDayCompleted, CheckNeedsReminder:
		if err := needDate(); err != nil {
			return err
		}
		return require(c.Want != nil, "want")
	case CheckStreak:
		if err := needDate(); err != nil {
			return err
		}
		if err := require(c.Current != nil, "current"); err != nil {
			return err
		}
		return require(c.Longest != nil, "longest")
	default:
		return fmt.Errorf("checks[%d]: unknown check type %q", index, c.Type)
	}
}

func validDate(s string) error {
	if s == "" {
		return fmt.Errorf("date is required")
	}
	_, err := calendar.ParseDate(s)
	return err
}
