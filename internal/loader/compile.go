package loader

import (
	_ "embed"
	"fmt"
	"slices"
	"time"

	"cuelang.org/go/cue"
	"github.com/google/uuid"

	"github.com/roach88/ritual/internal/calendar"
	"github.com/roach88/ritual/internal/habit"
)

//go:embed schema.cue
var schemaCUE string

// HabitNamespace is the UUIDv5 namespace for habit IDs derived from labels.
var HabitNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("ritual.habit"))

// knownFields are the fields a habit definition may carry.
var knownFields = []string{"id", "name", "schedule", "kind", "start_date", "end_date", "timezone", "active"}

// definition mirrors #Habit for decoding.
type definition struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Schedule struct {
		Type   string `json:"type"`
		Days   []int  `json:"days"`
		Target int    `json:"target"`
	} `json:"schedule"`
	Kind struct {
		Type        string   `json:"type"`
		DailyTarget *float64 `json:"daily_target"`
	} `json:"kind"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Timezone  string `json:"timezone"`
	Active    *bool  `json:"active"`
}

// compileSchema builds #Habit in ctx. Values must share a context to unify.
func compileSchema(ctx *cue.Context) (cue.Value, error) {
	v := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := v.Err(); err != nil {
		return cue.Value{}, err
	}
	return v.LookupPath(cue.ParsePath("#Habit")), nil
}

// HabitID returns the ID for a definition labelled label: UUIDv5 of the label
// in HabitNamespace. The same label always maps to the same ID.
func HabitID(label string) string {
	return uuid.NewSHA1(HabitNamespace, []byte(label)).String()
}

// CompileHabit turns one habit definition into a validated habit.Habit.
//
// The value should be the definition struct itself, e.g. the result of
// LookupPath("habit.run"). schema is #Habit compiled in the same context.
// Dates are civil days; they start at midnight in the definition's timezone
// or, when it has none, in loc.
func CompileHabit(v, schema cue.Value, loc *time.Location) (habit.Habit, error) {
	label := labelOf(v)

	if err := v.Err(); err != nil {
		return habit.Habit{}, fromCUEError(ErrCodeBuildFailed, label, err)
	}

	iter, err := v.Fields()
	if err != nil {
		return habit.Habit{}, fromCUEError(ErrCodeSchema, label, err)
	}
	for iter.Next() {
		if !slices.Contains(knownFields, iter.Selector().Unquoted()) {
			return habit.Habit{}, &LoadError{
				Code:    ErrCodeUnknownKey,
				Habit:   label,
				Message: fmt.Sprintf("unknown field %q", iter.Selector().Unquoted()),
				Pos:     iter.Value().Pos(),
			}
		}
	}

	unified := schema.Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return habit.Habit{}, fromCUEError(ErrCodeSchema, label, err)
	}

	var def definition
	if err := unified.Decode(&def); err != nil {
		return habit.Habit{}, fromCUEError(ErrCodeSchema, label, err)
	}

	if def.Timezone != "" {
		zone, err := calendar.LoadZone(def.Timezone)
		if err != nil {
			return habit.Habit{}, positioned(v, "timezone", ErrCodeBadZone, label, err.Error())
		}
		loc = zone
	}
	if loc == nil {
		loc = time.UTC
	}

	start, err := calendar.ParseDate(def.StartDate)
	if err != nil {
		return habit.Habit{}, positioned(v, "start_date", ErrCodeBadDate, label, err.Error())
	}

	sched, err := habit.ScheduleFromParts(def.Schedule.Type, def.Schedule.Days, def.Schedule.Target)
	if err != nil {
		return habit.Habit{}, positioned(v, "schedule", ErrCodeBadVariant, label, err.Error())
	}

	kindType := def.Kind.Type
	if kindType == "" {
		kindType = habit.KindBinary
	}
	kind, err := habit.KindFromParts(kindType, def.Kind.DailyTarget)
	if err != nil {
		return habit.Habit{}, positioned(v, "kind", ErrCodeBadVariant, label, err.Error())
	}

	h := habit.Habit{
		ID:        def.ID,
		Name:      def.Name,
		Schedule:  sched,
		Kind:      kind,
		StartDate: start.In(loc),
		IsActive:  def.Active == nil || *def.Active,
	}
	if h.ID == "" {
		h.ID = HabitID(label)
	}
	if h.Name == "" {
		h.Name = label
	}
	if def.EndDate != "" {
		end, err := calendar.ParseDate(def.EndDate)
		if err != nil {
			return habit.Habit{}, positioned(v, "end_date", ErrCodeBadDate, label, err.Error())
		}
		t := end.In(loc)
		h.EndDate = &t
	}

	if errs := h.Validate(); len(errs) > 0 {
		first := errs[0]
		return habit.Habit{}, positioned(v, first.Field, first.Code, label, first.Message)
	}

	return h, nil
}

// positioned builds a LoadError pointing at path within v, or at v itself
// when path does not exist.
func positioned(v cue.Value, path, code, label, msg string) *LoadError {
	pos := v.Pos()
	if field := v.LookupPath(cue.ParsePath(path)); field.Exists() {
		pos = field.Pos()
	}
	return &LoadError{Code: code, Habit: label, Message: msg, Pos: pos}
}

func labelOf(v cue.Value) string {
	sels := v.Path().Selectors()
	if len(sels) == 0 {
		return ""
	}
	return sels[len(sels)-1].Unquoted()
}
