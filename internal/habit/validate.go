package habit

import (
	"errors"
	"fmt"
	"strings"
)

// Validation error codes (H100-H199)
const (
	ErrMissingID          = "H101" // id is required
	ErrInvalidDateRange   = "H102" // start date after end date
	ErrMissingSchedule    = "H103" // schedule or kind is nil or not a known variant
	ErrInvalidWeeklyQuota = "H104" // times_per_week target must be positive
	ErrEmptyWeekdays      = "H105" // days_of_week needs at least one day
	ErrInvalidDailyTarget = "H106" // numeric daily target must be positive
	ErrMissingStartDate   = "H107" // start date is required
)

// ValidationError represents a violated construction-time invariant.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// ValidationErrors collects every violation found on one habit.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (errs ValidationErrors) Error() string {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Has reports whether any collected error carries code.
func (errs ValidationErrors) Has(code string) bool {
	for _, e := range errs {
		if e.Code == code {
			return true
		}
	}
	return false
}

// Validate checks the habit's invariants and returns every violation.
// A nil result means the habit is safe to evaluate.
func (h Habit) Validate() ValidationErrors {
	var errs ValidationErrors

	if strings.TrimSpace(h.ID) == "" {
		errs = append(errs, ValidationError{
			Field:   "id",
			Message: "id is required and must be non-empty",
			Code:    ErrMissingID,
		})
	}

	if h.StartDate.IsZero() {
		errs = append(errs, ValidationError{
			Field:   "start_date",
			Message: "start date is required",
			Code:    ErrMissingStartDate,
		})
	}

	if h.EndDate != nil && h.EndDate.Before(h.StartDate) {
		errs = append(errs, ValidationError{
			Field:   "end_date",
			Message: fmt.Sprintf("end date %s is before start date %s", h.EndDate.Format("2006-01-02"), h.StartDate.Format("2006-01-02")),
			Code:    ErrInvalidDateRange,
		})
	}

	switch s := h.Schedule.(type) {
	case nil:
		errs = append(errs, ValidationError{
			Field:   "schedule",
			Message: "schedule is required",
			Code:    ErrMissingSchedule,
		})
	case Daily:
	case DaysOfWeek:
		if s.Days.Len() == 0 {
			errs = append(errs, ValidationError{
				Field:   "schedule.days",
				Message: "days_of_week needs at least one weekday",
				Code:    ErrEmptyWeekdays,
			})
		}
	case TimesPerWeek:
		if s.Target <= 0 {
			errs = append(errs, ValidationError{
				Field:   "schedule.target",
				Message: fmt.Sprintf("times_per_week target must be positive, got %d", s.Target),
				Code:    ErrInvalidWeeklyQuota,
			})
		}
	default:
		errs = append(errs, ValidationError{
			Field:   "schedule",
			Message: fmt.Sprintf("unknown schedule %T", s),
			Code:    ErrMissingSchedule,
		})
	}

	switch k := h.Kind.(type) {
	case nil:
		errs = append(errs, ValidationError{
			Field:   "kind",
			Message: "kind is required",
			Code:    ErrMissingSchedule,
		})
	case Binary:
	case Numeric:
		if k.DailyTarget != nil && !(*k.DailyTarget > 0) {
			errs = append(errs, ValidationError{
				Field:   "kind.daily_target",
				Message: fmt.Sprintf("daily target must be positive, got %g", *k.DailyTarget),
				Code:    ErrInvalidDailyTarget,
			})
		}
	default:
		errs = append(errs, ValidationError{
			Field:   "kind",
			Message: fmt.Sprintf("unknown kind %T", k),
			Code:    ErrMissingSchedule,
		})
	}

	return errs
}

// IsValidationError reports whether err carries habit validation failures.
func IsValidationError(err error) bool {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single ValidationError
	return errors.As(err, &single)
}
