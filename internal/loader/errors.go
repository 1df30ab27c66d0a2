package loader

import (
	"fmt"

	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// Load error codes (L000-L099). Habit invariant violations keep their H1xx
// codes from the habit package.
const (
	ErrCodeGeneric     = "L001" // Generic/unknown error
	ErrCodeScanError   = "L002" // Directory scan error
	ErrCodeNoFiles     = "L003" // No CUE files found
	ErrCodeLoadFailed  = "L004" // CUE load failed
	ErrCodeNotFound    = "L005" // Path not found
	ErrCodeBuildFailed = "L006" // CUE build failed
	ErrCodeSchema      = "L010" // Value does not match #Habit
	ErrCodeUnknownKey  = "L011" // Unknown top-level habit field
	ErrCodeBadDate     = "L012" // Malformed start_date or end_date
	ErrCodeBadZone     = "L013" // Unknown timezone
	ErrCodeBadVariant  = "L014" // Unknown schedule or kind type
	ErrCodeNoHabits    = "L015" // No habit definitions found
	ErrCodeDuplicateID = "L016" // Two definitions resolve to the same ID
)

// LoadError represents an error that occurred while loading habit definitions.
type LoadError struct {
	Code    string
	Habit   string // CUE label, empty for directory-level errors
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Habit != "" {
		msg = fmt.Sprintf("habit %s: %s", e.Habit, e.Message)
	}
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, msg)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// fromCUEError extracts the first positioned error from a CUE error.
func fromCUEError(code, label string, err error) *LoadError {
	le := &LoadError{Code: code, Habit: label, Message: err.Error()}
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return le
	}
	first := errs[0]
	le.Message = first.Error()
	if positions := errors.Positions(first); len(positions) > 0 {
		le.Pos = positions[0]
	}
	return le
}
