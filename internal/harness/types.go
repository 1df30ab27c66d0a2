package harness

import "fmt"

// CheckResult records what the engine answered for one check.
type CheckResult struct {
	Type  string `json:"type"`
	Habit string `json:"habit"`
	// Got is the engine's answer, formatted for display and snapshots.
	Got  string `json:"got"`
	Pass bool   `json:"pass"`
	// Message explains a failure. Empty when Pass is true.
	Message string `json:"message,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every check matched its expectation.
	Pass bool `json:"pass"`

	// Checks holds one entry per scenario check, in order.
	Checks []CheckResult `json:"checks"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Checks: []CheckResult{},
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddCheck records a check outcome, failing the result on a mismatch.
func (r *Result) AddCheck(index int, c CheckResult) {
	r.Checks = append(r.Checks, c)
	if !c.Pass {
		r.AddError(fmt.Sprintf("checks[%d] %s %s: %s", index, c.Type, c.Habit, c.Message))
	}
}
