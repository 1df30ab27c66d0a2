package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/ritual/internal/habit"
)

// Snapshot renders a scenario result as canonical JSON. Only engine answers
// are included, so a snapshot changes exactly when a computed value does.
func Snapshot(scenarioName string, result *Result) ([]byte, error) {
	checks := make([]any, len(result.Checks))
	for i, c := range result.Checks {
		checks[i] = map[string]any{
			"type":  c.Type,
			"habit": c.Habit,
			"got":   c.Got,
			"pass":  c.Pass,
		}
	}
	return habit.MarshalCanonical(map[string]any{
		"scenario": scenarioName,
		"checks":   checks,
	})
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := Snapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
