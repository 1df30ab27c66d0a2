package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateValidHabits(t *testing.T) {
	dir := writeHabitsDir(t, testHabits)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Equal(t, "✓ 3 habit(s) valid\n", buf.String())
}

func TestValidateValidHabitsJSON(t *testing.T) {
	dir := writeHabitsDir(t, testHabits)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	require.NoError(t, cmd.Execute())

	var result ValidationResult
	resp := decodeResponse(t, buf.String(), &result)
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, result.Valid)
	assert.Equal(t, []string{"gym", "swim", "water"}, result.Habits)
}

func TestValidateInvalidHabits(t *testing.T) {
	dir := writeHabitsDir(t, `package habits

habit: ok: {
	schedule:   {type: "daily"}
	start_date: "2024-01-01"
}

habit: when: {
	schedule:   {type: "daily"}
	start_date: "2024-13-45"
}

habit: where: {
	schedule:   {type: "daily"}
	start_date: "2024-01-01"
	timezone:   "Mars/Olympus"
}
`)

	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var result ValidationResult
	resp := decodeResponse(t, buf.String(), &result)
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, CodeValidation, resp.Error.Code)
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 2)

	byHabit := map[string]string{}
	for _, issue := range result.Errors {
		byHabit[issue.Habit] = issue.Code
	}
	assert.Equal(t, map[string]string{"when": "L012", "where": "L013"}, byHabit)
}

func TestValidateInvalidHabitsText(t *testing.T) {
	dir := writeHabitsDir(t, `package habits

habit: typo: {
	schedule:   {type: "daily"}
	start_date: "2024-01-01"
	colour:     "red"
}
`)

	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{dir})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "✗ Validation failed")
	assert.Contains(t, buf.String(), "L011: habit typo:")
}

func TestValidateNonExistentDirectory(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewValidateCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "Error [L005]")
}

func TestValidateEmptyDirectory(t *testing.T) {
	buf := &bytes.Buffer{}
	cmd := NewValidateCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{t.TempDir()})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	resp := decodeResponse(t, buf.String(), nil)
	assert.Equal(t, "L003", resp.Error.Code)
}
