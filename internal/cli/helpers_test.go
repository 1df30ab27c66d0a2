package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roach88/ritual/internal/testutil"
)

// testHabits defines three habits with fixed IDs starting Monday 2024-01-01.
const testHabits = `package habits

habit: gym: {
	id:         "gym"
	name:       "Gym"
	schedule:   {type: "days_of_week", days: [1, 3, 5]}
	start_date: "2024-01-01"
}

habit: swim: {
	id:         "swim"
	schedule:   {type: "times_per_week", target: 2}
	start_date: "2024-01-01"
}

habit: water: {
	id:         "water"
	schedule:   {type: "daily"}
	kind:       {type: "numeric", daily_target: 8}
	start_date: "2024-01-01"
}
`

// cliRun holds the captured output of one invocation.
type cliRun struct {
	Stdout string
	Stderr string
	Err    error
}

// runCLI executes the root command with a clock pinned at now.
func runCLI(t *testing.T, now time.Time, args ...string) cliRun {
	t.Helper()
	clock := testutil.NewFixedClock(now)
	cmd := newRootCommand(&RootOptions{Now: clock.Now})

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return cliRun{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}

// decodeResponse parses the JSON envelope, decoding data into v when set.
func decodeResponse(t *testing.T, out string, v any) CLIResponse {
	t.Helper()
	var raw struct {
		Status string          `json:"status"`
		Data   json.RawMessage `json:"data"`
		Error  *CLIError       `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &raw), out)
	if v != nil {
		require.NotEmpty(t, raw.Data, "response has no data: %s", out)
		require.NoError(t, json.Unmarshal(raw.Data, v))
	}
	return CLIResponse{Status: raw.Status, Error: raw.Error}
}

// writeHabitsDir writes src as the only CUE file of a fresh directory.
func writeHabitsDir(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "habits.cue"), []byte(src), 0644))
	return dir
}

// day returns noon UTC on the given date, a safe "now" for any zone
// within a few hours of UTC.
func day(s string) time.Time {
	return testutil.Day(s).In(time.UTC).Add(12 * time.Hour)
}
