package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/ritual/internal/loader"
)

// ValidationIssue is one problem found in a habits directory.
type ValidationIssue struct {
	Code    string `json:"code"`
	Habit   string `json:"habit,omitempty"`
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Habits []string          `json:"habits,omitempty"`
	Errors []ValidationIssue `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <habits-dir>",
		Short: "Validate CUE habit definitions",
		Long: `Compile the CUE habit definitions in a directory and check them against
the habit schema and invariants without touching the database.

Exit codes:
  0 - All habits valid
  1 - One or more habits invalid
  2 - Command error (directory missing, no CUE files, etc.)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, dir string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	result, err := loadDefinitions(opts, f, dir)
	if err != nil {
		return err
	}

	return f.Success(ValidationResult{Valid: true, Habits: result.Labels}, func(w io.Writer) {
		fmt.Fprintf(w, "✓ %d habit(s) valid\n", len(result.Labels))
	})
}

// loadDefinitions compiles dir and reports every problem through f. A nil
// error means every definition compiled.
func loadDefinitions(opts *RootOptions, f *OutputFormatter, dir string) (*loader.LoadResult, error) {
	loc, err := opts.location()
	if err != nil {
		return nil, f.Fail(ExitCommandError, CodeBadArgument, err.Error(), nil)
	}

	result, errs := loader.LoadHabits(dir, loc, loader.LoadModeCollectAll)
	if result == nil {
		issue := toIssue(errs[0])
		return nil, f.Fail(ExitCommandError, issue.Code, issue.Message, nil)
	}

	opts.logger().Debug("loaded habit definitions",
		zap.String("dir", dir),
		zap.Int("files", result.FileCount),
		zap.Int("habits", len(result.Habits)),
		zap.Int("errors", len(errs)),
	)

	if len(errs) > 0 {
		issues := make([]ValidationIssue, len(errs))
		for i, e := range errs {
			issues[i] = toIssue(e)
		}
		message := fmt.Sprintf("validation failed with %d error(s)", len(issues))
		return nil, f.FailWith(ExitFailure, ValidationResult{Valid: false, Errors: issues}, CodeValidation, message,
			func(w io.Writer) { writeIssues(w, issues) })
	}

	return result, nil
}

func toIssue(err error) ValidationIssue {
	var le *loader.LoadError
	if !errors.As(err, &le) {
		return ValidationIssue{Code: CodeGeneric, Message: err.Error()}
	}
	issue := ValidationIssue{Code: le.Code, Habit: le.Habit, Message: le.Message}
	if le.Pos.IsValid() {
		issue.File = filepath.Base(le.Pos.Filename())
		issue.Line = le.Pos.Line()
	}
	return issue
}

func writeIssues(w io.Writer, issues []ValidationIssue) {
	fmt.Fprintln(w, "✗ Validation failed")
	fmt.Fprintln(w)

	for _, issue := range issues {
		if issue.Line > 0 {
			fmt.Fprintf(w, "%s:%d\n", issue.File, issue.Line)
		}
		if issue.Habit != "" {
			fmt.Fprintf(w, "  %s: habit %s: %s\n\n", issue.Code, issue.Habit, issue.Message)
		} else {
			fmt.Fprintf(w, "  %s: %s\n\n", issue.Code, issue.Message)
		}
	}
}
