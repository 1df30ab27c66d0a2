package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/roach88/ritual/internal/store"
)

// ImportedHabit reports what happened to one definition.
type ImportedHabit struct {
	Label  string `json:"label"`
	ID     string `json:"id"`
	Change string `json:"change"` // "inserted" | "updated" | "unchanged"
}

// ImportResult summarizes an import.
type ImportResult struct {
	Habits    []ImportedHabit `json:"habits"`
	Inserted  int             `json:"inserted"`
	Updated   int             `json:"updated"`
	Unchanged int             `json:"unchanged"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <habits-dir>",
		Short: "Load CUE habit definitions into the database",
		Long: `Validate the CUE habit definitions in a directory and upsert them into
the database. Nothing is written unless every definition is valid.

Importing the same definitions again is a no-op: habits without an explicit
id get the same derived id every time.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runImport(opts *RootOptions, dir string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	defs, err := loadDefinitions(opts, f, dir)
	if err != nil {
		return err
	}

	st, err := opts.openStore()
	if err != nil {
		return f.Fail(ExitCommandError, CodeStore, err.Error(), nil)
	}
	defer st.Close()

	result := ImportResult{Habits: make([]ImportedHabit, 0, len(defs.Habits))}
	for i, h := range defs.Habits {
		change, err := st.PutHabit(cmd.Context(), h)
		if err != nil {
			return f.Fail(ExitCommandError, CodeStore, fmt.Sprintf("habit %s: %v", defs.Labels[i], err), nil)
		}

		switch change {
		case store.Inserted:
			result.Inserted++
		case store.Updated:
			result.Updated++
		default:
			result.Unchanged++
		}
		result.Habits = append(result.Habits, ImportedHabit{Label: defs.Labels[i], ID: h.ID, Change: change.String()})
	}

	opts.logger().Info("imported habits",
		zap.String("dir", dir),
		zap.Int("inserted", result.Inserted),
		zap.Int("updated", result.Updated),
		zap.Int("unchanged", result.Unchanged),
	)

	return f.Success(result, func(w io.Writer) {
		for _, h := range result.Habits {
			fmt.Fprintf(w, "  %-9s %s (%s)\n", h.Change, h.Label, h.ID)
		}
		fmt.Fprintf(w, "✓ %d habit(s): %d inserted, %d updated, %d unchanged\n",
			len(result.Habits), result.Inserted, result.Updated, result.Unchanged)
	})
}
