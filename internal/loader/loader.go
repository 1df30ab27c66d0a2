package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"

	"github.com/roach88/ritual/internal/habit"
)

// LoadMode controls how errors are handled during loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// LoadResult contains the habits loaded from a directory.
type LoadResult struct {
	Habits    []habit.Habit // sorted by CUE label
	Labels    []string      // Labels[i] is the CUE label of Habits[i]
	FileCount int
}

// LoadHabits loads the `habit: <label>: {...}` definitions from the CUE
// package in dir. Dates without an explicit timezone resolve in loc.
//
// Directory-level failures return a nil result. Per-habit failures are
// returned alongside the habits that did compile.
func LoadHabits(dir string, loc *time.Location, mode LoadMode) (*LoadResult, []error) {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("habits directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing habits directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	cueFiles, err := FindCUEFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(cueFiles) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}}
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{fromCUEError(ErrCodeLoadFailed, "", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, []error{fromCUEError(ErrCodeBuildFailed, "", err)}
	}

	schema, err := compileSchema(ctx)
	if err != nil {
		return nil, []error{fromCUEError(ErrCodeGeneric, "", err)}
	}

	result, errs := compileAll(value, schema, loc, mode)
	result.FileCount = len(cueFiles)
	return result, errs
}

// compileAll compiles every field under `habit`.
func compileAll(value, schema cue.Value, loc *time.Location, mode LoadMode) (*LoadResult, []error) {
	result := &LoadResult{}
	var errs []error

	habitsVal := value.LookupPath(cue.ParsePath("habit"))
	if !habitsVal.Exists() {
		return result, []error{&LoadError{Code: ErrCodeNoHabits, Message: "no habit definitions found"}}
	}

	iter, err := habitsVal.Fields()
	if err != nil {
		return result, []error{fromCUEError(ErrCodeGeneric, "", err)}
	}

	type compiled struct {
		label string
		habit habit.Habit
	}
	var ok []compiled
	seen := make(map[string]string)

	for iter.Next() {
		label := iter.Selector().Unquoted()
		h, err := CompileHabit(iter.Value(), schema, loc)
		if err == nil {
			if prev, dup := seen[h.ID]; dup {
				err = &LoadError{
					Code:    ErrCodeDuplicateID,
					Habit:   label,
					Message: fmt.Sprintf("id %q already used by habit %s", h.ID, prev),
					Pos:     iter.Value().Pos(),
				}
			}
		}
		if err != nil {
			errs = append(errs, err)
			if mode == LoadModeFailFast {
				return result, errs
			}
			continue
		}
		seen[h.ID] = label
		ok = append(ok, compiled{label: label, habit: h})
	}

	sort.Slice(ok, func(i, j int) bool { return ok[i].label < ok[j].label })
	for _, c := range ok {
		result.Labels = append(result.Labels, c.label)
		result.Habits = append(result.Habits, c.habit)
	}

	if len(result.Habits) == 0 && len(errs) == 0 {
		errs = append(errs, &LoadError{Code: ErrCodeNoHabits, Message: "no habit definitions found"})
	}
	return result, errs
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
