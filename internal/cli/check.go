package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/posixtime/internal/harness"
	"github.com/roach88/posixtime/internal/store"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
	Filter   string // vector file filter (glob pattern)
	Database string // record runs in this SQLite database when set
	Snapshot string // write canonical snapshots to this directory when set
}

// FileResult holds the result of a single vector file.
type FileResult struct {
	Name   string   `json:"name"`
	Path   string   `json:"path"`
	Pass   bool     `json:"pass"`
	Cases  int      `json:"cases"`
	Failed int      `json:"failed"`
	Errors []string `json:"errors,omitempty"`
	RunID  string   `json:"run_id,omitempty"`
}

// CheckResult holds the overall check result.
type CheckResult struct {
	Files  []FileResult `json:"files"`
	Passed int          `json:"passed"`
	Failed int          `json:"failed"`
	Total  int          `json:"total"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <vectors-dir>",
		Short: "Run conformance vectors",
		Long: `Run YAML conformance vector files against the timespec routines.

Files without a config block use the kernel config from --config, --rate
and --width. With --db every file's run is recorded for the history command.

Exit codes:
  0 - All vector files passed
  1 - One or more vector files failed
  2 - Command error (invalid paths, bad vector files, etc.)

Examples:
  posixtime check ./testdata/vectors
  posixtime check ./testdata/vectors --filter "ticks*"
  posixtime check ./testdata/vectors --db runs.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter vector files by glob pattern")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record runs in this SQLite database")
	cmd.Flags().StringVar(&opts.Snapshot, "snapshot", "", "write canonical result snapshots to this directory")

	return cmd
}

func runCheck(opts *CheckOptions, vectorsDir string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)
	logger := opts.newLogger(f.GetErrWriter())

	if _, err := os.Stat(vectorsDir); os.IsNotExist(err) {
		return f.Fail(ExitCommandError, ErrCodeNotFound, fmt.Errorf("vectors directory not found: %s", vectorsDir))
	}

	cfg, _, err := opts.converter(f)
	if err != nil {
		return err
	}

	files, err := harness.FindVectorFiles(vectorsDir, opts.Filter)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeGeneric, fmt.Errorf("failed to find vector files: %w", err))
	}

	var st *store.Store
	if opts.Database != "" {
		logger.Debug("opening database", "path", opts.Database)
		st, err = store.Open(opts.Database, store.WithLogger(logger))
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeStore, err)
		}
		defer st.Close()
	}

	if opts.Snapshot != "" {
		if err := os.MkdirAll(opts.Snapshot, 0755); err != nil {
			return f.Fail(ExitCommandError, ErrCodeGeneric, fmt.Errorf("failed to create snapshot directory: %w", err))
		}
	}

	result := CheckResult{
		Files: make([]FileResult, 0, len(files)),
		Total: len(files),
	}

	for _, path := range files {
		vf, err := harness.LoadVectorFile(path)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeParse, err)
		}
		if vf.Config == nil {
			fileCfg := cfg
			vf.Config = &fileCfg
		}

		logger.Debug("running vector file", "path", path, "cases", len(vf.Cases))
		run, err := harness.Run(vf, harness.WithLogger(logger))
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeConfig, err)
		}

		fr := FileResult{
			Name:   vf.Name,
			Path:   path,
			Pass:   run.Pass,
			Cases:  len(run.Outcomes),
			Failed: run.Failed(),
			Errors: run.Errors,
		}

		if st != nil {
			rec, err := st.RecordRun(cmd.Context(), path, vf.KernelConfig(), run)
			if err != nil {
				return f.Fail(ExitCommandError, ErrCodeStore, err)
			}
			fr.RunID = rec.ID
		}

		if opts.Snapshot != "" {
			if err := writeSnapshot(opts.Snapshot, path, run); err != nil {
				return f.Fail(ExitCommandError, ErrCodeGeneric, err)
			}
		}

		result.Files = append(result.Files, fr)
		if fr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if f.Format == "json" {
		if err := f.Success(result); err != nil {
			return err
		}
	} else {
		outputCheckText(f, result)
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d vector file(s) failed", result.Failed, result.Total))
	}
	return nil
}

func outputCheckText(f *OutputFormatter, result CheckResult) {
	w := f.Writer
	if result.Total == 0 {
		fmt.Fprintln(w, "No vector files found.")
		return
	}

	for _, fr := range result.Files {
		if fr.Pass {
			fmt.Fprintf(w, "✓ %s (%d cases)\n", fr.Name, fr.Cases)
			continue
		}
		fmt.Fprintf(w, "✗ %s (%d of %d cases failed)\n", fr.Name, fr.Failed, fr.Cases)
		for _, e := range fr.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
}

// writeSnapshot writes the canonical snapshot of a vector file result.
func writeSnapshot(dir, vectorPath string, result *harness.Result) error {
	data, err := harness.Snapshot(result)
	if err != nil {
		return fmt.Errorf("failed to snapshot %s: %w", vectorPath, err)
	}

	base := filepath.Base(vectorPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	path := filepath.Join(dir, name+".golden")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}
