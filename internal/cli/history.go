package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/posixtime/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Name     string // only runs of this vector file name
	Limit    int
	RunID    string // show outcomes of one run
}

// HistoryResult is the output of the history command.
type HistoryResult struct {
	Runs     []store.Run           `json:"runs,omitempty"`
	Outcomes []store.OutcomeRecord `json:"outcomes,omitempty"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded conformance runs",
		Long: `Show conformance runs recorded by check --db, newest first.

With --run the per-case outcomes of that run are shown instead.

Examples:
  posixtime history --db runs.db
  posixtime history --db runs.db --name ticks --limit 5
  posixtime history --db runs.db --run 0190c7f2-...`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "only runs of this vector file name")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of runs (0 for all)")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "show outcomes of this run")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)
	ctx := cmd.Context()

	st, err := store.Open(opts.Database, store.WithLogger(opts.newLogger(f.GetErrWriter())))
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeStore, err)
	}
	defer st.Close()

	if opts.RunID != "" {
		outcomes, err := st.ReadOutcomes(ctx, opts.RunID)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeStore, err)
		}
		if len(outcomes) == 0 {
			return f.Fail(ExitCommandError, ErrCodeNotFound, fmt.Errorf("no outcomes for run %s", opts.RunID))
		}
		if f.Format == "json" {
			return f.Success(HistoryResult{Outcomes: outcomes})
		}
		for _, o := range outcomes {
			mark := "✓"
			if !o.Pass {
				mark = "✗"
			}
			fmt.Fprintf(f.Writer, "%s %d %s [%s] %s\n", mark, o.Index, o.CaseName, o.Op, o.Actual)
			for _, m := range o.Mismatches {
				fmt.Fprintf(f.Writer, "    %s\n", m)
			}
		}
		return nil
	}

	runs, err := st.ListRuns(ctx, store.ListFilter{Name: opts.Name, Limit: opts.Limit})
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeStore, err)
	}

	if f.Format == "json" {
		return f.Success(HistoryResult{Runs: runs})
	}
	if len(runs) == 0 {
		fmt.Fprintln(f.Writer, "No runs recorded.")
		return nil
	}
	for _, r := range runs {
		mark := "✓"
		if !r.Pass {
			mark = "✗"
		}
		fmt.Fprintf(f.Writer, "%s #%d %s %s %d/%d passed (%d Hz, %d-bit) %s\n",
			mark, r.Seq, r.ID, r.Name, r.Total-r.Failed, r.Total, r.TickRateHz, r.TickWidth, r.VectorFile)
	}
	return nil
}
