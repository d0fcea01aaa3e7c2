package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/posixtime/internal/clock"
	"github.com/roach88/posixtime/internal/deadline"
	"github.com/roach88/posixtime/internal/timespec"
)

// DeltaOptions holds flags for the delta command.
type DeltaOptions struct {
	*RootOptions
	Now  string // fixed current time; the configured clock when empty
	Wait bool   // block until the deadline passes
}

// DeltaResult is the output of the delta command.
type DeltaResult struct {
	Target     TimestampView `json:"target"`
	Now        TimestampView `json:"now"`
	Ticks      uint64        `json:"ticks"`
	DurationNS int64         `json:"duration_ns"`
	Waited     bool          `json:"waited,omitempty"`
}

// NewDeltaCommand creates the delta command.
func NewDeltaCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeltaOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "delta <deadline>",
		Short: "Ticks remaining until an absolute deadline",
		Long: `Compute the ticks remaining until an absolute deadline.

The current time comes from --now when given, otherwise from the configured
clock (monotonic or realtime). A deadline that has already passed reports
ETIMEDOUT.

Exit codes:
  0 - Deadline is now or in the future
  1 - Deadline has already passed
  2 - Command error (bad arguments, invalid timestamp, bad config)

Examples:
  posixtime delta 12.5 --now 10
  posixtime delta 3:0 --now 1:999999999 --rate 100
  posixtime delta 5 --now 4.98 --wait`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelta(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Now, "now", "", "current time (defaults to the configured clock)")
	cmd.Flags().BoolVar(&opts.Wait, "wait", false, "block until the deadline passes")

	return cmd
}

func runDelta(opts *DeltaOptions, arg string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)

	cfg, conv, err := opts.converter(f)
	if err != nil {
		return err
	}

	target, err := timespec.Parse(arg)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeParse, fmt.Errorf("deadline: %w", err))
	}

	var src clock.Source
	if opts.Now != "" {
		now, err := timespec.Parse(opts.Now)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeParse, fmt.Errorf("--now: %w", err))
		}
		src = clock.Fixed(now)
	} else {
		src, err = clock.ByName(cfg.Clock)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeConfig, err)
		}
	}

	planner := deadline.NewPlanner(conv, src, deadline.WithLogger(opts.newLogger(f.GetErrWriter())))

	decision, err := planner.Plan(target)
	if err != nil {
		return f.FailTimespec(err)
	}
	if decision.Expired {
		return f.FailTimespec(timespec.NewTimedOutError("delta",
			fmt.Sprintf("deadline %s passed at %s", target, decision.Now)))
	}

	result := DeltaResult{
		Target:     viewOf(target),
		Now:        viewOf(decision.Now),
		Ticks:      uint64(decision.Ticks),
		DurationNS: decision.Duration.Nanoseconds(),
	}

	if opts.Wait {
		f.VerboseLog("Waiting %s", decision.Duration)
		if err := planner.Wait(cmd.Context(), target); err != nil {
			if timespec.CodeOf(err) != "" {
				return f.FailTimespec(err)
			}
			return f.Fail(ExitFailure, ErrCodeGeneric, err)
		}
		result.Waited = true
	}

	return f.Result(result, fmt.Sprintf("%d ticks (%s)", result.Ticks, decision.Duration))
}
