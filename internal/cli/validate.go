package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/posixtime/internal/timespec"
)

// ValidationResult is the output of validate.
type ValidationResult struct {
	Valid     bool           `json:"valid"`
	Timestamp *TimestampView `json:"timestamp,omitempty"`
}

// NormalizeOptions holds flags for the normalize command.
type NormalizeOptions struct {
	*RootOptions
	Nanoseconds bool // argument is a nanosecond count
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <timestamp>",
		Short: "Check that a timestamp is normalized",
		Long: `Check that a timestamp is present and normalized, with nanoseconds in
[0, 999999999]. Use the S:N form to test raw field values.

Exit codes:
  0 - Timestamp is valid
  1 - Timestamp is absent or denormalized
  2 - Command error (unparseable argument)

Examples:
  posixtime validate 1:999999999
  posixtime validate 1:1000000000`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, arg string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)

	operands, err := parseOperands(f, arg)
	if err != nil {
		return err
	}
	ts := operands[0]

	result := ValidationResult{Valid: timespec.Validate(ts)}
	if ts != nil {
		v := viewOf(*ts)
		result.Timestamp = &v
	}

	if f.Format == "json" {
		if err := f.Success(result); err != nil {
			return err
		}
	} else if result.Valid {
		fmt.Fprintf(f.Writer, "✓ %s is valid\n", ts)
	} else {
		fmt.Fprintf(f.Writer, "✗ %s is not a valid timestamp\n", arg)
	}

	if !result.Valid {
		// Validation failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("%s is not a valid timestamp", arg))
	}
	return nil
}

// NewNormalizeCommand creates the normalize command.
func NewNormalizeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &NormalizeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "normalize <timestamp>",
		Short: "Normalize a timestamp or nanosecond count",
		Long: `Normalize a timestamp so that nanoseconds lie in [0, 999999999].

With --ns the argument is a signed total nanosecond count.

Examples:
  posixtime normalize 1:2500000000
  posixtime normalize --ns -- -1`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNormalize(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Nanoseconds, "ns", false, "treat the argument as a nanosecond count")

	return cmd
}

func runNormalize(opts *NormalizeOptions, arg string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)

	var total int64
	if opts.Nanoseconds {
		ns, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeParse, fmt.Errorf("nanoseconds: %w", err))
		}
		total = ns
	} else {
		ts, err := timespec.Parse(arg)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeParse, err)
		}
		total = ts.TotalNanoseconds()
	}

	ts := timespec.FromNanoseconds(total)
	return f.Result(viewOf(ts), ts.String())
}
