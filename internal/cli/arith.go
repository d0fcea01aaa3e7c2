package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/posixtime/internal/timespec"
)

// ArithmeticResult is the output of add, add-ns and sub.
type ArithmeticResult struct {
	Op     string        `json:"op"`
	Status string        `json:"status"`
	Code   int           `json:"code"`
	Value  TimestampView `json:"value"`
}

// CompareResult is the output of compare.
type CompareResult struct {
	Result int `json:"result"`
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <x> <y>",
		Short: "Add two timestamps",
		Long: `Add two timestamps and renormalize the sum.

The status is "negative" when the sum is negative; the value is still shown.

Examples:
  posixtime add 1.5 2.75
  posixtime add -3 1.25`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			operands, err := parseOperands(f, args...)
			if err != nil {
				return err
			}
			r, err := timespec.Add(operands[0], operands[1])
			return outputArithmetic(f, "add", r, err)
		},
	}
}

// NewAddNanosecondsCommand creates the add-ns command.
func NewAddNanosecondsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add-ns <x> <nanoseconds>",
		Short: "Add a signed nanosecond count to a timestamp",
		Long: `Add a signed nanosecond count to a timestamp.

Examples:
  posixtime add-ns 1.5 600000000
  posixtime add-ns 0 -- -1`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			operands, err := parseOperands(f, args[0])
			if err != nil {
				return err
			}
			ns, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return f.Fail(ExitCommandError, ErrCodeParse, fmt.Errorf("nanoseconds: %w", err))
			}
			r, err := timespec.AddNanoseconds(operands[0], ns)
			return outputArithmetic(f, "add_nanoseconds", r, err)
		},
	}
}

// NewSubCommand creates the sub command.
func NewSubCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sub <x> <y>",
		Short: "Subtract y from x",
		Long: `Subtract y from x.

When x is earlier than y the status is "negative" and the value is zero.

Examples:
  posixtime sub 5 3.5
  posixtime sub 1 2`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			operands, err := parseOperands(f, args...)
			if err != nil {
				return err
			}
			r, err := timespec.Subtract(operands[0], operands[1])
			return outputArithmetic(f, "subtract", r, err)
		},
	}
}

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <x> <y>",
		Short: "Compare two timestamps",
		Long: `Compare two timestamps, printing -1, 0 or 1.

Either argument may be "nil": two absent values are equal and an absent
value orders before a present one.

Examples:
  posixtime compare 1.5 1:500000000
  posixtime compare nil 0`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			operands, err := parseOperands(f, args...)
			if err != nil {
				return err
			}
			c := timespec.Compare(operands[0], operands[1])
			return f.Result(CompareResult{Result: c}, strconv.Itoa(c))
		},
	}
}

func outputArithmetic(f *OutputFormatter, op string, r timespec.Result, err error) error {
	if err != nil {
		return f.FailTimespec(err)
	}
	result := ArithmeticResult{
		Op:     op,
		Status: r.Status.String(),
		Code:   timespec.StatusCode(r, nil),
		Value:  viewOf(r.Value),
	}
	return f.Result(result, fmt.Sprintf("%s (%s)", r.Value, r.Status))
}
