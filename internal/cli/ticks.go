package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

// TicksResult is the output of the ticks command.
type TicksResult struct {
	Timeout TimestampView `json:"timeout"`
	Ticks   uint64        `json:"ticks"`
	RateHz  uint32        `json:"rate_hz"`
	Width   uint8         `json:"width"`
}

// NewTicksCommand creates the ticks command.
func NewTicksCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ticks <timeout>",
		Short: "Convert a relative timeout to kernel ticks",
		Long: `Convert a relative timeout to kernel ticks, rounding any partial tick up.

Timestamps are written as S, S.F (up to 9 fractional digits) or S:N with raw
seconds and nanoseconds fields.

Examples:
  posixtime ticks 1.5
  posixtime ticks 0:1 --rate 100
  posixtime ticks 70 --width 16`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTicks(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runTicks(opts *RootOptions, arg string, cmd *cobra.Command) error {
	f := newFormatter(opts, cmd)

	cfg, conv, err := opts.converter(f)
	if err != nil {
		return err
	}

	operands, err := parseOperands(f, arg)
	if err != nil {
		return err
	}

	ticks, err := conv.ToTicks(operands[0])
	if err != nil {
		return f.FailTimespec(err)
	}

	return f.Result(TicksResult{
		Timeout: viewOf(*operands[0]),
		Ticks:   uint64(ticks),
		RateHz:  cfg.TickRateHz,
		Width:   cfg.TickWidth,
	}, strconv.FormatUint(uint64(ticks), 10))
}
