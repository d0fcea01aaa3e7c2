package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/posixtime/internal/timespec"
)

// StrnlenOptions holds flags for the strnlen command.
type StrnlenOptions struct {
	*RootOptions
	Max     int  // bound; negative means the argument length
	Escaped bool // interpret Go escape sequences such as \x00
}

// StrnlenResult is the output of strnlen.
type StrnlenResult struct {
	Length int `json:"length"`
	Max    int `json:"max"`
}

// NewStrnlenCommand creates the strnlen command.
func NewStrnlenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StrnlenOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "strnlen <string>",
		Short: "Bounded length of a NUL-terminated string",
		Long: `Count the bytes before the first NUL, never more than --max.

Examples:
  posixtime strnlen hello --max 3
  posixtime strnlen 'ab\x00cd' --escaped`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStrnlen(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Max, "max", -1, "maximum length (defaults to the argument length)")
	cmd.Flags().BoolVar(&opts.Escaped, "escaped", false, "interpret Go escape sequences in the argument")

	return cmd
}

func runStrnlen(opts *StrnlenOptions, arg string, cmd *cobra.Command) error {
	f := newFormatter(opts.RootOptions, cmd)

	buf := arg
	if opts.Escaped {
		unquoted, err := strconv.Unquote(`"` + arg + `"`)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeParse, fmt.Errorf("escaped string: %w", err))
		}
		buf = unquoted
	}

	maxLength := opts.Max
	if maxLength < 0 {
		maxLength = len(buf)
	}

	n := timespec.BoundedLength([]byte(buf), maxLength)
	return f.Result(StrnlenResult{Length: n, Max: maxLength}, strconv.Itoa(n))
}
