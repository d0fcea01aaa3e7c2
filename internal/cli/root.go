package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/posixtime/internal/config"
	"github.com/roach88/posixtime/internal/timespec"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string // YAML or CUE kernel config
	RateHz     uint32 // overrides tick_rate_hz when non-zero
	Width      uint8  // overrides tick_width when non-zero
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the posixtime CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "posixtime",
		Short: "POSIX timespec arithmetic for tick-based kernels",
		Long: `Convert and compare POSIX timespec values the way a tick-based RTOS
kernel does: timeouts become tick counts rounded up, deadlines that have
already passed report ETIMEDOUT, and arithmetic flags negative results.

Kernel settings come from --config (YAML or CUE) and may be overridden with
--rate and --width.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "kernel config file (.yaml, .yml or .cue)")
	cmd.PersistentFlags().Uint32Var(&opts.RateHz, "rate", 0, "tick rate in Hz (overrides config)")
	cmd.PersistentFlags().Uint8Var(&opts.Width, "width", 0, "tick counter width 16|32|64 (overrides config)")

	// Add subcommands
	cmd.AddCommand(NewTicksCommand(opts))
	cmd.AddCommand(NewDeltaCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewAddNanosecondsCommand(opts))
	cmd.AddCommand(NewSubCommand(opts))
	cmd.AddCommand(NewCompareCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewNormalizeCommand(opts))
	cmd.AddCommand(NewStrnlenCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// LoadConfig resolves the kernel configuration: the --config file or the
// defaults, then the --rate and --width overrides.
func (o *RootOptions) LoadConfig() (config.Config, error) {
	cfg := config.Default()
	if o.ConfigPath != "" {
		loaded, err := config.Load(o.ConfigPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if o.RateHz != 0 {
		cfg.TickRateHz = o.RateHz
	}
	if o.Width != 0 {
		cfg.TickWidth = o.Width
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// converter loads the configuration and builds its converter, reporting
// failures through f.
func (o *RootOptions) converter(f *OutputFormatter) (config.Config, *timespec.Converter, error) {
	cfg, err := o.LoadConfig()
	if err != nil {
		return config.Config{}, nil, f.Fail(ExitCommandError, ErrCodeConfig, err)
	}
	conv, err := cfg.Converter()
	if err != nil {
		return config.Config{}, nil, f.Fail(ExitCommandError, ErrCodeConfig, err)
	}
	f.VerboseLog("Using %d Hz, %d-bit ticks, %s clock", cfg.TickRateHz, cfg.TickWidth, cfg.Clock)
	return cfg, conv, nil
}

// newLogger returns a text logger on w at debug level when verbose.
func (o *RootOptions) newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
