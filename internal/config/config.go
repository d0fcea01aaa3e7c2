package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/posixtime/internal/timespec"
)

//go:embed schema.cue
var schemaCUE string

// Clock names accepted in configuration.
const (
	ClockMonotonic = "monotonic"
	ClockRealtime  = "realtime"
)

// ValidClocks lists the accepted clock names.
var ValidClocks = []string{ClockMonotonic, ClockRealtime}

// Config holds the kernel timing configuration.
type Config struct {
	// TickRateHz is the scheduler tick frequency (configTICK_RATE_HZ).
	TickRateHz uint32 `yaml:"tick_rate_hz" json:"tick_rate_hz"`

	// TickWidth is the bit width of the tick counter: 16, 32 or 64.
	TickWidth uint8 `yaml:"tick_width" json:"tick_width"`

	// Clock names the source of the current time.
	Clock string `yaml:"clock" json:"clock"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		TickRateHz: 1000,
		TickWidth:  32,
		Clock:      ClockMonotonic,
	}
}

// Load reads a configuration file, choosing the decoder by extension.
// The result is validated before it is returned.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		cfg, err = ParseYAML(data)
	case ".cue":
		cfg, err = ParseCUE(path, data)
	default:
		return Config{}, fmt.Errorf("unsupported config extension %q (want .yaml, .yml or .cue)", ext)
	}
	if err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseYAML decodes YAML over the defaults, rejecting unknown fields.
func ParseYAML(data []byte) (Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return cfg, nil
}

// ParseCUE evaluates data against the embedded #Config schema and decodes
// the concrete result. filename is only used in error positions.
func ParseCUE(filename string, data []byte) (Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, fmt.Errorf("failed to compile config schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	value := ctx.CompileBytes(data, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return Config{}, fmt.Errorf("failed to parse CUE: %w", err)
	}

	unified := def.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return Config{}, fmt.Errorf("config does not match schema: %w", err)
	}

	var cfg Config
	if err := unified.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode CUE config: %w", err)
	}
	return cfg, nil
}

// Validate checks ranges that the converter and clock lookup rely on.
func (c Config) Validate() error {
	if c.TickRateHz == 0 || c.TickRateHz > timespec.MaxTickRateHz {
		return fmt.Errorf("tick_rate_hz %d outside [1, %d]", c.TickRateHz, timespec.MaxTickRateHz)
	}
	if !timespec.TickWidth(c.TickWidth).Valid() {
		return fmt.Errorf("tick_width %d must be 16, 32 or 64", c.TickWidth)
	}
	if !isValidClock(c.Clock) {
		return fmt.Errorf("clock %q must be one of %v", c.Clock, ValidClocks)
	}
	return nil
}

// Converter builds the tick converter described by c.
func (c Config) Converter() (*timespec.Converter, error) {
	return timespec.NewConverter(c.TickRateHz, timespec.TickWidth(c.TickWidth))
}

func isValidClock(name string) bool {
	for _, v := range ValidClocks {
		if v == name {
			return true
		}
	}
	return false
}
