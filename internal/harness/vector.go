package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/posixtime/internal/config"
	"github.com/roach88/posixtime/internal/timespec"
)

// VectorFile is a named set of conformance cases sharing one kernel
// configuration.
type VectorFile struct {
	// Name uniquely identifies this vector file.
	Name string `yaml:"name"`

	// Description explains what the cases cover.
	Description string `yaml:"description"`

	// Config overrides the default kernel configuration. Fields left out
	// keep their defaults.
	Config *config.Config `yaml:"config,omitempty"`

	// Cases are evaluated in order.
	Cases []Case `yaml:"cases"`
}

// Case is one operation with its inputs and expected outcome.
type Case struct {
	// Name identifies the case within the file.
	Name string `yaml:"name"`

	// Op is one of the Op* constants.
	Op string `yaml:"op"`

	// X and Y are the timestamp operands. A missing operand is passed as
	// nil, which is how absent-argument behavior is exercised.
	X *timespec.Timestamp `yaml:"x,omitempty"`
	Y *timespec.Timestamp `yaml:"y,omitempty"`

	// Nanoseconds is the scalar input of from_nanoseconds and
	// add_nanoseconds.
	Nanoseconds int64 `yaml:"nanoseconds,omitempty"`

	// Buffer and Max are the inputs of bounded_length. A missing buffer is
	// passed as nil. "\0" in YAML double-quoted strings is a terminator.
	Buffer *string `yaml:"buffer,omitempty"`
	Max    int     `yaml:"max,omitempty"`

	// Expect is compared field by field; omitted fields are not checked.
	Expect Expect `yaml:"expect"`
}

// Expect holds the expected outcome of a case.
type Expect struct {
	// Status is "ok" or "negative" for add, add_nanoseconds and subtract.
	Status string `yaml:"status,omitempty"`

	// Error is the expected error code (EINVAL, ETIMEDOUT, EINTERNAL).
	// When empty the case must succeed.
	Error string `yaml:"error,omitempty"`

	Value   *timespec.Timestamp `yaml:"value,omitempty"`
	Ticks   *uint64             `yaml:"ticks,omitempty"`
	Compare *int                `yaml:"compare,omitempty"`
	Valid   *bool               `yaml:"valid,omitempty"`
	Length  *int                `yaml:"length,omitempty"`
}

// Operation names.
const (
	OpValidate        = "validate"
	OpToTicks         = "to_ticks"
	OpDeltaTicks      = "delta_ticks"
	OpFromNanoseconds = "from_nanoseconds"
	OpAdd             = "add"
	OpAddNanoseconds  = "add_nanoseconds"
	OpSubtract        = "subtract"
	OpCompare         = "compare"
	OpBoundedLength   = "bounded_length"
)

// ValidOps lists every supported operation.
var ValidOps = []string{
	OpValidate, OpToTicks, OpDeltaTicks, OpFromNanoseconds, OpAdd,
	OpAddNanoseconds, OpSubtract, OpCompare, OpBoundedLength,
}

// LoadVectorFile reads and parses a vector YAML file.
// Unknown fields are rejected so typos in expectations cannot silently pass.
func LoadVectorFile(path string) (*VectorFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vector file: %w", err)
	}

	vf, err := ParseVectorFile(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return vf, nil
}

// ParseVectorFile parses vector YAML.
func ParseVectorFile(data []byte) (*VectorFile, error) {
	var vf VectorFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&vf); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if vf.Config != nil {
		applyConfigDefaults(vf.Config)
	}

	if err := validateVectorFile(&vf); err != nil {
		return nil, fmt.Errorf("invalid vector file: %w", err)
	}
	return &vf, nil
}

// KernelConfig returns the file's configuration, or the default.
func (vf *VectorFile) KernelConfig() config.Config {
	if vf.Config == nil {
		return config.Default()
	}
	return *vf.Config
}

// FindVectorFiles returns the YAML files under dir in lexical order.
// filter, when set, is a glob matched against the file name without
// extension.
func FindVectorFiles(dir, filter string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(filepath.Base(path), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func applyConfigDefaults(c *config.Config) {
	def := config.Default()
	if c.TickRateHz == 0 {
		c.TickRateHz = def.TickRateHz
	}
	if c.TickWidth == 0 {
		c.TickWidth = def.TickWidth
	}
	if c.Clock == "" {
		c.Clock = def.Clock
	}
}

func validateVectorFile(vf *VectorFile) error {
	if vf.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(vf.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}
	if vf.Config != nil {
		if err := vf.Config.Validate(); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}

	seen := make(map[string]bool, len(vf.Cases))
	for i, c := range vf.Cases {
		if c.Name == "" {
			return fmt.Errorf("cases[%d]: name is required", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("cases[%d]: duplicate name %q", i, c.Name)
		}
		seen[c.Name] = true

		if !isValidOp(c.Op) {
			return fmt.Errorf("cases[%d] %q: unknown op %q (want one of %v)", i, c.Name, c.Op, ValidOps)
		}
		if c.Expect == (Expect{}) {
			return fmt.Errorf("cases[%d] %q: expect must set at least one field", i, c.Name)
		}
		if c.Expect.Status != "" && c.Expect.Status != timespec.StatusOK.String() &&
			c.Expect.Status != timespec.StatusNegative.String() {
			return fmt.Errorf("cases[%d] %q: status %q must be ok or negative", i, c.Name, c.Expect.Status)
		}
		switch timespec.ErrorCode(c.Expect.Error) {
		case "", timespec.ErrCodeInvalidArgument, timespec.ErrCodeTimedOut, timespec.ErrCodeInternal:
		default:
			return fmt.Errorf("cases[%d] %q: unknown error code %q", i, c.Name, c.Expect.Error)
		}
	}
	return nil
}

func isValidOp(op string) bool {
	for _, v := range ValidOps {
		if v == op {
			return true
		}
	}
	return false
}
