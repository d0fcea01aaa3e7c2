package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/posixtime/internal/timespec"
)

// Harness evaluates vector cases against one converter.
type Harness struct {
	conv   *timespec.Converter
	logger *slog.Logger
}

// Option configures a run.
type Option func(*Harness)

// WithLogger routes per-case debug output to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Harness) {
		h.logger = logger
	}
}

// Run evaluates every case in vf and returns the result.
// An error is returned only when the file's configuration cannot produce a
// converter; case mismatches are reported in the Result.
func Run(vf *VectorFile, opts ...Option) (*Result, error) {
	cfg := vf.KernelConfig()
	conv, err := cfg.Converter()
	if err != nil {
		return nil, fmt.Errorf("vector file %q: %w", vf.Name, err)
	}

	h := &Harness{
		conv:   conv,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}

	result := NewResult(vf.Name)
	for i, c := range vf.Cases {
		actual := h.evaluate(c)
		mismatches := compare(c.Expect, actual)

		h.logger.Debug("case evaluated",
			"file", vf.Name,
			"case", c.Name,
			"op", c.Op,
			"pass", len(mismatches) == 0,
		)

		result.AddOutcome(Outcome{
			Index:      i,
			Name:       c.Name,
			Op:         c.Op,
			Pass:       len(mismatches) == 0,
			Actual:     actual,
			Mismatches: mismatches,
		})
	}
	return result, nil
}

// evaluate runs a single case. Operands are copied so a case can never
// observe another case's writes.
func (h *Harness) evaluate(c Case) Actual {
	x, y := copyTimestamp(c.X), copyTimestamp(c.Y)

	var a Actual
	switch c.Op {
	case OpValidate:
		a.Valid = ptr(timespec.Validate(x))

	case OpToTicks:
		ticks, err := h.conv.ToTicks(x)
		setTicks(&a, ticks, err)

	case OpDeltaTicks:
		ticks, err := h.conv.DeltaTicks(x, y)
		setTicks(&a, ticks, err)

	case OpFromNanoseconds:
		a.Value = ptr(timespec.FromNanoseconds(c.Nanoseconds))

	case OpAdd:
		r, err := timespec.Add(x, y)
		setResult(&a, r, err, true)

	case OpAddNanoseconds:
		r, err := timespec.AddNanoseconds(x, c.Nanoseconds)
		setResult(&a, r, err, true)

	case OpSubtract:
		r, err := timespec.Subtract(x, y)
		setResult(&a, r, err, r.Status == timespec.StatusOK)

	case OpCompare:
		a.Compare = ptr(timespec.Compare(x, y))

	case OpBoundedLength:
		var buf []byte
		if c.Buffer != nil {
			buf = []byte(*c.Buffer)
		}
		a.Length = ptr(timespec.BoundedLength(buf, c.Max))
	}
	return a
}

func setTicks(a *Actual, ticks timespec.Ticks, err error) {
	if err != nil {
		a.Error = string(timespec.CodeOf(err))
		return
	}
	a.Ticks = ptr(uint64(ticks))
}

func setResult(a *Actual, r timespec.Result, err error, withValue bool) {
	if err != nil {
		a.Error = string(timespec.CodeOf(err))
		return
	}
	a.Status = r.Status.String()
	if withValue {
		a.Value = ptr(r.Value)
	}
}

// compare checks every field set in want against got.
func compare(want Expect, got Actual) []string {
	var mismatches []string
	fail := func(format string, args ...any) {
		mismatches = append(mismatches, fmt.Sprintf(format, args...))
	}

	if want.Error != got.Error {
		switch {
		case want.Error == "":
			fail("unexpected error %s", got.Error)
		case got.Error == "":
			fail("expected error %s, got success", want.Error)
		default:
			fail("expected error %s, got %s", want.Error, got.Error)
		}
	}
	if want.Status != "" && want.Status != got.Status {
		fail("expected status %q, got %q", want.Status, got.Status)
	}
	if want.Value != nil && (got.Value == nil || *want.Value != *got.Value) {
		fail("expected value %s, got %s", want.Value, formatPtr(got.Value))
	}
	if want.Ticks != nil && (got.Ticks == nil || *want.Ticks != *got.Ticks) {
		fail("expected ticks %d, got %s", *want.Ticks, formatPtr(got.Ticks))
	}
	if want.Compare != nil && (got.Compare == nil || *want.Compare != *got.Compare) {
		fail("expected compare %d, got %s", *want.Compare, formatPtr(got.Compare))
	}
	if want.Valid != nil && (got.Valid == nil || *want.Valid != *got.Valid) {
		fail("expected valid %t, got %s", *want.Valid, formatPtr(got.Valid))
	}
	if want.Length != nil && (got.Length == nil || *want.Length != *got.Length) {
		fail("expected length %d, got %s", *want.Length, formatPtr(got.Length))
	}
	return mismatches
}

func formatPtr[T any](p *T) string {
	if p == nil {
		return "nothing"
	}
	return fmt.Sprint(*p)
}

func copyTimestamp(ts *timespec.Timestamp) *timespec.Timestamp {
	if ts == nil {
		return nil
	}
	c := *ts
	return &c
}

func ptr[T any](v T) *T { return &v }
