package timespec

import (
	"fmt"
	"time"
)

// NanosecondsPerSecond is the number of nanoseconds in one second.
const NanosecondsPerSecond = 1_000_000_000

// Timestamp is a (seconds, nanoseconds) pair describing either an absolute
// time or a relative duration.
type Timestamp struct {
	Seconds     int64 `json:"sec" yaml:"sec"`
	Nanoseconds int64 `json:"nsec" yaml:"nsec"`
}

// Status tags the outcome of Add and Subtract.
type Status int

const (
	// StatusOK means the result is valid and non-negative.
	StatusOK Status = iota
	// StatusNegative means the result is, or would be, negative.
	// Subtract leaves Result.Value zero in this case; Add still fills it.
	StatusNegative
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNegative:
		return "negative"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is the tagged result of Add, AddNanoseconds and Subtract.
// Hard failures are reported through the accompanying error instead.
type Result struct {
	Value  Timestamp
	Status Status
}

// StatusCode folds a Result and its error into the kernel-style integer
// status: -1 on error, 0 for StatusOK, 1 for StatusNegative.
func StatusCode(r Result, err error) int {
	if err != nil {
		return -1
	}
	return int(r.Status)
}

// Validate reports whether ts is present and normalized.
// The seconds field is not range checked.
func Validate(ts *Timestamp) bool {
	if ts == nil {
		return false
	}
	return ts.Nanoseconds >= 0 && ts.Nanoseconds < NanosecondsPerSecond
}

// FromNanoseconds splits a signed nanosecond count into a normalized
// Timestamp. Negative remainders borrow from the seconds field, so -1
// becomes {-1, 999999999}.
func FromNanoseconds(total int64) Timestamp {
	ts := Timestamp{
		Seconds:     total / NanosecondsPerSecond,
		Nanoseconds: total % NanosecondsPerSecond,
	}
	if ts.Nanoseconds < 0 {
		ts.Seconds--
		ts.Nanoseconds += NanosecondsPerSecond
	}
	return ts
}

// FromDuration converts a Go duration to a normalized Timestamp.
func FromDuration(d time.Duration) Timestamp {
	return FromNanoseconds(d.Nanoseconds())
}

// TotalNanoseconds returns seconds*1e9 + nanoseconds using wrapping int64
// arithmetic.
func (t Timestamp) TotalNanoseconds() int64 {
	return t.Seconds*NanosecondsPerSecond + t.Nanoseconds
}

// Duration converts t to a Go duration. Values beyond the range of
// time.Duration wrap.
func (t Timestamp) Duration() time.Duration {
	return time.Duration(t.TotalNanoseconds())
}

// IsZero reports whether both fields are zero.
func (t Timestamp) IsZero() bool {
	return t.Seconds == 0 && t.Nanoseconds == 0
}

// String renders normalized timestamps as "S.NNNNNNNNN" and anything else
// as "{S, N}" so denormalized values stay visible.
func (t Timestamp) String() string {
	if !Validate(&t) {
		return fmt.Sprintf("{%d, %d}", t.Seconds, t.Nanoseconds)
	}
	if t.Seconds < 0 && t.Nanoseconds != 0 {
		// {-1, 250000000} is -0.75s
		return fmt.Sprintf("-%d.%09d", -(t.Seconds + 1), NanosecondsPerSecond-t.Nanoseconds)
	}
	return fmt.Sprintf("%d.%09d", t.Seconds, t.Nanoseconds)
}

// Compare orders x and y by seconds, then nanoseconds. It returns -1, 0 or 1.
// A nil timestamp sorts before any non-nil one; two nils are equal.
// No normalization is applied.
func Compare(x, y *Timestamp) int {
	switch {
	case x == nil && y == nil:
		return 0
	case y == nil:
		return 1
	case x == nil:
		return -1
	}

	switch {
	case x.Seconds > y.Seconds:
		return 1
	case x.Seconds < y.Seconds:
		return -1
	case x.Nanoseconds > y.Nanoseconds:
		return 1
	case x.Nanoseconds < y.Nanoseconds:
		return -1
	default:
		return 0
	}
}

// Add sums x and y as 64-bit nanosecond totals and renormalizes the result.
// Status is StatusNegative when the 64-bit sum is negative, which also
// catches a sign flip from overflow. Value is always set.
func Add(x, y *Timestamp) (Result, error) {
	if x == nil || y == nil {
		return Result{}, invalidArgument("add", "timestamp is nil")
	}

	sum := x.TotalNanoseconds() + y.TotalNanoseconds()

	r := Result{Value: FromNanoseconds(sum)}
	if sum < 0 {
		r.Status = StatusNegative
	}
	return r, nil
}

// AddNanoseconds adds a signed nanosecond count to x.
// It has the same result semantics as Add.
func AddNanoseconds(x *Timestamp, nanoseconds int64) (Result, error) {
	if x == nil {
		return Result{}, invalidArgument("add_nanoseconds", "timestamp is nil")
	}
	y := FromNanoseconds(nanoseconds)
	return Add(x, &y)
}

// Subtract computes x - y.
//
// When x < y the result would be negative: Subtract returns StatusNegative
// with a zero Value and no error. Equal inputs give a zero Value. Otherwise
// the field-wise difference is taken with a one second borrow; if the
// nanoseconds are still negative after the borrow the inputs were not
// normalized and an internal error is returned.
func Subtract(x, y *Timestamp) (Result, error) {
	if x == nil || y == nil {
		return Result{}, invalidArgument("subtract", "timestamp is nil")
	}

	switch Compare(x, y) {
	case -1:
		return Result{Status: StatusNegative}, nil
	case 0:
		return Result{}, nil
	}

	diff := Timestamp{
		Seconds:     x.Seconds - y.Seconds,
		Nanoseconds: x.Nanoseconds - y.Nanoseconds,
	}
	if diff.Nanoseconds < 0 {
		diff.Seconds--
		diff.Nanoseconds += NanosecondsPerSecond
	}
	if diff.Nanoseconds < 0 {
		return Result{}, internalError("subtract",
			fmt.Sprintf("nanoseconds %d negative after borrow", diff.Nanoseconds))
	}

	return Result{Value: diff}, nil
}
