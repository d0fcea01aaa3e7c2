package clock

import (
	"fmt"
	"sync"
	"time"

	"github.com/roach88/posixtime/internal/timespec"
)

// Source reports the current time.
type Source interface {
	Now() (timespec.Timestamp, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func() (timespec.Timestamp, error)

// Now calls f.
func (f SourceFunc) Now() (timespec.Timestamp, error) { return f() }

// Names accepted by ByName.
const (
	NameMonotonic = "monotonic"
	NameRealtime  = "realtime"
)

// ByName returns the system source registered under name.
func ByName(name string) (Source, error) {
	switch name {
	case NameMonotonic:
		return Monotonic(), nil
	case NameRealtime:
		return Realtime(), nil
	default:
		return nil, fmt.Errorf("unknown clock %q", name)
	}
}

// Fixed returns a source that always reports ts.
func Fixed(ts timespec.Timestamp) Source {
	return SourceFunc(func() (timespec.Timestamp, error) { return ts, nil })
}

// Manual is a settable clock for tests.
//
// Thread-safety: all methods are safe for concurrent use.
type Manual struct {
	mu  sync.Mutex
	now timespec.Timestamp
}

// NewManual creates a manual clock reading start.
func NewManual(start timespec.Timestamp) *Manual {
	return &Manual{now: start}
}

// Now returns the current reading.
func (m *Manual) Now() (timespec.Timestamp, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now, nil
}

// Set replaces the current reading.
func (m *Manual) Set(ts timespec.Timestamp) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = ts
}

// Advance moves the clock by d, which may be negative. The reading is
// renormalized, and like timespec.Add it wraps on int64 nanosecond overflow.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = timespec.FromNanoseconds(m.now.TotalNanoseconds() + d.Nanoseconds())
}
