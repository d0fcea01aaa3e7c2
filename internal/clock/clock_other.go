//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package clock

import (
	"time"

	"github.com/roach88/posixtime/internal/timespec"
)

var processStart = time.Now()

// Monotonic reports the time elapsed since process start, read from the
// monotonic component of time.Now.
func Monotonic() Source {
	return SourceFunc(func() (timespec.Timestamp, error) {
		return timespec.FromDuration(time.Since(processStart)), nil
	})
}

// Realtime reports wall-clock time since the Unix epoch.
func Realtime() Source {
	return SourceFunc(func() (timespec.Timestamp, error) {
		return timespec.FromNanoseconds(time.Now().UnixNano()), nil
	})
}
