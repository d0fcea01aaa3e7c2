//go:build linux || darwin || freebsd || netbsd || openbsd

package clock

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/roach88/posixtime/internal/timespec"
)

// Monotonic reads CLOCK_MONOTONIC.
func Monotonic() Source {
	return clockID(unix.CLOCK_MONOTONIC, NameMonotonic)
}

// Realtime reads CLOCK_REALTIME.
func Realtime() Source {
	return clockID(unix.CLOCK_REALTIME, NameRealtime)
}

func clockID(id int32, name string) Source {
	return SourceFunc(func() (timespec.Timestamp, error) {
		var ts unix.Timespec
		if err := unix.ClockGettime(id, &ts); err != nil {
			return timespec.Timestamp{}, fmt.Errorf("clock_gettime(%s): %w", name, err)
		}
		return FromUnix(ts), nil
	})
}

// FromUnix converts a kernel timespec.
func FromUnix(ts unix.Timespec) timespec.Timestamp {
	sec, nsec := ts.Unix()
	return timespec.Timestamp{Seconds: sec, Nanoseconds: nsec}
}

// ToUnix converts a normalized timestamp to a kernel timespec.
func ToUnix(ts timespec.Timestamp) unix.Timespec {
	return unix.NsecToTimespec(ts.TotalNanoseconds())
}
