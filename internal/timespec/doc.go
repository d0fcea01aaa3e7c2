// Package timespec implements the timestamp arithmetic used by the POSIX
// timed-wait layer.
//
// A Timestamp is a (seconds, nanoseconds) pair. It is normalized when
// 0 <= Nanoseconds < NanosecondsPerSecond. Arithmetic (Add, AddNanoseconds,
// Subtract, Compare) accepts non-normalized input; Validate and the tick
// conversions on Converter require normalized input.
//
// Tick conversion depends on the kernel tick rate, which is carried by a
// Converter value rather than process-wide state:
//
//	conv, err := timespec.NewConverter(1000, timespec.Width32)
//	if err != nil {
//	    return err
//	}
//	ticks, err := conv.DeltaTicks(&deadline, &now)
//	switch {
//	case timespec.IsTimedOut(err):
//	    // deadline already elapsed, do not block
//	case err != nil:
//	    return err
//	}
//
// Every function in this package is pure and safe for concurrent use.
// Nothing here logs, allocates shared state, or blocks.
package timespec
