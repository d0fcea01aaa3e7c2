// Package clock provides sources of the current time as timespec.Timestamp
// values.
//
// Monotonic and Realtime read the kernel clocks directly through
// golang.org/x/sys/unix where available and fall back to package time
// elsewhere. Fixed and Manual are deterministic sources for tests and for
// the CLI's --now flag.
package clock
