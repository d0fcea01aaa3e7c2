package timespec

import (
	"fmt"
	"math"
	"math/bits"
	"time"
)

// MaxTickRateHz is the highest supported tick rate. Above it a tick would be
// one nanosecond or shorter and the round-up rule in ToTicks stops meaning
// anything.
const MaxTickRateHz = NanosecondsPerSecond / 2

// Ticks counts kernel scheduler ticks.
type Ticks uint64

// TickWidth is the bit width of the kernel tick type.
type TickWidth uint8

// Supported tick widths.
const (
	Width16 TickWidth = 16
	Width32 TickWidth = 32
	Width64 TickWidth = 64
)

// Valid reports whether w is one of the supported widths.
func (w TickWidth) Valid() bool {
	return w == Width16 || w == Width32 || w == Width64
}

// Max returns the largest tick count representable at width w.
func (w TickWidth) Max() uint64 {
	if w >= 64 {
		return math.MaxUint64
	}
	return 1<<w - 1
}

// Converter converts between timestamps and ticks for one kernel
// configuration. The zero value is not usable; build one with NewConverter.
type Converter struct {
	rateHz    uint64
	nsPerTick int64
	width     TickWidth
}

// NewConverter returns a Converter for a kernel ticking at rateHz with a tick
// counter of the given width.
func NewConverter(rateHz uint32, width TickWidth) (*Converter, error) {
	if rateHz == 0 || rateHz > MaxTickRateHz {
		return nil, invalidArgument("new_converter",
			fmt.Sprintf("tick rate %d Hz outside [1, %d]", rateHz, MaxTickRateHz))
	}
	if !width.Valid() {
		return nil, invalidArgument("new_converter",
			fmt.Sprintf("tick width %d not one of 16, 32, 64", width))
	}
	return &Converter{
		rateHz:    uint64(rateHz),
		nsPerTick: NanosecondsPerSecond / int64(rateHz),
		width:     width,
	}, nil
}

// RateHz returns the tick rate.
func (c *Converter) RateHz() uint32 { return uint32(c.rateHz) }

// NanosecondsPerTick returns the integer tick period in nanoseconds.
func (c *Converter) NanosecondsPerTick() int64 { return c.nsPerTick }

// Width returns the tick counter width.
func (c *Converter) Width() TickWidth { return c.width }

// ToTicks converts a normalized, non-negative timestamp to ticks.
//
// The nanoseconds field rounds up, so any non-zero sub-tick remainder costs a
// whole tick. Negative seconds and denormalized input are rejected with an
// invalid argument error. Results that do not fit the tick width saturate at
// the width's maximum, the kernel's "wait forever" value.
func (c *Converter) ToTicks(ts *Timestamp) (Ticks, error) {
	const op = "to_ticks"

	if ts == nil {
		return 0, invalidArgument(op, "timestamp is nil")
	}
	if !Validate(ts) {
		return 0, invalidArgument(op, fmt.Sprintf("nanoseconds %d outside [0, 1e9)", ts.Nanoseconds))
	}
	if ts.Seconds < 0 {
		return 0, invalidArgument(op, fmt.Sprintf("negative seconds %d", ts.Seconds))
	}

	maxTicks := c.width.Max()

	hi, secTicks := bits.Mul64(uint64(ts.Seconds), c.rateHz)
	if hi != 0 {
		return Ticks(maxTicks), nil
	}

	nsTicks := uint64(ts.Nanoseconds / c.nsPerTick)
	if ts.Nanoseconds%c.nsPerTick != 0 {
		nsTicks++
	}

	total, carry := bits.Add64(secTicks, nsTicks, 0)
	if carry != 0 || total > maxTicks {
		return Ticks(maxTicks), nil
	}

	return Ticks(total), nil
}

// DeltaTicks returns the number of ticks from now until target.
//
// A target strictly before now yields a TimedOut error. A target equal to
// now yields zero ticks.
func (c *Converter) DeltaTicks(target, now *Timestamp) (Ticks, error) {
	const op = "delta_ticks"

	if target == nil || now == nil {
		return 0, invalidArgument(op, "timestamp is nil")
	}

	diff, err := Subtract(target, now)
	if err != nil {
		return 0, invalidArgument(op, err.Error())
	}
	if diff.Status == StatusNegative {
		return 0, timedOut(op, fmt.Sprintf("target %s is before now %s", target, now))
	}

	return c.ToTicks(&diff.Value)
}

// TicksToTimestamp converts a tick count back to a normalized timestamp.
// Seconds saturate at math.MaxInt64.
func (c *Converter) TicksToTimestamp(t Ticks) Timestamp {
	sec := uint64(t) / c.rateHz
	rem := uint64(t) % c.rateHz
	if sec > math.MaxInt64 {
		sec = math.MaxInt64
	}
	return Timestamp{
		Seconds:     int64(sec),
		Nanoseconds: int64(rem) * c.nsPerTick,
	}
}

// TicksToDuration converts a tick count to a Go duration, saturating at the
// longest representable duration.
func (c *Converter) TicksToDuration(t Ticks) time.Duration {
	ts := c.TicksToTimestamp(t)
	const maxSeconds = math.MaxInt64 / NanosecondsPerSecond
	if ts.Seconds > maxSeconds ||
		(ts.Seconds == maxSeconds && ts.Nanoseconds > math.MaxInt64%NanosecondsPerSecond) {
		return time.Duration(math.MaxInt64)
	}
	return ts.Duration()
}
