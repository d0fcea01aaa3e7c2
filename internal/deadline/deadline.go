// Package deadline turns absolute and relative timeouts into wait decisions
// for the timed-wait layer.
//
// A deadline that has already elapsed is not an error here: Plan reports it
// as Decision.Expired so callers can return immediately instead of blocking.
package deadline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/posixtime/internal/clock"
	"github.com/roach88/posixtime/internal/timespec"
)

// Decision describes how long a caller must block.
type Decision struct {
	// Expired is true when the deadline is before now.
	// Ticks and Duration are zero in that case.
	Expired bool

	// Ticks is the wait in kernel ticks, rounded up.
	Ticks timespec.Ticks

	// Duration is Ticks expressed at the configured tick rate.
	Duration time.Duration

	// Now is the clock reading the decision was based on.
	Now timespec.Timestamp
}

// Planner computes wait decisions against one converter and clock.
type Planner struct {
	conv   *timespec.Converter
	src    clock.Source
	logger *slog.Logger
}

// Option configures a Planner.
type Option func(*Planner)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Planner) {
		p.logger = logger
	}
}

// NewPlanner creates a planner. Logging is discarded unless WithLogger is
// given.
func NewPlanner(conv *timespec.Converter, src clock.Source, opts ...Option) *Planner {
	p := &Planner{
		conv:   conv,
		src:    src,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan computes the wait until the absolute deadline target.
//
// A target before now is reported as Expired with a nil error; a target
// equal to now is not expired but needs zero ticks. Invalid targets return
// an invalid argument error.
func (p *Planner) Plan(target timespec.Timestamp) (Decision, error) {
	now, err := p.src.Now()
	if err != nil {
		return Decision{}, fmt.Errorf("read clock: %w", err)
	}

	ticks, err := p.conv.DeltaTicks(&target, &now)
	switch {
	case timespec.IsTimedOut(err):
		p.logger.Debug("deadline already elapsed", "target", target.String(), "now", now.String())
		return Decision{Expired: true, Now: now}, nil
	case err != nil:
		return Decision{}, fmt.Errorf("plan deadline: %w", err)
	}

	d := Decision{
		Ticks:    ticks,
		Duration: p.conv.TicksToDuration(ticks),
		Now:      now,
	}
	p.logger.Debug("deadline planned", "target", target.String(), "now", now.String(), "ticks", uint64(ticks))
	return d, nil
}

// PlanRelative computes the wait for a relative timeout. A zero timeout
// needs zero ticks and is never expired.
func (p *Planner) PlanRelative(timeout timespec.Timestamp) (Decision, error) {
	ticks, err := p.conv.ToTicks(&timeout)
	if err != nil {
		return Decision{}, fmt.Errorf("plan timeout: %w", err)
	}
	return Decision{
		Ticks:    ticks,
		Duration: p.conv.TicksToDuration(ticks),
	}, nil
}

// DeadlineAfter converts a relative timeout into an absolute deadline
// against the planner's clock.
func (p *Planner) DeadlineAfter(timeout timespec.Timestamp) (timespec.Timestamp, error) {
	if !timespec.Validate(&timeout) || timeout.Seconds < 0 {
		return timespec.Timestamp{}, timespec.NewInvalidArgumentError("deadline_after",
			fmt.Sprintf("timeout %s must be normalized and non-negative", timeout))
	}

	now, err := p.src.Now()
	if err != nil {
		return timespec.Timestamp{}, fmt.Errorf("read clock: %w", err)
	}

	sum, err := timespec.Add(&now, &timeout)
	if err != nil {
		return timespec.Timestamp{}, fmt.Errorf("deadline after %s: %w", timeout, err)
	}
	if sum.Status == timespec.StatusNegative && now.Seconds >= 0 {
		return timespec.Timestamp{}, timespec.NewInvalidArgumentError("deadline_after",
			fmt.Sprintf("%s after %s overflows", timeout, now))
	}
	return sum.Value, nil
}

// Wait blocks until the deadline target passes or ctx is done.
// An already elapsed deadline returns a timed out error without blocking;
// cancellation returns ctx.Err().
func (p *Planner) Wait(ctx context.Context, target timespec.Timestamp) error {
	d, err := p.Plan(target)
	if err != nil {
		return err
	}
	if d.Expired {
		return timespec.NewTimedOutError("wait", fmt.Sprintf("deadline %s elapsed at %s", target, d.Now))
	}
	if d.Duration <= 0 {
		return nil
	}

	timer := time.NewTimer(d.Duration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
