// Package clock provides the timing primitives the choreography runtime is
// driven by: a wall clock for interactive hosts and a discrete-event
// simulated clock for tests and headless tracing.
package clock

import (
	"context"
	"errors"
	"time"
)

// Forever asks Sleep to block until the context is done.
const Forever time.Duration = -1

// DefaultFPS is the paint cadence used when none is configured.
const DefaultFPS = 60

// ErrStalled is returned by a simulated clock asked to sleep forever with
// nothing scheduled that could ever wake it.
var ErrStalled = errors.New("clock: simulated clock stalled")

// Clock is the host timing primitive.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d, or until ctx is done. A d of Forever blocks until
	// ctx is done. It returns ctx.Err() when interrupted.
	Sleep(ctx context.Context, d time.Duration) error
	// FrameInterval is the spacing between paints.
	FrameInterval() time.Duration
}

// FrameInterval converts frames per second into a paint interval.
func FrameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}

// RealClock is backed by the runtime timers.
type RealClock struct {
	frame time.Duration
}

var _ Clock = (*RealClock)(nil)

// Real returns a wall clock painting at fps frames per second.
func Real(fps int) *RealClock {
	return &RealClock{frame: FrameInterval(fps)}
}

func (c *RealClock) Now() time.Time { return time.Now() }

func (c *RealClock) FrameInterval() time.Duration { return c.frame }

func (c *RealClock) Sleep(ctx context.Context, d time.Duration) error {
	if d == Forever {
		<-ctx.Done()
		return ctx.Err()
	}
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
