package choreo

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/petrijr/choreo/pkg/api"
	"github.com/petrijr/choreo/pkg/clock"
	"github.com/petrijr/choreo/pkg/scene"
)

// TraceEpoch is the virtual start time of every trace.
var TraceEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// TraceOptions configures Trace.
type TraceOptions struct {
	// Until cancels the run after this much virtual time. Zero runs until
	// the scene ends, which never happens for scenes that hold.
	Until time.Duration
	// FPS sets the paint cadence; zero selects clock.DefaultFPS.
	FPS int
	// Clock replaces the fresh clock starting at TraceEpoch, letting
	// observers share the trace's virtual time. FPS is ignored when set.
	Clock *clock.Simulated
}

// Trace plays sc headlessly on a simulated clock and writes one line per
// field change, prefixed with the virtual offset since the run began.
// Director options apply except the clock, which is always simulated.
func Trace(ctx context.Context, sc *scene.Scene, w io.Writer, topts TraceOptions, opts ...Option) (Result, error) {
	script, err := sc.Script()
	if err != nil {
		return Result{}, err
	}

	clk := topts.Clock
	if clk == nil {
		clk = clock.NewSimulated(TraceEpoch, clock.FrameInterval(topts.FPS))
	}
	start := clk.Now()
	opts = append([]Option{WithName(sc.Name)}, opts...)
	opts = append(opts, WithClock(clk))

	dir, err := NewDirector(script, opts...)
	if err != nil {
		return Result{}, err
	}

	vm := sc.NewViewModel()
	unwatch := vm.Watch(func(c api.Change) {
		fmt.Fprintf(w, "%10s  %-18s %s\n", offset(clk.Now().Sub(start)), c.Field, api.FormatValue(c.New))
	})
	defer unwatch()

	if topts.Until > 0 {
		clk.AfterFunc(topts.Until, dir.Cancel)
	}

	results, err := dir.Start(ctx, vm)
	if err != nil {
		return Result{}, err
	}
	res := <-results

	line := fmt.Sprintf("%10s  %s", offset(clk.Now().Sub(start)), res.Outcome)
	if res.Err != nil {
		line += ": " + res.Err.Error()
	}
	fmt.Fprintln(w, line)
	return res, nil
}

func offset(d time.Duration) string {
	return fmt.Sprintf("+%.3fs", d.Seconds())
}
