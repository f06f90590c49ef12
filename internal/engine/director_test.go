package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/petrijr/choreo/pkg/api"
	"github.com/petrijr/choreo/pkg/clock"
	"github.com/petrijr/choreo/pkg/easing"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type tick struct {
	at    time.Duration
	label string
	value any
}

// recorder stores every callback value with its simulated timestamp.
type recorder struct {
	mu    sync.Mutex
	now   func() time.Time
	ticks []tick
}

func newRecorder(c clock.Clock) *recorder {
	return &recorder{now: c.Now}
}

func (r *recorder) add(label string, v any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ticks = append(r.ticks, tick{at: r.now().Sub(epoch), label: label, value: v})
}

func (r *recorder) number(label string) func(vm *api.ViewModel, v float64) {
	return func(vm *api.ViewModel, v float64) { r.add(label, v) }
}

func (r *recorder) text(label string) func(vm *api.ViewModel, s string) {
	return func(vm *api.ViewModel, s string) { r.add(label, s) }
}

func (r *recorder) mark(label string) api.Mutate {
	return api.Mutate{Apply: func(vm *api.ViewModel) error {
		r.add(label, true)
		return nil
	}}
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ticks)
}

func (r *recorder) only(label string) []tick {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []tick
	for _, t := range r.ticks {
		if t.label == label {
			out = append(out, t)
		}
	}
	return out
}

func (r *recorder) indexes(label string) (first, last int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	first, last = -1, -1
	for i, t := range r.ticks {
		if t.label != label {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	return first, last
}

func newSim() *clock.Simulated {
	return clock.NewSimulated(epoch, 0)
}

func mustDirector(t *testing.T, script api.Step, c clock.Clock, obs api.Observer) api.Director {
	t.Helper()
	d, err := New(script, Config{Name: t.Name(), Clock: c, Observer: obs})
	require.NoError(t, err)
	return d
}

func TestTypewrite_EmitsEveryPrefixInOrder(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text    string
		perChar time.Duration
		want    []string
	}{
		{"abc", 10 * time.Millisecond, []string{"", "a", "ab", "abc"}},
		{"abc", 0, []string{"", "a", "ab", "abc"}},
		{"", 50 * time.Millisecond, []string{""}},
		{"hé👋🏽", 5 * time.Millisecond, []string{"", "h", "hé", "hé👋🏽"}},
		{"go", -time.Second, []string{"", "g", "go"}},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%q/%v", tc.text, tc.perChar), func(t *testing.T) {
			clk := newSim()
			rec := newRecorder(clk)
			d := mustDirector(t, api.Typewrite{Text: tc.text, PerChar: tc.perChar, OnTick: rec.text("t")}, clk, nil)

			outcome, err := d.Run(context.Background(), api.NewViewModel(nil))
			require.NoError(t, err)
			require.Equal(t, api.OutcomeCompleted, outcome)

			var got []string
			for i, tk := range rec.only("t") {
				got = append(got, tk.value.(string))
				require.Equal(t, time.Duration(i)*max(tc.perChar, 0), tk.at)
			}
			require.Equal(t, tc.want, got)
		})
	}
}

func TestTween_EndpointsAreExact(t *testing.T) {
	t.Parallel()

	clk := newSim()
	rec := newRecorder(clk)
	script := api.Tween{From: 3, To: 7.5, Duration: time.Second, Ease: easing.InOutCubic, OnTick: rec.number("v")}
	d := mustDirector(t, script, clk, nil)

	outcome, err := d.Run(context.Background(), api.NewViewModel(nil))
	require.NoError(t, err)
	require.Equal(t, api.OutcomeCompleted, outcome)

	ticks := rec.only("v")
	require.Greater(t, len(ticks), 10)
	require.Equal(t, 3.0, ticks[0].value)
	require.Equal(t, time.Duration(0), ticks[0].at)
	require.Equal(t, 7.5, ticks[len(ticks)-1].value)
	require.Equal(t, time.Second, ticks[len(ticks)-1].at)

	for i := 1; i < len(ticks); i++ {
		require.GreaterOrEqual(t, ticks[i].value.(float64), ticks[i-1].value.(float64))
		require.Greater(t, ticks[i].at, ticks[i-1].at)
	}
}

func TestTween_NonPositiveDurationEmitsSingleTick(t *testing.T) {
	t.Parallel()

	for _, dur := range []time.Duration{0, -time.Second} {
		clk := newSim()
		rec := newRecorder(clk)
		d := mustDirector(t, api.Tween{From: 1, To: 9, Duration: dur, OnTick: rec.number("v")}, clk, nil)

		_, err := d.Run(context.Background(), api.NewViewModel(nil))
		require.NoError(t, err)
		require.Equal(t, []tick{{at: 0, label: "v", value: 9.0}}, rec.only("v"))
	}
}

func TestTweenVec_OriginReadsCurrentValue(t *testing.T) {
	t.Parallel()

	clk := newSim()
	vm := api.NewViewModel(map[string]any{"cursor": api.Vec{X: 10, Y: 80}})
	script := api.TweenVec{
		From:     api.Vec{X: -1, Y: -1},
		To:       api.Vec{X: 50, Y: 15.2},
		Duration: 500 * time.Millisecond,
		Ease:     easing.InOutCubic,
		OnTick:   api.WriteVec("cursor"),
		Origin:   api.ReadVec("cursor"),
	}
	var seen []api.Vec
	vm.Watch(func(c api.Change) { seen = append(seen, c.New.(api.Vec)) })

	_, err := mustDirector(t, script, clk, nil).Run(context.Background(), vm)
	require.NoError(t, err)

	require.Equal(t, api.Vec{X: 10, Y: 80}, seen[0])
	require.Equal(t, api.Vec{X: 50, Y: 15.2}, vm.Vec("cursor"))
	require.Equal(t, 500*time.Millisecond, clk.Now().Sub(epoch))
}

func TestScroll_DefaultsToInOutCubic(t *testing.T) {
	t.Parallel()

	clk := clock.NewSimulated(epoch, 250*time.Millisecond)
	rec := newRecorder(clk)
	_, err := mustDirector(t, api.Scroll{From: 0, To: 100, Duration: time.Second, OnTick: rec.number("s")}, clk, nil).
		Run(context.Background(), api.NewViewModel(nil))
	require.NoError(t, err)

	ticks := rec.only("s")
	require.Len(t, ticks, 5)
	require.InDelta(t, 100*easing.InOutCubic(0.25), ticks[1].value.(float64), 1e-9)
	require.InDelta(t, 50, ticks[2].value.(float64), 1e-9)
	require.Equal(t, 100.0, ticks[4].value)
}

func TestScenario_TypedURL(t *testing.T) {
	t.Parallel()

	const url = "www.ai-search.com"
	clk := newSim()
	rec := newRecorder(clk)
	script := api.Sequence{Steps: []api.Step{
		api.Wait{Duration: 300 * time.Millisecond},
		api.Typewrite{Text: url, PerChar: 60 * time.Millisecond, OnTick: rec.text("url")},
	}}

	outcome, err := mustDirector(t, script, clk, nil).Run(context.Background(), api.NewViewModel(nil))
	require.NoError(t, err)
	require.Equal(t, api.OutcomeCompleted, outcome)

	ticks := rec.only("url")
	require.Len(t, ticks, len(url)+1)
	for i, tk := range ticks {
		require.Equal(t, url[:i], tk.value)
		require.Equal(t, 300*time.Millisecond+time.Duration(i)*60*time.Millisecond, tk.at)
	}
	require.GreaterOrEqual(t, ticks[1].at, 300*time.Millisecond)
	require.Equal(t, "w", ticks[1].value)
	require.Equal(t, url, ticks[len(ticks)-1].value)
}

func TestScenario_CancelledTween(t *testing.T) {
	t.Parallel()

	clk := newSim()
	rec := newRecorder(clk)
	d := mustDirector(t, api.Tween{From: 0, To: 100, Duration: time.Second, OnTick: rec.number("v")}, clk, nil)
	clk.AfterFunc(400*time.Millisecond, d.Cancel)

	outcome, err := d.Run(context.Background(), api.NewViewModel(nil))
	require.NoError(t, err)
	require.Equal(t, api.OutcomeCancelled, outcome)
	require.False(t, d.IsRunning())

	ticks := rec.only("v")
	require.NotEmpty(t, ticks)
	last := ticks[len(ticks)-1]
	require.Less(t, last.value.(float64), 100.0)
	for _, tk := range ticks {
		require.LessOrEqual(t, tk.at, 400*time.Millisecond)
	}

	n := rec.count()
	clk.Advance(2 * time.Second)
	require.Equal(t, n, rec.count())
}

func TestScenario_NestedParallelSequence(t *testing.T) {
	t.Parallel()

	clk := newSim()
	rec := newRecorder(clk)
	script := api.Sequence{Steps: []api.Step{
		api.Parallel{Steps: []api.Step{
			api.Wait{Duration: 200 * time.Millisecond},
			api.Wait{Duration: 500 * time.Millisecond},
		}},
		rec.mark("done"),
	}}

	_, err := mustDirector(t, script, clk, nil).Run(context.Background(), api.NewViewModel(nil))
	require.NoError(t, err)

	done := rec.only("done")
	require.Len(t, done, 1)
	require.GreaterOrEqual(t, done[0].at, 500*time.Millisecond)
}

func TestSequence_OrderingBetweenSiblings(t *testing.T) {
	t.Parallel()

	clk := newSim()
	rec := newRecorder(clk)
	script := api.Sequence{Steps: []api.Step{
		api.Tween{From: 0, To: 1, Duration: 100 * time.Millisecond, OnTick: rec.number("a")},
		api.Typewrite{Text: "hi", PerChar: 30 * time.Millisecond, OnTick: rec.text("b")},
		api.Scroll{From: 0, To: 10, Duration: 50 * time.Millisecond, OnTick: rec.number("c")},
	}}

	_, err := mustDirector(t, script, clk, nil).Run(context.Background(), api.NewViewModel(nil))
	require.NoError(t, err)

	aFirst, aLast := rec.indexes("a")
	bFirst, bLast := rec.indexes("b")
	cFirst, _ := rec.indexes("c")
	require.True(t, aFirst >= 0 && aLast < bFirst && bLast < cFirst)

	a, b, c := rec.only("a"), rec.only("b"), rec.only("c")
	require.GreaterOrEqual(t, b[0].at, a[len(a)-1].at)
	require.GreaterOrEqual(t, c[0].at, b[len(b)-1].at)
	require.Equal(t, 160*time.Millisecond, c[0].at)
}

func TestParallel_AwaitsSlowestChild(t *testing.T) {
	t.Parallel()

	clk := newSim()
	rec := newRecorder(clk)
	script := api.Sequence{Steps: []api.Step{
		api.Parallel{Steps: []api.Step{
			api.Tween{From: 0, To: 1, Duration: 200 * time.Millisecond, OnTick: rec.number("short")},
			api.Tween{From: 0, To: 1, Duration: 500 * time.Millisecond, OnTick: rec.number("long")},
			api.Typewrite{Text: "ok", PerChar: 100 * time.Millisecond, OnTick: rec.text("type")},
		}},
		rec.mark("joined"),
	}}

	_, err := mustDirector(t, script, clk, nil).Run(context.Background(), api.NewViewModel(nil))
	require.NoError(t, err)

	short, long := rec.only("short"), rec.only("long")
	require.Equal(t, time.Duration(0), short[0].at)
	require.Equal(t, time.Duration(0), long[0].at)
	require.Equal(t, 200*time.Millisecond, short[len(short)-1].at)
	require.Equal(t, 500*time.Millisecond, long[len(long)-1].at)
	require.Equal(t, 1.0, long[len(long)-1].value)

	joined := rec.only("joined")
	require.Len(t, joined, 1)
	require.Equal(t, 500*time.Millisecond, joined[0].at)
}

func TestCancel_IsIdempotentAndHarmlessAfterCompletion(t *testing.T) {
	t.Parallel()

	clk := newSim()
	vm := api.NewViewModel(nil)
	d := mustDirector(t, api.Sequence{Steps: []api.Step{
		api.Wait{Duration: 100 * time.Millisecond},
		api.SetFields(map[string]any{"done": true}),
	}}, clk, nil)

	d.Cancel()
	d.Cancel()

	outcome, err := d.Run(context.Background(), vm)
	require.NoError(t, err)
	require.Equal(t, api.OutcomeCompleted, outcome)

	version := vm.Version()
	d.Cancel()
	d.Cancel()
	d.Stop()
	require.Equal(t, version, vm.Version())
	require.False(t, d.IsRunning())
}

func TestCancel_StopsMutationWithRealClock(t *testing.T) {
	t.Parallel()

	rec := newRecorder(clock.Real(120))
	d := mustDirector(t, api.Tween{From: 0, To: 100, Duration: 10 * time.Second, OnTick: rec.number("v")}, clock.Real(120), nil)

	results, err := d.Start(context.Background(), api.NewViewModel(nil))
	require.NoError(t, err)

	require.Eventually(t, func() bool { return rec.count() >= 3 }, 2*time.Second, 5*time.Millisecond)

	d.Cancel()
	d.Stop()
	n := rec.count()

	time.Sleep(50 * time.Millisecond)
	require.Equal(t, n, rec.count())

	res := <-results
	require.Equal(t, api.OutcomeCancelled, res.Outcome)
	require.NoError(t, res.Err)
}

func TestStart_WhileRunningFails(t *testing.T) {
	t.Parallel()

	d := mustDirector(t, api.Wait{Duration: time.Hour}, clock.Real(60), nil)
	vm := api.NewViewModel(nil)

	first, err := d.Start(context.Background(), vm)
	require.NoError(t, err)
	require.True(t, d.IsRunning())

	second, err := d.Start(context.Background(), vm)
	require.ErrorIs(t, err, api.ErrAlreadyRunning)
	require.Nil(t, second)
	require.True(t, d.IsRunning())

	d.Stop()
	require.False(t, d.IsRunning())
	require.Equal(t, api.OutcomeCancelled, (<-first).Outcome)

	// A fresh run starts from the beginning with a new token.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	outcome, err := d.Run(ctx, vm)
	require.NoError(t, err)
	require.Equal(t, api.OutcomeCancelled, outcome)
}

func TestCallbackFailureLeavesDirectorRestartable(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	calls := 0
	script := api.Sequence{Steps: []api.Step{
		api.Wait{Duration: 10 * time.Millisecond},
		api.Mutate{Apply: func(vm *api.ViewModel) error {
			calls++
			if calls == 1 {
				return boom
			}
			return nil
		}},
	}}
	clk := newSim()
	metrics := &api.BasicMetrics{}
	d := mustDirector(t, script, clk, metrics)

	outcome, err := d.Run(context.Background(), api.NewViewModel(nil))
	require.Equal(t, api.OutcomeFailed, outcome)
	require.ErrorIs(t, err, boom)

	se, ok := api.AsStepError(err)
	require.True(t, ok)
	require.Equal(t, api.StepInfo{Path: "0/1", Kind: "mutate"}, se.Step)
	require.False(t, d.IsRunning())

	outcome, err = d.Run(context.Background(), api.NewViewModel(nil))
	require.NoError(t, err)
	require.Equal(t, api.OutcomeCompleted, outcome)

	snap := metrics.Snapshot()
	require.Equal(t, int64(2), snap.RunsStarted)
	require.Equal(t, int64(1), snap.RunsFailed)
	require.Equal(t, int64(1), snap.RunsCompleted)
}

func TestCallbackPanicFailsRun(t *testing.T) {
	t.Parallel()

	clk := newSim()
	script := api.Tween{From: 0, To: 1, Duration: 100 * time.Millisecond, OnTick: func(vm *api.ViewModel, v float64) {
		if v > 0.5 {
			panic("render exploded")
		}
	}}

	outcome, err := mustDirector(t, script, clk, nil).Run(context.Background(), api.NewViewModel(nil))
	require.Equal(t, api.OutcomeFailed, outcome)
	require.True(t, api.IsStepError(err))
	require.True(t, strings.Contains(err.Error(), "render exploded"))
}

func TestHalt_ActsAsCeiling(t *testing.T) {
	t.Parallel()

	clk := newSim()
	rec := newRecorder(clk)
	script := api.Parallel{Steps: []api.Step{
		api.Sequence{Steps: []api.Step{api.Wait{Duration: time.Second}, rec.mark("late")}},
		api.Sequence{Steps: []api.Step{api.Wait{Duration: 300 * time.Millisecond}, api.Halt{}}},
	}}

	d := mustDirector(t, script, clk, nil)
	outcome, err := d.Run(context.Background(), api.NewViewModel(nil))
	require.NoError(t, err)
	require.Equal(t, api.OutcomeCancelled, outcome)
	require.Empty(t, rec.only("late"))
	require.Equal(t, 300*time.Millisecond, clk.Now().Sub(epoch))
}

func TestCancelFromInsideCallback(t *testing.T) {
	t.Parallel()

	clk := newSim()
	rec := newRecorder(clk)
	var d api.Director
	script := api.Sequence{Steps: []api.Step{
		api.Mutate{Apply: func(vm *api.ViewModel) error { d.Cancel(); return nil }},
		rec.mark("after"),
	}}
	d = mustDirector(t, script, clk, nil)

	outcome, err := d.Run(context.Background(), api.NewViewModel(nil))
	require.NoError(t, err)
	require.Equal(t, api.OutcomeCancelled, outcome)
	require.Empty(t, rec.only("after"))
}

func TestRepeat(t *testing.T) {
	t.Parallel()

	t.Run("counted", func(t *testing.T) {
		clk := newSim()
		rec := newRecorder(clk)
		script := api.Repeat{Times: 3, Body: api.Sequence{Steps: []api.Step{
			api.Wait{Duration: 100 * time.Millisecond},
			rec.mark("beat"),
		}}}

		outcome, err := mustDirector(t, script, clk, nil).Run(context.Background(), api.NewViewModel(nil))
		require.NoError(t, err)
		require.Equal(t, api.OutcomeCompleted, outcome)
		require.Len(t, rec.only("beat"), 3)
		require.Equal(t, 300*time.Millisecond, clk.Now().Sub(epoch))
	})

	t.Run("forever until cancelled", func(t *testing.T) {
		clk := newSim()
		rec := newRecorder(clk)
		script := api.Repeat{Body: api.Sequence{Steps: []api.Step{
			api.Wait{Duration: 100 * time.Millisecond},
			rec.mark("beat"),
		}}}
		d := mustDirector(t, script, clk, nil)
		clk.AfterFunc(1050*time.Millisecond, d.Cancel)

		outcome, err := d.Run(context.Background(), api.NewViewModel(nil))
		require.NoError(t, err)
		require.Equal(t, api.OutcomeCancelled, outcome)
		require.Len(t, rec.only("beat"), 10)
	})
}

func TestSpring_SettlesExactlyOnTarget(t *testing.T) {
	t.Parallel()

	clk := newSim()
	rec := newRecorder(clk)
	script := api.Spring{From: 0, To: 1, Frequency: 8, Damping: 0.6, OnTick: rec.number("scale")}

	outcome, err := mustDirector(t, script, clk, nil).Run(context.Background(), api.NewViewModel(nil))
	require.NoError(t, err)
	require.Equal(t, api.OutcomeCompleted, outcome)

	ticks := rec.only("scale")
	require.Equal(t, 0.0, ticks[0].value)
	require.Equal(t, 1.0, ticks[len(ticks)-1].value)
	require.Less(t, ticks[len(ticks)-1].at, maxSpringDuration)

	overshoot := false
	for _, tk := range ticks {
		if tk.value.(float64) > 1 {
			overshoot = true
		}
	}
	require.True(t, overshoot, "under-damped spring should overshoot")
}

func TestHold(t *testing.T) {
	t.Parallel()

	t.Run("stalls on simulated clock", func(t *testing.T) {
		outcome, err := mustDirector(t, api.Hold{}, newSim(), nil).Run(context.Background(), api.NewViewModel(nil))
		require.Equal(t, api.OutcomeFailed, outcome)
		require.ErrorIs(t, err, clock.ErrStalled)
	})

	t.Run("ends on cancel", func(t *testing.T) {
		clk := newSim()
		d := mustDirector(t, api.Hold{}, clk, nil)
		clk.AfterFunc(12*time.Second, d.Cancel)

		outcome, err := d.Run(context.Background(), api.NewViewModel(nil))
		require.NoError(t, err)
		require.Equal(t, api.OutcomeCancelled, outcome)
		require.Equal(t, 12*time.Second, clk.Now().Sub(epoch))
	})
}

func TestParentContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	d := mustDirector(t, api.Wait{Duration: time.Hour}, clock.Real(60), nil)
	outcome, err := d.Run(ctx, api.NewViewModel(nil))
	require.NoError(t, err)
	require.Equal(t, api.OutcomeCancelled, outcome)
	require.False(t, d.IsRunning())
}

func TestStart_WithEndedContextWritesNothing(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	script := api.Sequence{Steps: []api.Step{
		api.SetFields(map[string]any{"shown": true}),
		api.Tween{From: 0, To: 100, Duration: time.Second, OnTick: api.WriteNumber("x")},
	}}
	vm := api.NewViewModel(map[string]any{"shown": false, "x": 0})
	version := vm.Version()

	for i := 0; i < 200; i++ {
		outcome, err := mustDirector(t, script, newSim(), nil).Run(ctx, vm)
		require.NoError(t, err)
		require.Equal(t, api.OutcomeCancelled, outcome)
	}
	require.Equal(t, version, vm.Version())
	require.Equal(t, false, vm.Bool("shown"))
}

// unpaced reports no paint interval.
type unpaced struct{ *clock.Simulated }

func (unpaced) FrameInterval() time.Duration { return 0 }

func TestClockWithoutFrameIntervalUsesDefault(t *testing.T) {
	t.Parallel()

	clk := unpaced{newSim()}
	rec := newRecorder(clk)
	script := api.Sequence{Steps: []api.Step{
		api.Tween{From: 0, To: 1, Duration: 100 * time.Millisecond, OnTick: rec.number("x")},
		api.Spring{From: 0, To: 1, Frequency: 8, Damping: 0.6, OnTick: rec.number("scale")},
	}}

	outcome, err := mustDirector(t, script, clk, nil).Run(context.Background(), api.NewViewModel(nil))
	require.NoError(t, err)
	require.Equal(t, api.OutcomeCompleted, outcome)

	xs := rec.only("x")
	require.Equal(t, 1.0, xs[len(xs)-1].value)
	require.Less(t, len(xs), 20)
	scale := rec.only("scale")
	require.Equal(t, 1.0, scale[len(scale)-1].value)
}

func TestObserverSeesStepPaths(t *testing.T) {
	t.Parallel()

	obs := &pathObserver{}
	script := api.Sequence{Steps: []api.Step{
		api.Wait{Duration: time.Millisecond},
		api.Parallel{Steps: []api.Step{api.Wait{}, api.Halt{}}},
	}}
	d, err := New(script, Config{Name: "paths", Clock: newSim(), Observer: obs, NewRunID: func() string { return "run-1" }})
	require.NoError(t, err)

	outcome, err := d.Run(context.Background(), api.NewViewModel(nil))
	require.NoError(t, err)
	require.Equal(t, api.OutcomeCancelled, outcome)

	require.Equal(t, []string{
		"start 0 sequence",
		"start 0/0 wait",
		"done 0/0 wait",
		"start 0/1 parallel",
		"start 0/1/0 wait",
		"done 0/1/0 wait",
		"start 0/1/1 halt",
		"cancelled run-1 paths",
	}, obs.events)
}

type pathObserver struct {
	api.NoopObserver
	events []string
}

func (o *pathObserver) OnStepStart(ctx context.Context, run api.RunInfo, step api.StepInfo) {
	o.events = append(o.events, "start "+step.Path+" "+step.Kind)
}

func (o *pathObserver) OnStepCompleted(ctx context.Context, run api.RunInfo, step api.StepInfo, d time.Duration) {
	o.events = append(o.events, "done "+step.Path+" "+step.Kind)
}

func (o *pathObserver) OnRunCancelled(ctx context.Context, run api.RunInfo) {
	o.events = append(o.events, "cancelled "+run.ID+" "+run.Script)
}

func TestNew_RejectsNilSteps(t *testing.T) {
	t.Parallel()

	_, err := New(nil, Config{})
	require.ErrorIs(t, err, api.ErrNilScript)

	_, err = New(api.Sequence{Steps: []api.Step{api.Wait{}, nil}}, Config{})
	require.ErrorIs(t, err, api.ErrNilScript)
	require.Contains(t, err.Error(), "0/1")

	d := mustDirector(t, &api.Sequence{Steps: []api.Step{&api.Wait{Duration: time.Millisecond}}}, newSim(), nil)
	_, err = d.Start(context.Background(), nil)
	require.ErrorIs(t, err, ErrNilViewModel)
}
