package engine

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rivo/uniseg"

	"github.com/petrijr/choreo/pkg/api"
	"github.com/petrijr/choreo/pkg/clock"
	"github.com/petrijr/choreo/pkg/easing"
)

// runtime is the per-run state shared by every node.
type runtime struct {
	ctx    context.Context
	obsCtx context.Context
	vm     *api.ViewModel
	token  *api.Token
	clock  clock.Clock
	obs    api.Observer
	run    api.RunInfo
}

// invoke runs a host callback through the token guard. Panics are returned
// as errors.
func (rt *runtime) invoke(fn func() error) error {
	var err error
	ran := rt.token.Guard(func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		err = fn()
	})
	if !ran {
		return errCancelled
	}
	return err
}

// node is the runtime form of a step.
type node interface {
	// begin starts the node at now and reports whether it already finished.
	begin(rt *runtime, now time.Time) (bool, error)
	// advance moves a started node to now.
	advance(rt *runtime, now time.Time) (bool, error)
	// wake reports the next deadline and whether the node wants every paint.
	// A zero deadline without frame means the node only ends by cancellation.
	wake() (at time.Time, frame bool)
}

func childPath(parent string, i int) string {
	return parent + "/" + strconv.Itoa(i)
}

func validate(s api.Step, path string) error {
	if s == nil {
		return fmt.Errorf("%w: step %s is nil", api.ErrNilScript, path)
	}
	var children []api.Step
	switch v := s.(type) {
	case api.Sequence:
		children = v.Steps
	case *api.Sequence:
		children = v.Steps
	case api.Parallel:
		children = v.Steps
	case *api.Parallel:
		children = v.Steps
	case api.Repeat:
		children = []api.Step{v.Body}
	case *api.Repeat:
		children = []api.Step{v.Body}
	}
	for i, c := range children {
		if err := validate(c, childPath(path, i)); err != nil {
			return err
		}
	}
	return nil
}

// compile turns a validated step into a fresh node tree.
func compile(s api.Step, path string) node {
	info := api.StepInfo{Path: path, Kind: s.Kind()}
	return &tracked{info: info, inner: compileInner(s, path)}
}

func compileInner(s api.Step, path string) node {
	switch v := s.(type) {
	case *api.Wait:
		return compileInner(*v, path)
	case *api.Tween:
		return compileInner(*v, path)
	case *api.TweenVec:
		return compileInner(*v, path)
	case *api.Scroll:
		return compileInner(*v, path)
	case *api.Typewrite:
		return compileInner(*v, path)
	case *api.Mutate:
		return compileInner(*v, path)
	case *api.Spring:
		return compileInner(*v, path)
	case *api.Sequence:
		return compileInner(*v, path)
	case *api.Parallel:
		return compileInner(*v, path)
	case *api.Repeat:
		return compileInner(*v, path)
	case *api.Hold, *api.Halt:
		return compileInner(derefMarker(v), path)

	case api.Wait:
		return &waitNode{d: max(v.Duration, 0)}
	case api.Tween:
		return &tweenNode[float64]{
			from: v.From, to: v.To, dur: v.Duration,
			ease: orEase(v.Ease, easing.Linear), lerp: easing.Lerp,
			emit: v.OnTick, origin: v.Origin,
		}
	case api.Scroll:
		return &tweenNode[float64]{
			from: v.From, to: v.To, dur: v.Duration,
			ease: orEase(v.Ease, easing.InOutCubic), lerp: easing.Lerp,
			emit: v.OnTick, origin: v.Origin,
		}
	case api.TweenVec:
		return &tweenNode[api.Vec]{
			from: v.From, to: v.To, dur: v.Duration,
			ease: orEase(v.Ease, easing.Linear), lerp: api.LerpVec,
			emit: v.OnTick, origin: v.Origin,
		}
	case api.Typewrite:
		return newTypeNode(v)
	case api.Mutate:
		return &mutateNode{apply: v.Apply}
	case api.Spring:
		return newSpringNode(v)
	case api.Hold:
		return holdNode{}
	case api.Halt:
		return haltNode{}
	case api.Sequence:
		return &seqNode{children: compileAll(v.Steps, path)}
	case api.Parallel:
		return &parNode{children: compileAll(v.Steps, path)}
	case api.Repeat:
		return &repeatNode{times: v.Times, body: compile(v.Body, childPath(path, 0))}
	}
	panic(fmt.Sprintf("choreo: unsupported step %T", s))
}

func derefMarker(s api.Step) api.Step {
	if _, ok := s.(*api.Hold); ok {
		return api.Hold{}
	}
	return api.Halt{}
}

func compileAll(steps []api.Step, path string) []node {
	out := make([]node, len(steps))
	for i, s := range steps {
		out[i] = compile(s, childPath(path, i))
	}
	return out
}

func orEase(f, def easing.Func) easing.Func {
	if f == nil {
		return def
	}
	return f
}

// graphemes splits text into user-perceived characters.
func graphemes(text string) []string {
	var out []string
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// tracked reports step lifecycle to observers, refuses to begin once the run
// is cancelled and attributes callback errors to the step.
type tracked struct {
	info    api.StepInfo
	inner   node
	started time.Time
}

func (t *tracked) begin(rt *runtime, now time.Time) (bool, error) {
	if rt.token.Cancelled() {
		return false, errCancelled
	}
	t.started = now
	rt.obs.OnStepStart(rt.obsCtx, rt.run, t.info)
	done, err := t.inner.begin(rt, now)
	return t.settle(rt, now, done, err)
}

func (t *tracked) advance(rt *runtime, now time.Time) (bool, error) {
	done, err := t.inner.advance(rt, now)
	return t.settle(rt, now, done, err)
}

func (t *tracked) wake() (time.Time, bool) { return t.inner.wake() }

func (t *tracked) settle(rt *runtime, now time.Time, done bool, err error) (bool, error) {
	if err != nil {
		if err == errCancelled || api.IsStepError(err) {
			return false, err
		}
		return false, &api.StepError{Step: t.info, Err: err}
	}
	if done {
		rt.obs.OnStepCompleted(rt.obsCtx, rt.run, t.info, now.Sub(t.started))
	}
	return done, nil
}
