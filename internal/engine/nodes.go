package engine

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/petrijr/choreo/pkg/api"
	"github.com/petrijr/choreo/pkg/easing"
)

type waitNode struct {
	d     time.Duration
	until time.Time
}

func (n *waitNode) begin(rt *runtime, now time.Time) (bool, error) {
	if n.d <= 0 {
		return true, nil
	}
	n.until = now.Add(n.d)
	return false, nil
}

func (n *waitNode) advance(rt *runtime, now time.Time) (bool, error) {
	return !now.Before(n.until), nil
}

func (n *waitNode) wake() (time.Time, bool) { return n.until, false }

type holdNode struct{}

func (holdNode) begin(rt *runtime, now time.Time) (bool, error)   { return false, nil }
func (holdNode) advance(rt *runtime, now time.Time) (bool, error) { return false, nil }
func (holdNode) wake() (time.Time, bool)                          { return time.Time{}, false }

type haltNode struct{}

func (haltNode) begin(rt *runtime, now time.Time) (bool, error) {
	rt.token.Cancel()
	return false, errCancelled
}
func (haltNode) advance(rt *runtime, now time.Time) (bool, error) { return false, errCancelled }
func (haltNode) wake() (time.Time, bool)                          { return time.Time{}, false }

type mutateNode struct {
	apply func(vm *api.ViewModel) error
}

func (n *mutateNode) begin(rt *runtime, now time.Time) (bool, error) {
	if n.apply == nil {
		return true, nil
	}
	if err := rt.invoke(func() error { return n.apply(rt.vm) }); err != nil {
		return false, err
	}
	return true, nil
}

func (n *mutateNode) advance(rt *runtime, now time.Time) (bool, error) { return true, nil }
func (n *mutateNode) wake() (time.Time, bool)                          { return time.Time{}, false }

// tweenNode interpolates from..to, emitting once per paint. The first value
// is exactly from and the last exactly to.
type tweenNode[T any] struct {
	from, to T
	dur      time.Duration
	ease     easing.Func
	lerp     func(a, b T, t float64) T
	emit     func(vm *api.ViewModel, v T)
	origin   func(vm *api.ViewModel) T

	start time.Time
	a     T
}

func (n *tweenNode[T]) begin(rt *runtime, now time.Time) (bool, error) {
	n.start = now
	n.a = n.from
	if n.dur <= 0 {
		return true, n.send(rt, n.to)
	}
	if n.origin != nil {
		if err := rt.invoke(func() error { n.a = n.origin(rt.vm); return nil }); err != nil {
			return false, err
		}
	}
	return false, n.send(rt, n.a)
}

func (n *tweenNode[T]) advance(rt *runtime, now time.Time) (bool, error) {
	elapsed := now.Sub(n.start)
	if elapsed >= n.dur {
		return true, n.send(rt, n.to)
	}
	p := float64(elapsed) / float64(n.dur)
	return false, n.send(rt, n.lerp(n.a, n.to, n.ease(p)))
}

func (n *tweenNode[T]) wake() (time.Time, bool) { return n.start.Add(n.dur), true }

func (n *tweenNode[T]) send(rt *runtime, v T) error {
	if n.emit == nil {
		return nil
	}
	return rt.invoke(func() error { n.emit(rt.vm, v); return nil })
}

// typeNode emits every prefix of its text, one per interval.
type typeNode struct {
	prefixes []string
	per      time.Duration
	emit     func(vm *api.ViewModel, prefix string)

	i    int
	next time.Time
}

func newTypeNode(s api.Typewrite) *typeNode {
	units := graphemes(s.Text)
	prefixes := make([]string, 0, len(units)+1)
	var b strings.Builder
	prefixes = append(prefixes, "")
	for _, u := range units {
		b.WriteString(u)
		prefixes = append(prefixes, b.String())
	}
	return &typeNode{prefixes: prefixes, per: max(s.PerChar, 0), emit: s.OnTick}
}

func (n *typeNode) begin(rt *runtime, now time.Time) (bool, error) {
	n.i = 0
	n.next = now.Add(n.per)
	if err := n.send(rt); err != nil {
		return false, err
	}
	return n.i == len(n.prefixes)-1, nil
}

func (n *typeNode) advance(rt *runtime, now time.Time) (bool, error) {
	if now.Before(n.next) {
		return false, nil
	}
	n.i++
	n.next = n.next.Add(n.per)
	if err := n.send(rt); err != nil {
		return false, err
	}
	return n.i == len(n.prefixes)-1, nil
}

func (n *typeNode) wake() (time.Time, bool) { return n.next, false }

func (n *typeNode) send(rt *runtime) error {
	if n.emit == nil {
		return nil
	}
	prefix := n.prefixes[n.i]
	return rt.invoke(func() error { n.emit(rt.vm, prefix); return nil })
}

const (
	defaultSpringFrequency = 6.0
	defaultSpringDamping   = 0.7
	defaultSpringTolerance = 0.01
	// maxSpringDuration bounds springs that would otherwise ring forever.
	maxSpringDuration = 30 * time.Second
)

// springNode integrates a harmonica spring once per paint.
type springNode struct {
	cfg api.Spring

	spring   harmonica.Spring
	frame    time.Duration
	pos, vel float64
	start    time.Time
	last     time.Time
}

func newSpringNode(s api.Spring) *springNode {
	if s.Frequency <= 0 {
		s.Frequency = defaultSpringFrequency
	}
	if s.Damping <= 0 {
		s.Damping = defaultSpringDamping
	}
	if s.Tolerance <= 0 {
		s.Tolerance = defaultSpringTolerance
	}
	return &springNode{cfg: s}
}

func (n *springNode) begin(rt *runtime, now time.Time) (bool, error) {
	n.frame = rt.clock.FrameInterval()
	n.spring = harmonica.NewSpring(n.frame.Seconds(), n.cfg.Frequency, n.cfg.Damping)
	n.start, n.last = now, now
	n.pos, n.vel = n.cfg.From, 0

	if n.cfg.Origin != nil {
		if err := rt.invoke(func() error { n.pos = n.cfg.Origin(rt.vm); return nil }); err != nil {
			return false, err
		}
	}
	if n.settled() {
		return true, n.send(rt, n.cfg.To)
	}
	return false, n.send(rt, n.pos)
}

func (n *springNode) advance(rt *runtime, now time.Time) (bool, error) {
	frames := int(now.Sub(n.last) / n.frame)
	if frames < 1 {
		return false, nil
	}
	n.last = n.last.Add(time.Duration(frames) * n.frame)
	for i := 0; i < frames; i++ {
		n.pos, n.vel = n.spring.Update(n.pos, n.vel, n.cfg.To)
	}
	if n.settled() || now.Sub(n.start) >= maxSpringDuration {
		return true, n.send(rt, n.cfg.To)
	}
	return false, n.send(rt, n.pos)
}

func (n *springNode) wake() (time.Time, bool) { return n.last.Add(n.frame), true }

func (n *springNode) settled() bool {
	return math.Abs(n.pos-n.cfg.To) < n.cfg.Tolerance && math.Abs(n.vel) < n.cfg.Tolerance
}

func (n *springNode) send(rt *runtime, v float64) error {
	if n.cfg.OnTick == nil {
		return nil
	}
	return rt.invoke(func() error { n.cfg.OnTick(rt.vm, v); return nil })
}
