package api

import (
	"time"

	"github.com/petrijr/choreo/pkg/easing"
)

// Step is one node of a script tree. The set of variants is closed; custom
// behaviour is expressed through the callbacks of the leaf variants.
type Step interface {
	// Kind names the variant, e.g. "wait" or "tween".
	Kind() string
	step()
}

// Wait suspends for Duration. Negative durations are treated as zero.
type Wait struct {
	Duration time.Duration
}

// Tween drives a scalar from From to To over Duration. OnTick receives From
// exactly on the first tick and To exactly on the last. A nil Ease is linear.
// Origin, when set, is read at the moment the step starts and replaces From.
type Tween struct {
	From, To float64
	Duration time.Duration
	Ease     easing.Func
	OnTick   func(vm *ViewModel, v float64)
	Origin   func(vm *ViewModel) float64
}

// TweenVec is Tween over a two dimensional point.
type TweenVec struct {
	From, To Vec
	Duration time.Duration
	Ease     easing.Func
	OnTick   func(vm *ViewModel, v Vec)
	Origin   func(vm *ViewModel) Vec
}

// Scroll is a Tween over a scroll offset. A nil Ease is ease-in-out-cubic.
type Scroll struct {
	From, To float64
	Duration time.Duration
	Ease     easing.Func
	OnTick   func(vm *ViewModel, offset float64)
	Origin   func(vm *ViewModel) float64
}

// Typewrite reveals Text one character at a time. OnTick receives every
// prefix from "" to the full text, PerChar apart.
type Typewrite struct {
	Text    string
	PerChar time.Duration
	OnTick  func(vm *ViewModel, prefix string)
}

// Mutate applies a discrete change to the view model without suspending.
// A returned error fails the run.
type Mutate struct {
	Apply func(vm *ViewModel) error
}

// Spring moves a scalar towards To with a damped spring, one integration
// step per frame, and settles exactly on To once within Tolerance.
// Frequency is the angular frequency; Damping below 1 overshoots.
type Spring struct {
	From, To  float64
	Frequency float64
	Damping   float64
	Tolerance float64
	OnTick    func(vm *ViewModel, v float64)
	Origin    func(vm *ViewModel) float64
}

// Parallel starts all Steps together and completes when all have completed.
type Parallel struct {
	Steps []Step
}

// Sequence runs Steps in order.
type Sequence struct {
	Steps []Step
}

// Repeat runs Body Times times. Times <= 0 repeats until the run is cancelled.
type Repeat struct {
	Times int
	Body  Step
}

// Hold suspends until the run is cancelled.
type Hold struct{}

// Halt cancels the current run.
type Halt struct{}

func (Wait) Kind() string      { return "wait" }
func (Tween) Kind() string     { return "tween" }
func (TweenVec) Kind() string  { return "move" }
func (Scroll) Kind() string    { return "scroll" }
func (Typewrite) Kind() string { return "type" }
func (Mutate) Kind() string    { return "mutate" }
func (Spring) Kind() string    { return "spring" }
func (Parallel) Kind() string  { return "parallel" }
func (Sequence) Kind() string  { return "sequence" }
func (Repeat) Kind() string    { return "repeat" }
func (Hold) Kind() string      { return "hold" }
func (Halt) Kind() string      { return "halt" }

func (Wait) step()      {}
func (Tween) step()     {}
func (TweenVec) step()  {}
func (Scroll) step()    {}
func (Typewrite) step() {}
func (Mutate) step()    {}
func (Spring) step()    {}
func (Parallel) step()  {}
func (Sequence) step()  {}
func (Repeat) step()    {}
func (Hold) step()      {}
func (Halt) step()      {}

// Vec is a two dimensional point.
type Vec struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// LerpVec interpolates component-wise with exact endpoints.
func LerpVec(a, b Vec, t float64) Vec {
	return Vec{X: easing.Lerp(a.X, b.X, t), Y: easing.Lerp(a.Y, b.Y, t)}
}
