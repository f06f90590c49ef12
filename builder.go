package choreo

import (
	"fmt"
	"time"

	"github.com/petrijr/choreo/pkg/easing"
)

// ScriptBuilder provides a fluent API for composing scripts:
//
//	script := choreo.New("ai-search").
//	    Wait(5 * time.Second).
//	    Set("showBrowser", true).
//	    Move("cursor", choreo.Vec{X: 50, Y: 15.2}, 500*time.Millisecond, easing.InOutCubic).
//	    Type("url", "www.ai-search.com", 60*time.Millisecond)
//
//	dir, err := script.Director(choreo.WithLogger(logger))
//	outcome, err := dir.Run(ctx, vm)
type ScriptBuilder struct {
	name  string
	steps []Step
}

// New creates a builder for a script called name.
func New(name string) *ScriptBuilder {
	if name == "" {
		panic("choreo: script name must not be empty")
	}
	return &ScriptBuilder{name: name}
}

// Name returns the script name.
func (b *ScriptBuilder) Name() string {
	return b.name
}

// Step appends any step.
func (b *ScriptBuilder) Step(s Step) *ScriptBuilder {
	if s == nil {
		panic(fmt.Sprintf("choreo: script %q: nil step", b.name))
	}
	b.steps = append(b.steps, s)
	return b
}

func (b *ScriptBuilder) Wait(d time.Duration) *ScriptBuilder {
	return b.Step(WaitStep(d))
}

func (b *ScriptBuilder) Set(field string, value any) *ScriptBuilder {
	b.requireField("Set", field)
	return b.Step(SetStep(field, value))
}

func (b *ScriptBuilder) Tween(field string, from, to float64, d time.Duration, ease easing.Func) *ScriptBuilder {
	b.requireField("Tween", field)
	return b.Step(TweenStep(field, from, to, d, ease))
}

func (b *ScriptBuilder) Move(field string, to Vec, d time.Duration, ease easing.Func) *ScriptBuilder {
	b.requireField("Move", field)
	return b.Step(MoveStep(field, to, d, ease))
}

func (b *ScriptBuilder) Scroll(field string, to float64, d time.Duration) *ScriptBuilder {
	b.requireField("Scroll", field)
	return b.Step(ScrollStep(field, to, d))
}

func (b *ScriptBuilder) Type(field, text string, perChar time.Duration) *ScriptBuilder {
	b.requireField("Type", field)
	return b.Step(TypeStep(field, text, perChar))
}

func (b *ScriptBuilder) Spring(field string, to float64) *ScriptBuilder {
	b.requireField("Spring", field)
	return b.Step(SpringStep(field, to))
}

// Parallel appends a group whose steps start together.
func (b *ScriptBuilder) Parallel(steps ...Step) *ScriptBuilder {
	return b.Step(ParallelStep(steps...))
}

// Repeat appends a group replayed times times.
func (b *ScriptBuilder) Repeat(times int, steps ...Step) *ScriptBuilder {
	return b.Step(RepeatStep(times, steps...))
}

// Halt appends a step that cancels the run.
func (b *ScriptBuilder) Halt() *ScriptBuilder {
	return b.Step(Halt{})
}

// Build returns the script as a Sequence.
func (b *ScriptBuilder) Build() Step {
	steps := make([]Step, len(b.steps))
	copy(steps, b.steps)
	return Sequence{Steps: steps}
}

// Director builds the script and returns a Director named after it.
func (b *ScriptBuilder) Director(opts ...Option) (Director, error) {
	return NewDirector(b.Build(), append([]Option{WithName(b.name)}, opts...)...)
}

func (b *ScriptBuilder) requireField(op, field string) {
	if field == "" {
		panic(fmt.Sprintf("choreo: script %q: %s needs a field name", b.name, op))
	}
}
