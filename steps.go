package choreo

import (
	"time"

	"github.com/petrijr/choreo/pkg/api"
	"github.com/petrijr/choreo/pkg/easing"
)

// Step constructors bound to named view model fields.

// WaitStep suspends for d.
func WaitStep(d time.Duration) Step {
	return api.Wait{Duration: d}
}

// SetStep writes value to field without suspending.
func SetStep(field string, value any) Step {
	return api.SetFields(map[string]any{field: value})
}

// TweenStep drives a number field from from to to over d.
func TweenStep(field string, from, to float64, d time.Duration, ease easing.Func) Step {
	return api.Tween{From: from, To: to, Duration: d, Ease: ease, OnTick: api.WriteNumber(field)}
}

// TweenFromCurrentStep drives a number field from its value at step start.
func TweenFromCurrentStep(field string, to float64, d time.Duration, ease easing.Func) Step {
	return api.Tween{
		To:       to,
		Duration: d,
		Ease:     ease,
		OnTick:   api.WriteNumber(field),
		Origin:   api.ReadNumber(field),
	}
}

// MoveStep drives a vector field from its current value to to over d.
func MoveStep(field string, to Vec, d time.Duration, ease easing.Func) Step {
	return api.TweenVec{
		To:       to,
		Duration: d,
		Ease:     ease,
		OnTick:   api.WriteVec(field),
		Origin:   api.ReadVec(field),
	}
}

// ScrollStep scrolls a number field from its current value to to.
func ScrollStep(field string, to float64, d time.Duration) Step {
	return api.Scroll{
		To:       to,
		Duration: d,
		OnTick:   api.WriteNumber(field),
		Origin:   api.ReadNumber(field),
	}
}

// TypeStep reveals text into a text field one character every perChar.
func TypeStep(field, text string, perChar time.Duration) Step {
	return api.Typewrite{Text: text, PerChar: perChar, OnTick: api.WriteText(field)}
}

// SpringStep springs a number field from its current value to to with the
// default stiffness.
func SpringStep(field string, to float64) Step {
	return api.Spring{To: to, OnTick: api.WriteNumber(field), Origin: api.ReadNumber(field)}
}

// ParallelStep runs steps together.
func ParallelStep(steps ...Step) Step {
	return api.Parallel{Steps: steps}
}

// SequenceStep runs steps in order.
func SequenceStep(steps ...Step) Step {
	return api.Sequence{Steps: steps}
}

// RepeatStep runs steps in order times times; times <= 0 repeats until
// cancelled.
func RepeatStep(times int, steps ...Step) Step {
	return api.Repeat{Times: times, Body: api.Sequence{Steps: steps}}
}
