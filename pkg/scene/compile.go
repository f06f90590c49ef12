package scene

import (
	"fmt"
	"time"

	"github.com/petrijr/choreo/pkg/api"
	"github.com/petrijr/choreo/pkg/easing"
)

// Script validates the scene and compiles its steps into a Sequence bound to
// the scene's field names.
func (s *Scene) Script() (api.Step, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return api.Sequence{Steps: compileAll(s.Steps)}, nil
}

func compileAll(specs []StepSpec) []api.Step {
	out := make([]api.Step, 0, len(specs))
	for i := range specs {
		out = append(out, compileStep(&specs[i]))
	}
	return out
}

// compileStep assumes st has been validated.
func compileStep(st *StepSpec) api.Step {
	switch st.Kind {
	case kindWait:
		return api.Wait{Duration: time.Duration(st.Wait)}
	case kindSet:
		return api.SetFields(st.Set)
	case kindTween:
		t := st.Tween
		step := api.Tween{
			To:       t.To,
			Duration: time.Duration(t.Duration),
			Ease:     ease(t.Ease),
			OnTick:   api.WriteNumber(t.Field),
		}
		if t.From != nil {
			step.From = *t.From
		} else {
			step.Origin = api.ReadNumber(t.Field)
		}
		return step
	case kindScroll:
		t := st.Tween
		step := api.Scroll{
			To:       t.To,
			Duration: time.Duration(t.Duration),
			Ease:     ease(t.Ease),
			OnTick:   api.WriteNumber(t.Field),
		}
		if t.From != nil {
			step.From = *t.From
		} else {
			step.Origin = api.ReadNumber(t.Field)
		}
		return step
	case kindMove:
		m := st.Move
		step := api.TweenVec{
			To:       m.To,
			Duration: time.Duration(m.Duration),
			Ease:     ease(m.Ease),
			OnTick:   api.WriteVec(m.Field),
		}
		if m.From != nil {
			step.From = *m.From
		} else {
			step.Origin = api.ReadVec(m.Field)
		}
		return step
	case kindType:
		return api.Typewrite{
			Text:    st.Type.Text,
			PerChar: time.Duration(st.Type.PerChar),
			OnTick:  api.WriteText(st.Type.Field),
		}
	case kindSpring:
		sp := st.Spring
		step := api.Spring{
			To:        sp.To,
			Frequency: sp.Frequency,
			Damping:   sp.Damping,
			Tolerance: sp.Tolerance,
			OnTick:    api.WriteNumber(sp.Field),
		}
		if sp.From != nil {
			step.From = *sp.From
		} else {
			step.Origin = api.ReadNumber(sp.Field)
		}
		return step
	case kindParallel:
		return api.Parallel{Steps: compileAll(st.Steps)}
	case kindSequence:
		return api.Sequence{Steps: compileAll(st.Steps)}
	case kindRepeat:
		return api.Repeat{Times: st.Repeat.Times, Body: api.Sequence{Steps: compileAll(st.Repeat.Steps)}}
	case kindHold:
		return api.Hold{}
	case kindHalt:
		return api.Halt{}
	}
	panic(fmt.Sprintf("scene: unknown kind %q", st.Kind))
}

// ease returns nil for an empty name so the step default applies.
func ease(name string) easing.Func {
	if name == "" {
		return nil
	}
	f, err := easing.ByName(name)
	if err != nil {
		return nil
	}
	return f
}
