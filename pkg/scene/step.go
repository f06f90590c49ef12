package scene

import (
	"fmt"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/petrijr/choreo/pkg/api"
)

// Duration accepts Go duration strings ("1.5s", "60ms") or integer
// milliseconds.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be a scalar", value.Line)
	}
	if value.Tag == "!!int" {
		ms, err := strconv.ParseInt(value.Value, 10, 64)
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}
	v, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// TweenSpec configures tween and scroll steps. A nil From starts from the
// field's value when the step begins.
type TweenSpec struct {
	Field    string   `yaml:"field"`
	From     *float64 `yaml:"from,omitempty"`
	To       float64  `yaml:"to"`
	Duration Duration `yaml:"duration"`
	Ease     string   `yaml:"ease,omitempty"`
}

// MoveSpec configures a vector tween.
type MoveSpec struct {
	Field    string   `yaml:"field"`
	From     *api.Vec `yaml:"from,omitempty"`
	To       api.Vec  `yaml:"to"`
	Duration Duration `yaml:"duration"`
	Ease     string   `yaml:"ease,omitempty"`
}

// TypeSpec configures a typewriter reveal.
type TypeSpec struct {
	Field   string   `yaml:"field"`
	Text    string   `yaml:"text"`
	PerChar Duration `yaml:"per_char"`
}

// SpringSpec configures a spring step.
type SpringSpec struct {
	Field     string   `yaml:"field"`
	From      *float64 `yaml:"from,omitempty"`
	To        float64  `yaml:"to"`
	Frequency float64  `yaml:"frequency,omitempty"`
	Damping   float64  `yaml:"damping,omitempty"`
	Tolerance float64  `yaml:"tolerance,omitempty"`
}

// RepeatSpec replays Steps Times times; zero repeats forever.
type RepeatSpec struct {
	Times int        `yaml:"times"`
	Steps []StepSpec `yaml:"steps"`
}

// StepSpec is one entry of a scene's step list: a mapping with exactly one
// key naming the kind, or one of the bare words "hold" and "halt".
type StepSpec struct {
	Kind string
	Line int

	Wait   Duration
	Set    map[string]any
	Tween  *TweenSpec
	Move   *MoveSpec
	Type   *TypeSpec
	Spring *SpringSpec
	Repeat *RepeatSpec
	Steps  []StepSpec
}

const (
	kindWait     = "wait"
	kindSet      = "set"
	kindTween    = "tween"
	kindScroll   = "scroll"
	kindMove     = "move"
	kindType     = "type"
	kindSpring   = "spring"
	kindParallel = "parallel"
	kindSequence = "sequence"
	kindRepeat   = "repeat"
	kindHold     = "hold"
	kindHalt     = "halt"
)

func (s *StepSpec) UnmarshalYAML(value *yaml.Node) error {
	s.Line = value.Line

	switch value.Kind {
	case yaml.ScalarNode:
		switch value.Value {
		case kindHold, kindHalt:
			s.Kind = value.Value
			return nil
		}
		return fmt.Errorf("line %d: unknown step %q", value.Line, value.Value)
	case yaml.MappingNode:
	default:
		return fmt.Errorf("line %d: step must be a mapping", value.Line)
	}

	if len(value.Content) != 2 {
		return fmt.Errorf("line %d: step must have exactly one kind, got %d", value.Line, len(value.Content)/2)
	}
	key, body := value.Content[0].Value, value.Content[1]
	s.Kind = key

	switch key {
	case kindWait:
		return body.Decode(&s.Wait)
	case kindSet:
		return body.Decode(&s.Set)
	case kindTween, kindScroll:
		s.Tween = &TweenSpec{}
		return body.Decode(s.Tween)
	case kindMove:
		s.Move = &MoveSpec{}
		return body.Decode(s.Move)
	case kindType:
		s.Type = &TypeSpec{}
		return body.Decode(s.Type)
	case kindSpring:
		s.Spring = &SpringSpec{}
		return body.Decode(s.Spring)
	case kindParallel, kindSequence:
		return body.Decode(&s.Steps)
	case kindRepeat:
		s.Repeat = &RepeatSpec{}
		return body.Decode(s.Repeat)
	case kindHold, kindHalt:
		return nil
	}
	return fmt.Errorf("line %d: unknown step kind %q", value.Line, key)
}
