package scene

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/petrijr/choreo/pkg/api"
	"github.com/petrijr/choreo/pkg/easing"
)

// ValidationError describes one problem in a scene document.
type ValidationError struct {
	// Path is the slash separated index of the offending step, e.g. "3/1".
	Path string
	Line int
	Msg  string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return "scene: " + e.Msg
	}
	return fmt.Sprintf("scene: step %s (line %d): %s", e.Path, e.Line, e.Msg)
}

type fieldKind int

const (
	kindUnknown fieldKind = iota
	kindNumber
	kindText
	kindVec
	kindBool
)

func (k fieldKind) String() string {
	switch k {
	case kindNumber:
		return "number"
	case kindText:
		return "text"
	case kindVec:
		return "vector"
	case kindBool:
		return "bool"
	}
	return "unknown"
}

func kindOf(v any) fieldKind {
	switch api.Normalize(v).(type) {
	case float64:
		return kindNumber
	case string:
		return kindText
	case api.Vec:
		return kindVec
	case bool:
		return kindBool
	}
	return kindUnknown
}

// Validate reports every problem in the scene joined with errors.Join.
func (s *Scene) Validate() error {
	var errs []error
	if s.Name == "" {
		errs = append(errs, &ValidationError{Msg: "name is required"})
	}

	fields := make(map[string]fieldKind, len(s.Fields))
	names := make([]string, 0, len(s.Fields))
	for name := range s.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		k := kindOf(s.Fields[name])
		if k == kindUnknown {
			errs = append(errs, &ValidationError{Msg: fmt.Sprintf("field %q has unsupported value %v", name, s.Fields[name])})
		}
		fields[name] = k
	}

	v := validator{fields: fields}
	for i := range s.Steps {
		v.step(&s.Steps[i], strconv.Itoa(i))
	}
	errs = append(errs, v.errs...)
	return errors.Join(errs...)
}

type validator struct {
	fields map[string]fieldKind
	errs   []error
}

func (v *validator) fail(st *StepSpec, path, format string, args ...any) {
	v.errs = append(v.errs, &ValidationError{Path: path, Line: st.Line, Msg: fmt.Sprintf(format, args...)})
}

func (v *validator) field(st *StepSpec, path, name string, want fieldKind) {
	if name == "" {
		v.fail(st, path, "%s needs a field", st.Kind)
		return
	}
	got, ok := v.fields[name]
	if !ok {
		v.fail(st, path, "undeclared field %q", name)
		return
	}
	if got != want {
		v.fail(st, path, "%s needs a %s field, %q is %s", st.Kind, want, name, got)
	}
}

func (v *validator) ease(st *StepSpec, path, name string) {
	if name == "" {
		return
	}
	if _, err := easing.ByName(name); err != nil {
		v.fail(st, path, "%v", err)
	}
}

func (v *validator) step(st *StepSpec, path string) {
	switch st.Kind {
	case kindWait, kindHold, kindHalt:
	case kindSet:
		keys := make([]string, 0, len(st.Set))
		for k := range st.Set {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			v.field(st, path, k, kindOf(st.Set[k]))
		}
	case kindTween, kindScroll:
		v.field(st, path, st.Tween.Field, kindNumber)
		v.ease(st, path, st.Tween.Ease)
	case kindMove:
		v.field(st, path, st.Move.Field, kindVec)
		v.ease(st, path, st.Move.Ease)
	case kindType:
		v.field(st, path, st.Type.Field, kindText)
	case kindSpring:
		v.field(st, path, st.Spring.Field, kindNumber)
	case kindParallel, kindSequence:
		for i := range st.Steps {
			v.step(&st.Steps[i], path+"/"+strconv.Itoa(i))
		}
	case kindRepeat:
		if st.Repeat.Times < 0 {
			v.fail(st, path, "repeat times must not be negative")
		}
		if len(st.Repeat.Steps) == 0 {
			v.fail(st, path, "repeat needs steps")
		}
		for i := range st.Repeat.Steps {
			v.step(&st.Repeat.Steps[i], path+"/"+strconv.Itoa(i))
		}
	default:
		v.fail(st, path, "unknown step kind %q", st.Kind)
	}
}
