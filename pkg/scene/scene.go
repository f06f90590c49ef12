// Package scene loads choreography scripts from YAML.
//
// A scene declares the initial view model fields and a list of steps bound
// to those fields by name:
//
//	name: ai-search
//	fields: {url: "", cursor: {x: 50, y: 80}}
//	steps:
//	  - wait: 5s
//	  - move: {field: cursor, to: {x: 50, y: 15.2}, duration: 500ms, ease: ease-in-out-cubic}
//	  - type: {field: url, text: www.ai-search.com, per_char: 60ms}
//
// Three demos ship embedded; see Builtins.
package scene

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/petrijr/choreo/pkg/api"
)

// ErrUnknownScene is returned by Builtin for names that are not embedded.
var ErrUnknownScene = errors.New("scene: unknown scene")

//go:embed demos/*.yaml
var demos embed.FS

// Scene is one choreography script.
type Scene struct {
	Name   string         `yaml:"name"`
	Title  string         `yaml:"title,omitempty"`
	Loop   bool           `yaml:"loop,omitempty"`
	Fields map[string]any `yaml:"fields"`
	Steps  []StepSpec     `yaml:"steps"`
}

// Parse decodes and validates a scene document.
func Parse(data []byte) (*Scene, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var sc Scene
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("scene: decode: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Load reads and parses a scene file.
func Load(file string) (*Scene, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return sc, nil
}

// Builtins lists the embedded demo names.
func Builtins() []string {
	entries, err := demos.ReadDir("demos")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(out)
	return out
}

// Builtin parses an embedded demo.
func Builtin(name string) (*Scene, error) {
	data, err := demos.ReadFile("demos/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return Parse(data)
}

// Resolve returns the embedded demo called ref, or loads ref as a file.
func Resolve(ref string) (*Scene, error) {
	sc, err := Builtin(ref)
	if err == nil || !errors.Is(err, ErrUnknownScene) {
		return sc, err
	}
	if _, statErr := os.Stat(ref); statErr != nil {
		return nil, err
	}
	return Load(ref)
}

// Initial returns a normalised copy of the declared fields.
func (s *Scene) Initial() map[string]any {
	out := make(map[string]any, len(s.Fields))
	for k, v := range s.Fields {
		out[k] = api.Normalize(v)
	}
	return out
}

// NewViewModel returns a view model holding the scene's initial fields.
func (s *Scene) NewViewModel() *api.ViewModel {
	return api.NewViewModel(s.Initial())
}

// Reset writes the initial fields into vm.
func (s *Scene) Reset(vm *api.ViewModel) {
	vm.Reset(s.Initial())
}
