package api

import (
	"fmt"
	"sort"
	"sync"
)

// Change describes one field write.
type Change struct {
	Field string
	Old   any
	New   any
}

// ViewModel is a flat, goroutine-safe bag of named fields. Values are
// normalised to bool, float64, string or Vec.
type ViewModel struct {
	mu       sync.RWMutex
	fields   map[string]any
	version  uint64
	watchers map[int]func(Change)
	subs     map[int]chan struct{}
	nextID   int
}

// NewViewModel returns a view model holding a copy of initial.
func NewViewModel(initial map[string]any) *ViewModel {
	vm := &ViewModel{
		fields:   make(map[string]any, len(initial)),
		watchers: make(map[int]func(Change)),
		subs:     make(map[int]chan struct{}),
	}
	for k, v := range initial {
		vm.fields[k] = Normalize(v)
	}
	return vm
}

// Set writes a field and notifies watchers and subscribers.
func (vm *ViewModel) Set(name string, value any) {
	value = Normalize(value)

	vm.mu.Lock()
	if vm.fields == nil {
		vm.fields = make(map[string]any)
	}
	old := vm.fields[name]
	vm.fields[name] = value
	vm.version++
	watchers := vm.watcherList()
	vm.notifyLocked()
	vm.mu.Unlock()

	ch := Change{Field: name, Old: old, New: value}
	for _, w := range watchers {
		w(ch)
	}
}

// Get returns a field's value.
func (vm *ViewModel) Get(name string) (any, bool) {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	v, ok := vm.fields[name]
	return v, ok
}

func (vm *ViewModel) SetBool(name string, v bool)      { vm.Set(name, v) }
func (vm *ViewModel) SetNumber(name string, v float64) { vm.Set(name, v) }
func (vm *ViewModel) SetText(name string, v string)    { vm.Set(name, v) }
func (vm *ViewModel) SetVec(name string, v Vec)        { vm.Set(name, v) }

// Bool returns the field as a bool, or false.
func (vm *ViewModel) Bool(name string) bool {
	v, _ := vm.Get(name)
	b, _ := v.(bool)
	return b
}

// Number returns the field as a float64, or 0.
func (vm *ViewModel) Number(name string) float64 {
	v, _ := vm.Get(name)
	f, _ := v.(float64)
	return f
}

// Text returns the field as a string, or "".
func (vm *ViewModel) Text(name string) string {
	v, _ := vm.Get(name)
	s, _ := v.(string)
	return s
}

// Vec returns the field as a Vec, or the origin.
func (vm *ViewModel) Vec(name string) Vec {
	v, _ := vm.Get(name)
	p, _ := v.(Vec)
	return p
}

// Fields returns the field names in sorted order.
func (vm *ViewModel) Fields() []string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	out := make([]string, 0, len(vm.fields))
	for k := range vm.fields {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Snapshot copies the current fields.
func (vm *ViewModel) Snapshot() map[string]any {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	out := make(map[string]any, len(vm.fields))
	for k, v := range vm.fields {
		out[k] = v
	}
	return out
}

// Version increases on every write.
func (vm *ViewModel) Version() uint64 {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.version
}

// Reset replaces every field with a copy of fields. Watchers are not called;
// subscribers are notified once.
func (vm *ViewModel) Reset(fields map[string]any) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.fields = make(map[string]any, len(fields))
	for k, v := range fields {
		vm.fields[k] = Normalize(v)
	}
	vm.version++
	vm.notifyLocked()
}

// Watch registers fn to be called synchronously after every Set, on the
// writing goroutine. The returned func removes the watcher.
func (vm *ViewModel) Watch(fn func(Change)) func() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.watchers == nil {
		vm.watchers = make(map[int]func(Change))
	}
	id := vm.nextID
	vm.nextID++
	vm.watchers[id] = fn
	return func() {
		vm.mu.Lock()
		defer vm.mu.Unlock()
		delete(vm.watchers, id)
	}
}

// Subscribe returns a channel that receives a value whenever the view model
// changes. Notifications coalesce: a slow reader sees one pending signal.
func (vm *ViewModel) Subscribe() (<-chan struct{}, func()) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.subs == nil {
		vm.subs = make(map[int]chan struct{})
	}
	id := vm.nextID
	vm.nextID++
	ch := make(chan struct{}, 1)
	vm.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			vm.mu.Lock()
			defer vm.mu.Unlock()
			delete(vm.subs, id)
		})
	}
}

func (vm *ViewModel) watcherList() []func(Change) {
	if len(vm.watchers) == 0 {
		return nil
	}
	ids := make([]int, 0, len(vm.watchers))
	for id := range vm.watchers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]func(Change), len(ids))
	for i, id := range ids {
		out[i] = vm.watchers[id]
	}
	return out
}

func (vm *ViewModel) notifyLocked() {
	for _, ch := range vm.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Normalize converts numeric types to float64 and {x, y} maps to Vec.
// Other values are returned unchanged.
func Normalize(v any) any {
	switch x := v.(type) {
	case int:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint:
		return float64(x)
	case uint64:
		return float64(x)
	case float32:
		return float64(x)
	case *Vec:
		if x == nil {
			return Vec{}
		}
		return *x
	case map[string]any:
		if p, ok := vecFromMap(x); ok {
			return p
		}
	}
	return v
}

func vecFromMap(m map[string]any) (Vec, bool) {
	if len(m) != 2 {
		return Vec{}, false
	}
	x, okX := Normalize(m["x"]).(float64)
	y, okY := Normalize(m["y"]).(float64)
	if !okX || !okY {
		return Vec{}, false
	}
	return Vec{X: x, Y: y}, true
}

// FormatValue renders a field value for logs and traces.
func FormatValue(v any) string {
	switch x := v.(type) {
	case string:
		return fmt.Sprintf("%q", x)
	case float64:
		return fmt.Sprintf("%.4g", x)
	case Vec:
		return fmt.Sprintf("(%.4g, %.4g)", x.X, x.Y)
	case nil:
		return "<unset>"
	}
	return fmt.Sprint(v)
}
