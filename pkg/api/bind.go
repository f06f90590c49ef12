package api

import "sort"

// Helpers binding step callbacks to named view model fields.

func WriteNumber(field string) func(vm *ViewModel, v float64) {
	return func(vm *ViewModel, v float64) { vm.SetNumber(field, v) }
}

func WriteVec(field string) func(vm *ViewModel, v Vec) {
	return func(vm *ViewModel, v Vec) { vm.SetVec(field, v) }
}

func WriteText(field string) func(vm *ViewModel, s string) {
	return func(vm *ViewModel, s string) { vm.SetText(field, s) }
}

func ReadNumber(field string) func(vm *ViewModel) float64 {
	return func(vm *ViewModel) float64 { return vm.Number(field) }
}

func ReadVec(field string) func(vm *ViewModel) Vec {
	return func(vm *ViewModel) Vec { return vm.Vec(field) }
}

// SetFields returns a Mutate writing every entry of values, in sorted field
// order.
func SetFields(values map[string]any) Mutate {
	vals := make(map[string]any, len(values))
	for k, v := range values {
		vals[k] = Normalize(v)
	}
	return Mutate{Apply: func(vm *ViewModel) error {
		for _, k := range sortedKeys(vals) {
			vm.Set(k, vals[k])
		}
		return nil
	}}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
