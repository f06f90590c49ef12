package easing

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrUnknown is returned by ByName for names that are not registered.
var ErrUnknown = errors.New("easing: unknown easing")

var named = map[string]Func{
	"linear":            Linear,
	"ease-in":           InCubic,
	"ease-out":          OutCubic,
	"ease-in-out":       InOutCubic,
	"ease-in-quad":      InQuad,
	"ease-out-quad":     OutQuad,
	"ease-in-out-quad":  InOutQuad,
	"ease-in-cubic":     InCubic,
	"ease-out-cubic":    OutCubic,
	"ease-in-out-cubic": InOutCubic,
	"ease-out-back":     OutBack,
}

// ByName resolves a named easing. Besides the registered names it accepts
// the CSS form "cubic-bezier(x1, y1, x2, y2)".
func ByName(name string) (Func, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if f, ok := named[key]; ok {
		return f, nil
	}
	if strings.HasPrefix(key, "cubic-bezier(") && strings.HasSuffix(key, ")") {
		return parseCubicBezier(key)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
}

// Names lists the registered easing names in sorted order.
func Names() []string {
	out := make([]string, 0, len(named))
	for k := range named {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func parseCubicBezier(key string) (Func, error) {
	body := strings.TrimSuffix(strings.TrimPrefix(key, "cubic-bezier("), ")")
	parts := strings.Split(body, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("%w: cubic-bezier needs 4 arguments, got %d", ErrUnknown, len(parts))
	}

	var p [4]float64
	for i, s := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: cubic-bezier argument %d: %v", ErrUnknown, i+1, err)
		}
		p[i] = v
	}
	return CubicBezier(p[0], p[1], p[2], p[3]), nil
}
