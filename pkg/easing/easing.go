// Package easing maps linear progress in [0,1] onto eased progress.
//
// Every function clamps its input to [0,1] and returns exactly 0 at 0 and
// exactly 1 at 1, so drivers can rely on exact endpoints.
package easing

import "math"

// Func maps progress in [0,1] to eased progress.
type Func func(t float64) float64

func clamp(t float64) float64 {
	switch {
	case math.IsNaN(t), t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	return t
}

// endpoints wraps f so that 0 and 1 are returned exactly.
func endpoints(f func(float64) float64) Func {
	return func(t float64) float64 {
		t = clamp(t)
		if t == 0 || t == 1 {
			return t
		}
		return f(t)
	}
}

var (
	// Linear returns progress unchanged.
	Linear = endpoints(func(t float64) float64 { return t })

	InQuad    = endpoints(func(t float64) float64 { return t * t })
	OutQuad   = endpoints(func(t float64) float64 { return 1 - (1-t)*(1-t) })
	InOutQuad = endpoints(func(t float64) float64 {
		if t < 0.5 {
			return 2 * t * t
		}
		return 1 - math.Pow(-2*t+2, 2)/2
	})

	InCubic = endpoints(func(t float64) float64 { return t * t * t })

	// OutCubic is the decelerating "ease-out" curve.
	OutCubic = endpoints(func(t float64) float64 { return 1 - math.Pow(1-t, 3) })

	// InOutCubic accelerates until the midpoint, then decelerates.
	InOutCubic = endpoints(func(t float64) float64 {
		if t < 0.5 {
			return 4 * t * t * t
		}
		return 1 - math.Pow(-2*t+2, 3)/2
	})

	// OutBack overshoots the target slightly before settling.
	OutBack = endpoints(func(t float64) float64 {
		const c1 = 1.70158
		const c3 = c1 + 1
		return 1 + c3*math.Pow(t-1, 3) + c1*math.Pow(t-1, 2)
	})
)

// Lerp interpolates between a and b. It returns a exactly at t == 0 and b
// exactly at t == 1.
func Lerp(a, b, t float64) float64 {
	switch t {
	case 0:
		return a
	case 1:
		return b
	}
	return a + (b-a)*t
}
