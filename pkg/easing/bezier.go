package easing

import "math"

const (
	bezierNewtonIterations = 8
	bezierEpsilon          = 1e-7
)

// CubicBezier returns the CSS cubic-bezier(x1, y1, x2, y2) timing function.
// x1 and x2 are clamped to [0,1] so the curve stays a function of time.
func CubicBezier(x1, y1, x2, y2 float64) Func {
	x1, x2 = clamp(x1), clamp(x2)
	if x1 == y1 && x2 == y2 {
		return Linear
	}

	// Polynomial coefficients for B(s) = ((a*s + b)*s + c)*s.
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(s float64) float64 { return ((ax*s+bx)*s + cx) * s }
	sampleY := func(s float64) float64 { return ((ay*s+by)*s + cy) * s }
	slopeX := func(s float64) float64 { return (3*ax*s+2*bx)*s + cx }

	solve := func(x float64) float64 {
		s := x
		for i := 0; i < bezierNewtonIterations; i++ {
			dx := sampleX(s) - x
			if math.Abs(dx) < bezierEpsilon {
				return s
			}
			d := slopeX(s)
			if math.Abs(d) < 1e-6 {
				break
			}
			s -= dx / d
		}

		// Newton did not converge; fall back to bisection.
		lo, hi := 0.0, 1.0
		s = x
		for lo < hi {
			v := sampleX(s)
			if math.Abs(v-x) < bezierEpsilon {
				return s
			}
			if x > v {
				lo = s
			} else {
				hi = s
			}
			next := (lo + hi) / 2
			if next == s {
				break
			}
			s = next
		}
		return s
	}

	return endpoints(func(t float64) float64 {
		return sampleY(solve(t))
	})
}
