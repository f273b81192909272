// Package detmath provides the handful of transcendental functions the
// renderer needs, evaluated so that every host produces the same bits.
//
// The platform math package is free to use hardware instructions and
// architecture-specific kernels for Sin and Cos, and the compiler may fuse
// a*b+c into a single rounding on arm64, ppc64le and s390x. Both break
// cross-host pixel identity. Every product here is forced to round on its
// own through an explicit float64 conversion, and only IEEE-exact helpers
// (Floor, Abs, Sqrt) are taken from the math package.
package detmath

import "math"

const (
	// Pi is the float64 closest to π.
	Pi = math.Pi
	// TwoPi is 2π rounded once.
	TwoPi = 2 * math.Pi
	// HalfPi is π/2 rounded once.
	HalfPi = math.Pi / 2
)

// Taylor coefficients (-1)^n/(2n+1)! up to x^15. On [-π/2, π/2] the
// truncation error is below 1e-12, far under one 8-bit channel step.
const (
	s3  = -1.0 / 6
	s5  = 1.0 / 120
	s7  = -1.0 / 5040
	s9  = 1.0 / 362880
	s11 = -1.0 / 39916800
	s13 = 1.0 / 6227020800
	s15 = -1.0 / 1307674368000
)

// Sin returns the sine of x.
func Sin(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return math.NaN()
	}
	k := math.Floor(float64(x/TwoPi) + 0.5)
	r := x - float64(k*TwoPi)
	// Fold into [-π/2, π/2] using sin(π - r) = sin(r).
	if r > HalfPi {
		r = Pi - r
	} else if r < -HalfPi {
		r = -Pi - r
	}
	r2 := float64(r * r)
	p := s15
	p = float64(p*r2) + s13
	p = float64(p*r2) + s11
	p = float64(p*r2) + s9
	p = float64(p*r2) + s7
	p = float64(p*r2) + s5
	p = float64(p*r2) + s3
	p = float64(p * r2)
	return r + float64(r*p)
}

// Cos returns the cosine of x.
func Cos(x float64) float64 {
	return Sin(x + HalfPi)
}

// Lerp interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + float64((b-a)*t)
}

// Fade is the quintic smoothstep t³(t(6t−15)+10).
func Fade(t float64) float64 {
	inner := float64(t*6) - 15
	inner = float64(t*inner) + 10
	return float64(float64(float64(t*t)*t) * inner)
}

// Round rounds half away from zero.
func Round(x float64) float64 {
	if x < 0 {
		return -math.Floor(-x + 0.5)
	}
	return math.Floor(x + 0.5)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Map linearly remaps v from [a0, a1] to [b0, b1].
func Map(v, a0, a1, b0, b1 float64) float64 {
	if a1 == a0 {
		return b0
	}
	return b0 + float64(float64((v-a0)/(a1-a0))*(b1-b0))
}
