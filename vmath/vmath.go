package vmath

import (
	"math"
)

// Angle conversion factors
const (
	Deg2Rad = math.Pi / 180.0
	Rad2Deg = 180.0 / math.Pi
	TwoPi   = 2.0 * math.Pi
)

// Epsilon is the default comparison tolerance for geometry checks
const Epsilon = 1e-6

// WrapDegrees maps an angle into [0, 360)
func WrapDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// -0 and 360 from rounding
	if deg >= 360 {
		deg = 0
	}
	return deg
}

// AngleDelta returns the shortest signed difference b-a in degrees, in (-180, 180]
func AngleDelta(a, b float64) float64 {
	d := WrapDegrees(b - a)
	if d > 180 {
		d -= 360
	}
	return d
}

// Lerp interpolates between a and b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NearlyEqual reports whether |a-b| <= eps
func NearlyEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}
