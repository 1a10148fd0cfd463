package utils

import (
	"math"
)

// TwoPi is a full revolution in radians.
const TwoPi = 2 * math.Pi

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Float64AlmostEqual compares two float64s and returns if the difference between them is less than epsilon.
func Float64AlmostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

// Clamp restricts v to the closed range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Square is faster than math.Pow(n, 2).
func Square(n float64) float64 {
	return n * n
}

// ModAngRad maps an angle in radians onto [0, 2π).
func ModAngRad(ang float64) float64 {
	ang = math.Mod(ang, TwoPi)
	if ang < 0 {
		ang += TwoPi
	}
	// math.Mod of a tiny negative number can land exactly on 2π after the shift.
	if ang >= TwoPi {
		ang = 0
	}
	return ang
}

// ModAngDeg maps an angle in degrees onto (-180, 180].
func ModAngDeg(ang float64) float64 {
	ang = math.Mod(ang, 360)
	if ang <= -180 {
		ang += 360
	} else if ang > 180 {
		ang -= 360
	}
	return ang
}

// MinAngleDiff returns the signed shortest rotation, in (-π, π], that takes a1 to a2.
func MinAngleDiff(a1, a2 float64) float64 {
	d := math.Mod(a2-a1, TwoPi)
	if d <= -math.Pi {
		d += TwoPi
	} else if d > math.Pi {
		d -= TwoPi
	}
	return d
}
