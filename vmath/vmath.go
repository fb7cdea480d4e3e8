package vmath

import "math"

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

// Lerp interpolates a toward b by t (unclamped)
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// IsFinite reports whether f is neither NaN nor ±Inf
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// WrapAngle maps an angle into (-π, π]
func WrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// SmoothingFactor converts a per-frame interpolation factor tuned at refFPS into
// the equivalent factor for a step of dt seconds
func SmoothingFactor(perFrame, refFPS, dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	if perFrame >= 1 {
		return 1
	}
	return 1 - math.Pow(1-perFrame, dt*refFPS)
}
