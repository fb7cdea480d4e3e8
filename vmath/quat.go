package vmath

import "math"

// Quat is a unit quaternion rotation (X, Y, Z vector part, W scalar part)
type Quat struct {
	X, Y, Z, W float64
}

// QuatIdentity is the upright, unrotated orientation
var QuatIdentity = Quat{W: 1}

// QuatFromAxisAngle builds a rotation of angle radians about a unit axis
func QuatFromAxisAngle(axis Vec3F, angle float64) Quat {
	s, c := math.Sincos(angle * 0.5)
	return Quat{axis.X * s, axis.Y * s, axis.Z * s, c}
}

// QuatMul composes rotations: the result applies b first, then a
func QuatMul(a, b Quat) Quat {
	return Quat{
		X: a.W*b.X + a.X*b.W + a.Y*b.Z - a.Z*b.Y,
		Y: a.W*b.Y - a.X*b.Z + a.Y*b.W + a.Z*b.X,
		Z: a.W*b.Z + a.X*b.Y - a.Y*b.X + a.Z*b.W,
		W: a.W*b.W - a.X*b.X - a.Y*b.Y - a.Z*b.Z,
	}
}

// QuatNormalize rescales to unit length, falling back to identity for degenerate input
func QuatNormalize(q Quat) Quat {
	mag := math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if mag == 0 || !IsFinite(mag) {
		return QuatIdentity
	}
	inv := 1.0 / mag
	return Quat{q.X * inv, q.Y * inv, q.Z * inv, q.W * inv}
}

// QuatRotate rotates v by q
// Uses v' = v + 2w(u×v) + 2u×(u×v), u = vector part
func QuatRotate(q Quat, v Vec3F) Vec3F {
	u := Vec3F{q.X, q.Y, q.Z}
	t := V3FScale(V3FCross(u, v), 2)
	return V3FAdd(V3FAdd(v, V3FScale(t, q.W)), V3FCross(u, t))
}

// QuatIntegrate advances q by angular velocity w (rad/s, world frame) over dt
func QuatIntegrate(q Quat, w Vec3F, dt float64) Quat {
	half := 0.5 * dt
	dq := QuatMul(Quat{w.X * half, w.Y * half, w.Z * half, 0}, q)
	return QuatNormalize(Quat{q.X + dq.X, q.Y + dq.Y, q.Z + dq.Z, q.W + dq.W})
}

// QuatPitch extracts the rotation angle about +Z in (-π, π]
// Only meaningful for rotations restricted to the Z axis
func QuatPitch(q Quat) float64 {
	return 2 * math.Atan2(q.Z, q.W)
}

// QuatRestrictZ drops X/Y rotation components, keeping only rotation about Z
func QuatRestrictZ(q Quat) Quat {
	return QuatNormalize(Quat{Z: q.Z, W: q.W})
}

// QuatConj returns the inverse of a unit quaternion
func QuatConj(q Quat) Quat {
	return Quat{-q.X, -q.Y, -q.Z, q.W}
}
