package vmath

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestQuatRotatePitch(t *testing.T) {
	q := QuatFromAxisAngle(UnitZ, math.Pi/2)
	v := QuatRotate(q, UnitX)
	if !near(v.X, 0) || !near(v.Y, 1) || !near(v.Z, 0) {
		t.Errorf("rotating +X by 90° about Z: got %+v, want (0,1,0)", v)
	}
	if !near(QuatPitch(q), math.Pi/2) {
		t.Errorf("pitch = %v, want π/2", QuatPitch(q))
	}
}

func TestQuatIntegrateMatchesAxisAngle(t *testing.T) {
	q := QuatIdentity
	w := Vec3F{Z: 1.5}
	for i := 0; i < 1000; i++ {
		q = QuatIntegrate(q, w, 0.001)
	}
	if got := QuatPitch(q); math.Abs(got-1.5) > 1e-3 {
		t.Errorf("integrated pitch = %v, want ~1.5", got)
	}
}

func TestQuatNormalizeDegenerate(t *testing.T) {
	if got := QuatNormalize(Quat{}); got != QuatIdentity {
		t.Errorf("zero quaternion normalized to %+v, want identity", got)
	}
	if got := QuatNormalize(Quat{W: math.NaN()}); got != QuatIdentity {
		t.Errorf("NaN quaternion normalized to %+v, want identity", got)
	}
}

func TestSmoothingFactorFrameRateIndependent(t *testing.T) {
	// Two 120 Hz steps must equal one 60 Hz step
	one := SmoothingFactor(0.1, 60, 1.0/60)
	half := SmoothingFactor(0.1, 60, 1.0/120)
	combined := 1 - (1-half)*(1-half)
	if !near(one, 0.1) {
		t.Errorf("factor at reference rate = %v, want 0.1", one)
	}
	if !near(one, combined) {
		t.Errorf("two half steps = %v, one full step = %v", combined, one)
	}
}

func TestCrossRightHanded(t *testing.T) {
	if got := V3FCross(UnitX, UnitY); got != UnitZ {
		t.Errorf("X × Y = %+v, want Z", got)
	}
}
