package physics

import (
	"github.com/lixenwraith/pricerider/parameter"
	"github.com/lixenwraith/pricerider/vmath"
)

// BodyState tracks whether a body participates in integration
type BodyState uint8

const (
	BodyStateAwake BodyState = iota
	BodyStateSleeping
)

// Locks restricts world-axis degrees of freedom
type Locks struct {
	TranslationZ bool
	RotationX    bool
	RotationY    bool
}

// PlanarLocks keeps a body in the z=0 travel plane, rotating only about Z
var PlanarLocks = Locks{TranslationZ: true, RotationX: true, RotationY: true}

// Body is a dynamic box-shaped rigid body
// Not safe for concurrent use; owned by the world's stepping goroutine
type Body struct {
	mass       float64
	invMass    float64
	invInertia vmath.Vec3F // body-frame diagonal

	HalfExtents    vmath.Vec3F
	LinearDamping  float64
	AngularDamping float64
	Locks          Locks

	position vmath.Vec3F
	rotation vmath.Quat
	linvel   vmath.Vec3F
	angvel   vmath.Vec3F

	state     BodyState
	sleepTime float64
}

// NewBox creates an awake box body with uniform density
func NewBox(mass float64, half vmath.Vec3F) *Body {
	b := &Body{
		mass:        mass,
		HalfExtents: half,
		rotation:    vmath.QuatIdentity,
	}
	if mass > 0 {
		b.invMass = 1 / mass
		// Solid box: I = m/3 * (b² + c²) with half extents
		ix := mass / 3 * (half.Y*half.Y + half.Z*half.Z)
		iy := mass / 3 * (half.X*half.X + half.Z*half.Z)
		iz := mass / 3 * (half.X*half.X + half.Y*half.Y)
		b.invInertia = vmath.Vec3F{X: inv(ix), Y: inv(iy), Z: inv(iz)}
	}
	return b
}

func inv(v float64) float64 {
	if v == 0 {
		return 0
	}
	return 1 / v
}

// Mass returns the body mass in kg
func (b *Body) Mass() float64 { return b.mass }

// Translation returns the world position of the center of mass
func (b *Body) Translation() vmath.Vec3F { return b.position }

// SetTranslation teleports the body without waking it
func (b *Body) SetTranslation(p vmath.Vec3F) { b.position = p }

// Rotation returns the world orientation
func (b *Body) Rotation() vmath.Quat { return b.rotation }

// SetRotation replaces the orientation without waking the body
func (b *Body) SetRotation(q vmath.Quat) { b.rotation = vmath.QuatNormalize(q) }

// LinVel returns the linear velocity
func (b *Body) LinVel() vmath.Vec3F { return b.linvel }

// SetLinVel replaces the linear velocity
func (b *Body) SetLinVel(v vmath.Vec3F) {
	b.linvel = v
	b.applyLocks()
}

// AngVel returns the world-frame angular velocity
func (b *Body) AngVel() vmath.Vec3F { return b.angvel }

// SetAngVel replaces the angular velocity
func (b *Body) SetAngVel(w vmath.Vec3F) {
	b.angvel = w
	b.applyLocks()
}

// State returns the sleep state
func (b *Body) State() BodyState { return b.state }

// IsSleeping reports whether the body is skipped by integration
func (b *Body) IsSleeping() bool { return b.state == BodyStateSleeping }

// WakeUp returns a sleeping body to integration
func (b *Body) WakeUp() {
	b.state = BodyStateAwake
	b.sleepTime = 0
}

// LocalToWorld transforms a body-frame point into world space
func (b *Body) LocalToWorld(p vmath.Vec3F) vmath.Vec3F {
	return vmath.V3FAdd(b.position, vmath.QuatRotate(b.rotation, p))
}

// VectorToWorld rotates a body-frame direction into world space
func (b *Body) VectorToWorld(v vmath.Vec3F) vmath.Vec3F {
	return vmath.QuatRotate(b.rotation, v)
}

// VelocityAtPoint returns the world velocity of a world-space point attached to the body
func (b *Body) VelocityAtPoint(p vmath.Vec3F) vmath.Vec3F {
	r := vmath.V3FSub(p, b.position)
	return vmath.V3FAdd(b.linvel, vmath.V3FCross(b.angvel, r))
}

// ApplyImpulse changes momentum at the center of mass and wakes the body
func (b *Body) ApplyImpulse(j vmath.Vec3F) {
	b.linvel = vmath.V3FAdd(b.linvel, vmath.V3FScale(j, b.invMass))
	b.applyLocks()
	b.WakeUp()
}

// ApplyImpulseAtPoint applies j at world point p, producing torque r × j
func (b *Body) ApplyImpulseAtPoint(j, p vmath.Vec3F) {
	r := vmath.V3FSub(p, b.position)
	b.linvel = vmath.V3FAdd(b.linvel, vmath.V3FScale(j, b.invMass))
	b.angvel = vmath.V3FAdd(b.angvel, b.invInertiaWorld(vmath.V3FCross(r, j)))
	b.applyLocks()
	b.WakeUp()
}

// ApplyTorqueImpulse changes angular momentum and wakes the body
func (b *Body) ApplyTorqueImpulse(t vmath.Vec3F) {
	b.angvel = vmath.V3FAdd(b.angvel, b.invInertiaWorld(t))
	b.applyLocks()
	b.WakeUp()
}

// invInertiaWorld multiplies v by the world-space inverse inertia tensor
func (b *Body) invInertiaWorld(v vmath.Vec3F) vmath.Vec3F {
	local := vmath.QuatRotate(vmath.QuatConj(b.rotation), v)
	local = vmath.Vec3F{
		X: local.X * b.invInertia.X,
		Y: local.Y * b.invInertia.Y,
		Z: local.Z * b.invInertia.Z,
	}
	return vmath.QuatRotate(b.rotation, local)
}

// effectiveMassInv returns the inverse mass seen by an impulse along n at offset r
func (b *Body) effectiveMassInv(r, n vmath.Vec3F) float64 {
	rn := vmath.V3FCross(r, n)
	return b.invMass + vmath.V3FDot(vmath.V3FCross(b.invInertiaWorld(rn), r), n)
}

func (b *Body) applyLocks() {
	if b.Locks.TranslationZ {
		b.linvel.Z = 0
	}
	if b.Locks.RotationX {
		b.angvel.X = 0
	}
	if b.Locks.RotationY {
		b.angvel.Y = 0
	}
}

// integrate advances position and orientation by dt
func (b *Body) integrate(dt float64, gravity vmath.Vec3F) {
	if b.invMass == 0 || b.state == BodyStateSleeping {
		return
	}

	b.linvel = vmath.V3FAdd(b.linvel, vmath.V3FScale(gravity, dt))

	// Implicit damping, stable for any dt
	b.linvel = vmath.V3FScale(b.linvel, 1/(1+dt*b.LinearDamping))
	b.angvel = vmath.V3FScale(b.angvel, 1/(1+dt*b.AngularDamping))
	b.applyLocks()

	b.position = vmath.V3FAdd(b.position, vmath.V3FScale(b.linvel, dt))
	b.rotation = vmath.QuatIntegrate(b.rotation, b.angvel, dt)
	if b.Locks.RotationX && b.Locks.RotationY {
		b.rotation = vmath.QuatRestrictZ(b.rotation)
	}
}

// updateSleepState puts the body to sleep after a quiet period
func (b *Body) updateSleepState(dt float64) {
	if b.invMass == 0 || b.state == BodyStateSleeping {
		return
	}
	lin := parameter.SleepLinearTolerance
	ang := parameter.SleepAngularTolerance
	if vmath.V3FMagSq(b.linvel) < lin*lin && vmath.V3FMagSq(b.angvel) < ang*ang {
		b.sleepTime += dt
		if b.sleepTime >= parameter.SleepTime {
			b.state = BodyStateSleeping
			b.linvel = vmath.Vec3F{}
			b.angvel = vmath.Vec3F{}
		}
		return
	}
	b.sleepTime = 0
}

// corners returns the eight box corners in world space
func (b *Body) corners() [8]vmath.Vec3F {
	var out [8]vmath.Vec3F
	h := b.HalfExtents
	i := 0
	for _, sx := range [2]float64{-1, 1} {
		for _, sy := range [2]float64{-1, 1} {
			for _, sz := range [2]float64{-1, 1} {
				out[i] = b.LocalToWorld(vmath.Vec3F{X: sx * h.X, Y: sy * h.Y, Z: sz * h.Z})
				i++
			}
		}
	}
	return out
}
