package vehicle

import (
	"github.com/lixenwraith/pricerider/physics"
	"github.com/lixenwraith/pricerider/vmath"
)

// Chassis is the rigid body the controller drives
// The physics world owns it; the controller only holds a reference
type Chassis interface {
	Translation() vmath.Vec3F
	SetTranslation(vmath.Vec3F)
	Rotation() vmath.Quat
	SetRotation(vmath.Quat)
	LinVel() vmath.Vec3F
	SetLinVel(vmath.Vec3F)
	AngVel() vmath.Vec3F
	SetAngVel(vmath.Vec3F)
	Mass() float64

	ApplyImpulse(j vmath.Vec3F)
	ApplyImpulseAtPoint(j, p vmath.Vec3F)
	ApplyTorqueImpulse(t vmath.Vec3F)
	WakeUp()
}

// RayCaster queries static geometry; the chassis itself is never a target
type RayCaster interface {
	CastRay(origin, dir vmath.Vec3F, maxDist float64) (physics.RayHit, bool)
}

// Ground reports road surface height for rescue snapping
type Ground interface {
	HeightAt(x float64) (float64, bool)
}

// NewChassisBody creates the chassis box constrained to the travel plane
func NewChassisBody(cfg Config) *physics.Body {
	b := physics.NewBox(cfg.Mass, cfg.HalfExtents)
	b.LinearDamping = cfg.LinearDamping
	b.AngularDamping = cfg.AngularDamping
	b.Locks = physics.PlanarLocks
	return b
}
