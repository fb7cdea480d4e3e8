package vehicle

import (
	"math"

	"github.com/lixenwraith/pricerider/input"
	"github.com/lixenwraith/pricerider/turbo"
	"github.com/lixenwraith/pricerider/vmath"
)

// RescueMode selects where a rescue places the chassis
type RescueMode uint8

const (
	// RescueSnap places the chassis above the road surface at its current x
	RescueSnap RescueMode = iota
	// RescueLift moves the chassis straight up from where it is
	RescueLift
)

// Wheel is per-wheel suspension and visual state; wheels have no physical body
type Wheel struct {
	Offset   vmath.Vec3F
	Grounded bool
	Length   float64 // attachment to contact, or full travel when airborne
	Contact  vmath.Vec3F
	Normal   vmath.Vec3F
	Center   vmath.Vec3F // visual wheel center in world space
	Spin     float64     // visual rotation angle in radians
}

// StepResult reports what happened during one controller step
type StepResult struct {
	Skipped   bool
	Rescued   bool
	Recovered bool // fell off the world and was returned to spawn
	Boost     float64
	Grounded  int
	Crashed   bool
}

// Controller applies raycast suspension, drive, tilt and turbo to one chassis
// Call Step once per simulation step, before the physics world advances
type Controller struct {
	cfg    Config
	rays   RayCaster
	ground Ground
	meter  *turbo.Meter

	chassis Chassis
	spawn   vmath.Vec3F

	Wheels     [4]Wheel
	RescueMode RescueMode

	grounded  int
	crashTime float64
}

// NewController creates a controller with no chassis attached
func NewController(cfg Config, rays RayCaster, meter *turbo.Meter) *Controller {
	c := &Controller{cfg: cfg, rays: rays, meter: meter}
	for i := range c.Wheels {
		c.Wheels[i].Offset = cfg.WheelOffsets[i]
		c.Wheels[i].Length = cfg.RestLength + cfg.Travel
	}
	return c
}

// Config returns the active tuning
func (c *Controller) Config() Config { return c.cfg }

// Attach sets the chassis to drive; nil detaches
func (c *Controller) Attach(ch Chassis) {
	c.chassis = ch
	c.crashTime = 0
}

// Chassis returns the attached chassis, or nil
func (c *Controller) Chassis() Chassis { return c.chassis }

// SetGround sets the surface used for rescue snapping
func (c *Controller) SetGround(g Ground) { c.ground = g }

// SetSpawn sets the pose used by ResetToSpawn and fall recovery
func (c *Controller) SetSpawn(p vmath.Vec3F) { c.spawn = p }

// Spawn returns the current spawn position
func (c *Controller) Spawn() vmath.Vec3F { return c.spawn }

// Step runs one controller update
// dt is clamped to MaxStepDelta before any impulse scaling
func (c *Controller) Step(dt float64, in input.Snapshot) StepResult {
	if c.chassis == nil || dt <= 0 || !vmath.IsFinite(dt) {
		return StepResult{Skipped: true}
	}
	if dt > c.cfg.MaxStepDelta {
		dt = c.cfg.MaxStepDelta
	}

	// Rescue supersedes every other impulse this step
	if in.Reset {
		c.Rescue()
		return StepResult{Rescued: true}
	}

	pos := c.chassis.Translation()
	if !vmath.IsFinite(pos.Y) || pos.Y < c.cfg.FallFloorY {
		c.ResetToSpawn()
		return StepResult{Recovered: true}
	}

	c.stepWheels(dt, in.Throttle())

	// Air control, grounded or not; positive about Z is nose-up
	if tilt := in.Tilt(); tilt != 0 {
		c.chassis.WakeUp()
		c.chassis.ApplyTorqueImpulse(vmath.Vec3F{Z: tilt * c.cfg.TiltTorque * dt})
	}

	res := StepResult{Grounded: c.grounded}
	if c.meter != nil {
		res.Boost = c.meter.Update(dt, in.Turbo, c.grounded)
		if res.Boost > 0 {
			forward := vmath.QuatRotate(c.chassis.Rotation(), vmath.UnitX)
			c.chassis.ApplyImpulse(vmath.V3FScale(forward, c.cfg.RocketForce*res.Boost))
		}
	}

	res.Crashed = c.updateCrash(dt)
	return res
}

// stepWheels casts each suspension ray and applies spring, friction and drive impulses
func (c *Controller) stepWheels(dt, throttle float64) {
	ch := c.chassis
	pos := ch.Translation()
	rot := ch.Rotation()
	linvel := ch.LinVel()
	angvel := ch.AngVel()

	up := vmath.QuatRotate(rot, vmath.UnitY)
	down := vmath.V3FNeg(up)
	forward := vmath.QuatRotate(rot, vmath.UnitX)
	side := vmath.QuatRotate(rot, vmath.UnitZ)

	maxLen := c.cfg.RestLength + c.cfg.Travel
	massShare := ch.Mass() / float64(len(c.Wheels))
	c.grounded = 0

	for i := range c.Wheels {
		w := &c.Wheels[i]
		attach := vmath.V3FAdd(pos, vmath.QuatRotate(rot, w.Offset))
		origin := vmath.V3FAdd(attach, vmath.V3FScale(up, c.cfg.RayStartOffset))

		hit, ok := c.rays.CastRay(origin, down, c.cfg.MaxRayDistance())
		if !ok {
			w.Grounded = false
			w.Length = maxLen
			w.Center = vmath.V3FAdd(attach, vmath.V3FScale(down, math.Max(0, maxLen-c.cfg.WheelRadius)))
			continue
		}

		w.Grounded = true
		w.Contact = hit.Point
		w.Normal = hit.Normal
		w.Length = vmath.Clamp(hit.Distance-c.cfg.RayStartOffset, 0, maxLen)
		w.Center = vmath.V3FAdd(attach, vmath.V3FScale(down, math.Max(0, w.Length-c.cfg.WheelRadius)))
		c.grounded++

		// Contact velocity at the attachment
		vel := vmath.V3FAdd(linvel, vmath.V3FCross(angvel, vmath.V3FSub(attach, pos)))

		// Spring minus damper, never pulling toward the ground
		compression := c.cfg.RestLength - w.Length
		normalSpeed := vmath.V3FDot(vel, hit.Normal)
		force := math.Max(0, compression*c.cfg.Stiffness-normalSpeed*c.cfg.Damping)
		if force > 0 {
			ch.ApplyImpulseAtPoint(vmath.V3FScale(hit.Normal, force*dt), attach)
		}

		// Cancel sideways slip along the chassis lateral axis
		if lateral := vmath.V3FDot(vel, side); lateral != 0 {
			ch.ApplyImpulseAtPoint(vmath.V3FScale(side, -lateral*c.cfg.LateralFriction*massShare), attach)
		}

		if throttle != 0 {
			ch.ApplyImpulseAtPoint(vmath.V3FScale(forward, throttle*c.cfg.EngineForce*dt), attach)
		}

		w.Spin -= vmath.V3FDot(linvel, forward) * dt / c.cfg.WheelRadius
	}

	for i := range c.Wheels {
		c.Wheels[i].Spin = vmath.WrapAngle(c.Wheels[i].Spin)
	}
}

// updateCrash accumulates time spent inverted and nearly stationary
func (c *Controller) updateCrash(dt float64) bool {
	pitch := math.Abs(c.Pitch())
	speed := vmath.V3FMag(c.chassis.LinVel())
	if pitch > c.cfg.CrashPitch && speed < c.cfg.CrashSpeed {
		c.crashTime += dt
	} else {
		c.crashTime = 0
	}
	return c.crashTime >= c.cfg.CrashHoldTime
}

// Rescue rights the chassis in place
// Velocities are zeroed first, then orientation, then position, then the body is woken
func (c *Controller) Rescue() {
	if c.chassis == nil {
		return
	}
	pos := c.chassis.Translation()
	target := vmath.Vec3F{X: pos.X, Y: pos.Y + c.cfg.RescueLift}

	if c.RescueMode == RescueSnap && c.ground != nil {
		if h, ok := c.ground.HeightAt(pos.X); ok {
			target.Y = h + c.cfg.SpawnClearance
		}
	}
	if !vmath.V3FIsFinite(target) {
		target = c.spawn
	}
	c.place(target)
}

// ResetToSpawn returns the chassis to the spawn pose, upright and at rest
func (c *Controller) ResetToSpawn() {
	if c.chassis == nil {
		return
	}
	c.place(c.spawn)
}

func (c *Controller) place(p vmath.Vec3F) {
	c.chassis.SetLinVel(vmath.Vec3F{})
	c.chassis.SetAngVel(vmath.Vec3F{})
	c.chassis.SetRotation(vmath.QuatIdentity)
	c.chassis.SetTranslation(p)
	c.chassis.WakeUp()

	c.crashTime = 0
	c.grounded = 0
	maxLen := c.cfg.RestLength + c.cfg.Travel
	for i := range c.Wheels {
		w := &c.Wheels[i]
		w.Grounded = false
		w.Length = maxLen
		w.Center = vmath.V3FAdd(p, w.Offset)
		w.Center.Y -= math.Max(0, maxLen-c.cfg.WheelRadius)
	}
}

// Speed returns forward speed along world X
func (c *Controller) Speed() float64 {
	if c.chassis == nil {
		return 0
	}
	return c.chassis.LinVel().X
}

// Pitch returns the chassis rotation about Z in radians
func (c *Controller) Pitch() float64 {
	if c.chassis == nil {
		return 0
	}
	return vmath.QuatPitch(c.chassis.Rotation())
}

// GroundedCount returns how many wheels touched ground in the last step
func (c *Controller) GroundedCount() int { return c.grounded }

// CrashTime returns how long the chassis has been inverted and stalled
func (c *Controller) CrashTime() float64 { return c.crashTime }
