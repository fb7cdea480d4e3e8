package parameter

// Chassis body
const (
	// ChassisMass in kg
	ChassisMass = 15.0

	// ChassisHalfLength/Height/Width are the cuboid half extents (x, y, z)
	ChassisHalfLength = 1.5
	ChassisHalfHeight = 0.5
	ChassisHalfWidth  = 0.75

	// ChassisLinearDamping and ChassisAngularDamping are per-second damping coefficients
	ChassisLinearDamping  = 0.3
	ChassisAngularDamping = 1.5
)

// Wheels
const (
	// WheelAnchorX is the fore/aft offset of each axle from chassis center
	WheelAnchorX = 1.2
	// WheelAnchorY is the attachment height relative to chassis center (bottom face)
	WheelAnchorY = -0.5
	// WheelAnchorZ places wheels outside the chassis side faces
	WheelAnchorZ = ChassisHalfWidth + WheelThickness/2 + 0.1

	WheelRadius    = 0.4
	WheelThickness = 0.3
)

// Suspension
const (
	// SuspensionRestLength is the attachment-to-ground distance at zero spring force
	SuspensionRestLength = 0.7
	// SuspensionTravel is the extra extension beyond rest before the wheel leaves the ground
	SuspensionTravel = 0.3
	// SuspensionRayStartOffset lifts the ray origin above the attachment so that a
	// fully compressed wheel still detects the surface
	SuspensionRayStartOffset = 0.1

	// SuspensionStiffness is the spring rate per wheel (N/unit)
	SuspensionStiffness = 320.0
	// SuspensionDamping is the damper rate per wheel (N·s/unit)
	SuspensionDamping = 28.0

	// LateralFriction is the fraction of sideways contact velocity cancelled per step
	LateralFriction = 0.9
)

// Drive and control
const (
	// EngineForce is the per-wheel drive force (N), not speed dependent
	EngineForce = 55.0

	// TiltTorque is the pitch torque (N·m) applied by tilt input, grounded or airborne
	TiltTorque = 90.0
)

// Reset and recovery
const (
	// SpawnOffsetX is the spawn distance past the road start
	SpawnOffsetX = 4.0
	// SpawnClearance is the chassis height above the road surface on spawn and snap rescue
	SpawnClearance = 2.0

	// RescueLift is the vertical translation used by the lift rescue mode
	RescueLift = 3.0

	// FallFloorY is the height below which the chassis is considered lost
	FallFloorY = -30.0
)

// Crash detection
const (
	// CrashPitch is the absolute pitch (rad) beyond which the chassis counts as inverted
	CrashPitch = 2.2
	// CrashHoldTime is how long the chassis must stay inverted and slow before a crash
	CrashHoldTime = 2.5
	// CrashSpeed is the speed below which an inverted chassis is considered stuck
	CrashSpeed = 1.5
)
