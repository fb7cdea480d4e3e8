package vehicle

import (
	"github.com/lixenwraith/pricerider/parameter"
	"github.com/lixenwraith/pricerider/vmath"
)

// Config is the chassis, suspension and control tuning
type Config struct {
	Mass           float64
	HalfExtents    vmath.Vec3F
	LinearDamping  float64
	AngularDamping float64

	// Wheel attachment points relative to the chassis center: FR, FL, RR, RL
	WheelOffsets [4]vmath.Vec3F
	WheelRadius  float64

	RayStartOffset  float64
	RestLength      float64
	Travel          float64
	Stiffness       float64
	Damping         float64
	LateralFriction float64

	EngineForce float64
	TiltTorque  float64
	RocketForce float64

	SpawnClearance float64
	RescueLift     float64
	FallFloorY     float64

	CrashPitch    float64
	CrashHoldTime float64
	CrashSpeed    float64

	MaxStepDelta float64
}

// DefaultConfig returns the tuning used by the game
func DefaultConfig() Config {
	x, y, z := parameter.WheelAnchorX, parameter.WheelAnchorY, parameter.WheelAnchorZ
	return Config{
		Mass: parameter.ChassisMass,
		HalfExtents: vmath.Vec3F{
			X: parameter.ChassisHalfLength,
			Y: parameter.ChassisHalfHeight,
			Z: parameter.ChassisHalfWidth,
		},
		LinearDamping:  parameter.ChassisLinearDamping,
		AngularDamping: parameter.ChassisAngularDamping,

		WheelOffsets: [4]vmath.Vec3F{
			{X: x, Y: y, Z: z},
			{X: x, Y: y, Z: -z},
			{X: -x, Y: y, Z: z},
			{X: -x, Y: y, Z: -z},
		},
		WheelRadius: parameter.WheelRadius,

		RayStartOffset:  parameter.SuspensionRayStartOffset,
		RestLength:      parameter.SuspensionRestLength,
		Travel:          parameter.SuspensionTravel,
		Stiffness:       parameter.SuspensionStiffness,
		Damping:         parameter.SuspensionDamping,
		LateralFriction: parameter.LateralFriction,

		EngineForce: parameter.EngineForce,
		TiltTorque:  parameter.TiltTorque,
		RocketForce: parameter.TurboRocketForce,

		SpawnClearance: parameter.SpawnClearance,
		RescueLift:     parameter.RescueLift,
		FallFloorY:     parameter.FallFloorY,

		CrashPitch:    parameter.CrashPitch,
		CrashHoldTime: parameter.CrashHoldTime,
		CrashSpeed:    parameter.CrashSpeed,

		MaxStepDelta: parameter.MaxStepDelta,
	}
}

// MaxRayDistance is the suspension probe length from the ray origin
func (c Config) MaxRayDistance() float64 {
	return c.RayStartOffset + c.RestLength + c.Travel
}
