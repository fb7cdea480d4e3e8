package parameter

// World
const (
	// Gravity is the world vertical acceleration in units/s²
	Gravity = -15.0

	// SleepLinearTolerance is the speed below which a body starts accumulating sleep time
	SleepLinearTolerance = 0.02
	// SleepAngularTolerance is the angular speed (rad/s) below which a body may sleep
	SleepAngularTolerance = 0.02
	// SleepTime is the idle duration in seconds before a body is put to sleep
	SleepTime = 1.0

	// ContactSlop is the penetration depth tolerated before positional correction
	ContactSlop = 0.005
	// ContactRestitution is the bounce factor for chassis-vs-road contacts
	ContactRestitution = 0.0
	// ContactFriction scales tangential velocity removal at chassis contacts
	ContactFriction = 0.4

	// ColliderCellSize is the x-bucket width for the static mesh broad phase
	ColliderCellSize = 4.0
)
