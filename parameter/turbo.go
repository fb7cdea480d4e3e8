package parameter

// Turbo resource
const (
	// TurboMaxFuel is the full tank percentage
	TurboMaxFuel = 100.0

	// TurboDrainRate is the fuel percentage consumed per second while boosting (4s tank)
	TurboDrainRate = 25.0

	// TurboRechargeRate is the fuel percentage regained per second while grounded (12s refill)
	TurboRechargeRate = 100.0 / 12.0

	// TurboRocketForce is the forward boost force (N) applied at the chassis center
	TurboRocketForce = 220.0

	// TurboLowFuel is the HUD warning threshold
	TurboLowFuel = 20.0
)
