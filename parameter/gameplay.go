package parameter

import "time"

// Portfolio
const (
	// InitialPortfolio is the starting portfolio value in quote currency
	InitialPortfolio = 10000

	// LiquidationFraction ends the run when portfolio value drops below this share of the initial value
	LiquidationFraction = 0.1

	// FinishMargin is the distance before the road end that counts as finishing
	FinishMargin = 2.0
)

// Input
const (
	// HoldTimeout releases a held key when no repeat arrives within the window
	// Terminals report presses only, autorepeat keeps the latch alive
	HoldTimeout = 180 * time.Millisecond
)
