package parameter

import "time"

// Game Loop & Engine Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxStepDelta caps the simulation step in seconds (20 FPS equivalent)
	// Larger gaps (tab switch, terminal suspend) are truncated before impulse scaling
	MaxStepDelta = 1.0 / 20.0

	// TelemetryPushInterval is the websocket snapshot cadence
	TelemetryPushInterval = 100 * time.Millisecond
)
