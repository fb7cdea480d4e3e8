package input

// Intent is a semantic player action, independent of the key that produced it
type Intent uint8

const (
	IntentNone Intent = iota

	// Driving intents, held while the key is down
	IntentForward
	IntentBackward
	IntentTiltLeft
	IntentTiltRight
	IntentTurbo

	// Driving intent, edge-triggered
	IntentReset

	// Menu and system intents, edge-triggered
	IntentPause
	IntentConfirm
	IntentBack
	IntentUp
	IntentDown
	IntentQuit

	intentCount
)

var intentNames = [intentCount]string{
	IntentNone:      "none",
	IntentForward:   "forward",
	IntentBackward:  "backward",
	IntentTiltLeft:  "tilt_left",
	IntentTiltRight: "tilt_right",
	IntentTurbo:     "turbo",
	IntentReset:     "reset",
	IntentPause:     "pause",
	IntentConfirm:   "confirm",
	IntentBack:      "back",
	IntentUp:        "up",
	IntentDown:      "down",
	IntentQuit:      "quit",
}

// String returns the canonical action name used in key configuration
func (i Intent) String() string {
	if i < intentCount {
		return intentNames[i]
	}
	return "unknown"
}

// IsHeld reports whether the intent is level-triggered
func (i Intent) IsHeld() bool {
	switch i {
	case IntentForward, IntentBackward, IntentTiltLeft, IntentTiltRight, IntentTurbo:
		return true
	}
	return false
}

// IntentByName resolves a canonical action name
func IntentByName(name string) (Intent, bool) {
	for i, n := range intentNames {
		if n == name {
			return Intent(i), true
		}
	}
	return IntentNone, false
}

// Snapshot is the driving input sampled once per simulation step
type Snapshot struct {
	Forward   bool
	Backward  bool
	TiltLeft  bool
	TiltRight bool
	Turbo     bool
	Reset     bool
}

// Throttle returns +1 forward, -1 backward, 0 for neither or both
func (s Snapshot) Throttle() float64 {
	switch {
	case s.Forward && !s.Backward:
		return 1
	case s.Backward && !s.Forward:
		return -1
	}
	return 0
}

// Tilt returns +1 for nose-up (left), -1 for nose-down (right), 0 otherwise
func (s Snapshot) Tilt() float64 {
	switch {
	case s.TiltLeft && !s.TiltRight:
		return 1
	case s.TiltRight && !s.TiltLeft:
		return -1
	}
	return 0
}
