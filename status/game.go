package status

import "sync/atomic"

// Metric keys published by the game
const (
	KeyPhase       = "phase"
	KeyReason      = "reason"
	KeyTrack       = "track"
	KeySession     = "session"
	KeyPrice       = "price"
	KeyPortfolio   = "portfolio"
	KeySpeed       = "speed"
	KeyDistance    = "distance"
	KeyProgress    = "progress"
	KeyFuel        = "fuel"
	KeyPitch       = "pitch"
	KeySessionTime = "session_time"
	KeyTurboActive = "turbo_active"
	KeyVisible     = "visible"
	KeyGrounded    = "grounded"
	KeySteps       = "steps"
)

// GameMetrics caches the pointers the game writes every step
type GameMetrics struct {
	Phase     *AtomicString
	Reason    *AtomicString
	Track     *AtomicString
	Session   *AtomicString
	Price     *AtomicString // decimal text, exact
	Portfolio *AtomicString // decimal text, exact

	Speed       *AtomicFloat
	Distance    *AtomicFloat
	Progress    *AtomicFloat
	Fuel        *AtomicFloat
	Pitch       *AtomicFloat
	SessionTime *AtomicFloat

	TurboActive *atomic.Bool
	Visible     *atomic.Bool

	Grounded *atomic.Int64
	Steps    *atomic.Int64
}

// NewGameMetrics registers the game keys in r
func NewGameMetrics(r *Registry) *GameMetrics {
	return &GameMetrics{
		Phase:     r.Strings.Get(KeyPhase),
		Reason:    r.Strings.Get(KeyReason),
		Track:     r.Strings.Get(KeyTrack),
		Session:   r.Strings.Get(KeySession),
		Price:     r.Strings.Get(KeyPrice),
		Portfolio: r.Strings.Get(KeyPortfolio),

		Speed:       r.Floats.Get(KeySpeed),
		Distance:    r.Floats.Get(KeyDistance),
		Progress:    r.Floats.Get(KeyProgress),
		Fuel:        r.Floats.Get(KeyFuel),
		Pitch:       r.Floats.Get(KeyPitch),
		SessionTime: r.Floats.Get(KeySessionTime),

		TurboActive: r.Bools.Get(KeyTurboActive),
		Visible:     r.Bools.Get(KeyVisible),

		Grounded: r.Ints.Get(KeyGrounded),
		Steps:    r.Ints.Get(KeySteps),
	}
}
