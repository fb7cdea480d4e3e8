package input

import (
	"time"

	"github.com/lixenwraith/pricerider/parameter"
)

// Machine turns discrete key presses into per-step input
// Terminals report presses and auto-repeat but never releases, so held intents
// stay down until HoldTimeout passes without a repeat
// Not safe for concurrent use; feed it from the frame loop
type Machine struct {
	HoldTimeout time.Duration

	deadline [intentCount]time.Time
	reset    bool
	edges    []Intent
}

// NewMachine creates a machine with the default hold timeout
func NewMachine() *Machine {
	return &Machine{
		HoldTimeout: parameter.HoldTimeout,
		edges:       make([]Intent, 0, 8),
	}
}

// Press records an intent at time at
func (m *Machine) Press(i Intent, at time.Time) {
	switch {
	case i == IntentNone || i >= intentCount:
		return
	case i.IsHeld():
		m.deadline[i] = at.Add(m.HoldTimeout)
	case i == IntentReset:
		m.reset = true
	default:
		m.edges = append(m.edges, i)
	}
}

// Release ends a held intent immediately, for hosts that do report key-up
func (m *Machine) Release(i Intent) {
	if i < intentCount {
		m.deadline[i] = time.Time{}
	}
}

// Held reports whether a level-triggered intent is down at now
func (m *Machine) Held(i Intent, now time.Time) bool {
	if i >= intentCount || !i.IsHeld() {
		return false
	}
	return now.Before(m.deadline[i])
}

// Snapshot samples driving input at now and consumes a pending reset
func (m *Machine) Snapshot(now time.Time) Snapshot {
	s := Snapshot{
		Forward:   m.Held(IntentForward, now),
		Backward:  m.Held(IntentBackward, now),
		TiltLeft:  m.Held(IntentTiltLeft, now),
		TiltRight: m.Held(IntentTiltRight, now),
		Turbo:     m.Held(IntentTurbo, now),
		Reset:     m.reset,
	}
	m.reset = false
	return s
}

// TakeEdges returns pending menu and system intents in press order and clears them
func (m *Machine) TakeEdges() []Intent {
	if len(m.edges) == 0 {
		return nil
	}
	out := make([]Intent, len(m.edges))
	copy(out, m.edges)
	m.edges = m.edges[:0]
	return out
}

// Clear drops all held, pending reset and edge state
// Called on phase changes so no key carries into the next phase
func (m *Machine) Clear() {
	m.deadline = [intentCount]time.Time{}
	m.reset = false
	m.edges = m.edges[:0]
}
