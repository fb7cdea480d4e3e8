package engine

import "errors"

var (
	// ErrInvalidTransition is returned when an action is not allowed from the current phase
	ErrInvalidTransition = errors.New("engine: invalid phase transition")
	// ErrUnknownTrack is returned when a track id is not in the catalog
	ErrUnknownTrack = errors.New("engine: unknown track")
)

// GamePhase is the top-level game mode; exactly one is active
type GamePhase uint8

const (
	PhaseMenu GamePhase = iota
	PhasePlaying
	PhasePaused
	PhaseGameOver
)

// String returns the phase name as shown to the player
func (p GamePhase) String() string {
	switch p {
	case PhaseMenu:
		return "MENU"
	case PhasePlaying:
		return "PLAYING"
	case PhasePaused:
		return "PAUSED"
	case PhaseGameOver:
		return "GAME_OVER"
	}
	return "UNKNOWN"
}

// GameOverReason explains why a run ended; informational only
type GameOverReason uint8

const (
	ReasonNone GameOverReason = iota
	ReasonCrashed
	ReasonLiquidated
	ReasonFinished
)

// String returns the reason name
func (r GameOverReason) String() string {
	switch r {
	case ReasonCrashed:
		return "CRASHED"
	case ReasonLiquidated:
		return "LIQUIDATED"
	case ReasonFinished:
		return "FINISHED"
	}
	return ""
}

var validTransitions = map[GamePhase][]GamePhase{
	PhaseMenu:     {PhasePlaying, PhaseGameOver},
	PhasePlaying:  {PhasePaused, PhaseMenu, PhaseGameOver},
	PhasePaused:   {PhasePlaying, PhaseMenu, PhaseGameOver},
	PhaseGameOver: {PhaseMenu, PhasePlaying},
}

// CanTransition reports whether from → to is a valid phase transition
func CanTransition(from, to GamePhase) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
