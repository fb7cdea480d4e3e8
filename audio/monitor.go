package audio

import (
	"time"

	"github.com/lixenwraith/pricerider/parameter"
	"github.com/lixenwraith/pricerider/status"
)

// Player is the sound output driven by the monitor
type Player interface {
	SetEngine(hz, level float64)
	PlayWhoosh()
	PlayGameOver()
}

// Drone levels
const (
	droneGrounded = 0.8
	droneAirborne = 0.45
)

// Monitor turns published game state into sounds
// It reads only the status registry, so it never locks the game
type Monitor struct {
	metrics *status.GameMetrics
	player  Player

	lastPhase string
	lastTurbo bool
}

// NewMonitor binds player to the game keys of reg
func NewMonitor(reg *status.Registry, player Player) *Monitor {
	return &Monitor{
		metrics: status.NewGameMetrics(reg),
		player:  player,
	}
}

// Update samples the registry once and emits sound changes
func (m *Monitor) Update() {
	phase := m.metrics.Phase.Load()
	running := phase == "PLAYING" && m.metrics.Visible.Load()
	turbo := m.metrics.TurboActive.Load()

	if running {
		level := droneAirborne
		if m.metrics.Grounded.Load() > 0 {
			level = droneGrounded
		}
		m.player.SetEngine(EngineHz(m.metrics.Speed.Get()), level)
		if turbo && !m.lastTurbo {
			m.player.PlayWhoosh()
		}
	} else {
		m.player.SetEngine(parameter.EngineIdleHz, 0)
	}

	if phase == "GAME_OVER" && m.lastPhase != "GAME_OVER" && m.lastPhase != "" {
		m.player.PlayGameOver()
	}

	m.lastPhase = phase
	m.lastTurbo = turbo && running
}

// Run polls the registry every interval until stop is closed
func (m *Monitor) Run(stop <-chan struct{}, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			m.player.SetEngine(parameter.EngineIdleHz, 0)
			return
		case <-ticker.C:
			m.Update()
		}
	}
}
