package audio

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// SoundManager owns the speaker, the engine drone and one-shot effects
// Every method is safe to call before Initialize or after a failed init
type SoundManager struct {
	mu          sync.Mutex
	cfg         Config
	rate        beep.SampleRate
	mixer       *beep.Mixer
	master      *effects.Volume
	drone       *Drone
	initialized bool
}

// NewSoundManager creates a sound manager; nothing is played until Initialize
func NewSoundManager(cfg Config) *SoundManager {
	rate := beep.SampleRate(cfg.SampleRate)
	mixer := &beep.Mixer{}
	sm := &SoundManager{
		cfg:    cfg,
		rate:   rate,
		mixer:  mixer,
		master: newVolume(mixer, cfg.MasterVolume),
		drone:  NewDrone(rate),
	}
	return sm
}

// Initialize opens the audio device and starts the drone
// A disabled config is not an error; the manager stays silent
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}

	if err := speaker.Init(sm.rate, sm.rate.N(sm.cfg.Buffer)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	sm.mixer.Add(sm.drone)
	speaker.Play(sm.master)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and releases the device
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

// Initialized reports whether the device is open
func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Drone returns the engine drone
func (sm *SoundManager) Drone() *Drone {
	return sm.drone
}

// SetEngine updates the drone pitch and level
func (sm *SoundManager) SetEngine(hz, level float64) {
	sm.drone.SetFrequency(hz)
	sm.drone.SetLevel(level)
}

// PlayWhoosh plays the turbo ignition
func (sm *SoundManager) PlayWhoosh() {
	sm.play(CreateWhooshSound(sm.rate))
}

// PlayGameOver plays the run-ended buzz
func (sm *SoundManager) PlayGameOver() {
	sm.play(CreateGameOverSound(sm.rate))
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// SetVolume updates master volume (0.0-1.0)
func (sm *SoundManager) SetVolume(vol float64) {
	vol = max(0, min(1, vol))

	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.cfg.MasterVolume = vol

	next := newVolume(sm.mixer, vol)
	if sm.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	sm.master.Volume = next.Volume
	sm.master.Silent = next.Silent
}

// Volume returns master volume
func (sm *SoundManager) Volume() float64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.cfg.MasterVolume
}
