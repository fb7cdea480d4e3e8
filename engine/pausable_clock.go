package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// PausableClock measures session time that stops while the simulation is suspended
type PausableClock struct {
	mu sync.RWMutex

	provider  TimeProvider
	startTime time.Time // real time of the last Reset

	isPaused        atomic.Bool
	pauseStartTime  time.Time     // real time the current pause began
	totalPausedTime time.Duration // cumulative pause since Reset
}

// NewPausableClock creates a clock that starts paused at zero
func NewPausableClock(provider TimeProvider) *PausableClock {
	if provider == nil {
		provider = NewMonotonicTimeProvider()
	}
	now := provider.Now()
	pc := &PausableClock{
		provider:       provider,
		startTime:      now,
		pauseStartTime: now,
	}
	pc.isPaused.Store(true)
	return pc
}

// Reset zeroes elapsed time, keeping the pause state
func (pc *PausableClock) Reset() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	now := pc.provider.Now()
	pc.startTime = now
	pc.totalPausedTime = 0
	if pc.isPaused.Load() {
		pc.pauseStartTime = now
	}
}

// Elapsed returns unpaused time since the last Reset
func (pc *PausableClock) Elapsed() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	end := pc.provider.Now()
	if pc.isPaused.Load() {
		// Frozen at the pause point
		end = pc.pauseStartTime
	}
	return end.Sub(pc.startTime) - pc.totalPausedTime
}

// RealTime returns wall clock time, unaffected by pause
func (pc *PausableClock) RealTime() time.Time {
	return pc.provider.Now()
}

// Pause stops elapsed time
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.isPaused.CompareAndSwap(false, true) {
		pc.pauseStartTime = pc.provider.Now()
	}
}

// Resume continues elapsed time
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.isPaused.CompareAndSwap(true, false) {
		if !pc.pauseStartTime.IsZero() {
			pc.totalPausedTime += pc.provider.Now().Sub(pc.pauseStartTime)
			pc.pauseStartTime = time.Time{}
		}
	}
}

// IsPaused returns the pause state
func (pc *PausableClock) IsPaused() bool {
	return pc.isPaused.Load()
}

// GetTotalPauseDuration returns cumulative pause time since Reset, including a pause in progress
func (pc *PausableClock) GetTotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPausedTime
	if pc.isPaused.Load() && !pc.pauseStartTime.IsZero() {
		total += pc.provider.Now().Sub(pc.pauseStartTime)
	}
	return total
}
