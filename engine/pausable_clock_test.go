package engine

import (
	"testing"
	"time"
)

func TestMockTimeProvider(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(start)

	if !mock.Now().Equal(start) {
		t.Errorf("Now() = %v, want %v", mock.Now(), start)
	}
	mock.Advance(90 * time.Minute)
	if want := start.Add(90 * time.Minute); !mock.Now().Equal(want) {
		t.Errorf("after Advance Now() = %v, want %v", mock.Now(), want)
	}
	mock.SetTime(start)
	if !mock.Now().Equal(start) {
		t.Errorf("after SetTime Now() = %v, want %v", mock.Now(), start)
	}
}

func TestPausableClockStartsPaused(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	pc := NewPausableClock(mock)

	if !pc.IsPaused() {
		t.Fatal("new clock should start paused")
	}
	mock.Advance(time.Second)
	if pc.Elapsed() != 0 {
		t.Errorf("paused clock advanced: %v", pc.Elapsed())
	}
}

func TestPausableClockExcludesPauses(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	pc := NewPausableClock(mock)
	pc.Resume()

	mock.Advance(5 * time.Second)
	pc.Pause()
	mock.Advance(3 * time.Second)

	if got := pc.Elapsed(); got != 5*time.Second {
		t.Errorf("Elapsed while paused = %v, want 5s", got)
	}

	pc.Resume()
	mock.Advance(2 * time.Second)
	if got := pc.Elapsed(); got != 7*time.Second {
		t.Errorf("Elapsed after resume = %v, want 7s", got)
	}
	t.Logf("✓ Elapsed %v with %v paused", pc.Elapsed(), pc.GetTotalPauseDuration())

	pc.Reset()
	if got := pc.Elapsed(); got != 0 {
		t.Errorf("Elapsed after Reset = %v, want 0", got)
	}
	if pc.IsPaused() {
		t.Error("Reset should keep the running state")
	}
}

func TestPausableClockIdempotentPause(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	pc := NewPausableClock(mock)
	pc.Resume()
	mock.Advance(time.Second)

	pc.Pause()
	mock.Advance(time.Second)
	pc.Pause()
	mock.Advance(time.Second)
	pc.Resume()
	pc.Resume()

	if got := pc.Elapsed(); got != time.Second {
		t.Errorf("Elapsed = %v, want 1s", got)
	}
}
