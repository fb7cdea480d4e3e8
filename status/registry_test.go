package status

import (
	"sync"
	"testing"
)

func TestAtomicFloatConcurrentAdd(t *testing.T) {
	var f AtomicFloat
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				f.Add(0.5)
			}
		}()
	}
	wg.Wait()
	if f.Get() != 4000 {
		t.Errorf("sum = %v, want 4000", f.Get())
	}
}

func TestAtomicStringTruncates(t *testing.T) {
	var s AtomicString
	if s.Load() != "" {
		t.Error("zero value not empty")
	}
	long := "0123456789012345678901234567890123456789-overflow"
	s.Store(long)
	if got := s.Load(); got != long[:MaxStringLen] {
		t.Errorf("Load = %q", got)
	}

	uuid := "3f2b8c1e-7d4a-4f5e-9b6c-1a2d3e4f5a6b"
	s.Store(uuid)
	if s.Load() != uuid {
		t.Errorf("session id truncated: %q", s.Load())
	}
}

func TestMetricMapReturnsCachedPointer(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()
	a := m.Get("speed")
	a.Set(3)
	if b := m.Get("speed"); b != a || b.Get() != 3 {
		t.Error("second Get returned a different metric")
	}
	if !m.Has("speed") || m.Has("fuel") {
		t.Error("Has mismatch")
	}
}

func TestSnapshot(t *testing.T) {
	r := NewRegistry()
	g := NewGameMetrics(r)
	g.Phase.Store("PLAYING")
	g.Speed.Set(12.5)
	g.TurboActive.Store(true)
	g.Grounded.Store(4)

	snap := r.Snapshot()
	if snap[KeyPhase] != "PLAYING" {
		t.Errorf("phase = %v", snap[KeyPhase])
	}
	if snap[KeySpeed] != 12.5 {
		t.Errorf("speed = %v", snap[KeySpeed])
	}
	if snap[KeyTurboActive] != true {
		t.Errorf("turbo_active = %v", snap[KeyTurboActive])
	}
	if snap[KeyGrounded] != int64(4) {
		t.Errorf("grounded = %v", snap[KeyGrounded])
	}
	if len(snap) != r.TotalCount() {
		t.Errorf("snapshot has %d keys, registry %d", len(snap), r.TotalCount())
	}
}
