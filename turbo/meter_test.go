package turbo

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestMeterStartsFull(t *testing.T) {
	m := NewMeter()
	if m.Fuel() != 100 || m.Active() {
		t.Errorf("new meter fuel=%v active=%v, want 100 false", m.Fuel(), m.Active())
	}
}

func TestBoostDrainsAtRate(t *testing.T) {
	m := NewMeter()

	// 60 steps of 1/60 s = 1 s of boost
	total := 0.0
	for i := 0; i < 60; i++ {
		total += m.Update(1.0/60, true, 4)
	}
	if math.Abs(m.Fuel()-75) > 1e-6 {
		t.Errorf("fuel after 1s boost = %v, want 75", m.Fuel())
	}
	if math.Abs(total-1) > 1e-9 {
		t.Errorf("boost duration = %v, want 1", total)
	}
	if !m.Active() || m.Mode() != ModeBoosting {
		t.Error("meter not active while boosting")
	}
}

func TestFullTankLastsFourSeconds(t *testing.T) {
	m := NewMeter()
	total := 0.0
	for i := 0; i < 300; i++ {
		total += m.Update(1.0/60, true, 0)
	}
	if math.Abs(total-4) > 1e-6 {
		t.Errorf("total boost = %v, want 4", total)
	}
	if m.Fuel() != 0 {
		t.Errorf("fuel = %v, want 0", m.Fuel())
	}
	t.Logf("✓ full tank boosted %.4fs", total)
}

func TestSubStepDepletionDoesNotOvershoot(t *testing.T) {
	m := NewMeter()
	m.setFuel(1) // 0.04 s of boost left

	got := m.Update(0.05, true, 4)
	if math.Abs(got-0.04) > eps {
		t.Errorf("boost duration = %v, want 0.04", got)
	}
	if m.Fuel() != 0 {
		t.Errorf("fuel = %v, want 0", m.Fuel())
	}

	// Empty tank: held does not boost, grounded recharges
	got = m.Update(0.05, true, 4)
	if got != 0 || m.Active() {
		t.Errorf("empty tank boosted %v active=%v", got, m.Active())
	}
	if math.Abs(m.Fuel()-0.05*100/12) > eps {
		t.Errorf("fuel = %v, want recharge from empty", m.Fuel())
	}
}

func TestRechargeRequiresGround(t *testing.T) {
	tests := []struct {
		name     string
		held     bool
		grounded int
		want     float64
	}{
		{"grounded idle", false, 4, 50 + 100.0/12},
		{"one wheel", false, 1, 50 + 100.0/12},
		{"airborne", false, 0, 50},
		{"boosting", true, 4, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMeter()
			m.setFuel(50)
			m.Update(1, tt.held, tt.grounded)
			if math.Abs(m.Fuel()-tt.want) > eps {
				t.Errorf("fuel = %v, want %v", m.Fuel(), tt.want)
			}
		})
	}
}

func TestRechargeFullInTwelveSeconds(t *testing.T) {
	m := NewMeter()
	m.setFuel(0)
	for i := 0; i < 12*60; i++ {
		m.Update(1.0/60, false, 4)
	}
	if math.Abs(m.Fuel()-100) > 1e-6 {
		t.Errorf("fuel after 12s = %v, want 100", m.Fuel())
	}
}

func TestFuelStaysInBounds(t *testing.T) {
	m := NewMeter()
	pattern := []bool{true, true, false, true, false, false, true}
	for i := 0; i < 5000; i++ {
		m.Update(0.05, pattern[i%len(pattern)], i%3)
		if m.Fuel() < 0 || m.Fuel() > 100 {
			t.Fatalf("step %d: fuel %v out of bounds", i, m.Fuel())
		}
	}
}

func TestResetRefills(t *testing.T) {
	m := NewMeter()
	m.Update(2, true, 0)
	m.Reset()
	if m.Fuel() != 100 || m.Active() {
		t.Errorf("after Reset fuel=%v active=%v", m.Fuel(), m.Active())
	}
}

func TestBadDeltaIsNoOp(t *testing.T) {
	m := NewMeter()
	for _, dt := range []float64{0, -1, math.NaN()} {
		if got := m.Update(dt, true, 4); got != 0 {
			t.Errorf("Update(%v) = %v, want 0", dt, got)
		}
	}
	if m.Fuel() != 100 {
		t.Errorf("fuel changed to %v", m.Fuel())
	}
}
