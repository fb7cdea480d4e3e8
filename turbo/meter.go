package turbo

import (
	"github.com/lixenwraith/pricerider/parameter"
	"github.com/lixenwraith/pricerider/vmath"
)

// Mode is the meter's per-step mode
type Mode uint8

const (
	ModeRecharging Mode = iota
	ModeBoosting
)

// String returns the mode name
func (m Mode) String() string {
	if m == ModeBoosting {
		return "BOOSTING"
	}
	return "RECHARGING"
}

// Meter is the finite turbo fuel resource
// Fuel is a percentage kept in [0, MaxFuel]
type Meter struct {
	MaxFuel      float64
	DrainRate    float64 // %/s while boosting
	RechargeRate float64 // %/s while grounded and not boosting

	fuel   float64
	active bool
}

// NewMeter returns a full meter using the default rates
func NewMeter() *Meter {
	return &Meter{
		MaxFuel:      parameter.TurboMaxFuel,
		DrainRate:    parameter.TurboDrainRate,
		RechargeRate: parameter.TurboRechargeRate,
		fuel:         parameter.TurboMaxFuel,
	}
}

// Fuel returns the current fuel percentage
func (m *Meter) Fuel() float64 { return m.fuel }

// Active reports whether the last update was boosting
func (m *Meter) Active() bool { return m.active }

// Mode returns the mode of the last update
func (m *Meter) Mode() Mode {
	if m.active {
		return ModeBoosting
	}
	return ModeRecharging
}

// Reset refills the tank and clears boosting
func (m *Meter) Reset() {
	m.setFuel(m.MaxFuel)
	m.active = false
}

// Update advances the meter by dt and returns how long the boost lasted within the step
// Boosting needs the control held and fuel left; when the tank empties mid-step
// only the remaining fuel's worth of time is returned
// Recharge happens only when not boosting and at least one wheel is grounded
func (m *Meter) Update(dt float64, held bool, grounded int) float64 {
	if dt <= 0 || !vmath.IsFinite(dt) {
		m.active = false
		return 0
	}

	if held && m.fuel > 0 {
		m.active = true
		if m.DrainRate <= 0 {
			return dt
		}
		need := m.DrainRate * dt
		if need <= m.fuel {
			m.setFuel(m.fuel - need)
			return dt
		}
		boost := m.fuel / m.DrainRate
		m.setFuel(0)
		return boost
	}

	m.active = false
	if m.fuel < m.MaxFuel && grounded > 0 {
		m.setFuel(m.fuel + m.RechargeRate*dt)
	}
	return 0
}

func (m *Meter) setFuel(f float64) {
	m.fuel = vmath.Clamp(f, 0, m.MaxFuel)
}
