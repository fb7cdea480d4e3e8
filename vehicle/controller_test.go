package vehicle

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/lixenwraith/pricerider/input"
	"github.com/lixenwraith/pricerider/parameter"
	"github.com/lixenwraith/pricerider/physics"
	"github.com/lixenwraith/pricerider/road"
	"github.com/lixenwraith/pricerider/track"
	"github.com/lixenwraith/pricerider/turbo"
	"github.com/lixenwraith/pricerider/vmath"
)

// fakeChassis records impulses without integrating
type fakeChassis struct {
	pos, linvel, angvel vmath.Vec3F
	rot                 vmath.Quat
	mass                float64

	impulses []vmath.Vec3F
	torques  []vmath.Vec3F
	woken    int
	calls    []string
}

func newFakeChassis(pos vmath.Vec3F) *fakeChassis {
	return &fakeChassis{pos: pos, rot: vmath.QuatIdentity, mass: parameter.ChassisMass}
}

func (f *fakeChassis) Translation() vmath.Vec3F { return f.pos }
func (f *fakeChassis) SetTranslation(p vmath.Vec3F) {
	f.pos = p
	f.calls = append(f.calls, "translation")
}
func (f *fakeChassis) Rotation() vmath.Quat { return f.rot }
func (f *fakeChassis) SetRotation(q vmath.Quat) {
	f.rot = q
	f.calls = append(f.calls, "rotation")
}
func (f *fakeChassis) LinVel() vmath.Vec3F { return f.linvel }
func (f *fakeChassis) SetLinVel(v vmath.Vec3F) {
	f.linvel = v
	f.calls = append(f.calls, "linvel")
}
func (f *fakeChassis) AngVel() vmath.Vec3F { return f.angvel }
func (f *fakeChassis) SetAngVel(w vmath.Vec3F) {
	f.angvel = w
	f.calls = append(f.calls, "angvel")
}
func (f *fakeChassis) Mass() float64 { return f.mass }
func (f *fakeChassis) ApplyImpulse(j vmath.Vec3F) {
	f.impulses = append(f.impulses, j)
}
func (f *fakeChassis) ApplyImpulseAtPoint(j, p vmath.Vec3F) {
	f.impulses = append(f.impulses, j)
}
func (f *fakeChassis) ApplyTorqueImpulse(t vmath.Vec3F) {
	f.torques = append(f.torques, t)
}
func (f *fakeChassis) WakeUp() {
	f.woken++
	f.calls = append(f.calls, "wake")
}

func (f *fakeChassis) totalImpulse() vmath.Vec3F {
	var sum vmath.Vec3F
	for _, j := range f.impulses {
		sum = vmath.V3FAdd(sum, j)
	}
	return sum
}

// planeRays is flat ground at height y
type planeRays struct{ y float64 }

func (p planeRays) CastRay(origin, dir vmath.Vec3F, maxDist float64) (physics.RayHit, bool) {
	if dir.Y >= 0 {
		return physics.RayHit{}, false
	}
	d := (p.y - origin.Y) / dir.Y
	if d < 0 || d > maxDist {
		return physics.RayHit{}, false
	}
	return physics.RayHit{
		Distance: d,
		Point:    vmath.V3FAdd(origin, vmath.V3FScale(dir, d)),
		Normal:   vmath.UnitY,
	}, true
}

type flatGround struct{ y float64 }

func (g flatGround) HeightAt(float64) (float64, bool) { return g.y, true }

func TestStepWithoutChassisIsSkipped(t *testing.T) {
	c := NewController(DefaultConfig(), planeRays{}, turbo.NewMeter())
	res := c.Step(1.0/60, input.Snapshot{Forward: true, Reset: true})
	if !res.Skipped {
		t.Error("step without chassis not skipped")
	}
}

func TestSpringPushesUpWhenCompressed(t *testing.T) {
	cfg := DefaultConfig()
	// Attachment at 0.4 above ground: compressed by 0.3
	ch := newFakeChassis(vmath.Vec3F{Y: 0.4 - cfg.WheelOffsets[0].Y})
	c := NewController(cfg, planeRays{}, nil)
	c.Attach(ch)

	dt := 1.0 / 60
	res := c.Step(dt, input.Snapshot{})
	if res.Grounded != 4 {
		t.Fatalf("grounded = %d, want 4", res.Grounded)
	}

	want := 4 * 0.3 * cfg.Stiffness * dt
	if got := ch.totalImpulse().Y; math.Abs(got-want) > 1e-9 {
		t.Errorf("total spring impulse = %v, want %v", got, want)
	}
	for i, w := range c.Wheels {
		if math.Abs(w.Length-0.4) > 1e-9 {
			t.Errorf("wheel %d length = %v, want 0.4", i, w.Length)
		}
	}
}

func TestDamperNeverPulls(t *testing.T) {
	cfg := DefaultConfig()
	// Barely compressed and moving up fast: damper exceeds spring
	ch := newFakeChassis(vmath.Vec3F{Y: cfg.RestLength - 0.01 - cfg.WheelOffsets[0].Y})
	ch.linvel = vmath.Vec3F{Y: 5}
	c := NewController(cfg, planeRays{}, nil)
	c.Attach(ch)

	c.Step(1.0/60, input.Snapshot{})
	if got := ch.totalImpulse().Y; got != 0 {
		t.Errorf("suspension impulse = %v, want 0 (no pull toward ground)", got)
	}
}

func TestAirborneAppliesNothing(t *testing.T) {
	ch := newFakeChassis(vmath.Vec3F{Y: 10})
	c := NewController(DefaultConfig(), planeRays{}, nil)
	c.Attach(ch)

	res := c.Step(1.0/60, input.Snapshot{Forward: true})
	if res.Grounded != 0 || len(ch.impulses) != 0 {
		t.Errorf("airborne: grounded=%d impulses=%d", res.Grounded, len(ch.impulses))
	}
	for i, w := range c.Wheels {
		if w.Grounded || w.Length != DefaultConfig().RestLength+DefaultConfig().Travel {
			t.Errorf("wheel %d not at full travel: %+v", i, w)
		}
	}
}

func TestDriveImpulse(t *testing.T) {
	cfg := DefaultConfig()
	dt := 1.0 / 60

	tests := []struct {
		name string
		in   input.Snapshot
		want float64
	}{
		{"forward", input.Snapshot{Forward: true}, 4 * cfg.EngineForce * dt},
		{"backward", input.Snapshot{Backward: true}, -4 * cfg.EngineForce * dt},
		{"both", input.Snapshot{Forward: true, Backward: true}, 0},
		{"none", input.Snapshot{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := newFakeChassis(vmath.Vec3F{Y: 0.5 - cfg.WheelOffsets[0].Y})
			c := NewController(cfg, planeRays{}, nil)
			c.Attach(ch)
			c.Step(dt, tt.in)
			if got := ch.totalImpulse().X; math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("drive impulse = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDeltaIsClamped(t *testing.T) {
	cfg := DefaultConfig()
	ch := newFakeChassis(vmath.Vec3F{Y: 0.5 - cfg.WheelOffsets[0].Y})
	c := NewController(cfg, planeRays{}, nil)
	c.Attach(ch)

	// A one-second stall must act like a 20 fps step
	c.Step(1.0, input.Snapshot{Forward: true})
	want := 4 * cfg.EngineForce * cfg.MaxStepDelta
	if got := ch.totalImpulse().X; math.Abs(got-want) > 1e-9 {
		t.Errorf("drive impulse = %v, want %v", got, want)
	}
}

func TestTiltTorque(t *testing.T) {
	cfg := DefaultConfig()
	dt := 1.0 / 60

	for _, tt := range []struct {
		name string
		in   input.Snapshot
		sign float64
	}{
		{"left noses up", input.Snapshot{TiltLeft: true}, 1},
		{"right noses down", input.Snapshot{TiltRight: true}, -1},
	} {
		t.Run(tt.name, func(t *testing.T) {
			ch := newFakeChassis(vmath.Vec3F{Y: 50}) // airborne
			c := NewController(cfg, planeRays{}, nil)
			c.Attach(ch)
			c.Step(dt, tt.in)
			if len(ch.torques) != 1 {
				t.Fatalf("torques = %d, want 1", len(ch.torques))
			}
			if got := ch.torques[0].Z; math.Abs(got-tt.sign*cfg.TiltTorque*dt) > 1e-12 {
				t.Errorf("torque = %v, want %v", got, tt.sign*cfg.TiltTorque*dt)
			}
		})
	}
}

func TestTurboImpulseUsesBoostDuration(t *testing.T) {
	cfg := DefaultConfig()
	meter := turbo.NewMeter()
	ch := newFakeChassis(vmath.Vec3F{Y: 50})
	c := NewController(cfg, planeRays{}, meter)
	c.Attach(ch)

	dt := 1.0 / 60
	res := c.Step(dt, input.Snapshot{Turbo: true})
	if math.Abs(res.Boost-dt) > 1e-12 {
		t.Fatalf("boost = %v, want %v", res.Boost, dt)
	}
	if got := ch.totalImpulse().X; math.Abs(got-cfg.RocketForce*dt) > 1e-9 {
		t.Errorf("rocket impulse = %v, want %v", got, cfg.RocketForce*dt)
	}
	if !meter.Active() {
		t.Error("meter not active")
	}
}

func TestResetSupersedesDrive(t *testing.T) {
	cfg := DefaultConfig()
	ch := newFakeChassis(vmath.Vec3F{X: 12, Y: 0.5 - cfg.WheelOffsets[0].Y})
	ch.linvel = vmath.Vec3F{X: 9, Y: -3}
	ch.angvel = vmath.Vec3F{Z: 4}
	ch.rot = vmath.QuatFromAxisAngle(vmath.UnitZ, 2.5)

	c := NewController(cfg, planeRays{}, turbo.NewMeter())
	c.Attach(ch)
	c.SetGround(flatGround{y: 7})

	res := c.Step(1.0/60, input.Snapshot{Forward: true, Turbo: true, TiltLeft: true, Reset: true})
	if !res.Rescued {
		t.Fatal("reset not reported")
	}
	if len(ch.impulses) != 0 || len(ch.torques) != 0 {
		t.Errorf("impulses applied on reset step: %d linear, %d torque", len(ch.impulses), len(ch.torques))
	}
	if ch.linvel != (vmath.Vec3F{}) || ch.angvel != (vmath.Vec3F{}) || ch.rot != vmath.QuatIdentity {
		t.Errorf("not at rest and upright: v=%+v w=%+v q=%+v", ch.linvel, ch.angvel, ch.rot)
	}
	want := vmath.Vec3F{X: 12, Y: 7 + cfg.SpawnClearance}
	if ch.pos != want {
		t.Errorf("snapped to %+v, want %+v", ch.pos, want)
	}

	order := []string{"linvel", "angvel", "rotation", "translation", "wake"}
	if len(ch.calls) != len(order) {
		t.Fatalf("calls = %v, want %v", ch.calls, order)
	}
	for i := range order {
		if ch.calls[i] != order[i] {
			t.Errorf("call %d = %s, want %s", i, ch.calls[i], order[i])
		}
	}
}

func TestRescueLift(t *testing.T) {
	cfg := DefaultConfig()
	ch := newFakeChassis(vmath.Vec3F{X: 3, Y: 4})
	c := NewController(cfg, planeRays{}, nil)
	c.Attach(ch)
	c.RescueMode = RescueLift

	c.Rescue()
	if want := (vmath.Vec3F{X: 3, Y: 4 + cfg.RescueLift}); ch.pos != want {
		t.Errorf("lifted to %+v, want %+v", ch.pos, want)
	}
}

func TestFallRecovery(t *testing.T) {
	for _, tt := range []struct {
		name string
		y    float64
	}{
		{"below floor", -31},
		{"not a number", math.NaN()},
	} {
		t.Run(tt.name, func(t *testing.T) {
			ch := newFakeChassis(vmath.Vec3F{X: 40, Y: tt.y})
			ch.linvel = vmath.Vec3F{Y: -20}
			c := NewController(DefaultConfig(), planeRays{}, nil)
			c.Attach(ch)
			spawn := vmath.Vec3F{X: 4, Y: 2}
			c.SetSpawn(spawn)

			res := c.Step(1.0/60, input.Snapshot{Forward: true})
			if !res.Recovered {
				t.Fatal("recovery not reported")
			}
			if ch.pos != spawn || ch.linvel != (vmath.Vec3F{}) || ch.rot != vmath.QuatIdentity {
				t.Errorf("not reset to spawn: pos=%+v v=%+v q=%+v", ch.pos, ch.linvel, ch.rot)
			}
		})
	}
}

func TestCrashDetection(t *testing.T) {
	cfg := DefaultConfig()
	ch := newFakeChassis(vmath.Vec3F{Y: 50})
	ch.rot = vmath.QuatFromAxisAngle(vmath.UnitZ, math.Pi)
	c := NewController(cfg, planeRays{}, nil)
	c.Attach(ch)

	dt := 1.0 / 60
	steps := int(math.Ceil(cfg.CrashHoldTime/dt)) + 1
	crashed := false
	for i := 0; i < steps; i++ {
		if c.Step(dt, input.Snapshot{}).Crashed {
			crashed = true
			break
		}
	}
	if !crashed {
		t.Errorf("inverted stall not reported after %d steps (crash time %.3f)", steps, c.CrashTime())
	}

	// Moving fast while inverted is not a crash
	c.Rescue()
	ch.rot = vmath.QuatFromAxisAngle(vmath.UnitZ, math.Pi)
	ch.linvel = vmath.Vec3F{X: 10}
	for i := 0; i < steps; i++ {
		if c.Step(dt, input.Snapshot{}).Crashed {
			t.Fatal("moving chassis reported crashed")
		}
	}
}

func flatRoad(t *testing.T) *road.Road {
	t.Helper()
	prices := make([]decimal.Decimal, 8)
	for i := range prices {
		prices[i] = decimal.NewFromInt(100)
	}
	s, err := track.NewSeries("FLAT", "Flat", prices, nil, track.DefaultBuildOptions())
	if err != nil {
		t.Fatalf("NewSeries: %v", err)
	}
	r, err := road.Build(s, road.DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return r
}

func newWorldRig(t *testing.T) (*physics.World, *physics.Body, *Controller) {
	t.Helper()
	r := flatRoad(t)
	w := physics.NewWorld(vmath.Vec3F{Y: parameter.Gravity})
	w.AddCollider(physics.NewMeshCollider(r.Mesh.Vertices, r.Mesh.Indices, parameter.ColliderCellSize))

	cfg := DefaultConfig()
	body := NewChassisBody(cfg)
	body.SetTranslation(r.SpawnPoint(parameter.SpawnOffsetX, parameter.SpawnClearance))
	w.AddBody(body)

	c := NewController(cfg, w, turbo.NewMeter())
	c.Attach(body)
	c.SetGround(r)
	c.SetSpawn(body.Translation())
	return w, body, c
}

func TestSettlesOnFlatRoad(t *testing.T) {
	w, body, c := newWorldRig(t)

	dt := 1.0 / 60
	for i := 0; i < 240; i++ {
		c.Step(dt, input.Snapshot{})
		w.Step(dt)
	}

	if c.GroundedCount() != 4 {
		t.Errorf("grounded = %d, want 4", c.GroundedCount())
	}
	if p := math.Abs(c.Pitch()); p > 0.05 {
		t.Errorf("pitch = %v, want level", p)
	}
	if v := vmath.V3FMag(body.LinVel()); v > 0.2 {
		t.Errorf("speed at rest = %v", v)
	}
	if z := body.Translation().Z; z != 0 {
		t.Errorf("left the travel plane: z = %v", z)
	}
	t.Logf("✓ settled at y=%.3f, suspension length %.3f", body.Translation().Y, c.Wheels[0].Length)
}

func TestDrivesForwardOnFlatRoad(t *testing.T) {
	w, body, c := newWorldRig(t)

	dt := 1.0 / 60
	for i := 0; i < 120; i++ {
		c.Step(dt, input.Snapshot{})
		w.Step(dt)
	}
	startX := body.Translation().X
	for i := 0; i < 90; i++ {
		c.Step(dt, input.Snapshot{Forward: true})
		w.Step(dt)
	}

	if c.Speed() <= 2 {
		t.Errorf("speed after throttle = %v, want > 2", c.Speed())
	}
	if body.Translation().X <= startX {
		t.Errorf("did not advance: %v -> %v", startX, body.Translation().X)
	}
}
