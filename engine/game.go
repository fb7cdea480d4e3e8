package engine

import (
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lixenwraith/pricerider/camera"
	"github.com/lixenwraith/pricerider/input"
	"github.com/lixenwraith/pricerider/parameter"
	"github.com/lixenwraith/pricerider/physics"
	"github.com/lixenwraith/pricerider/road"
	"github.com/lixenwraith/pricerider/status"
	"github.com/lixenwraith/pricerider/track"
	"github.com/lixenwraith/pricerider/turbo"
	"github.com/lixenwraith/pricerider/vehicle"
	"github.com/lixenwraith/pricerider/vmath"
)

// Options configures a Game
type Options struct {
	Vehicle vehicle.Config
	Road    road.Options
	Turbo   turbo.Meter // rates only; fuel state is owned by the game

	InitialPortfolio    decimal.Decimal
	LiquidationFraction decimal.Decimal
	FinishMargin        float64
	SpawnOffsetX        float64

	RescueMode vehicle.RescueMode
	Camera     *camera.Follow // nil uses the default rig

	TimeProvider TimeProvider
	Registry     *status.Registry
}

// DefaultOptions returns the stock game setup
func DefaultOptions() Options {
	return Options{
		Vehicle: vehicle.DefaultConfig(),
		Road:    road.DefaultOptions(),
		Turbo: turbo.Meter{
			MaxFuel:      parameter.TurboMaxFuel,
			DrainRate:    parameter.TurboDrainRate,
			RechargeRate: parameter.TurboRechargeRate,
		},
		InitialPortfolio:    decimal.NewFromInt(parameter.InitialPortfolio),
		LiquidationFraction: decimal.NewFromFloat(parameter.LiquidationFraction),
		FinishMargin:        parameter.FinishMargin,
		SpawnOffsetX:        parameter.SpawnOffsetX,
		RescueMode:          vehicle.RescueSnap,
	}
}

// Game is the single coordinator of the simulation and the phase machine
// Actions and Step serialize on one mutex; readers outside the game goroutine use the status registry
type Game struct {
	mu sync.Mutex

	opts    Options
	catalog *track.Catalog

	world      *physics.World
	chassis    *physics.Body
	controller *vehicle.Controller
	meter      *turbo.Meter
	camera     *camera.Follow

	series     *track.Series
	road       *road.Road
	colliderID physics.ColliderID

	phase      GamePhase
	phaseStart time.Time
	reason     GameOverReason
	visible    bool

	clock   *PausableClock
	session string

	startX     float64
	distance   float64
	entryPrice decimal.Decimal
	price      decimal.Decimal
	portfolio  decimal.Decimal
	steps      int64

	metrics *status.GameMetrics
}

// NewGame builds the world and loads the first catalog track in MENU
func NewGame(catalog *track.Catalog, opts Options) (*Game, error) {
	if catalog == nil || catalog.Len() == 0 {
		return nil, fmt.Errorf("new game: %w", ErrUnknownTrack)
	}
	if opts.TimeProvider == nil {
		opts.TimeProvider = NewMonotonicTimeProvider()
	}
	if opts.Registry == nil {
		opts.Registry = status.NewRegistry()
	}
	if opts.Camera == nil {
		opts.Camera = camera.NewFollow()
	}

	meter := turbo.NewMeter()
	if opts.Turbo.MaxFuel > 0 {
		meter.MaxFuel = opts.Turbo.MaxFuel
		meter.DrainRate = opts.Turbo.DrainRate
		meter.RechargeRate = opts.Turbo.RechargeRate
	}

	g := &Game{
		opts:       opts,
		catalog:    catalog,
		world:      physics.NewWorld(vmath.Vec3F{Y: parameter.Gravity}),
		chassis:    vehicle.NewChassisBody(opts.Vehicle),
		meter:      meter,
		camera:     opts.Camera,
		phase:      PhaseMenu,
		phaseStart: opts.TimeProvider.Now(),
		visible:    true,
		clock:      NewPausableClock(opts.TimeProvider),
		metrics:    status.NewGameMetrics(opts.Registry),
	}
	g.world.AddBody(g.chassis)
	g.controller = vehicle.NewController(opts.Vehicle, g.world, meter)
	g.controller.RescueMode = opts.RescueMode
	g.controller.Attach(g.chassis)

	first, _ := catalog.Lookup(catalog.First())
	if err := g.loadTrack(first); err != nil {
		return nil, err
	}
	g.publish()
	return g, nil
}

// loadTrack swaps road and collider for series and resets the run
// The new road is built before the old collider is removed so a failure changes nothing
func (g *Game) loadTrack(series *track.Series) error {
	r, err := road.Build(series, g.opts.Road)
	if err != nil {
		return fmt.Errorf("load track %s: %w", series.ID, err)
	}

	if g.colliderID != 0 {
		g.world.RemoveCollider(g.colliderID)
	}
	g.colliderID = g.world.AddCollider(physics.NewMeshCollider(r.Mesh.Vertices, r.Mesh.Indices, parameter.ColliderCellSize))

	g.series = series
	g.road = r
	g.controller.SetGround(r)
	g.controller.SetSpawn(r.SpawnPoint(g.opts.SpawnOffsetX, g.opts.Vehicle.SpawnClearance))
	g.resetRun()

	log.Printf("[ENGINE] track %s loaded: %d samples, road length %.1f", series.ID, series.Len(), r.Curve.Length())
	return nil
}

// resetRun places the chassis at spawn and clears per-run counters so no momentum carries over
func (g *Game) resetRun() {
	g.controller.ResetToSpawn()
	g.meter.Reset()

	pos := g.chassis.Translation()
	g.camera.Reset(pos, vmath.Vec3F{})

	g.startX = pos.X
	g.distance = 0
	g.steps = 0
	g.reason = ReasonNone
	g.entryPrice = g.priceAt(pos.X)
	g.price = g.entryPrice
	g.portfolio = g.opts.InitialPortfolio
	g.clock.Reset()
}

// priceAt maps a world x back into series coordinates
func (g *Game) priceAt(x float64) decimal.Decimal {
	return g.series.PriceAt(x - g.road.Offset.X)
}

// transition validates and applies a phase change; callers hold mu
func (g *Game) transition(to GamePhase) error {
	from := g.phase
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	g.phase = to
	g.phaseStart = g.opts.TimeProvider.Now()
	g.syncClock()
	log.Printf("[ENGINE] session %s phase %s -> %s", g.session, from, to)
	return nil
}

// syncClock runs session time only while the simulation runs
func (g *Game) syncClock() {
	if g.running() {
		g.clock.Resume()
	} else {
		g.clock.Pause()
	}
}

func (g *Game) running() bool {
	return g.phase == PhasePlaying && g.visible
}

func (g *Game) newSession() {
	g.session = uuid.NewString()
}

// StartGame begins a run on the selected track from MENU
func (g *Game) StartGame() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !CanTransition(g.phase, PhasePlaying) || g.phase != PhaseMenu {
		return fmt.Errorf("start: %w: from %s", ErrInvalidTransition, g.phase)
	}
	g.newSession()
	g.resetRun()
	err := g.transition(PhasePlaying)
	g.publish()
	return err
}

// PauseGame suspends a run
func (g *Game) PauseGame() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhasePlaying {
		return fmt.Errorf("pause: %w: from %s", ErrInvalidTransition, g.phase)
	}
	err := g.transition(PhasePaused)
	g.publish()
	return err
}

// ResumeGame continues a paused run
func (g *Game) ResumeGame() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhasePaused {
		return fmt.Errorf("resume: %w: from %s", ErrInvalidTransition, g.phase)
	}
	err := g.transition(PhasePlaying)
	g.publish()
	return err
}

// RestartGame starts a fresh run on the current track
// From PLAYING the run resets in place; MENU must use StartGame
func (g *Game) RestartGame() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase == PhaseMenu {
		return fmt.Errorf("restart: %w: from %s", ErrInvalidTransition, g.phase)
	}
	g.newSession()
	g.resetRun()
	if g.phase != PhasePlaying {
		if err := g.transition(PhasePlaying); err != nil {
			return err
		}
	} else {
		g.syncClock()
		log.Printf("[ENGINE] session %s restarted in place", g.session)
	}
	g.publish()
	return nil
}

// BackToMenu abandons the run and returns to the menu
func (g *Game) BackToMenu() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.transition(PhaseMenu); err != nil {
		return fmt.Errorf("back to menu: %w", err)
	}
	g.resetRun()
	g.publish()
	return nil
}

// TriggerGameOver ends the run with reason
func (g *Game) TriggerGameOver(reason GameOverReason) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	err := g.gameOver(reason)
	g.publish()
	return err
}

func (g *Game) gameOver(reason GameOverReason) error {
	if err := g.transition(PhaseGameOver); err != nil {
		return fmt.Errorf("game over: %w", err)
	}
	g.reason = reason
	log.Printf("[ENGINE] session %s game over: %s at x=%.1f portfolio=%s",
		g.session, reason, g.chassis.Translation().X, g.portfolio.StringFixed(2))
	return nil
}

// SelectTrack loads track id in any phase, keeping the phase
// Unknown ids return ErrUnknownTrack and change nothing
func (g *Game) SelectTrack(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	series, ok := g.catalog.Lookup(id)
	if !ok {
		return fmt.Errorf("select %q: %w", id, ErrUnknownTrack)
	}
	if err := g.loadTrack(series); err != nil {
		return err
	}
	g.syncClock()
	g.publish()
	return nil
}

// SetVisible suspends or resumes stepping when the host loses or regains focus
func (g *Game) SetVisible(visible bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.visible == visible {
		return
	}
	g.visible = visible
	g.syncClock()
	g.publish()
}

// Step advances one simulation step
// Suspended steps (not PLAYING, or hidden) are complete no-ops
func (g *Game) Step(dt float64, in input.Snapshot) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.running() || dt <= 0 || !vmath.IsFinite(dt) {
		return
	}
	if dt > g.opts.Vehicle.MaxStepDelta {
		dt = g.opts.Vehicle.MaxStepDelta
	}

	res := g.controller.Step(dt, in)
	switch {
	case res.Rescued:
		log.Printf("[ENGINE] session %s rescue at x=%.1f", g.session, g.chassis.Translation().X)
	case res.Recovered:
		log.Printf("[ENGINE] session %s fell through, reset to spawn", g.session)
	}

	g.world.Step(dt)
	g.steps++

	pos := g.chassis.Translation()
	vel := g.chassis.LinVel()
	if vmath.IsFinite(pos.X) {
		g.distance = math.Max(g.distance, pos.X-g.startX)
		g.price = g.priceAt(pos.X)
		if !g.entryPrice.IsZero() {
			g.portfolio = g.opts.InitialPortfolio.Mul(g.price).Div(g.entryPrice)
		}
	}

	switch {
	case res.Crashed:
		_ = g.gameOver(ReasonCrashed)
	case g.portfolio.LessThan(g.opts.InitialPortfolio.Mul(g.opts.LiquidationFraction)):
		_ = g.gameOver(ReasonLiquidated)
	case pos.X >= g.road.End().X-g.opts.FinishMargin:
		_ = g.gameOver(ReasonFinished)
	}

	g.camera.Update(dt, pos, vel)
	g.publish()
}

// publish copies presentation state into the registry; callers hold mu
func (g *Game) publish() {
	m := g.metrics
	m.Phase.Store(g.phase.String())
	m.Reason.Store(g.reason.String())
	m.Track.Store(g.series.ID)
	m.Session.Store(g.session)
	m.Price.Store(g.price.String())
	m.Portfolio.Store(g.portfolio.StringFixed(2))

	m.Speed.Set(g.controller.Speed())
	m.Distance.Set(g.distance)
	m.Progress.Set(g.progress())
	m.Fuel.Set(g.meter.Fuel())
	m.Pitch.Set(g.controller.Pitch())
	m.SessionTime.Set(g.clock.Elapsed().Seconds())

	m.TurboActive.Store(g.meter.Active())
	m.Visible.Store(g.visible)
	m.Grounded.Store(int64(g.controller.GroundedCount()))
	m.Steps.Store(g.steps)
}

func (g *Game) progress() float64 {
	span := g.road.End().X - g.startX
	if span <= 0 {
		return 0
	}
	return vmath.Clamp(g.distance/span, 0, 1)
}

// Phase returns the current phase
func (g *Game) Phase() GamePhase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

// PhaseDuration returns how long the current phase has been active
func (g *Game) PhaseDuration() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.opts.TimeProvider.Now().Sub(g.phaseStart)
}

// Reason returns why the last run ended
func (g *Game) Reason() GameOverReason {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.reason
}

// Running reports whether Step advances the simulation
func (g *Game) Running() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.running()
}

// Visible returns the host visibility flag
func (g *Game) Visible() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.visible
}

// Session returns the current run's session id, empty before the first start
func (g *Game) Session() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session
}

// TrackID returns the loaded track id
func (g *Game) TrackID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.series.ID
}

// Series returns the loaded price series
func (g *Game) Series() *track.Series {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.series
}

// Road returns the loaded road; replaced wholesale on track change
func (g *Game) Road() *road.Road {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.road
}

// Catalog returns the track catalog
func (g *Game) Catalog() *track.Catalog { return g.catalog }

// Chassis returns the chassis body for rendering
func (g *Game) Chassis() *physics.Body { return g.chassis }

// Controller returns the vehicle controller for rendering wheel state
func (g *Game) Controller() *vehicle.Controller { return g.controller }

// Meter returns the turbo meter
func (g *Game) Meter() *turbo.Meter { return g.meter }

// Camera returns the follow camera
func (g *Game) Camera() *camera.Follow { return g.camera }

// World returns the physics world
func (g *Game) World() *physics.World { return g.world }

// Distance returns the farthest progress along x since the run started
func (g *Game) Distance() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.distance
}

// Price returns the price at the chassis position
func (g *Game) Price() decimal.Decimal {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.price
}

// Portfolio returns the current portfolio valuation
func (g *Game) Portfolio() decimal.Decimal {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.portfolio
}

// InitialPortfolio returns the portfolio value each run starts with
func (g *Game) InitialPortfolio() decimal.Decimal { return g.opts.InitialPortfolio }

// Progress returns the run's completed fraction of the road
func (g *Game) Progress() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.progress()
}

// SessionTime returns unpaused time since the run started
func (g *Game) SessionTime() time.Duration {
	return g.clock.Elapsed()
}
