package render

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/lixenwraith/pricerider/engine"
	"github.com/lixenwraith/pricerider/road"
	"github.com/lixenwraith/pricerider/vmath"
)

// Menu is an overlay list; the host owns navigation
type Menu struct {
	Title    string
	Items    []string
	Selected int
	Hint     string
}

// WheelView is the visual state of one wheel
type WheelView struct {
	Center   vmath.Vec3F
	Grounded bool
	Spin     float64
}

// Frame is everything drawn in one frame, copied out of the game
type Frame struct {
	Phase  engine.GamePhase
	Reason engine.GameOverReason

	Track     string
	TrackName string
	Quote     string
	Road      *road.Road

	Position    vmath.Vec3F
	Rotation    vmath.Quat
	HalfExtents vmath.Vec3F
	Wheels      [4]WheelView
	WheelRadius float64
	Camera      vmath.Vec3F

	Speed       float64
	Distance    float64
	Progress    float64
	Fuel        float64
	MaxFuel     float64
	TurboActive bool

	Price       decimal.Decimal
	Portfolio   decimal.Decimal
	Initial     decimal.Decimal
	SessionTime time.Duration

	Menu *Menu
}

// FrameFromGame snapshots g for drawing; call from the goroutine that steps g
func FrameFromGame(g *engine.Game, menu *Menu) Frame {
	body := g.Chassis()
	ctrl := g.Controller()
	meter := g.Meter()
	series := g.Series()

	f := Frame{
		Phase:       g.Phase(),
		Reason:      g.Reason(),
		Track:       series.ID,
		TrackName:   series.Name,
		Quote:       series.Quote,
		Road:        g.Road(),
		Position:    body.Translation(),
		Rotation:    body.Rotation(),
		HalfExtents: body.HalfExtents,
		WheelRadius: ctrl.Config().WheelRadius,
		Camera:      g.Camera().Position(),
		Speed:       ctrl.Speed(),
		Distance:    g.Distance(),
		Progress:    g.Progress(),
		Fuel:        meter.Fuel(),
		MaxFuel:     meter.MaxFuel,
		TurboActive: meter.Active(),
		Price:       g.Price(),
		Portfolio:   g.Portfolio(),
		Initial:     g.InitialPortfolio(),
		SessionTime: g.SessionTime(),
		Menu:        menu,
	}
	for i, w := range ctrl.Wheels {
		f.Wheels[i] = WheelView{Center: w.Center, Grounded: w.Grounded, Spin: w.Spin}
	}
	return f
}
