package render

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/shopspring/decimal"

	"github.com/lixenwraith/pricerider/engine"
	"github.com/lixenwraith/pricerider/parameter"
	"github.com/lixenwraith/pricerider/vmath"
)

// Screen layout rows
const (
	hudRow    = 0
	turboRow  = 1
	sceneTop  = 2
	footerRow = 1 // counted from the bottom
)

// Glyphs
const (
	runeRoadTop  = '█'
	runeRoadBody = '▓'
	runeChassis  = '█'
	runeFlame    = '≡'
	runeFinish   = '⚑'
	runeBarFull  = '█'
	runeBarEmpty = '░'
)

var wheelGlyphs = [4]rune{'|', '/', '─', '\\'}

// TerminalRenderer draws frames onto a tcell screen in side view
type TerminalRenderer struct {
	screen tcell.Screen
	width  int
	height int
}

// NewTerminalRenderer creates a renderer for screen
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	w, h := screen.Size()
	return &TerminalRenderer{screen: screen, width: w, height: h}
}

// Viewport returns the scene mapping for a camera position at the current screen size
func (r *TerminalRenderer) Viewport(camera vmath.Vec3F) Viewport {
	return Viewport{
		Width:  r.width,
		Height: max(0, r.height-sceneTop-footerRow),
		Center: camera,
	}
}

// RenderFrame draws f and shows it
func (r *TerminalRenderer) RenderFrame(f Frame) {
	r.width, r.height = r.screen.Size()
	vp := r.Viewport(f.Camera)

	r.drawSky(vp)
	if f.Road != nil {
		r.drawRoad(vp, f)
	}
	r.drawChassis(vp, f)
	r.drawWheels(vp, f)

	r.drawHUD(f)
	r.drawTurbo(f)
	r.drawProgress(f)

	if f.Phase == engine.PhaseGameOver {
		r.drawBanner(f)
	}
	if f.Menu != nil {
		r.drawMenu(f.Menu)
	}

	r.screen.Show()
}

// set writes a scene cell, skipping cells outside the viewport
func (r *TerminalRenderer) set(vp Viewport, col, row int, ch rune, style tcell.Style) {
	if !vp.Contains(col, row) {
		return
	}
	r.screen.SetContent(col, row+sceneTop, ch, nil, style)
}

// bgAt returns the sky color under a scene row so sprites keep the gradient
func bgAt(vp Viewport, row int) tcell.Color {
	if vp.Height <= 1 {
		return RgbBackground
	}
	return SkyColor(float64(row) / float64(vp.Height-1))
}

func (r *TerminalRenderer) drawSky(vp Viewport) {
	for row := 0; row < vp.Height; row++ {
		style := tcell.StyleDefault.Background(bgAt(vp, row)).Foreground(RgbGrid)
		worldY := vp.RowY(row)
		for col := 0; col < vp.Width; col++ {
			ch := ' '
			// Faint grid every 10 units
			if math.Mod(math.Abs(vp.ColumnX(col)), 10) < 1/CellsPerUnitX && math.Mod(math.Abs(worldY), 5) < 1/CellsPerUnitY {
				ch = '·'
			}
			r.set(vp, col, row, ch, style)
		}
	}
}

func (r *TerminalRenderer) drawRoad(vp Viewport, f Frame) {
	rd := f.Road
	bodyRows := max(1, int(math.Ceil(rd.Thickness*CellsPerUnitY)))
	dx := 0.5 / CellsPerUnitX
	end := rd.End()

	for col := 0; col < vp.Width; col++ {
		x := vp.ColumnX(col)
		top, ok := rd.HeightAt(x)
		if !ok {
			continue
		}

		color := RgbRoadFlat
		ahead, okA := rd.HeightAt(x + dx)
		behind, okB := rd.HeightAt(x - dx)
		if okA && okB {
			switch slope := (ahead - behind) / (2 * dx); {
			case slope > 0.05:
				color = RgbRoadUp
			case slope < -0.05:
				color = RgbRoadDown
			}
		}

		_, row := vp.ToCell(x, top)
		r.set(vp, col, row, runeRoadTop, tcell.StyleDefault.Foreground(color).Background(bgAt(vp, row)))
		body := tcell.StyleDefault.Foreground(RgbRoadBody).Background(RgbBackground)
		for i := 1; i <= bodyRows; i++ {
			r.set(vp, col, row+i, runeRoadBody, body)
		}
	}

	col, row := vp.ToCell(end.X, end.Y)
	r.set(vp, col, row-1, runeFinish, tcell.StyleDefault.Foreground(RgbFinishFlag).Background(bgAt(vp, row-1)))
}

func (r *TerminalRenderer) drawChassis(vp Viewport, f Frame) {
	h := f.HalfExtents
	stepX := 0.5 / CellsPerUnitX
	stepY := 0.5 / CellsPerUnitY

	for ly := -h.Y; ly <= h.Y+1e-9; ly += stepY {
		for lx := -h.X; lx <= h.X+1e-9; lx += stepX {
			p := vmath.V3FAdd(f.Position, vmath.QuatRotate(f.Rotation, vmath.Vec3F{X: lx, Y: ly}))
			col, row := vp.ToCell(p.X, p.Y)
			color := RgbChassis
			if ly >= h.Y-stepY {
				color = RgbChassisEdge
			}
			r.set(vp, col, row, runeChassis, tcell.StyleDefault.Foreground(color).Background(bgAt(vp, row)))
		}
	}

	if f.TurboActive {
		for i := 1; i <= 2; i++ {
			local := vmath.Vec3F{X: -h.X - float64(i)*stepX*2}
			p := vmath.V3FAdd(f.Position, vmath.QuatRotate(f.Rotation, local))
			col, row := vp.ToCell(p.X, p.Y)
			r.set(vp, col, row, runeFlame, tcell.StyleDefault.Foreground(RgbFlame).Background(bgAt(vp, row)))
		}
	}
}

// wheelGlyph picks a spoke rune for a spin angle
func wheelGlyph(spin float64) rune {
	q := int(math.Floor(vmath.WrapAngle(spin)/(math.Pi/4)+0.5)) % 4
	if q < 0 {
		q += 4
	}
	return wheelGlyphs[q]
}

func (r *TerminalRenderer) drawWheels(vp Viewport, f Frame) {
	// Near side only; the far pair projects onto the same cells
	for _, w := range f.Wheels {
		if w.Center.Z < 0 {
			continue
		}
		color := RgbWheelAir
		if w.Grounded {
			color = RgbWheel
		}
		col, row := vp.ToCell(w.Center.X, w.Center.Y)
		r.set(vp, col, row, wheelGlyph(w.Spin), tcell.StyleDefault.Foreground(color).Background(RgbBackground).Bold(true))
	}
}

// drawText writes s at (x, y) and returns the next column
func (r *TerminalRenderer) drawText(x, y int, s string, style tcell.Style) int {
	for _, ch := range s {
		if x >= r.width {
			break
		}
		if x >= 0 && y >= 0 && y < r.height {
			r.screen.SetContent(x, y, ch, nil, style)
		}
		x++
	}
	return x
}

func (r *TerminalRenderer) fillRow(y int, style tcell.Style) {
	for x := 0; x < r.width; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

// FormatPrice renders a price with precision suited to its magnitude
func FormatPrice(d decimal.Decimal) string {
	abs := d.Abs()
	switch {
	case abs.GreaterThanOrEqual(decimal.NewFromInt(1000)):
		return d.StringFixed(0)
	case abs.GreaterThanOrEqual(decimal.NewFromInt(1)):
		return d.StringFixed(2)
	case abs.IsZero():
		return "0"
	}
	return d.StringFixed(8)
}

// ChangePercent returns (now/base - 1) × 100; zero base yields zero
func ChangePercent(now, base decimal.Decimal) decimal.Decimal {
	if base.IsZero() {
		return decimal.Zero
	}
	return now.Div(base).Sub(decimal.NewFromInt(1)).Mul(decimal.NewFromInt(100))
}

func formatClock(d time.Duration) string {
	s := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}

func (r *TerminalRenderer) drawHUD(f Frame) {
	bg := tcell.StyleDefault.Background(RgbHudBg)
	text := bg.Foreground(RgbHudText)
	dim := bg.Foreground(RgbHudDim)
	r.fillRow(hudRow, bg)

	x := r.drawText(1, hudRow, f.Track, text.Bold(true))
	x = r.drawText(x+1, hudRow, f.TrackName, dim)
	x = r.drawText(x+2, hudRow, FormatPrice(f.Price)+" "+f.Quote, text)

	change := ChangePercent(f.Portfolio, f.Initial)
	changeStyle := bg.Foreground(RgbGain)
	if change.IsNegative() {
		changeStyle = bg.Foreground(RgbLoss)
	}
	x = r.drawText(x+2, hudRow, "PF ", dim)
	x = r.drawText(x, hudRow, f.Portfolio.StringFixed(2), text)
	x = r.drawText(x+1, hudRow, fmt.Sprintf("(%s%%)", change.StringFixed(1)), changeStyle)

	x = r.drawText(x+2, hudRow, fmt.Sprintf("SPD %5.1f", f.Speed), text)
	x = r.drawText(x+2, hudRow, fmt.Sprintf("DST %6.1f", f.Distance), text)
	r.drawText(x+2, hudRow, formatClock(f.SessionTime), dim)
}

func (r *TerminalRenderer) drawTurbo(f Frame) {
	bg := tcell.StyleDefault.Background(RgbBackground)
	r.fillRow(turboRow, bg)

	frac := 0.0
	if f.MaxFuel > 0 {
		frac = vmath.Clamp(f.Fuel/f.MaxFuel, 0, 1)
	}
	label := "TURBO "
	labelStyle := bg.Foreground(RgbHudDim)
	if f.TurboActive {
		label = "BOOST "
		labelStyle = bg.Foreground(RgbFlame).Bold(true)
	}
	x := r.drawText(1, turboRow, label, labelStyle)

	const barWidth = 20
	filled := int(math.Round(frac * barWidth))
	bar := bg.Foreground(FuelColor(frac))
	for i := 0; i < barWidth; i++ {
		ch := runeBarEmpty
		if i < filled {
			ch = runeBarFull
		}
		x = r.drawText(x, turboRow, string(ch), bar)
	}
	warn := bg.Foreground(RgbHudText)
	if f.Fuel < parameter.TurboLowFuel {
		warn = bg.Foreground(RgbLoss)
	}
	r.drawText(x+1, turboRow, fmt.Sprintf("%3.0f%%", f.Fuel), warn)
}

func (r *TerminalRenderer) drawProgress(f Frame) {
	y := r.height - footerRow
	if y <= turboRow {
		return
	}
	bg := tcell.StyleDefault.Background(RgbHudBg)
	r.fillRow(y, bg)

	filled := int(math.Round(vmath.Clamp(f.Progress, 0, 1) * float64(r.width)))
	style := bg.Foreground(RgbRoadUp)
	for x := 0; x < filled; x++ {
		r.screen.SetContent(x, y, '▬', nil, style)
	}
	label := fmt.Sprintf(" %s %3.0f%% ", f.Phase, f.Progress*100)
	r.drawText(r.width-len(label)-1, y, label, bg.Foreground(RgbHudText))
}

func (r *TerminalRenderer) drawBanner(f Frame) {
	msg := fmt.Sprintf(" %s ", f.Reason)
	if f.Reason == engine.ReasonNone {
		msg = " GAME OVER "
	}
	y := sceneTop + 1
	x := (r.width - len(msg)) / 2
	r.drawText(x, y, msg, tcell.StyleDefault.Background(RgbBanner).Foreground(RgbStatusText).Bold(true))
}

func (r *TerminalRenderer) drawMenu(m *Menu) {
	width := utf8.RuneCountInString(m.Title)
	for _, item := range m.Items {
		width = max(width, utf8.RuneCountInString(item)+4)
	}
	width = max(width, utf8.RuneCountInString(m.Hint)) + 4
	height := len(m.Items) + 4
	if m.Hint != "" {
		height++
	}

	left := max(0, (r.width-width)/2)
	top := max(sceneTop, (r.height-height)/2)
	box := tcell.StyleDefault.Background(RgbMenuBg).Foreground(RgbHudText)
	for y := top; y < top+height; y++ {
		for x := left; x < left+width; x++ {
			r.screen.SetContent(x, y, ' ', nil, box)
		}
	}

	r.drawText(left+(width-utf8.RuneCountInString(m.Title))/2, top+1, m.Title, box.Bold(true).Foreground(RgbBanner))
	for i, item := range m.Items {
		style := box
		prefix := "  "
		if i == m.Selected {
			style = box.Background(RgbMenuSelect).Foreground(RgbStatusText)
			prefix = "> "
		}
		line := prefix + item + strings.Repeat(" ", max(0, width-4-len(prefix)-utf8.RuneCountInString(item)))
		r.drawText(left+2, top+3+i, line, style)
	}
	if m.Hint != "" {
		r.drawText(left+2, top+height-1, m.Hint, box.Foreground(RgbHudDim))
	}
}
