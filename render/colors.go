package render

import (
	"github.com/gdamore/tcell/v2"
)

// Palette (Tokyo Night base)
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)
	RgbSkyHigh    = tcell.NewRGBColor(22, 22, 40)
	RgbSkyLow     = tcell.NewRGBColor(41, 46, 66)
	RgbGrid       = tcell.NewRGBColor(52, 59, 88)

	RgbRoadUp      = tcell.NewRGBColor(0, 200, 0)   // rising price
	RgbRoadDown    = tcell.NewRGBColor(255, 80, 80) // falling price
	RgbRoadFlat    = tcell.NewRGBColor(180, 180, 180)
	RgbRoadBody    = tcell.NewRGBColor(60, 64, 90)
	RgbFinishFlag  = tcell.NewRGBColor(255, 255, 255)
	RgbChassis     = tcell.NewRGBColor(255, 165, 0)
	RgbChassisEdge = tcell.NewRGBColor(255, 210, 120)
	RgbWheel       = tcell.NewRGBColor(200, 200, 200)
	RgbWheelAir    = tcell.NewRGBColor(110, 110, 110)
	RgbFlame       = tcell.NewRGBColor(100, 150, 255)

	RgbStatusText = tcell.NewRGBColor(0, 0, 0)
	RgbHudText    = tcell.NewRGBColor(255, 255, 255)
	RgbHudDim     = tcell.NewRGBColor(140, 140, 160)
	RgbHudBg      = tcell.NewRGBColor(36, 40, 59)
	RgbGain       = tcell.NewRGBColor(50, 255, 50)
	RgbLoss       = tcell.NewRGBColor(255, 120, 120)
	RgbMenuBg     = tcell.NewRGBColor(30, 32, 48)
	RgbMenuSelect = tcell.NewRGBColor(135, 206, 250)
	RgbBanner     = tcell.NewRGBColor(255, 255, 0)
)

// FuelColor returns the turbo bar color for a fill fraction: red when low, through yellow to cyan when full
func FuelColor(fraction float64) tcell.Color {
	if fraction <= 0.0 {
		return tcell.NewRGBColor(0, 0, 0)
	}
	if fraction > 1.0 {
		fraction = 1.0
	}

	if fraction < 0.5 { // Red to Yellow
		t := fraction / 0.5
		return tcell.NewRGBColor(int32(200+55*t), int32(40+175*t), 0)
	}
	t := (fraction - 0.5) / 0.5 // Yellow to Cyan
	return tcell.NewRGBColor(int32(255-255*t), int32(215-9*t), int32(209*t))
}

// SkyColor returns the background gradient for a row fraction (0 top, 1 bottom)
func SkyColor(fraction float64) tcell.Color {
	hr, hg, hb := RgbSkyHigh.RGB()
	lr, lg, lb := RgbSkyLow.RGB()
	lerp := func(a, b int32) int32 { return a + int32(float64(b-a)*fraction) }
	return tcell.NewRGBColor(lerp(hr, lr), lerp(hg, lg), lerp(hb, lb))
}
