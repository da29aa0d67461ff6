package render

import (
	"github.com/gdamore/tcell/v2"
)

// RGB color definitions
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38) // Tokyo Night background

	RgbWallNear = tcell.NewRGBColor(190, 200, 230)
	RgbWallFar  = tcell.NewRGBColor(40, 44, 70)

	RgbObstacle = tcell.NewRGBColor(255, 80, 80)   // Normal Red
	RgbBonus    = tcell.NewRGBColor(255, 255, 0)   // Bright Yellow
	RgbHUD      = tcell.NewRGBColor(255, 255, 255) // White
	RgbHUDDim   = tcell.NewRGBColor(180, 180, 180) // Brighter gray
	RgbHUDBg    = tcell.NewRGBColor(0, 0, 0)
	RgbBanner   = tcell.NewRGBColor(255, 165, 0) // Orange
)

// depthGlyphs shade from nearest to farthest
var depthGlyphs = []rune{'@', '%', '#', '*', '+', '=', '-', ':', '.'}

// lerpColor blends a to b by t in [0,1]
func lerpColor(a, b tcell.Color, t float64) tcell.Color {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	ar, ag, ab := a.RGB()
	br, bg, bb := b.RGB()
	mix := func(x, y int32) int32 {
		return x + int32(float64(y-x)*t)
	}
	return tcell.NewRGBColor(mix(ar, br), mix(ag, bg), mix(ab, bb))
}

// DepthShade maps a normalized depth in [0,1] to a glyph and color
func DepthShade(t float64) (rune, tcell.Color) {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	i := int(t * float64(len(depthGlyphs)-1))
	return depthGlyphs[i], lerpColor(RgbWallNear, RgbWallFar, t)
}
