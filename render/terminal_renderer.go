// Package render draws the tunnel into a tcell screen as depth-shaded
// vertex glyphs with item markers and a status HUD.
package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/into-the-hole/game"
	"github.com/lixenwraith/into-the-hole/parameter"
	"github.com/lixenwraith/into-the-hole/pipe"
)

const (
	glyphObstacle = 'X'
	glyphBonus    = '*'
)

// HUD carries the values shown below the viewport that the game does not own
type HUD struct {
	Best  float64
	Muted bool
}

// TerminalRenderer handles all terminal rendering
type TerminalRenderer struct {
	screen tcell.Screen
	width  int
	height int
	// zbuf holds the nearest depth drawn per cell this frame
	zbuf []float64
}

// NewTerminalRenderer creates a renderer sized to the current screen
func NewTerminalRenderer(screen tcell.Screen) *TerminalRenderer {
	r := &TerminalRenderer{screen: screen}
	w, h := screen.Size()
	r.Resize(w, h)
	return r
}

// Resize updates the viewport after a terminal resize
func (r *TerminalRenderer) Resize(width, height int) {
	r.width = width
	r.height = height
	vh := r.viewHeight()
	if n := width * vh; cap(r.zbuf) < n {
		r.zbuf = make([]float64, n)
	} else {
		r.zbuf = r.zbuf[:n]
	}
}

func (r *TerminalRenderer) viewHeight() int {
	h := r.height - parameter.HUDRows
	if h < 0 {
		return 0
	}
	return h
}

// RenderFrame renders the entire game frame
func (r *TerminalRenderer) RenderFrame(g *game.Game, hud HUD) {
	r.screen.Clear()
	defaultStyle := tcell.StyleDefault.Background(RgbBackground)
	r.screen.Fill(' ', defaultStyle)

	for i := range r.zbuf {
		r.zbuf[i] = math.Inf(1)
	}

	if g.Current() != nil {
		cam := NewCamera(g.Camera(), r.width, r.viewHeight())
		for _, s := range g.Chain().Segments() {
			r.drawSegment(cam, s, defaultStyle)
		}
		for _, s := range g.Chain().Segments() {
			r.drawItems(cam, s, defaultStyle)
		}
	}

	r.drawHUD(g, hud, defaultStyle)

	switch g.State() {
	case game.StateMenu:
		r.drawBanner("INTO THE HOLE", "1 easy  2 medium  3 hard  q quit", defaultStyle)
	case game.StateOver:
		p := g.Player()
		r.drawBanner(fmt.Sprintf("GAME OVER  score %.0f", p.Score()), "1 easy  2 medium  3 hard  q quit", defaultStyle)
	}

	r.screen.Show()
}

// drawSegment plots every mesh vertex of s, nearest wins per cell
func (r *TerminalRenderer) drawSegment(cam Camera, s *pipe.Segment, defaultStyle tcell.Style) {
	t := s.Transform()
	for _, v := range s.Mesh().Vertices {
		x, y, depth, ok := cam.Project(t.Apply(v))
		if !ok {
			continue
		}
		i := y*r.width + x
		if depth >= r.zbuf[i] {
			continue
		}
		r.zbuf[i] = depth
		ch, fg := DepthShade(cam.NormalizedDepth(depth))
		r.screen.SetContent(x, y, ch, nil, defaultStyle.Foreground(fg))
	}
}

// drawItems draws uncollected items over the wall, ignoring the depth buffer
// except against nearer items
func (r *TerminalRenderer) drawItems(cam Camera, s *pipe.Segment, defaultStyle tcell.Style) {
	for _, it := range s.Items() {
		if it.Collected {
			continue
		}
		x, y, _, ok := cam.Project(s.WorldItem(it))
		if !ok {
			continue
		}
		ch, fg := glyphObstacle, RgbObstacle
		if it.Kind() == pipe.KindBonus {
			ch, fg = glyphBonus, RgbBonus
		}
		r.screen.SetContent(x, y, ch, nil, defaultStyle.Foreground(fg).Bold(true))
	}
}

// drawHUD fills the reserved bottom rows
func (r *TerminalRenderer) drawHUD(g *game.Game, hud HUD, defaultStyle tcell.Style) {
	top := r.viewHeight()
	if r.height-top < 1 {
		return
	}
	style := defaultStyle.Background(RgbHUDBg).Foreground(RgbHUD)
	dim := defaultStyle.Background(RgbHUDBg).Foreground(RgbHUDDim)
	for y := top; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			r.screen.SetContent(x, y, ' ', nil, style)
		}
	}

	p := g.Player()
	line := fmt.Sprintf(" dist %8.1f  vel %5.2f  bonus %4d  score %8.1f", p.Distance, p.Velocity, p.Bonus, p.Score())
	r.drawText(0, top, line, style)

	info := fmt.Sprintf(" mode %-6s  best %8.1f  seed %d", g.Mode(), hud.Best, g.Seed())
	if hud.Muted {
		info += "  muted"
	}
	if top+1 < r.height {
		r.drawText(0, top+1, info, dim)
	}
}

func (r *TerminalRenderer) drawBanner(title, hint string, defaultStyle tcell.Style) {
	mid := r.viewHeight() / 2
	style := defaultStyle.Foreground(RgbBanner).Bold(true)
	r.drawText((r.width-len(title))/2, mid-1, title, style)
	r.drawText((r.width-len(hint))/2, mid+1, hint, defaultStyle.Foreground(RgbHUDDim))
}

func (r *TerminalRenderer) drawText(x, y int, s string, style tcell.Style) {
	if y < 0 || y >= r.height {
		return
	}
	for i, ch := range s {
		if x+i < 0 || x+i >= r.width {
			continue
		}
		r.screen.SetContent(x+i, y, ch, nil, style)
	}
}
