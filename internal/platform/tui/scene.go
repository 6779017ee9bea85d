package tui

import (
	"fmt"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// Screen layout in rows.
const (
	hudRows    = 1
	groundRows = 2
)

// Sprite runes
const (
	pipeRune   = '█'
	pipeCap    = '▓'
	bodyRune   = 'o'
	offscreen  = '↑'
	groundDark = '▓'
	groundLite = '▒'
	dirtRune   = '░'
)

var wingRunes = [3]rune{'^', '-', 'v'}

// Viewport maps world pixels onto the play area's cells.
type Viewport struct {
	Cols, Rows     int // Play area size in cells
	Top            int // First screen row of the play area
	WorldW, WorldH int
}

// NewViewport fits the world above the ground strip of a screen.
func NewViewport(screenW, screenH int, l flappy.Layout) Viewport {
	return Viewport{
		Cols:   max(1, screenW),
		Rows:   max(1, screenH-hudRows-groundRows),
		Top:    hudRows,
		WorldW: l.BackgroundW,
		WorldH: l.BackgroundH,
	}
}

// Col returns the screen column of world x.
func (v Viewport) Col(wx int) int {
	return floorDiv(wx*v.Cols, v.WorldW)
}

// Row returns the screen row of world y.
func (v Viewport) Row(wy int) int {
	return v.Top + floorDiv(wy*v.Rows, v.WorldH)
}

// Cells converts a world rectangle to cells. The result always covers at
// least one cell.
func (v Viewport) Cells(r core.Rect) core.Rect {
	x0, y0 := v.Col(r.X), v.Row(r.Y)
	x1, y1 := v.Col(r.Right()), v.Row(r.Bottom())
	return core.NewRect(x0, y0, max(1, x1-x0), max(1, y1-y0))
}

// clip trims r to the play area.
func (v Viewport) clip(r core.Rect) core.Rect {
	x0, y0 := max(r.X, 0), max(r.Y, v.Top)
	x1, y1 := min(r.Right(), v.Cols), min(r.Bottom(), v.Top+v.Rows)
	return core.NewRect(x0, y0, max(0, x1-x0), max(0, y1-y0))
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// HUD carries the values shown beside the score.
type HUD struct {
	Best  int
	Audio bool
}

// Scene draws snapshots. Every gate it draws is also published, in world
// pixels, to the geometry sink for the engine's next collision check.
type Scene struct {
	layout flappy.Layout
	sink   *flappy.GeometryBag
}

// NewScene creates a scene. A nil sink disables publishing.
func NewScene(layout flappy.Layout, sink *flappy.GeometryBag) *Scene {
	return &Scene{layout: layout, sink: sink}
}

// Draw renders one frame into dst.
func (sc *Scene) Draw(dst *core.Screen, snap flappy.Snapshot, hud HUD) {
	dst.Clear()
	v := NewViewport(dst.Width(), dst.Height(), sc.layout)

	placements := snap.Placements(sc.layout)
	if sc.sink != nil && len(placements) > 0 {
		sc.sink.Add(flappy.Geometry(placements)...)
	}
	for _, p := range placements {
		drawGate(dst, v, p)
	}

	drawGround(dst, v, snap.GroundOffset)
	drawFlyer(dst, v, snap)
	drawHUD(dst, snap, hud)

	switch snap.State {
	case flappy.StateWaiting:
		drawMessage(dst, "FLAPPY", "SPACE or left click to flap")
	case flappy.StateTerminal:
		drawMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  ENTER or right click to restart", snap.Score))
	}
}

func drawGate(dst *core.Screen, v Viewport, p flappy.Placement) {
	top := v.Cells(p.Top)
	bottom := v.Cells(p.Bottom)

	dst.DrawRect(v.clip(top), pipeRune, core.ColorGreen)
	dst.DrawRect(v.clip(bottom), pipeRune, core.ColorGreen)

	// Caps face the gap
	capTop := v.clip(core.NewRect(top.X, top.Bottom()-1, top.W, 1))
	capBottom := v.clip(core.NewRect(bottom.X, bottom.Y, bottom.W, 1))
	dst.DrawRect(capTop, pipeCap, core.ColorBrightGreen)
	dst.DrawRect(capBottom, pipeCap, core.ColorBrightGreen)
}

func drawGround(dst *core.Screen, v Viewport, offset int) {
	y := v.Top + v.Rows
	shift := floorDiv(offset*v.Cols, v.WorldW)
	for x := 0; x < dst.Width(); x++ {
		r := groundDark
		if ((x+shift)/2)%2 == 1 {
			r = groundLite
		}
		dst.SetColor(x, y, r, core.ColorGreen)
	}
	for dy := 1; dy < groundRows; dy++ {
		dst.DrawHLine(0, y+dy, dst.Width(), dirtRune, core.ColorOrange)
	}
}

func drawFlyer(dst *core.Screen, v Viewport, snap flappy.Snapshot) {
	r := snap.Flyer
	if snap.State == flappy.StateWaiting {
		r.Y += int(snap.Bob)
	}
	cells := v.Cells(r)

	color := core.ColorBrightYellow
	if snap.State == flappy.StateCrashed || snap.State == flappy.StateTerminal {
		color = core.ColorRed
	}

	if cells.Bottom() <= v.Top {
		dst.SetColor(cells.X, v.Top, offscreen, color)
		return
	}

	area := v.clip(cells)
	dst.DrawRect(area, bodyRune, color)
	if area.W == 0 || area.H == 0 {
		return
	}
	dst.SetColor(area.X, area.Y, wingRunes[snap.Wing%len(wingRunes)], color)
	dst.SetColor(area.Right()-1, area.Y, beak(snap.Tilt), color)
}

// beak picks the leading rune from the tilt hint.
func beak(tilt int) rune {
	switch {
	case tilt <= -20:
		return '/'
	case tilt >= 40:
		return '\\'
	default:
		return '>'
	}
}

func drawHUD(dst *core.Screen, snap flappy.Snapshot, hud HUD) {
	dst.DrawText(1, 0, fmt.Sprintf("Score %d", snap.Score), core.ColorWhite)
	dst.DrawText(14, 0, fmt.Sprintf("Best %d", max(hud.Best, snap.Score)), core.ColorGray)

	sound := "sound off"
	if hud.Audio {
		sound = "sound on"
	}
	dst.DrawText(dst.Width()-len(sound)-1, 0, sound, core.ColorGray)
}

// drawMessage draws a two-line box in the middle of the screen.
func drawMessage(dst *core.Screen, title, subtitle string) {
	w := max(len([]rune(title)), len([]rune(subtitle))) + 4
	h := 5
	box := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2, w, h)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorCyan)
	dst.DrawTextCentered(box.Y+1, title, core.ColorBrightYellow)
	dst.DrawTextCentered(box.Y+3, subtitle, core.ColorWhite)
}
