package copter

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-copter/internal/core"
)

// Visual characters for rendering
const (
	WallChar   = '█'
	WallEdge   = '▓'
	BodyChar   = '█'
	NoseChar   = '▶'
	TailChar   = '━'
	GroundChar = '═'
)

// rotorFrames cycle every 180 degrees of rotor phase.
var rotorFrames = [...]rune{'─', '╲', '│', '╱'}

// viewport maps world coordinates onto the play area of a screen.
// Row 0 holds the HUD and the last row holds the ground line.
type viewport struct {
	world WorldConfig
	cols  int
	top   int
	rows  int
}

func newViewport(w WorldConfig, dst *core.Screen) viewport {
	return viewport{
		world: w,
		cols:  dst.Width(),
		top:   1,
		rows:  core.Max(dst.Height()-2, 1),
	}
}

func (v viewport) col(x float64) int {
	return int(math.Floor(x / v.world.Width * float64(v.cols)))
}

func (v viewport) row(y float64) int {
	return v.top + int(math.Floor(y/v.world.Height*float64(v.rows-1)+0.5))
}

// worldY returns the world height at the center of a screen row.
func (v viewport) worldY(row int) float64 {
	if v.rows <= 1 {
		return 0
	}
	return float64(row-v.top) / float64(v.rows-1) * v.world.Height
}

// Render draws the current snapshot to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	snap := g.engine.Snapshot()
	vp := newViewport(g.engine.Config(), dst)

	dst.DrawHLine(0, dst.Height()-1, dst.Width(), GroundChar, core.ColorGray)

	// Walls touching the frozen craft are the ones that ended the run
	fatal := make(map[int]bool)
	if snap.Terminal {
		for _, i := range Hits(g.engine.Config(), snap.CraftY, g.engine.field.Obstacles()) {
			fatal[i] = true
		}
	}

	for i, o := range snap.Obstacles {
		color := core.ColorYellow
		if fatal[i] {
			color = core.ColorBrightRed
		}
		g.drawObstacle(dst, vp, o, color)
	}
	g.drawCraft(dst, vp, snap)

	dst.DrawTextColor(2, 0, fmt.Sprintf(" Score: %d ", snap.Score), core.ColorBrightWhite)
	crashText := fmt.Sprintf(" Crashes: %d/%d ", snap.Crashes, snap.MaxCrashes)
	dst.DrawTextColor(dst.Width()-len(crashText)-2, 0, crashText, core.ColorBrightWhite)

	if g.paused {
		drawCenteredMessage(dst, core.ColorCyan, "PAUSED", "Press P to resume")
	}
	if snap.Terminal {
		drawCenteredMessage(dst, core.ColorBrightRed,
			"GAME OVER!",
			fmt.Sprintf("Final Score: %d", snap.Score),
			"Press F to Restart")
	}
}

func (g *Game) drawObstacle(dst *core.Screen, vp viewport, o ObstacleView, color core.Color) {
	w := vp.world
	x0 := vp.col(o.X)
	x1 := core.Max(vp.col(o.X+w.ObstacleWidth), x0+1)
	gapLo := o.GapCenter - w.GapHalfHeight
	gapHi := o.GapCenter + w.GapHalfHeight

	for row := vp.top; row < vp.top+vp.rows; row++ {
		y := vp.worldY(row)
		if y >= gapLo && y <= gapHi {
			continue
		}
		ch := WallChar
		// Shade the wall cells that border the gap
		if vp.worldY(row+1) >= gapLo && y < gapLo || vp.worldY(row-1) <= gapHi && y > gapHi {
			ch = WallEdge
		}
		for x := x0; x < x1; x++ {
			dst.SetColor(x, row, ch, color)
		}
	}
}

func (g *Game) drawCraft(dst *core.Screen, vp viewport, snap Snapshot) {
	cx := vp.col(vp.world.CraftX)
	// A craft frozen outside the world is drawn on the nearest edge row
	cy := core.Clamp(vp.row(snap.CraftY), vp.top, vp.top+vp.rows-1)

	color := core.ColorGreen
	if snap.Terminal {
		color = core.ColorRed
	}

	dst.SetColor(cx-2, cy, TailChar, color)
	dst.SetColor(cx-1, cy, BodyChar, color)
	dst.SetColor(cx, cy, BodyChar, color)
	dst.SetColor(cx+1, cy, NoseChar, core.ColorWhite)

	rotor := rotorFrame(snap.RotorPhase)
	for dx := -1; dx <= 1; dx++ {
		dst.SetColor(cx+dx, cy-1, rotor, core.ColorGray)
	}
}

// rotorFrame picks the blade glyph for a rotor angle in degrees.
func rotorFrame(phase float64) rune {
	p := math.Mod(phase, 180)
	if p < 0 {
		p += 180
	}
	return rotorFrames[int(p/45)%len(rotorFrames)]
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, color core.Color, lines ...string) {
	width := 0
	for _, l := range lines {
		width = core.Max(width, len([]rune(l)))
	}

	boxW := width + 4
	boxH := len(lines) + 4
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, color)

	for i, l := range lines {
		x := boxX + (boxW-len([]rune(l)))/2
		c := core.ColorDefault
		if i == 0 {
			c = color
		}
		dst.DrawTextColor(x, boxY+2+i, l, c)
	}
}
