package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/loop-heist/internal/core"
	"github.com/vovakirdan/loop-heist/internal/level"
	"github.com/vovakirdan/loop-heist/internal/physics"
	"github.com/vovakirdan/loop-heist/internal/sim"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorWall:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorDoorClosed:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorDoorOpen:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorPlate:        lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorPlatePressed: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorLoot:         lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorExtract:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorPlayer:       lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorClone:        lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorSensor:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorSensorAlert:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorHUD:          lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorWarning:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
	core.ColorSuccess:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Screen layout: two HUD rows on top, one status row at the bottom.
const (
	hudRows    = 2
	statusRows = 1
	minRows    = hudRows + statusRows + 3
	minCols    = 20
)

// viewport maps world units onto a block of screen cells.
type viewport struct {
	top        int
	cols, rows int
	worldW     core.Fixed
	worldH     core.Fixed
}

func newViewport(lvl *level.Level, s *core.Screen) viewport {
	return viewport{
		top:    hudRows,
		cols:   s.Width(),
		rows:   s.Height() - hudRows - statusRows,
		worldW: core.ToFixed(max(1, lvl.Width)),
		worldH: core.ToFixed(max(1, lvl.Height)),
	}
}

// cell returns the screen cell containing the world point (x, y).
func (v viewport) cell(x, y core.Fixed) (int, int) {
	cx := int(int64(x) * int64(v.cols) / int64(v.worldW))
	cy := int(int64(y) * int64(v.rows) / int64(v.worldH))
	return core.Clamp(cx, 0, v.cols-1), v.top + core.Clamp(cy, 0, v.rows-1)
}

// fill paints every cell the rectangle touches.
func (v viewport) fill(s *core.Screen, r core.Rect, ch rune, c core.Color) {
	x0, y0 := v.cell(r.X, r.Y)
	x1, y1 := v.cell(r.Right()-1, r.Bottom()-1)
	s.FillRect(x0, y0, x1-x0+1, y1-y0+1, ch, c)
}

func (v viewport) point(s *core.Screen, p core.Vec, ch rune, c core.Color) {
	x, y := v.cell(p.X, p.Y)
	s.Set(x, y, ch, c)
}

// Renderer draws a level in play onto a Screen.
type Renderer struct {
	lvl       *level.Level
	world     *physics.World
	plateSize core.Fixed
}

// NewRenderer creates a renderer for plates of the given size.
// The level is bound on first draw.
func NewRenderer(plateSize int) *Renderer {
	return &Renderer{plateSize: core.ToFixed(plateSize)}
}

func (r *Renderer) bind(lvl *level.Level) {
	if r.lvl == lvl {
		return
	}
	r.lvl = lvl
	r.world = physics.NewWorld(lvl.Width, lvl.Height, lvl.Walls)
}

// HUD is the text shown around the world view.
type HUD struct {
	LevelIndex int
	LevelCount int
	Banner     string
	BannerTone core.Color
	Status     string
}

// Draw renders the whole frame: HUD, world and status line.
func (r *Renderer) Draw(s *core.Screen, lvl *level.Level, snap sim.Snapshot, hud HUD) {
	s.Clear()
	if s.Width() < minCols || s.Height() < minRows {
		s.DrawTextCentered(s.Height()/2, "terminal too small", core.ColorWarning)
		return
	}
	r.bind(lvl)

	r.drawHUD(s, lvl, snap, hud)
	vp := newViewport(lvl, s)
	r.drawWorld(s, vp, lvl, snap)

	status := hud.Status
	tone := core.ColorHUD
	if hud.Banner != "" {
		status = hud.Banner
		tone = hud.BannerTone
	}
	s.DrawTextCentered(s.Height()-1, status, tone)
}

func (r *Renderer) drawHUD(s *core.Screen, lvl *level.Level, snap sim.Snapshot, hud HUD) {
	title := fmt.Sprintf(" %d/%d %s", hud.LevelIndex+1, hud.LevelCount, lvl.Name)
	info := fmt.Sprintf("loop %d  clones %d  detected %d  %5.1fs ",
		snap.Loop, len(snap.Clones), snap.Failures, snap.TimeRemaining)
	s.DrawText(0, 0, title, core.ColorHUD)
	s.DrawText(s.Width()-len(info), 0, info, core.ColorHUD)

	label := " suspicion "
	s.DrawText(0, 1, label, core.ColorHUD)
	barW := max(0, s.Width()-len(label)-2)
	filled := int(math.Round(snap.Suspicion / 100 * float64(barW)))
	tone := core.ColorSensor
	if snap.Seen || snap.Phase == sim.PhaseDetected {
		tone = core.ColorSensorAlert
	}
	s.DrawText(len(label), 1, strings.Repeat("█", filled), tone)
	s.DrawText(len(label)+filled, 1, strings.Repeat("░", barW-filled), core.ColorWall)
}

func (r *Renderer) drawWorld(s *core.Screen, vp viewport, lvl *level.Level, snap sim.Snapshot) {
	vp.fill(s, lvl.Extract, '·', core.ColorExtract)

	for i, p := range lvl.Plates {
		ch, c := '□', core.ColorPlate
		if i < len(snap.Plates) && snap.Plates[i] {
			ch, c = '■', core.ColorPlatePressed
		}
		vp.fill(s, core.RectAround(p.Pos, r.plateSize, r.plateSize), ch, c)
	}

	for i, d := range lvl.Doors {
		ch, c := '▓', core.ColorDoorClosed
		if i < len(snap.Doors) && snap.Doors[i] {
			ch, c = '░', core.ColorDoorOpen
		}
		vp.fill(s, d.Bounds, ch, c)
	}

	for _, w := range lvl.Walls {
		vp.fill(s, w, '█', core.ColorWall)
	}

	for _, sn := range snap.Sensors {
		r.drawCone(s, vp, sn)
	}

	for _, l := range snap.Loot {
		if l.Carrier == "" {
			vp.point(s, core.Vec{X: core.Fixed(l.X), Y: core.Fixed(l.Y)}, '$', core.ColorLoot)
		}
	}

	for _, sn := range snap.Sensors {
		ch := 'C'
		if sn.Kind == sim.SensorGuard {
			ch = 'G'
		}
		c := core.ColorSensor
		if sn.Detecting {
			c = core.ColorSensorAlert
		}
		vp.point(s, core.Vec{X: core.Fixed(sn.X), Y: core.Fixed(sn.Y)}, ch, c)
	}

	for i, a := range snap.Clones {
		ch := rune('0' + (i+1)%10)
		vp.point(s, core.Vec{X: core.Fixed(a.X), Y: core.Fixed(a.Y)}, ch, core.ColorClone)
	}

	ch := '@'
	if snap.Player.Carrying >= 0 {
		ch = '&'
	}
	vp.point(s, core.Vec{X: core.Fixed(snap.Player.X), Y: core.Fixed(snap.Player.Y)}, ch, core.ColorPlayer)
}

// drawCone shades the visible part of a sensor's field of view by casting
// a fan of rays that stop at walls.
func (r *Renderer) drawCone(s *core.Screen, vp viewport, sn sim.SensorSnapshot) {
	const rays, steps = 9, 12

	origin := core.Vec{X: core.Fixed(sn.X), Y: core.Fixed(sn.Y)}
	ox, oy := origin.Floats()
	c := core.ColorSensor
	if sn.Detecting {
		c = core.ColorSensorAlert
	}

	for i := 0; i < rays; i++ {
		deg := sn.Angle - sn.FOV/2 + sn.FOV*float64(i)/float64(rays-1)
		rad := deg * math.Pi / 180
		for j := 1; j <= steps; j++ {
			d := sn.Range * float64(j) / steps
			p := core.Vec{
				X: core.FixedFromFloat(ox + math.Cos(rad)*d),
				Y: core.FixedFromFloat(oy + math.Sin(rad)*d),
			}
			if !r.world.Bounds().Contains(p) || r.world.SegmentBlockedByWall(origin, p) {
				break
			}
			x, y := vp.cell(p.X, p.Y)
			if s.Get(x, y) == ' ' {
				s.Set(x, y, '.', c)
			}
		}
	}
}
