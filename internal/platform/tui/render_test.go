package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/loop-heist/internal/core"
	"github.com/vovakirdan/loop-heist/internal/level"
	"github.com/vovakirdan/loop-heist/internal/sim"
)

func renderLevel() *level.Level {
	return &level.Level{
		ID:      "render",
		Name:    "Render",
		Width:   800,
		Height:  600,
		Spawn:   core.V(400, 300),
		Walls:   []core.Rect{core.NewRect(0, 0, 800, 10)},
		Extract: core.NewRect(700, 500, 100, 100),
	}
}

func renderSnapshot() sim.Snapshot {
	return sim.Snapshot{
		Loop:   2,
		Player: sim.ActorSnapshot{ID: sim.PlayerID, X: int64(core.ToFixed(400)), Y: int64(core.ToFixed(300)), Carrying: -1},
		Clones: []sim.ActorSnapshot{
			{X: int64(core.ToFixed(200)), Y: int64(core.ToFixed(300)), Carrying: -1},
		},
		Loot: []sim.LootSnapshot{
			{X: int64(core.ToFixed(600)), Y: int64(core.ToFixed(300))},
		},
	}
}

func TestViewportCell(t *testing.T) {
	s := core.NewScreen(80, 23)
	vp := newViewport(renderLevel(), s)

	tests := []struct {
		name   string
		x, y   int
		cx, cy int
	}{
		{"origin", 0, 0, 0, hudRows},
		{"centre", 400, 300, 40, hudRows + 10},
		{"far corner clamps", 800, 600, 79, hudRows + 19},
		{"outside clamps", -50, -50, 0, hudRows},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cx, cy := vp.cell(core.ToFixed(tt.x), core.ToFixed(tt.y))
			if cx != tt.cx || cy != tt.cy {
				t.Errorf("cell(%d, %d) = (%d, %d), expected (%d, %d)", tt.x, tt.y, cx, cy, tt.cx, tt.cy)
			}
		})
	}
}

func TestRendererDraw(t *testing.T) {
	s := core.NewScreen(80, 23)
	r := NewRenderer(48)

	r.Draw(s, renderLevel(), renderSnapshot(), HUD{LevelIndex: 0, LevelCount: 3, Status: "controls"})

	if row := s.Row(0); !strings.Contains(row, "1/3 Render") || !strings.Contains(row, "loop 2") {
		t.Errorf("HUD row = %q, expected level title and loop", row)
	}
	if row := s.Row(hudRows); strings.Trim(row, "█") != "" {
		t.Errorf("Top wall row = %q, expected solid wall", row)
	}
	if got := s.Get(40, hudRows+10); got != '@' {
		t.Errorf("Player cell = %q, expected '@'", got)
	}
	if got := s.Get(20, hudRows+10); got != '1' {
		t.Errorf("Clone cell = %q, expected '1'", got)
	}
	if got := s.Get(60, hudRows+10); got != '$' {
		t.Errorf("Loot cell = %q, expected '$'", got)
	}
	if got := s.Get(75, hudRows+18); got != '·' {
		t.Errorf("Extract cell = %q, expected '·'", got)
	}
	if row := s.Row(s.Height() - 1); !strings.Contains(row, "controls") {
		t.Errorf("Status row = %q, expected controls help", row)
	}
}

func TestRendererCarryingAndBanner(t *testing.T) {
	s := core.NewScreen(80, 23)
	r := NewRenderer(48)

	snap := renderSnapshot()
	snap.Player.Carrying = 0
	snap.Loot[0].Carrier = sim.PlayerID

	r.Draw(s, renderLevel(), snap, HUD{LevelCount: 1, Status: "controls", Banner: "DETECTED", BannerTone: core.ColorWarning})

	if got := s.Get(40, hudRows+10); got != '&' {
		t.Errorf("Carrying player cell = %q, expected '&'", got)
	}
	if row := s.Row(s.Height() - 1); !strings.Contains(row, "DETECTED") || strings.Contains(row, "controls") {
		t.Errorf("Status row = %q, expected the banner to replace the help", row)
	}
}

func TestRendererTooSmall(t *testing.T) {
	s := core.NewScreen(minCols-1, 24)
	r := NewRenderer(48)

	r.Draw(s, renderLevel(), renderSnapshot(), HUD{})

	if row := s.Row(12); !strings.Contains(row, "terminal too small") {
		t.Errorf("Row 12 = %q, expected size warning", row)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawText(0, 0, "loop", core.ColorHUD)
	s.DrawText(5, 0, "heist", core.ColorSuccess)

	out := RenderScreen(s)
	if !strings.Contains(out, "loop") || !strings.Contains(out, "heist") {
		t.Errorf("RenderScreen() = %q, expected both words", out)
	}
	if lines := strings.Count(out, "\n"); lines != 1 {
		t.Errorf("RenderScreen() has %d line breaks, expected 1", lines)
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{0, "0:00.0"},
		{1500 * time.Millisecond, "0:01.5"},
		{83*time.Second + 260*time.Millisecond, "1:23.3"},
	}

	for _, tt := range tests {
		if got := formatElapsed(tt.d); got != tt.expected {
			t.Errorf("formatElapsed(%v) = %q, expected %q", tt.d, got, tt.expected)
		}
	}
}
