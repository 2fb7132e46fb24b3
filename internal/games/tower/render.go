package tower

import (
	"fmt"

	"github.com/vovakirdan/tui-tower/internal/core"
)

// Visual characters for rendering
const (
	BodyChar     = '█'
	PlatformChar = '▀'
	HUDRows      = 1 // Rows above the playfield reserved for the HUD
)

// ScreenSink draws snapshots into a character screen. The world viewport is
// stretched over every row below the HUD.
type ScreenSink struct {
	Dst *core.Screen
}

// Draw implements RenderSink.
func (r ScreenSink) Draw(s Snapshot) {
	dst := r.Dst
	dst.Clear()

	rows := dst.Height() - HUDRows
	if rows <= 0 || dst.Width() <= 0 {
		return
	}

	sx := float64(dst.Width()) / s.Viewport.W
	sy := float64(rows) / s.Viewport.H

	for _, p := range s.Platforms {
		r.fill(p.Scale(sx, sy), PlatformChar, core.ColorOrange)
	}
	r.fill(s.Body.Scale(sx, sy), BodyChar, core.ColorBrightYellow)

	r.drawHUD(s)
}

// fill draws a world rectangle that was already scaled to cells, shifted
// below the HUD and clipped to the playfield.
func (r ScreenSink) fill(c core.Rect, ch rune, color core.Color) {
	top := core.Max(c.Y, 0) + HUDRows
	bottom := core.Min(c.Bottom(), r.Dst.Height()-HUDRows) + HUDRows
	for y := top; y < bottom; y++ {
		for x := c.X; x < c.Right(); x++ {
			r.Dst.SetColored(x, y, ch, color)
		}
	}
}

func (r ScreenSink) drawHUD(s Snapshot) {
	score := s.Score
	if s.Phase == PhaseEnded {
		score = s.FinalScore
	}

	left := fmt.Sprintf(" Score: %d ", score)
	right := fmt.Sprintf(" Best: %d ", s.BestScore)

	r.Dst.DrawHLine(0, 0, r.Dst.Width(), '─')
	r.Dst.DrawText(1, 0, left)
	r.Dst.DrawText(r.Dst.Width()-len(right)-1, 0, right)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title string, lines ...string) {
	boxW := len([]rune(title))
	for _, l := range lines {
		boxW = core.Max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := 4 + len(lines)
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	dst.DrawTextCentered(boxY+1, title)
	for i, l := range lines {
		dst.DrawTextCentered(boxY+3+i, l)
	}
}
