package game

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	hudX          = 12
	hudY          = 12
	hudLineHeight = 16

	// Frame pacing bar
	pacingBarHeight = 48
	pacingBudget    = 50 * time.Millisecond
)

var (
	pacingBackground = color.RGBA{R: 20, G: 25, B: 35, A: 200}
	pacingBorder     = color.RGBA{R: 60, G: 70, B: 90, A: 255}
	pacingOK         = color.RGBA{R: 34, G: 211, B: 238, A: 200}
	pacingSlow       = color.RGBA{R: 239, G: 68, B: 68, A: 220}
	pacingTarget     = color.RGBA{R: 100, G: 110, B: 130, A: 120}
)

// hudLines is the text part of the overlay, one entry per line.
func (g *Game) hudLines(now time.Duration) []string {
	lines := []string{
		fmt.Sprintf("FPS %.1f (tps %.1f)  uptime %s", g.ring.fps(), ebiten.ActualTPS(), formatUptime(now)),
		fmt.Sprintf("viewport %.0fx%.0f @%.2fx  intensity %s", g.view.current.w, g.view.current.h, g.view.current.dpr, g.app.Options.Intensity),
		fmt.Sprintf("reduced motion: system=%t override=%t", g.systemReduced.Get(), g.override),
	}
	for _, l := range g.layers {
		lines = append(lines, fmt.Sprintf("%-9s %-9s frames=%s elapsed=%.0fms", l.name, l.loop.State(), humanize.Comma(int64(l.loop.Frames())), l.loop.Elapsed()))
	}
	st := g.router.frame.Current()
	lines = append(lines,
		fmt.Sprintf("particles=%s ripples=%d points=%s", humanize.Comma(int64(len(g.particles.Particles()))), len(g.grid.Ripples()), humanize.Comma(int64(len(g.grid.Points())))),
		fmt.Sprintf("pointer (%.1f, %.1f) active=%t", st.X, st.Y, st.Active),
		"F3 hud  M system motion  O override  Esc/Q quit",
	)
	return lines
}

func (g *Game) drawHUD(screen *ebiten.Image, now time.Duration) {
	lines := g.hudLines(now)
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), hudX, hudY)
	g.drawPacingBar(screen, hudY+len(lines)*hudLineHeight+8)
}

// drawPacingBar draws one bar per recorded tick interval, scaled against pacingBudget.
func (g *Game) drawPacingBar(screen *ebiten.Image, barY int) {
	samples := g.ring.snapshot(len(g.ring.buffer))
	if len(samples) == 0 {
		return
	}
	barX := hudX
	barWidth := 2 * len(g.ring.buffer)
	segmentWidth := float64(barWidth) / float64(len(g.ring.buffer))

	vector.DrawFilledRect(screen, float32(barX), float32(barY), float32(barWidth), pacingBarHeight, pacingBackground, false)
	vector.StrokeRect(screen, float32(barX), float32(barY), float32(barWidth), pacingBarHeight, 1, pacingBorder, false)

	for i, d := range samples {
		ratio := pacingRatio(d, pacingBudget)
		segmentHeight := ratio * (pacingBarHeight - 4)
		if segmentHeight < 1 {
			segmentHeight = 1
		}
		clr := pacingOK
		if d > 2*time.Second/60 {
			clr = pacingSlow
		}
		segmentX := float64(barX) + float64(i)*segmentWidth
		segmentY := float64(barY) + pacingBarHeight - 2 - segmentHeight
		vector.DrawFilledRect(screen, float32(segmentX), float32(segmentY), float32(segmentWidth), float32(segmentHeight), clr, false)
	}

	// 60 Hz reference line
	targetY := float64(barY) + pacingBarHeight - 2 - (float64(time.Second/60)/float64(pacingBudget))*(pacingBarHeight-4)
	vector.StrokeLine(screen, float32(barX), float32(targetY), float32(barX+barWidth), float32(targetY), 1, pacingTarget, false)
}
