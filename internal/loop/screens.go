package loop

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"chivarun/internal/draw"
	"chivarun/internal/game"
	"chivarun/internal/obstacle"
	"chivarun/internal/treeview"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	hudStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	energyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dangerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	godStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
)

const energyBarWidth = 20

// Lane separator dash geometry in world units.
const (
	dashLen    = 24.0
	dashPeriod = 48.0
)

// jumpLift is how far the car visually rises while airborne.
const jumpLift = 8.0

// drawFrame clears the screen and renders the current phase.
func drawFrame(s *runState, w io.Writer, canvas *draw.Canvas) {
	draw.ClearScreen(w)
	canvas.Clear()

	switch s.engine.State() {
	case game.StateInit:
		drawTitleScreen(w, canvas)
	case game.StateGameOver:
		drawWorld(s, canvas)
		canvas.Render(w)
		drawGameOverScreen(s, w, canvas)
	default:
		drawWorld(s, canvas)
		if s.engine.State() == game.StateGodMode {
			drawCursor(s, canvas)
		}
		canvas.Render(w)
		drawHUD(s, w, canvas)
		switch s.engine.State() {
		case game.StatePaused:
			drawCentered(w, canvas, 0, promptStyle.Render("PAUSED: SPACE resume, G god mode, R restart, Q quit"))
		case game.StateGodMode:
			drawGodHelp(s, w, canvas)
		}
	}

	if s.showTree {
		drawTreeOverlay(s, w)
	}
}

// drawWorld renders the camera window: road lanes, obstacles, car.
func drawWorld(s *runState, canvas *draw.Canvas) {
	eng := s.engine
	road := eng.Course().Road
	camera := eng.Car.X - eng.CameraOffset
	laneHeight := float64(road.LaneHeight())

	// Solid road edges.
	canvas.DrawLine(draw.Point{X: 0, Y: float64(road.YMin)}, draw.Point{X: eng.ViewWidth, Y: float64(road.YMin)})
	canvas.DrawLine(draw.Point{X: 0, Y: float64(road.YMax)}, draw.Point{X: eng.ViewWidth, Y: float64(road.YMax)})

	// Dashed lane separators, scrolling with the camera.
	phase := math.Mod(camera, dashPeriod)
	for y := float64(road.YMin) + laneHeight; y < float64(road.YMax); y += laneHeight {
		for x := -phase; x < eng.ViewWidth; x += dashPeriod {
			x1 := math.Max(x, 0)
			x2 := math.Min(x+dashLen, eng.ViewWidth)
			if x2 > x1 {
				canvas.DrawLine(draw.Point{X: x1, Y: y}, draw.Point{X: x2, Y: y})
			}
		}
	}

	// Obstacles: sprite when resolved, placeholder box otherwise.
	cache := eng.Obstacles.Cache()
	for _, o := range eng.VisibleObstacles() {
		sx := o.X - camera
		if o.Asset != "" {
			if spr, ok := cache.Get(o.Asset); ok {
				canvas.DrawSprite(spr, sx, float64(o.Y)-float64(spr.Height()))
				continue
			}
		}
		ow, oh := o.Size(cache)
		canvas.FillRect(sx, float64(o.Y)-oh, ow, oh)
	}

	drawCar(s, canvas)
}

func drawCar(s *runState, canvas *draw.Canvas) {
	eng := s.engine
	car := eng.Car
	road := eng.Course().Road

	top := float64(car.Y) - game.CarHeight
	if top < float64(road.YMin) {
		top = float64(road.YMin)
	}
	if car.Jumping() {
		top -= jumpLift
	}

	if s.carSprite != nil {
		canvas.DrawSprite(s.carSprite, eng.CameraOffset, top)
		return
	}
	canvas.FillRect(eng.CameraOffset, top, game.CarWidth, game.CarHeight)
}

// drawCursor outlines the box the selected obstacle type would occupy
// at the cursor.
func drawCursor(s *runState, canvas *draw.Canvas) {
	eng := s.engine
	camera := eng.Car.X - eng.CameraOffset
	ow, oh := obstacle.DefaultSize(s.obstacleType)

	x := s.cursor.X - camera
	y := float64(s.cursor.Y) - oh
	canvas.DrawLine(draw.Point{X: x, Y: y}, draw.Point{X: x + ow, Y: y})
	canvas.DrawLine(draw.Point{X: x, Y: y + oh}, draw.Point{X: x + ow, Y: y + oh})
	canvas.DrawLine(draw.Point{X: x, Y: y}, draw.Point{X: x, Y: y + oh})
	canvas.DrawLine(draw.Point{X: x + ow, Y: y}, draw.Point{X: x + ow, Y: y + oh})
}

// drawHUD writes the energy bar and distance over the rendered canvas.
func drawHUD(s *runState, w io.Writer, canvas *draw.Canvas) {
	snap := s.engine.Snapshot()

	filled := 0
	if snap.EnergyMax > 0 {
		filled = snap.Energy * energyBarWidth / snap.EnergyMax
	}
	if filled > energyBarWidth {
		filled = energyBarWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", energyBarWidth-filled)
	barStyle := energyStyle
	if snap.Energy*4 < snap.EnergyMax {
		barStyle = dangerStyle
	}
	draw.WriteAt(w, 2, 1, hudStyle.Render("ENERGY ")+barStyle.Render(bar)+hudStyle.Render(fmt.Sprintf(" %d/%d", snap.Energy, snap.EnergyMax)))

	dist := fmt.Sprintf("DISTANCE %.0f / %.0f", snap.CarX, snap.Distance)
	draw.WriteAt(w, canvas.TerminalWidth()-len(dist)-1, 1, hudStyle.Render(dist))
}

func drawGodHelp(s *runState, w io.Writer, canvas *draw.Canvas) {
	line := fmt.Sprintf("GOD MODE  [%s]  x=%.0f y=%d  arrows move, 1/2 type, ENTER place, X remove, G exit",
		s.obstacleType, s.cursor.X, s.cursor.Y)
	drawCentered(w, canvas, 0, godStyle.Render(line))
}

// drawTitleScreen draws the title screen.
func drawTitleScreen(w io.Writer, canvas *draw.Canvas) {
	centerX := canvas.TerminalWidth() / 2
	centerY := canvas.TerminalHeight() / 2

	title := "C H I V A R U N"
	draw.WriteAt(w, centerX-len(title)/2, centerY-2, titleStyle.Render(title))

	subtitle := "Press SPACE to Start"
	draw.WriteAt(w, centerX-len(subtitle)/2, centerY+1, promptStyle.Render(subtitle))

	controls := "Controls: W/S or Arrows to change lane, SPACE to jump, P to pause, G god mode, V index view, Q to quit"
	draw.WriteAt(w, centerX-len(controls)/2, centerY+4, promptStyle.Render(controls))
}

// drawGameOverScreen draws the end screen over the frozen world.
func drawGameOverScreen(s *runState, w io.Writer, canvas *draw.Canvas) {
	centerX := canvas.TerminalWidth() / 2
	centerY := canvas.TerminalHeight() / 2

	var title string
	if s.engine.ReachedGoal() {
		title = "YOU MADE IT"
	} else {
		title = "GAME OVER"
	}
	draw.WriteAt(w, centerX-len(title)/2, centerY-2, titleStyle.Render(title))

	snap := s.engine.Snapshot()
	scoreText := fmt.Sprintf("Distance: %.0f / %.0f", snap.CarX, snap.Distance)
	draw.WriteAt(w, centerX-len(scoreText)/2, centerY, hudStyle.Render(scoreText))

	prompt := "Press SPACE to Restart"
	draw.WriteAt(w, centerX-len(prompt)/2, centerY+2, promptStyle.Render(prompt))
}

// drawCentered writes a line centered horizontally, rowOffset rows
// below the HUD line.
func drawCentered(w io.Writer, canvas *draw.Canvas, rowOffset int, line string) {
	col := canvas.TerminalWidth()/2 - lipgloss.Width(line)/2
	if col < 1 {
		col = 1
	}
	draw.WriteAt(w, col, 2+rowOffset, line)
}

// drawTreeOverlay prints the spatial index sideways down the left
// margin.
func drawTreeOverlay(s *runState, w io.Writer) {
	for i, line := range treeview.Sprint(s.engine.Obstacles.Index()) {
		draw.WriteAt(w, 2, 3+i, line)
	}
}
