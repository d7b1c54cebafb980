// Package loop drives a session: the fixed-rate input, update, draw
// cycle around one game engine, plus the per-state key handling.
package loop

import (
	"bufio"
	"io"
	"math"
	"time"

	"chivarun/internal/draw"
	"chivarun/internal/game"
	"chivarun/internal/input"
	"chivarun/internal/obstacle"
)

const targetFPS = 60
const targetFrameTime = time.Second / targetFPS

// cursorSpeed is how fast the god-mode cursor moves horizontally, in
// world units per second.
const cursorSpeed = 320.0

// verticalPad leaves logical space under the road for prompts.
const verticalPad = 16.0

// Damage applied by interactively placed obstacles, per type.
var placeDamage = map[string]int{
	"cone": 10,
	"hole": 25,
}

// Options configure one session's loop.
type Options struct {
	// TermSizeFunc supplies terminal dimensions; nil uses the local
	// terminal. SSH sessions pass a PTY-backed implementation.
	TermSizeFunc draw.TermSizeFunc

	// CarSprite, when set, replaces the plain box the car draws as.
	CarSprite *draw.Sprite
}

// Run starts the main game loop with the standard Input → Update →
// Draw cycle. It returns when the player quits or the reader closes.
func Run(r *bufio.Reader, w io.Writer, engine *game.Engine, opts Options) error {
	termSize := opts.TermSizeFunc
	if termSize == nil {
		termSize = draw.StdoutSize
	}

	stream := input.StartStream(r)
	state := newRunState(engine, stream, termSize)
	state.carSprite = opts.CarSprite

	draw.HideCursor(w)
	defer draw.ShowCursor(w)
	draw.ClearScreen(w)

	// The logical space is one camera window: the view width across,
	// the road plus prompt space down. The canvas rescales it to
	// whatever terminal shows up.
	logicalHeight := float64(engine.Course().Road.YMax) + verticalPad
	termWidth, termHeight, _ := termSize()
	canvas := draw.NewCanvas(termWidth, termHeight, engine.ViewWidth, logicalHeight)

	lastTime := time.Now()

	for state.running {
		frameStart := time.Now()
		state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		// ===== INPUT PHASE =====
		processInput(state)

		// ===== UPDATE PHASE =====
		if tw, th, err := termSize(); err == nil {
			canvas.Resize(tw, th)
		}
		engine.Update(state.delta.Seconds())

		// ===== DRAW PHASE =====
		drawFrame(state, w, canvas)

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < targetFrameTime {
			time.Sleep(targetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(w)
	return nil
}

// processInput reads the frame's key state and routes it to the
// handler for the engine's current phase.
func processInput(s *runState) {
	s.prev = s.cur
	s.cur = input.ReadInput(s.stream)

	if s.cur.Quit {
		s.running = false
		return
	}
	if pressed(s.cur.Tree, s.prev.Tree) {
		s.showTree = !s.showTree
	}

	switch s.engine.State() {
	case game.StateInit, game.StateGameOver:
		if pressed(s.cur.Space, s.prev.Space) || pressed(s.cur.Enter, s.prev.Enter) {
			input.ResetKeyInput(s.stream)
			s.engine.Start()
		}
	case game.StateRunning:
		handleRunning(s)
	case game.StatePaused:
		handlePaused(s)
	case game.StateGodMode:
		handleGodMode(s)
	}
}

func handleRunning(s *runState) {
	eng := s.engine
	car := eng.Car
	road := eng.Course().Road
	laneHeight := road.LaneHeight()

	if pressed(s.cur.Up, s.prev.Up) && car.Y-laneHeight >= road.YMin {
		car.MoveUp(laneHeight)
	}
	if pressed(s.cur.Down, s.prev.Down) && car.Y+laneHeight <= road.YMax {
		car.MoveDown(laneHeight)
	}
	if pressed(s.cur.Space, s.prev.Space) {
		car.Jump()
	}
	if pressed(s.cur.Pause, s.prev.Pause) {
		eng.Pause()
	}
	if pressed(s.cur.God, s.prev.God) {
		enterGodMode(s)
	}
}

func handlePaused(s *runState) {
	eng := s.engine
	if pressed(s.cur.Pause, s.prev.Pause) || pressed(s.cur.Space, s.prev.Space) {
		eng.Resume()
	}
	if pressed(s.cur.God, s.prev.God) {
		enterGodMode(s)
	}
	if pressed(s.cur.Restart, s.prev.Restart) {
		eng.Reset()
		eng.Start()
	}
}

// snapCursor drops the placement cursor just ahead of the car so it
// lands inside the visible window.
func (s *runState) snapCursor() {
	eng := s.engine
	road := eng.Course().Road
	s.cursor.X = clampF(eng.Car.X+eng.CameraOffset+128, road.XMin, road.XMax)
	s.cursor.Y = clampI(eng.Car.Y, road.YMin, road.YMax)
}

func enterGodMode(s *runState) {
	s.snapCursor()
	s.engine.EnterGodMode()
}

func handleGodMode(s *runState) {
	eng := s.engine
	road := eng.Course().Road
	laneHeight := road.LaneHeight()
	dt := s.delta.Seconds()

	// Horizontal movement is continuous while held; the cursor stays
	// inside the camera window.
	if s.cur.Left {
		s.cursor.X -= cursorSpeed * dt
	}
	if s.cur.Right {
		s.cursor.X += cursorSpeed * dt
	}
	camLeft := eng.Car.X - eng.CameraOffset
	s.cursor.X = clampF(s.cursor.X, math.Max(road.XMin, camLeft), math.Min(road.XMax, camLeft+eng.ViewWidth))

	if pressed(s.cur.Up, s.prev.Up) && s.cursor.Y-laneHeight >= road.YMin {
		s.cursor.Y -= laneHeight
	}
	if pressed(s.cur.Down, s.prev.Down) && s.cursor.Y+laneHeight <= road.YMax {
		s.cursor.Y += laneHeight
	}

	switch s.cur.Number {
	case 1:
		s.obstacleType = "cone"
	case 2:
		s.obstacleType = "hole"
	}

	if pressed(s.cur.Enter, s.prev.Enter) || pressed(s.cur.Space, s.prev.Space) {
		eng.PlaceObstacle(obstacle.Obstacle{
			X:      math.Round(s.cursor.X),
			Y:      s.cursor.Y,
			Type:   s.obstacleType,
			Damage: placeDamage[s.obstacleType],
			Asset:  s.obstacleType + ".txt",
		})
	}
	if pressed(s.cur.Delete, s.prev.Delete) {
		if o, ok := obstacleNearCursor(s); ok {
			eng.RemoveObstacleByCoords(o.X, o.Y)
		}
	}

	if pressed(s.cur.God, s.prev.God) || pressed(s.cur.Escape, s.prev.Escape) {
		eng.ExitGodMode()
	}
}

// obstacleNearCursor finds the obstacle on the cursor's lane whose x
// is closest to the cursor, within half an obstacle span either way.
func obstacleNearCursor(s *runState) (obstacle.Obstacle, bool) {
	const reach = 48.0
	var best obstacle.Obstacle
	bestDist := math.Inf(1)
	found := false
	s.engine.Obstacles.Nearby(s.cursor.X-reach, s.cursor.X+reach, func(o obstacle.Obstacle) bool {
		if o.Y != s.cursor.Y {
			return true
		}
		if d := math.Abs(o.X - s.cursor.X); d < bestDist {
			best, bestDist, found = o, d, true
		}
		return true
	})
	return best, found
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampI(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
