package loop

import (
	"time"

	"chivarun/internal/draw"
	"chivarun/internal/game"
	"chivarun/internal/input"
)

// cursor is the god-mode placement cursor in world coordinates.
type cursor struct {
	X float64
	Y int
}

// runState holds everything one session's loop mutates per frame.
type runState struct {
	engine *game.Engine
	stream *input.Stream

	running  bool
	showTree bool

	cursor       cursor
	obstacleType string
	carSprite    *draw.Sprite

	cur  input.Input
	prev input.Input

	delta        time.Duration
	termSizeFunc draw.TermSizeFunc
}

func newRunState(engine *game.Engine, stream *input.Stream, termSize draw.TermSizeFunc) *runState {
	road := engine.Course().Road
	return &runState{
		engine:       engine,
		stream:       stream,
		running:      true,
		obstacleType: "cone",
		cursor: cursor{
			X: road.XMin + engine.ViewWidth/2,
			Y: road.YMin + engine.Course().Road.LaneHeight()*4,
		},
		termSizeFunc: termSize,
	}
}

// pressed reports a rising edge: held this frame, not held last frame.
// Lane moves and placements fire once per keypress, not per frame.
func pressed(cur, prev bool) bool {
	return cur && !prev
}
