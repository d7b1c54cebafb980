package game

import (
	"github.com/charmbracelet/log"

	"chivarun/internal/config"
	"chivarun/internal/obstacle"
	"chivarun/internal/physics"
)

// State is the engine's game phase.
type State int

const (
	StateInit State = iota
	StateRunning
	StatePaused
	StateGodMode // interactive obstacle placement
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateGodMode:
		return "god_mode"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Viewport geometry in world units.
const (
	DefaultViewWidth    = 1024.0
	DefaultCameraOffset = 64.0 // car's distance from the left screen edge
)

// DefaultPlaceMargin is the clearance required around an interactively
// placed obstacle.
const DefaultPlaceMargin = 4.0

// maxObstacleSpan bounds how far left of a point an obstacle can start
// and still reach it; used to size placement neighbourhood queries.
const maxObstacleSpan = 64.0

// Engine coordinates one run: the car, the obstacle manager, the state
// machine, and the per-frame collision/cleanup pass.
type Engine struct {
	Car       *Car
	Obstacles *obstacle.Manager

	cfg     config.Course
	initial []obstacle.Obstacle // batch used by Reset
	cache   *obstacle.SpriteCache

	state       State
	reachedGoal bool
	inTransit   bool // guards against reentrant state-change hooks

	ViewWidth    float64
	CameraOffset float64

	// OnStateChange, when set, is invoked after every state
	// transition; OnObstaclePlaced after every successful interactive
	// placement.
	OnStateChange    func(State)
	OnObstaclePlaced func(obstacle.Obstacle)
}

// NewEngine builds an engine from a parsed course, bulk-loading the
// obstacle batch.
func NewEngine(cfg config.Course, batch []obstacle.Obstacle, cache *obstacle.SpriteCache) *Engine {
	if cache == nil {
		cache = obstacle.NewSpriteCache(nil)
	}
	e := &Engine{
		cfg:          cfg,
		initial:      batch,
		cache:        cache,
		state:        StateInit,
		ViewWidth:    DefaultViewWidth,
		CameraOffset: DefaultCameraOffset,
	}
	e.build()
	return e
}

// build creates a fresh car and manager from the stored course. Index,
// mirror and car are always rebuilt together.
func (e *Engine) build() {
	e.Car = NewCar(e.cfg.Road.XMin, e.cfg.Road.YMin, e.cfg.Speed, e.cfg.JumpDistance, e.cfg.Energy)
	e.Obstacles = obstacle.NewManager(e.cache)
	loaded := e.Obstacles.LoadBatch(e.initial)
	if loaded < len(e.initial) {
		log.Info("course loaded with skipped obstacles", "loaded", loaded, "total", len(e.initial))
	}
}

func (e *Engine) setState(s State) {
	if e.inTransit || e.state == s {
		return
	}
	e.inTransit = true
	e.state = s
	if e.OnStateChange != nil {
		e.OnStateChange(s)
	}
	e.inTransit = false
}

// State returns the current game phase.
func (e *Engine) State() State { return e.state }

// Course returns the loaded course parameters.
func (e *Engine) Course() config.Course { return e.cfg }

// ReachedGoal reports whether the last game over was a win.
func (e *Engine) ReachedGoal() bool { return e.reachedGoal }

// Start begins or restarts the run. From game over it resets first.
func (e *Engine) Start() {
	if e.state == StateGameOver {
		e.Reset()
	}
	if e.state == StateInit || e.state == StatePaused {
		e.setState(StateRunning)
	}
}

// Pause suspends a running game.
func (e *Engine) Pause() {
	if e.state == StateRunning {
		e.setState(StatePaused)
	}
}

// Resume continues a paused game.
func (e *Engine) Resume() {
	if e.state == StatePaused {
		e.setState(StateRunning)
	}
}

// TogglePause flips between running and paused.
func (e *Engine) TogglePause() {
	switch e.state {
	case StateRunning:
		e.Pause()
	case StatePaused:
		e.Resume()
	}
}

// EnterGodMode switches to interactive placement mode.
func (e *Engine) EnterGodMode() {
	if e.state != StateGodMode && e.state != StateGameOver {
		e.setState(StateGodMode)
	}
}

// ExitGodMode leaves placement mode into paused.
func (e *Engine) ExitGodMode() {
	if e.state == StateGodMode {
		e.setState(StatePaused)
	}
}

// Reset discards the car, index and mirror together and rebuilds them
// from the original course batch.
func (e *Engine) Reset() {
	e.build()
	e.reachedGoal = false
	e.setState(StateInit)
}

// Update advances the simulation by dt seconds. It is a no-op unless
// the game is running.
func (e *Engine) Update(dt float64) {
	if e.state != StateRunning {
		return
	}

	e.Car.Update(dt)
	if e.Car.X < e.cfg.Road.XMin {
		e.Car.X = e.cfg.Road.XMin
	}
	if e.Car.X > e.cfg.Road.XMax {
		e.Car.X = e.cfg.Road.XMax
	}

	e.processCollisions()

	if !e.Car.Alive() {
		e.reachedGoal = false
		e.setState(StateGameOver)
	} else if e.Car.X >= e.cfg.TotalDistance {
		e.reachedGoal = true
		e.setState(StateGameOver)
	}
}

// processCollisions walks the visible window once: obstacles hitting
// the car apply damage and are removed; obstacles whose right edge has
// scrolled past the left screen edge are dropped.
func (e *Engine) processCollisions() {
	// The scan window reaches left of the screen edge so obstacles
	// that just scrolled out are still seen once and dropped.
	start := e.Car.X - e.CameraOffset - maxObstacleSpan
	visible := e.Obstacles.GetVisible(start, e.ViewWidth+e.CameraOffset+maxObstacleSpan)
	carBox := e.Car.Hitbox(e.cfg.Road.YMin)

	type coord struct {
		x float64
		y int
	}
	var remove []coord

	for _, o := range visible {
		box := o.Hitbox(e.cache)
		if carBox.Overlaps(box) {
			if e.Car.Collide(o) {
				log.Info("collision", "type", o.Type, "damage", o.Damage, "energy", e.Car.Energy)
				remove = append(remove, coord{o.X, o.Y})
			}
			continue
		}
		// Off-screen cleanup: fully out once the right edge crosses
		// the left viewport edge.
		w, _ := o.Size(e.cache)
		screenX := o.X - e.Car.X + e.CameraOffset
		if screenX+w < 0 {
			remove = append(remove, coord{o.X, o.Y})
		}
	}

	for _, c := range remove {
		e.Obstacles.RemoveByCoords(c.x, c.y)
	}
}

// CanPlace reports whether an obstacle of the given type fits at
// (x, y) with the given clearance: inside the road bounds and not
// overlapping any active obstacle's hitbox. It never mutates the
// index.
func (e *Engine) CanPlace(x float64, y int, margin float64, obstacleType string) bool {
	r := e.cfg.Road
	if x < r.XMin || x > r.XMax || y < r.YMin || y > r.YMax {
		return false
	}

	cw, ch := obstacle.DefaultSize(obstacleType)
	candidate := physics.Rect{X: x, Y: float64(y) - ch, W: cw, H: ch}.Expand(margin)

	// Only the x-neighbourhood of the candidate can overlap it.
	free := true
	e.Obstacles.Nearby(x-maxObstacleSpan-margin, x+cw+2*margin, func(o obstacle.Obstacle) bool {
		if candidate.Overlaps(o.Hitbox(e.cache)) {
			free = false
			return false
		}
		return true
	})
	return free
}

// PlaceObstacle spawns an interactively placed obstacle. Placement is
// only allowed in god mode and only on a clear, in-bounds spot.
func (e *Engine) PlaceObstacle(o obstacle.Obstacle) bool {
	if e.state != StateGodMode {
		return false
	}
	if !o.Valid() || !e.CanPlace(o.X, o.Y, DefaultPlaceMargin, o.Type) {
		return false
	}
	if !e.Obstacles.Spawn(o) {
		return false
	}
	if e.OnObstaclePlaced != nil {
		e.OnObstaclePlaced(o)
	}
	return true
}

// RemoveObstacleByCoords removes the obstacle at exactly (x, y).
func (e *Engine) RemoveObstacleByCoords(x float64, y int) bool {
	return e.Obstacles.RemoveByCoords(x, y)
}

// VisibleObstacles returns the obstacles inside the current camera
// window, padded on the left so partially scrolled-out obstacles still
// draw.
func (e *Engine) VisibleObstacles() []obstacle.Obstacle {
	start := e.Car.X - e.CameraOffset - maxObstacleSpan
	return e.Obstacles.GetVisible(start, e.ViewWidth+maxObstacleSpan)
}

// Snapshot is the HUD view of the run.
type Snapshot struct {
	CarX      float64
	CarY      int
	Energy    int
	EnergyMax int
	Remaining int
	Distance  float64
	State     State
}

// Snapshot captures the current run for rendering.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		CarX:      e.Car.X,
		CarY:      e.Car.Y,
		Energy:    e.Car.Energy,
		EnergyMax: e.Car.EnergyMax,
		Remaining: e.Obstacles.Len(),
		Distance:  e.cfg.TotalDistance,
		State:     e.state,
	}
}
