package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chivarun/internal/config"
	"chivarun/internal/obstacle"
)

func testCourse() config.Course {
	return config.Course{
		Speed:         100,
		JumpDistance:  80,
		Energy:        100,
		TotalDistance: 2000,
		Road:          config.Road{XMin: 0, XMax: 2000, YMin: 31, YMax: 431},
	}
}

func newTestEngine(t *testing.T, batch []obstacle.Obstacle) *Engine {
	t.Helper()
	return NewEngine(testCourse(), batch, nil)
}

func TestEngine_StateTransitions(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	require.Equal(t, StateInit, e.State())

	var seen []State
	e.OnStateChange = func(s State) { seen = append(seen, s) }

	e.Resume() // only valid from paused
	assert.Equal(t, StateInit, e.State())

	e.Start()
	assert.Equal(t, StateRunning, e.State())
	e.Pause()
	assert.Equal(t, StatePaused, e.State())
	e.TogglePause()
	assert.Equal(t, StateRunning, e.State())
	e.TogglePause()
	assert.Equal(t, StatePaused, e.State())
	e.EnterGodMode()
	assert.Equal(t, StateGodMode, e.State())
	e.ExitGodMode()
	assert.Equal(t, StatePaused, e.State())

	assert.Equal(t, []State{StateRunning, StatePaused, StateRunning, StatePaused, StateGodMode, StatePaused}, seen)
}

func TestEngine_UpdateOnlyWhileRunning(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	e.Update(1.0)
	assert.Equal(t, 0.0, e.Car.X, "init state must not advance the car")

	e.Start()
	e.Update(1.0)
	assert.Equal(t, 100.0, e.Car.X)

	e.Pause()
	e.Update(1.0)
	assert.Equal(t, 100.0, e.Car.X, "paused state must not advance the car")
}

func TestEngine_CollisionDamagesAndRemoves(t *testing.T) {
	t.Parallel()

	// Obstacle directly in the car's lane, just ahead of the start.
	obs := obstacle.Obstacle{X: 30, Y: 50, Type: "cone", Damage: 10}
	e := newTestEngine(t, []obstacle.Obstacle{obs})
	e.Car.Y = 50

	e.Start()
	e.Update(0.1) // car reaches x=10; hitbox [10,74] overlaps cone at [30,54]

	assert.Equal(t, 90, e.Car.Energy)
	assert.False(t, e.Obstacles.Contains(30, 50), "damaging obstacle must be removed")
	assert.Equal(t, 0, e.Obstacles.Len())
}

func TestEngine_JumpAvoidsDamage(t *testing.T) {
	t.Parallel()

	obs := obstacle.Obstacle{X: 30, Y: 50, Type: "cone", Damage: 10}
	e := newTestEngine(t, []obstacle.Obstacle{obs})
	e.Car.Y = 50

	e.Start()
	e.Car.Jump()
	e.Update(0.1)

	assert.Equal(t, 100, e.Car.Energy, "airborne car takes no damage")
	assert.True(t, e.Obstacles.Contains(30, 50), "untouched obstacle stays active")
}

func TestEngine_DifferentLaneNoCollision(t *testing.T) {
	t.Parallel()

	obs := obstacle.Obstacle{X: 30, Y: 300, Type: "cone", Damage: 10}
	e := newTestEngine(t, []obstacle.Obstacle{obs})
	e.Car.Y = 50

	e.Start()
	e.Update(0.1)

	assert.Equal(t, 100, e.Car.Energy)
	assert.True(t, e.Obstacles.Contains(30, 300))
}

func TestEngine_OffscreenCleanup(t *testing.T) {
	t.Parallel()

	// An obstacle in another lane so it never collides. Once the car
	// passes it by more than cameraOffset + width, it is dropped.
	obs := obstacle.Obstacle{X: 100, Y: 300, Type: "cone", Damage: 10}
	e := newTestEngine(t, []obstacle.Obstacle{obs})
	e.Car.Y = 50
	e.Start()

	// Move the car just past the obstacle: still on screen.
	e.Car.X = 150
	e.Update(0.001)
	assert.True(t, e.Obstacles.Contains(100, 300))

	// cone width 24; right edge leaves the screen when
	// x - carX + 64 + 24 < 0, i.e. carX > 188.
	e.Car.X = 200
	e.Update(0.001)
	assert.False(t, e.Obstacles.Contains(100, 300), "fully off-screen obstacle must be removed")
}

func TestEngine_GameOverOnZeroEnergy(t *testing.T) {
	t.Parallel()

	obs := obstacle.Obstacle{X: 30, Y: 50, Type: "hole", Damage: 100}
	e := newTestEngine(t, []obstacle.Obstacle{obs})
	e.Car.Y = 50

	e.Start()
	e.Update(0.1)

	assert.Equal(t, StateGameOver, e.State())
	assert.False(t, e.ReachedGoal())
}

func TestEngine_WinAtTotalDistance(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	e.Start()
	for i := 0; i < 25 && e.State() == StateRunning; i++ {
		e.Update(1.0)
	}
	assert.Equal(t, StateGameOver, e.State())
	assert.True(t, e.ReachedGoal())
}

func TestEngine_ResetRebuildsEverything(t *testing.T) {
	t.Parallel()

	batch := []obstacle.Obstacle{
		{X: 500, Y: 300, Type: "cone", Damage: 10},
		{X: 800, Y: 300, Type: "hole", Damage: 20},
	}
	e := newTestEngine(t, batch)
	e.Start()
	e.Car.X = 600
	e.Car.Energy = 40
	require.True(t, e.RemoveObstacleByCoords(500, 300))

	e.Reset()
	assert.Equal(t, StateInit, e.State())
	assert.Equal(t, 0.0, e.Car.X)
	assert.Equal(t, 100, e.Car.Energy)
	assert.Equal(t, 2, e.Obstacles.Len(), "reset reloads the original batch")
	assert.True(t, e.Obstacles.Contains(500, 300))
}

func TestEngine_StartFromGameOverResets(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	e.Start()
	e.Car.Energy = 0
	e.Car.X = 100
	e.Update(0.001)
	require.Equal(t, StateGameOver, e.State())

	e.Start()
	assert.Equal(t, StateRunning, e.State())
	assert.Equal(t, 100, e.Car.Energy)
}

func TestCanPlace_Bounds(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	assert.True(t, e.CanPlace(500, 200, DefaultPlaceMargin, "cone"))
	assert.False(t, e.CanPlace(-10, 200, DefaultPlaceMargin, "cone"), "left of the road")
	assert.False(t, e.CanPlace(2500, 200, DefaultPlaceMargin, "cone"), "past the road end")
	assert.False(t, e.CanPlace(500, 10, DefaultPlaceMargin, "cone"), "above the road")
	assert.False(t, e.CanPlace(500, 900, DefaultPlaceMargin, "cone"), "below the road")
}

func TestCanPlace_OverlapAndClearance(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, []obstacle.Obstacle{
		{X: 500, Y: 200, Type: "cone", Damage: 10},
	})

	assert.False(t, e.CanPlace(500, 200, DefaultPlaceMargin, "cone"), "same spot")
	assert.False(t, e.CanPlace(510, 200, DefaultPlaceMargin, "cone"), "overlapping boxes")
	assert.False(t, e.CanPlace(526, 200, DefaultPlaceMargin, "cone"), "inside the margin")
	assert.True(t, e.CanPlace(600, 200, DefaultPlaceMargin, "cone"), "clear of the existing cone")
	assert.True(t, e.CanPlace(500, 350, DefaultPlaceMargin, "cone"), "different lane is clear")
}

func TestCanPlace_ReadOnly(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, []obstacle.Obstacle{
		{X: 500, Y: 200, Type: "cone", Damage: 10},
	})
	before := e.Obstacles.Index().PreOrder()

	e.CanPlace(500, 200, DefaultPlaceMargin, "cone")
	e.CanPlace(900, 200, DefaultPlaceMargin, "hole")

	assert.Equal(t, before, e.Obstacles.Index().PreOrder(), "CanPlace must not mutate the index")
	assert.Equal(t, 1, e.Obstacles.Len())
}

func TestPlaceObstacle_GodModeOnly(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	o := obstacle.Obstacle{X: 500, Y: 200, Type: "cone", Damage: 10}

	assert.False(t, e.PlaceObstacle(o), "placement outside god mode")

	var placed []obstacle.Obstacle
	e.OnObstaclePlaced = func(po obstacle.Obstacle) { placed = append(placed, po) }

	e.Start()
	e.Pause()
	e.EnterGodMode()
	assert.True(t, e.PlaceObstacle(o))
	assert.False(t, e.PlaceObstacle(o), "duplicate coordinate")
	require.Len(t, placed, 1)
	assert.Equal(t, 500.0, placed[0].X)
}

func TestCar_JumpConsumesDistance(t *testing.T) {
	t.Parallel()

	c := NewCar(0, 50, 100, 80, 100)
	c.Jump()
	require.True(t, c.Jumping())

	// 0.5s at speed 100 covers 50 of the 80 jump units.
	c.Update(0.5)
	assert.True(t, c.Jumping())
	assert.Equal(t, 50.0, c.X)

	// The jump ends exactly at 80 even though a full step is 100.
	c.Update(1.0)
	assert.False(t, c.Jumping())
	assert.Equal(t, 80.0, c.X)
}

func TestSnapshot(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, []obstacle.Obstacle{
		{X: 500, Y: 300, Type: "cone", Damage: 10},
	})
	s := e.Snapshot()
	assert.Equal(t, 100, s.Energy)
	assert.Equal(t, 1, s.Remaining)
	assert.Equal(t, 2000.0, s.Distance)
	assert.Equal(t, StateInit, s.State)
}
