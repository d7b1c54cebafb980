// Package game drives the run: the player's car, the state machine,
// collision handling and interactive obstacle placement.
package game

import (
	"chivarun/internal/obstacle"
	"chivarun/internal/physics"
)

// Car dimensions in world units.
const (
	CarWidth  = 64.0
	CarHeight = 32.0
)

// Car is the player's vehicle. X advances along the course; Y is the
// baseline of the lane the car drives in.
type Car struct {
	X float64
	Y int

	Speed        float64 // world units per second
	JumpDistance float64 // distance covered per jump
	Energy       int
	EnergyMax    int

	jumping       bool
	jumpRemaining float64
}

// NewCar creates a car at the given start position.
func NewCar(x float64, y int, speed, jumpDistance float64, energy int) *Car {
	return &Car{
		X:            x,
		Y:            y,
		Speed:        speed,
		JumpDistance: jumpDistance,
		Energy:       energy,
		EnergyMax:    energy,
	}
}

// MoveUp shifts the car one lane up.
func (c *Car) MoveUp(laneHeight int) {
	c.Y -= laneHeight
}

// MoveDown shifts the car one lane down.
func (c *Car) MoveDown(laneHeight int) {
	c.Y += laneHeight
}

// Jump starts a jump. While airborne the car takes no damage. Starting
// a jump mid-air restarts the remaining distance.
func (c *Car) Jump() {
	c.jumping = true
	c.jumpRemaining = c.JumpDistance
}

// Jumping reports whether the car is airborne.
func (c *Car) Jumping() bool {
	return c.jumping
}

// Update advances the car by speed*dt, consuming jump distance first
// so the car lands exactly where the jump ends.
func (c *Car) Update(dt float64) {
	step := c.Speed * dt
	if c.jumping {
		if step > c.jumpRemaining {
			step = c.jumpRemaining
		}
		c.jumpRemaining -= step
		if c.jumpRemaining <= 0 {
			c.jumping = false
		}
	}
	c.X += step
}

// Collide applies an obstacle hit. Jumping cars pass over unharmed.
// It returns true when damage was actually taken, which is the signal
// to remove the obstacle.
func (c *Car) Collide(o obstacle.Obstacle) bool {
	if c.jumping {
		return false
	}
	c.Energy -= o.Damage
	if c.Energy < 0 {
		c.Energy = 0
	}
	return true
}

// Alive reports whether the car still has energy.
func (c *Car) Alive() bool {
	return c.Energy > 0
}

// Hitbox returns the car's collision rect; Y is the baseline, so the
// box extends upward, clamped to the top of the road.
func (c *Car) Hitbox(roadYMin int) physics.Rect {
	top := float64(c.Y) - CarHeight
	if top < float64(roadYMin) {
		top = float64(roadYMin)
	}
	return physics.Rect{X: c.X, Y: top, W: CarWidth, H: CarHeight}
}
