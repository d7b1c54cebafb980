// Package obstacle manages the lifecycle of course obstacles: the AVL
// spatial index, the insertion-ordered active list kept in bijection
// with it, and the shared sprite cache.
package obstacle

import (
	"math"

	"chivarun/internal/index"
	"chivarun/internal/physics"
)

// Obstacle is one hazard on the course. X is the cumulative distance
// along the road, Y the lane baseline the obstacle sits on. Obstacles
// are value-like: once spawned they are never mutated, only removed.
type Obstacle struct {
	X      float64 `yaml:"x"`
	Y      int     `yaml:"y"`
	Type   string  `yaml:"type"`
	Damage int     `yaml:"damage"`
	Asset  string  `yaml:"asset,omitempty"`
}

// Key returns the coordinate key identifying this obstacle in the
// spatial index.
func (o Obstacle) Key() index.Key {
	return index.Key{X: o.X, Y: o.Y}
}

// Valid reports whether the coordinate is well-formed: a finite x.
// Records failing this are skipped at spawn time.
func (o Obstacle) Valid() bool {
	return !math.IsNaN(o.X) && !math.IsInf(o.X, 0)
}

// Default hitbox sizes per obstacle type, in world units, used when no
// sprite is resolved.
var defaultSizes = map[string][2]float64{
	"cone": {24, 24},
	"hole": {40, 16},
}

// fallbackW, fallbackH cover unknown obstacle types.
const (
	fallbackW = 48.0
	fallbackH = 48.0
)

// DefaultSize returns the default width and height for an obstacle
// type.
func DefaultSize(typ string) (w, h float64) {
	if s, ok := defaultSizes[typ]; ok {
		return s[0], s[1]
	}
	return fallbackW, fallbackH
}

// Size returns the obstacle's visual dimensions: the cached sprite's
// size when one is resolved, the per-type default otherwise.
func (o Obstacle) Size(cache *SpriteCache) (w, h float64) {
	if o.Asset != "" && cache != nil {
		if s, ok := cache.Get(o.Asset); ok {
			return float64(s.Width()), float64(s.Height())
		}
	}
	return DefaultSize(o.Type)
}

// Hitbox returns the collision rect. Y is the baseline the obstacle
// stands on, so the box extends upward from it.
func (o Obstacle) Hitbox(cache *SpriteCache) physics.Rect {
	w, h := o.Size(cache)
	return physics.Rect{X: o.X, Y: float64(o.Y) - h, W: w, H: h}
}
