// Package physics provides the axis-aligned collision primitives used
// for hitbox testing between the car and course obstacles.
package physics

// Rect is an axis-aligned box in world coordinates. X,Y is the
// top-left corner; Y grows downward.
type Rect struct {
	X, Y, W, H float64
}

// Overlaps reports whether two rects intersect. Touching edges do not
// count as an overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Contains reports whether the point (x, y) lies inside the rect.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Expand grows the rect by m on every side.
func (r Rect) Expand(m float64) Rect {
	return Rect{X: r.X - m, Y: r.Y - m, W: r.W + 2*m, H: r.H + 2*m}
}
