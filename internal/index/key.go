package index

import "fmt"

// Key identifies a point on the course: X is the cumulative distance
// along the road, Y is the lane baseline. Keys order by X first, then
// by Y on ties, so an in-order walk of the tree visits obstacles in
// course order.
type Key struct {
	X float64
	Y int
}

// Less reports whether k sorts strictly before other.
func (k Key) Less(other Key) bool {
	if k.X != other.X {
		return k.X < other.X
	}
	return k.Y < other.Y
}

// String formats the key the way the debug visualizer prints it.
func (k Key) String() string {
	return fmt.Sprintf("(%g, %d)", k.X, k.Y)
}
