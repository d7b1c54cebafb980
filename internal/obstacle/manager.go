package obstacle

import (
	"math"

	"github.com/charmbracelet/log"

	"chivarun/internal/index"
)

// Manager is the single entry point for obstacle lifecycle: spawning,
// duplicate-checked insertion, removal, and visibility queries. It
// keeps the spatial index and the insertion-ordered active list in
// exact bijection at every point a caller can observe, and populates
// the sprite cache best-effort on spawn.
//
// The manager is not safe for concurrent use; one frame loop drives it.
type Manager struct {
	tree   *index.Tree[Obstacle]
	active []Obstacle
	cache  *SpriteCache
}

// NewManager creates an empty manager sharing the given sprite cache.
func NewManager(cache *SpriteCache) *Manager {
	if cache == nil {
		cache = NewSpriteCache(nil)
	}
	return &Manager{
		tree:  index.New[Obstacle](),
		cache: cache,
	}
}

// LoadBatch spawns every obstacle in the batch. Malformed or duplicate
// records are logged and skipped; a bad record never aborts the batch.
// It returns the number of obstacles actually inserted.
func (m *Manager) LoadBatch(batch []Obstacle) int {
	loaded := 0
	for _, o := range batch {
		if m.Spawn(o) {
			loaded++
		}
	}
	return loaded
}

// Spawn validates and inserts one obstacle. Index and active list are
// updated as one step; asset resolution happens afterwards and its
// failure never rolls the insertion back. Returns false for malformed
// coordinates or a duplicate key.
func (m *Manager) Spawn(o Obstacle) bool {
	if !o.Valid() {
		log.Warn("skipping obstacle with malformed coordinates", "x", o.X, "y", o.Y, "type", o.Type)
		return false
	}

	if !m.tree.Insert(o.Key(), o) {
		log.Info("duplicate obstacle skipped", "key", o.Key())
		return false
	}
	m.active = append(m.active, o)

	// Best-effort sprite preload; the obstacle renders as a
	// placeholder box if this fails.
	if o.Asset != "" {
		if _, err := m.cache.Load(o.Asset); err != nil {
			log.Warn("could not resolve obstacle asset", "asset", o.Asset, "err", err)
		}
	}
	return true
}

// RemoveByCoords removes the obstacle at exactly (x, y) from the index
// and the active list together. Removing an absent coordinate is a
// no-op returning false.
func (m *Manager) RemoveByCoords(x float64, y int) bool {
	key := index.Key{X: x, Y: y}
	if !m.tree.Delete(key) {
		return false
	}
	kept := m.active[:0]
	for _, o := range m.active {
		if o.Key() != key {
			kept = append(kept, o)
		}
	}
	m.active = kept
	return true
}

// GetVisible returns the active obstacles whose x lies inside
// [windowStart, windowStart+windowWidth], in insertion order.
func (m *Manager) GetVisible(windowStart, windowWidth float64) []Obstacle {
	var visible []Obstacle
	end := windowStart + windowWidth
	for _, o := range m.active {
		if o.X >= windowStart && o.X <= end {
			visible = append(visible, o)
		}
	}
	return visible
}

// Nearby visits obstacles with x in [minX, maxX] in coordinate order
// via an in-order range walk of the index, costing O(log n + k).
// Placement validation uses this to test only the neighbourhood of a
// candidate instead of the whole active list.
func (m *Manager) Nearby(minX, maxX float64, visit func(Obstacle) bool) {
	from := index.Key{X: minX, Y: math.MinInt32}
	to := index.Key{X: maxX, Y: math.MaxInt32}
	m.tree.VisitRange(from, to, func(_ index.Key, o Obstacle) bool {
		return visit(o)
	})
}

// Contains reports whether an obstacle exists at exactly (x, y).
func (m *Manager) Contains(x float64, y int) bool {
	_, ok := m.tree.Search(index.Key{X: x, Y: y})
	return ok
}

// ActiveObstacles returns the active list in insertion order. The
// returned slice is the manager's own; callers must not mutate it.
func (m *Manager) ActiveObstacles() []Obstacle {
	return m.active
}

// Len returns the number of active obstacles.
func (m *Manager) Len() int {
	return len(m.active)
}

// Index exposes the spatial index for the debug visualizer. Callers
// must treat it as read-only.
func (m *Manager) Index() *index.Tree[Obstacle] {
	return m.tree
}

// Cache returns the shared sprite cache.
func (m *Manager) Cache() *SpriteCache {
	return m.cache
}
