package obstacle

import (
	"sync"

	"chivarun/internal/draw"
)

// Resolver turns an asset reference into a drawable sprite. It is
// supplied by the rendering layer; the cache never fails an operation
// because resolution failed.
type Resolver func(ref string) (*draw.Sprite, error)

// SpriteCache maps asset references to resolved sprites. It lives for
// the whole session and never evicts. Population on first reference is
// the only mutation, guarded by a mutex so multiple SSH sessions can
// share one cache; reads after population are lock-protected but
// uncontended in practice.
type SpriteCache struct {
	mu      sync.Mutex
	resolve Resolver
	sprites map[string]*draw.Sprite
}

// NewSpriteCache creates an empty cache backed by the given resolver.
// A nil resolver yields a cache where every lookup misses, which
// renders every obstacle as a placeholder box.
func NewSpriteCache(resolve Resolver) *SpriteCache {
	return &SpriteCache{
		resolve: resolve,
		sprites: make(map[string]*draw.Sprite),
	}
}

// Load returns the sprite for ref, resolving and caching it on first
// reference. A failed resolution returns (nil, error); the failure is
// not cached, so a later reference may retry.
func (c *SpriteCache) Load(ref string) (*draw.Sprite, error) {
	if ref == "" {
		return nil, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.sprites[ref]; ok {
		return s, nil
	}
	if c.resolve == nil {
		return nil, nil
	}
	s, err := c.resolve(ref)
	if err != nil {
		return nil, err
	}
	c.sprites[ref] = s
	return s, nil
}

// Get returns a previously resolved sprite without triggering
// resolution.
func (c *SpriteCache) Get(ref string) (*draw.Sprite, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sprites[ref]
	return s, ok
}

// Len returns the number of resolved entries.
func (c *SpriteCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sprites)
}
