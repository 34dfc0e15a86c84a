package cache

import (
	"sync"

	"github.com/gift-interop/disbridge/pkg/core"
)

// EntityCache holds the last known state of every entity seen on the bridge.
// Entries are copies; callers may not share slices with the cache.
type EntityCache struct {
	m        sync.Mutex
	entities map[core.EntityIdentifier]core.EntityState
}

func NewEntityCache() *EntityCache {
	return &EntityCache{
		entities: make(map[core.EntityIdentifier]core.EntityState),
	}
}

// Reset drops every cached entity.
func (c *EntityCache) Reset() {
	c.m.Lock()
	defer c.m.Unlock()
	c.entities = make(map[core.EntityIdentifier]core.EntityState)
}

func (c *EntityCache) Get(id core.EntityIdentifier) (core.EntityState, bool) {
	c.m.Lock()
	defer c.m.Unlock()
	if es, ok := c.entities[id]; ok {
		return es, true
	}
	return core.EntityState{}, false
}

// Put stores es under its own identifier, replacing any previous state.
func (c *EntityCache) Put(es core.EntityState) {
	es.ArticulationParameters = append([]core.ArticulationParameter(nil), es.ArticulationParameters...)

	c.m.Lock()
	defer c.m.Unlock()
	c.entities[es.ID] = es
}

// Remove drops the entity and reports whether it was present.
func (c *EntityCache) Remove(id core.EntityIdentifier) bool {
	c.m.Lock()
	defer c.m.Unlock()
	_, ok := c.entities[id]
	delete(c.entities, id)
	return ok
}

func (c *EntityCache) Len() int {
	c.m.Lock()
	defer c.m.Unlock()
	return len(c.entities)
}

// SafeCounter is a thread-safe counter
type SafeCounter struct {
	mu sync.Mutex
	v  int
}

func (c *SafeCounter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v
}

func (c *SafeCounter) Set(v int) {
	c.mu.Lock()
	c.v = v
	c.mu.Unlock()
}

// Add increases the counter by n.
func (c *SafeCounter) Add(n int) {
	c.mu.Lock()
	c.v += n
	c.mu.Unlock()
}
