package cache

import (
	"sync"

	"github.com/gift-interop/disbridge/pkg/core"
)

// MarkingIndex maps marking text to the entity that last carried it
type MarkingIndex struct {
	mu      sync.RWMutex
	entries map[string]core.EntityIdentifier
}

// NewMarkingIndex creates a new MarkingIndex
func NewMarkingIndex() *MarkingIndex {
	return &MarkingIndex{
		entries: make(map[string]core.EntityIdentifier),
	}
}

// Get retrieves an entity identifier by marking
func (c *MarkingIndex) Get(marking string) (core.EntityIdentifier, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.entries[marking]
	return id, ok
}

// Set stores an entity identifier by marking. Empty markings are ignored.
func (c *MarkingIndex) Set(marking string, id core.EntityIdentifier) {
	if marking == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[marking] = id
}

// Delete removes a marking
func (c *MarkingIndex) Delete(marking string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, marking)
}

// DeleteEntity removes every marking pointing at id
func (c *MarkingIndex) DeleteEntity(id core.EntityIdentifier) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for marking, entry := range c.entries {
		if entry == id {
			delete(c.entries, marking)
		}
	}
}

// Reset clears all markings from the index
func (c *MarkingIndex) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]core.EntityIdentifier)
}
