package server

import (
	"fmt"
	"sync"

	"github.com/webptools/webp-frame-mcp/internal/frame"
)

// FrameCache provides thread-safe storage of open frames keyed by handle.
//
// A handle is issued by Put when a frame is opened and stays valid until
// Evict or Clear. Frames themselves are immutable, so concurrent reads of a
// cached frame need no further locking.
type FrameCache struct {
	mu     sync.RWMutex
	frames map[string]frame.Frame
	next   int
}

// NewFrameCache creates and initializes a new empty frame cache.
func NewFrameCache() *FrameCache {
	return &FrameCache{
		frames: make(map[string]frame.Frame),
	}
}

// Put stores a frame and returns its newly issued handle.
func (c *FrameCache) Put(f frame.Frame) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.next++
	handle := fmt.Sprintf("frame-%d", c.next)
	c.frames[handle] = f

	return handle
}

// Get returns the frame for a handle, or false if the handle is unknown.
func (c *FrameCache) Get(handle string) (frame.Frame, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, ok := c.frames[handle]

	return f, ok
}

// Evict removes a frame from the cache by its handle.
//
// If the handle is not in the cache, this method does nothing. The decoded
// buffer is released once no in-flight call references it.
func (c *FrameCache) Evict(handle string) {
	c.mu.Lock()
	delete(c.frames, handle)
	c.mu.Unlock()
}

// Clear removes all frames from the cache, freeing the associated memory.
func (c *FrameCache) Clear() {
	c.mu.Lock()
	c.frames = make(map[string]frame.Frame)
	c.mu.Unlock()
}

// Len returns the number of open frames.
func (c *FrameCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.frames)
}
