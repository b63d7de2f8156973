package server

import (
	"sync"
	"testing"

	"github.com/webptools/webp-frame-mcp/internal/frame"
)

func TestFrameCache_PutGet(t *testing.T) {
	c := NewFrameCache()

	h1 := c.Put(frame.PlaceholderFrame{})
	h2 := c.Put(frame.PlaceholderFrame{})
	if h1 == h2 {
		t.Errorf("handles must be unique, both are %q", h1)
	}

	if _, ok := c.Get(h1); !ok {
		t.Errorf("Get(%q) missed", h1)
	}
	if _, ok := c.Get("frame-999"); ok {
		t.Error("Get of unknown handle must miss")
	}
	if c.Len() != 2 {
		t.Errorf("Len: got %d, want 2", c.Len())
	}
}

func TestFrameCache_Evict(t *testing.T) {
	c := NewFrameCache()
	h := c.Put(frame.PlaceholderFrame{})

	c.Evict(h)
	if _, ok := c.Get(h); ok {
		t.Error("frame still present after Evict")
	}

	// Evicting an unknown handle is a no-op.
	c.Evict("frame-999")
}

func TestFrameCache_Clear(t *testing.T) {
	c := NewFrameCache()
	c.Put(frame.PlaceholderFrame{})
	c.Put(frame.PlaceholderFrame{})

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len after Clear: got %d, want 0", c.Len())
	}
}

func TestFrameCache_Concurrent(t *testing.T) {
	c := NewFrameCache()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				h := c.Put(frame.PlaceholderFrame{})
				if _, ok := c.Get(h); !ok {
					t.Errorf("Get(%q) missed its own Put", h)
					return
				}
				c.Evict(h)
			}
		}()
	}
	wg.Wait()

	if c.Len() != 0 {
		t.Errorf("Len after churn: got %d, want 0", c.Len())
	}
}
