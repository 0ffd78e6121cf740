package cache

import (
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	c := NewLRU[string](4, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Error("expected miss on empty cache")
	}

	c.Set("a", "one")
	if v, ok := c.Get("a"); !ok || v != "one" {
		t.Errorf("expected hit with 'one', got %q (hit=%v)", v, ok)
	}

	c.Set("a", "two")
	if v, _ := c.Get("a"); v != "two" {
		t.Errorf("set on existing key must overwrite, got %q", v)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", c.Len())
	}
}

func TestEviction(t *testing.T) {
	c := NewLRU[int](2, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	// Touch "a" so "b" becomes the eviction candidate.
	c.Get("a")
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("least recently used entry should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("recently used entry should survive eviction")
	}
	if c.Len() != 2 {
		t.Errorf("expected cache at capacity 2, got %d", c.Len())
	}
}

func TestExpiry(t *testing.T) {
	c := NewLRU[int](4, 5*time.Millisecond)
	c.Set("a", 1)
	time.Sleep(10 * time.Millisecond)

	if _, ok := c.Get("a"); ok {
		t.Error("expired entry must not be returned")
	}
}

func TestCleanExpired(t *testing.T) {
	c := NewLRU[int](4, 5*time.Millisecond)
	c.Set("a", 1)
	c.Set("b", 2)
	time.Sleep(10 * time.Millisecond)

	if removed := c.CleanExpired(); removed != 2 {
		t.Errorf("expected 2 expired entries removed, got %d", removed)
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache after cleanup, got %d", c.Len())
	}
}
