// file: internal/cache/cache_test.go
// version: 1.1.0
// guid: 1b3c5d7e-9f0a-4b2c-9d4e-6f8a0b1c3d5e

package cache

import (
	"sync"
	"testing"
	"time"
)

func TestPutGet(t *testing.T) {
	c := New[string](time.Minute)
	c.Put("k", "v")

	got, ok := c.Get("k")
	if !ok || got != "v" {
		t.Errorf("Get(k) = (%q, %v), want (v, true)", got, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Error("Get(missing) reported a hit")
	}
}

func TestExpiry(t *testing.T) {
	c := New[int](20 * time.Millisecond)
	c.Put("k", 42)

	if _, ok := c.Get("k"); !ok {
		t.Fatal("entry expired immediately")
	}
	time.Sleep(50 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("entry survived past its TTL")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after lazy eviction, want 0", c.Len())
	}
}

func TestPutEvictsExpired(t *testing.T) {
	c := New[int](20 * time.Millisecond)
	c.Put("old", 1)
	time.Sleep(50 * time.Millisecond)

	c.Put("new", 2)
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (expired entry swept on Put)", c.Len())
	}
}

func TestDropAndFlush(t *testing.T) {
	c := New[int](time.Minute)
	c.Put("a", 1)
	c.Put("b", 2)

	c.Drop("a")
	if _, ok := c.Get("a"); ok {
		t.Error("dropped key still present")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}

	c.Flush()
	if c.Len() != 0 {
		t.Errorf("Len() = %d after Flush, want 0", c.Len())
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New[int](time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := string(rune('a' + n%4))
			for j := 0; j < 100; j++ {
				c.Put(key, j)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()
	if c.Len() != 4 {
		t.Errorf("Len() = %d, want 4", c.Len())
	}
}
