package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	if _, ok, _ := c.Get(ctx, "missing"); ok {
		t.Error("expected miss for unknown key")
	}

	if err := c.Set(ctx, "k", "v", 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	val, ok, err := c.Get(ctx, "k")
	if err != nil || !ok || val != "v" {
		t.Errorf("Get() = %q, %v, %v", val, ok, err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "k", "v", time.Minute)

	now = now.Add(59 * time.Second)
	if _, ok, _ := c.Get(ctx, "k"); !ok {
		t.Error("entry should still be present")
	}

	now = now.Add(time.Second)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("entry should have expired")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry should be removed, len = %d", c.Len())
	}
}

func TestMemoryCacheConcurrent(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = c.Set(ctx, "shared", "value", 0)
				_, _, _ = c.Get(ctx, "shared")
			}
		}()
	}
	wg.Wait()

	if c.Len() != 1 {
		t.Errorf("expected single key, got %d", c.Len())
	}
}

func TestMemoryCacheSweepsUnreadExpiredKeys(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	for i := 0; i < 10000; i++ {
		_ = c.Set(ctx, fmt.Sprintf("k%d", i), "v", time.Minute)
	}
	if c.Len() != 10000 {
		t.Fatalf("expected 10000 entries, got %d", c.Len())
	}

	now = now.Add(time.Hour)
	_ = c.Set(ctx, "fresh", "v", time.Minute)

	if c.Len() != 1 {
		t.Errorf("expired entries should be swept, len = %d", c.Len())
	}
	if _, ok, _ := c.Get(ctx, "fresh"); !ok {
		t.Error("fresh entry should survive the sweep")
	}
}

func TestMemoryCacheKeepsUnexpiredOnSweep(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "short", "v", time.Minute)
	_ = c.Set(ctx, "long", "v", 3*time.Hour)
	_ = c.Set(ctx, "forever", "v", 0)

	now = now.Add(2 * time.Hour)
	_ = c.Set(ctx, "trigger", "v", time.Minute)

	if c.Len() != 3 {
		t.Errorf("expected long, forever and trigger to remain, len = %d", c.Len())
	}
	if _, ok, _ := c.Get(ctx, "short"); ok {
		t.Error("short entry should be gone")
	}
}

func TestBoundedMemoryCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewBoundedMemoryCache(3)
	if err != nil {
		t.Fatalf("NewBoundedMemoryCache() error = %v", err)
	}

	for i := 0; i < 10; i++ {
		_ = c.Set(ctx, fmt.Sprintf("k%d", i), "v", 0)
	}
	if c.Len() != 3 {
		t.Errorf("expected 3 entries, got %d", c.Len())
	}
	if _, ok, _ := c.Get(ctx, "k0"); ok {
		t.Error("oldest entry should be evicted")
	}
	if _, ok, _ := c.Get(ctx, "k9"); !ok {
		t.Error("newest entry should be kept")
	}

	if _, err := NewBoundedMemoryCache(0); err == nil {
		t.Error("expected error for zero size")
	}
}
