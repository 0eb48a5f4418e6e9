package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCacheSetGet(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()

	if err := mc.Set(ctx, "k", "hello", time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var got string
	if err := mc.Get(ctx, "k", &got); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "hello" {
		t.Fatalf("got %q, want %q", got, "hello")
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()

	var got string
	if err := mc.Get(ctx, "absent", &got); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("got %v, want ErrCacheMiss", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()

	if err := mc.Set(ctx, "k", "v", time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	var got string
	if err := mc.Get(ctx, "k", &got); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("got %v, want ErrCacheMiss after expiry", err)
	}
}

func TestMemoryCacheJSONRoundtrip(t *testing.T) {
	type payload struct {
		Symbol string `json:"symbol"`
		Count  int    `json:"count"`
	}
	ctx := context.Background()
	mc := NewMemoryCache()

	if err := mc.Set(ctx, "k", payload{Symbol: "700.HK", Count: 3}, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	var got payload
	if err := mc.Get(ctx, "k", &got); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Symbol != "700.HK" || got.Count != 3 {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestMemoryCacheLRUEviction(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(WithMemoryMaxSize(2))

	if err := mc.Set(ctx, "a", "1", time.Minute); err != nil {
		t.Fatalf("Set a: %v", err)
	}
	time.Sleep(time.Millisecond)
	if err := mc.Set(ctx, "b", "2", time.Minute); err != nil {
		t.Fatalf("Set b: %v", err)
	}
	time.Sleep(time.Millisecond)

	// Touch "a" so "b" becomes least recently used.
	var s string
	if err := mc.Get(ctx, "a", &s); err != nil {
		t.Fatalf("Get a: %v", err)
	}
	time.Sleep(time.Millisecond)

	if err := mc.Set(ctx, "c", "3", time.Minute); err != nil {
		t.Fatalf("Set c: %v", err)
	}

	if err := mc.Get(ctx, "b", &s); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("b should have been evicted, got %v", err)
	}
	if err := mc.Get(ctx, "a", &s); err != nil {
		t.Fatalf("a should survive eviction: %v", err)
	}
}

func TestMemoryCacheDeleteAndExists(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()

	if err := mc.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	ok, err := mc.Exists(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Exists = %v, %v; want true", ok, err)
	}
	if err := mc.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	ok, err = mc.Exists(ctx, "k")
	if err != nil || ok {
		t.Fatalf("Exists after delete = %v, %v; want false", ok, err)
	}
}
