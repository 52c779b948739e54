package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	// Miss before any Set
	_, hit, err := c.Get(ctx, "stats:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("Get before Set should miss")
	}

	// Round trip
	if err := c.Set(ctx, "stats:abc", []byte(`[{"component_id":1}]`), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "stats:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("Get after Set should hit")
	}
	if string(data) != `[{"component_id":1}]` {
		t.Errorf("Get data = %s", data)
	}

	// Expired entries are treated as misses
	if err := c.Set(ctx, "shortlived", []byte("x"), -time.Second); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	_, hit, _ = c.Get(ctx, "shortlived")
	if hit {
		t.Error("expired entry should miss")
	}

	// Delete is idempotent
	if err := c.Delete(ctx, "stats:abc"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if err := c.Delete(ctx, "stats:abc"); err != nil {
		t.Errorf("second Delete error: %v", err)
	}
	_, hit, _ = c.Get(ctx, "stats:abc")
	if hit {
		t.Error("Get after Delete should miss")
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "k1", []byte("v1"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	_, hit, _ := c.Get(ctx, "k1")
	if hit {
		t.Error("Get after Clear should miss")
	}

	// Cache remains usable after Clear
	if err := c.Set(ctx, "k2", []byte("v2"), 0); err != nil {
		t.Errorf("Set after Clear error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// StatsKey is deterministic and parameter-sensitive
	sk1 := k.StatsKey("hash123", "weight", "undirected")
	sk2 := k.StatsKey("hash123", "weight", "undirected")
	if sk1 != sk2 {
		t.Error("StatsKey should be deterministic")
	}
	if !strings.HasPrefix(sk1, "stats:") {
		t.Errorf("StatsKey should carry the stats prefix: %s", sk1)
	}
	if sk3 := k.StatsKey("hash123", "weight", "directed"); sk1 == sk3 {
		t.Error("Different modes should produce different stats keys")
	}
	if sk4 := k.StatsKey("hash456", "weight", "undirected"); sk1 == sk4 {
		t.Error("Different dataset hashes should produce different stats keys")
	}

	// PathKey includes endpoints
	pk1 := k.PathKey("hash123", "weight", "directed", 1, 4)
	pk2 := k.PathKey("hash123", "weight", "directed", 1, 5)
	if pk1 == pk2 {
		t.Error("Different targets should produce different path keys")
	}
	if !strings.HasPrefix(pk1, "path:") {
		t.Errorf("PathKey should carry the path prefix: %s", pk1)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "ws:roads:")

	// All keys should be prefixed
	sk := scoped.StatsKey("hash123", "weight", "directed")
	if !strings.HasPrefix(sk, "ws:roads:stats:") {
		t.Errorf("ScopedKeyer StatsKey should be prefixed: %s", sk)
	}

	pk := scoped.PathKey("hash123", "weight", "directed", 1, 2)
	if !strings.HasPrefix(pk, "ws:roads:path:") {
		t.Errorf("ScopedKeyer PathKey should be prefixed: %s", pk)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.StatsKey("h", "weight", "directed")
	if !strings.HasPrefix(key, "prefix:stats:") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}
