package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestFileCache_SetGet(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Errorf("Get(missing) = hit=%v err=%v, want miss", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("band data"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get = hit=%v err=%v, want hit", hit, err)
	}
	if string(data) != "band data" {
		t.Errorf("Get = %q", data)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete should miss")
	}

	// Deleting a missing key is fine.
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete(missing) = %v", err)
	}
}

func TestFileCache_Expiration(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(30 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, err := c.Get(ctx, "k"); err != nil || hit {
		t.Errorf("NullCache Get = hit=%v err=%v, want miss", hit, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	lk1 := k.LayoutKey("hash1", LayoutKeyOpts{Width: 900, Height: 700})
	lk2 := k.LayoutKey("hash1", LayoutKeyOpts{Width: 1200, Height: 700})
	if lk1 == lk2 {
		t.Error("different LayoutKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(lk1, "layout:") {
		t.Errorf("LayoutKey = %q, want layout: prefix", lk1)
	}

	ak1 := k.ArtifactKey("hash1", ArtifactKeyOpts{Format: "svg", Style: "classic"})
	ak2 := k.ArtifactKey("hash1", ArtifactKeyOpts{Format: "png", Style: "classic"})
	if ak1 == ak2 {
		t.Error("different formats should produce different keys")
	}
	if !strings.HasPrefix(ak1, "artifact:") {
		t.Errorf("ArtifactKey = %q, want artifact: prefix", ak1)
	}

	// Stable for identical inputs.
	if ak1 != k.ArtifactKey("hash1", ArtifactKeyOpts{Format: "svg", Style: "classic"}) {
		t.Error("identical inputs should produce identical keys")
	}
}

func TestHash(t *testing.T) {
	h := Hash([]byte("gel"))
	if len(h) != 64 {
		t.Errorf("Hash length = %d, want 64", len(h))
	}
	if h == Hash([]byte("gel2")) {
		t.Error("different inputs should hash differently")
	}
}
