package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Layout.Width != 900 || cfg.Layout.Height != 700 {
		t.Errorf("unexpected default frame: %v x %v", cfg.Layout.Width, cfg.Layout.Height)
	}
	if cfg.Render.Style != "classic" {
		t.Errorf("expected classic style, got %q", cfg.Render.Style)
	}
	if len(cfg.Render.Formats) != 1 || cfg.Render.Formats[0] != "svg" {
		t.Errorf("expected svg default format, got %v", cfg.Render.Formats)
	}
	if cfg.Cache.Backend != CacheBackendFile {
		t.Errorf("expected file cache backend, got %q", cfg.Cache.Backend)
	}
	if cfg.Cache.TTL.Duration != 7*24*time.Hour {
		t.Errorf("expected 7 day TTL, got %v", cfg.Cache.TTL.Duration)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[layout]
width = 1200
height = 800

[render]
style = "plain"
formats = ["svg", "png"]
png_scale = 3.0

[cache]
backend = "redis"
ttl = "48h"

[cache.redis]
addr = "redis.internal:6379"
db = 2
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Layout.Width != 1200 {
		t.Errorf("width = %v, want 1200", cfg.Layout.Width)
	}
	if cfg.Render.Style != "plain" {
		t.Errorf("style = %q, want plain", cfg.Render.Style)
	}
	if len(cfg.Render.Formats) != 2 {
		t.Errorf("formats = %v, want 2 entries", cfg.Render.Formats)
	}
	if cfg.Cache.Backend != CacheBackendRedis {
		t.Errorf("backend = %q, want redis", cfg.Cache.Backend)
	}
	if cfg.Cache.TTL.Duration != 48*time.Hour {
		t.Errorf("ttl = %v, want 48h", cfg.Cache.TTL.Duration)
	}
	if cfg.Cache.Redis.Addr != "redis.internal:6379" || cfg.Cache.Redis.DB != 2 {
		t.Errorf("unexpected redis config: %+v", cfg.Cache.Redis)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[render]\nstyle = \"plain\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Render.Style != "plain" {
		t.Errorf("style = %q, want plain", cfg.Render.Style)
	}
	if cfg.Layout.Width != 900 {
		t.Errorf("width = %v, want default 900", cfg.Layout.Width)
	}
	if cfg.Cache.Backend != CacheBackendFile {
		t.Errorf("backend = %q, want default file", cfg.Cache.Backend)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoad_MissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Render.Style != "classic" {
		t.Errorf("expected defaults, got style %q", cfg.Render.Style)
	}
}

func TestLoad_InvalidBackend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[cache]\nbackend = \"memcached\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown cache backend")
	}
}

func TestCacheDir(t *testing.T) {
	cfg := Default()

	cfg.Cache.Dir = "/tmp/custom-cache"
	dir, err := cfg.CacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/tmp/custom-cache" {
		t.Errorf("dir = %q, want override", dir)
	}

	cfg.Cache.Dir = ""
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	dir, err = cfg.CacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join("/tmp/xdg-cache", "gelsim") {
		t.Errorf("dir = %q, want XDG location", dir)
	}
}
