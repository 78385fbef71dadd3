package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/virtualgel/gelsim/config"
	"github.com/virtualgel/gelsim/pkg/cache"
)

func TestParseLengths(t *testing.T) {
	lengths, err := parseLengths([]string{"100", "500", "1000"})
	if err != nil {
		t.Fatalf("parseLengths: %v", err)
	}
	if len(lengths) != 3 || lengths[2] != 1000 {
		t.Errorf("lengths = %v", lengths)
	}

	for _, bad := range []string{"abc", "-5", "0", "1.5"} {
		if _, err := parseLengths([]string{bad}); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestParseFormats(t *testing.T) {
	fallback := []string{"svg"}

	if got := parseFormats("", fallback); len(got) != 1 || got[0] != "svg" {
		t.Errorf("empty input should keep fallback, got %v", got)
	}
	got := parseFormats("png, pdf", fallback)
	if len(got) != 2 || got[0] != "png" || got[1] != "pdf" {
		t.Errorf("got %v, want [png pdf]", got)
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output string
		want   string
	}{
		{"", "gel"},
		{"out.svg", "out"},
		{"out.png", "out"},
		{"dir/run.json", "dir/run"},
		{"out.dat", "out.dat"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output); got != tt.want {
			t.Errorf("basePath(%q) = %q, want %q", tt.output, got, tt.want)
		}
	}
}

func TestWriteArtifacts_SingleFormat(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{"svg": []byte("<svg/>")}

	out := filepath.Join(dir, "run")
	paths, err := writeArtifacts(artifacts, []string{"svg"}, out)
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}
	if len(paths) != 1 || paths[0] != out+".svg" {
		t.Errorf("paths = %v", paths)
	}
	data, err := os.ReadFile(paths[0])
	if err != nil || string(data) != "<svg/>" {
		t.Errorf("written data = %q, err = %v", data, err)
	}
}

func TestWriteArtifacts_MultipleFormats(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{
		"svg":  []byte("<svg/>"),
		"json": []byte("{}"),
	}

	out := filepath.Join(dir, "run.svg")
	paths, err := writeArtifacts(artifacts, []string{"svg", "json"}, out)
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("paths = %v", paths)
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing artifact %s", p)
		}
	}
	if paths[0] != filepath.Join(dir, "run.svg") || paths[1] != filepath.Join(dir, "run.json") {
		t.Errorf("unexpected paths: %v", paths)
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := map[string]bool{
		"simulate":   false,
		"render":     false,
		"cache":      false,
		"completion": false,
	}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestNewCache_Backends(t *testing.T) {
	c := New(io.Discard, LogInfo)

	got, err := c.newCache(true)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got.(*cache.NullCache); !ok {
		t.Errorf("no-cache should yield a NullCache, got %T", got)
	}

	c.Config.Cache.Backend = config.CacheBackendNone
	got, err = c.newCache(false)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got.(*cache.NullCache); !ok {
		t.Errorf("backend none should yield a NullCache, got %T", got)
	}

	c.Config.Cache.Backend = config.CacheBackendFile
	c.Config.Cache.Dir = t.TempDir()
	got, err = c.newCache(false)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got.(*cache.FileCache); !ok {
		t.Errorf("backend file should yield a FileCache, got %T", got)
	}
}

func TestPipelineOptions_FromConfig(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.Config.Layout.Width = 1200
	c.Config.Render.Style = "plain"
	c.Config.Render.Formats = []string{"svg", "png"}

	opts := c.pipelineOptions()
	if opts.Width != 1200 {
		t.Errorf("width = %v", opts.Width)
	}
	if opts.Style != "plain" {
		t.Errorf("style = %q", opts.Style)
	}
	if len(opts.Formats) != 2 {
		t.Errorf("formats = %v", opts.Formats)
	}

	// The slice is copied, not aliased.
	opts.Formats[0] = "pdf"
	if c.Config.Render.Formats[0] != "svg" {
		t.Error("pipelineOptions should copy the formats slice")
	}
}
