package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/virtualgel/gelsim/pkg/cache"
	"github.com/virtualgel/gelsim/pkg/gel"
	"github.com/virtualgel/gelsim/pkg/gel/layout"
)

func TestRunner_Execute(t *testing.T) {
	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		Lengths: []int{100, 500, 1000},
		Control: 250,
		Formats: []string{FormatSVG, FormatJSON},
	})
	require.NoError(t, err)

	require.Equal(t, 4, result.Stats.LaneCount)
	require.Len(t, result.Migration.Samples, 3)
	require.NotNil(t, result.Migration.Control)
	require.NotEmpty(t, result.LayoutHash)

	svg := string(result.Artifacts[FormatSVG])
	require.True(t, strings.HasPrefix(svg, "<svg"), "svg artifact should be an SVG document")
	require.Contains(t, svg, "250 bp")

	jsonData := result.Artifacts[FormatJSON]
	l, err := layout.UnmarshalLayout(jsonData)
	require.NoError(t, err)
	require.Len(t, l.Lanes, 4)
	require.True(t, l.Lanes[0].Control, "control should occupy lane 1")

	require.False(t, result.CacheInfo.LayoutHit)
	require.False(t, result.CacheInfo.RenderHit)
}

func TestRunner_Execute_CacheHits(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	opts := Options{
		Lengths: []int{100, 500},
		Formats: []string{FormatSVG},
	}

	first, err := runner.Execute(context.Background(), opts)
	require.NoError(t, err)
	require.False(t, first.CacheInfo.LayoutHit)
	require.False(t, first.CacheInfo.RenderHit)

	second, err := runner.Execute(context.Background(), Options{
		Lengths: []int{100, 500},
		Formats: []string{FormatSVG},
	})
	require.NoError(t, err)
	require.True(t, second.CacheInfo.LayoutHit, "layout should come from cache on the second run")
	require.True(t, second.CacheInfo.RenderHit, "artifacts should come from cache on the second run")
	require.Equal(t, first.Artifacts[FormatSVG], second.Artifacts[FormatSVG])

	// Different input misses.
	third, err := runner.Execute(context.Background(), Options{
		Lengths: []int{100, 900},
		Formats: []string{FormatSVG},
	})
	require.NoError(t, err)
	require.False(t, third.CacheInfo.LayoutHit)
}

func TestRunner_Execute_InvalidOptions(t *testing.T) {
	runner := NewRunner(nil, nil, nil)

	tests := []struct {
		name string
		opts Options
	}{
		{"no lengths", Options{}},
		{"non-positive length", Options{Lengths: []int{100, -1}}},
		{"negative control", Options{Lengths: []int{100}, Control: -5}},
		{"bad format", Options{Lengths: []int{100}, Formats: []string{"gif"}}},
		{"bad style", Options{Lengths: []int{100}, Style: "handdrawn"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runner.Execute(context.Background(), tt.opts)
			require.Error(t, err)
		})
	}
}

func TestRunner_Render_FromSavedLayout(t *testing.T) {
	res, err := gel.Migrate([]int{100, 500, 1000}, 0)
	require.NoError(t, err)
	l := layout.Build(res)

	runner := NewRunner(cache.NewNullCache(), nil, nil)
	defer runner.Close()

	artifacts, err := runner.Render(context.Background(), l, Options{
		Formats: []string{FormatSVG},
		Style:   "plain",
	})
	require.NoError(t, err)
	require.Contains(t, string(artifacts[FormatSVG]), "1000 bp")
}
