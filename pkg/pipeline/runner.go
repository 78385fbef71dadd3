package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/virtualgel/gelsim/pkg/cache"
	"github.com/virtualgel/gelsim/pkg/gel"
	"github.com/virtualgel/gelsim/pkg/gel/layout"
	"github.com/virtualgel/gelsim/pkg/observability"
	"github.com/virtualgel/gelsim/pkg/render/gelsvg"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; multiple
// goroutines can safely share one Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the cache entry lifetime. Zero keeps the package
	// defaults (cache.TTLLayout, cache.TTLArtifact).
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete migrate → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Migrate. Closed-form, never cached.
	migrateStart := time.Now()
	observability.Pipeline().OnMigrateStart(ctx, len(opts.Lengths))
	res, err := gel.Migrate(opts.Lengths, opts.Control)
	observability.Pipeline().OnMigrateComplete(ctx, len(opts.Lengths), time.Since(migrateStart), err)
	if err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	result.Migration = res
	result.Stats.MigrateTime = time.Since(migrateStart)
	result.Stats.LaneCount = res.Lanes()

	r.Logger.Info("computed migration",
		"samples", len(res.Samples),
		"control", opts.Control > 0,
		"duration", result.Stats.MigrateTime)

	// Stage 2: Layout.
	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, res.Lanes())
	l, layoutHit, err := r.LayoutWithCacheInfo(ctx, res, opts)
	observability.Pipeline().OnLayoutComplete(ctx, res.Lanes(), time.Since(layoutStart), err)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"lanes", len(l.Lanes),
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render.
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, layoutHash, renderHit, err := r.RenderWithCacheInfo(ctx, l, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.LayoutHash = layoutHash
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// inputHash keys the layout cache by the actual simulation input.
func inputHash(opts Options) string {
	data, _ := json.Marshal(struct {
		Lengths []int `json:"lengths"`
		Control int   `json:"control"`
	}{opts.Lengths, opts.Control})
	return cache.Hash(data)
}

// LayoutWithCacheInfo builds the lane layout with caching and reports
// whether it came from cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, res gel.Result, opts Options) (layout.Layout, bool, error) {
	opts.SetLayoutDefaults()

	cacheKey := r.Keyer.LayoutKey(inputHash(opts), opts.LayoutKeyOpts())

	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		cached, err := layout.UnmarshalLayout(data)
		if err == nil {
			observability.Cache().OnCacheHit(ctx, "layout")
			return cached, true, nil
		}
		// Corrupt cached layout, fall through and recompute.
	}
	observability.Cache().OnCacheMiss(ctx, "layout")

	l := layout.Build(res,
		layout.WithFrameSize(opts.Width, opts.Height),
		layout.WithTitle(opts.Title),
	)

	if data, err := layout.MarshalLayout(l); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, r.cacheTTL(cache.TTLLayout))
		observability.Cache().OnCacheSet(ctx, "layout", len(data))
	}

	return l, false, nil
}

// RenderWithCacheInfo renders all requested formats with caching. It returns
// the artifacts, the layout content hash used for keying, and whether every
// artifact came from cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, string, bool, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, "", false, err
	}
	if err := ValidateStyle(opts.Style); err != nil {
		return nil, "", false, err
	}

	layoutData, err := layout.MarshalLayout(l)
	if err != nil {
		return nil, "", false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	artifacts := make(map[string][]byte)
	allCached := true
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}
	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, layoutHash, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	style, err := gelsvg.StyleByName(opts.Style)
	if err != nil {
		return nil, "", false, err
	}

	artifacts = make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderArtifact(l, format, style, opts.Scale)
		if err != nil {
			return nil, "", false, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data

		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, r.cacheTTL(cache.TTLArtifact))
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return artifacts, layoutHash, false, nil
}

// Render is a convenience wrapper around RenderWithCacheInfo that discards
// the cache metadata.
func (r *Runner) Render(ctx context.Context, l layout.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// renderArtifact dispatches to the sink for a single format.
func renderArtifact(l layout.Layout, format string, style gelsvg.Style, scale float64) ([]byte, error) {
	switch format {
	case FormatSVG:
		return gelsvg.RenderSVG(l, gelsvg.WithStyle(style)), nil
	case FormatPNG:
		return gelsvg.RenderPNG(l,
			gelsvg.WithPNGSVGOptions(gelsvg.WithStyle(style)),
			gelsvg.WithPNGScale(scale))
	case FormatPDF:
		return gelsvg.RenderPDF(l, gelsvg.WithPDFSVGOptions(gelsvg.WithStyle(style)))
	case FormatJSON:
		return gelsvg.RenderJSON(l)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// cacheTTL returns the configured TTL, falling back to def.
func (r *Runner) cacheTTL(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
