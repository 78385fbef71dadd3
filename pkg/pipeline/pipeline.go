// Package pipeline runs the complete migrate → layout → render pipeline.
//
// Centralizing the three stages behind a Runner keeps the CLI commands thin
// and gives every entry point the same caching behavior: layouts and rendered
// artifacts are cached by content hash, while the mobility math itself is
// closed-form and always recomputed.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Lengths: []int{100, 500, 1000},
//	    Control: 250,
//	    Formats: []string{"svg", "png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/virtualgel/gelsim/pkg/cache"
	apperrors "github.com/virtualgel/gelsim/pkg/errors"
	"github.com/virtualgel/gelsim/pkg/gel"
	"github.com/virtualgel/gelsim/pkg/gel/layout"
)

// Defaults shared by CLI flags and config.
const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = layout.DefaultFrameWidth

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = layout.DefaultFrameHeight

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 2.0
)

// DefaultStyle is the default visual style.
const DefaultStyle = "classic"

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidStyles is the set of supported visual styles.
var ValidStyles = map[string]bool{
	"classic": true,
	"plain":   true,
}

// Options contains all configuration for a pipeline run.
type Options struct {
	// Simulation options
	Lengths []int `json:"lengths"`
	Control int   `json:"control,omitempty"`

	// Layout options
	Title  string  `json:"title,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Style   string   `json:"style,omitempty"`
	Scale   float64  `json:"scale,omitempty"` // PNG scale factor

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Migration holds the per-fragment distances.
	Migration gel.Result

	// Layout contains lane positions and colors.
	Layout layout.Layout

	// LayoutHash is the content hash of the serialized layout.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LaneCount   int
	MigrateTime time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// CacheInfo tracks cache hits per stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return apperrors.New(apperrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return apperrors.New(apperrors.ErrCodeInvalidStyle, "invalid style: %q (must be one of: classic, plain)", style)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Lengths) == 0 {
		return gel.ErrNoFragments
	}
	for _, l := range o.Lengths {
		if l <= 0 {
			return fmt.Errorf("length %d: %w", l, gel.ErrNonPositiveLength)
		}
	}
	if o.Control < 0 {
		return fmt.Errorf("control %d: %w", o.Control, gel.ErrNonPositiveLength)
	}

	o.SetLayoutDefaults()
	o.SetRenderDefaults()

	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}

	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Width:       o.Width,
		Height:      o.Height,
		GelLengthCM: gel.GelLengthCM,
		Title:       o.Title,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Style:  o.Style,
		Scale:  o.Scale,
	}
}
