// Package layout computes lane geometry for a gel visualization.
//
// The layout stage sits between the mobility calculator and the renderers:
// it assigns each fragment a lane, a horizontal position, and a color, and
// packages everything a sink needs into a serializable Layout. Renderers
// consume layouts without ever touching gel.Result directly, so a saved
// layout file can be re-rendered later with different styles or formats.
//
// All positions are expressed in unit coordinates: x in [0, 1] across the
// gel, y in [0, 1] down the migration axis (0 = well, 1 = maximum travel).
// Mapping to pixels is the renderer's job.
package layout

import (
	"github.com/google/uuid"

	"github.com/virtualgel/gelsim/pkg/gel"
)

// Default frame dimensions in pixels.
const (
	DefaultFrameWidth  = 900.0
	DefaultFrameHeight = 700.0
)

// DefaultTitle is used when no title option is given.
const DefaultTitle = "Virtual Gel Electrophoresis"

// Geometry holds the proportions of the gel schematic, in unit coordinates.
type Geometry struct {
	// LaneWidth is the width of wells and bands.
	LaneWidth float64 `json:"lane_width"`
	// BandHeight is the height of a band rectangle.
	BandHeight float64 `json:"band_height"`
	// WellHeight is the height of a well rectangle.
	WellHeight float64 `json:"well_height"`
	// WellOffset is the vertical position of the wells, above the 0 line.
	WellOffset float64 `json:"well_offset"`
	// StartX is the x position of the first lane's center.
	StartX float64 `json:"start_x"`
	// SpanX is the horizontal span distributed across the lanes.
	SpanX float64 `json:"span_x"`
	// ScaleX is the x position of the ruled distance scale.
	ScaleX float64 `json:"scale_x"`
	// ScaleTicks is the number of tick marks on the scale.
	ScaleTicks int `json:"scale_ticks"`
}

// DefaultGeometry returns the standard gel proportions.
func DefaultGeometry() Geometry {
	return Geometry{
		LaneWidth:  0.08,
		BandHeight: 0.03,
		WellHeight: 0.02,
		WellOffset: -0.03,
		StartX:     0.05,
		SpanX:      0.90,
		ScaleX:     0.95,
		ScaleTicks: 5,
	}
}

// Lane is one vertical track of the gel.
type Lane struct {
	// Index is the 1-based lane number, in lane order. The control, when
	// present, is always lane 1.
	Index int `json:"index"`
	// LengthBP is the fragment length loaded into this lane.
	LengthBP int `json:"length_bp"`
	// Norm is the normalized migration distance in [0, 1].
	Norm float64 `json:"norm"`
	// RealCM is the real-world migration distance in centimeters.
	RealCM float64 `json:"real_cm"`
	// X is the lane center in unit coordinates.
	X float64 `json:"x"`
	// Color is the lane's band color as a hex string.
	Color string `json:"color"`
	// Control marks the control lane.
	Control bool `json:"control,omitempty"`
}

// Layout is the complete, serializable description of a gel schematic.
type Layout struct {
	// RunID identifies the simulation run that produced this layout.
	RunID string `json:"run_id"`
	// Title is drawn above the gel.
	Title string `json:"title"`
	// GelLengthCM is the physical gel length the scale is labeled with.
	GelLengthCM float64 `json:"gel_length_cm"`
	// FrameWidth and FrameHeight are the target image dimensions in pixels.
	FrameWidth  float64 `json:"frame_width"`
	FrameHeight float64 `json:"frame_height"`
	// Geometry holds the unit-coordinate proportions.
	Geometry Geometry `json:"geometry"`
	// Lanes in lane order (control first when present).
	Lanes []Lane `json:"lanes"`
}

// ControlLane returns the control lane, or nil if the layout has none.
func (l Layout) ControlLane() *Lane {
	if len(l.Lanes) > 0 && l.Lanes[0].Control {
		return &l.Lanes[0]
	}
	return nil
}

// Option configures Build.
type Option func(*Layout)

// WithFrameSize overrides the target image dimensions.
func WithFrameSize(width, height float64) Option {
	return func(l *Layout) {
		l.FrameWidth = width
		l.FrameHeight = height
	}
}

// WithTitle overrides the layout title.
func WithTitle(title string) Option {
	return func(l *Layout) {
		if title != "" {
			l.Title = title
		}
	}
}

// WithGeometry overrides the gel proportions.
func WithGeometry(g Geometry) Option {
	return func(l *Layout) { l.Geometry = g }
}

// Build assigns lanes to a migration result.
//
// Lane order is input order, with the control prepended as lane 1 when
// present. Lane centers are evenly spaced across Geometry.SpanX, and colors
// are deterministic by lane index; the control lane is forced to red so it
// stands out in any palette.
func Build(res gel.Result, opts ...Option) Layout {
	l := Layout{
		RunID:       uuid.NewString(),
		Title:       DefaultTitle,
		GelLengthCM: gel.GelLengthCM,
		FrameWidth:  DefaultFrameWidth,
		FrameHeight: DefaultFrameHeight,
		Geometry:    DefaultGeometry(),
	}
	for _, opt := range opts {
		opt(&l)
	}

	total := res.Lanes()
	if total == 0 {
		return l
	}

	bands := make([]gel.Band, 0, total)
	if res.Control != nil {
		bands = append(bands, *res.Control)
	}
	bands = append(bands, res.Samples...)

	colors := Palette(total)
	spacing := l.Geometry.SpanX / float64(total)

	l.Lanes = make([]Lane, total)
	for i, b := range bands {
		isControl := res.Control != nil && i == 0
		color := colors[i]
		if isControl {
			color = ControlColor
		}
		l.Lanes[i] = Lane{
			Index:    i + 1,
			LengthBP: b.LengthBP,
			Norm:     b.Norm,
			RealCM:   b.RealCM,
			X:        l.Geometry.StartX + float64(i)*spacing,
			Color:    color,
			Control:  isControl,
		}
	}
	return l
}
