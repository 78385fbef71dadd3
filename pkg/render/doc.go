// Package render provides shared format-conversion helpers for the
// visualization sinks.
//
// SVG is the native output of every renderer in this repository; PNG and PDF
// are produced by piping the SVG through the external rsvg-convert tool
// (from librsvg). The conversion helpers live here so individual sinks stay
// focused on geometry.
//
//	svg := gelsvg.RenderSVG(layout)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0) // 2x scale
//
// The gel schematic renderer itself lives in the [gelsvg] subpackage.
//
// [gelsvg]: github.com/virtualgel/gelsim/pkg/render/gelsvg
package render
