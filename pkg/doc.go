// Package pkg provides the core libraries for gelsim gel electrophoresis simulation.
//
// # Overview
//
// Gelsim turns DNA fragment lengths into a rendered virtual agarose gel:
// shorter fragments are more mobile and travel farther from the well. The
// pkg directory is organized into five main areas:
//
//  1. [gel] - Domain logic (mobility math and migration distances)
//  2. [gel/layout] - Lane geometry, colors, and layout serialization
//  3. [render] - Output sinks (SVG, PNG, PDF, JSON)
//  4. [cache] - Layout and artifact caching (file, redis)
//  5. [pipeline] - Orchestration (migrate → layout → render)
//
// # Architecture
//
// The typical data flow through gelsim:
//
//	Fragment lengths (bp)
//	         ↓
//	    [gel] package (mobility + normalized migration)
//	         ↓
//	    [gel/layout] package (lane positions + colors)
//	         ↓
//	    [render/gelsvg] package (gel image)
//	         ↓
//	    SVG/PNG/PDF/JSON output
//
// # Quick Start
//
//	res, err := gel.Migrate([]int{100, 500, 1000}, 250)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	l := layout.Build(res)
//	svg := gelsvg.RenderSVG(l)
package pkg
