// Package gelsvg renders gel layouts as schematic images.
//
// The renderer consumes a [layout.Layout] and draws one vertical lane per
// fragment: a well marker at the loading position, a band rectangle at the
// fragment's normalized migration distance, a per-lane label with length and
// real-world distance, and a ruled distance scale along the right edge.
//
// SVG is built directly; PNG and PDF are derived from the SVG via
// rsvg-convert (see the render package). A JSON sink re-emits the layout for
// later re-rendering.
//
//	l := layout.Build(result)
//	svg := gelsvg.RenderSVG(l, gelsvg.WithStyle(gelsvg.Classic()))
//	png, err := gelsvg.RenderPNG(l, gelsvg.WithPNGScale(2.0))
package gelsvg
