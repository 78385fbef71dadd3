package gelsvg

import (
	"bytes"
	"fmt"

	"github.com/virtualgel/gelsim/pkg/gel/layout"
)

const fontFamily = "Helvetica, Arial, sans-serif"

// Frame margins in pixels. The right margin leaves room for band labels and
// the distance scale; the top margin holds the title block.
const (
	marginLeft   = 90.0
	marginRight  = 130.0
	marginTop    = 70.0
	marginBottom = 40.0
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style Style
}

// WithStyle sets the visual style (default Classic).
func WithStyle(s Style) SVGOption {
	return func(r *svgRenderer) { r.style = s }
}

// frame maps unit coordinates onto the pixel frame of a layout.
//
// The unit y domain runs from just above the wells (WellOffset - 0.05, the
// headroom for lane numbers) down to 1.1, so wells sit above the 0 cm line
// exactly like on a loaded gel.
type frame struct {
	l          layout.Layout
	yMin, yMax float64
}

func newFrame(l layout.Layout) frame {
	return frame{
		l:    l,
		yMin: l.Geometry.WellOffset - 0.05,
		yMax: 1.1,
	}
}

func (f frame) x(u float64) float64 {
	return marginLeft + u*(f.l.FrameWidth-marginLeft-marginRight)
}

func (f frame) y(v float64) float64 {
	return marginTop + (v-f.yMin)/(f.yMax-f.yMin)*(f.l.FrameHeight-marginTop-marginBottom)
}

// dx and dy scale unit-space extents to pixel extents.
func (f frame) dx(u float64) float64 {
	return u * (f.l.FrameWidth - marginLeft - marginRight)
}

func (f frame) dy(v float64) float64 {
	return v / (f.yMax - f.yMin) * (f.l.FrameHeight - marginTop - marginBottom)
}

// RenderSVG renders the layout as a self-contained SVG document.
func RenderSVG(l layout.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{style: Classic()}
	for _, opt := range opts {
		opt(&r)
	}

	f := newFrame(l)
	var buf bytes.Buffer

	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.FrameWidth, l.FrameHeight, l.FrameWidth, l.FrameHeight)

	renderBackground(&buf, f, r.style)
	if r.style.ShowTitle {
		renderTitle(&buf, f)
	}
	for _, lane := range l.Lanes {
		renderLane(&buf, f, r.style, lane)
	}
	renderScale(&buf, f)
	renderAxisLabels(&buf, f)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderBackground(buf *bytes.Buffer, f frame, s Style) {
	fmt.Fprintf(buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		f.l.FrameWidth, f.l.FrameHeight, s.FrameBackground)
	// Gel surface covers the lane area, wells included.
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="#999999" stroke-width="0.5"/>`+"\n",
		f.x(0), f.y(f.yMin), f.dx(1.0), f.dy(f.yMax-f.yMin), s.GelBackground)
}

func renderTitle(buf *bytes.Buffer, f frame) {
	fmt.Fprintf(buf, `  <text x="%.1f" y="30" text-anchor="middle" font-family="%s" font-size="20" fill="#222222">%s</text>`+"\n",
		f.l.FrameWidth/2, fontFamily, escapeText(f.l.Title))

	if control := f.l.ControlLane(); control != nil {
		fmt.Fprintf(buf, `  <text x="%.1f" y="52" text-anchor="middle" font-family="%s" font-size="13" fill="#555555">Control: %d bp (Lane 1)</text>`+"\n",
			f.l.FrameWidth/2, fontFamily, control.LengthBP)
	}
}

func renderLane(buf *bytes.Buffer, f frame, s Style, lane layout.Lane) {
	g := f.l.Geometry
	laneLeft := f.x(lane.X - g.LaneWidth/2)
	laneW := f.dx(g.LaneWidth)

	// Well marker at the loading position.
	wellStroke := "black"
	if lane.Control {
		wellStroke = "red"
	}
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" stroke="%s" stroke-width="1.5"/>`+"\n",
		laneLeft, f.y(g.WellOffset), laneW, f.dy(g.WellHeight), s.WellFill, wellStroke)

	// Band at the migration distance.
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" fill-opacity="0.8" stroke="black" stroke-width="1"/>`+"\n",
		laneLeft, f.y(lane.Norm-g.BandHeight/2), laneW, f.dy(g.BandHeight), lane.Color)

	// Length and distance label beside the band.
	weight := "normal"
	if lane.Control {
		weight = "bold"
	}
	labelX := f.x(lane.X + g.LaneWidth/2 + 0.02)
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family="%s" font-size="12" font-weight="%s" fill="%s">`+"\n",
		labelX, f.y(lane.Norm), fontFamily, weight, lane.Color)
	fmt.Fprintf(buf, `    <tspan x="%.1f" dy="0">%d bp</tspan>`+"\n", labelX, lane.LengthBP)
	fmt.Fprintf(buf, `    <tspan x="%.1f" dy="1.2em">%.1f cm</tspan>`+"\n", labelX, lane.RealCM)
	buf.WriteString("  </text>\n")

	if s.ShowLaneNumbers {
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="middle" font-family="%s" font-size="11" fill="#333333">Lane %d</text>`+"\n",
			f.x(lane.X), f.y(g.WellOffset)-6, fontFamily, lane.Index)
	}
}

// renderScale draws the ruled distance scale along the right edge: a vertical
// line from the well line to maximum travel with evenly spaced, labeled tick
// marks.
func renderScale(buf *bytes.Buffer, f frame) {
	g := f.l.Geometry
	x := f.x(g.ScaleX)

	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="black" stroke-width="1.5"/>`+"\n",
		x, f.y(0), x, f.y(1))

	ticks := g.ScaleTicks
	if ticks < 2 {
		ticks = 2
	}
	for i := 0; i < ticks; i++ {
		t := float64(i) / float64(ticks-1)
		fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="black" stroke-width="1.5"/>`+"\n",
			x, f.y(t), f.x(g.ScaleX+0.01), f.y(t))
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" dominant-baseline="middle" font-family="%s" font-size="11" fill="#222222">%.1f cm</text>`+"\n",
			f.x(g.ScaleX+0.02), f.y(t), fontFamily, f.l.GelLengthCM*(1-t))
	}
}

func renderAxisLabels(buf *bytes.Buffer, f frame) {
	x := f.x(0) - 8
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="end" dominant-baseline="middle" font-family="%s" font-size="12" fill="#222222">Well (0 cm)</text>`+"\n",
		x, f.y(0), fontFamily)
	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" text-anchor="end" dominant-baseline="middle" font-family="%s" font-size="12" fill="#222222">Max (%.0f cm)</text>`+"\n",
		x, f.y(1), fontFamily, f.l.GelLengthCM)
}

// escapeText escapes the characters XML treats specially in text content.
func escapeText(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
