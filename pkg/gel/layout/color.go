package layout

import colorful "github.com/lucasb-eyer/go-colorful"

// ControlColor is the forced color of the control lane.
const ControlColor = "#FF0000"

// Palette returns n visually distinct lane colors as hex strings.
//
// Hues are spaced evenly around the color wheel at fixed saturation and
// value, so the color of lane i depends only on i and n. Two runs with the
// same lane count always produce identical colors.
func Palette(n int) []string {
	if n <= 0 {
		return nil
	}
	colors := make([]string, n)
	for i := range colors {
		hue := 360.0 * float64(i) / float64(n)
		colors[i] = colorful.Hsv(hue, 0.65, 0.90).Hex()
	}
	return colors
}
