package gelsvg

import "fmt"

// Style names accepted by StyleByName.
const (
	StyleClassic = "classic" // cornsilk gel surface, full labeling
	StylePlain   = "plain"   // white surface, minimal chrome
)

// Style controls the visual appearance of the gel schematic.
type Style struct {
	// Name identifies the style ("classic" or "plain").
	Name string
	// FrameBackground fills the whole image frame.
	FrameBackground string
	// GelBackground fills the gel surface behind the lanes.
	GelBackground string
	// WellFill fills the well markers.
	WellFill string
	// ShowLaneNumbers draws "Lane N" under each well.
	ShowLaneNumbers bool
	// ShowTitle draws the layout title above the gel.
	ShowTitle bool
}

// Classic returns the default style: a cornsilk gel surface with lane
// numbers and title, matching the look of a bench-side gel doc printout.
func Classic() Style {
	return Style{
		Name:            StyleClassic,
		FrameBackground: "#FFFFFF",
		GelBackground:   "#FFF8DC",
		WellFill:        "#D3D3D3",
		ShowLaneNumbers: true,
		ShowTitle:       true,
	}
}

// Plain returns a minimal monochrome-surface style for embedding in
// documents.
func Plain() Style {
	return Style{
		Name:            StylePlain,
		FrameBackground: "#FFFFFF",
		GelBackground:   "#FFFFFF",
		WellFill:        "#E8E8E8",
		ShowLaneNumbers: false,
		ShowTitle:       true,
	}
}

// StyleByName resolves a style name to its Style.
func StyleByName(name string) (Style, error) {
	switch name {
	case StyleClassic, "":
		return Classic(), nil
	case StylePlain:
		return Plain(), nil
	default:
		return Style{}, fmt.Errorf("invalid style: %q (must be 'classic' or 'plain')", name)
	}
}
