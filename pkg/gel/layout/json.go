package layout

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/virtualgel/gelsim/pkg/gel"
)

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Missing defaults are filled in; a layout without lanes is rejected.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}

	if len(l.Lanes) == 0 {
		return Layout{}, fmt.Errorf("layout must contain at least one lane")
	}
	if l.GelLengthCM == 0 {
		l.GelLengthCM = gel.GelLengthCM
	}
	if l.FrameWidth == 0 {
		l.FrameWidth = DefaultFrameWidth
	}
	if l.FrameHeight == 0 {
		l.FrameHeight = DefaultFrameHeight
	}
	if l.Geometry == (Geometry{}) {
		l.Geometry = DefaultGeometry()
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
