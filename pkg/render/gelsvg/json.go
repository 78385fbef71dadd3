package gelsvg

import "github.com/virtualgel/gelsim/pkg/gel/layout"

// RenderJSON emits the layout itself as pretty-printed JSON.
// The output can be fed back through layout.UnmarshalLayout and re-rendered,
// which is what `gelsim render` does.
func RenderJSON(l layout.Layout) ([]byte, error) {
	return layout.MarshalLayout(l)
}
