package layout

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/virtualgel/gelsim/pkg/gel"
)

func TestLayoutFileRoundTrip(t *testing.T) {
	res, err := gel.Migrate([]int{100, 500, 1000}, 250)
	if err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	l := Build(res, WithTitle("round trip"))

	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatalf("WriteLayoutFile: %v", err)
	}

	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile: %v", err)
	}
	if got.RunID != l.RunID {
		t.Errorf("RunID = %q, want %q", got.RunID, l.RunID)
	}
	if got.Title != "round trip" {
		t.Errorf("Title = %q", got.Title)
	}
	if len(got.Lanes) != len(l.Lanes) {
		t.Fatalf("got %d lanes, want %d", len(got.Lanes), len(l.Lanes))
	}
	for i := range got.Lanes {
		if got.Lanes[i] != l.Lanes[i] {
			t.Errorf("lane %d: %+v != %+v", i, got.Lanes[i], l.Lanes[i])
		}
	}
}

func TestUnmarshalLayout_Validation(t *testing.T) {
	if _, err := UnmarshalLayout([]byte(`{"lanes": []}`)); err == nil {
		t.Error("expected error for layout without lanes")
	}
	if _, err := UnmarshalLayout([]byte(`{not json`)); err == nil || !strings.Contains(err.Error(), "unmarshal") {
		t.Errorf("expected unmarshal error, got %v", err)
	}
}

func TestUnmarshalLayout_FillsDefaults(t *testing.T) {
	l, err := UnmarshalLayout([]byte(`{"lanes": [{"index": 1, "length_bp": 100, "norm": 0.5, "real_cm": 4, "x": 0.05, "color": "#ff0000"}]}`))
	if err != nil {
		t.Fatalf("UnmarshalLayout: %v", err)
	}
	if l.GelLengthCM != gel.GelLengthCM {
		t.Errorf("GelLengthCM = %v, want %v", l.GelLengthCM, gel.GelLengthCM)
	}
	if l.FrameWidth != DefaultFrameWidth || l.FrameHeight != DefaultFrameHeight {
		t.Errorf("frame = %vx%v, want defaults", l.FrameWidth, l.FrameHeight)
	}
	if l.Geometry != DefaultGeometry() {
		t.Errorf("Geometry = %+v, want defaults", l.Geometry)
	}
}

func TestReadLayoutFile_Missing(t *testing.T) {
	if _, err := ReadLayoutFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
