package gelsvg

import (
	"strings"
	"testing"

	"github.com/virtualgel/gelsim/pkg/gel"
	"github.com/virtualgel/gelsim/pkg/gel/layout"
)

func buildLayout(t *testing.T, lengths []int, control int) layout.Layout {
	t.Helper()
	res, err := gel.Migrate(lengths, control)
	if err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return layout.Build(res)
}

func TestRenderSVG_Structure(t *testing.T) {
	l := buildLayout(t, []int{100, 500, 1000}, 0)
	svg := string(RenderSVG(l))

	if !strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg"`) {
		t.Error("output does not start with an svg element")
	}
	if !strings.HasSuffix(strings.TrimSpace(svg), "</svg>") {
		t.Error("output is not closed")
	}
	if !strings.Contains(svg, `viewBox="0 0 900.0 700.0"`) {
		t.Errorf("missing default viewBox, got header %q", svg[:120])
	}

	// One well and one band rect per lane, plus frame and gel background.
	if got := strings.Count(svg, "<rect"); got != 2+2*len(l.Lanes) {
		t.Errorf("got %d rects, want %d", got, 2+2*len(l.Lanes))
	}

	for _, want := range []string{"100 bp", "500 bp", "1000 bp"} {
		if !strings.Contains(svg, want) {
			t.Errorf("missing band label %q", want)
		}
	}
	if !strings.Contains(svg, "Well (0 cm)") || !strings.Contains(svg, "Max (8 cm)") {
		t.Error("missing axis labels")
	}
	if !strings.Contains(svg, layout.DefaultTitle) {
		t.Error("missing title")
	}
}

func TestRenderSVG_Scale(t *testing.T) {
	l := buildLayout(t, []int{100, 1000}, 0)
	svg := string(RenderSVG(l))

	// Five ticks labeled 8.0 down to 0.0 cm.
	for _, want := range []string{"8.0 cm", "6.0 cm", "4.0 cm", "2.0 cm", "0.0 cm"} {
		if !strings.Contains(svg, want) {
			t.Errorf("missing scale label %q", want)
		}
	}
}

func TestRenderSVG_Control(t *testing.T) {
	l := buildLayout(t, []int{100, 500}, 750)
	svg := string(RenderSVG(l))

	if !strings.Contains(svg, `stroke="red"`) {
		t.Error("control well should have a red outline")
	}
	if !strings.Contains(svg, layout.ControlColor) {
		t.Error("control band should use the control color")
	}
	if !strings.Contains(svg, "Control: 750 bp (Lane 1)") {
		t.Error("missing control subtitle")
	}
	if !strings.Contains(svg, `font-weight="bold"`) {
		t.Error("control label should be bold")
	}
	if !strings.Contains(svg, "Lane 1") || !strings.Contains(svg, "Lane 3") {
		t.Error("missing lane numbers")
	}
}

func TestRenderSVG_Styles(t *testing.T) {
	l := buildLayout(t, []int{100}, 0)

	classic := string(RenderSVG(l, WithStyle(Classic())))
	if !strings.Contains(classic, "#FFF8DC") {
		t.Error("classic style should paint the cornsilk gel surface")
	}

	plain := string(RenderSVG(l, WithStyle(Plain())))
	if strings.Contains(plain, "#FFF8DC") {
		t.Error("plain style should not paint the cornsilk surface")
	}
	if strings.Contains(plain, "Lane 1") {
		t.Error("plain style should not draw lane numbers")
	}
}

func TestRenderSVG_EscapesTitle(t *testing.T) {
	res, err := gel.Migrate([]int{100}, 0)
	if err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	l := layout.Build(res, layout.WithTitle("EcoRI <digest> & friends"))
	svg := string(RenderSVG(l))

	if strings.Contains(svg, "<digest>") {
		t.Error("title was not escaped")
	}
	if !strings.Contains(svg, "EcoRI &lt;digest&gt; &amp; friends") {
		t.Error("missing escaped title text")
	}
}

func TestStyleByName(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"classic", StyleClassic, false},
		{"", StyleClassic, false},
		{"plain", StylePlain, false},
		{"handdrawn", "", true},
	}

	for _, tt := range tests {
		t.Run("name="+tt.name, func(t *testing.T) {
			s, err := StyleByName(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("StyleByName: %v", err)
			}
			if s.Name != tt.want {
				t.Errorf("Name = %q, want %q", s.Name, tt.want)
			}
		})
	}
}

func TestRenderJSON_RoundTrip(t *testing.T) {
	l := buildLayout(t, []int{100, 500}, 0)

	data, err := RenderJSON(l)
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	got, err := layout.UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout: %v", err)
	}
	if got.RunID != l.RunID || len(got.Lanes) != len(l.Lanes) {
		t.Errorf("round trip mismatch: %+v", got)
	}
}
