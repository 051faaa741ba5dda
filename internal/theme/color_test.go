package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestBlend(t *testing.T) {
	tests := []struct {
		a, b  lipgloss.Color
		ratio float64
		want  lipgloss.Color
	}{
		{"#ff0000", "#0000ff", 0, "#ff0000"},
		{"#ff0000", "#0000ff", 1, "#0000ff"},
		{"#abcdef", "#abcdef", 0.5, "#abcdef"},
	}
	for _, tt := range tests {
		if got := Blend(tt.a, tt.b, tt.ratio); got != tt.want {
			t.Errorf("blend(%s,%s,%f): expected %s, got %s", tt.a, tt.b, tt.ratio, tt.want, got)
		}
	}

	r, g, b := Parse(Blend("#000000", "#ffffff", 0.5)).RGB255()
	for _, ch := range []uint8{r, g, b} {
		if ch < 127 || ch > 128 {
			t.Errorf("expected mid grey channel, got %d", ch)
		}
	}
}

func TestCellColor(t *testing.T) {
	base, peak := lipgloss.Color("#1f3b4d"), lipgloss.Color("#a78bfa")

	if got := CellColor(base, peak, 0.8, 0, 0.6); got != base {
		t.Errorf("expected base at zero progress, got %s", got)
	}
	if got := CellColor(base, peak, 0, 1, 0.6); got != base {
		t.Errorf("expected base at zero intensity, got %s", got)
	}
	if got := CellColor(base, peak, 1, 1, 1); got != peak {
		t.Errorf("expected peak at full blend, got %s", got)
	}
	if got := CellColor(base, peak, 0.5, 0.5, 1); got == base || got == peak {
		t.Errorf("expected an intermediate colour, got %s", got)
	}
}

func TestAnomalyColor(t *testing.T) {
	base, accent := lipgloss.Color("#1f3b4d"), lipgloss.Color("#3ddcff")

	if got := AnomalyColor(base, accent, 0, DefaultAnomalyOpacity); got != base {
		t.Errorf("expected base at zero brightness, got %s", got)
	}
	if got := AnomalyColor(base, accent, 1, 0); got != base {
		t.Errorf("expected base at zero opacity, got %s", got)
	}
	if got := AnomalyColor(base, accent, 1, 1); got != accent {
		t.Errorf("expected accent at full opacity, got %s", got)
	}
	if got := AnomalyColor(base, accent, 0.5, DefaultAnomalyOpacity); got == base || got == accent {
		t.Errorf("expected a slight tint, got %s", got)
	}
}

func TestAdjustBrightness(t *testing.T) {
	c := lipgloss.Color("#26a641")
	if AdjustBrightness(c, 0) != c {
		t.Error("expected zero adjustment to keep the colour")
	}

	_, _, l0 := Parse(c).Hsl()
	_, _, lUp := Parse(AdjustBrightness(c, 0.1)).Hsl()
	_, _, lDown := Parse(AdjustBrightness(c, -0.1)).Hsl()
	if lUp <= l0 || lDown >= l0 {
		t.Errorf("expected lightness to move: %f < %f < %f", lDown, l0, lUp)
	}

	if got := AdjustBrightness(c, 5); got != "#ffffff" {
		t.Errorf("expected white when saturating, got %s", got)
	}
}

func TestShiftHue(t *testing.T) {
	c := lipgloss.Color("#ff0000")
	if ShiftHue(c, 0) != c {
		t.Error("expected zero shift to keep the colour")
	}
	if got := ShiftHue(c, 120); got != "#00ff00" {
		t.Errorf("expected green after 120 degrees, got %s", got)
	}
	if got := ShiftHue(c, 360); got != c {
		t.Errorf("expected a full turn to return, got %s", got)
	}
}

func TestRGBA(t *testing.T) {
	c := RGBA("#3ddcff", 0.5)
	if c.R != 0x3d || c.G != 0xdc || c.B != 0xff {
		t.Errorf("unexpected channels %v", c)
	}
	if c.A != 128 {
		t.Errorf("expected alpha 128, got %d", c.A)
	}
}
