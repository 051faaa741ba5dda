package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestThemeDark(t *testing.T) {
	th := GetTheme("dark")
	want := [5]lipgloss.Color{"#161b22", "#0e4429", "#006d32", "#26a641", "#39d353"}
	if th.Levels != want {
		t.Errorf("expected levels %v, got %v", want, th.Levels)
	}
	if th.BackgroundTop != "#0b0f14" || th.BackgroundBottom != "#0f1720" {
		t.Errorf("unexpected background gradient %s -> %s", th.BackgroundTop, th.BackgroundBottom)
	}
	if th.AnomalyAccent != "#3ddcff" {
		t.Errorf("expected anomaly accent #3ddcff, got %s", th.AnomalyAccent)
	}
}

func TestThemeLight(t *testing.T) {
	th := GetTheme("light")
	want := [5]lipgloss.Color{"#ebedf0", "#9be9a8", "#40c463", "#30a14e", "#216e39"}
	if th.Levels != want {
		t.Errorf("expected levels %v, got %v", want, th.Levels)
	}
	if th.BackgroundTop != "#ffffff" {
		t.Errorf("expected white background, got %s", th.BackgroundTop)
	}
}

func TestThemes_Valid(t *testing.T) {
	for _, th := range Themes {
		colors := []lipgloss.Color{
			th.BackgroundTop, th.BackgroundBottom, th.GridBase, th.Accent, th.WarpGlow,
			th.Text, th.AnomalyAccent, th.AnomalyHighlight, th.PeakMoment,
		}
		colors = append(colors, th.Levels[:]...)
		if th.FieldGradient != nil {
			colors = append(colors, th.FieldGradient.PeakColor)
		}
		for _, c := range colors {
			if Parse(c).Hex() != string(c) {
				t.Errorf("theme %s: colour %s does not round-trip", th.Name, c)
			}
		}
		if th.WarpMultiplier <= 0 {
			t.Errorf("theme %s: warp multiplier should be positive", th.Name)
		}
	}
}

func TestGetTheme_Fallback(t *testing.T) {
	if got := GetTheme("nonexistent"); got.Name != Default.Name {
		t.Errorf("expected fallback %s, got %s", Default.Name, got.Name)
	}
	if _, ok := Lookup("nonexistent"); ok {
		t.Error("expected lookup to fail")
	}
}

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != len(Themes) {
		t.Fatalf("expected %d names, got %d", len(Themes), len(names))
	}
	seen := map[string]bool{}
	for _, n := range names {
		if seen[n] {
			t.Errorf("duplicate theme %s", n)
		}
		seen[n] = true
	}
}

func TestNext_Cycles(t *testing.T) {
	th := Default
	for range Themes {
		th = Next(th)
	}
	if th.Name != Default.Name {
		t.Errorf("expected to cycle back to %s, got %s", Default.Name, th.Name)
	}
}

func TestLevel_Clamps(t *testing.T) {
	th := ThemeDark
	if th.Level(-1) != th.Levels[0] || th.Level(9) != th.Levels[4] {
		t.Error("expected out-of-range levels to clamp")
	}
}
