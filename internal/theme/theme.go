// Package theme holds the colour palettes and colour arithmetic shared by
// every renderer.
package theme

import "github.com/charmbracelet/lipgloss"

// FieldGradient tints warped cells toward PeakColor by their warp intensity.
type FieldGradient struct {
	PeakColor lipgloss.Color
	Intensity float64
}

// Theme defines the palette of one visual style
type Theme struct {
	Name             string
	BackgroundTop    lipgloss.Color
	BackgroundBottom lipgloss.Color
	GridBase         lipgloss.Color
	Levels           [5]lipgloss.Color
	Accent           lipgloss.Color
	WarpGlow         lipgloss.Color
	Text             lipgloss.Color
	TextOpacity      float64
	FieldGradient    *FieldGradient
	AnomalyAccent    lipgloss.Color
	AnomalyHighlight lipgloss.Color
	PeakMoment       lipgloss.Color

	// WarpMultiplier scales the requested warp strength.
	WarpMultiplier float64
	// PeakBrightnessBoost is the largest accent blend of a firing anomaly.
	PeakBrightnessBoost float64
	// Dimming offsets the darkening of warped cells.
	Dimming float64
}

// Level returns the fill colour of a calendar level, clamped to 0-4.
func (t Theme) Level(level int) lipgloss.Color {
	return t.Levels[max(0, min(level, len(t.Levels)-1))]
}

// Available themes
var (
	ThemeDark = Theme{
		Name:             "dark",
		BackgroundTop:    lipgloss.Color("#0b0f14"),
		BackgroundBottom: lipgloss.Color("#0f1720"),
		GridBase:         lipgloss.Color("#161b22"),
		Levels: [5]lipgloss.Color{
			"#161b22", "#0e4429", "#006d32", "#26a641", "#39d353",
		},
		Accent:              lipgloss.Color("#39d353"),
		WarpGlow:            lipgloss.Color("#78ffb4"),
		Text:                lipgloss.Color("#ffffff"),
		TextOpacity:         0.5,
		FieldGradient:       &FieldGradient{PeakColor: lipgloss.Color("#a78bfa"), Intensity: 0.6},
		AnomalyAccent:       lipgloss.Color("#3ddcff"),
		AnomalyHighlight:    lipgloss.Color("#a5f3ff"),
		PeakMoment:          lipgloss.Color("#e0fbff"),
		WarpMultiplier:      1.0,
		PeakBrightnessBoost: 0.15,
		Dimming:             0,
	}

	ThemeLight = Theme{
		Name:             "light",
		BackgroundTop:    lipgloss.Color("#ffffff"),
		BackgroundBottom: lipgloss.Color("#f6f8fa"),
		GridBase:         lipgloss.Color("#ebedf0"),
		Levels: [5]lipgloss.Color{
			"#ebedf0", "#9be9a8", "#40c463", "#30a14e", "#216e39",
		},
		Accent:              lipgloss.Color("#216e39"),
		WarpGlow:            lipgloss.Color("#00783c"),
		Text:                lipgloss.Color("#000000"),
		TextOpacity:         0.5,
		FieldGradient:       &FieldGradient{PeakColor: lipgloss.Color("#8250df"), Intensity: 0.4},
		AnomalyAccent:       lipgloss.Color("#0969da"),
		AnomalyHighlight:    lipgloss.Color("#54aeff"),
		PeakMoment:          lipgloss.Color("#8250df"),
		WarpMultiplier:      0.9,
		PeakBrightnessBoost: 0.12,
		Dimming:             0.04,
	}

	// ThemeGitHub matches the dark contribution graph on github.com.
	ThemeGitHub = Theme{
		Name:             "github",
		BackgroundTop:    lipgloss.Color("#0d1117"),
		BackgroundBottom: lipgloss.Color("#0d1117"),
		GridBase:         lipgloss.Color("#161b22"),
		Levels: [5]lipgloss.Color{
			"#161b22", "#0e4429", "#006d32", "#26a641", "#39d353",
		},
		Accent:              lipgloss.Color("#58a6ff"),
		WarpGlow:            lipgloss.Color("#78ffb4"),
		Text:                lipgloss.Color("#8b949e"),
		TextOpacity:         0.8,
		FieldGradient:       &FieldGradient{PeakColor: lipgloss.Color("#58a6ff"), Intensity: 0.5},
		AnomalyAccent:       lipgloss.Color("#3ddcff"),
		AnomalyHighlight:    lipgloss.Color("#79c0ff"),
		PeakMoment:          lipgloss.Color("#f0f6fc"),
		WarpMultiplier:      1.0,
		PeakBrightnessBoost: 0.2,
		Dimming:             0.02,
	}

	// Default theme
	Default = ThemeGitHub

	// All available themes
	Themes = []Theme{
		ThemeGitHub,
		ThemeDark,
		ThemeLight,
	}
)

// Lookup returns the theme with the given name.
func Lookup(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// GetTheme returns a theme by name, falling back to Default.
func GetTheme(name string) Theme {
	if t, ok := Lookup(name); ok {
		return t
	}
	return Default
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Next cycles to the theme after t.
func Next(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Default
}
