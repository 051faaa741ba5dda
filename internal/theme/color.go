package theme

import (
	"image/color"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultAnomalyOpacity is the accent blend of a fully lit anomaly.
const DefaultAnomalyOpacity = 0.15

// Parse converts a hex colour. Unparseable colours become black.
func Parse(c lipgloss.Color) colorful.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return colorful.Color{}
	}
	return col
}

// RGBA converts a hex colour with the given opacity.
func RGBA(c lipgloss.Color, opacity float64) color.NRGBA {
	r, g, b := Parse(c).RGB255()
	a := math.Round(math.Max(0, math.Min(1, opacity)) * 255)
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a)}
}

// Blend mixes a toward b by ratio in RGB space.
func Blend(a, b lipgloss.Color, ratio float64) lipgloss.Color {
	return lipgloss.Color(Parse(a).BlendRgb(Parse(b), ratio).Hex())
}

// CellColor tints base toward peak by the product of the warp terms.
func CellColor(base, peak lipgloss.Color, warpIntensity, warpProgress, gradientIntensity float64) lipgloss.Color {
	ratio := warpIntensity * warpProgress * gradientIntensity
	if ratio <= 0 {
		return base
	}
	return Blend(base, peak, ratio)
}

// AnomalyColor lights base toward accent, reaching maxOpacity at full
// brightness.
func AnomalyColor(base, accent lipgloss.Color, brightness, maxOpacity float64) lipgloss.Color {
	ratio := brightness * maxOpacity
	if ratio <= 0 {
		return base
	}
	return Blend(base, accent, ratio)
}

// AdjustBrightness shifts HSL lightness by amount, clamped to [0,1].
func AdjustBrightness(c lipgloss.Color, amount float64) lipgloss.Color {
	if amount == 0 {
		return c
	}
	h, s, l := Parse(c).Hsl()
	l = math.Max(0, math.Min(1, l+amount))
	return lipgloss.Color(colorful.Hsl(h, s, l).Clamped().Hex())
}

// ShiftHue rotates the hue by degrees.
func ShiftHue(c lipgloss.Color, degrees float64) lipgloss.Color {
	if degrees == 0 {
		return c
	}
	h, s, l := Parse(c).Hsl()
	h = math.Mod(math.Mod(h+degrees, 360)+360, 360)
	return lipgloss.Color(colorful.Hsl(h, s, l).Clamped().Hex())
}
