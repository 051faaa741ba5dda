package config

import "sort"

// Presets are named starting points layered under a config file and flags.
var Presets = map[string]*Config{
	"subtle": {
		Theme: "github", Format: "gif", FPS: 12,
		Lens: LensConfig{Mode: "lens", Strength: 0.3, Duration: 14, AnomalyPercent: 5},
	},
	"dramatic": {
		Theme: "dark", Format: "gif", FPS: 15,
		Lens: LensConfig{Mode: "lens", Strength: 0.9, Duration: 14, AnomalyPercent: 15, Radius: 90},
	},
	"badge": {
		Theme: "dark", Format: "svg", FPS: 12,
		Lens: LensConfig{Mode: "legacy", Strength: 0.35, Duration: 4, CellSize: 12, CellGap: 3},
	},
	"field": {
		Theme: "dark", Format: "gif", FPS: 12,
		Lens: LensConfig{Mode: "field", Strength: 0.5, Duration: 8},
	},
	"preview": {
		Theme: "github", Format: "gif", FPS: 6,
		Lens: LensConfig{Mode: "lens", Strength: 0.5, Duration: 14},
	},
}

// GetPreset returns the named preset merged over the defaults, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Theme = p.Theme
	cfg.Format = p.Format
	cfg.FPS = p.FPS
	if cfg.Format == "svg" {
		cfg.Output = "gravlens.svg"
	}
	merge(&cfg.Lens, p.Lens)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// merge copies the non-zero fields of src into dst.
func merge(dst *LensConfig, src LensConfig) {
	if src.Mode != "" {
		dst.Mode = src.Mode
	}
	set := func(d *float64, s float64) {
		if s != 0 {
			*d = s
		}
	}
	set(&dst.Strength, src.Strength)
	set(&dst.Duration, src.Duration)
	set(&dst.ClipPercent, src.ClipPercent)
	set(&dst.AnomalyPercent, src.AnomalyPercent)
	set(&dst.CellSize, src.CellSize)
	set(&dst.CellGap, src.CellGap)
	set(&dst.CornerRadius, src.CornerRadius)
	set(&dst.Radius, src.Radius)
	set(&dst.MaxDelay, src.MaxDelay)
	set(&dst.MaxJitter, src.MaxJitter)
	if src.Peaks != 0 {
		dst.Peaks = src.Peaks
	}
}
