package config

import "sort"

var Presets = map[string]*Config{
	"reference": DefaultConfig(),
	"inclined":  withChanges(func(c *Config) { c.InclinationDeg = 20 }),
	"high-t":    withChanges(func(c *Config) { c.Tisserand = 3.2 }),
	// cos(i) ≤ 0: both branches trace the same single positive root.
	"polar":      withChanges(func(c *Config) { c.InclinationDeg = 90 }),
	"retrograde": withChanges(func(c *Config) { c.InclinationDeg = 180 }),
	"eccentric": withChanges(func(c *Config) {
		c.Eccentricity.Max = 0.9
		c.Eccentricity.Samples = 9000
	}),
	"outer": withChanges(func(c *Config) {
		c.BodySet = "extended"
		c.Only = []string{"Jupiter", "Saturn", "Uranus", "Neptune"}
	}),
	"coarse": withChanges(func(c *Config) {
		c.Eccentricity.Samples = 600
		c.Output.Figures = false
	}),
}

func withChanges(fn func(*Config)) *Config {
	c := DefaultConfig()
	fn(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
