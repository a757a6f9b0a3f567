package config

import "sort"

// Presets are named starting points; flags and config files layer on top.
var presets = map[string]func() *Config{
	// quiet: warm, slowly rotating cloud that mostly sits in equilibrium.
	"quiet": func() *Config {
		cfg := DefaultConfig()
		cfg.IC.Temp = 1e5
		cfg.IC.Spin = 0.8
		cfg.IC.Sigma = 0.2
		return cfg
	},

	// collapse: cold, pressure-starved cloud falling into the halo.
	"collapse": func() *Config {
		cfg := DefaultConfig()
		cfg.IC.Temp = 1e3
		cfg.IC.Spin = 0.1
		cfg.IC.Sigma = 0.05
		cfg.Duration = 200
		return cfg
	},

	// starburst: collapse with the star-formation sink switched on.
	"starburst": func() *Config {
		cfg := DefaultConfig()
		cfg.IC.Temp = 1e3
		cfg.IC.Spin = 0.1
		cfg.Phys.StarFormation = true
		cfg.Phys.EtaEff = 0.05
		cfg.Duration = 200
		return cfg
	},
}

// GetPreset returns a fresh config for the named preset, or nil.
func GetPreset(name string) *Config {
	fn, ok := presets[name]
	if !ok {
		return nil
	}
	return fn()
}

// ListPresets returns the preset names, sorted.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
