package config

import (
	"sort"
	"time"
)

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"dense":   withEmitters(6000, 9000),
	"sparse":  withEmitters(500, 750),
	"fast":    withInterval(time.Second),
}

func withEmitters(ac, window int) *Config {
	c := DefaultConfig()
	c.Emitters.AC.Count = ac
	c.Emitters.Window.Count = window
	return c
}

func withInterval(d time.Duration) *Config {
	c := DefaultConfig()
	c.UpdateInterval = d
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
