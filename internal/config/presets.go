package config

import "sort"

var Presets = map[string]*Config{
	"calm": {
		Cols: 32, Coherence: 0.98, Opacity: 1, StepDelayMs: 10, StartFrom: "center",
		Background: "#101014", Theme: "glacier",
	},
	"drift": {
		Cols: 24, Coherence: 0.9, Opacity: 0.85, StepDelayMs: 15, StartFrom: "top-left",
		Background: "#000000", Theme: "ember",
	},
	"noise": {
		Cols: 16, Coherence: 0, Opacity: 1, StepDelayMs: 20, StartFrom: "center",
		Background: "#000000", Theme: "slate",
	},
	"mosaic": {
		Cols: 20, Coherence: 0.6, Opacity: 0.6, StepDelayMs: 25, StartFrom: "bottom-right",
		Background: "#ffffff", Theme: "paper",
	},
	"solid": {
		Cols: 12, Coherence: 1, Opacity: 1, StepDelayMs: 30, StartFrom: "top-right",
		Background: "#000000", Theme: "moss",
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *p
	c.Blocked = append([]int(nil), p.Blocked...)
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
