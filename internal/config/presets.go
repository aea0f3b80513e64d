package config

// presets are named starting configurations for the CLI and TUI.
var presets = map[string]func(*Config){
	"orbit": func(c *Config) {
		c.Model = "field"
		c.Flow.Damping = 0
		c.Flow.Boundary = "remove"
	},
	"billiards": func(c *Config) {
		c.Model = "field"
		c.Flow.Boundary = "bounce"
		c.Flow.Damping = 0.001
	},
	"torus": func(c *Config) {
		c.Model = "field"
		c.Flow.Boundary = "wrap"
	},
	"landscape": func(c *Config) {
		c.Model = "landscape"
		c.Flow.Boundary = "bounce"
		c.Flow.Damping = 0.01
	},
	"timewarp": func(c *Config) {
		c.Model = "timewarp"
		c.Flow.Beta = 0.5
	},
	"soup": func(c *Config) {
		c.Model = "life"
		c.StepRate = 10
		c.Grid.Wrap = true
	},
	"pond": func(c *Config) {
		c.Model = "life"
		c.StepRate = 6
		c.Grid.Wrap = false
		c.Grid.Rows = 48
		c.Grid.Cols = 48
	},
	"hourglass": func(c *Config) {
		c.Model = "sandpile"
		c.Grid.Rows = 32
		c.Grid.Cols = 32
		c.Grid.DropMode = "fixed"
		c.Grid.DropRate = 60
	},
	"rainfall": func(c *Config) {
		c.Model = "sandpile"
		c.Grid.DropMode = "random"
		c.Grid.DropRate = 120
	},
}

// GetPreset returns the named preset over the defaults, or nil when the
// name is unknown.
func GetPreset(name string) *Config {
	apply, ok := presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// ListPresets returns the preset names.
func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}
