// Package config loads tool configuration from YAML files.
package config

// Config holds all settings shared by the command-line tools. Values
// missing from a config file keep their defaults.
type Config struct {
	PacksDir string        `yaml:"packs_dir"`
	Database string        `yaml:"database"`
	LogLevel string        `yaml:"log_level"`
	Engine   EngineConfig  `yaml:"engine"`
	Convert  ConvertConfig `yaml:"convert"`
}

// EngineConfig toggles the simulation's optional validation passes.
type EngineConfig struct {
	SanityChecks  bool `yaml:"sanity_checks"`
	StrictInit    bool `yaml:"strict_init"`
	StrictCloners bool `yaml:"strict_cloners"`
}

// ConvertConfig holds defaults for level set conversion.
type ConvertConfig struct {
	GhostBlocks bool `yaml:"ghost_blocks"`
	Strict      bool `yaml:"strict"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		PacksDir: "packs",
		Database: "~/.tworld/results.db",
		LogLevel: "info",
		Engine: EngineConfig{
			SanityChecks:  true,
			StrictInit:    true,
			StrictCloners: true,
		},
	}
}
