package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load returns the effective configuration.
// Search order: customPath -> $TWORLD_CONFIG -> ./tworld.yaml -> ~/.config/tworld/config.yaml -> built-in defaults.
// Files are unmarshalled over the defaults, so a partial config keeps
// default values for everything it omits. Missing files along the search
// path are skipped, but a file that exists and fails to read or parse is
// an error rather than a silent fallback.
func Load(customPath string) (Config, error) {
	cfg := Default()

	if customPath != "" {
		if err := loadFile(customPath, &cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	for _, path := range searchPaths() {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// searchPaths lists the locations probed when no explicit path is given,
// most specific first.
func searchPaths() []string {
	paths := []string{
		os.Getenv("TWORLD_CONFIG"),
		"tworld.yaml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "tworld", "config.yaml"))
	}
	return paths
}
