// Package config loads the .examplayer/config.yml settings.
package config

import (
	"errors"
	"fmt"
	"os"
)

// Load reads, parses, normalizes, and validates a config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, err
	}
	Normalize(&cfg, RootFromConfigPath(path))
	if err := Validate(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Resolve loads the config at explicitPath, or the nearest config above
// startDir when explicitPath is empty. Without a config file the defaults
// apply with startDir as the root. The returned path is empty in that case.
func Resolve(startDir, explicitPath string) (Config, string, error) {
	if explicitPath != "" {
		cfg, err := Load(explicitPath)
		return cfg, explicitPath, err
	}
	path, err := FindConfigPath(startDir)
	if err == nil {
		cfg, err := Load(path)
		return cfg, path, err
	}
	if !errors.Is(err, ErrNotFound) {
		return Config{}, "", err
	}
	root, err := absDir(startDir)
	if err != nil {
		return Config{}, "", err
	}
	cfg := Default()
	Normalize(&cfg, root)
	return cfg, "", nil
}
