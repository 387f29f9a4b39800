package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfig = `version: 1

store:
  # file, duckdb or memory
  backend: file
  path: .examplayer/progress.json
  key: exam-progress

player:
  shuffle: false
  advance_delay_ms: 1500
  # auto, live or plain
  ui: auto
  no_color: false

validation:
  strict: true
`

// Scaffold writes a default config file at configPath. Existing files are
// never overwritten.
func Scaffold(configPath string) error {
	if configPath == "" {
		return fmt.Errorf("config path is required")
	}
	if info, err := os.Stat(configPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", configPath)
		}
		return fmt.Errorf("config file already exists at %q", configPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
