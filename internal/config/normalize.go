package config

import (
	"path/filepath"

	"examplayer/internal/progress"
)

// Defaults applied by Normalize.
const (
	DefaultBackend     = "file"
	DefaultKey         = "exam-progress"
	DefaultUI          = "auto"
	defaultFileStore   = "progress.json"
	defaultDuckDBStore = "examplayer.duckdb"
	currentVersion     = 1
)

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		Version: currentVersion,
		Store: StoreConfig{
			Backend: DefaultBackend,
			Key:     DefaultKey,
		},
		Player: PlayerConfig{
			AdvanceDelayMS: int(progress.AdvanceDelay.Milliseconds()),
			UI:             DefaultUI,
		},
		Validation: ValidationConfig{Strict: true},
	}
}

// Normalize fills empty fields and anchors the store path at root.
func Normalize(cfg *Config, root string) {
	if cfg.Version == 0 {
		cfg.Version = currentVersion
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = DefaultBackend
	}
	if cfg.Store.Key == "" {
		cfg.Store.Key = DefaultKey
	}
	if cfg.Store.Path == "" {
		switch cfg.Store.Backend {
		case "file":
			cfg.Store.Path = filepath.Join(ConfigDirName, defaultFileStore)
		case "duckdb":
			cfg.Store.Path = filepath.Join(ConfigDirName, defaultDuckDBStore)
		}
	}
	if cfg.Store.Path != "" && !filepath.IsAbs(cfg.Store.Path) && root != "" {
		cfg.Store.Path = filepath.Join(root, cfg.Store.Path)
	}
	if cfg.Player.AdvanceDelayMS == 0 {
		cfg.Player.AdvanceDelayMS = int(progress.AdvanceDelay.Milliseconds())
	}
	if cfg.Player.UI == "" {
		cfg.Player.UI = DefaultUI
	}
}
