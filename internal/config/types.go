package config

import "time"

// Config is the parsed .examplayer/config.yml.
type Config struct {
	Version    int              `yaml:"version"`
	Store      StoreConfig      `yaml:"store"`
	Player     PlayerConfig     `yaml:"player"`
	Validation ValidationConfig `yaml:"validation"`
}

// StoreConfig selects where progress is kept.
type StoreConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
	Key     string `yaml:"key"`
}

// PlayerConfig holds defaults for the take command.
type PlayerConfig struct {
	Shuffle        bool   `yaml:"shuffle"`
	AdvanceDelayMS int    `yaml:"advance_delay_ms"`
	UI             string `yaml:"ui"`
	NoColor        bool   `yaml:"no_color"`
}

// ValidationConfig controls exam hardening.
type ValidationConfig struct {
	Strict bool `yaml:"strict"`
}

// AdvanceDelay returns the feedback delay as a duration.
func (p PlayerConfig) AdvanceDelay() time.Duration {
	return time.Duration(p.AdvanceDelayMS) * time.Millisecond
}
