package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, root, body string) string {
	t.Helper()
	path := ConfigPath(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestParseKeepsDefaultsForMissingKeys(t *testing.T) {
	cfg, err := Parse([]byte("player:\n  shuffle: true\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !cfg.Player.Shuffle {
		t.Fatalf("expected shuffle to be enabled")
	}
	if !cfg.Validation.Strict {
		t.Fatalf("expected strict validation by default")
	}
	if cfg.Player.AdvanceDelay() != 1500*time.Millisecond {
		t.Fatalf("expected default delay, got %s", cfg.Player.AdvanceDelay())
	}
	if cfg.Store.Backend != "file" || cfg.Store.Key != "exam-progress" {
		t.Fatalf("unexpected store defaults %+v", cfg.Store)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Version != 1 {
		t.Fatalf("expected default version, got %d", cfg.Version)
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	if _, err := Parse([]byte("player:\n  shufle: true\n")); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestParseRejectsMultipleDocuments(t *testing.T) {
	for _, input := range []string{
		"version: 1\n---\nversion: 1\n",
		"version: 1\n---\nanything: else\n",
		"version: 1\n---\n- a list\n",
	} {
		_, err := Parse([]byte(input))
		if err == nil || !strings.Contains(err.Error(), "multiple YAML documents") {
			t.Fatalf("%q: expected multiple document error, got %v", input, err)
		}
	}
}

func TestNormalizeAnchorsStorePath(t *testing.T) {
	root := t.TempDir()
	cases := []struct {
		backend string
		want    string
	}{
		{backend: "file", want: filepath.Join(root, ".examplayer", "progress.json")},
		{backend: "duckdb", want: filepath.Join(root, ".examplayer", "examplayer.duckdb")},
		{backend: "memory", want: ""},
	}
	for _, tc := range cases {
		cfg := Config{Store: StoreConfig{Backend: tc.backend}}
		Normalize(&cfg, root)
		if cfg.Store.Path != tc.want {
			t.Fatalf("%s: expected path %q, got %q", tc.backend, tc.want, cfg.Store.Path)
		}
	}

	absolute := filepath.Join(root, "elsewhere.json")
	cfg := Config{Store: StoreConfig{Path: absolute}}
	Normalize(&cfg, "/ignored")
	if cfg.Store.Path != absolute {
		t.Fatalf("expected absolute path to stay, got %q", cfg.Store.Path)
	}
}

func TestValidateCollectsIssues(t *testing.T) {
	cfg := Default()
	cfg.Version = 2
	cfg.Store.Backend = "redis"
	cfg.Player.UI = "fancy"
	cfg.Player.AdvanceDelayMS = -1

	err := Validate(&cfg)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	fields := map[string]bool{}
	for _, issue := range validationErr.Issues {
		fields[issue.Field] = true
	}
	for _, field := range []string{"version", "store.backend", "player.ui", "player.advance_delay_ms"} {
		if !fields[field] {
			t.Fatalf("expected issue for %s, got %v", field, validationErr.Issues)
		}
	}
}

func TestFindConfigPathWalksUp(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "version: 1\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	found, err := FindConfigPath(nested)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if found != path {
		t.Fatalf("expected %q, got %q", path, found)
	}
	if RootFromConfigPath(found) != root {
		t.Fatalf("expected root %q, got %q", root, RootFromConfigPath(found))
	}
}

func TestResolveWithoutConfigUsesDefaults(t *testing.T) {
	root := t.TempDir()
	cfg, path, err := Resolve(root, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if path != "" {
		t.Fatalf("expected no config path, got %q", path)
	}
	if cfg.Store.Path != filepath.Join(root, ".examplayer", "progress.json") {
		t.Fatalf("unexpected store path %q", cfg.Store.Path)
	}
}

func TestLoadAppliesConfig(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "version: 1\nstore:\n  backend: duckdb\n  path: data/exams.duckdb\nplayer:\n  ui: plain\n  advance_delay_ms: 200\nvalidation:\n  strict: false\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store.Path != filepath.Join(root, "data", "exams.duckdb") {
		t.Fatalf("unexpected store path %q", cfg.Store.Path)
	}
	if cfg.Player.UI != "plain" || cfg.Player.AdvanceDelayMS != 200 || cfg.Validation.Strict {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestScaffoldWritesLoadableConfig(t *testing.T) {
	root := t.TempDir()
	path := ConfigPath(root)
	if err := Scaffold(path); err != nil {
		t.Fatalf("scaffold: %v", err)
	}
	if _, err := Load(path); err != nil {
		t.Fatalf("load scaffolded config: %v", err)
	}
	if err := Scaffold(path); err == nil {
		t.Fatalf("expected error when config exists")
	}
}
