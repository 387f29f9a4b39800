package exam

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadFile reads and parses an exam file. Files ending in .yml or .yaml are
// read as YAML, everything else as JSON.
func LoadFile(path string) (Exam, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Exam{}, fmt.Errorf("read exam: %w", err)
	}
	return ParseFile(path, data)
}

// ParseFile parses data using the format implied by the path extension.
func ParseFile(path string, data []byte) (Exam, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return ParseYAML(data)
	default:
		return Parse(data)
	}
}
