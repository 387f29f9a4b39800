package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"examplayer/internal/exam"
)

// File keeps the progress snapshot in a single JSON document.
type File struct {
	path string
}

// NewFile returns a store backed by the JSON file at path.
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, fmt.Errorf("progress path is required")
	}
	return &File{path: path}, nil
}

// Path returns the snapshot location.
func (f *File) Path() string {
	return f.path
}

// Close is a no-op; every operation opens the file itself.
func (f *File) Close() error {
	return nil
}

// Load reads the snapshot. A missing file means no saved progress.
func (f *File) Load() (exam.Progress, bool, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return exam.Progress{}, false, nil
		}
		return exam.Progress{}, false, fmt.Errorf("load progress: %w", err)
	}
	var progress exam.Progress
	if err := json.Unmarshal(data, &progress); err != nil {
		return exam.Progress{}, false, fmt.Errorf("load progress: decode %s: %w", f.path, err)
	}
	return progress, true, nil
}

// Save writes the snapshot using an atomic rename.
func (f *File) Save(progress exam.Progress) error {
	payload, err := json.MarshalIndent(progress, "", "  ")
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	if err := writeAtomic(f.path, payload); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// Clear removes the snapshot. Clearing an absent snapshot succeeds.
func (f *File) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear progress: %w", err)
	}
	return nil
}

func writeAtomic(path string, payload []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmpPath := path + ".tmp"
	file, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	_, writeErr := file.Write(payload)
	syncErr := file.Sync()
	closeErr := file.Close()
	for _, err := range []error{writeErr, syncErr, closeErr} {
		if err != nil {
			_ = os.Remove(tmpPath)
			return err
		}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
