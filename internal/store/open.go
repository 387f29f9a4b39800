// Package store implements the progress persistence backends.
package store

import (
	"context"
	"fmt"
	"io"

	"examplayer/internal/exam"
	"examplayer/internal/progress"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendDuckDB = "duckdb"
	BackendMemory = "memory"
)

// DefaultKey matches the key the web player kept its snapshot under.
const DefaultKey = "exam-progress"

// Options selects and configures a backend.
type Options struct {
	Backend string
	Path    string
	Key     string
}

// Store is a progress store the caller must close.
type Store interface {
	progress.Store
	io.Closer
}

// History is implemented by backends that can list finished attempts.
type History interface {
	progress.AttemptRecorder
	Attempts() ([]exam.Attempt, error)
}

// Open returns the backend described by opts.
func Open(ctx context.Context, opts Options) (Store, error) {
	key := opts.Key
	if key == "" {
		key = DefaultKey
	}
	switch opts.Backend {
	case "", BackendFile:
		return NewFile(opts.Path)
	case BackendDuckDB:
		return OpenDuckDB(ctx, opts.Path, key)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}

// HistoryOf returns the attempt history of s when the backend keeps one.
func HistoryOf(s progress.Store) (History, bool) {
	history, ok := s.(History)
	return history, ok
}
