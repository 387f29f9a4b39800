package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/google/uuid"

	"examplayer/internal/exam"
)

//go:embed schema.sql
var schemaDDL string

const defaultQueryTimeout = 5 * time.Second

// DuckDB keeps the snapshot and the attempt history in a DuckDB database.
// Snapshots are keyed so several exams can share one database file.
type DuckDB struct {
	db      *sql.DB
	key     string
	timeout time.Duration
	now     func() time.Time
}

// OpenDuckDB opens the database at dsn and applies the schema. An empty dsn
// opens an in-memory database.
func OpenDuckDB(ctx context.Context, dsn, key string) (*DuckDB, error) {
	if ctx == nil {
		return nil, errors.New("duckdb: context is nil")
	}
	if key == "" {
		return nil, errors.New("duckdb: store key is required")
	}
	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping duckdb: %w", err)
	}
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &DuckDB{db: db, key: key, timeout: defaultQueryTimeout, now: time.Now}, nil
}

// Close releases the database.
func (d *DuckDB) Close() error {
	return d.db.Close()
}

func (d *DuckDB) Load() (exam.Progress, bool, error) {
	ctx, cancel := d.context()
	defer cancel()
	var payload string
	err := d.db.QueryRowContext(ctx,
		`SELECT snapshot FROM exam_progress WHERE store_key = ?`, d.key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return exam.Progress{}, false, nil
	}
	if err != nil {
		return exam.Progress{}, false, fmt.Errorf("load progress: %w", err)
	}
	var progress exam.Progress
	if err := json.Unmarshal([]byte(payload), &progress); err != nil {
		return exam.Progress{}, false, fmt.Errorf("load progress: decode snapshot: %w", err)
	}
	return progress, true, nil
}

func (d *DuckDB) Save(progress exam.Progress) error {
	payload, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	ctx, cancel := d.context()
	defer cancel()
	_, err = d.db.ExecContext(ctx,
		`INSERT INTO exam_progress (store_key, snapshot, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT (store_key) DO UPDATE SET snapshot = excluded.snapshot, updated_at = excluded.updated_at`,
		d.key, string(payload), d.now().UTC())
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func (d *DuckDB) Clear() error {
	ctx, cancel := d.context()
	defer cancel()
	if _, err := d.db.ExecContext(ctx, `DELETE FROM exam_progress WHERE store_key = ?`, d.key); err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}
	return nil
}

// RecordAttempt stores a finished attempt under a new UUID.
func (d *DuckDB) RecordAttempt(attempt exam.Attempt) error {
	if attempt.ID == "" {
		attempt.ID = newAttemptID()
	}
	if attempt.CompletedAt.IsZero() {
		attempt.CompletedAt = d.now().UTC()
	}
	ctx, cancel := d.context()
	defer cancel()
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO exam_attempts (attempt_id, store_key, title, score, total, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		attempt.ID, d.key, attempt.Title, attempt.Score, attempt.Total, attempt.CompletedAt)
	if err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}
	return nil
}

// Attempts lists the attempts recorded under the store key, newest first.
func (d *DuckDB) Attempts() ([]exam.Attempt, error) {
	ctx, cancel := d.context()
	defer cancel()
	rows, err := d.db.QueryContext(ctx,
		`SELECT CAST(attempt_id AS VARCHAR), title, score, total, completed_at
		 FROM exam_attempts
		 WHERE store_key = ?
		 ORDER BY completed_at DESC, attempt_id`, d.key)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()
	var out []exam.Attempt
	for rows.Next() {
		var attempt exam.Attempt
		if err := rows.Scan(&attempt.ID, &attempt.Title, &attempt.Score, &attempt.Total, &attempt.CompletedAt); err != nil {
			return nil, fmt.Errorf("list attempts: %w", err)
		}
		attempt.CompletedAt = attempt.CompletedAt.UTC()
		out = append(out, attempt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return out, nil
}

func (d *DuckDB) context() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), d.timeout)
}

func newAttemptID() string {
	return uuid.NewString()
}
