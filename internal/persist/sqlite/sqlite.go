// Package sqlite stores task lists as JSON blobs in a SQLite database.
//
// The database is configured with:
//   - WAL mode so a reader never blocks on a writer
//   - NORMAL synchronous mode
//   - 5-second busy timeout for lock contention between processes
//
// Each key maps to one row in the blobs table. The value column holds the
// same JSON array the file backend writes.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"ltask/internal/persist"
	"ltask/internal/task"
)

//go:embed schema.sql
var schemaSQL string

// currentSchemaVersion is stored in user_version. Version 1 is the
// baseline schema in schema.sql; later versions add migrations in
// runMigrations.
const currentSchemaVersion = 1

// Backend implements persist.Backend on a SQLite database.
type Backend struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// Open creates or opens a SQLite database at the given path.
// Applies required pragmas and migrations automatically.
// A nil logger uses slog.Default().
func Open(path string, logger *slog.Logger) (*Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	logger.Debug("opened database", "path", path)
	return &Backend{db: db, logger: logger, now: time.Now}, nil
}

// Close closes the database connection.
func (b *Backend) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Load reads the tasks stored under key.
// A missing row or an undecodable value yields an empty sequence.
func (b *Backend) Load(ctx context.Context, key string) ([]task.Task, error) {
	var value string
	err := b.db.QueryRowContext(ctx, `SELECT value FROM blobs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		b.logger.Debug("no stored tasks", "key", key)
		return []task.Task{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", key, err)
	}

	tasks, dropped, err := persist.Decode([]byte(value))
	if err != nil {
		b.logger.Warn("stored tasks unreadable, starting empty", "key", key, "error", err)
		return []task.Task{}, nil
	}
	if dropped > 0 {
		b.logger.Warn("dropped invalid task records", "key", key, "count", dropped)
	}
	b.logger.Debug("loaded tasks", "key", key, "count", len(tasks))
	return tasks, nil
}

// Save replaces the value stored under key.
func (b *Backend) Save(ctx context.Context, key string, tasks []task.Task) error {
	data, err := persist.Encode(tasks)
	if err != nil {
		return err
	}

	_, err = b.db.ExecContext(ctx, `
		INSERT INTO blobs (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(data), b.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}

	b.logger.Debug("saved tasks", "key", key, "count", len(tasks))
	return nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// applySchema creates tables if they don't exist and runs migrations.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	if err := runMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// runMigrations brings a database up to currentSchemaVersion.
// A database written by a newer build is refused.
func runMigrations(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}

	if version > currentSchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, currentSchemaVersion)
	}
	if version == currentSchemaVersion {
		return nil
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (b *Backend) verifyPragma(name, expected string) error {
	var value string
	if err := b.db.QueryRow(fmt.Sprintf("PRAGMA %s", name)).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
