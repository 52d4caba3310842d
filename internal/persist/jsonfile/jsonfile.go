// Package jsonfile stores each task list as a JSON file in a directory.
package jsonfile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"ltask/internal/persist"
	"ltask/internal/task"
)

// Backend implements persist.Backend with one <key>.json file per key.
type Backend struct {
	dir    string
	logger *slog.Logger
}

// New creates a Backend rooted at dir. The directory is created on the
// first save. A nil logger uses slog.Default().
func New(dir string, logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{dir: dir, logger: logger}
}

// Path returns the file that holds the given key.
func (b *Backend) Path(key string) string {
	return filepath.Join(b.dir, key+".json")
}

// Load reads the tasks stored under key.
// A missing or undecodable file yields an empty sequence.
func (b *Backend) Load(ctx context.Context, key string) ([]task.Task, error) {
	if err := persist.ValidKey(key); err != nil {
		return nil, err
	}

	path := b.Path(key)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			b.logger.Debug("no stored tasks", "path", path)
			return []task.Task{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	tasks, dropped, err := persist.Decode(data)
	if err != nil {
		b.logger.Warn("stored tasks unreadable, starting empty", "path", path, "error", err)
		return []task.Task{}, nil
	}
	if dropped > 0 {
		b.logger.Warn("dropped invalid task records", "path", path, "count", dropped)
	}
	b.logger.Debug("loaded tasks", "path", path, "count", len(tasks))
	return tasks, nil
}

// Save replaces the file for key with tasks.
// The write goes to a temp file in the same directory and is renamed
// into place.
func (b *Backend) Save(ctx context.Context, key string, tasks []task.Task) error {
	if err := persist.ValidKey(key); err != nil {
		return err
	}

	data, err := persist.Encode(tasks)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(b.dir, 0700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(b.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write tasks: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("write tasks: %w", err)
	}
	if err := os.Rename(tmpPath, b.Path(key)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", b.Path(key), err)
	}

	b.logger.Debug("saved tasks", "path", b.Path(key), "count", len(tasks))
	return nil
}

// Close implements io.Closer. The file backend holds no resources.
func (b *Backend) Close() error { return nil }
