// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"slices"
	"sync"

	"ltask/internal/task"
)

// FakeBackend is an in-memory persist.Backend for testing.
// Saved sequences are copied so later store mutations don't leak in.
type FakeBackend struct {
	mu    sync.Mutex
	blobs map[string][]task.Task

	// Saves counts successful Save calls.
	Saves int

	// Closed is set by Close.
	Closed bool

	// Error injection for testing
	LoadErr  error
	SaveErr  error
	CloseErr error
}

// NewFakeBackend creates an empty FakeBackend.
func NewFakeBackend() *FakeBackend {
	return &FakeBackend{blobs: make(map[string][]task.Task)}
}

// Seed stores tasks under key without counting a save.
func (f *FakeBackend) Seed(key string, tasks ...task.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blobs[key] = slices.Clone(tasks)
}

// Stored returns a copy of what was last saved under key.
func (f *FakeBackend) Stored(key string) []task.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.blobs[key])
}

// Load implements task.Persister.
func (f *FakeBackend) Load(ctx context.Context, key string) ([]task.Task, error) {
	if f.LoadErr != nil {
		return nil, f.LoadErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	tasks := slices.Clone(f.blobs[key])
	if tasks == nil {
		tasks = []task.Task{}
	}
	return tasks, nil
}

// Save implements task.Persister.
func (f *FakeBackend) Save(ctx context.Context, key string, tasks []task.Task) error {
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blobs[key] = slices.Clone(tasks)
	f.Saves++
	return nil
}

// Close implements io.Closer.
func (f *FakeBackend) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return f.CloseErr
}
