// Package task holds the task list: the ordered task sequence, the active
// filter, and the operations that mutate and query them.
package task

import (
	"context"
	"fmt"
	"strings"
)

// Task is a single to-do item.
// Its position is its index in the owning Store's sequence.
type Task struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Filter selects a view over the task sequence.
type Filter int

const (
	// All matches every task.
	All Filter = iota
	// Active matches tasks that are not completed.
	Active
	// Completed matches completed tasks.
	Completed
)

// String returns the lower-case filter name.
func (f Filter) String() string {
	switch f {
	case Active:
		return "active"
	case Completed:
		return "completed"
	default:
		return "all"
	}
}

// Match reports whether t belongs to the filter's view.
func (f Filter) Match(t Task) bool {
	switch f {
	case Active:
		return !t.Completed
	case Completed:
		return t.Completed
	default:
		return true
	}
}

// ParseFilter parses a filter name. The empty string means All.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return All, nil
	case "active":
		return Active, nil
	case "completed":
		return Completed, nil
	default:
		return All, fmt.Errorf("invalid filter: %s", s)
	}
}

// Stats holds aggregate counts over the whole sequence.
type Stats struct {
	Total     int
	Active    int
	Completed int
}

// Persister loads and saves the full task sequence under a key.
//
// Load returns an empty sequence, not an error, when nothing is stored
// under key or the stored data cannot be decoded.
type Persister interface {
	Load(ctx context.Context, key string) ([]Task, error)
	Save(ctx context.Context, key string, tasks []Task) error
}
