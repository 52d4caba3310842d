// Package persist defines the storage backends for the task list and the
// blob format they share.
package persist

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"ltask/internal/task"
)

// Backend is a task.Persister that holds resources until closed.
type Backend interface {
	task.Persister
	io.Closer
}

// ValidKey reports whether key can name a stored task list. Keys become
// file names in the JSON backend, so path separators and dot names are
// rejected. Callers trim the key first.
func ValidKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("invalid storage key: %q", key)
	}
	return nil
}

// Encode serializes tasks as a JSON array of {id, text, completed} records.
// A nil sequence encodes as an empty array.
func Encode(tasks []task.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}
	return data, nil
}

// Decode parses a blob written by Encode.
//
// Malformed JSON is an error. A JSON null or empty input yields an empty
// sequence. Records with a non-positive id, blank text, or an id already
// seen earlier in the blob are dropped; the count of dropped records is
// returned so callers can report it. Kept text is cleaned the same way
// task.Store cleans new text.
func Decode(data []byte) ([]task.Task, int, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return []task.Task{}, 0, nil
	}

	var records []task.Task
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, 0, fmt.Errorf("decode tasks: %w", err)
	}

	tasks := make([]task.Task, 0, len(records))
	seen := make(map[int64]bool, len(records))
	dropped := 0
	for _, r := range records {
		r.Text = task.CleanText(r.Text)
		if r.ID <= 0 || r.Text == "" || seen[r.ID] {
			dropped++
			continue
		}
		seen[r.ID] = true
		tasks = append(tasks, r)
	}
	return tasks, dropped, nil
}
