package task

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Clock supplies the wall time used to derive task ids.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used for id assignment.
func WithClock(c Clock) Option {
	return func(s *Store) {
		s.clock = c
	}
}

// WithFilter sets the initial active filter.
func WithFilter(f Filter) Option {
	return func(s *Store) {
		s.filter = f
	}
}

// Store owns the ordered task sequence and the active filter.
// Every mutation is written through to the Persister before returning.
//
// A Store is not safe for concurrent use.
type Store struct {
	p      Persister
	key    string
	clock  Clock
	filter Filter
	tasks  []Task
	lastID int64
}

// Open creates a Store and loads the sequence saved under key.
func Open(ctx context.Context, p Persister, key string, opts ...Option) (*Store, error) {
	s := &Store{
		p:     p,
		key:   key,
		clock: systemClock{},
	}
	for _, opt := range opts {
		opt(s)
	}

	tasks, err := p.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	s.tasks = tasks
	for _, t := range tasks {
		if t.ID > s.lastID {
			s.lastID = t.ID
		}
	}
	return s, nil
}

// Key returns the storage key the store persists under.
func (s *Store) Key() string { return s.key }

// Add appends a new active task. Text that is empty after trimming is
// ignored and reported as not added.
func (s *Store) Add(ctx context.Context, text string) (Task, bool, error) {
	text = CleanText(text)
	if text == "" {
		return Task{}, false, nil
	}

	t := Task{ID: s.nextID(), Text: text}
	s.tasks = append(s.tasks, t)
	return t, true, s.save(ctx)
}

// Delete removes the task with the given id. An unknown id is a no-op.
func (s *Store) Delete(ctx context.Context, id int64) (bool, error) {
	i := s.IndexOf(id)
	if i >= 0 {
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	}
	return i >= 0, s.save(ctx)
}

// Toggle flips the completion state of the task with the given id.
// An unknown id is a no-op.
func (s *Store) Toggle(ctx context.Context, id int64) (bool, error) {
	i := s.IndexOf(id)
	if i >= 0 {
		s.tasks[i].Completed = !s.tasks[i].Completed
	}
	return i >= 0, s.save(ctx)
}

// Edit replaces the text of the task with the given id. Unknown ids and
// text that is empty after trimming leave the store unchanged.
func (s *Store) Edit(ctx context.Context, id int64, text string) (bool, error) {
	text = CleanText(text)
	i := s.IndexOf(id)
	if text == "" || i < 0 {
		return false, nil
	}
	s.tasks[i].Text = text
	return true, s.save(ctx)
}

// Reorder moves the tasks named in ids to the front, in that order.
// Tasks not named keep their relative order after them; unknown and
// repeated ids are ignored.
func (s *Store) Reorder(ctx context.Context, ids []int64) error {
	byID := make(map[int64]int, len(s.tasks))
	for i, t := range s.tasks {
		byID[t.ID] = i
	}

	placed := make([]bool, len(s.tasks))
	ordered := make([]Task, 0, len(s.tasks))
	for _, id := range ids {
		i, ok := byID[id]
		if !ok || placed[i] {
			continue
		}
		placed[i] = true
		ordered = append(ordered, s.tasks[i])
	}
	for i, t := range s.tasks {
		if !placed[i] {
			ordered = append(ordered, t)
		}
	}

	s.tasks = ordered
	return s.save(ctx)
}

// Filtered returns a copy of the tasks matching f, in store order.
func (s *Store) Filtered(f Filter) []Task {
	out := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// All returns a copy of the full sequence.
func (s *Store) All() []Task { return s.Filtered(All) }

// View returns the tasks matching the active filter.
func (s *Store) View() []Task { return s.Filtered(s.filter) }

// Filter returns the active filter.
func (s *Store) Filter() Filter { return s.filter }

// SetFilter changes the active filter. The filter is not persisted.
func (s *Store) SetFilter(f Filter) { s.filter = f }

// Stats counts the tasks in the full sequence.
func (s *Store) Stats() Stats {
	st := Stats{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Completed {
			st.Completed++
		}
	}
	st.Active = st.Total - st.Completed
	return st
}

// Get returns the task with the given id.
func (s *Store) Get(id int64) (Task, bool) {
	if i := s.IndexOf(id); i >= 0 {
		return s.tasks[i], true
	}
	return Task{}, false
}

// IndexOf returns the position of the task with the given id, or -1.
func (s *Store) IndexOf(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// nextID derives an id from the clock in milliseconds. It is always
// greater than every id the store has held.
func (s *Store) nextID() int64 {
	id := s.clock.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func (s *Store) save(ctx context.Context) error {
	if err := s.p.Save(ctx, s.key, s.tasks); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

// CleanText trims surrounding whitespace and normalizes to NFC. Stored
// text goes through it on add, edit and load.
func CleanText(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}
