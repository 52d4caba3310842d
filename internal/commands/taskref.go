package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"ltask/internal/task"
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Pos  int   // 1-based position in the full list, 0 if ByID
	ID   int64 // task id, 0 unless ByID
	ByID bool  // true for "#<id>" references
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a single task reference.
//
// Parsing rules:
//  1. All digits (e.g. 3) → position in the full list, as printed by list
//  2. '#' followed by digits (e.g. #1718000000000) → task id
//  3. Anything else → error: invalid task reference: <ref>
func ParseTaskRef(arg string) (TaskRef, error) {
	if arg == "" {
		return TaskRef{}, ErrTaskRefRequired
	}

	if isAllDigits(arg) {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
		}
		return TaskRef{Pos: n}, nil
	}

	if rest, ok := strings.CutPrefix(arg, "#"); ok && isAllDigits(rest) {
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
		}
		return TaskRef{ID: id, ByID: true}, nil
	}

	return TaskRef{}, fmt.Errorf("invalid task reference: %s", arg)
}

// String formats the reference the way the user typed it.
func (r TaskRef) String() string {
	if r.ByID {
		return "#" + strconv.FormatInt(r.ID, 10)
	}
	return strconv.Itoa(r.Pos)
}

// Resolve finds the referenced task in st.
func (r TaskRef) Resolve(st *task.Store) (task.Task, error) {
	if r.ByID {
		t, ok := st.Get(r.ID)
		if !ok {
			return task.Task{}, fmt.Errorf("task not found: %s", r)
		}
		return t, nil
	}

	all := st.All()
	if r.Pos < 1 || r.Pos > len(all) {
		return task.Task{}, fmt.Errorf("task number out of range: %d", r.Pos)
	}
	return all[r.Pos-1], nil
}

// resolveArg parses and resolves one reference argument.
func resolveArg(st *task.Store, arg string) (task.Task, error) {
	ref, err := ParseTaskRef(arg)
	if err != nil {
		return task.Task{}, err
	}
	return ref.Resolve(st)
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
