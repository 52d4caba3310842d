package output

import (
	"bytes"
	"testing"

	"ltask/internal/task"
)

func TestFormatTask(t *testing.T) {
	tests := []struct {
		name string
		num  int
		task task.Task
		want string
	}{
		{"active", 1, task.Task{ID: 1, Text: "Buy milk"}, "   1  [ ] Buy milk\n"},
		{"completed", 12, task.Task{ID: 2, Text: "Done", Completed: true}, "  12  [x] Done\n"},
		{"newlines", 3, task.Task{ID: 3, Text: "two\r\nlines"}, "   3  [ ] two  lines\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			FormatTask(&buf, tt.num, tt.task)
			if buf.String() != tt.want {
				t.Errorf("expected %q, got %q", tt.want, buf.String())
			}
		})
	}
}

func TestFormatStats(t *testing.T) {
	var buf bytes.Buffer
	FormatStats(&buf, task.Stats{Total: 3, Active: 2, Completed: 1})

	expected := "3 total, 2 active, 1 completed\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestFormatSettings(t *testing.T) {
	var buf bytes.Buffer
	FormatSettings(&buf, [][2]string{{"backend", "json"}, {"key", "tasks"}})

	expected := "backend: json\nkey: tasks\n"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}
