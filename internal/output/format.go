// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"ltask/internal/task"
)

// EmptyMessage is printed when a view has no tasks.
const EmptyMessage = "no tasks found"

// FormatTask formats a task line.
// Format: "{N:>4}  [x] {TEXT}\n" (4-wide right-aligned position, two spaces,
// completion box, text). N is the 1-based position in the full list.
func FormatTask(w io.Writer, num int, t task.Task) {
	fmt.Fprintf(w, "%4d  %s %s\n", num, checkbox(t.Completed), normalizeText(t.Text))
}

// FormatStats formats the summary line.
func FormatStats(w io.Writer, st task.Stats) {
	fmt.Fprintf(w, "%d total, %d active, %d completed\n", st.Total, st.Active, st.Completed)
}

// FormatSettings prints one "name: value" line per setting.
func FormatSettings(w io.Writer, settings [][2]string) {
	for _, kv := range settings {
		fmt.Fprintf(w, "%s: %s\n", kv[0], kv[1])
	}
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// normalizeText replaces newlines with spaces so every task stays on one line.
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	return strings.ReplaceAll(text, "\n", " ")
}
