// Package export renders a task list as JSON, CSV, or a PDF report.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"ltask/internal/task"
)

// Formats lists the supported export formats.
var Formats = []string{"json", "csv", "pdf"}

// Export renders tasks in the named format. stats summarizes the full
// list and is printed in the PDF header.
//
// The PDF report uses the core Arial font, which only covers cp1252.
// Characters outside it (CJK, emoji) print as '.'; the json and csv
// formats keep the text intact.
func Export(tasks []task.Task, stats task.Stats, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		if tasks == nil {
			tasks = []task.Task{}
		}
		data, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "csv":
		return exportCSV(tasks)
	case "pdf":
		return exportPDF(tasks, stats)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

func exportCSV(tasks []task.Task) ([]byte, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	if err := w.Write([]string{"id", "text", "completed"}); err != nil {
		return nil, err
	}
	for _, t := range tasks {
		if err := w.Write([]string{strconv.FormatInt(t.ID, 10), t.Text, strconv.FormatBool(t.Completed)}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func exportPDF(tasks []task.Task, stats task.Stats) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; translate so accented text renders. Runes
	// with no cp1252 code become '.'.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Task List")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(40, 6, fmt.Sprintf("%d total, %d active, %d completed", stats.Total, stats.Active, stats.Completed))
	pdf.Ln(10)

	for i, t := range tasks {
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		line := fmt.Sprintf("%d. %s %s", i+1, mark, tr(t.Text))
		pdf.MultiCell(0, 6, line, "0", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
