package export_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ltask/internal/export"
	"ltask/internal/task"
)

var sample = []task.Task{
	{ID: 1, Text: "Buy milk"},
	{ID: 2, Text: "Call \"Bob\", then Alice", Completed: true},
}

var sampleStats = task.Stats{Total: 2, Active: 1, Completed: 1}

func TestExport_JSON(t *testing.T) {
	data, err := export.Export(sample, sampleStats, "json")
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"id": 1, "text": "Buy milk", "completed": false},
		{"id": 2, "text": "Call \"Bob\", then Alice", "completed": true}
	]`, string(data))
}

func TestExport_JSONEmpty(t *testing.T) {
	data, err := export.Export(nil, task.Stats{}, "JSON")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestExport_CSV(t *testing.T) {
	data, err := export.Export(sample, sampleStats, "csv")
	require.NoError(t, err)

	want := "id,text,completed\n" +
		"1,Buy milk,false\n" +
		"2,\"Call \"\"Bob\"\", then Alice\",true\n"
	assert.Equal(t, want, string(data))
}

func TestExport_PDF(t *testing.T) {
	data, err := export.Export(append(sample, task.Task{ID: 3, Text: "café"}), sampleStats, "pdf")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")), "not a PDF: %q", data[:min(len(data), 16)])
}

func TestExport_PDFOutsideCodePage(t *testing.T) {
	tasks := []task.Task{{ID: 1, Text: "日本語のタスク"}, {ID: 2, Text: "ship it 🚀"}}

	data, err := export.Export(tasks, task.Stats{Total: 2, Active: 2}, "pdf")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	csvData, err := export.Export(tasks, task.Stats{}, "csv")
	require.NoError(t, err)
	assert.Contains(t, string(csvData), "日本語のタスク")
	assert.Contains(t, string(csvData), "ship it 🚀")
}

func TestExport_UnknownFormat(t *testing.T) {
	_, err := export.Export(sample, sampleStats, "xml")
	require.Error(t, err)
	assert.Equal(t, "unknown format: xml", err.Error())
}
