package jsonfile_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ltask/internal/persist/jsonfile"
	"ltask/internal/task"
)

func newBackend(t *testing.T) (*jsonfile.Backend, *bytes.Buffer, string) {
	t.Helper()
	var logs bytes.Buffer
	dir := filepath.Join(t.TempDir(), "data")
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return jsonfile.New(dir, logger), &logs, dir
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	b, logs, _ := newBackend(t)

	got, err := b.Load(context.Background(), "tasks")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, logs.String())
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, tasks := range map[string][]task.Task{
		"empty": {},
		"populated": {
			{ID: 2, Text: "second"},
			{ID: 1, Text: "first", Completed: true},
		},
	} {
		t.Run(name, func(t *testing.T) {
			b, _, _ := newBackend(t)

			require.NoError(t, b.Save(ctx, "tasks", tasks))
			got, err := b.Load(ctx, "tasks")
			require.NoError(t, err)
			assert.Equal(t, tasks, got)
		})
	}
}

func TestSave_CreatesDirAndFile(t *testing.T) {
	b, _, dir := newBackend(t)

	require.NoError(t, b.Save(context.Background(), "work", []task.Task{{ID: 1, Text: "x"}}))

	assert.Equal(t, filepath.Join(dir, "work.json"), b.Path("work"))
	data, err := os.ReadFile(b.Path("work"))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"text":"x","completed":false}]`, string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file should be renamed away")
	assert.Equal(t, "work.json", entries[0].Name())
}

func TestSave_Overwrites(t *testing.T) {
	b, _, _ := newBackend(t)
	ctx := context.Background()

	require.NoError(t, b.Save(ctx, "tasks", []task.Task{{ID: 1, Text: "a"}, {ID: 2, Text: "b"}}))
	require.NoError(t, b.Save(ctx, "tasks", []task.Task{{ID: 2, Text: "b"}}))

	got, err := b.Load(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, []task.Task{{ID: 2, Text: "b"}}, got)
}

func TestLoad_KeysAreIndependent(t *testing.T) {
	b, _, _ := newBackend(t)
	ctx := context.Background()

	require.NoError(t, b.Save(ctx, "home", []task.Task{{ID: 1, Text: "home"}}))
	require.NoError(t, b.Save(ctx, "work", []task.Task{{ID: 1, Text: "work"}}))

	got, err := b.Load(ctx, "home")
	require.NoError(t, err)
	assert.Equal(t, "home", got[0].Text)
}

func TestLoad_CorruptFileIsEmpty(t *testing.T) {
	b, logs, dir := newBackend(t)
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(b.Path("tasks"), []byte("{not json"), 0600))

	got, err := b.Load(context.Background(), "tasks")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Contains(t, logs.String(), "stored tasks unreadable")
}

func TestLoad_DropsInvalidRecords(t *testing.T) {
	b, logs, dir := newBackend(t)
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(b.Path("tasks"), []byte(`[{"id":1,"text":"ok"},{"id":2,"text":""}]`), 0600))

	got, err := b.Load(context.Background(), "tasks")
	require.NoError(t, err)
	assert.Equal(t, []task.Task{{ID: 1, Text: "ok"}}, got)
	assert.Contains(t, logs.String(), "dropped invalid task records")
	assert.Contains(t, logs.String(), "count=1")
}

func TestInvalidKey(t *testing.T) {
	b, _, _ := newBackend(t)
	ctx := context.Background()

	for _, key := range []string{"", ".", "..", "a/b", `a\b`} {
		_, err := b.Load(ctx, key)
		assert.Error(t, err, "Load(%q)", key)
		assert.Error(t, b.Save(ctx, key, nil), "Save(%q)", key)
	}
}

func TestClose(t *testing.T) {
	b, _, _ := newBackend(t)
	assert.NoError(t, b.Close())
}
