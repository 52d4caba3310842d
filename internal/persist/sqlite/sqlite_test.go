package sqlite

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ltask/internal/task"
)

// createTestBackend opens a database in a temp dir and logs to the returned buffer.
func createTestBackend(t *testing.T) (*Backend, *bytes.Buffer, string) {
	t.Helper()
	var logs bytes.Buffer
	path := filepath.Join(t.TempDir(), "test.db")
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelWarn}))
	b, err := Open(path, logger)
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	return b, &logs, path
}

func TestOpen_CreatesNewDatabase(t *testing.T) {
	_, _, path := createTestBackend(t)

	_, err := os.Stat(path)
	assert.NoError(t, err, "database file was not created")
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 3; i++ {
		b, err := Open(path, nil)
		require.NoError(t, err, "Open() iteration %d", i)
		require.NoError(t, b.Close())
	}
}

func TestOpen_Pragmas(t *testing.T) {
	b, _, _ := createTestBackend(t)

	assert.NoError(t, b.verifyPragma("journal_mode", "wal"))
	assert.NoError(t, b.verifyPragma("synchronous", "1"))
	assert.NoError(t, b.verifyPragma("busy_timeout", "5000"))
	assert.NoError(t, b.verifyPragma("user_version", "1"))
}

func TestOpen_RefusesNewerSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "future.db")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(`PRAGMA user_version = 99`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = Open(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database schema version 99 is newer than supported version 1")
}

func TestOpen_KeepsExistingRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "existing.db")

	b1, err := Open(path, nil)
	require.NoError(t, err)
	_, err = b1.db.Exec(`INSERT INTO blobs (key, value) VALUES ('tasks', '[{"id":1,"text":"kept"}]')`)
	require.NoError(t, err)
	require.NoError(t, b1.Close())

	b2, err := Open(path, nil)
	require.NoError(t, err)
	defer b2.Close()

	assert.NoError(t, b2.verifyPragma("user_version", "1"))
	got, err := b2.Load(context.Background(), "tasks")
	require.NoError(t, err)
	assert.Equal(t, []task.Task{{ID: 1, Text: "kept"}}, got)
}

func TestLoad_MissingKeyIsEmpty(t *testing.T) {
	b, logs, _ := createTestBackend(t)

	got, err := b.Load(context.Background(), "nothing-here")
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
			{ID: 30, Text: "c"},
			{ID: 10, Text: "a", Completed: true},
			{ID: 20, Text: "b"},
		},
	} {
		t.Run(name, func(t *testing.T) {
			b, _, _ := createTestBackend(t)

			require.NoError(t, b.Save(ctx, "tasks", tasks))
			got, err := b.Load(ctx, "tasks")
			require.NoError(t, err)
			assert.Equal(t, tasks, got)
		})
	}
}

func TestSave_Upserts(t *testing.T) {
	b, _, _ := createTestBackend(t)
	ctx := context.Background()
	b.now = func() time.Time { return time.UnixMilli(1234) }

	require.NoError(t, b.Save(ctx, "tasks", []task.Task{{ID: 1, Text: "a"}}))
	require.NoError(t, b.Save(ctx, "tasks", []task.Task{{ID: 2, Text: "b"}}))

	var count int
	var updatedAt int64
	require.NoError(t, b.db.QueryRow(`SELECT COUNT(*), MAX(updated_at) FROM blobs`).Scan(&count, &updatedAt))
	assert.Equal(t, 1, count)
	assert.Equal(t, int64(1234), updatedAt)

	got, err := b.Load(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, []task.Task{{ID: 2, Text: "b"}}, got)
}

func TestLoad_CorruptValueIsEmpty(t *testing.T) {
	b, logs, _ := createTestBackend(t)
	_, err := b.db.Exec(`INSERT INTO blobs (key, value) VALUES ('tasks', 'garbage')`)
	require.NoError(t, err)

	got, err := b.Load(context.Background(), "tasks")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Contains(t, logs.String(), "stored tasks unreadable")
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()
	want := []task.Task{{ID: 1, Text: "survives", Completed: true}}

	b1, err := Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, b1.Save(ctx, "tasks", want))
	require.NoError(t, b1.Close())

	b2, err := Open(path, nil)
	require.NoError(t, err)
	defer b2.Close()

	got, err := b2.Load(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestClose_Twice(t *testing.T) {
	b, err := Open(filepath.Join(t.TempDir(), "test.db"), nil)
	require.NoError(t, err)
	require.NoError(t, b.Close())
	assert.NoError(t, b.Close())
}
