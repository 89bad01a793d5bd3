package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/khareeta/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	t.Cleanup(func() { assert.NoError(t, store.Close()) })

	return store
}

// ==================== Store Creation and Initialization Tests ====================

func TestNewStore_ErrorHandling(t *testing.T) {
	_, err := NewStore("/invalid\x00path")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestNewStore_Success(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	defer store.Close()

	dbPath := filepath.Join(tempDir, "progress.db")
	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)
	assert.NoError(t, store.db.Ping())
}

func TestNewStore_DirectoryCreation(t *testing.T) {
	nestedDir := filepath.Join(t.TempDir(), "nested", "path", "to", "db")

	store, err := NewStore(nestedDir)
	require.NoError(t, err)
	defer store.Close()

	assert.DirExists(t, nestedDir)
}

func TestNewStore_Migrations(t *testing.T) {
	store := setupTestStore(t)

	var versions []int
	rows, err := store.db.Query("SELECT version FROM schema_migrations ORDER BY version")
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var v int
		require.NoError(t, rows.Scan(&v))
		versions = append(versions, v)
	}
	require.NoError(t, rows.Err())
	require.NotEmpty(t, versions)
	assert.Equal(t, 1, versions[0])

	var name string
	err = store.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='snapshots'",
	).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "snapshots", name)
}

func TestStore_MigrationIdempotency(t *testing.T) {
	tempDir := t.TempDir()

	store1, err := NewStore(tempDir)
	require.NoError(t, err)
	var count1 int
	require.NoError(t, store1.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count1))
	require.NoError(t, store1.Close())

	store2, err := NewStore(tempDir)
	require.NoError(t, err)
	defer store2.Close()
	var count2 int
	require.NoError(t, store2.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count2))

	assert.Equal(t, count1, count2)
}

func TestStore_WALMode(t *testing.T) {
	store := setupTestStore(t)

	var journalMode string
	require.NoError(t, store.db.QueryRow("PRAGMA journal_mode").Scan(&journalMode))
	assert.Equal(t, "wal", journalMode)
}

// ==================== Progress Store Tests ====================

func TestProgressStore_LoadEmpty(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.ProgressStore().Load(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProgressStore_SaveAndLoad(t *testing.T) {
	store := setupTestStore(t)
	ps := store.ProgressStore()
	ctx := context.Background()

	progress := domain.Progress{
		Points: 35,
		Theme:  domain.ThemeDark,
		Lessons: map[string]domain.LessonProgress{
			"resources": {
				MCQ:       map[string]int{"q1": 0, "q2": 2},
				MCQScore:  10,
				MapClick:  map[string]bool{"sukari": true},
				Completed: true,
			},
		},
		LastLessonID: "resources",
		Revision:     "rev-1",
		UpdatedAt:    time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, ps.Save(ctx, progress))

	loaded, err := ps.Load(ctx)

	require.NoError(t, err)
	assert.Equal(t, progress.Points, loaded.Points)
	assert.Equal(t, progress.Theme, loaded.Theme)
	assert.Equal(t, progress.Lessons, loaded.Lessons)
	assert.Equal(t, "resources", loaded.LastLessonID)
	assert.Equal(t, "rev-1", loaded.Revision)
	assert.True(t, progress.UpdatedAt.Equal(loaded.UpdatedAt))
}

func TestProgressStore_SaveReplaces(t *testing.T) {
	store := setupTestStore(t)
	ps := store.ProgressStore()
	ctx := context.Background()

	require.NoError(t, ps.Save(ctx, domain.Progress{Points: 5, Revision: "a"}))
	require.NoError(t, ps.Save(ctx, domain.Progress{Points: 15, Revision: "b"}))

	loaded, err := ps.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 15, loaded.Points)

	var rows int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&rows))
	assert.Equal(t, 1, rows)

	var revision string
	require.NoError(t, store.db.QueryRow("SELECT revision FROM snapshots WHERE key = ?", progressKey).Scan(&revision))
	assert.Equal(t, "b", revision)
}

func TestProgressStore_Reset(t *testing.T) {
	store := setupTestStore(t)
	ps := store.ProgressStore()
	ctx := context.Background()

	require.NoError(t, ps.Save(ctx, domain.Progress{Points: 5}))
	require.NoError(t, ps.Reset(ctx))

	_, err := ps.Load(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Resetting an empty store is not an error.
	assert.NoError(t, ps.Reset(ctx))
}

func TestProgressStore_Persists(t *testing.T) {
	tempDir := t.TempDir()
	ctx := context.Background()

	store1, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, store1.ProgressStore().Save(ctx, domain.Progress{Points: 42}))
	require.NoError(t, store1.Close())

	store2, err := NewStore(tempDir)
	require.NoError(t, err)
	defer store2.Close()

	loaded, err := store2.ProgressStore().Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 42, loaded.Points)
}

func TestProgressStore_CorruptValue(t *testing.T) {
	store := setupTestStore(t)
	_, err := store.db.Exec("INSERT INTO snapshots (key, value) VALUES (?, ?)", progressKey, "{not json")
	require.NoError(t, err)

	_, err = store.ProgressStore().Load(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unmarshalling progress")
}

func TestProgressStore_CancelledContext(t *testing.T) {
	store := setupTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.ProgressStore().Save(ctx, domain.Progress{Points: 1})

	assert.Error(t, err)
}
