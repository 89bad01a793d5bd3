package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".khareeta", "config.toml"), store.Path())
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	nestedPath := filepath.Join(t.TempDir(), "nested", "deep", "path")

	store, err := NewConfigStore(nestedPath)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(nestedPath, "config.toml"), store.Path())
	info, err := os.Stat(nestedPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestNewConfigStore_MkdirAllError(t *testing.T) {
	store, err := NewConfigStore("/dev/null/cannot/create/dirs")

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not valid TOML {{{[["), 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("lessons.path", "/srv/lessons.yaml"))
	require.NoError(t, store.Set("query.fact_result_cap", 6))
	require.NoError(t, store.Set("media.enabled", true))
	require.NoError(t, store.Set("query.stop_words", []string{"في", "من"}))

	assert.Equal(t, "/srv/lessons.yaml", store.GetString("lessons.path"))
	assert.Equal(t, 6, store.GetInt("query.fact_result_cap"))
	assert.True(t, store.GetBool("media.enabled"))
	assert.Equal(t, []string{"في", "من"}, store.GetStringSlice("query.stop_words"))

	// Wrong types and missing keys yield zero values.
	assert.Empty(t, store.GetString("query.fact_result_cap"))
	assert.Zero(t, store.GetInt("lessons.path"))
	assert.False(t, store.GetBool("lessons.path"))
	assert.Nil(t, store.GetStringSlice("missing"))
	val, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_GetStringSliceReturnsCopy(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("query.stop_words", []string{"في"}))

	words := store.GetStringSlice("query.stop_words")
	words[0] = "changed"

	assert.Equal(t, []string{"في"}, store.GetStringSlice("query.stop_words"))
}

func TestConfigStore_PersistsNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store1, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store1.Set("query.fact_result_cap", 8))
	require.NoError(t, store1.Set("query.stop_words", []string{"في", "على"}))
	require.NoError(t, store1.Set("media.openverse_base_url", "https://api.openverse.org/v1"))
	require.NoError(t, store1.Set("lessons.path", ""))

	raw, err := os.ReadFile(store1.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[query]")
	assert.Contains(t, string(raw), "[media]")
	assert.NotContains(t, string(raw), "query.fact_result_cap")

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 8, store2.GetInt("query.fact_result_cap"))
	assert.Equal(t, []string{"في", "على"}, store2.GetStringSlice("query.stop_words"))
	assert.Equal(t, "https://api.openverse.org/v1", store2.GetString("media.openverse_base_url"))
	_, ok := store2.Get("lessons.path")
	assert.True(t, ok)
	assert.Equal(t, []string{
		"lessons.path",
		"media.openverse_base_url",
		"query.fact_result_cap",
		"query.stop_words",
	}, store2.Keys())
}

func TestConfigStore_LoadsHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := "[query]\nfact_result_cap = 3\nstop_words = [\"في\"]\n\n[media]\nmax_images = 2\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 3, store.GetInt("query.fact_result_cap"))
	assert.Equal(t, 2, store.GetInt("media.max_images"))
	assert.Equal(t, []string{"في"}, store.GetStringSlice("query.stop_words"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("query.per_token_weight", 2))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("# Just a comment\n\n"), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Empty(t, store.Keys())
}

func TestConfigStore_ConflictingKeys(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("query.fact_result_cap", 6))

	err := store.Set("query", "flat")

	assert.Error(t, err)
	_, ok := store.Get("query")
	assert.False(t, ok, "failed set must not leave the value behind")
	assert.Equal(t, 6, store.GetInt("query.fact_result_cap"))
}

func TestConfigStore_SetWithUnmarshallableValue(t *testing.T) {
	store := newTestStore(t)

	err := store.Set("channel", make(chan int))

	assert.Error(t, err)
	_, ok := store.Get("channel")
	assert.False(t, ok)
}

func TestConfigStore_SetRestoresPreviousOnFailure(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("media.max_images", 4))

	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	err := store.Set("media.max_images", 9)

	assert.Error(t, err)
	assert.Equal(t, 4, store.GetInt("media.max_images"))
}

func TestConfigStore_Load_InvalidTOML(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Set("valid", "data"))
	require.NoError(t, os.WriteFile(store.Path(), []byte("invalid toml syntax ][}{"), 0600))

	assert.Error(t, store.Load())
}

func TestConfigStore_Save_Explicit(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	store.mu.Lock()
	store.data["media.page_size"] = int64(12)
	store.mu.Unlock()
	require.NoError(t, store.Save())

	store2, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, 12, store2.GetInt("media.page_size"))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			key := "query.key" + string(rune('0'+id))
			_ = store.Set(key, id)
			_ = store.GetInt(key)
			_ = store.Keys()
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.Keys(), 10)
}

func TestUnflattenMap(t *testing.T) {
	nested, err := unflattenMap(map[string]any{
		"a.b.c": 1,
		"a.d":   "x",
		"e":     true,
	})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"a": map[string]any{
			"b": map[string]any{"c": 1},
			"d": "x",
		},
		"e": true,
	}, nested)
	assert.Equal(t, map[string]any{"a.b.c": 1, "a.d": "x", "e": true}, flattenMap(nested, ""))
}
