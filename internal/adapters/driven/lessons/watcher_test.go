package lessons

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/khareeta/internal/core/domain"
)

func TestNewWatcher_EmbeddedRejected(t *testing.T) {
	_, err := NewWatcher(NewYAMLSource(""))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := writeLessons(t, "lessons:\n  - id: one\n")
	w, err := NewWatcher(NewYAMLSource(path))
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)

	reloaded := make(chan *domain.Dataset, 4)
	w.OnChange(func(d *domain.Dataset) { reloaded <- d })
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("lessons:\n  - id: one\n  - id: two\n"), 0o600))

	select {
	case d := <-reloaded:
		require.Len(t, d.Lessons, 2)
		assert.Equal(t, "two", d.Lessons[1].ID)
	case <-time.After(5 * time.Second):
		t.Fatal("dataset was not reloaded")
	}
}

func TestWatcher_InvalidFileKeepsPrevious(t *testing.T) {
	path := writeLessons(t, "lessons:\n  - id: one\n")
	w, err := NewWatcher(NewYAMLSource(path))
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)

	reloaded := make(chan *domain.Dataset, 4)
	w.OnChange(func(d *domain.Dataset) { reloaded <- d })
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("lessons: []\n"), 0o600))

	select {
	case <-reloaded:
		t.Fatal("handler called for invalid dataset")
	case <-time.After(300 * time.Millisecond):
	}
}
