package overrides

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mode.txt")
	require.NoError(t, os.WriteFile(path, []byte("1\n"), 0644))

	var calls atomic.Int32
	w := NewWatcher(WatcherConfig{
		Path:     path,
		Debounce: 50 * time.Millisecond,
		OnChange: func() { calls.Add(1) },
	})
	require.NoError(t, w.Start())
	defer w.Stop()
	assert.True(t, w.IsRunning())

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("2\n"), 0644))
	}

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load(), "a burst of writes reloads once")
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mode.txt")

	var calls atomic.Int32
	w := NewWatcher(WatcherConfig{
		Path:     path,
		Debounce: 20 * time.Millisecond,
		OnChange: func() { calls.Add(1) },
	})
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644))
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	w := NewWatcher(WatcherConfig{Path: filepath.Join(t.TempDir(), "mode.txt")})
	require.NoError(t, w.Start())
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
	assert.False(t, w.IsRunning())
}
