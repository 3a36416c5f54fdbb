package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lockstep/internal/adapters/watcher"
	"go.trai.ch/lockstep/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestWatcher_ReportsWatchedFilesOnly(t *testing.T) {
	dir := t.TempDir()
	manifest := filepath.Join(dir, "package.json")
	readme := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(manifest, []byte(`{"name":"app"}`), 0o600))

	log := mocks.NewMockLogger(gomock.NewController(t))
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	w := watcher.NewWatcher(log, watcher.WithWindow(20*time.Millisecond))
	changes, err := w.Watch(ctx, []string{manifest})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(readme, []byte("docs"), 0o600))
	require.NoError(t, os.WriteFile(manifest, []byte(`{"name":"app","version":"1.0.0"}`), 0o600))

	select {
	case batch := <-changes:
		assert.Equal(t, []string{manifest}, batch)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	for range changes {
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	log := mocks.NewMockLogger(gomock.NewController(t))

	w := watcher.NewWatcher(log)
	_, err := w.Watch(t.Context(), []string{filepath.Join(t.TempDir(), "missing", "package.json")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch directory")
}
