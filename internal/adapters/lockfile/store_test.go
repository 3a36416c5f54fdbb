package lockfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lockstep/internal/adapters/lockfile"
	"go.trai.ch/lockstep/internal/core/domain"
)

func sample() *domain.Lockfile {
	return &domain.Lockfile{
		Version: domain.LockfileFormatVersion,
		Entries: []domain.LockEntry{
			{Name: "zod", Version: "3.22.4", Integrity: "sha512-abc", Consumers: []string{"web", "app"}},
			{Name: "lib", Version: "1.4.0", Consumers: []string{"app"}},
			{Name: "shared", Version: "0.1.0", Consumers: []string{"app"}, Link: true},
		},
	}
}

func TestStore_WriteThenSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), domain.DefaultLockfileName)
	store := lockfile.NewStore()

	require.NoError(t, store.Write(path, sample()))

	got, err := store.Snapshot(path)
	require.NoError(t, err)
	assert.Equal(t, sample().Canonical(), got)
	assert.Equal(t, sample().Digest(), got.Digest())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestStore_WriteIsCanonical(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lock.yaml")
	store := lockfile.NewStore()
	require.NoError(t, store.Write(path, sample()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	want := `lockfileVersion: 1
packages:
  - name: lib
    version: 1.4.0
    consumers: [app]
  - name: shared
    version: 0.1.0
    consumers: [app]
    link: true
  - name: zod
    version: 3.22.4
    integrity: sha512-abc
    consumers: [app, web]
`
	assert.Equal(t, want, string(data))
}

func TestStore_WriteRejectsDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lock.yaml")
	lf := &domain.Lockfile{
		Version: domain.LockfileFormatVersion,
		Entries: []domain.LockEntry{
			{Name: "lib", Version: "1.0.0"},
			{Name: "lib", Version: "1.0.0"},
		},
	}

	err := lockfile.NewStore().Write(path, lf)
	require.ErrorIs(t, err, domain.ErrDuplicateLockEntry)
	assert.NoFileExists(t, path)
}

func TestStore_SnapshotErrors(t *testing.T) {
	dir := t.TempDir()
	store := lockfile.NewStore()

	_, err := store.Snapshot(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, domain.ErrLockfileNotFound)

	_, err = store.Snapshot(dir)
	require.ErrorIs(t, err, domain.ErrLockfileUnreadable)

	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{name: "empty", content: "\n", wantErr: domain.ErrLockfileCorrupt},
		{name: "not yaml", content: "packages: [", wantErr: domain.ErrLockfileCorrupt},
		{name: "unsupported version", content: "lockfileVersion: 9\n", wantErr: domain.ErrLockfileCorrupt},
		{
			name:    "entry without version",
			content: "lockfileVersion: 1\npackages:\n  - name: lib\n",
			wantErr: domain.ErrLockfileCorrupt,
		},
		{
			name: "duplicate entry",
			content: "lockfileVersion: 1\npackages:\n" +
				"  - name: lib\n    version: 1.0.0\n" +
				"  - name: lib\n    version: 1.0.0\n",
			wantErr: domain.ErrDuplicateLockEntry,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "lock.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), domain.FilePerm))

			_, err := store.Snapshot(path)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDecode_NoPackages(t *testing.T) {
	lf, err := lockfile.Decode([]byte("lockfileVersion: 1\n"))
	require.NoError(t, err)
	assert.Empty(t, lf.Entries)
	assert.Equal(t, domain.EmptyLockfile().Digest(), lf.Digest())
}
