package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lockstep/internal/adapters/config"
	"go.trai.ch/lockstep/internal/core/domain"
	"go.trai.ch/lockstep/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func createFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
}

const workfile = `
version: "1"
packageManager: npm
lockfile: locks/workspace.lock.yaml
ensureConsistentVersions: true
projects:
  - "apps/*"
  - "libs/*"
  - "apps/web"
`

func TestLoader_Load(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn("package.json missing in libs/docs, skipping")

	root := t.TempDir()
	createFile(t, root, domain.WorkFileName, workfile)
	createFile(t, root, "apps/web/package.json", `{
		"name": "web",
		"version": "2.0.0",
		"dependencies": {"react": "^18.2.0", "shared": "workspace:*"},
		"devDependencies": {"react": "^17.0.0", "vitest": "^1.0.0"},
		"optionalDependencies": {"fsevents": "^2.3.0"}
	}`)
	createFile(t, root, "libs/shared/package.json", `{"name": "shared", "version": "0.3.0", "private": true}`)
	createFile(t, root, "libs/docs/README.md", "no manifest here")
	createFile(t, root, "libs/notes.txt", "not a directory")

	cfg, err := config.NewLoader(mockLogger).Load(root)
	require.NoError(t, err)

	assert.Equal(t, root, cfg.Root())
	assert.Equal(t, domain.BackendNPM, cfg.Backend())
	assert.Equal(t, filepath.Join(root, "locks", "workspace.lock.yaml"), cfg.LockfilePath())
	assert.True(t, cfg.EnsureConsistentVersions())

	assert.Equal(t, []domain.Project{
		{
			Name:    "web",
			Version: "2.0.0",
			Folder:  "apps/web",
			Dependencies: map[string]string{
				"react":    "^18.2.0",
				"shared":   "workspace:*",
				"vitest":   "^1.0.0",
				"fsevents": "^2.3.0",
			},
			ShouldPublish: true,
		},
		{
			Name:          "shared",
			Version:       "0.3.0",
			Folder:        "libs/shared",
			Dependencies:  map[string]string{},
			ShouldPublish: false,
		},
	}, cfg.Projects())
}

func TestLoader_Load_FromSubdirectory(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	root := t.TempDir()
	createFile(t, root, domain.WorkFileName, "projects: [\"apps/*\"]\n")
	createFile(t, root, "apps/app/package.json", `{"name": "app", "version": "1.0.0"}`)

	cfg, err := config.NewLoader(mockLogger).Load(filepath.Join(root, "apps", "app"))
	require.NoError(t, err)

	assert.Equal(t, root, cfg.Root())
	assert.Equal(t, domain.BackendPNPM, cfg.Backend())
	assert.Equal(t, filepath.Join(root, domain.DefaultLockfileName), cfg.LockfilePath())
	require.Len(t, cfg.Projects(), 1)
	assert.Equal(t, "app", cfg.Projects()[0].Name)
}

func TestLoader_Load_Errors(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr error
	}{
		{
			name:    "no workspace file",
			files:   map[string]string{},
			wantErr: domain.ErrConfigNotFound,
		},
		{
			name:    "unknown package manager",
			files:   map[string]string{domain.WorkFileName: "packageManager: bun\n"},
			wantErr: domain.ErrUnknownBackend,
		},
		{
			name:    "unsupported version",
			files:   map[string]string{domain.WorkFileName: "version: \"2\"\n"},
			wantErr: domain.ErrConfigParseFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockLogger := mocks.NewMockLogger(ctrl)

			root := t.TempDir()
			for name, content := range tt.files {
				createFile(t, root, name, content)
			}

			_, err := config.NewLoader(mockLogger).Load(root)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestLoader_Load_ParseFailures(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr error
	}{
		{
			name:    "invalid yaml",
			files:   map[string]string{domain.WorkFileName: "projects: [\n"},
			wantErr: domain.ErrConfigParseFailed,
		},
		{
			name: "invalid manifest",
			files: map[string]string{
				domain.WorkFileName:     "projects: [\"apps/*\"]\n",
				"apps/app/package.json": "{not json",
			},
			wantErr: domain.ErrManifestParseFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockLogger := mocks.NewMockLogger(ctrl)

			root := t.TempDir()
			for name, content := range tt.files {
				createFile(t, root, name, content)
			}

			_, err := config.NewLoader(mockLogger).Load(root)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, domain.ClassConfig, domain.ClassOf(err))
		})
	}
}
