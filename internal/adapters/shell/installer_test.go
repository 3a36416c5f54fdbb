package shell_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lockstep/internal/adapters/detector"
	"go.trai.ch/lockstep/internal/adapters/shell"
	"go.trai.ch/lockstep/internal/core/domain"
	"go.trai.ch/lockstep/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

const fakePNPM = `#!/bin/sh
printf '%s\n' "$@" > args.txt
echo "Packages: +3"
echo "WARN deprecated package" >&2
exit ${FAKE_EXIT:-0}
`

func writeScript(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "fake-pnpm")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o755)) //nolint:gosec // test script must be executable
	return path
}

func incremental() domain.InstallOptions {
	return domain.NewInstallOptions(domain.InstallOptionsSpec{
		Mode:           domain.ModeIncremental,
		ForceReprocess: true,
	})
}

func TestInstaller_Install(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Info("Packages: +3")
	mockLogger.EXPECT().Warn("WARN deprecated package")

	root := t.TempDir()
	bin := writeScript(t, t.TempDir(), fakePNPM)
	cfg := domain.NewConfiguration(domain.ConfigurationSpec{Root: root, Backend: domain.BackendPNPM})

	installer := shell.NewInstaller(mockLogger,
		shell.WithBinary(domain.BackendPNPM, bin),
		shell.WithTerminal(detector.TerminalPipe),
	)
	require.NoError(t, installer.Install(context.Background(), cfg, incremental()))

	args, err := os.ReadFile(filepath.Join(root, "args.txt"))
	require.NoError(t, err)
	assert.Equal(t, "install\n--fix-lockfile\n", string(args))
}

func TestInstaller_CollectLogFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()

	root := t.TempDir()
	bin := writeScript(t, t.TempDir(), fakePNPM)
	cfg := domain.NewConfiguration(domain.ConfigurationSpec{Root: root, Backend: domain.BackendPNPM})
	logPath := filepath.Join(t.TempDir(), "logs", "install.log")

	opts := domain.NewInstallOptions(domain.InstallOptionsSpec{
		Mode:           domain.ModeIncremental,
		CollectLogFile: logPath,
	})

	installer := shell.NewInstaller(mockLogger, shell.WithBinary(domain.BackendPNPM, bin))
	require.NoError(t, installer.Install(context.Background(), cfg, opts))

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Packages: +3")
	assert.Contains(t, string(data), "WARN deprecated package")
}

func TestInstaller_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()

	root := t.TempDir()
	bin := writeScript(t, t.TempDir(), strings.Replace(fakePNPM, "${FAKE_EXIT:-0}", "3", 1))
	cfg := domain.NewConfiguration(domain.ConfigurationSpec{Root: root, Backend: domain.BackendPNPM})

	installer := shell.NewInstaller(mockLogger, shell.WithBinary(domain.BackendPNPM, bin))
	err := installer.Install(context.Background(), cfg, incremental())
	require.ErrorIs(t, err, domain.ErrBackendFailed)
	assert.Equal(t, domain.ClassBackend, domain.ClassOf(err))

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, 3, zErr.Metadata()["exit_code"])
	assert.Equal(t, "pnpm", zErr.Metadata()["package_manager"])
}

func TestInstaller_MissingBinary(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Debug(gomock.Any()).AnyTimes()

	cfg := domain.NewConfiguration(domain.ConfigurationSpec{Root: t.TempDir(), Backend: domain.BackendYarn})
	installer := shell.NewInstaller(mockLogger,
		shell.WithBinary(domain.BackendYarn, filepath.Join(t.TempDir(), "does-not-exist")),
	)

	err := installer.Install(context.Background(), cfg, incremental())
	require.ErrorIs(t, err, domain.ErrBackendFailed)
}

func TestInstaller_NoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	cfg := domain.NewConfiguration(domain.ConfigurationSpec{Root: t.TempDir(), Backend: domain.BackendNPM})
	installer := shell.NewInstaller(mockLogger)

	opts := domain.NewInstallOptions(domain.InstallOptionsSpec{Mode: domain.ModeNoOp})
	require.NoError(t, installer.Install(context.Background(), cfg, opts))
}
