package domain

import "path/filepath"

const (
	// WorkFileName is the name of the workspace configuration file.
	WorkFileName = "lockstep.yaml"

	// ManifestFileName is the name of a project's dependency manifest.
	ManifestFileName = "package.json"

	// DefaultLockfileName is the name of the shared lock file when none is configured.
	DefaultLockfileName = "lockstep.lock.yaml"

	// ChangesDirName is the name of the directory holding change files.
	ChangesDirName = ".changes"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultChangesPath returns the directory that holds change files for a project.
// It joins the workspace root, .changes, and the project name.
func DefaultChangesPath(root, project string) string {
	return filepath.Join(root, ChangesDirName, project)
}
