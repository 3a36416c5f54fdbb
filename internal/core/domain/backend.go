package domain

import "strings"

// Backend identifies the package manager that materializes the dependency tree.
type Backend string

const (
	// BackendPNPM is the pnpm package manager.
	BackendPNPM Backend = "pnpm"
	// BackendNPM is the npm package manager.
	BackendNPM Backend = "npm"
	// BackendYarn is the yarn package manager.
	BackendYarn Backend = "yarn"
)

// ParseBackend validates a package manager name.
func ParseBackend(name string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(name))); b {
	case BackendPNPM, BackendNPM, BackendYarn:
		return b, nil
	default:
		return "", Raise(ErrUnknownBackend, "package_manager", name)
	}
}

// SupportsLockOnly reports whether the backend can rewrite the lock file without
// installing anything.
func (b Backend) SupportsLockOnly() bool {
	return b == BackendPNPM
}

func (b Backend) String() string {
	return string(b)
}
