package ports

import "go.trai.ch/lockstep/internal/core/domain"

// LockfileStore defines the interface for reading and writing the shared lock file.
//
//go:generate mockgen -source=lockfile_store.go -destination=mocks/mock_lockfile_store.go -package=mocks
type LockfileStore interface {
	// Snapshot reads the lock file at path.
	// It returns domain.ErrLockfileNotFound when the file does not exist, and
	// domain.ErrLockfileUnreadable or domain.ErrLockfileCorrupt when it cannot be trusted.
	Snapshot(path string) (*domain.Lockfile, error)

	// Write replaces the lock file at path atomically.
	Write(path string, lockfile *domain.Lockfile) error
}
