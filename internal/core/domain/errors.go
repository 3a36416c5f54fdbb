package domain

import (
	"errors"
	"fmt"

	"go.trai.ch/zerr"
)

var (
	// ErrDuplicateProject is returned when two projects in a workspace share the same name.
	ErrDuplicateProject = zerr.New("duplicate project name")

	// ErrInvalidProjectName is returned when a project has an empty or malformed name.
	ErrInvalidProjectName = zerr.New("invalid project name")

	// ErrUnresolvedWorkspaceReference is returned when a workspace reference names a project
	// that is not part of the workspace.
	ErrUnresolvedWorkspaceReference = zerr.New("workspace reference does not resolve to a project")

	// ErrInvalidRange is returned when a project requests a version range that cannot be parsed.
	ErrInvalidRange = zerr.New("invalid version range")

	// ErrInvalidProjectVersion is returned when a workspace project is referenced by range
	// but its manifest declares no valid version.
	ErrInvalidProjectVersion = zerr.New("project manifest declares an invalid version")

	// ErrProjectNotFound is returned when a command names a project the workspace does not contain.
	ErrProjectNotFound = zerr.New("project not found")

	// ErrDuplicateLockEntry is returned when a lock file records the same name and version twice.
	ErrDuplicateLockEntry = zerr.New("duplicate lock file entry")

	// ErrInvalidLockedVersion is returned when a lock entry records a version that cannot be parsed.
	ErrInvalidLockedVersion = zerr.New("invalid locked version")

	// ErrLockfileNotFound is returned when the lock file does not exist yet.
	ErrLockfileNotFound = zerr.New("lock file not found")

	// ErrLockfileUnreadable is returned when the lock file exists but cannot be read.
	ErrLockfileUnreadable = zerr.New("lock file is unreadable")

	// ErrLockfileCorrupt is returned when the lock file cannot be parsed.
	ErrLockfileCorrupt = zerr.New("lock file is corrupt")

	// ErrLockfileWriteFailed is returned when the lock file cannot be written.
	ErrLockfileWriteFailed = zerr.New("failed to write lock file")

	// ErrStaleSnapshot is returned when the lock file changed after install options were computed.
	ErrStaleSnapshot = zerr.New("lock file changed since it was checked")

	// ErrLockfileOutdated is returned by the check command when the lock file does not satisfy
	// the project manifests.
	ErrLockfileOutdated = zerr.New("lock file does not satisfy the project manifests")

	// ErrUnsupportedFlag is returned when a flag is used with a backend that cannot honor it.
	ErrUnsupportedFlag = zerr.New("flag is not supported by the package manager")

	// ErrInvalidUsage is returned when the command line cannot be parsed, such as an
	// unknown flag or a malformed flag value.
	ErrInvalidUsage = zerr.New("invalid usage")

	// ErrUnknownBackend is returned when the configured package manager is not recognized.
	ErrUnknownBackend = zerr.New("unknown package manager, expected 'pnpm', 'npm' or 'yarn'")

	// ErrInconsistentVersions is returned when projects request different ranges of the same
	// dependency while consistent versions are enforced.
	ErrInconsistentVersions = zerr.New("projects request inconsistent versions of a dependency")

	// ErrBackendFailed is returned when the package manager exits unsuccessfully.
	ErrBackendFailed = zerr.New("package manager failed")

	// ErrConfigNotFound is returned when no workspace file is found above the working directory.
	ErrConfigNotFound = zerr.New("could not find lockstep.yaml")

	// ErrConfigReadFailed is returned when the workspace file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the workspace file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrManifestParseFailed is returned when a project's package.json cannot be parsed.
	ErrManifestParseFailed = zerr.New("failed to parse project manifest")

	// ErrChangeWriteFailed is returned when a change file cannot be written.
	ErrChangeWriteFailed = zerr.New("failed to write change file")
)

// Raise returns an error matching sentinel under errors.Is that carries the given
// key/value pairs as metadata. A trailing key without a value is ignored.
func Raise(sentinel error, kv ...any) error {
	err := zerr.Wrap(sentinel, "")
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		err = zerr.With(err, key, kv[i+1])
	}
	return err
}

// ErrorClass groups errors by how the caller must react to them.
type ErrorClass int

const (
	// ClassUnknown covers errors raised outside the domain, such as I/O failures.
	ClassUnknown ErrorClass = iota
	// ClassGraph covers malformed project sets. Fatal, nothing can be decided.
	ClassGraph
	// ClassConsistency covers lock files that cannot be trusted and failed workspace writes.
	ClassConsistency
	// ClassPolicy covers illegal flag combinations. Reported before any I/O.
	ClassPolicy
	// ClassBackend covers failures relayed from the package manager.
	ClassBackend
	// ClassStale covers a lock file found outdated by a read-only check.
	ClassStale
	// ClassConfig covers missing or malformed workspace configuration.
	ClassConfig
)

func (c ErrorClass) String() string {
	switch c {
	case ClassGraph:
		return "graph"
	case ClassConsistency:
		return "consistency"
	case ClassPolicy:
		return "policy"
	case ClassBackend:
		return "backend"
	case ClassStale:
		return "stale"
	case ClassConfig:
		return "config"
	default:
		return "unknown"
	}
}

var errorClasses = []struct {
	class     ErrorClass
	sentinels []error
}{
	{ClassPolicy, []error{ErrUnsupportedFlag, ErrInvalidUsage, ErrUnknownBackend, ErrInconsistentVersions}},
	{ClassBackend, []error{ErrBackendFailed}},
	{ClassStale, []error{ErrLockfileOutdated}},
	{ClassGraph, []error{
		ErrDuplicateProject, ErrInvalidProjectName, ErrUnresolvedWorkspaceReference,
		ErrInvalidRange, ErrInvalidProjectVersion, ErrProjectNotFound,
	}},
	{ClassConsistency, []error{
		ErrDuplicateLockEntry, ErrInvalidLockedVersion, ErrLockfileUnreadable,
		ErrLockfileCorrupt, ErrLockfileNotFound, ErrLockfileWriteFailed, ErrStaleSnapshot,
		ErrChangeWriteFailed,
	}},
	{ClassConfig, []error{
		ErrConfigNotFound, ErrConfigReadFailed, ErrConfigParseFailed, ErrManifestParseFailed,
	}},
}

// ClassOf reports the class of err by matching it against the domain sentinels.
func ClassOf(err error) ErrorClass {
	if err == nil {
		return ClassUnknown
	}
	for _, group := range errorClasses {
		for _, sentinel := range group.sentinels {
			if errors.Is(err, sentinel) {
				return group.class
			}
		}
	}
	return ClassUnknown
}
