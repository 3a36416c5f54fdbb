package domain

import "slices"

// UpdatePolicy carries the caller's update flags.
type UpdatePolicy struct {
	// Full requests a full re-resolution of every dependency.
	Full bool
	// Recheck requests that the backend reprocess the lock file even when it looks current.
	Recheck bool
	// SkipInstall requests that only the lock file be rewritten.
	SkipInstall bool
	// NoLink requests that workspace links not be created.
	NoLink bool
	// BypassPolicy skips workspace policies such as consistent versions.
	BypassPolicy bool
	// Backend is the package manager that will perform the update.
	Backend Backend
	// CollectLogFile is a path that receives a copy of the backend output.
	CollectLogFile string
}

// Mode is the kind of update the backend must perform.
type Mode int

const (
	// ModeNoOp means the lock file already satisfies every manifest.
	ModeNoOp Mode = iota
	// ModeIncremental re-resolves only the dependencies that need it.
	ModeIncremental
	// ModeFull re-resolves every dependency.
	ModeFull
	// ModeLockOnly rewrites the lock file without materializing a dependency tree.
	ModeLockOnly
)

func (m Mode) String() string {
	switch m {
	case ModeNoOp:
		return "no-op"
	case ModeIncremental:
		return "incremental"
	case ModeFull:
		return "full"
	case ModeLockOnly:
		return "lock-only"
	default:
		return "unknown"
	}
}

// InstallOptionsSpec describes the fields of an InstallOptions record.
type InstallOptionsSpec struct {
	AllowLockUpdates bool
	Mode             Mode
	ForceReprocess   bool
	FullUpgrade      bool
	NoLink           bool
	BypassPolicy     bool
	CollectLogFile   string
	Targets          []string
	Snapshot         uint64
}

// InstallOptions is the resolved instruction handed to the package manager.
// It is immutable and only valid for the lock file snapshot it was computed against.
type InstallOptions struct {
	allowLockUpdates bool
	mode             Mode
	forceReprocess   bool
	fullUpgrade      bool
	noLink           bool
	bypassPolicy     bool
	collectLogFile   string
	targets          []string
	snapshot         uint64
}

// NewInstallOptions builds an immutable InstallOptions record.
func NewInstallOptions(spec InstallOptionsSpec) InstallOptions {
	return InstallOptions{
		allowLockUpdates: spec.AllowLockUpdates,
		mode:             spec.Mode,
		forceReprocess:   spec.ForceReprocess,
		fullUpgrade:      spec.FullUpgrade,
		noLink:           spec.NoLink,
		bypassPolicy:     spec.BypassPolicy,
		collectLogFile:   spec.CollectLogFile,
		targets:          slices.Clone(spec.Targets),
		snapshot:         spec.Snapshot,
	}
}

// AllowLockUpdates reports whether the backend may rewrite the lock file.
func (o InstallOptions) AllowLockUpdates() bool { return o.allowLockUpdates }

// Mode returns the update mode.
func (o InstallOptions) Mode() Mode { return o.mode }

// ForceReprocess reports whether the backend must reprocess an already consistent lock file.
func (o InstallOptions) ForceReprocess() bool { return o.forceReprocess }

// FullUpgrade reports whether every dependency is re-resolved.
func (o InstallOptions) FullUpgrade() bool { return o.fullUpgrade }

// NoLink reports whether workspace links are suppressed.
func (o InstallOptions) NoLink() bool { return o.noLink }

// BypassPolicy reports whether workspace policies were skipped.
func (o InstallOptions) BypassPolicy() bool { return o.bypassPolicy }

// CollectLogFile returns the path receiving backend output, if any.
func (o InstallOptions) CollectLogFile() string { return o.collectLogFile }

// Targets returns the dependency names an incremental update may change.
func (o InstallOptions) Targets() []string { return slices.Clone(o.targets) }

// Snapshot returns the digest of the lock file the options were computed against.
func (o InstallOptions) Snapshot() uint64 { return o.snapshot }

// Restricted reports whether the backend result must be limited to Targets.
// Full upgrades and forced reprocessing may touch any entry.
func (o InstallOptions) Restricted() bool {
	if o.fullUpgrade || o.forceReprocess {
		return false
	}
	return o.mode == ModeIncremental || o.mode == ModeLockOnly
}
