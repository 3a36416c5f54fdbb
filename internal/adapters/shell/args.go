package shell

import (
	"go.trai.ch/lockstep/internal/core/domain"
)

// Args returns the package manager arguments for opts. A nil slice means there is
// nothing to run.
func Args(backend domain.Backend, opts domain.InstallOptions) ([]string, error) {
	var args []string

	switch opts.Mode() {
	case domain.ModeNoOp:
		return nil, nil
	case domain.ModeFull:
		args = fullArgs(backend)
	case domain.ModeIncremental:
		args = []string{"install"}
		if opts.ForceReprocess() {
			args = append(args, reprocessFlag(backend))
		}
	case domain.ModeLockOnly:
		if !backend.SupportsLockOnly() {
			return nil, domain.Raise(domain.ErrUnsupportedFlag,
				"flag", "--skip-install",
				"package_manager", backend.String(),
			)
		}
		if opts.FullUpgrade() {
			return []string{"update", "--lockfile-only"}, nil
		}
		return []string{"install", "--lockfile-only"}, nil
	default:
		return nil, domain.Raise(domain.ErrBackendFailed, "reason", "unknown update mode", "mode", opts.Mode().String())
	}

	if opts.NoLink() {
		args = append(args, noLinkFlag(backend))
	}
	return args, nil
}

func fullArgs(backend domain.Backend) []string {
	if backend == domain.BackendYarn {
		return []string{"upgrade"}
	}
	return []string{"update"}
}

func reprocessFlag(backend domain.Backend) string {
	if backend == domain.BackendPNPM {
		return "--fix-lockfile"
	}
	return "--force"
}

func noLinkFlag(backend domain.Backend) string {
	if backend == domain.BackendPNPM {
		return "--config.symlink=false"
	}
	return "--no-bin-links"
}
