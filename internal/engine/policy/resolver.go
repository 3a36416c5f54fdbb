// Package policy decides which kind of update the package manager must perform.
package policy

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"go.trai.ch/lockstep/internal/core/domain"
	"go.trai.ch/zerr"
)

// Resolver turns a consistency report and the caller's flags into install options.
type Resolver struct{}

// NewResolver creates a Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Validate rejects flag combinations the backend cannot honor. It does no I/O and is
// meant to run before the lock file is read.
func (r *Resolver) Validate(p domain.UpdatePolicy) error {
	switch p.Backend {
	case domain.BackendPNPM, domain.BackendNPM, domain.BackendYarn:
	default:
		return domain.Raise(domain.ErrUnknownBackend, "package_manager", p.Backend.String())
	}

	if p.SkipInstall && !p.Backend.SupportsLockOnly() {
		err := zerr.Wrap(domain.ErrUnsupportedFlag, fmt.Sprintf(
			"the --skip-install flag only works when using %s, the workspace uses %s",
			domain.BackendPNPM, p.Backend,
		))
		err = zerr.With(err, "flag", "--skip-install")
		err = zerr.With(err, "package_manager", p.Backend.String())
		return zerr.With(err, "reason", "lock-only updates are not supported")
	}

	return nil
}

// Resolve applies the update precedence: a full update first, then an incremental
// update of the discrepant dependencies, then a forced recheck, and finally no work.
// Recheck only marks the options as force-reprocessed when nothing is discrepant, so
// an update with targets stays restricted to them.
// An accepted --skip-install downgrades any of these to a lock-only update.
func (r *Resolver) Resolve(
	report *domain.ConsistencyReport,
	p domain.UpdatePolicy,
	snapshot uint64,
) (domain.InstallOptions, error) {
	if err := r.Validate(p); err != nil {
		return domain.InstallOptions{}, err
	}

	spec := domain.InstallOptionsSpec{
		AllowLockUpdates: true,
		FullUpgrade:      p.Full,
		NoLink:           p.NoLink,
		BypassPolicy:     p.BypassPolicy,
		CollectLogFile:   p.CollectLogFile,
		Snapshot:         snapshot,
	}

	switch {
	case p.Full:
		spec.Mode = domain.ModeFull
	case !report.Empty():
		spec.Mode = domain.ModeIncremental
		spec.Targets = report.Names()
	case p.Recheck:
		spec.Mode = domain.ModeIncremental
		spec.ForceReprocess = true
	default:
		spec.Mode = domain.ModeNoOp
	}

	if p.SkipInstall {
		spec.Mode = domain.ModeLockOnly
		spec.NoLink = true
	}

	return domain.NewInstallOptions(spec), nil
}

// CheckConsistentVersions fails when two projects request different registry ranges
// of the same dependency. The first offending dependency in name order is reported.
func CheckConsistentVersions(graph *domain.DependencyGraph) error {
	ranges := make(map[string]map[string][]string)
	for _, node := range graph.Nodes() {
		for _, req := range node.Requests {
			if req.Workspace {
				continue
			}
			byRange, ok := ranges[req.Name]
			if !ok {
				byRange = make(map[string][]string)
				ranges[req.Name] = byRange
			}
			byRange[req.Range] = append(byRange[req.Range], node.Project.Name)
		}
	}

	for _, name := range slices.Sorted(maps.Keys(ranges)) {
		byRange := ranges[name]
		if len(byRange) < 2 {
			continue
		}
		specs := slices.Sorted(maps.Keys(byRange))
		parts := make([]string, 0, len(specs))
		for _, spec := range specs {
			parts = append(parts, fmt.Sprintf("%s (%s)", spec, strings.Join(byRange[spec], ", ")))
		}
		return domain.Raise(domain.ErrInconsistentVersions,
			"dependency", name,
			"ranges", strings.Join(parts, "; "),
		)
	}

	return nil
}
