package policy_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lockstep/internal/core/domain"
	"go.trai.ch/lockstep/internal/engine/policy"
	"go.trai.ch/zerr"
)

func reportWith(names ...string) *domain.ConsistencyReport {
	r := domain.NewConsistencyReport()
	for _, n := range names {
		r.Add("app", domain.Discrepancy{Dependency: n, Kind: domain.KindMissing})
	}
	return r
}

func TestResolver_Resolve(t *testing.T) {
	tests := []struct {
		name           string
		report         *domain.ConsistencyReport
		policy         domain.UpdatePolicy
		wantMode       domain.Mode
		wantTargets    []string
		wantForce      bool
		wantNoLink     bool
		wantRestricted bool
	}{
		{
			name:     "consistent lock file is a no-op",
			report:   reportWith(),
			policy:   domain.UpdatePolicy{Backend: domain.BackendPNPM},
			wantMode: domain.ModeNoOp,
		},
		{
			name:           "discrepancies trigger an incremental update",
			report:         reportWith("zod", "lib", "lib"),
			policy:         domain.UpdatePolicy{Backend: domain.BackendNPM},
			wantMode:       domain.ModeIncremental,
			wantTargets:    []string{"lib", "zod"},
			wantRestricted: true,
		},
		{
			name:     "full wins over an empty report",
			report:   reportWith(),
			policy:   domain.UpdatePolicy{Backend: domain.BackendYarn, Full: true},
			wantMode: domain.ModeFull,
		},
		{
			name:     "full wins over discrepancies",
			report:   reportWith("lib"),
			policy:   domain.UpdatePolicy{Backend: domain.BackendPNPM, Full: true},
			wantMode: domain.ModeFull,
		},
		{
			name:      "recheck forces reprocessing of a consistent lock file",
			report:    reportWith(),
			policy:    domain.UpdatePolicy{Backend: domain.BackendPNPM, Recheck: true},
			wantMode:  domain.ModeIncremental,
			wantForce: true,
		},
		{
			name:           "recheck with discrepancies stays restricted to the targets",
			report:         reportWith("zod"),
			policy:         domain.UpdatePolicy{Backend: domain.BackendPNPM, Recheck: true},
			wantMode:       domain.ModeIncremental,
			wantTargets:    []string{"zod"},
			wantRestricted: true,
		},
		{
			name:           "skip install downgrades to lock-only",
			report:         reportWith("lib"),
			policy:         domain.UpdatePolicy{Backend: domain.BackendPNPM, SkipInstall: true},
			wantMode:       domain.ModeLockOnly,
			wantNoLink:     true,
			wantRestricted: true,
		},
		{
			name:           "recheck and skip install with discrepancies stay restricted",
			report:         reportWith("lib"),
			policy:         domain.UpdatePolicy{Backend: domain.BackendPNPM, SkipInstall: true, Recheck: true},
			wantMode:       domain.ModeLockOnly,
			wantTargets:    []string{"lib"},
			wantNoLink:     true,
			wantRestricted: true,
		},
		{
			name:           "skip install downgrades a no-op to lock-only",
			report:         reportWith(),
			policy:         domain.UpdatePolicy{Backend: domain.BackendPNPM, SkipInstall: true},
			wantMode:       domain.ModeLockOnly,
			wantNoLink:     true,
			wantRestricted: true,
		},
		{
			name:           "caller no-link is kept",
			report:         reportWith("lib"),
			policy:         domain.UpdatePolicy{Backend: domain.BackendNPM, NoLink: true},
			wantMode:       domain.ModeIncremental,
			wantNoLink:     true,
			wantRestricted: true,
		},
	}

	r := policy.NewResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := r.Resolve(tt.report, tt.policy, 42)
			require.NoError(t, err)

			assert.Equal(t, tt.wantMode, opts.Mode())
			assert.Equal(t, tt.wantForce, opts.ForceReprocess())
			assert.Equal(t, tt.wantNoLink, opts.NoLink())
			assert.Equal(t, tt.wantRestricted, opts.Restricted())
			assert.Equal(t, tt.policy.Full, opts.FullUpgrade())
			assert.True(t, opts.AllowLockUpdates())
			assert.Equal(t, uint64(42), opts.Snapshot())
			if tt.wantTargets != nil {
				assert.Equal(t, tt.wantTargets, opts.Targets())
			}
		})
	}
}

func TestResolver_Validate(t *testing.T) {
	r := policy.NewResolver()

	require.NoError(t, r.Validate(domain.UpdatePolicy{Backend: domain.BackendPNPM, SkipInstall: true}))
	require.NoError(t, r.Validate(domain.UpdatePolicy{Backend: domain.BackendNPM}))

	for _, b := range []domain.Backend{domain.BackendNPM, domain.BackendYarn} {
		t.Run(b.String(), func(t *testing.T) {
			err := r.Validate(domain.UpdatePolicy{Backend: b, SkipInstall: true})
			require.ErrorIs(t, err, domain.ErrUnsupportedFlag)
			assert.Equal(t, domain.ClassPolicy, domain.ClassOf(err))
			assert.Contains(t, err.Error(), "--skip-install")
			assert.Contains(t, err.Error(), b.String())

			var zErr *zerr.Error
			require.True(t, errors.As(err, &zErr))
			assert.Equal(t, "--skip-install", zErr.Metadata()["flag"])
			assert.Equal(t, b.String(), zErr.Metadata()["package_manager"])

			_, err = r.Resolve(reportWith(), domain.UpdatePolicy{Backend: b, SkipInstall: true}, 0)
			require.ErrorIs(t, err, domain.ErrUnsupportedFlag)
		})
	}

	err := r.Validate(domain.UpdatePolicy{Backend: "bun"})
	require.ErrorIs(t, err, domain.ErrUnknownBackend)
}

func TestCheckConsistentVersions(t *testing.T) {
	consistent, err := domain.BuildGraph([]domain.Project{
		{Name: "app", Dependencies: map[string]string{"lib": "^1.0.0", "shared": "workspace:*"}},
		{Name: "web", Dependencies: map[string]string{"lib": "^1.0.0", "shared": "workspace:^"}},
		{Name: "shared"},
	})
	require.NoError(t, err)
	require.NoError(t, policy.CheckConsistentVersions(consistent))

	inconsistent, err := domain.BuildGraph([]domain.Project{
		{Name: "app", Dependencies: map[string]string{"lib": "^1.0.0"}},
		{Name: "web", Dependencies: map[string]string{"lib": "^2.0.0"}},
	})
	require.NoError(t, err)

	err = policy.CheckConsistentVersions(inconsistent)
	require.ErrorIs(t, err, domain.ErrInconsistentVersions)

	var zErr *zerr.Error
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, "lib", zErr.Metadata()["dependency"])
	assert.Equal(t, "^1.0.0 (app); ^2.0.0 (web)", zErr.Metadata()["ranges"])
}
