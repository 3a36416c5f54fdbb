package report_test

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lockstep/internal/core/domain"
	"go.trai.ch/lockstep/internal/ui/report"
)

func TestRenderer_Report(t *testing.T) {
	stale := domain.NewConsistencyReport()
	stale.Add("web", domain.Discrepancy{Dependency: "zod", Kind: domain.KindMissing, Requested: "^3.0.0"})
	stale.Add("web", domain.Discrepancy{
		Dependency: "shared", Kind: domain.KindLinkMismatch, Requested: "workspace:*", Current: "0.2.0",
	})
	stale.Add("app", domain.Discrepancy{
		Dependency: "lib", Kind: domain.KindRangeViolation, Requested: "^2.0.0", Current: "1.2.0",
	})

	tests := []struct {
		name       string
		report     *domain.ConsistencyReport
		goldenName string
	}{
		{name: "up to date", report: domain.NewConsistencyReport(), goldenName: "report_up_to_date"},
		{name: "stale", report: stale, goldenName: "report_stale"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			var buf bytes.Buffer
			require.NoError(t, report.New(&buf).Report(tt.report))

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestRenderer_Plan(t *testing.T) {
	tests := []struct {
		name       string
		opts       domain.InstallOptionsSpec
		goldenName string
	}{
		{name: "no-op", opts: domain.InstallOptionsSpec{Mode: domain.ModeNoOp}, goldenName: "plan_noop"},
		{
			name:       "incremental",
			opts:       domain.InstallOptionsSpec{Mode: domain.ModeIncremental, Targets: []string{"lib", "zod"}},
			goldenName: "plan_incremental",
		},
		{
			name:       "lock-only",
			opts:       domain.InstallOptionsSpec{Mode: domain.ModeLockOnly, NoLink: true, Targets: []string{"lib"}},
			goldenName: "plan_lock_only",
		},
		{
			name:       "recheck",
			opts:       domain.InstallOptionsSpec{Mode: domain.ModeIncremental, ForceReprocess: true},
			goldenName: "plan_recheck",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			var buf bytes.Buffer
			require.NoError(t, report.New(&buf).Plan(domain.NewInstallOptions(tt.opts)))

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}
