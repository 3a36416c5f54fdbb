package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/lockstep/internal/core/domain"
)

func TestConsistencyReport(t *testing.T) {
	r := domain.NewConsistencyReport()
	assert.True(t, r.Empty())
	assert.Equal(t, "lock file is up to date", r.String())

	r.Add("web", domain.Discrepancy{Dependency: "zod", Kind: domain.KindMissing, Requested: "^3.0.0"})
	r.Add("app", domain.Discrepancy{
		Dependency: "lib", Kind: domain.KindRangeViolation, Requested: "^2.0.0", Current: "1.2.0",
	})
	r.Add("web", domain.Discrepancy{
		Dependency: "lib", Kind: domain.KindLinkMismatch, Requested: "workspace:*", Current: "0.9.0",
	})

	assert.False(t, r.Empty())
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []string{"lib", "zod"}, r.Names())

	projects := r.Projects()
	assert.Equal(t, "app", projects[0].Project)
	assert.Equal(t, "web", projects[1].Project)
	assert.Len(t, projects[1].Discrepancies, 2)

	want := "app\n" +
		"  lib: range-violation (requested ^2.0.0, locked 1.2.0)\n" +
		"web\n" +
		"  zod: missing (requested ^3.0.0)\n" +
		"  lib: link-mismatch (requested workspace:*, locked 0.9.0)"
	assert.Equal(t, want, r.String())
}
