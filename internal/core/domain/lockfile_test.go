package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lockstep/internal/core/domain"
)

func TestLockfile_Validate(t *testing.T) {
	lf := &domain.Lockfile{Entries: []domain.LockEntry{
		{Name: "lib", Version: "1.0.0"},
		{Name: "lib", Version: "2.0.0"},
	}}
	require.NoError(t, lf.Validate())

	lf.Entries = append(lf.Entries, domain.LockEntry{Name: "lib", Version: "1.0.0"})
	err := lf.Validate()
	require.ErrorIs(t, err, domain.ErrDuplicateLockEntry)
	assert.Equal(t, domain.ClassConsistency, domain.ClassOf(err))
}

func TestLockfile_EntriesNamed(t *testing.T) {
	lf := &domain.Lockfile{Entries: []domain.LockEntry{
		{Name: "lib", Version: "1.0.0", Consumers: []string{"app"}},
		{Name: "other", Version: "1.0.0"},
		{Name: "lib", Version: "2.0.0"},
	}}

	got := lf.EntriesNamed("lib")
	require.Len(t, got, 2)
	assert.Equal(t, "1.0.0", got[0].Version)
	assert.True(t, got[0].ConsumedBy("app"))
	assert.False(t, got[1].ConsumedBy("app"))

	got[0].Consumers[0] = "mutated"
	assert.Equal(t, "app", lf.Entries[0].Consumers[0])

	assert.Empty(t, lf.EntriesNamed("missing"))
}

func TestLockfile_Digest(t *testing.T) {
	a := &domain.Lockfile{Version: 1, Entries: []domain.LockEntry{
		{Name: "b", Version: "1.0.0", Consumers: []string{"y", "x"}},
		{Name: "a", Version: "1.0.0"},
	}}
	b := &domain.Lockfile{Version: 1, Entries: []domain.LockEntry{
		{Name: "a", Version: "1.0.0"},
		{Name: "b", Version: "1.0.0", Consumers: []string{"x", "y"}},
	}}
	assert.Equal(t, a.Digest(), b.Digest(), "order must not change the digest")

	b.Entries[1].Version = "1.0.1"
	assert.NotEqual(t, a.Digest(), b.Digest())

	assert.Equal(t, domain.EmptyLockfile().Digest(), domain.EmptyLockfile().Digest())
}

func TestMergeIncremental(t *testing.T) {
	before := &domain.Lockfile{Version: 1, Entries: []domain.LockEntry{
		{Name: "keep", Version: "1.0.0", Integrity: "sha-keep"},
		{Name: "lib", Version: "1.0.0"},
	}}
	after := &domain.Lockfile{Version: 1, Entries: []domain.LockEntry{
		{Name: "keep", Version: "1.9.0", Integrity: "sha-drift"},
		{Name: "lib", Version: "2.0.0"},
		{Name: "lib-helper", Version: "0.1.0"},
	}}

	merged := domain.MergeIncremental(before, after, []string{"lib"})

	assert.Equal(t, []domain.LockEntry{
		{Name: "keep", Version: "1.0.0", Integrity: "sha-keep"},
		{Name: "lib", Version: "2.0.0"},
		{Name: "lib-helper", Version: "0.1.0"},
	}, merged.Entries)
}

func TestMergeIncremental_RemovedTarget(t *testing.T) {
	before := &domain.Lockfile{Version: 1, Entries: []domain.LockEntry{
		{Name: "gone", Version: "1.0.0"},
		{Name: "keep", Version: "1.0.0"},
	}}
	after := &domain.Lockfile{Version: 1}

	merged := domain.MergeIncremental(before, after, []string{"gone"})

	assert.Equal(t, []domain.LockEntry{{Name: "keep", Version: "1.0.0"}}, merged.Entries)
}
