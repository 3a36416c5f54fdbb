package domain

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// LockfileFormatVersion is the lock file schema version written by lockstep.
const LockfileFormatVersion = 1

// LockEntry is one resolved package recorded in the lock file.
type LockEntry struct {
	// Name is the package name.
	Name string

	// Version is the exact resolved version. For links it is the linked project's version.
	Version string

	// Integrity is the content hash reported by the registry.
	Integrity string

	// Consumers lists the projects that depend on this entry.
	Consumers []string

	// Link marks an entry that points at a local workspace project.
	Link bool
}

// ConsumedBy reports whether project is listed as a consumer of the entry.
func (e LockEntry) ConsumedBy(project string) bool {
	return slices.Contains(e.Consumers, project)
}

func (e LockEntry) clone() LockEntry {
	e.Consumers = slices.Clone(e.Consumers)
	return e
}

// Lockfile is the shared record of exact resolved versions for the whole workspace.
type Lockfile struct {
	Version int
	Entries []LockEntry
}

// EmptyLockfile returns a lock file with no entries. It stands in for a lock file
// that does not exist yet.
func EmptyLockfile() *Lockfile {
	return &Lockfile{Version: LockfileFormatVersion}
}

// Validate checks that no name and version pair is recorded twice.
func (l *Lockfile) Validate() error {
	seen := make(map[string]struct{}, len(l.Entries))
	for _, e := range l.Entries {
		key := e.Name + "@" + e.Version
		if _, dup := seen[key]; dup {
			return Raise(ErrDuplicateLockEntry, "package", e.Name, "version", e.Version)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// EntriesNamed returns every entry recorded for the given package name.
func (l *Lockfile) EntriesNamed(name string) []LockEntry {
	var out []LockEntry
	for _, e := range l.Entries {
		if e.Name == name {
			out = append(out, e.clone())
		}
	}
	return out
}

// Canonical returns a copy ordered by name then version, with sorted consumers.
func (l *Lockfile) Canonical() *Lockfile {
	out := &Lockfile{Version: l.Version, Entries: make([]LockEntry, len(l.Entries))}
	for i, e := range l.Entries {
		c := e.clone()
		slices.Sort(c.Consumers)
		out.Entries[i] = c
	}
	slices.SortFunc(out.Entries, compareEntries)
	return out
}

// Digest identifies the content of the lock file independent of entry order.
func (l *Lockfile) Digest() uint64 {
	d := xxhash.New()
	c := l.Canonical()
	_, _ = d.WriteString(strconv.Itoa(c.Version))
	_, _ = d.WriteString("\n")
	for _, e := range c.Entries {
		_, _ = d.WriteString(e.Name)
		_, _ = d.WriteString("\x00")
		_, _ = d.WriteString(e.Version)
		_, _ = d.WriteString("\x00")
		_, _ = d.WriteString(e.Integrity)
		_, _ = d.WriteString("\x00")
		_, _ = d.WriteString(strconv.FormatBool(e.Link))
		for _, consumer := range e.Consumers {
			_, _ = d.WriteString("\x00")
			_, _ = d.WriteString(consumer)
		}
		_, _ = d.WriteString("\n")
	}
	return d.Sum64()
}

func compareEntries(a, b LockEntry) int {
	return cmp.Or(
		cmp.Compare(a.Name, b.Name),
		cmp.Compare(a.Version, b.Version),
	)
}
