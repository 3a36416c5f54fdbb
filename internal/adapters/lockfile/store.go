// Package lockfile reads and writes the shared lock file as YAML.
package lockfile

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/lockstep/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

type document struct {
	LockfileVersion int     `yaml:"lockfileVersion"`
	Packages        []entry `yaml:"packages"`
}

type entry struct {
	Name      string   `yaml:"name"`
	Version   string   `yaml:"version"`
	Integrity string   `yaml:"integrity,omitempty"`
	Consumers []string `yaml:"consumers,omitempty,flow"`
	Link      bool     `yaml:"link,omitempty"`
}

// Store implements ports.LockfileStore on the local filesystem.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Snapshot reads and validates the lock file at path.
func (s *Store) Snapshot(path string) (*domain.Lockfile, error) {
	//nolint:gosec // path comes from the workspace configuration
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.Raise(domain.ErrLockfileNotFound, "path", path)
		}
		return nil, domain.Raise(domain.ErrLockfileUnreadable, "path", path, "reason", err.Error())
	}

	lf, err := Decode(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return lf, nil
}

// Decode parses lock file content.
func Decode(data []byte) (*domain.Lockfile, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, domain.Raise(domain.ErrLockfileCorrupt, "reason", "file is empty")
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, domain.Raise(domain.ErrLockfileCorrupt, "reason", err.Error())
	}
	if doc.LockfileVersion != domain.LockfileFormatVersion {
		return nil, domain.Raise(domain.ErrLockfileCorrupt,
			"reason", "unsupported lockfileVersion",
			"lockfile_version", doc.LockfileVersion,
		)
	}

	lf := &domain.Lockfile{
		Version: doc.LockfileVersion,
		Entries: make([]domain.LockEntry, 0, len(doc.Packages)),
	}
	for i, p := range doc.Packages {
		if p.Name == "" || p.Version == "" {
			return nil, domain.Raise(domain.ErrLockfileCorrupt,
				"reason", "package entry without name or version",
				"index", i,
			)
		}
		lf.Entries = append(lf.Entries, domain.LockEntry{
			Name:      p.Name,
			Version:   p.Version,
			Integrity: p.Integrity,
			Consumers: p.Consumers,
			Link:      p.Link,
		})
	}

	if err := lf.Validate(); err != nil {
		return nil, err
	}
	return lf, nil
}

// Encode renders a lock file in canonical order.
func Encode(lf *domain.Lockfile) ([]byte, error) {
	c := lf.Canonical()
	doc := document{
		LockfileVersion: c.Version,
		Packages:        make([]entry, 0, len(c.Entries)),
	}
	if doc.LockfileVersion == 0 {
		doc.LockfileVersion = domain.LockfileFormatVersion
	}
	for _, e := range c.Entries {
		doc.Packages = append(doc.Packages, entry{
			Name:      e.Name,
			Version:   e.Version,
			Integrity: e.Integrity,
			Consumers: e.Consumers,
			Link:      e.Link,
		})
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, zerr.Wrap(err, "failed to encode lock file")
	}
	if err := enc.Close(); err != nil {
		return nil, zerr.Wrap(err, "failed to encode lock file")
	}
	return buf.Bytes(), nil
}

// Write replaces the lock file at path. The content is written to a temporary file
// in the same directory and renamed over the target, so readers never observe a
// partially written lock file.
func (s *Store) Write(path string, lf *domain.Lockfile) error {
	if err := lf.Validate(); err != nil {
		return err
	}

	data, err := Encode(lf)
	if err != nil {
		return domain.Raise(domain.ErrLockfileWriteFailed, "path", path, "reason", err.Error())
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return domain.Raise(domain.ErrLockfileWriteFailed, "path", path, "reason", err.Error())
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return domain.Raise(domain.ErrLockfileWriteFailed, "path", path, "reason", err.Error())
	}
	tmpName := tmp.Name()

	fail := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return domain.Raise(domain.ErrLockfileWriteFailed, "path", path, "reason", err.Error())
	}

	if _, err := tmp.Write(data); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Chmod(domain.FilePerm); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return domain.Raise(domain.ErrLockfileWriteFailed, "path", path, "reason", err.Error())
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return domain.Raise(domain.ErrLockfileWriteFailed, "path", path, "reason", err.Error())
	}

	return nil
}
