package domain

import "path/filepath"

// ConfigurationSpec describes the fields of a Configuration.
type ConfigurationSpec struct {
	Root                     string
	Backend                  Backend
	LockfilePath             string
	EnsureConsistentVersions bool
	Projects                 []Project
}

// Configuration is the loaded workspace. It is immutable: getters return copies.
type Configuration struct {
	root               string
	backend            Backend
	lockfilePath       string
	consistentVersions bool
	projects           []Project
}

// NewConfiguration builds a Configuration. A relative lock file path is resolved
// against the workspace root, and an empty one defaults to DefaultLockfileName.
func NewConfiguration(spec ConfigurationSpec) *Configuration {
	lockPath := spec.LockfilePath
	if lockPath == "" {
		lockPath = DefaultLockfileName
	}
	if !filepath.IsAbs(lockPath) {
		lockPath = filepath.Join(spec.Root, lockPath)
	}

	projects := make([]Project, len(spec.Projects))
	for i, p := range spec.Projects {
		projects[i] = p.Clone()
	}

	return &Configuration{
		root:               spec.Root,
		backend:            spec.Backend,
		lockfilePath:       lockPath,
		consistentVersions: spec.EnsureConsistentVersions,
		projects:           projects,
	}
}

// Root returns the absolute workspace root.
func (c *Configuration) Root() string { return c.root }

// Backend returns the configured package manager.
func (c *Configuration) Backend() Backend { return c.backend }

// LockfilePath returns the absolute path of the shared lock file.
func (c *Configuration) LockfilePath() string { return c.lockfilePath }

// EnsureConsistentVersions reports whether every project must request the same
// range of a shared dependency.
func (c *Configuration) EnsureConsistentVersions() bool { return c.consistentVersions }

// Projects returns a copy of the workspace projects in declaration order.
func (c *Configuration) Projects() []Project {
	out := make([]Project, len(c.projects))
	for i, p := range c.projects {
		out[i] = p.Clone()
	}
	return out
}

// Project returns the project with the given name.
func (c *Configuration) Project(name string) (Project, bool) {
	for _, p := range c.projects {
		if p.Name == name {
			return p.Clone(), true
		}
	}
	return Project{}, false
}
