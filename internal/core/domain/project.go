package domain

import (
	"maps"
	"strings"
)

// WorkspacePrefix marks a dependency specifier that must be satisfied by a local project.
const WorkspacePrefix = "workspace:"

// Project is one package of the monorepo as declared by its manifest.
type Project struct {
	// Name is unique within a workspace.
	Name string

	// Version is the version the project currently declares.
	Version string

	// Folder is the project directory relative to the workspace root.
	Folder string

	// Dependencies maps dependency names to raw specifiers, e.g. "^1.2.0" or "workspace:*".
	Dependencies map[string]string

	// ShouldPublish is false for private projects.
	ShouldPublish bool
}

// Clone returns a copy of p that shares no mutable state with it.
func (p Project) Clone() Project {
	p.Dependencies = maps.Clone(p.Dependencies)
	return p
}

// DependencyRequest is one declared dependency of a project.
type DependencyRequest struct {
	// Name is the requested package name.
	Name string

	// Range is the requested version range with any workspace prefix removed.
	Range string

	// Workspace is true when the request must be satisfied by a local project.
	Workspace bool
}

// ParseRequest turns a manifest entry into a DependencyRequest.
func ParseRequest(name, specifier string) DependencyRequest {
	spec := strings.TrimSpace(specifier)
	if rest, ok := strings.CutPrefix(spec, WorkspacePrefix); ok {
		return DependencyRequest{Name: name, Range: rest, Workspace: true}
	}
	return DependencyRequest{Name: name, Range: spec}
}

// AnyVersion reports whether the request accepts every version of the dependency.
func (r DependencyRequest) AnyVersion() bool {
	switch r.Range {
	case "", "*":
		return true
	case "^", "~":
		return r.Workspace
	default:
		return false
	}
}

// String returns the specifier as it appears in the manifest.
func (r DependencyRequest) String() string {
	if r.Workspace {
		return WorkspacePrefix + r.Range
	}
	return r.Range
}
