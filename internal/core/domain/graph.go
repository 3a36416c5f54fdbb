package domain

import (
	"cmp"
	"regexp"
	"slices"
)

var validProjectNameRegex = regexp.MustCompile(`^(@[A-Za-z0-9._~-]+/)?[A-Za-z0-9._~-]+$`)

// ProjectNode is a project together with its parsed dependency requests.
type ProjectNode struct {
	Project  Project
	Requests []DependencyRequest
}

// DependencyGraph is the validated view of a workspace: every project with its requests,
// and every workspace reference resolved to a project of the same graph.
type DependencyGraph struct {
	nodes []ProjectNode
	index map[string]int
}

// BuildGraph validates the project set and produces a DependencyGraph.
// Projects are ordered by name and requests by dependency name so that every
// consumer of the graph iterates deterministically.
func BuildGraph(projects []Project) (*DependencyGraph, error) {
	g := &DependencyGraph{
		nodes: make([]ProjectNode, 0, len(projects)),
		index: make(map[string]int, len(projects)),
	}

	seen := make(map[string]string, len(projects))
	for _, p := range projects {
		if !validProjectNameRegex.MatchString(p.Name) {
			return nil, Raise(ErrInvalidProjectName, "project", p.Name, "folder", p.Folder)
		}
		if first, dup := seen[p.Name]; dup {
			return nil, Raise(ErrDuplicateProject,
				"project", p.Name,
				"first_occurrence", first,
				"duplicate_at", p.Folder,
			)
		}
		seen[p.Name] = p.Folder
	}

	for _, p := range projects {
		node := ProjectNode{
			Project:  p.Clone(),
			Requests: make([]DependencyRequest, 0, len(p.Dependencies)),
		}
		for name, spec := range p.Dependencies {
			req := ParseRequest(name, spec)
			if req.Workspace {
				if _, ok := seen[req.Name]; !ok {
					return nil, Raise(ErrUnresolvedWorkspaceReference,
						"project", p.Name,
						"dependency", req.Name,
					)
				}
			}
			node.Requests = append(node.Requests, req)
		}
		slices.SortFunc(node.Requests, func(a, b DependencyRequest) int {
			return cmp.Compare(a.Name, b.Name)
		})
		g.nodes = append(g.nodes, node)
	}

	slices.SortFunc(g.nodes, func(a, b ProjectNode) int {
		return cmp.Compare(a.Project.Name, b.Project.Name)
	})
	for i, n := range g.nodes {
		g.index[n.Project.Name] = i
	}

	return g, nil
}

// Nodes returns the projects of the graph in name order.
func (g *DependencyGraph) Nodes() []ProjectNode {
	out := make([]ProjectNode, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = ProjectNode{
			Project:  n.Project.Clone(),
			Requests: slices.Clone(n.Requests),
		}
	}
	return out
}

// Project returns the project with the given name.
func (g *DependencyGraph) Project(name string) (Project, bool) {
	i, ok := g.index[name]
	if !ok {
		return Project{}, false
	}
	return g.nodes[i].Project.Clone(), true
}

// Len returns the number of projects in the graph.
func (g *DependencyGraph) Len() int {
	return len(g.nodes)
}

// Dependents returns the names of the projects that reference name through a
// workspace reference, in name order.
func (g *DependencyGraph) Dependents(name string) []string {
	var out []string
	for _, n := range g.nodes {
		for _, r := range n.Requests {
			if r.Workspace && r.Name == name {
				out = append(out, n.Project.Name)
				break
			}
		}
	}
	return out
}
