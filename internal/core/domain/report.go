package domain

import (
	"slices"
	"strings"
)

// DiscrepancyKind classifies why a dependency request is not satisfied by the lock file.
type DiscrepancyKind int

const (
	// KindMissing means the lock file has no entry for the dependency.
	KindMissing DiscrepancyKind = iota
	// KindRangeViolation means the locked version does not satisfy the requested range.
	KindRangeViolation
	// KindLinkMismatch means the lock file disagrees with the request about whether the
	// dependency is a local workspace link.
	KindLinkMismatch
)

func (k DiscrepancyKind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindRangeViolation:
		return "range-violation"
	case KindLinkMismatch:
		return "link-mismatch"
	default:
		return "unknown"
	}
}

// Discrepancy is one request the lock file does not satisfy.
type Discrepancy struct {
	Dependency string
	Kind       DiscrepancyKind
	Requested  string
	// Current is the locked version, empty when nothing is locked.
	Current string
}

func (d Discrepancy) String() string {
	var b strings.Builder
	b.WriteString(d.Dependency)
	b.WriteString(": ")
	b.WriteString(d.Kind.String())
	b.WriteString(" (requested ")
	if d.Requested == "" {
		b.WriteString("*")
	} else {
		b.WriteString(d.Requested)
	}
	if d.Current != "" {
		b.WriteString(", locked ")
		b.WriteString(d.Current)
	}
	b.WriteString(")")
	return b.String()
}

// ProjectReport lists the discrepancies found for one project.
type ProjectReport struct {
	Project       string
	Discrepancies []Discrepancy
}

// ConsistencyReport is the outcome of checking a lock file against a dependency graph.
// An empty report means the lock file satisfies every manifest.
type ConsistencyReport struct {
	projects []ProjectReport
}

// NewConsistencyReport returns an empty report.
func NewConsistencyReport() *ConsistencyReport {
	return &ConsistencyReport{}
}

// Add records a discrepancy for project. Discrepancies of the same project are kept in
// the order they are added.
func (r *ConsistencyReport) Add(project string, d Discrepancy) {
	i, found := slices.BinarySearchFunc(r.projects, project, func(p ProjectReport, name string) int {
		return strings.Compare(p.Project, name)
	})
	if !found {
		r.projects = slices.Insert(r.projects, i, ProjectReport{Project: project})
	}
	r.projects[i].Discrepancies = append(r.projects[i].Discrepancies, d)
}

// Empty reports whether the lock file satisfied every request.
func (r *ConsistencyReport) Empty() bool {
	return len(r.projects) == 0
}

// Len returns the total number of discrepancies.
func (r *ConsistencyReport) Len() int {
	n := 0
	for _, p := range r.projects {
		n += len(p.Discrepancies)
	}
	return n
}

// Projects returns the per-project reports in project name order.
func (r *ConsistencyReport) Projects() []ProjectReport {
	out := make([]ProjectReport, len(r.projects))
	for i, p := range r.projects {
		out[i] = ProjectReport{Project: p.Project, Discrepancies: slices.Clone(p.Discrepancies)}
	}
	return out
}

// Names returns the sorted set of dependency names with at least one discrepancy.
func (r *ConsistencyReport) Names() []string {
	var names []string
	for _, p := range r.projects {
		for _, d := range p.Discrepancies {
			names = append(names, d.Dependency)
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}

func (r *ConsistencyReport) String() string {
	if r.Empty() {
		return "lock file is up to date"
	}
	var b strings.Builder
	for i, p := range r.projects {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(p.Project)
		for _, d := range p.Discrepancies {
			b.WriteString("\n  ")
			b.WriteString(d.String())
		}
	}
	return b.String()
}
