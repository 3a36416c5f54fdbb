// Package checker compares the dependency requests of a workspace with the lock file.
package checker

import (
	"errors"

	"go.trai.ch/lockstep/internal/core/domain"
	"go.trai.ch/lockstep/internal/core/ports"
	"go.trai.ch/zerr"
)

// Checker decides, request by request, whether a lock file satisfies a dependency graph.
// It never mutates its inputs.
type Checker struct {
	matcher ports.RangeMatcher
}

// New creates a Checker that evaluates ranges with matcher.
func New(matcher ports.RangeMatcher) *Checker {
	return &Checker{matcher: matcher}
}

// Check walks the graph in order and records every unsatisfied request.
func (c *Checker) Check(graph *domain.DependencyGraph, lockfile *domain.Lockfile) (*domain.ConsistencyReport, error) {
	report := domain.NewConsistencyReport()

	for _, node := range graph.Nodes() {
		project := node.Project.Name
		for _, req := range node.Requests {
			var (
				d   *domain.Discrepancy
				err error
			)
			candidates := lockfile.EntriesNamed(req.Name)
			switch {
			case len(candidates) == 0:
				d = &domain.Discrepancy{
					Dependency: req.Name,
					Kind:       domain.KindMissing,
					Requested:  req.String(),
				}
			case req.Workspace:
				local, _ := graph.Project(req.Name)
				d, err = c.checkWorkspace(project, req, local, candidates)
			default:
				d, err = c.checkRegistry(project, req, candidates)
			}
			if err != nil {
				err = zerr.With(err, "project", project)
				return nil, zerr.With(err, "dependency", req.Name)
			}
			if d != nil {
				report.Add(project, *d)
			}
		}
	}

	return report, nil
}

func (c *Checker) checkWorkspace(
	project string,
	req domain.DependencyRequest,
	local domain.Project,
	candidates []domain.LockEntry,
) (*domain.Discrepancy, error) {
	if !req.AnyVersion() {
		ok, err := c.matcher.Satisfies(req.Range, local.Version)
		if errors.Is(err, domain.ErrInvalidLockedVersion) {
			return nil, domain.Raise(domain.ErrInvalidProjectVersion,
				"workspace_project", local.Name,
				"version", local.Version,
				"source", "manifest",
			)
		}
		if err != nil {
			return nil, err
		}
		if !ok {
			return &domain.Discrepancy{
				Dependency: req.Name,
				Kind:       domain.KindRangeViolation,
				Requested:  req.String(),
				Current:    local.Version,
			}, nil
		}
	}

	links := filter(candidates, func(e domain.LockEntry) bool { return e.Link })
	if len(links) == 0 {
		return &domain.Discrepancy{
			Dependency: req.Name,
			Kind:       domain.KindLinkMismatch,
			Requested:  req.String(),
			Current:    candidates[0].Version,
		}, nil
	}

	link := preferConsumed(project, links)
	if link.Version != local.Version {
		return &domain.Discrepancy{
			Dependency: req.Name,
			Kind:       domain.KindLinkMismatch,
			Requested:  req.String(),
			Current:    link.Version,
		}, nil
	}

	return nil, nil
}

func (c *Checker) checkRegistry(
	project string,
	req domain.DependencyRequest,
	candidates []domain.LockEntry,
) (*domain.Discrepancy, error) {
	resolved := filter(candidates, func(e domain.LockEntry) bool { return !e.Link })
	if len(resolved) == 0 {
		return &domain.Discrepancy{
			Dependency: req.Name,
			Kind:       domain.KindLinkMismatch,
			Requested:  req.String(),
			Current:    candidates[0].Version,
		}, nil
	}

	if req.AnyVersion() {
		return nil, nil
	}

	for _, e := range resolved {
		if e.ConsumedBy(project) {
			return c.compare(req, e)
		}
	}

	for _, e := range resolved {
		ok, err := c.matcher.Satisfies(req.Range, e.Version)
		if err != nil {
			return nil, err
		}
		if ok {
			return nil, nil
		}
	}

	return &domain.Discrepancy{
		Dependency: req.Name,
		Kind:       domain.KindRangeViolation,
		Requested:  req.String(),
		Current:    resolved[0].Version,
	}, nil
}

func (c *Checker) compare(req domain.DependencyRequest, e domain.LockEntry) (*domain.Discrepancy, error) {
	ok, err := c.matcher.Satisfies(req.Range, e.Version)
	if err != nil {
		return nil, err
	}
	if ok {
		return nil, nil
	}
	return &domain.Discrepancy{
		Dependency: req.Name,
		Kind:       domain.KindRangeViolation,
		Requested:  req.String(),
		Current:    e.Version,
	}, nil
}

func preferConsumed(project string, entries []domain.LockEntry) domain.LockEntry {
	for _, e := range entries {
		if e.ConsumedBy(project) {
			return e
		}
	}
	return entries[0]
}

func filter(entries []domain.LockEntry, keep func(domain.LockEntry) bool) []domain.LockEntry {
	var out []domain.LockEntry
	for _, e := range entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
