// Package semver implements range satisfaction on top of Masterminds/semver.
package semver

import (
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/lockstep/internal/core/domain"
)

// protocolPrefixes mark specifiers that resolve outside the registry. The package
// manager owns them, so any locked version is accepted.
var protocolPrefixes = []string{
	"file:", "link:", "portal:", "patch:",
	"git:", "git+", "github:", "gitlab:", "bitbucket:",
	"http:", "https:",
}

// aliasPrefix marks an aliased registry dependency, e.g. "npm:string-width@^4.2.0".
const aliasPrefix = "npm:"

// Matcher implements ports.RangeMatcher. Parsed constraints are cached because the
// same ranges are evaluated for many lock entries.
type Matcher struct {
	mu          sync.Mutex
	constraints map[string]*semver.Constraints
}

// NewMatcher creates a Matcher with an empty constraint cache.
func NewMatcher() *Matcher {
	return &Matcher{constraints: make(map[string]*semver.Constraints)}
}

// Satisfies reports whether version is inside rangeSpec.
// An empty range, "*", dist-tags such as "latest" or "next", and protocol
// specifiers (file:, github:, ...) accept every valid version. An npm: alias is
// checked against the range after its target name.
func (m *Matcher) Satisfies(rangeSpec, version string) (bool, error) {
	spec := strings.TrimSpace(rangeSpec)

	v, err := semver.NewVersion(strings.TrimSpace(version))
	if err != nil {
		return false, domain.Raise(domain.ErrInvalidLockedVersion,
			"version", version,
			"source", "lockfile",
			"reason", err.Error(),
		)
	}

	if alias, ok := strings.CutPrefix(spec, aliasPrefix); ok {
		spec = aliasRange(alias)
	}

	switch {
	case spec == "", spec == "*", spec == "latest":
		return true, nil
	case isProtocol(spec):
		return true, nil
	}

	c, err := m.constraint(spec)
	if err != nil {
		if isDistTag(spec) {
			return true, nil
		}
		return false, err
	}
	return c.Check(v), nil
}

func (m *Matcher) constraint(spec string) (*semver.Constraints, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.constraints[spec]; ok {
		return c, nil
	}
	c, err := semver.NewConstraint(spec)
	if err != nil {
		return nil, domain.Raise(domain.ErrInvalidRange,
			"range", spec,
			"source", "manifest",
			"reason", err.Error(),
		)
	}
	m.constraints[spec] = c
	return c, nil
}

// aliasRange returns the range of "name@range", where name may be scoped.
func aliasRange(alias string) string {
	at := strings.LastIndex(alias, "@")
	if at <= 0 {
		return ""
	}
	return alias[at+1:]
}

func isProtocol(spec string) bool {
	for _, p := range protocolPrefixes {
		if strings.HasPrefix(spec, p) {
			return true
		}
	}
	// GitHub shorthand, "owner/repo" or "owner/repo#ref".
	return strings.Contains(spec, "/")
}

// isDistTag reports whether spec looks like a registry tag: it starts with a letter
// and holds only letters, digits, dots, dashes and underscores.
func isDistTag(spec string) bool {
	for i, r := range spec {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '.' || r == '-' || r == '_'):
		default:
			return false
		}
	}
	return spec != ""
}
