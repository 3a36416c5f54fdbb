package ports

// RangeMatcher decides whether a version satisfies a version range.
//
//go:generate mockgen -source=range_matcher.go -destination=mocks/mock_range_matcher.go -package=mocks
type RangeMatcher interface {
	// Satisfies reports whether version is inside rangeSpec.
	// It returns domain.ErrInvalidRange or domain.ErrInvalidLockedVersion for malformed input.
	Satisfies(rangeSpec, version string) (bool, error)
}
