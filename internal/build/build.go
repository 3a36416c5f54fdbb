// Package build holds version information injected at link time.
package build

// These are set with -ldflags "-X go.trai.ch/lockstep/internal/build.Version=...".
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
