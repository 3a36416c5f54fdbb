// Package detector inspects the environment to decide how the package manager is attached.
package detector

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// TerminalEnvVar overrides detection. Accepted values are "pty", "pipe" and "auto".
const TerminalEnvVar = "LOCKSTEP_TERMINAL"

// Terminal selects how child process output is captured.
type Terminal int

const (
	// TerminalAuto detects the mode from the environment.
	TerminalAuto Terminal = iota
	// TerminalPTY runs the child in a pseudo-terminal so it keeps colors and progress output.
	TerminalPTY
	// TerminalPipe captures stdout and stderr through plain pipes.
	TerminalPipe
)

func (t Terminal) String() string {
	switch t {
	case TerminalPTY:
		return "pty"
	case TerminalPipe:
		return "pipe"
	default:
		return "auto"
	}
}

// DetectEnvironment returns TerminalPTY when stdout is a terminal outside of CI.
func DetectEnvironment() Terminal {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return TerminalPipe
	}
	return TerminalPTY
}

// ResolveMode applies a user override to the detected mode.
func ResolveMode(detected Terminal, override string) Terminal {
	switch strings.ToLower(override) {
	case "pty":
		return TerminalPTY
	case "pipe", "ci":
		return TerminalPipe
	default:
		return detected
	}
}

// Resolve detects the mode and applies TerminalEnvVar.
func Resolve() Terminal {
	return ResolveMode(DetectEnvironment(), os.Getenv(TerminalEnvVar))
}
