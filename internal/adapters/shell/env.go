package shell

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/lockstep/internal/core/ports"
)

type logLevel int

const (
	levelInfo logLevel = iota
	levelWarn
)

// logWriter splits a byte stream into lines and forwards each line to the logger.
type logWriter struct {
	logger ports.Logger
	level  logLevel
	buf    []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		w.logLine(w.buf[:i])
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	// PTYs terminate lines with \r\n.
	msg := strings.TrimSuffix(string(line), "\r")
	if strings.TrimSpace(msg) == "" {
		return
	}

	if w.level == levelWarn {
		w.logger.Warn(msg)
		return
	}
	w.logger.Info(msg)
}

// allowListedEnvVars are inherited from the calling environment.
var allowListedEnvVars = map[string]struct{}{
	"HOME":     {},
	"TERM":     {},
	"USER":     {},
	"PATH":     {},
	"CI":       {},
	"NO_COLOR": {},
}

// allowListedEnvPrefixes cover package manager and Node.js settings.
var allowListedEnvPrefixes = []string{"npm_config_", "NPM_", "PNPM_", "YARN_", "NODE_", "COREPACK_"}

func resolveEnvironment(sysEnv []string) []string {
	result := make([]string, 0, len(sysEnv))
	for _, entry := range sysEnv {
		k, _, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, allowed := allowListedEnvVars[k]; allowed || hasAllowedPrefix(k) {
			result = append(result, entry)
		}
	}
	slices.Sort(result)
	return result
}

func hasAllowedPrefix(key string) bool {
	for _, prefix := range allowListedEnvPrefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// lookPath searches for an executable in the directories named by PATH in env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if v, ok := strings.CutPrefix(e, "PATH="); ok {
			path = v
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
