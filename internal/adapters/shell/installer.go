// Package shell runs the workspace package manager as a child process.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/creack/pty"
	"go.trai.ch/lockstep/internal/adapters/detector"
	"go.trai.ch/lockstep/internal/core/domain"
	"go.trai.ch/lockstep/internal/core/ports"
)

// Installer implements ports.Installer by running pnpm, npm or yarn.
type Installer struct {
	logger   ports.Logger
	binaries map[domain.Backend]string
	terminal detector.Terminal
}

// Option configures an Installer.
type Option func(*Installer)

// WithBinary overrides the executable used for backend.
func WithBinary(backend domain.Backend, path string) Option {
	return func(i *Installer) {
		i.binaries[backend] = path
	}
}

// WithTerminal selects how the child process output is captured.
func WithTerminal(t detector.Terminal) Option {
	return func(i *Installer) {
		i.terminal = t
	}
}

// NewInstaller creates a new Installer. Binaries default to the backend name and
// are looked up on PATH.
func NewInstaller(logger ports.Logger, opts ...Option) *Installer {
	i := &Installer{
		logger:   logger,
		binaries: make(map[domain.Backend]string),
		terminal: detector.TerminalPipe,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Install runs the package manager in the workspace root.
func (i *Installer) Install(ctx context.Context, cfg *domain.Configuration, opts domain.InstallOptions) error {
	backend := cfg.Backend()
	args, err := Args(backend, opts)
	if err != nil {
		return err
	}
	if args == nil {
		return nil
	}

	name := i.binary(backend)
	i.logger.Debug(fmt.Sprintf("running %s %s", name, strings.Join(args, " ")))

	stdoutLog := &logWriter{logger: i.logger, level: levelInfo}
	stderrLog := &logWriter{logger: i.logger, level: levelWarn}
	defer func() {
		_ = stdoutLog.Close()
		_ = stderrLog.Close()
	}()

	var stdout io.Writer = stdoutLog
	var stderr io.Writer = stderrLog
	if path := opts.CollectLogFile(); path != "" {
		f, err := openLogFile(path)
		if err != nil {
			return domain.Raise(domain.ErrBackendFailed,
				"package_manager", backend.String(),
				"reason", err.Error(),
				"log_file", path,
			)
		}
		defer func() { _ = f.Close() }()
		stdout = io.MultiWriter(stdoutLog, f)
		stderr = io.MultiWriter(stderrLog, f)
	}

	env := resolveEnvironment(os.Environ())
	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, env); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // configured package manager
	cmd.Args[0] = name
	cmd.Dir = cfg.Root()
	cmd.Env = env

	if i.terminal == detector.TerminalPTY {
		err = runPTY(cmd, stdout)
	} else {
		cmd.Stdout = stdout
		cmd.Stderr = stderr
		err = cmd.Run()
	}

	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return domain.Raise(domain.ErrBackendFailed,
			"package_manager", backend.String(),
			"command", name+" "+strings.Join(args, " "),
			"exit_code", exitCode,
			"reason", err.Error(),
		)
	}

	return nil
}

func (i *Installer) binary(backend domain.Backend) string {
	if path, ok := i.binaries[backend]; ok && path != "" {
		return path
	}
	return backend.String()
}

// runPTY starts cmd in a pseudo-terminal and copies the merged output to w.
func runPTY(cmd *exec.Cmd, w io.Writer) error {
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return err
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		_, _ = io.Copy(w, ptmx)
	}()

	err = cmd.Wait()
	_ = ptmx.Close()
	<-ioDone
	return err
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, err
	}
	// #nosec G304 -- path is provided by the user on the command line
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, domain.FilePerm)
}
