// Package main is the entry point for lockstep.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/lockstep/cmd/lockstep/commands"
	"go.trai.ch/lockstep/internal/app"
	"go.trai.ch/lockstep/internal/core/domain"
	_ "go.trai.ch/lockstep/internal/wiring"
)

// Exit codes reported to the shell.
const (
	exitOK      = 0
	exitFailure = 1
	exitPolicy  = 2
	exitBackend = 3
	exitStale   = 4
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stderr io.Writer,
	provider ComponentProvider,
	opts ...func(*app.App),
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, cleanup, err := provider(ctx)
	if err != nil {
		// The logger is not available yet.
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return exitFailure
	}
	defer cleanup()

	for _, opt := range opts {
		opt(components.App)
	}

	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(os.Stdout, stderr)

	if err := cli.Execute(ctx); err != nil {
		components.Logger.Error(err)
		return exitCode(err)
	}
	return exitOK
}

func exitCode(err error) int {
	switch domain.ClassOf(err) {
	case domain.ClassPolicy:
		return exitPolicy
	case domain.ClassBackend:
		return exitBackend
	case domain.ClassStale:
		return exitStale
	default:
		return exitFailure
	}
}
