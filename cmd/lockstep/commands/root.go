// Package commands implements the CLI commands for lockstep.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/lockstep/internal/app"
	"go.trai.ch/lockstep/internal/build"
	"go.trai.ch/lockstep/internal/core/domain"
)

// CLI represents the command line interface for lockstep.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Update(ctx context.Context, opts app.UpdateOptions) (domain.InstallOptions, error)
	Check(ctx context.Context) (*domain.ConsistencyReport, error)
	Watch(ctx context.Context, onReport func(*domain.ConsistencyReport) error) error
	Change(ctx context.Context, project, email string) (string, error)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "lockstep",
		Short:         "Keep a monorepo lock file in step with its project manifests",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.SetFlagErrorFunc(usageError)

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newUpdateCmd())
	rootCmd.AddCommand(c.newCheckCmd())
	rootCmd.AddCommand(c.newChangeCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// usageError marks flag parsing failures so they exit like other policy errors.
func usageError(_ *cobra.Command, err error) error {
	return domain.Raise(domain.ErrInvalidUsage, "reason", err.Error())
}

// usageArgs wraps a positional argument validator with usageError.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError(cmd, err)
		}
		return nil
	}
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
