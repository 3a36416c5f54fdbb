package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/lockstep/internal/core/domain"
	"go.trai.ch/lockstep/internal/ui/report"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report whether the lock file satisfies every project manifest",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := report.New(cmd.OutOrStdout())
			if watch {
				return c.app.Watch(cmd.Context(), r.Report)
			}

			rep, err := c.app.Check(cmd.Context())
			if err != nil {
				return err
			}
			if err := r.Report(rep); err != nil {
				return err
			}
			if !rep.Empty() {
				return domain.Raise(domain.ErrLockfileOutdated, "discrepancies", rep.Len())
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Check again whenever a manifest or the lock file changes")
	return cmd
}
