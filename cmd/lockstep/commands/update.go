package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/lockstep/internal/app"
	"go.trai.ch/lockstep/internal/core/domain"
	"go.trai.ch/lockstep/internal/ui/report"
)

func (c *CLI) newUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update the lock file to satisfy every project manifest",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			full, _ := cmd.Flags().GetBool("full")
			recheck, _ := cmd.Flags().GetBool("recheck")
			skipInstall, _ := cmd.Flags().GetBool("skip-install")
			noLink, _ := cmd.Flags().GetBool("no-link")
			bypassPolicy, _ := cmd.Flags().GetBool("bypass-policy")
			collectLog, _ := cmd.Flags().GetString("collect-log")

			renderer := report.New(cmd.OutOrStdout())
			var renderErr error

			_, err := c.app.Update(cmd.Context(), app.UpdateOptions{
				Full:           full,
				Recheck:        recheck,
				SkipInstall:    skipInstall,
				NoLink:         noLink,
				BypassPolicy:   bypassPolicy,
				CollectLogFile: collectLog,
				OnPlan: func(opts domain.InstallOptions) {
					renderErr = renderer.Plan(opts)
				},
			})
			if err != nil {
				return err
			}
			return renderErr
		},
	}
	cmd.Flags().Bool("full", false, "Upgrade every dependency to the newest version its range allows")
	cmd.Flags().Bool("recheck", false, "Let the package manager reprocess the lock file even if it looks consistent")
	cmd.Flags().Bool("skip-install", false, "Only update the lock file without installing (pnpm only)")
	cmd.Flags().Bool("no-link", false, "Do not create links into node_modules")
	cmd.Flags().Bool("bypass-policy", false, "Skip the consistent versions check")
	cmd.Flags().String("collect-log", "", "Copy the package manager output to `FILE`")
	return cmd
}
