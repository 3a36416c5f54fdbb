package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newChangeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "change <project>",
		Short: "Record that a project changed without needing a release",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")

			path, err := c.app.Change(cmd.Context(), args[0], email)
			if err != nil {
				return err
			}
			if path != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}
	cmd.Flags().String("email", "", "Author email recorded in the change file")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
