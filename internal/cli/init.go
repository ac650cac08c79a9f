package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/git-batch/internal/app"
)

// newInitCommand creates the init command.
func newInitCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the batch workspace (inbox/outbox/logs) and config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}

			out, err := c.InitWorkspaceUseCase().Execute()
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Initialized batch workspace at %s\n", c.Config.BatchDir)
			if out.ConfigExisted {
				fmt.Fprintln(cmd.OutOrStdout(), "Config file already exists, left unchanged")
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote starter config to %s\n", out.ConfigPath)
			}
			return nil
		},
	}
}
