package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/git-batch/internal/app"
	"github.com/runoshun/git-batch/internal/usecase"
)

// newRunCommand creates the run command.
func newRunCommand(c *app.Container) *cobra.Command {
	var taskID string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process all pending tasks in the inbox",
		Long: `Process every pending task descriptor, in lexicographic order.

Tasks run strictly sequentially: the working tree and branch pointer are
shared across tasks. A failure inside one task never aborts the batch;
it is recorded as a blocked result with reason "runner_exception".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}

			out, err := c.RunBatchUseCase().Execute(cmd.Context(), usecase.RunBatchInput{TaskID: taskID})
			if err != nil {
				return err
			}

			if len(out.Results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No pending tasks")
				return nil
			}
			for _, res := range out.Results {
				fmt.Fprintf(cmd.OutOrStdout(), "task %s: %s (attempt %d)\n", res.ID, res.Status, res.Attempt)
			}
			if out.Skipped > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%d task(s) already terminal, skipped\n", out.Skipped)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&taskID, "task", "", "Process only the descriptor with this file stem")

	return cmd
}
