// Package cli provides the command-line interface for git-batch.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/runoshun/git-batch/internal/app"
	"github.com/runoshun/git-batch/internal/domain"
)

// Command group IDs.
const (
	groupSetup = "setup"
	groupTask  = "task"
	groupBatch = "batch"
)

// NewRootCommand creates the root command for git-batch.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "batch",
		Short: "Batch processor for autonomous coding-agent tasks",
		Long: `git-batch drains an inbox of coding-agent task descriptors.
For each pending task it checks out a dedicated branch, runs the external
agent once, validates the work against acceptance commands extracted from
the prompt, commits the changes, and records a durable result.

Tasks already marked needs_review or done are never reprocessed; blocked
tasks are retried on the next run with an incremented attempt counter.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
	}

	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupTask, Title: "Task Management:"},
		&cobra.Group{ID: groupBatch, Title: "Batch Processing:"},
	)

	initCmd := newInitCommand(c)
	initCmd.GroupID = groupSetup

	newCmd := newNewCommand(c)
	newCmd.GroupID = groupTask

	listCmd := newListCommand(c)
	listCmd.GroupID = groupTask

	showCmd := newShowCommand(c)
	showCmd.GroupID = groupTask

	runCmd := newRunCommand(c)
	runCmd.GroupID = groupBatch

	root.AddCommand(
		initCmd,
		newCmd,
		listCmd,
		showCmd,
		runCmd,
	)

	return root
}

// requireContainer guards commands that need a git repository.
func requireContainer(c *app.Container) error {
	if c == nil {
		return domain.ErrNotGitRepository
	}
	return nil
}
