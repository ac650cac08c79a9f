package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/runoshun/git-batch/internal/app"
	"github.com/runoshun/git-batch/internal/usecase"
)

// newNewCommand creates the new command for authoring task descriptors.
func newNewCommand(c *app.Container) *cobra.Command {
	var opts struct {
		ID         string
		Title      string
		Branch     string
		Prompt     string
		PromptFile string
		Workdir    string
	}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new task descriptor in the inbox",
		Long: `Create a new task descriptor in the inbox.

The prompt text carries the actual work. Acceptance commands are recovered
from an "Acceptance:" section of the prompt when the task is processed.

Examples:
  # Prompt from a flag
  batch new --title "Fix login bug" --prompt "Fix the login bug.

Acceptance:
` + "```" + `
go test ./...
` + "```" + `"

  # Prompt from a file
  batch new --title "Refactor auth" --prompt-file prompts/auth.md

  # Prompt from stdin
  cat prompt.md | batch new --title "Add feature" --prompt-file -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}

			prompt := opts.Prompt
			if opts.PromptFile != "" {
				data, err := readPrompt(cmd.InOrStdin(), opts.PromptFile)
				if err != nil {
					return err
				}
				prompt = data
			}

			out, err := c.NewTaskUseCase().Execute(usecase.NewTaskInput{
				ID:         opts.ID,
				Title:      opts.Title,
				Branch:     opts.Branch,
				PromptText: prompt,
				Workdir:    opts.Workdir,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s: %s\n", out.Task.ID, out.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.ID, "id", "", "Task id (defaults to a slug of the title)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "Task title (required)")
	cmd.Flags().StringVar(&opts.Branch, "branch", "", "Target branch (defaults to agent/<id>)")
	cmd.Flags().StringVar(&opts.Prompt, "prompt", "", "Prompt text")
	cmd.Flags().StringVar(&opts.PromptFile, "prompt-file", "", "Read the prompt from a file, or - for stdin")
	cmd.Flags().StringVar(&opts.Workdir, "workdir", "", "Agent working directory, relative to the repo root")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func readPrompt(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read prompt from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read prompt file: %w", err)
	}
	return string(data), nil
}

// newListCommand creates the list command.
func newListCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List inbox tasks with their latest result status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}

			out, err := c.ListTasksUseCase().Execute()
			if err != nil {
				return err
			}
			if len(out.Tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No pending tasks")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTATUS\tATTEMPT\tBRANCH\tTITLE")
			for _, t := range out.Tasks {
				attempt := "-"
				if t.Attempt > 0 {
					attempt = fmt.Sprintf("%d", t.Attempt)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Status, attempt, t.Branch, t.Title)
			}
			return w.Flush()
		},
	}
}

// newShowCommand creates the show command.
func newShowCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Print the stored result record for a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireContainer(c); err != nil {
				return err
			}

			res, err := c.ShowResultUseCase().Execute(args[0])
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
