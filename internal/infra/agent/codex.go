// Package agent provides adapters for invoking external coding agents.
package agent

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/runoshun/git-batch/internal/domain"
)

// CodexCLI invokes a codex-style CLI agent in non-interactive mode: the
// prompt is passed as the final argument and the agent emits newline-delimited
// JSON events on stdout.
type CodexCLI struct {
	exec    domain.CommandExecutor
	program string
	args    []string
	timeout time.Duration
}

// NewCodexCLI creates an adapter from the agent configuration,
// falling back to `codex exec --json` when unset.
func NewCodexCLI(exec domain.CommandExecutor, cfg domain.AgentConfig) *CodexCLI {
	program := strings.TrimSpace(cfg.Command)
	if program == "" {
		program = "codex"
	}
	args := cfg.Args
	if args == nil {
		args = []string{"exec", "--json"}
	}
	var timeout time.Duration
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return &CodexCLI{exec: exec, program: program, args: args, timeout: timeout}
}

// Ensure CodexCLI implements domain.AgentRunner.
var _ domain.AgentRunner = (*CodexCLI)(nil)

// Invoke runs the agent once, synchronously, with the task's working
// directory as current directory. A non-zero exit is reported in the result.
func (a *CodexCLI) Invoke(ctx context.Context, prompt, dir string) (domain.ExecResult, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	return a.exec.Execute(ctx, domain.ExecCommand{
		Program: a.program,
		Args:    append(slices.Clone(a.args), prompt),
		Dir:     dir,
	})
}

// CommandLine returns the full command line for transcript display.
func (a *CodexCLI) CommandLine(prompt string) string {
	parts := append([]string{a.program}, a.args...)
	parts = append(parts, prompt)
	return strings.Join(parts, " ")
}
