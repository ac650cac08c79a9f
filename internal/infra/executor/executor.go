// Package executor provides command execution functionality.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/runoshun/git-batch/internal/domain"
)

// Client implements domain.CommandExecutor using os/exec.
type Client struct{}

// NewClient creates a new command executor client.
func NewClient() *Client {
	return &Client{}
}

// Ensure Client implements domain.CommandExecutor.
var _ domain.CommandExecutor = (*Client)(nil)

// Execute runs the command, capturing stdout and stderr separately.
// A non-zero exit code is reported in the result, not as an error;
// the error return means the command could not be run at all.
func (c *Client) Execute(ctx context.Context, cmd domain.ExecCommand) (domain.ExecResult, error) {
	// #nosec G204 - program and args come from trusted use case code
	execCmd := exec.CommandContext(ctx, cmd.Program, cmd.Args...)
	if cmd.Dir != "" {
		execCmd.Dir = cmd.Dir
	}
	if len(cmd.Env) > 0 {
		env := os.Environ()
		for key, value := range cmd.Env {
			env = append(env, key+"="+value)
		}
		execCmd.Env = env
	}

	var stdout, stderr bytes.Buffer
	execCmd.Stdout = &stdout
	execCmd.Stderr = &stderr

	err := execCmd.Run()
	res := domain.ExecResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err == nil {
		return res, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}

	return res, fmt.Errorf("run %s: %w", cmd.Program, err)
}
