// Package git wraps the git CLI for the branch, status and commit
// operations the pipeline needs.
package git

import (
	"context"

	"github.com/runoshun/git-batch/internal/domain"
)

// Client provides git operations over the command executor port, so tests
// can substitute a fake runner for the git binary.
type Client struct {
	exec domain.CommandExecutor
}

// NewClient creates a new git client.
func NewClient(exec domain.CommandExecutor) *Client {
	return &Client{exec: exec}
}

// Ensure Client implements domain.Git.
var _ domain.Git = (*Client)(nil)

func (c *Client) run(ctx context.Context, dir string, args ...string) (domain.ExecResult, error) {
	return c.exec.Execute(ctx, domain.ExecCommand{Program: "git", Args: args, Dir: dir})
}

// CreateBranch runs `git checkout -b <branch>` in dir.
func (c *Client) CreateBranch(ctx context.Context, dir, branch string) (domain.ExecResult, error) {
	return c.run(ctx, dir, "checkout", "-b", branch)
}

// SwitchBranch runs `git checkout <branch>` in dir.
func (c *Client) SwitchBranch(ctx context.Context, dir, branch string) (domain.ExecResult, error) {
	return c.run(ctx, dir, "checkout", branch)
}

// Status runs `git status --porcelain` in dir.
func (c *Client) Status(ctx context.Context, dir string) (domain.ExecResult, error) {
	return c.run(ctx, dir, "status", "--porcelain")
}

// StageAll runs `git add -A` in dir.
func (c *Client) StageAll(ctx context.Context, dir string) (domain.ExecResult, error) {
	return c.run(ctx, dir, "add", "-A")
}

// Commit runs `git commit -m <message>` in dir.
func (c *Client) Commit(ctx context.Context, dir, message string) (domain.ExecResult, error) {
	return c.run(ctx, dir, "commit", "-m", message)
}

// Head runs `git rev-parse HEAD` in dir.
func (c *Client) Head(ctx context.Context, dir string) (domain.ExecResult, error) {
	return c.run(ctx, dir, "rev-parse", "HEAD")
}
