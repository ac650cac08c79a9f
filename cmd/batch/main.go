// Package main is the entry point for the git-batch CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/runoshun/git-batch/internal/app"
	"github.com/runoshun/git-batch/internal/cli"
	"github.com/runoshun/git-batch/internal/domain"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := app.New(cwd)
	if err != nil {
		// Allow help and version output without a git repo
		if errors.Is(err, domain.ErrNotGitRepository) && canRunWithoutGit(os.Args[1:]) {
			return cli.NewRootCommand(nil, version).ExecuteContext(ctx)
		}
		if errors.Is(err, domain.ErrNotGitRepository) {
			return err
		}
		return fmt.Errorf("failed to initialize: %w", err)
	}

	return cli.NewRootCommand(container, version).ExecuteContext(ctx)
}

// canRunWithoutGit reports whether the invocation works without a git
// repository (no-args, help and version output).
func canRunWithoutGit(args []string) bool {
	if len(args) == 0 {
		return true
	}
	if args[0] == "help" {
		return true
	}
	for _, arg := range args {
		if arg == "--version" || arg == "-v" || arg == "--help" || arg == "-h" {
			return true
		}
	}
	return false
}
