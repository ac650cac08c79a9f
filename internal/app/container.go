// Package app provides the dependency injection container for the application.
package app

import (
	"errors"
	"log/slog"
	"os"

	gogit "github.com/go-git/go-git/v5"

	"github.com/runoshun/git-batch/internal/domain"
	"github.com/runoshun/git-batch/internal/infra/agent"
	"github.com/runoshun/git-batch/internal/infra/config"
	"github.com/runoshun/git-batch/internal/infra/executor"
	"github.com/runoshun/git-batch/internal/infra/git"
	"github.com/runoshun/git-batch/internal/infra/inbox"
	"github.com/runoshun/git-batch/internal/infra/translog"
	"github.com/runoshun/git-batch/internal/usecase"
)

// Config holds the application paths.
type Config struct {
	RepoRoot string // Root directory of the git repository
	BatchDir string // Batch storage root (inbox/outbox/logs/config)
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Tasks            domain.TaskStore
	Results          domain.ResultStore
	StoreInitializer domain.StoreInitializer
	Git              domain.Git
	Agent            domain.AgentRunner
	Executor         domain.CommandExecutor
	Transcripts      domain.TranscriptOpener
	ConfigLoader     domain.ConfigLoader
	ConfigInit       domain.ConfigInitializer
	Clock            domain.Clock

	// Pointer fields
	Logger *slog.Logger

	// Configuration
	Config Config
}

// New creates a new Container by detecting the git repository from the
// given directory.
func New(dir string) (*Container, error) {
	repoRoot, err := findRepoRoot(dir)
	if err != nil {
		return nil, err
	}

	cfg := Config{
		RepoRoot: repoRoot,
		BatchDir: domain.BatchDir(repoRoot),
	}

	configLoader := config.NewLoader(cfg.BatchDir)
	appConfig, err := configLoader.Load()
	if err != nil {
		appConfig = domain.NewDefaultConfig() // fall back to defaults on a broken file
	}

	exec := executor.NewClient()
	clock := domain.RealClock{}
	store := inbox.New(cfg.BatchDir)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(appConfig.Log.Level),
	}))

	return &Container{
		Tasks:            store,
		Results:          store,
		StoreInitializer: store,
		Git:              git.NewClient(exec),
		Agent:            agent.NewCodexCLI(exec, appConfig.Agent),
		Executor:         exec,
		Transcripts:      translog.NewOpener(domain.LogsDir(cfg.BatchDir), clock),
		ConfigLoader:     configLoader,
		ConfigInit:       configLoader,
		Clock:            clock,
		Logger:           logger,
		Config:           cfg,
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(
	cfg Config,
	tasks domain.TaskStore,
	results domain.ResultStore,
	gitPort domain.Git,
	agentPort domain.AgentRunner,
	exec domain.CommandExecutor,
	transcripts domain.TranscriptOpener,
	clock domain.Clock,
	logger *slog.Logger,
) *Container {
	return &Container{
		Tasks:       tasks,
		Results:     results,
		Git:         gitPort,
		Agent:       agentPort,
		Executor:    exec,
		Transcripts: transcripts,
		Clock:       clock,
		Logger:      logger,
		Config:      cfg,
	}
}

// findRepoRoot resolves the worktree root of the enclosing git repository.
func findRepoRoot(dir string) (string, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return "", domain.ErrNotGitRepository
		}
		return "", err
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return "", domain.ErrNotGitRepository // bare repository has no working tree
	}
	return worktree.Filesystem.Root(), nil
}

func parseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// UseCase factory methods

// ProcessTaskUseCase returns a new ProcessTask use case.
func (c *Container) ProcessTaskUseCase() *usecase.ProcessTask {
	return usecase.NewProcessTask(c.Tasks, c.Results, c.Git, c.Agent, c.Executor, c.Transcripts, c.Clock)
}

// RunBatchUseCase returns a new RunBatch use case.
func (c *Container) RunBatchUseCase() *usecase.RunBatch {
	return usecase.NewRunBatch(c.Tasks, c.Results, c.ProcessTaskUseCase(), c.Clock, c.Logger)
}

// NewTaskUseCase returns a new NewTask use case.
func (c *Container) NewTaskUseCase() *usecase.NewTask {
	return usecase.NewNewTask(c.Tasks)
}

// ListTasksUseCase returns a new ListTasks use case.
func (c *Container) ListTasksUseCase() *usecase.ListTasks {
	return usecase.NewListTasks(c.Tasks, c.Results)
}

// ShowResultUseCase returns a new ShowResult use case.
func (c *Container) ShowResultUseCase() *usecase.ShowResult {
	return usecase.NewShowResult(c.Results)
}

// InitWorkspaceUseCase returns a new InitWorkspace use case.
func (c *Container) InitWorkspaceUseCase() *usecase.InitWorkspace {
	return usecase.NewInitWorkspace(c.StoreInitializer, c.ConfigInit)
}
