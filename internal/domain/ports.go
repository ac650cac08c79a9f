package domain

import (
	"context"
	"time"
)

// CommandExecutor runs external commands. All subprocess execution in the
// pipeline goes through this single capability so tests can substitute a
// fake runner.
type CommandExecutor interface {
	// Execute runs the command and captures its output. A non-zero exit
	// code is reported in the result, not as an error; the error return
	// means the command could not be run at all.
	Execute(ctx context.Context, cmd ExecCommand) (ExecResult, error)
}

// Git provides the version-control operations the pipeline needs.
// Every method returns the raw execution result; callers inspect the exit
// code and decide how a failure propagates.
type Git interface {
	// CreateBranch runs `git checkout -b <branch>` in dir.
	CreateBranch(ctx context.Context, dir, branch string) (ExecResult, error)

	// SwitchBranch runs `git checkout <branch>` in dir.
	SwitchBranch(ctx context.Context, dir, branch string) (ExecResult, error)

	// Status runs `git status --porcelain` in dir.
	Status(ctx context.Context, dir string) (ExecResult, error)

	// StageAll runs `git add -A` in dir.
	StageAll(ctx context.Context, dir string) (ExecResult, error)

	// Commit runs `git commit -m <message>` in dir.
	Commit(ctx context.Context, dir, message string) (ExecResult, error)

	// Head runs `git rev-parse HEAD` in dir.
	Head(ctx context.Context, dir string) (ExecResult, error)
}

// AgentRunner invokes the external coding agent once, synchronously.
type AgentRunner interface {
	// Invoke runs the agent with the prompt in dir, capturing its
	// newline-delimited JSON event stream on stdout.
	Invoke(ctx context.Context, prompt, dir string) (ExecResult, error)

	// CommandLine returns the full command line for transcript display.
	CommandLine(prompt string) string
}

// TaskStore manages task descriptors in the inbox.
type TaskStore interface {
	// ListPending returns descriptor paths in lexicographic order,
	// excluding result files.
	ListPending() ([]string, error)

	// Load reads and normalizes the descriptor at path.
	Load(path string) (*Task, error)

	// Save writes a new descriptor into the inbox and returns its path.
	Save(task *Task) (string, error)
}

// ResultStore manages durable result records in the outbox.
type ResultStore interface {
	// LoadResult retrieves the stored result for a task id.
	// Returns nil if no readable result exists.
	LoadResult(id string) (*Result, error)

	// SaveResult overwrites the result for its task id unconditionally,
	// creating the containing directory if absent.
	SaveResult(res *Result) error
}

// Transcript is a per-task diagnostic log, truncated at the start of each
// attempt and append-only during it. Write failures are swallowed; a
// transcript must never fail the pipeline.
type Transcript interface {
	// Reset truncates the transcript for a new attempt.
	Reset() error

	// Logf appends a timestamped line.
	Logf(format string, args ...any)

	// Command appends a command record: command line, working directory,
	// captured stdout/stderr, exit code.
	Command(shown, dir string, res ExecResult)

	// SetContent replaces the transcript content wholesale
	// (used for the raw agent event stream).
	SetContent(content string) error
}

// TranscriptOpener opens transcripts in the logs area by file name.
type TranscriptOpener interface {
	Open(name string) Transcript
}

// StoreInitializer initializes the data store.
type StoreInitializer interface {
	// Initialize creates the store layout if it doesn't exist.
	Initialize() error
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the configuration with defaults applied.
	Load() (*Config, error)
}

// ConfigInitializer writes a starter configuration file.
type ConfigInitializer interface {
	// Init creates the config file and returns its path.
	// Returns ErrConfigExists if one is already present.
	Init() (string, error)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
