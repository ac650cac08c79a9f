// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/runoshun/git-batch/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockExecutor is a test double for domain.CommandExecutor. Results are
// keyed by the command's Shown() form; unknown commands get Default.
type MockExecutor struct {
	Results  map[string]domain.ExecResult
	Errs     map[string]error
	Default  domain.ExecResult
	Commands []domain.ExecCommand
}

// NewMockExecutor creates a MockExecutor with initialized maps.
func NewMockExecutor() *MockExecutor {
	return &MockExecutor{
		Results: make(map[string]domain.ExecResult),
		Errs:    make(map[string]error),
	}
}

// Execute records the command and returns the scripted result.
func (m *MockExecutor) Execute(_ context.Context, cmd domain.ExecCommand) (domain.ExecResult, error) {
	m.Commands = append(m.Commands, cmd)
	shown := cmd.Shown()
	if err, ok := m.Errs[shown]; ok {
		return domain.ExecResult{}, err
	}
	if res, ok := m.Results[shown]; ok {
		return res, nil
	}
	return m.Default, nil
}

// MockGit is a test double for domain.Git. Each operation returns its
// scripted result and counts invocations.
type MockGit struct {
	CreateBranchResult domain.ExecResult
	SwitchBranchResult domain.ExecResult
	StatusResult       domain.ExecResult
	StageAllResult     domain.ExecResult
	CommitResult       domain.ExecResult
	HeadResult         domain.ExecResult

	Err error // Returned by every operation when set

	Calls          []string // Operation names in invocation order
	CreatedBranch  string
	SwitchedBranch string
	CommitMessage  string
}

func (m *MockGit) record(op string) {
	m.Calls = append(m.Calls, op)
}

// CreateBranch returns the scripted result for `git checkout -b`.
func (m *MockGit) CreateBranch(_ context.Context, _, branch string) (domain.ExecResult, error) {
	m.record("create-branch")
	m.CreatedBranch = branch
	return m.CreateBranchResult, m.Err
}

// SwitchBranch returns the scripted result for `git checkout`.
func (m *MockGit) SwitchBranch(_ context.Context, _, branch string) (domain.ExecResult, error) {
	m.record("switch-branch")
	m.SwitchedBranch = branch
	return m.SwitchBranchResult, m.Err
}

// Status returns the scripted result for `git status --porcelain`.
func (m *MockGit) Status(_ context.Context, _ string) (domain.ExecResult, error) {
	m.record("status")
	return m.StatusResult, m.Err
}

// StageAll returns the scripted result for `git add -A`.
func (m *MockGit) StageAll(_ context.Context, _ string) (domain.ExecResult, error) {
	m.record("stage-all")
	return m.StageAllResult, m.Err
}

// Commit returns the scripted result for `git commit -m`.
func (m *MockGit) Commit(_ context.Context, _, message string) (domain.ExecResult, error) {
	m.record("commit")
	m.CommitMessage = message
	return m.CommitResult, m.Err
}

// Head returns the scripted result for `git rev-parse HEAD`.
func (m *MockGit) Head(_ context.Context, _ string) (domain.ExecResult, error) {
	m.record("head")
	return m.HeadResult, m.Err
}

// MockAgent is a test double for domain.AgentRunner.
type MockAgent struct {
	InvokeResult domain.ExecResult
	InvokeErr    error
	Prompts      []string
	Dirs         []string
}

// Invoke records the prompt and returns the scripted result.
func (m *MockAgent) Invoke(_ context.Context, prompt, dir string) (domain.ExecResult, error) {
	m.Prompts = append(m.Prompts, prompt)
	m.Dirs = append(m.Dirs, dir)
	return m.InvokeResult, m.InvokeErr
}

// CommandLine mirrors the codex adapter's display form.
func (m *MockAgent) CommandLine(prompt string) string {
	return "codex exec --json " + prompt
}

// MockTaskStore is a test double for domain.TaskStore.
type MockTaskStore struct {
	Pending []string                // Paths returned by ListPending
	Tasks   map[string]*domain.Task // Keyed by path
	ListErr error
	LoadErr error
	SaveErr error
	Saved   []*domain.Task
}

// NewMockTaskStore creates a MockTaskStore with initialized maps.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{Tasks: make(map[string]*domain.Task)}
}

// Add registers a normalized task under path and lists it as pending.
func (m *MockTaskStore) Add(path string, task *domain.Task) {
	task.Path = path
	if err := task.Normalize(); err != nil {
		panic(err)
	}
	m.Tasks[path] = task
	m.Pending = append(m.Pending, path)
}

// ListPending returns the scripted pending paths.
func (m *MockTaskStore) ListPending() ([]string, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Pending, nil
}

// Load returns the task registered under path.
func (m *MockTaskStore) Load(path string) (*domain.Task, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	task, ok := m.Tasks[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, path)
	}
	return task, nil
}

// Save records the task.
func (m *MockTaskStore) Save(task *domain.Task) (string, error) {
	if m.SaveErr != nil {
		return "", m.SaveErr
	}
	m.Saved = append(m.Saved, task)
	return "inbox/" + task.ID + ".yaml", nil
}

// MockResultStore is a test double for domain.ResultStore.
type MockResultStore struct {
	Results map[string]*domain.Result
	LoadErr error
	SaveErr error
	Saved   []*domain.Result
}

// NewMockResultStore creates a MockResultStore with initialized maps.
func NewMockResultStore() *MockResultStore {
	return &MockResultStore{Results: make(map[string]*domain.Result)}
}

// LoadResult returns the stored result for id, or nil.
func (m *MockResultStore) LoadResult(id string) (*domain.Result, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Results[id], nil
}

// SaveResult records and stores the result.
func (m *MockResultStore) SaveResult(res *domain.Result) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Saved = append(m.Saved, res)
	m.Results[res.ID] = res
	return nil
}

// MockTranscript is a test double for domain.Transcript, capturing entries
// in memory.
type MockTranscript struct {
	ResetCount int
	ResetErr   error
	Entries    []string
	Content    string // Last SetContent payload
}

// Reset counts truncations.
func (m *MockTranscript) Reset() error {
	if m.ResetErr != nil {
		return m.ResetErr
	}
	m.ResetCount++
	m.Entries = nil
	return nil
}

// Logf captures the formatted line.
func (m *MockTranscript) Logf(format string, args ...any) {
	m.Entries = append(m.Entries, fmt.Sprintf(format, args...))
}

// Command captures the command record.
func (m *MockTranscript) Command(shown, dir string, res domain.ExecResult) {
	m.Entries = append(m.Entries, fmt.Sprintf("$ %s [cwd %s] [exit %d]", shown, dir, res.ExitCode))
}

// SetContent captures the wholesale content.
func (m *MockTranscript) SetContent(content string) error {
	m.Content = content
	return nil
}

// MockTranscriptOpener is a test double for domain.TranscriptOpener.
type MockTranscriptOpener struct {
	Transcripts map[string]*MockTranscript
}

// NewMockTranscriptOpener creates a MockTranscriptOpener with initialized maps.
func NewMockTranscriptOpener() *MockTranscriptOpener {
	return &MockTranscriptOpener{Transcripts: make(map[string]*MockTranscript)}
}

// Open returns the transcript for name, creating it on first use.
func (m *MockTranscriptOpener) Open(name string) domain.Transcript {
	if t, ok := m.Transcripts[name]; ok {
		return t
	}
	t := &MockTranscript{}
	m.Transcripts[name] = t
	return t
}
