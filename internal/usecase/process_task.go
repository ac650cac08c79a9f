package usecase

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/runoshun/git-batch/internal/domain"
	"github.com/runoshun/git-batch/internal/usecase/shared"
)

// ProcessTaskInput contains the parameters for processing one task.
type ProcessTaskInput struct {
	Path string // Descriptor path in the inbox
}

// ProcessTaskOutput contains the outcome of processing one task.
type ProcessTaskOutput struct {
	Result  *domain.Result // The stored result (prior result when skipped)
	Skipped bool           // True when a terminal result already existed
}

// ProcessTask runs the per-task pipeline: branch setup, one agent
// invocation, event-stream audit, acceptance commands, commit, result.
//
// Stage gating follows the accumulate-don't-short-circuit rule: a non-zero
// agent exit still audits the event stream; acceptance commands run even
// when an earlier stage already blocked; only the agent invocation (gated
// on branch setup) and the commit step (gated on not-blocked) are skipped.
type ProcessTask struct {
	tasks       domain.TaskStore
	results     domain.ResultStore
	git         domain.Git
	agent       domain.AgentRunner
	executor    domain.CommandExecutor
	transcripts domain.TranscriptOpener
	clock       domain.Clock
}

// NewProcessTask creates a new ProcessTask use case.
func NewProcessTask(
	tasks domain.TaskStore,
	results domain.ResultStore,
	git domain.Git,
	agent domain.AgentRunner,
	executor domain.CommandExecutor,
	transcripts domain.TranscriptOpener,
	clock domain.Clock,
) *ProcessTask {
	return &ProcessTask{
		tasks:       tasks,
		results:     results,
		git:         git,
		agent:       agent,
		executor:    executor,
		transcripts: transcripts,
		clock:       clock,
	}
}

// Execute processes one task descriptor through the full pipeline and
// persists the result. A task whose stored status is terminal is skipped
// with zero side effects. The returned error covers infrastructure
// failures only (unreadable descriptor, unrunnable subprocess, unwritable
// result); pipeline failures resolve into a blocked result instead.
func (uc *ProcessTask) Execute(ctx context.Context, in ProcessTaskInput) (*ProcessTaskOutput, error) {
	task, err := uc.tasks.Load(in.Path)
	if err != nil {
		return nil, err
	}

	prev, err := uc.results.LoadResult(task.ID)
	if err != nil {
		return nil, err
	}
	if prev != nil && prev.Status.IsTerminal() {
		return &ProcessTaskOutput{Result: prev, Skipped: true}, nil
	}

	res := &domain.Result{
		ID:            task.ID,
		Attempt:       domain.NextAttempt(prev),
		Status:        domain.StatusNeedsReview,
		Branch:        task.Branch,
		ChangedFiles:  []string{},
		TestCommands:  []string{},
		TestOK:        true,
		NeedsDecision: []string{},
		Errors:        []string{},
	}

	agentLog := uc.transcripts.Open(domain.AgentLogName(task.ID))
	testsLog := uc.transcripts.Open(domain.AcceptanceLogName(task.ID))
	runnerLog := uc.transcripts.Open(domain.RunnerLogName(task.ID))
	for _, transcript := range []domain.Transcript{agentLog, testsLog, runnerLog} {
		if err := transcript.Reset(); err != nil {
			return nil, err
		}
	}
	runnerLog.Logf("processing %s (attempt %d)", filepath.Base(in.Path), res.Attempt)

	if err := uc.ensureBranch(ctx, task, res, runnerLog); err != nil {
		return nil, err
	}

	// The agent only runs on the task's branch.
	if res.Status != domain.StatusBlocked {
		if err := uc.runAgent(ctx, task, res, agentLog, runnerLog); err != nil {
			return nil, err
		}
	}

	if err := uc.runAcceptance(ctx, task, res, testsLog); err != nil {
		return nil, err
	}

	if res.Status != domain.StatusBlocked {
		if err := uc.commitChanges(ctx, task, res, runnerLog); err != nil {
			return nil, err
		}
	}

	res.Summary = summarize(task, res)
	res.UpdatedAt = uc.clock.Now().UTC().Truncate(time.Second)

	if err := uc.results.SaveResult(res); err != nil {
		return nil, err
	}
	return &ProcessTaskOutput{Result: res}, nil
}

// ensureBranch creates the task's branch, falling back to checking out an
// existing one. Both failing blocks the attempt.
func (uc *ProcessTask) ensureBranch(ctx context.Context, task *domain.Task, res *domain.Result, runnerLog domain.Transcript) error {
	created, err := uc.git.CreateBranch(ctx, task.RepoRoot, task.Branch)
	if err != nil {
		return err
	}
	runnerLog.Command("git checkout -b "+task.Branch, task.RepoRoot, created)
	if created.OK() {
		return nil
	}

	switched, err := uc.git.SwitchBranch(ctx, task.RepoRoot, task.Branch)
	if err != nil {
		return err
	}
	runnerLog.Command("git checkout "+task.Branch, task.RepoRoot, switched)
	if !switched.OK() {
		res.Status = domain.StatusBlocked
		res.Errors = append(res.Errors, fmt.Sprintf("git checkout failed for branch '%s'", task.Branch))
	}
	return nil
}

// runAgent invokes the agent once and audits its event stream. A non-zero
// exit blocks but does not prevent the audit from appending further errors.
func (uc *ProcessTask) runAgent(ctx context.Context, task *domain.Task, res *domain.Result, agentLog, runnerLog domain.Transcript) error {
	agentRes, err := uc.agent.Invoke(ctx, task.PromptText, task.Workdir)
	if err != nil {
		return err
	}
	runnerLog.Command(uc.agent.CommandLine(task.PromptText), task.Workdir, agentRes)
	if err := agentLog.SetContent(agentRes.Stdout); err != nil {
		return err
	}

	if !agentRes.OK() {
		res.Status = domain.StatusBlocked
		res.Errors = append(res.Errors, fmt.Sprintf("agent command failed with code %d", agentRes.ExitCode))
	}

	hasError, eventErrors := shared.AuditEvents(agentRes.Stdout)
	if hasError {
		res.Status = domain.StatusBlocked
		res.Errors = append(res.Errors, eventErrors...)
	}
	return nil
}

// runAcceptance extracts and executes the acceptance commands in order,
// stopping at the first non-zero exit. An empty command list is a trivial
// success.
func (uc *ProcessTask) runAcceptance(ctx context.Context, task *domain.Task, res *domain.Result, testsLog domain.Transcript) error {
	res.TestCommands = shared.ExtractAcceptanceCommands(task.PromptText)
	if len(res.TestCommands) > 0 {
		testsLog.Logf("acceptance commands for %s", task.ID)
	}

	for _, cmdLine := range res.TestCommands {
		cmdRes, err := uc.executor.Execute(ctx, domain.ShellCommand(cmdLine, task.Workdir))
		if err != nil {
			return err
		}
		testsLog.Command(cmdLine, task.Workdir, cmdRes)
		if !cmdRes.OK() {
			res.TestOK = false
			res.Status = domain.StatusBlocked
			res.Errors = append(res.Errors, fmt.Sprintf("acceptance command failed: %s (exit %d)", cmdLine, cmdRes.ExitCode))
			break
		}
	}
	return nil
}

// commitChanges stages and commits the working-tree changes. A clean tree
// blocks with the "no changes" reason regardless of prior success.
func (uc *ProcessTask) commitChanges(ctx context.Context, task *domain.Task, res *domain.Result, runnerLog domain.Transcript) error {
	statusRes, err := uc.git.Status(ctx, task.RepoRoot)
	if err != nil {
		return err
	}
	runnerLog.Command("git status --porcelain", task.RepoRoot, statusRes)
	if !statusRes.OK() {
		res.Status = domain.StatusBlocked
		res.Errors = append(res.Errors, "git status --porcelain failed")
		return nil
	}

	res.ChangedFiles = shared.ChangedPaths(statusRes.Stdout)
	if len(res.ChangedFiles) == 0 {
		res.Status = domain.StatusBlocked
		res.Reason = domain.ReasonNoChanges
		res.Errors = append(res.Errors, domain.ReasonNoChanges)
		return nil
	}

	addRes, err := uc.git.StageAll(ctx, task.RepoRoot)
	if err != nil {
		return err
	}
	runnerLog.Command("git add -A", task.RepoRoot, addRes)
	if !addRes.OK() {
		res.Status = domain.StatusBlocked
		res.Errors = append(res.Errors, "git add -A failed")
		return nil
	}

	commitRes, err := uc.git.Commit(ctx, task.RepoRoot, task.CommitMessage())
	if err != nil {
		return err
	}
	runnerLog.Command("git commit -m "+task.CommitMessage(), task.RepoRoot, commitRes)
	if !commitRes.OK() {
		res.Status = domain.StatusBlocked
		res.Errors = append(res.Errors, "git commit failed")
		return nil
	}

	headRes, err := uc.git.Head(ctx, task.RepoRoot)
	if err != nil {
		return err
	}
	runnerLog.Command("git rev-parse HEAD", task.RepoRoot, headRes)
	if !headRes.OK() {
		res.Status = domain.StatusBlocked
		res.Errors = append(res.Errors, "git rev-parse HEAD failed")
		return nil
	}
	res.Commit = strings.TrimSpace(headRes.Stdout)
	return nil
}

// summarize composes the result summary; the last recorded error informs
// the blocked wording.
func summarize(task *domain.Task, res *domain.Result) string {
	switch {
	case res.Status == domain.StatusNeedsReview:
		return fmt.Sprintf("Task %s completed; branch %s ready for review.", task.ID, task.Branch)
	case len(res.Errors) > 0 && res.Errors[len(res.Errors)-1] == domain.ReasonNoChanges:
		return fmt.Sprintf("Task %s blocked: no changes.", task.ID)
	default:
		return fmt.Sprintf("Task %s blocked. See logs.", task.ID)
	}
}
