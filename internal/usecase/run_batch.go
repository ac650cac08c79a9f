package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/runoshun/git-batch/internal/domain"
)

// RunBatchInput contains the parameters for a batch run.
type RunBatchInput struct {
	TaskID string // Restrict the run to the descriptor with this file stem (optional)
}

// RunBatchOutput contains the outcome of a batch run.
type RunBatchOutput struct {
	Results []*domain.Result // One result per enumerated task, in inbox order
	Skipped int              // Tasks skipped because their result was terminal
}

// RunBatch enumerates pending task descriptors and processes each fully and
// independently, in lexicographic order. Tasks run strictly sequentially:
// the working tree and branch pointer are shared, unversioned resources, so
// concurrent execution would race on checkout and on the tree's change set.
type RunBatch struct {
	tasks   domain.TaskStore
	results domain.ResultStore
	process *ProcessTask
	clock   domain.Clock
	logger  *slog.Logger
}

// NewRunBatch creates a new RunBatch use case.
func NewRunBatch(tasks domain.TaskStore, results domain.ResultStore, process *ProcessTask, clock domain.Clock, logger *slog.Logger) *RunBatch {
	return &RunBatch{
		tasks:   tasks,
		results: results,
		process: process,
		clock:   clock,
		logger:  logger,
	}
}

// Execute runs the pipeline for every pending task. A failure inside one
// task's pipeline never aborts the batch: it is converted into a blocked
// result with reason "runner_exception" and the failure text as the sole
// error.
func (uc *RunBatch) Execute(ctx context.Context, in RunBatchInput) (*RunBatchOutput, error) {
	paths, err := uc.tasks.ListPending()
	if err != nil {
		return nil, err
	}

	out := &RunBatchOutput{}
	for _, path := range paths {
		if in.TaskID != "" && domain.TaskIDFromPath(path) != in.TaskID {
			continue
		}

		result, skipped := uc.processOne(ctx, path)
		out.Results = append(out.Results, result)
		if skipped {
			out.Skipped++
		}
	}
	return out, nil
}

// processOne runs the pipeline for one descriptor and absorbs any failure,
// including panics, into a blocked result.
func (uc *RunBatch) processOne(ctx context.Context, path string) (*domain.Result, bool) {
	procOut, err := uc.runGuarded(ctx, path)
	if err == nil {
		if procOut.Skipped {
			uc.logger.Info("task already terminal, skipping", "task", procOut.Result.ID, "status", procOut.Result.Status)
		}
		return procOut.Result, procOut.Skipped
	}

	id := domain.TaskIDFromPath(path)
	uc.logger.Error("task pipeline failed", "task", id, "error", err)

	prev, loadErr := uc.results.LoadResult(id)
	if loadErr != nil {
		prev = nil
	}
	res := &domain.Result{
		ID:            id,
		Attempt:       domain.RecoveryAttempt(prev),
		Status:        domain.StatusBlocked,
		Reason:        domain.ReasonRunnerException,
		ChangedFiles:  []string{},
		TestCommands:  []string{},
		TestOK:        false,
		Summary:       fmt.Sprintf("Task %s blocked by runner exception.", id),
		NeedsDecision: []string{},
		Errors:        []string{err.Error()},
		UpdatedAt:     uc.clock.Now().UTC().Truncate(time.Second),
	}
	if saveErr := uc.results.SaveResult(res); saveErr != nil {
		uc.logger.Error("failed to save recovery result", "task", id, "error", saveErr)
	}
	return res, false
}

// runGuarded executes the pipeline with a panic boundary.
func (uc *RunBatch) runGuarded(ctx context.Context, path string) (out *ProcessTaskOutput, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return uc.process.Execute(ctx, ProcessTaskInput{Path: path})
}
