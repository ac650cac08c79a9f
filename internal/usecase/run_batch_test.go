package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/runoshun/git-batch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBatchFixture() (*processFixture, *RunBatch) {
	f := newProcessFixture()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return f, NewRunBatch(f.tasks, f.results, f.uc, f.clock, logger)
}

func TestRunBatch_Execute_ProcessesInInboxOrder(t *testing.T) {
	f, batch := newBatchFixture()
	f.addTask("/repo/.agent/inbox/a.yaml", &domain.Task{Title: "A", PromptText: "work a"})
	f.addTask("/repo/.agent/inbox/b.yaml", &domain.Task{Title: "B", PromptText: "work b"})
	f.git.StatusResult = domain.ExecResult{Stdout: " M x.go\n"}
	f.git.HeadResult = domain.ExecResult{Stdout: "abc\n"}

	out, err := batch.Execute(context.Background(), RunBatchInput{})

	require.NoError(t, err)
	require.Len(t, out.Results, 2)
	assert.Equal(t, "a", out.Results[0].ID)
	assert.Equal(t, "b", out.Results[1].ID)
	assert.Equal(t, 0, out.Skipped)
	assert.Equal(t, []string{"work a", "work b"}, f.agent.Prompts)
}

func TestRunBatch_Execute_TaskFilter(t *testing.T) {
	f, batch := newBatchFixture()
	f.addTask("/repo/.agent/inbox/a.yaml", &domain.Task{Title: "A", PromptText: "work a"})
	f.addTask("/repo/.agent/inbox/b.yaml", &domain.Task{Title: "B", PromptText: "work b"})
	f.git.StatusResult = domain.ExecResult{Stdout: " M x.go\n"}
	f.git.HeadResult = domain.ExecResult{Stdout: "abc\n"}

	out, err := batch.Execute(context.Background(), RunBatchInput{TaskID: "b"})

	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "b", out.Results[0].ID)
	assert.Equal(t, []string{"work b"}, f.agent.Prompts)
}

func TestRunBatch_Execute_FailureIsolatedToOneTask(t *testing.T) {
	f, batch := newBatchFixture()
	f.addTask("/repo/.agent/inbox/a.yaml", &domain.Task{Title: "A", PromptText: "work a"})
	// b's descriptor path is enumerated but unreadable.
	f.tasks.Pending = append(f.tasks.Pending, "/repo/.agent/inbox/b.yaml")
	f.addTask("/repo/.agent/inbox/c.yaml", &domain.Task{Title: "C", PromptText: "work c"})
	f.git.StatusResult = domain.ExecResult{Stdout: " M x.go\n"}
	f.git.HeadResult = domain.ExecResult{Stdout: "abc\n"}

	out, err := batch.Execute(context.Background(), RunBatchInput{})

	require.NoError(t, err)
	require.Len(t, out.Results, 3)
	assert.Equal(t, domain.StatusNeedsReview, out.Results[0].Status)
	assert.Equal(t, domain.StatusNeedsReview, out.Results[2].Status)

	rec := out.Results[1]
	assert.Equal(t, "b", rec.ID)
	assert.Equal(t, domain.StatusBlocked, rec.Status)
	assert.Equal(t, domain.ReasonRunnerException, rec.Reason)
	assert.Equal(t, 1, rec.Attempt)
	assert.False(t, rec.TestOK)
	require.Len(t, rec.Errors, 1)
	assert.Contains(t, rec.Errors[0], "task not found")
	assert.Equal(t, "Task b blocked by runner exception.", rec.Summary)

	// The recovery result was persisted alongside the others.
	assert.NotNil(t, f.results.Results["b"])
}

func TestRunBatch_Execute_RecoveryAttemptCountsPriorResult(t *testing.T) {
	f, batch := newBatchFixture()
	f.tasks.Pending = append(f.tasks.Pending, "/repo/.agent/inbox/b.yaml")
	f.results.Results["b"] = &domain.Result{ID: "b", Attempt: 2, Status: domain.StatusBlocked}

	out, err := batch.Execute(context.Background(), RunBatchInput{})

	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	assert.Equal(t, 3, out.Results[0].Attempt)
}

func TestRunBatch_Execute_PanicRecovered(t *testing.T) {
	f, batch := newBatchFixture()
	// A registered path with a nil task forces a nil dereference inside the
	// pipeline.
	f.tasks.Pending = append(f.tasks.Pending, "/repo/.agent/inbox/boom.yaml")
	f.tasks.Tasks["/repo/.agent/inbox/boom.yaml"] = nil

	out, err := batch.Execute(context.Background(), RunBatchInput{})

	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	rec := out.Results[0]
	assert.Equal(t, domain.StatusBlocked, rec.Status)
	assert.Equal(t, domain.ReasonRunnerException, rec.Reason)
	require.Len(t, rec.Errors, 1)
	assert.Contains(t, rec.Errors[0], "panic:")
}

func TestRunBatch_Execute_SkippedTasksCounted(t *testing.T) {
	f, batch := newBatchFixture()
	f.addTask("/repo/.agent/inbox/a.yaml", &domain.Task{Title: "A", PromptText: "work a"})
	f.results.Results["a"] = &domain.Result{ID: "a", Attempt: 1, Status: domain.StatusDone}

	out, err := batch.Execute(context.Background(), RunBatchInput{})

	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	assert.Equal(t, 1, out.Skipped)
	assert.Equal(t, domain.StatusDone, out.Results[0].Status)
	assert.Empty(t, f.results.Saved)
}

func TestRunBatch_Execute_ListFailurePropagates(t *testing.T) {
	f, batch := newBatchFixture()
	f.tasks.ListErr = domain.ErrNotInitialized

	_, err := batch.Execute(context.Background(), RunBatchInput{})

	assert.ErrorIs(t, err, domain.ErrNotInitialized)
}

func TestRunBatch_Execute_EmptyInbox(t *testing.T) {
	_, batch := newBatchFixture()

	out, err := batch.Execute(context.Background(), RunBatchInput{})

	require.NoError(t, err)
	assert.Empty(t, out.Results)
	assert.Equal(t, 0, out.Skipped)
}
