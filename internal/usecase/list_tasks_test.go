package usecase

import (
	"testing"

	"github.com/runoshun/git-batch/internal/domain"
	"github.com/runoshun/git-batch/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTasks_Execute(t *testing.T) {
	tasks := testutil.NewMockTaskStore()
	results := testutil.NewMockResultStore()
	tasks.Add("/repo/.agent/inbox/a.yaml", &domain.Task{Title: "A", PromptText: "x", RepoRoot: "/repo"})
	tasks.Add("/repo/.agent/inbox/b.yaml", &domain.Task{Title: "B", PromptText: "x", RepoRoot: "/repo"})
	results.Results["b"] = &domain.Result{ID: "b", Attempt: 2, Status: domain.StatusBlocked}

	out, err := NewListTasks(tasks, results).Execute()

	require.NoError(t, err)
	require.Len(t, out.Tasks, 2)

	assert.Equal(t, "a", out.Tasks[0].ID)
	assert.Equal(t, "pending", out.Tasks[0].Status)
	assert.Equal(t, 0, out.Tasks[0].Attempt)
	assert.Equal(t, "agent/a", out.Tasks[0].Branch)

	assert.Equal(t, "b", out.Tasks[1].ID)
	assert.Equal(t, "blocked", out.Tasks[1].Status)
	assert.Equal(t, 2, out.Tasks[1].Attempt)
}

func TestListTasks_Execute_EmptyInbox(t *testing.T) {
	out, err := NewListTasks(testutil.NewMockTaskStore(), testutil.NewMockResultStore()).Execute()

	require.NoError(t, err)
	assert.Empty(t, out.Tasks)
}

func TestShowResult_Execute(t *testing.T) {
	results := testutil.NewMockResultStore()
	stored := &domain.Result{ID: "a", Attempt: 1, Status: domain.StatusDone}
	results.Results["a"] = stored

	uc := NewShowResult(results)

	res, err := uc.Execute("a")
	require.NoError(t, err)
	assert.Same(t, stored, res)

	_, err = uc.Execute("missing")
	assert.ErrorIs(t, err, domain.ErrResultNotFound)
}
