package usecase

import (
	"github.com/runoshun/git-batch/internal/domain"
)

// TaskSummary is one row of the task listing: the descriptor joined with
// its latest stored result, if any.
type TaskSummary struct {
	ID      string
	Title   string
	Branch  string
	Status  string // result status, or "pending" when no result exists
	Attempt int    // 0 when no result exists
}

// ListTasksOutput contains the task listing in inbox order.
type ListTasksOutput struct {
	Tasks []TaskSummary
}

// ListTasks is the use case for listing inbox tasks with their outcomes.
type ListTasks struct {
	tasks   domain.TaskStore
	results domain.ResultStore
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(tasks domain.TaskStore, results domain.ResultStore) *ListTasks {
	return &ListTasks{tasks: tasks, results: results}
}

// Execute builds the listing.
func (uc *ListTasks) Execute() (*ListTasksOutput, error) {
	paths, err := uc.tasks.ListPending()
	if err != nil {
		return nil, err
	}

	out := &ListTasksOutput{}
	for _, path := range paths {
		task, err := uc.tasks.Load(path)
		if err != nil {
			return nil, err
		}

		summary := TaskSummary{
			ID:     task.ID,
			Title:  task.Title,
			Branch: task.Branch,
			Status: "pending",
		}
		res, err := uc.results.LoadResult(task.ID)
		if err != nil {
			return nil, err
		}
		if res != nil {
			summary.Status = string(res.Status)
			summary.Attempt = res.Attempt
		}
		out.Tasks = append(out.Tasks, summary)
	}
	return out, nil
}
