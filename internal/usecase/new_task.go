package usecase

import (
	"strings"

	"github.com/runoshun/git-batch/internal/domain"
)

// NewTaskInput contains the parameters for authoring a task descriptor.
type NewTaskInput struct {
	ID         string // Optional; derived from the title when empty
	Title      string // Required
	Branch     string // Optional; defaults to agent/<id> at processing time
	PromptText string // Required; carries the actual work
	RepoRoot   string // Optional
	Workdir    string // Optional
}

// NewTaskOutput contains the created descriptor and its inbox path.
type NewTaskOutput struct {
	Task *domain.Task
	Path string
}

// NewTask is the use case for placing a new task descriptor in the inbox.
type NewTask struct {
	tasks domain.TaskStore
}

// NewNewTask creates a new NewTask use case.
func NewNewTask(tasks domain.TaskStore) *NewTask {
	return &NewTask{tasks: tasks}
}

// Execute validates the input and writes the descriptor.
func (uc *NewTask) Execute(in NewTaskInput) (*NewTaskOutput, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.ErrEmptyTitle
	}
	if strings.TrimSpace(in.PromptText) == "" {
		return nil, domain.ErrEmptyPrompt
	}

	id := strings.TrimSpace(in.ID)
	if id == "" {
		id = Slugify(title)
	}

	task := &domain.Task{
		ID:         id,
		Title:      title,
		Branch:     strings.TrimSpace(in.Branch),
		PromptText: in.PromptText,
		RepoRoot:   strings.TrimSpace(in.RepoRoot),
		Workdir:    strings.TrimSpace(in.Workdir),
	}

	path, err := uc.tasks.Save(task)
	if err != nil {
		return nil, err
	}
	return &NewTaskOutput{Task: task, Path: path}, nil
}

// Slugify derives a file-name-safe task id from a title: lowercase,
// alphanumeric runs joined by single hyphens.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
