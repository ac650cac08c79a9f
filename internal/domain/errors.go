package domain

import "errors"

// Domain errors.
var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrTaskExists         = errors.New("task descriptor already exists")
	ErrResultNotFound     = errors.New("result not found")
	ErrEmptyTitle         = errors.New("title cannot be empty")
	ErrEmptyPrompt        = errors.New("prompt text cannot be empty")
	ErrNotInitialized     = errors.New("batch workspace not initialized (run 'git batch init' first)")
	ErrConfigExists       = errors.New("config file already exists")
	ErrNotGitRepository   = errors.New("not a git repository (or any of the parent directories)")
)
