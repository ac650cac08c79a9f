package usecase

import (
	"errors"

	"github.com/runoshun/git-batch/internal/domain"
)

// InitWorkspaceOutput reports what init created.
type InitWorkspaceOutput struct {
	ConfigPath    string // Empty when the config file already existed
	ConfigExisted bool
}

// InitWorkspace is the use case for creating the batch storage layout
// (inbox/outbox/logs) and a starter config file.
type InitWorkspace struct {
	store  domain.StoreInitializer
	config domain.ConfigInitializer
}

// NewInitWorkspace creates a new InitWorkspace use case.
func NewInitWorkspace(store domain.StoreInitializer, config domain.ConfigInitializer) *InitWorkspace {
	return &InitWorkspace{store: store, config: config}
}

// Execute initializes the workspace. Re-running against an existing
// workspace is harmless.
func (uc *InitWorkspace) Execute() (*InitWorkspaceOutput, error) {
	if err := uc.store.Initialize(); err != nil {
		return nil, err
	}

	out := &InitWorkspaceOutput{}
	path, err := uc.config.Init()
	if err != nil {
		if errors.Is(err, domain.ErrConfigExists) {
			out.ConfigExisted = true
			return out, nil
		}
		return nil, err
	}
	out.ConfigPath = path
	return out, nil
}
