// Package inbox provides the file-based task inbox and result outbox.
//
// Layout under one batch root:
//
//	inbox/   pending task descriptors (*.json, *.yaml, *.yml)
//	outbox/  result records (<id>.result.json)
//	logs/    per-task transcripts
package inbox

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/runoshun/git-batch/internal/domain"
)

// Store implements domain.TaskStore and domain.ResultStore over a directory
// tree. The root is injected so tests can run against temporary directories.
type Store struct {
	root string
}

// New creates a new Store for the given batch root.
func New(root string) *Store {
	return &Store{root: root}
}

// Ensure Store implements its ports.
var (
	_ domain.TaskStore        = (*Store)(nil)
	_ domain.ResultStore      = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)

// Root returns the batch root directory.
func (s *Store) Root() string {
	return s.root
}

// Initialize creates the inbox/outbox/logs layout if it doesn't exist.
func (s *Store) Initialize() error {
	for _, dir := range []string{
		domain.InboxDir(s.root),
		domain.OutboxDir(s.root),
		domain.LogsDir(s.root),
	} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// IsInitialized checks if the inbox directory exists.
func (s *Store) IsInitialized() bool {
	info, err := os.Stat(domain.InboxDir(s.root))
	return err == nil && info.IsDir()
}

// ListPending returns descriptor paths in lexicographic order. Result
// records and non-descriptor files are excluded.
func (s *Store) ListPending() ([]string, error) {
	inboxDir := domain.InboxDir(s.root)
	entries, err := os.ReadDir(inboxDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrNotInitialized
		}
		return nil, fmt.Errorf("read inbox: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if domain.IsResultFile(name) || !isDescriptorName(name) {
			continue
		}
		paths = append(paths, filepath.Join(inboxDir, name))
	}
	sort.Strings(paths)
	return paths, nil
}

// Load reads and normalizes the descriptor at path. JSON and YAML
// descriptors are supported, keyed on the file extension.
func (s *Store) Load(path string) (*domain.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrTaskNotFound, path)
		}
		return nil, fmt.Errorf("read task descriptor: %w", err)
	}

	var task domain.Task
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &task); err != nil {
			return nil, fmt.Errorf("parse task descriptor %s: %w", filepath.Base(path), err)
		}
	default:
		if err := json.Unmarshal(data, &task); err != nil {
			return nil, fmt.Errorf("parse task descriptor %s: %w", filepath.Base(path), err)
		}
	}

	task.Path = path
	if err := task.Normalize(); err != nil {
		return nil, err
	}
	return &task, nil
}

// Save writes a new YAML descriptor into the inbox and returns its path.
// An existing descriptor for the same id is never overwritten.
func (s *Store) Save(task *domain.Task) (string, error) {
	if err := s.Initialize(); err != nil {
		return "", err
	}

	path := filepath.Join(domain.InboxDir(s.root), task.ID+".yaml")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%w: %s", domain.ErrTaskExists, task.ID)
	}

	data, err := yaml.Marshal(task)
	if err != nil {
		return "", fmt.Errorf("encode task descriptor: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write task descriptor: %w", err)
	}
	return path, nil
}

// LoadResult retrieves the stored result for a task id. A missing or
// unreadable record is treated as absent, so a corrupt result never wedges
// a task permanently.
func (s *Store) LoadResult(id string) (*domain.Result, error) {
	data, err := os.ReadFile(domain.ResultPath(s.root, id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read result: %w", err)
	}

	var res domain.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, nil
	}
	return &res, nil
}

// SaveResult overwrites the result record for its task id unconditionally,
// with stable two-space indentation and a trailing newline.
func (s *Store) SaveResult(res *domain.Result) error {
	if err := os.MkdirAll(domain.OutboxDir(s.root), 0o750); err != nil {
		return fmt.Errorf("create outbox: %w", err)
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(domain.ResultPath(s.root, res.ID), data, 0o644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

// isDescriptorName reports whether a file name looks like a task descriptor.
func isDescriptorName(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
