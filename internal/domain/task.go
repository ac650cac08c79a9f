// Package domain contains core business entities and interfaces.
package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Task is a descriptor for one unit of agent work, loaded from the inbox.
// All fields except PromptText are optional in the descriptor file;
// Normalize fills in the derived defaults. A task is immutable for the run.
type Task struct {
	ID         string `json:"id,omitempty" yaml:"id,omitempty"`                   // Identity; defaults to the descriptor file name stem
	Title      string `json:"title,omitempty" yaml:"title,omitempty"`             // Human-readable title, used in the commit message
	Branch     string `json:"branch,omitempty" yaml:"branch,omitempty"`           // Target branch; defaults to agent/<id>
	PromptText string `json:"prompt_text" yaml:"prompt_text"`                     // Instructions handed to the agent
	RepoRoot   string `json:"repo_root,omitempty" yaml:"repo_root,omitempty"`     // Repository root; defaults to "."
	Workdir    string `json:"workdir,omitempty" yaml:"workdir,omitempty"`         // Agent working directory, relative to RepoRoot
	Path       string `json:"-" yaml:"-"`                                         // Descriptor file path (set by the store, not serialized)
}

// Normalize fills the derived defaults: identity from the descriptor file
// name, title "untitled", branch agent/<id>, and absolute repo root and
// working directory.
func (t *Task) Normalize() error {
	t.ID = strings.TrimSpace(t.ID)
	if t.ID == "" {
		t.ID = TaskIDFromPath(t.Path)
	}

	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		t.Title = "untitled"
	}

	t.Branch = strings.TrimSpace(t.Branch)
	if t.Branch == "" {
		t.Branch = "agent/" + t.ID
	}

	root := strings.TrimSpace(t.RepoRoot)
	if root == "" {
		root = "."
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve repo root: %w", err)
	}
	t.RepoRoot = absRoot

	workdir := strings.TrimSpace(t.Workdir)
	if workdir == "" {
		workdir = "."
	}
	if !filepath.IsAbs(workdir) {
		workdir = filepath.Join(absRoot, workdir)
	}
	t.Workdir = filepath.Clean(workdir)

	return nil
}

// CommitMessage returns the commit message recorded when the task's
// working-tree changes are committed.
func (t *Task) CommitMessage() string {
	return fmt.Sprintf("agent(%s): %s", t.ID, t.Title)
}

// TaskIDFromPath derives a task identity from a descriptor file path
// (the file name without its extension).
func TaskIDFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
