package domain

import (
	"path/filepath"
	"strings"
)

// ConfigFileName is the configuration file name under the batch root.
const ConfigFileName = "config.toml"

// resultSuffix marks result records so they are never picked up as
// pending descriptors.
const resultSuffix = ".result.json"

// BatchDir returns the batch storage root for a repository.
func BatchDir(repoRoot string) string {
	return filepath.Join(repoRoot, ".agent")
}

// InboxDir returns the pending-descriptor directory under the batch root.
func InboxDir(root string) string {
	return filepath.Join(root, "inbox")
}

// OutboxDir returns the result-record directory under the batch root.
func OutboxDir(root string) string {
	return filepath.Join(root, "outbox")
}

// LogsDir returns the transcript directory under the batch root.
func LogsDir(root string) string {
	return filepath.Join(root, "logs")
}

// ResultPath returns the result record path for a task id.
func ResultPath(root, id string) string {
	return filepath.Join(OutboxDir(root), id+resultSuffix)
}

// IsResultFile reports whether a file name is a result record.
func IsResultFile(name string) bool {
	return strings.HasSuffix(name, resultSuffix)
}

// Transcript file names, one set per task, truncated each attempt.

// AgentLogName is the raw agent event stream transcript.
func AgentLogName(id string) string { return id + ".agent.jsonl" }

// AcceptanceLogName is the acceptance command transcript.
func AcceptanceLogName(id string) string { return id + ".tests.log" }

// RunnerLogName is the orchestrator transcript.
func RunnerLogName(id string) string { return id + ".runner.log" }
