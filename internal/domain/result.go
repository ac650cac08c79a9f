package domain

import "time"

// Status represents the outcome of one processing attempt.
type Status string

const (
	// StatusBlocked is the retryable outcome: the next run increments the
	// attempt counter and processes the task again.
	StatusBlocked Status = "blocked"
	// StatusNeedsReview means the agent's work was committed and awaits a
	// human reviewer. Terminal.
	StatusNeedsReview Status = "needs_review"
	// StatusDone means the task was reviewed and accepted. Never produced by
	// the runner itself, only honored when found in a stored result. Terminal.
	StatusDone Status = "done"
)

// IsTerminal returns true if a task in this status must never be reprocessed.
func (s Status) IsTerminal() bool {
	return s == StatusNeedsReview || s == StatusDone
}

// IsValid returns true if the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusBlocked, StatusNeedsReview, StatusDone:
		return true
	default:
		return false
	}
}

// Blocked reasons recorded in the result record.
const (
	ReasonNoChanges       = "no changes"
	ReasonRunnerException = "runner_exception"
)

// Result is the durable outcome of processing one task. It is fully
// overwritten on every attempt. Errors and TestCommands are append-only
// within an attempt.
type Result struct {
	ID            string    `json:"id"`
	Attempt       int       `json:"attempt"`
	Status        Status    `json:"status"`
	Reason        string    `json:"reason"`
	Branch        string    `json:"branch"`
	Commit        string    `json:"commit"`
	ChangedFiles  []string  `json:"changed_files"`
	TestCommands  []string  `json:"test_commands"`
	TestOK        bool      `json:"test_ok"`
	Summary       string    `json:"summary"`
	NeedsDecision []string  `json:"needs_decision"`
	Errors        []string  `json:"errors"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NextAttempt computes the attempt number for a fresh pipeline run.
// Only a previously blocked task continues its attempt sequence;
// anything else (including a missing or unreadable result) starts at 1.
func NextAttempt(prev *Result) int {
	if prev != nil && prev.Status == StatusBlocked {
		return prev.Attempt + 1
	}
	return 1
}

// RecoveryAttempt computes the attempt number for a result written by the
// orchestrator's exception boundary. Any prior result continues the
// sequence, regardless of its status.
func RecoveryAttempt(prev *Result) int {
	if prev != nil {
		return prev.Attempt + 1
	}
	return 1
}
