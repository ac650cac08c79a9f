package domain

import "strings"

// ExecCommand represents an external command to be executed.
// This type is used to pass command information between layers
// without exposing implementation details.
type ExecCommand struct {
	Program string
	Dir     string
	Args    []string
	Env     map[string]string
}

// Shown returns the command line as displayed in transcripts.
func (c ExecCommand) Shown() string {
	return strings.Join(append([]string{c.Program}, c.Args...), " ")
}

// ShellCommand wraps a shell-interpreted command line for execution in dir.
func ShellCommand(line, dir string) ExecCommand {
	return ExecCommand{Program: "sh", Args: []string{"-c", line}, Dir: dir}
}

// ExecResult carries the captured output and exit code of one command.
type ExecResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// OK returns true if the command exited with code 0.
func (r ExecResult) OK() bool {
	return r.ExitCode == 0
}
