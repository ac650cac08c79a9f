// Package translog provides the per-task transcript files written during
// each processing attempt. A transcript is truncated when the attempt
// starts and append-only afterwards; it is never read back.
package translog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/runoshun/git-batch/internal/domain"
)

// Opener opens transcripts in the logs directory by file name.
type Opener struct {
	dir   string
	clock domain.Clock
}

// NewOpener creates a transcript opener rooted at dir.
func NewOpener(dir string, clock domain.Clock) *Opener {
	return &Opener{dir: dir, clock: clock}
}

// Ensure Opener implements domain.TranscriptOpener.
var _ domain.TranscriptOpener = (*Opener)(nil)

// Open returns a transcript for the given file name.
func (o *Opener) Open(name string) domain.Transcript {
	return &Transcript{path: filepath.Join(o.dir, name), clock: o.clock}
}

// Transcript is one append-only log file. Entries are timestamped in UTC
// at second precision. Append failures are swallowed: a diagnostic log must
// never fail the pipeline it documents.
type Transcript struct {
	path  string
	clock domain.Clock
}

// Ensure Transcript implements domain.Transcript.
var _ domain.Transcript = (*Transcript)(nil)

// Reset truncates the transcript for a new attempt, creating the logs
// directory if needed.
func (t *Transcript) Reset() error {
	if err := os.MkdirAll(filepath.Dir(t.path), 0o750); err != nil {
		return fmt.Errorf("create logs directory: %w", err)
	}
	if err := os.WriteFile(t.path, nil, 0o640); err != nil {
		return fmt.Errorf("truncate transcript: %w", err)
	}
	return nil
}

// SetContent replaces the transcript content wholesale.
func (t *Transcript) SetContent(content string) error {
	if err := os.MkdirAll(filepath.Dir(t.path), 0o750); err != nil {
		return fmt.Errorf("create logs directory: %w", err)
	}
	if err := os.WriteFile(t.path, []byte(content), 0o640); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}

// Logf appends a timestamped line.
func (t *Transcript) Logf(format string, args ...any) {
	t.append(fmt.Sprintf("[%s] %s\n", t.stamp(), fmt.Sprintf(format, args...)))
}

// Command appends a command record: command line, working directory,
// captured output and exit code.
func (t *Transcript) Command(shown, dir string, res domain.ExecResult) {
	var b strings.Builder
	fmt.Fprintf(&b, "\n[%s]$ %s\n[cwd] %s\n", t.stamp(), shown, dir)
	if res.Stdout != "" {
		fmt.Fprintf(&b, "[stdout]\n%s\n", res.Stdout)
	}
	if res.Stderr != "" {
		fmt.Fprintf(&b, "[stderr]\n%s\n", res.Stderr)
	}
	fmt.Fprintf(&b, "[exit] %d\n", res.ExitCode)
	t.append(b.String())
}

func (t *Transcript) stamp() string {
	return t.clock.Now().UTC().Format(time.RFC3339)
}

func (t *Transcript) append(text string) {
	// G302: transcripts are append-only and readable by repository users
	f, err := os.OpenFile(t.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec
	if err != nil {
		return
	}
	defer f.Close()
	_, _ = f.WriteString(text)
}
