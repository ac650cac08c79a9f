package executor

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/runoshun/git-batch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Execute_CapturesStdout(t *testing.T) {
	client := NewClient()

	res, err := client.Execute(context.Background(), domain.ExecCommand{
		Program: "sh",
		Args:    []string{"-c", "echo hello"},
	})

	require.NoError(t, err)
	assert.Equal(t, "hello\n", res.Stdout)
	assert.Empty(t, res.Stderr)
	assert.True(t, res.OK())
}

func TestClient_Execute_SeparatesStderr(t *testing.T) {
	client := NewClient()

	res, err := client.Execute(context.Background(), domain.ExecCommand{
		Program: "sh",
		Args:    []string{"-c", "echo out; echo err >&2"},
	})

	require.NoError(t, err)
	assert.Equal(t, "out\n", res.Stdout)
	assert.Equal(t, "err\n", res.Stderr)
}

func TestClient_Execute_NonZeroExitIsNotAnError(t *testing.T) {
	client := NewClient()

	res, err := client.Execute(context.Background(), domain.ShellCommand("exit 3", ""))

	require.NoError(t, err)
	assert.Equal(t, 3, res.ExitCode)
	assert.False(t, res.OK())
}

func TestClient_Execute_RunsInDir(t *testing.T) {
	client := NewClient()
	dir := t.TempDir()

	res, err := client.Execute(context.Background(), domain.ShellCommand("pwd", dir))

	require.NoError(t, err)
	// Resolve symlinks: t.TempDir may sit under a symlinked path.
	resolved, symErr := filepath.EvalSymlinks(dir)
	require.NoError(t, symErr)
	assert.Equal(t, resolved, strings.TrimSpace(res.Stdout))
}

func TestClient_Execute_PassesEnv(t *testing.T) {
	client := NewClient()

	res, err := client.Execute(context.Background(), domain.ExecCommand{
		Program: "sh",
		Args:    []string{"-c", "printf %s \"$BATCH_TEST_VAR\""},
		Env:     map[string]string{"BATCH_TEST_VAR": "on"},
	})

	require.NoError(t, err)
	assert.Equal(t, "on", res.Stdout)
}

func TestClient_Execute_UnrunnableProgram(t *testing.T) {
	client := NewClient()

	_, err := client.Execute(context.Background(), domain.ExecCommand{
		Program: "definitely-not-a-real-binary-9c1f",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "definitely-not-a-real-binary-9c1f")
}

func TestClient_Execute_CancelledContext(t *testing.T) {
	client := NewClient()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := client.Execute(ctx, domain.ShellCommand("sleep 10", ""))

	// A cancelled context surfaces either as a start failure or as a killed
	// process with a non-zero exit.
	if err == nil {
		assert.False(t, res.OK())
	}
}
