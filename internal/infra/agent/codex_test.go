package agent

import (
	"context"
	"testing"

	"github.com/runoshun/git-batch/internal/domain"
	"github.com/runoshun/git-batch/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodexCLI_Invoke_DefaultCommandLine(t *testing.T) {
	exec := testutil.NewMockExecutor()
	cli := NewCodexCLI(exec, domain.AgentConfig{})

	_, err := cli.Invoke(context.Background(), "fix the bug", "/repo/services")

	require.NoError(t, err)
	require.Len(t, exec.Commands, 1)
	cmd := exec.Commands[0]
	assert.Equal(t, "codex", cmd.Program)
	assert.Equal(t, []string{"exec", "--json", "fix the bug"}, cmd.Args)
	assert.Equal(t, "/repo/services", cmd.Dir)
}

func TestCodexCLI_Invoke_ConfiguredCommand(t *testing.T) {
	exec := testutil.NewMockExecutor()
	cli := NewCodexCLI(exec, domain.AgentConfig{
		Command: "claude",
		Args:    []string{"-p", "--output-format", "stream-json"},
	})

	_, err := cli.Invoke(context.Background(), "prompt", "/repo")

	require.NoError(t, err)
	require.Len(t, exec.Commands, 1)
	assert.Equal(t, "claude", exec.Commands[0].Program)
	assert.Equal(t, []string{"-p", "--output-format", "stream-json", "prompt"}, exec.Commands[0].Args)
}

func TestCodexCLI_Invoke_DoesNotMutateConfiguredArgs(t *testing.T) {
	exec := testutil.NewMockExecutor()
	cli := NewCodexCLI(exec, domain.AgentConfig{Args: []string{"exec"}})

	_, err := cli.Invoke(context.Background(), "first", "/repo")
	require.NoError(t, err)
	_, err = cli.Invoke(context.Background(), "second", "/repo")
	require.NoError(t, err)

	require.Len(t, exec.Commands, 2)
	assert.Equal(t, []string{"exec", "first"}, exec.Commands[0].Args)
	assert.Equal(t, []string{"exec", "second"}, exec.Commands[1].Args)
}

func TestCodexCLI_CommandLine(t *testing.T) {
	cli := NewCodexCLI(testutil.NewMockExecutor(), domain.AgentConfig{})

	assert.Equal(t, "codex exec --json fix the bug", cli.CommandLine("fix the bug"))
}
