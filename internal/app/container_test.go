package app

import (
	"os"
	"path/filepath"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/git-batch/internal/domain"
)

func TestNew_DetectsRepoRoot(t *testing.T) {
	dir := t.TempDir()
	_, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	sub := filepath.Join(dir, "services", "api")
	require.NoError(t, os.MkdirAll(sub, 0o750))

	c, err := New(sub)

	require.NoError(t, err)
	assert.Equal(t, mustEvalSymlinks(t, dir), mustEvalSymlinks(t, c.Config.RepoRoot))
	assert.Equal(t, domain.BatchDir(c.Config.RepoRoot), c.Config.BatchDir)
	assert.NotNil(t, c.Tasks)
	assert.NotNil(t, c.Logger)
	assert.NotNil(t, c.RunBatchUseCase())
}

func TestNew_OutsideRepository(t *testing.T) {
	_, err := New(t.TempDir())

	assert.ErrorIs(t, err, domain.ErrNotGitRepository)
}

func mustEvalSymlinks(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	return resolved
}
