package testutil

import (
	"testing"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitFileAndTag(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	repo := InitRepo(t, dir)

	CommitFile(t, repo, dir, "openapi.yaml", "openapi: 3.0.3\n", "v1")
	TagHead(t, repo, "v1.0.0")
	CommitFile(t, repo, dir, "openapi.yaml", "openapi: 3.1.0\n", "v2")

	tagged, err := repo.ResolveRevision(plumbing.Revision("v1.0.0"))
	require.NoError(t, err)
	head, err := repo.ResolveRevision(plumbing.Revision("HEAD"))
	require.NoError(t, err)
	assert.NotEqual(t, *tagged, *head)

	commit, err := repo.CommitObject(*tagged)
	require.NoError(t, err)
	file, err := commit.File("openapi.yaml")
	require.NoError(t, err)
	contents, err := file.Contents()
	require.NoError(t, err)
	assert.Equal(t, "openapi: 3.0.3\n", contents)
}

func TestIsolatedEnv(t *testing.T) {
	t.Setenv("OASNOTES_OUTPUT", "leak.md")

	env := isolatedEnv("/tmp/home")
	assert.Contains(t, env, "HOME=/tmp/home")
	assert.Contains(t, env, "NO_COLOR=1")
	for _, kv := range env {
		assert.NotContains(t, kv, "OASNOTES_")
	}
}
