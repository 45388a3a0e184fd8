package services

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commitFile(t *testing.T, worktree *git.Worktree, dir, name, message string) plumbing.Hash {
	t.Helper()

	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(message), 0644))
	_, err := worktree.Add(name)
	require.NoError(t, err)

	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Ada",
			Email: "ada@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)
	return hash
}

func TestLocalCommitsBetween(t *testing.T) {
	dir := t.TempDir()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	worktree, err := repo.Worktree()
	require.NoError(t, err)

	base := commitFile(t, worktree, dir, "a.txt", "chore: initial commit")
	commitFile(t, worktree, dir, "b.txt", "feat(api): add widgets")
	head := commitFile(t, worktree, dir, "c.txt", "fix: close leaked handles")

	service := NewLocalGitService(dir, "https://github.com/acme/widget", testLogger())

	metas, err := service.CommitsBetween(base.String(), head.String())
	require.NoError(t, err)
	require.Len(t, metas, 2)

	// Oldest first, base excluded
	assert.Equal(t, "feat(api): add widgets", metas[0].Message)
	assert.Equal(t, "fix: close leaked handles", metas[1].Message)

	assert.Equal(t, "Ada", metas[0].Author.Name)
	assert.Equal(t, "https://github.com/acme/widget/commit/"+metas[0].SHA, metas[0].HTMLURL)
}

func TestLocalCommitsBetweenUnknownRevision(t *testing.T) {
	dir := t.TempDir()

	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	service := NewLocalGitService(dir, "", testLogger())

	_, err = service.CommitsBetween("v1.0.0", "v2.0.0")
	assert.Error(t, err)
}
