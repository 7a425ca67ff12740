package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/stretchr/testify/require"
)

func initRepository(t *testing.T) (string, *git.Repository, plumbing.Hash) {
	t.Helper()
	r := require.New(t)

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	r.NoError(err)

	r.NoError(os.WriteFile(filepath.Join(dir, "Dockerfile"), []byte("FROM scratch\n"), 0o644))
	worktree, err := repo.Worktree()
	r.NoError(err)
	_, err = worktree.Add("Dockerfile")
	r.NoError(err)

	hash, err := worktree.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	r.NoError(err)

	return dir, repo, hash
}

func TestRepositoryInfoService(t *testing.T) {
	t.Run("must read HEAD of a repository", func(t *testing.T) {
		r := require.New(t)
		dir, repo, hash := initRepository(t)

		head, err := repo.Head()
		r.NoError(err)

		service := NewRepositoryInfoService(dir)

		branch, err := service.CurrentBranch()
		r.NoError(err)
		r.Equal(head.Name().Short(), branch)

		commit, err := service.CurrentCommit()
		r.NoError(err)
		r.Equal(hash, commit.Hash)

		tag, err := service.CurrentTag()
		r.NoError(err)
		r.Nil(tag)
	})

	t.Run("must find tags pointing at HEAD", func(t *testing.T) {
		r := require.New(t)
		dir, repo, hash := initRepository(t)

		_, err := repo.CreateTag("v1.0.0", hash, nil)
		r.NoError(err)

		tag, err := NewRepositoryInfoService(dir).CurrentTag()
		r.NoError(err)
		r.NotNil(tag)
		r.Equal("v1.0.0", tag.Name().Short())
	})

	t.Run("must open lazily", func(t *testing.T) {
		r := require.New(t)
		service := NewRepositoryInfoService(filepath.Join(t.TempDir(), "missing"))

		_, err := service.CurrentCommit()
		r.Error(err)
	})
}
