package git

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
)

var ErrDetachedHead = errors.New("HEAD is not pointing to a branch")

type RepositoryInfoService interface {
	CurrentBranch() (string, error)
	CurrentCommit() (*object.Commit, error)
	CurrentTag() (*plumbing.Reference, error)
	TagsPointingAt(hash plumbing.Hash) ([]*plumbing.Reference, error)
}

type repositoryInfoServiceImpl struct {
	path string
	open func() (*git.Repository, error)
}

// NewRepositoryInfoService opens the repository containing path on first use, so commands that
// never resolve a git placeholder work outside of a repository.
func NewRepositoryInfoService(path string) RepositoryInfoService {
	s := &repositoryInfoServiceImpl{path: path}
	s.open = sync.OnceValues(func() (*git.Repository, error) {
		repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
		if err != nil {
			return nil, fmt.Errorf("opening repository at %s: %w", path, err)
		}
		return repo, nil
	})
	return s
}

func (s *repositoryInfoServiceImpl) CurrentBranch() (string, error) {
	repo, err := s.open()
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", ErrDetachedHead
	}

	return head.Name().Short(), nil
}

func (s *repositoryInfoServiceImpl) CurrentCommit() (*object.Commit, error) {
	repo, err := s.open()
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("getting HEAD reference: %w", err)
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("getting commit object: %w", err)
	}

	return commit, nil
}

// TagsPointingAt returns lightweight and annotated tags whose target is the commit hash.
func (s *repositoryInfoServiceImpl) TagsPointingAt(hash plumbing.Hash) ([]*plumbing.Reference, error) {
	repo, err := s.open()
	if err != nil {
		return nil, err
	}

	iter, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer iter.Close()

	var tags []*plumbing.Reference
	err = iter.ForEach(func(reference *plumbing.Reference) error {
		if reference.Hash() == hash {
			tags = append(tags, reference)
			return nil
		}

		annotated, err := repo.TagObject(reference.Hash())
		if err != nil {
			return nil
		}
		if annotated.Target == hash {
			tags = append(tags, reference)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating over tags: %w", err)
	}

	return tags, nil
}

// CurrentTag returns nil without an error when no tag points at HEAD.
func (s *repositoryInfoServiceImpl) CurrentTag() (*plumbing.Reference, error) {
	commit, err := s.CurrentCommit()
	if err != nil {
		return nil, err
	}

	tags, err := s.TagsPointingAt(commit.Hash)
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, nil
	}

	return tags[0], nil
}
