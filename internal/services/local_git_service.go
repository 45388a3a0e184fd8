package services

import (
	"fmt"

	"github.com/aaronbarnaby/create-release-action/internal/models"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/sirupsen/logrus"
)

// LocalGitService reads commit ranges from a local repository so a changelog
// can be generated without network access. There are no platform logins or
// pull-request associations locally, so identities are built from git author
// names and commit URLs from the repository web URL when one is configured.
type LocalGitService struct {
	repoPath string
	webURL   string
	log      *logrus.Logger
}

// NewLocalGitService creates a local git service for the repository at
// repoPath. webURL is optional and used to build commit links.
func NewLocalGitService(repoPath, webURL string, log *logrus.Logger) *LocalGitService {
	return &LocalGitService{
		repoPath: repoPath,
		webURL:   webURL,
		log:      log,
	}
}

// CommitsBetween walks history from head back to base (exclusive) and
// returns the commits oldest first, matching the order of the compare API.
func (s *LocalGitService) CommitsBetween(base, head string) ([]*models.CommitMeta, error) {
	repo, err := git.PlainOpen(s.repoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository %s: %w", s.repoPath, err)
	}

	baseHash, err := repo.ResolveRevision(plumbing.Revision(base))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", base, err)
	}

	headHash, err := repo.ResolveRevision(plumbing.Revision(head))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", head, err)
	}

	iter, err := repo.Log(&git.LogOptions{From: *headHash})
	if err != nil {
		return nil, fmt.Errorf("failed to read log from %s: %w", head, err)
	}

	var metas []*models.CommitMeta
	err = iter.ForEach(func(commit *object.Commit) error {
		if commit.Hash == *baseHash {
			return storer.ErrStop
		}
		metas = append(metas, s.commitMeta(commit))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s..%s: %w", base, head, err)
	}

	// Log walks newest first; flip to match the compare API
	for i, j := 0, len(metas)-1; i < j; i, j = i+1, j-1 {
		metas[i], metas[j] = metas[j], metas[i]
	}

	s.log.WithFields(logrus.Fields{
		"base":  base,
		"head":  head,
		"count": len(metas),
	}).Debug("Read local commit range")

	return metas, nil
}

func (s *LocalGitService) commitMeta(commit *object.Commit) *models.CommitMeta {
	meta := &models.CommitMeta{
		SHA:     commit.Hash.String(),
		Message: commit.Message,
		Author: &models.CommitUser{
			Login: commit.Author.Name,
			Name:  commit.Author.Name,
		},
		Committer: &models.CommitUser{
			Login: commit.Committer.Name,
			Name:  commit.Committer.Name,
		},
	}

	if s.webURL != "" {
		meta.HTMLURL = fmt.Sprintf("%s/commit/%s", s.webURL, meta.SHA)
	}

	return meta
}
