package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/aaronbarnaby/create-release-action/internal/models"
	"github.com/google/go-github/v57/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// GitHubService fetches commit ranges and pull-request associations from the
// GitHub API and publishes releases
type GitHubService struct {
	client *github.Client
	log    *logrus.Logger
}

// NewGitHubService creates a GitHub service. An empty token produces an
// unauthenticated client, which is enough for public repositories.
func NewGitHubService(token string, log *logrus.Logger) *GitHubService {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	return &GitHubService{
		client: github.NewClient(httpClient),
		log:    log,
	}
}

// CommitsBetween fetches the full commit range between two refs using the
// compare API, following pagination. Commits come back oldest first.
func (s *GitHubService) CommitsBetween(ctx context.Context, owner, repo, base, head string) ([]*models.CommitMeta, error) {
	var metas []*models.CommitMeta

	opts := &github.ListOptions{PerPage: 100}
	for {
		comparison, resp, err := s.client.Repositories.CompareCommits(ctx, owner, repo, base, head, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to compare %s...%s: %w", base, head, err)
		}

		for _, commit := range comparison.Commits {
			metas = append(metas, commitMetaFromGitHub(commit))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	s.log.WithFields(logrus.Fields{
		"owner": owner,
		"repo":  repo,
		"base":  base,
		"head":  head,
		"count": len(metas),
	}).Debug("Fetched commit range")

	return metas, nil
}

// PullRequestsForCommit lists the pull requests associated with a commit, in
// API order. Numbers are not deduplicated.
func (s *GitHubService) PullRequestsForCommit(ctx context.Context, owner, repo, sha string) ([]models.PullRequestRef, error) {
	prs, _, err := s.client.PullRequests.ListPullRequestsWithCommit(ctx, owner, repo, sha, &github.ListOptions{PerPage: 100})
	if err != nil {
		return nil, fmt.Errorf("failed to list pull requests for %s: %w", sha, err)
	}

	refs := make([]models.PullRequestRef, 0, len(prs))
	for _, pr := range prs {
		refs = append(refs, models.PullRequestRef{
			Number: pr.GetNumber(),
			URL:    pr.GetHTMLURL(),
		})
	}
	return refs, nil
}

// CreateRelease publishes a release with the rendered changelog as its body
func (s *GitHubService) CreateRelease(ctx context.Context, owner, repo, tag, body string) error {
	release := &github.RepositoryRelease{
		TagName: github.String(tag),
		Name:    github.String(tag),
		Body:    github.String(body),
	}

	if _, _, err := s.client.Repositories.CreateRelease(ctx, owner, repo, release); err != nil {
		return fmt.Errorf("failed to create release %s: %w", tag, err)
	}

	s.log.WithField("tag", tag).Info("Release published")
	return nil
}

// commitMetaFromGitHub flattens a GitHub API commit into commit metadata.
// The display name comes from the git author since the API user object
// rarely carries one.
func commitMetaFromGitHub(commit *github.RepositoryCommit) *models.CommitMeta {
	meta := &models.CommitMeta{
		SHA:     commit.GetSHA(),
		HTMLURL: commit.GetHTMLURL(),
		Message: commit.GetCommit().GetMessage(),
	}

	if commit.Author != nil {
		meta.Author = &models.CommitUser{
			Login:     commit.Author.GetLogin(),
			Name:      commit.GetCommit().GetAuthor().GetName(),
			HTMLURL:   commit.Author.GetHTMLURL(),
			AvatarURL: commit.Author.GetAvatarURL(),
		}
	}

	if commit.Committer != nil {
		meta.Committer = &models.CommitUser{
			Login:     commit.Committer.GetLogin(),
			Name:      commit.GetCommit().GetCommitter().GetName(),
			HTMLURL:   commit.Committer.GetHTMLURL(),
			AvatarURL: commit.Committer.GetAvatarURL(),
		}
	}

	return meta
}
