package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/aaronbarnaby/create-release-action/internal/models"
	"github.com/aaronbarnaby/create-release-action/internal/parser"
	"github.com/aaronbarnaby/create-release-action/internal/repositories"
	"github.com/sirupsen/logrus"
)

// GenerateOptions controls a single changelog generation run
type GenerateOptions struct {
	Repository  string // "owner/name"
	PreviousTag string
	Tag         string
	Local       bool   // read commits from RepoPath instead of the API
	RepoPath    string // local mode only
	Publish     bool   // create a GitHub release with the rendered body
}

// GenerateResult is a generated release plus the classification it was
// rendered from
type GenerateResult struct {
	Release        *models.Release
	Classification *Classification
}

// ReleaseService runs the changelog pipeline: fetch raw commits, parse them
// into records, classify, render, persist and optionally publish
type ReleaseService struct {
	githubService *GitHubService
	parser        *parser.Parser
	classifier    *ClassifierService
	changelog     *ChangelogService
	releaseRepo   *repositories.ReleaseRepository
	log           *logrus.Logger
}

// NewReleaseService creates a new ReleaseService
func NewReleaseService(
	githubService *GitHubService,
	commitParser *parser.Parser,
	classifier *ClassifierService,
	changelog *ChangelogService,
	releaseRepo *repositories.ReleaseRepository,
	log *logrus.Logger,
) *ReleaseService {
	return &ReleaseService{
		githubService: githubService,
		parser:        commitParser,
		classifier:    classifier,
		changelog:     changelog,
		releaseRepo:   releaseRepo,
		log:           log,
	}
}

// Generate produces the changelog for the commit range between PreviousTag
// and Tag and stores it in the release history
func (s *ReleaseService) Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	records, err := s.collectRecords(ctx, opts)
	if err != nil {
		return nil, err
	}

	classification := s.classifier.Classify(records)
	body := s.changelog.Render(classification)

	release := models.NewRelease(
		opts.Repository,
		opts.Tag,
		opts.PreviousTag,
		body,
		classification.CommitCount(),
		len(classification.Contributors),
	)
	release.Records = records

	if s.releaseRepo != nil {
		if err := s.releaseRepo.Create(release); err != nil {
			return nil, fmt.Errorf("failed to store release: %w", err)
		}
	}

	if opts.Publish {
		owner, name, err := splitRepository(opts.Repository)
		if err != nil {
			return nil, err
		}
		if err := s.githubService.CreateRelease(ctx, owner, name, opts.Tag, body); err != nil {
			return nil, err
		}
	}

	s.log.WithFields(logrus.Fields{
		"repository": opts.Repository,
		"tag":        opts.Tag,
		"commits":    release.CommitCount,
	}).Info("Changelog generated")

	return &GenerateResult{Release: release, Classification: classification}, nil
}

// collectRecords fetches the raw commit range and parses every commit into a
// record, attaching pull-request associations in API order
func (s *ReleaseService) collectRecords(ctx context.Context, opts GenerateOptions) ([]*models.CommitRecord, error) {
	if opts.Local {
		local := NewLocalGitService(opts.RepoPath, repositoryWebURL(opts.Repository), s.log)
		metas, err := local.CommitsBetween(opts.PreviousTag, opts.Tag)
		if err != nil {
			return nil, err
		}

		records := make([]*models.CommitRecord, 0, len(metas))
		for _, meta := range metas {
			records = append(records, s.parser.Parse(meta, nil))
		}
		return records, nil
	}

	owner, name, err := splitRepository(opts.Repository)
	if err != nil {
		return nil, err
	}

	metas, err := s.githubService.CommitsBetween(ctx, owner, name, opts.PreviousTag, opts.Tag)
	if err != nil {
		return nil, err
	}

	records := make([]*models.CommitRecord, 0, len(metas))
	for _, meta := range metas {
		pullRequests, err := s.githubService.PullRequestsForCommit(ctx, owner, name, meta.SHA)
		if err != nil {
			return nil, err
		}
		records = append(records, s.parser.Parse(meta, pullRequests))
	}
	return records, nil
}

func splitRepository(repository string) (owner, name string, err error) {
	parts := strings.SplitN(repository, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q, expected owner/name", repository)
	}
	return parts[0], parts[1], nil
}

func repositoryWebURL(repository string) string {
	if repository == "" {
		return ""
	}
	return "https://github.com/" + repository
}
