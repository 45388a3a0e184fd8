package models

import (
	"time"

	"github.com/google/uuid"
)

// Release is a generated changelog stored in the release history. Records
// keeps the classified commit records so a stored release can be exported
// again later.
type Release struct {
	ID               string          `json:"id"`
	Repository       string          `json:"repository"`
	TagName          string          `json:"tag_name"`
	PreviousTag      string          `json:"previous_tag"`
	Body             string          `json:"body"`
	CommitCount      int             `json:"commit_count"`
	ContributorCount int             `json:"contributor_count"`
	Records          []*CommitRecord `json:"records,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// NewRelease creates a new Release with a generated UUID
func NewRelease(repository, tagName, previousTag, body string, commitCount, contributorCount int) *Release {
	return &Release{
		ID:               uuid.New().String(),
		Repository:       repository,
		TagName:          tagName,
		PreviousTag:      previousTag,
		Body:             body,
		CommitCount:      commitCount,
		ContributorCount: contributorCount,
		CreatedAt:        time.Now(),
	}
}
