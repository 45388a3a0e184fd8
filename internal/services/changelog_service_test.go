package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/aaronbarnaby/create-release-action/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRenderTypedEntry(t *testing.T) {
	classifier := NewClassifierService(testLogger())
	changelog := NewChangelogService(ContributorStyleList)

	commit := commitWithAuthor("9f86d081884c7d6", "ada", "Ada")
	records := []*models.CommitRecord{
		{
			Type:    models.TypeFeat,
			Scope:   "api",
			Subject: "add health endpoint",
			Header:  "feat(api): add health endpoint",
			Commit:  commit,
		},
	}

	body := changelog.Render(classifier.Classify(records))

	assert.Contains(t, body, "### ✨ Features")
	assert.Contains(t, body, fmt.Sprintf("- **api**: add health endpoint ([Ada](%s))", commit.HTMLURL))
	assert.NotContains(t, body, models.BreakingSectionTitle)
	assert.NotContains(t, body, "### Commits")
}

func TestRenderTypedEntryWithoutScope(t *testing.T) {
	classifier := NewClassifierService(testLogger())
	changelog := NewChangelogService(ContributorStyleList)

	commit := commitWithAuthor("9f86d081884c7d6", "ada", "Ada")
	records := []*models.CommitRecord{
		{Type: models.TypeFix, Subject: "close leaked handles", Commit: commit},
	}

	body := changelog.Render(classifier.Classify(records))

	assert.Contains(t, body, fmt.Sprintf("- close leaked handles ([Ada](%s))", commit.HTMLURL))
}

func TestRenderBreakingUncategorizedEntry(t *testing.T) {
	classifier := NewClassifierService(testLogger())
	changelog := NewChangelogService(ContributorStyleList)

	records := []*models.CommitRecord{
		{
			Header:   "drop legacy flag",
			Breaking: true,
			Commit:   commitWithAuthor("abcdef1234567", "ada", "Ada"),
		},
	}

	body := changelog.Render(classifier.Classify(records))

	// Rendered in the breaking section and again under Commits
	assert.Contains(t, body, "### ⚠️ BREAKING CHANGES")
	assert.Contains(t, body, "### Commits")
	assert.Equal(t, 2, strings.Count(body, "- abcdef1: drop legacy flag (Ada)"))
}

func TestRenderPullRequestReferences(t *testing.T) {
	classifier := NewClassifierService(testLogger())
	changelog := NewChangelogService(ContributorStyleList)

	records := []*models.CommitRecord{
		{
			Header: "merge the things",
			Commit: commitWithAuthor("abcdef1234567", "ada", "Ada"),
			PullRequests: []models.PullRequestRef{
				{Number: 1, URL: "u1"},
				{Number: 2, URL: "u2"},
			},
		},
	}

	body := changelog.Render(classifier.Classify(records))

	// Comma joined, no surrounding space, order preserved
	assert.Contains(t, body, "- abcdef1: merge the things (Ada) [#1](u1),[#2](u2)")
}

func TestRenderPullRequestReferenceWithoutURL(t *testing.T) {
	classifier := NewClassifierService(testLogger())
	changelog := NewChangelogService(ContributorStyleList)

	// A merge header parsed in local mode yields a PR number with no URL
	records := []*models.CommitRecord{
		{
			Header:       "Merge pull request #42 from octocat/fix-timeouts",
			Commit:       commitWithAuthor("abcdef1234567", "ada", "Ada"),
			PullRequests: []models.PullRequestRef{{Number: 42}},
		},
	}

	body := changelog.Render(classifier.Classify(records))

	assert.Contains(t, body, "- abcdef1: Merge pull request #42 from octocat/fix-timeouts (Ada) #42")
	assert.NotContains(t, body, "[#42]()")
}

func TestRenderSectionOrder(t *testing.T) {
	classifier := NewClassifierService(testLogger())
	changelog := NewChangelogService(ContributorStyleList)

	records := []*models.CommitRecord{
		{Header: "tidy things", Commit: commitWithAuthor("1111111aaaaaaa", "ada", "Ada")},
		{Type: models.TypeFix, Subject: "close leaked handles", Commit: commitWithAuthor("2222222bbbbbbb", "grace", "Grace")},
		{Type: models.TypeFeat, Subject: "add widgets", Breaking: true, Commit: commitWithAuthor("3333333ccccccc", "linus", "Linus")},
	}

	body := changelog.Render(classifier.Classify(records))

	headings := []string{
		"### ⚠️ BREAKING CHANGES",
		"### ✨ Features",
		"### 🐛 Bug Fixes",
		"### Commits",
		"### Contributors",
	}

	last := -1
	for _, heading := range headings {
		index := strings.Index(body, heading)
		assert.Greaterf(t, index, last, "expected %q after previous heading", heading)
		last = index
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	classifier := NewClassifierService(testLogger())
	changelog := NewChangelogService(ContributorStyleList)

	var records []*models.CommitRecord
	for i := 0; i < 20; i++ {
		records = append(records, &models.CommitRecord{
			Type:    models.Taxonomy[i%len(models.Taxonomy)].Key,
			Subject: fmt.Sprintf("change %d", i),
			Commit:  commitWithAuthor(fmt.Sprintf("%07daaaaaaa", i), fmt.Sprintf("user%d", i), ""),
		})
	}

	classification := classifier.Classify(records)

	first := changelog.Render(classification)
	second := changelog.Render(classification)
	assert.Equal(t, first, second)
}

func TestRenderEmptyInput(t *testing.T) {
	classifier := NewClassifierService(testLogger())
	changelog := NewChangelogService(ContributorStyleList)

	assert.Equal(t, "", changelog.Render(classifier.Classify(nil)))
}

func TestRenderContributorList(t *testing.T) {
	changelog := NewChangelogService(ContributorStyleList)

	classification := &Classification{
		Uncategorized: []Entry{{Record: &models.CommitRecord{Header: "a", Commit: commitWithAuthor("1111111aaaaaaa", "ada", "Ada")}}},
		Contributors: []*models.Contributor{
			{Login: "ada", Name: "Ada", HTMLURL: "https://github.com/ada", AvatarURL: "https://avatars.example.com/ada"},
		},
	}

	body := changelog.Render(classification)

	assert.Contains(t, body, "### Contributors")
	assert.Contains(t, body, "- [![Ada](https://avatars.example.com/ada)](https://github.com/ada)")
}

func TestRenderContributorTableLayout(t *testing.T) {
	changelog := NewChangelogService(ContributorStyleTable)

	var contributors []*models.Contributor
	for i := 0; i < 12; i++ {
		contributors = append(contributors, &models.Contributor{
			Login:     fmt.Sprintf("user%d", i),
			HTMLURL:   fmt.Sprintf("https://github.com/user%d", i),
			AvatarURL: fmt.Sprintf("https://avatars.example.com/user%d", i),
		})
	}

	body := changelog.renderContributors(contributors)

	// 12 contributors over 5 columns: rows of 5, 5 and 2
	assert.Equal(t, 3, strings.Count(body, "<tr>"))
	assert.Equal(t, 12, strings.Count(body, "<td"))

	rows := strings.Split(body, "<tr>")[1:]
	assert.Equal(t, 5, strings.Count(rows[0], "<td"))
	assert.Equal(t, 5, strings.Count(rows[1], "<td"))
	assert.Equal(t, 2, strings.Count(rows[2], "<td"))

	// Display name falls back to login
	assert.Contains(t, body, "<sub><b>user0</b></sub>")
}

func TestRenderOmitsContributorsWhenEmpty(t *testing.T) {
	changelog := NewChangelogService(ContributorStyleList)

	classification := &Classification{
		Uncategorized: []Entry{{Record: &models.CommitRecord{Header: "a", Commit: &models.CommitMeta{SHA: "1111111aaaaaaa"}}}},
	}

	body := changelog.Render(classification)

	assert.NotContains(t, body, "### Contributors")
}
