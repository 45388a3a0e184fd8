package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/aaronbarnaby/create-release-action/internal/models"
	"github.com/sirupsen/logrus"
)

var (
	// headerPattern matches "type(scope)!: subject" with scope and "!" optional
	headerPattern = regexp.MustCompile(`^(\w+)(?:\(([^()]*)\))?(!)?: (.+)$`)

	// mergePattern matches GitHub's default merge-commit headers; group 1 is
	// the pull request number, group 2 the source branch
	mergePattern = regexp.MustCompile(`^Merge pull request #(.*) from (.*)$`)

	// breakingPattern matches a breaking-change declaration at the start of a
	// body or footer. Case-sensitive on purpose.
	breakingPattern = regexp.MustCompile(`^BREAKING\s+CHANGES?:\s+`)

	paragraphSplit = regexp.MustCompile(`\n\s*\n`)
)

// Parser turns raw commit metadata into structured commit records
type Parser struct {
	log *logrus.Logger
}

// NewParser creates a new Parser
func NewParser(log *logrus.Logger) *Parser {
	return &Parser{log: log}
}

// Parse builds a CommitRecord from raw commit metadata and its associated
// pull requests. It never fails: a message that is not a conventional commit
// produces an uncategorized record.
func (p *Parser) Parse(meta *models.CommitMeta, pullRequests []models.PullRequestRef) *models.CommitRecord {
	header, body, footer := splitMessage(meta.Message)

	record := &models.CommitRecord{
		Header:       header,
		Body:         body,
		Footer:       footer,
		PullRequests: pullRequests,
		Commit:       meta,
	}

	if m := mergePattern.FindStringSubmatch(header); m != nil {
		record.Merge = &models.MergeRef{IssueID: m[1], Source: m[2]}
		if len(record.PullRequests) == 0 {
			if number, err := strconv.Atoi(strings.TrimSpace(m[1])); err == nil {
				record.PullRequests = []models.PullRequestRef{{Number: number}}
			}
		}
	}

	if m := headerPattern.FindStringSubmatch(header); m != nil {
		commitType := models.CommitType(m[1])
		if commitType.Valid() {
			record.Type = commitType
			record.Scope = m[2]
			record.Subject = m[4]
		} else {
			p.log.WithField("type", m[1]).Debug("Unrecognized commit type, leaving uncategorized")
		}
		if m[3] == "!" {
			record.Breaking = true
		}
	}

	if breakingPattern.MatchString(body) || breakingPattern.MatchString(footer) {
		record.Breaking = true
	}

	return record
}

// splitMessage separates a raw commit message into header (first line), body
// and footer. The footer is the final paragraph when the message has more
// than one paragraph after the header.
func splitMessage(message string) (header, body, footer string) {
	message = strings.ReplaceAll(message, "\r\n", "\n")
	lines := strings.SplitN(message, "\n", 2)
	header = strings.TrimSpace(lines[0])
	if len(lines) < 2 {
		return header, "", ""
	}

	rest := strings.TrimSpace(lines[1])
	if rest == "" {
		return header, "", ""
	}

	paragraphs := splitParagraphs(rest)
	if len(paragraphs) == 1 {
		return header, paragraphs[0], ""
	}

	footer = paragraphs[len(paragraphs)-1]
	body = strings.Join(paragraphs[:len(paragraphs)-1], "\n\n")
	return header, body, footer
}

func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, paragraph := range paragraphSplit.Split(text, -1) {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph != "" {
			paragraphs = append(paragraphs, paragraph)
		}
	}
	return paragraphs
}
