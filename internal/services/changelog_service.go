package services

import (
	"fmt"
	"strings"

	"github.com/aaronbarnaby/create-release-action/internal/models"
)

// ContributorStyle selects how the contributors section is rendered
type ContributorStyle string

const (
	// ContributorStyleList renders a markdown list of avatar links
	ContributorStyleList ContributorStyle = "list"
	// ContributorStyleTable renders an HTML grid of avatar cells
	ContributorStyleTable ContributorStyle = "table"
)

// contributorColumns is the fixed column count of the table style
const contributorColumns = 5

// ChangelogService renders a classification into the final markdown document
type ChangelogService struct {
	contributorStyle ContributorStyle
}

// NewChangelogService creates a new ChangelogService
func NewChangelogService(contributorStyle ContributorStyle) *ChangelogService {
	if contributorStyle != ContributorStyleTable {
		contributorStyle = ContributorStyleList
	}
	return &ChangelogService{contributorStyle: contributorStyle}
}

// Render walks the buckets in fixed order and produces the changelog body.
// Empty buckets produce no section at all.
func (s *ChangelogService) Render(classification *Classification) string {
	var sections []string

	if section := renderSection(models.BreakingSectionTitle, classification.Breaking); section != "" {
		sections = append(sections, section)
	}

	for _, taxonomy := range models.Taxonomy {
		if section := renderSection(taxonomy.Label, classification.ByType[taxonomy.Key]); section != "" {
			sections = append(sections, section)
		}
	}

	if section := renderSection(models.UncategorizedSectionTitle, classification.Uncategorized); section != "" {
		sections = append(sections, section)
	}

	if len(classification.Contributors) > 0 {
		body := s.renderContributors(classification.Contributors)
		section := fmt.Sprintf("### %s\n\n%s", models.ContributorsSectionTitle, strings.TrimSpace(body))
		sections = append(sections, section)
	}

	return strings.TrimSpace(strings.Join(sections, "\n\n"))
}

// renderSection renders a heading plus one line per entry, or "" when the
// bucket is empty
func renderSection(title string, entries []Entry) string {
	if len(entries) == 0 {
		return ""
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		lines = append(lines, formatEntry(entry))
	}

	return fmt.Sprintf("### %s\n\n%s", title, strings.TrimSpace(strings.Join(lines, "\n")))
}

// formatEntry produces the changelog line for a single entry. Typed entries
// use scope, subject and a linked author; plain entries use the short hash,
// the header and the author's name.
func formatEntry(entry Entry) string {
	record := entry.Record
	references := formatPullRequests(record.PullRequests)

	if entry.Form == TypedEntry {
		var b strings.Builder
		b.WriteString("- ")
		if record.Scope != "" {
			fmt.Fprintf(&b, "**%s**: ", record.Scope)
		}
		b.WriteString(record.Subject)
		if references != "" {
			b.WriteString(" " + references)
		}
		fmt.Fprintf(&b, " ([%s](%s))", authorName(record.Commit), record.Commit.HTMLURL)
		return b.String()
	}

	line := fmt.Sprintf("- %s: %s (%s)", record.Commit.ShortSHA(), record.Header, authorName(record.Commit))
	if references != "" {
		line += " " + references
	}
	return line
}

// formatPullRequests joins "[#N](url)" references with commas and no spaces.
// References without a URL, such as those recovered from a merge header in
// local mode, render as a plain "#N".
func formatPullRequests(refs []models.PullRequestRef) string {
	if len(refs) == 0 {
		return ""
	}

	parts := make([]string, 0, len(refs))
	for _, ref := range refs {
		if ref.URL == "" {
			parts = append(parts, fmt.Sprintf("#%d", ref.Number))
			continue
		}
		parts = append(parts, fmt.Sprintf("[#%d](%s)", ref.Number, ref.URL))
	}
	return strings.Join(parts, ",")
}

func authorName(meta *models.CommitMeta) string {
	if identity := meta.Identity(); identity != nil {
		return identity.DisplayName()
	}
	return ""
}

func (s *ChangelogService) renderContributors(contributors []*models.Contributor) string {
	if s.contributorStyle == ContributorStyleTable {
		return renderContributorTable(contributors)
	}
	return renderContributorList(contributors)
}

// renderContributorList renders each contributor as a clickable avatar in an
// unordered list
func renderContributorList(contributors []*models.Contributor) string {
	lines := make([]string, 0, len(contributors))
	for _, contributor := range contributors {
		lines = append(lines, fmt.Sprintf("- [![%s](%s)](%s)", contributor.DisplayName(), contributor.AvatarURL, contributor.HTMLURL))
	}
	return strings.Join(lines, "\n")
}

// renderContributorTable lays contributors out row-major in an HTML table
// with a fixed column count. The last row may be partially filled; it never
// contains empty trailing cells.
func renderContributorTable(contributors []*models.Contributor) string {
	var b strings.Builder
	b.WriteString("<table>\n")

	for start := 0; start < len(contributors); start += contributorColumns {
		end := start + contributorColumns
		if end > len(contributors) {
			end = len(contributors)
		}

		b.WriteString("  <tr>\n")
		for _, contributor := range contributors[start:end] {
			fmt.Fprintf(&b,
				"    <td align=\"center\"><a href=\"%s\"><img src=\"%s\" width=\"100\" alt=\"%s\"/><br /><sub><b>%s</b></sub></a></td>\n",
				contributor.HTMLURL, contributor.AvatarURL, contributor.Login, contributor.DisplayName())
		}
		b.WriteString("  </tr>\n")
	}

	b.WriteString("</table>")
	return b.String()
}
