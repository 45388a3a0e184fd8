package models

// CommitType is a conventional commit type, e.g. "feat" or "fix"
type CommitType string

const (
	TypeFeat     CommitType = "feat"
	TypeFix      CommitType = "fix"
	TypeDocs     CommitType = "docs"
	TypeStyle    CommitType = "style"
	TypeRefactor CommitType = "refactor"
	TypePerf     CommitType = "perf"
	TypeTest     CommitType = "test"
	TypeBuild    CommitType = "build"
	TypeCI       CommitType = "ci"
	TypeChore    CommitType = "chore"
	TypeRevert   CommitType = "revert"
)

// TaxonomySection pairs a commit type with its changelog section title
type TaxonomySection struct {
	Key   CommitType
	Label string
}

// Taxonomy lists every recognized commit type in the order its section
// appears in the rendered changelog. This slice is the only source of
// section ordering, so it stays an explicit list.
var Taxonomy = []TaxonomySection{
	{Key: TypeFeat, Label: "✨ Features"},
	{Key: TypeFix, Label: "🐛 Bug Fixes"},
	{Key: TypeDocs, Label: "📚 Documentation"},
	{Key: TypeStyle, Label: "💅 Styles"},
	{Key: TypeRefactor, Label: "♻️ Code Refactoring"},
	{Key: TypePerf, Label: "⚡ Performance Improvements"},
	{Key: TypeTest, Label: "✅ Tests"},
	{Key: TypeBuild, Label: "📦 Build System"},
	{Key: TypeCI, Label: "👷 Continuous Integration"},
	{Key: TypeChore, Label: "🔧 Chores"},
	{Key: TypeRevert, Label: "⏪ Reverts"},
}

// Fixed section titles used alongside the taxonomy sections
const (
	BreakingSectionTitle      = "⚠️ BREAKING CHANGES"
	UncategorizedSectionTitle = "Commits"
	ContributorsSectionTitle  = "Contributors"
)

// Valid reports whether t is a recognized commit type. Anything else is
// treated as uncategorized.
func (t CommitType) Valid() bool {
	for _, section := range Taxonomy {
		if section.Key == t {
			return true
		}
	}
	return false
}
