package models

// CommitUser identifies the account behind a commit
type CommitUser struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	HTMLURL   string `json:"html_url"`
	AvatarURL string `json:"avatar_url"`
}

// DisplayName returns the user's name, falling back to the login
func (u *CommitUser) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Login
}

// CommitMeta is the raw commit metadata as fetched from GitHub or a local
// repository, before any conventional-commit parsing
type CommitMeta struct {
	SHA       string      `json:"sha"`
	HTMLURL   string      `json:"html_url"`
	Message   string      `json:"message"`
	Author    *CommitUser `json:"author"`
	Committer *CommitUser `json:"committer"`
}

// ShortSHA returns the first 7 characters of the commit hash
func (m *CommitMeta) ShortSHA() string {
	if len(m.SHA) < 7 {
		return m.SHA
	}
	return m.SHA[:7]
}

// Identity resolves the commit's contributor identity, preferring the
// author and falling back to the committer. Returns nil when neither is set.
func (m *CommitMeta) Identity() *CommitUser {
	if m.Author != nil {
		return m.Author
	}
	return m.Committer
}

// PullRequestRef points at a pull request associated with a commit
type PullRequestRef struct {
	Number int    `json:"number"`
	URL    string `json:"url"`
}

// MergeRef is the result of matching a merge-commit header, mapping the
// captured groups to the merged pull request and its source branch
type MergeRef struct {
	IssueID string `json:"issue_id"`
	Source  string `json:"source"`
}

// CommitRecord is a single commit after conventional-commit parsing. Type is
// empty when the header did not match a recognized conventional type; such
// records land in the uncategorized bucket.
type CommitRecord struct {
	Type         CommitType       `json:"type,omitempty"`
	Scope        string           `json:"scope,omitempty"`
	Subject      string           `json:"subject,omitempty"`
	Header       string           `json:"header"`
	Body         string           `json:"body,omitempty"`
	Footer       string           `json:"footer,omitempty"`
	Breaking     bool             `json:"breaking_change"`
	Merge        *MergeRef        `json:"merge,omitempty"`
	PullRequests []PullRequestRef `json:"pull_requests,omitempty"`
	Commit       *CommitMeta      `json:"commit"`
}

// Categorized reports whether the record carries a recognized commit type
func (r *CommitRecord) Categorized() bool {
	return r.Type.Valid()
}
