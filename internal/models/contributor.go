package models

// Contributor is a deduplicated entry in the release's contributor roster
type Contributor struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	HTMLURL   string `json:"html_url"`
	AvatarURL string `json:"avatar_url"`
}

// NewContributor builds a contributor from a commit identity
func NewContributor(user *CommitUser) *Contributor {
	return &Contributor{
		Login:     user.Login,
		Name:      user.Name,
		HTMLURL:   user.HTMLURL,
		AvatarURL: user.AvatarURL,
	}
}

// DisplayName returns the contributor's name, falling back to the login
func (c *Contributor) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Login
}
