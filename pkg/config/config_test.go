package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	require.NoError(t, Load())

	assert.Equal(t, "8080", AppConfig.Server.Port)
	assert.Equal(t, "./releases.db", AppConfig.Database.Path)
	assert.Equal(t, "list", AppConfig.Release.ContributorsStyle)
	assert.Equal(t, "info", AppConfig.LogLevel)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("GITHUB_REPOSITORY", "acme/widget")
	t.Setenv("RELEASE_TAG", "v2.0.0")
	t.Setenv("PREVIOUS_TAG", "v1.9.0")
	t.Setenv("CONTRIBUTORS_STYLE", "table")
	t.Setenv("READ_TIMEOUT", "30")

	require.NoError(t, Load())

	assert.Equal(t, "acme/widget", AppConfig.GitHub.Repository)
	assert.Equal(t, "v2.0.0", AppConfig.Release.Tag)
	assert.Equal(t, "v1.9.0", AppConfig.Release.PreviousTag)
	assert.Equal(t, "table", AppConfig.Release.ContributorsStyle)
	assert.Equal(t, 30, AppConfig.Server.ReadTimeout)
}

func TestGetEnvAsIntFallsBack(t *testing.T) {
	t.Setenv("READ_TIMEOUT", "not-a-number")

	assert.Equal(t, 15, getEnvAsInt("READ_TIMEOUT", 15))
}
