package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootRegistersCommands(t *testing.T) {
	root := newRootCmd()

	names := make(map[string]bool)
	for _, cmd := range root.Commands() {
		names[cmd.Name()] = true
	}

	assert.True(t, names["generate"])
	assert.True(t, names["preview"])
	assert.True(t, names["export"])
}

func TestPreviewAddrFlag(t *testing.T) {
	root := newRootCmd()

	preview, _, err := root.Find([]string{"preview"})
	require.NoError(t, err)
	assert.NotNil(t, preview.Flags().Lookup("addr"))
}

func TestExportCommandFlags(t *testing.T) {
	root := newRootCmd()

	export, _, err := root.Find([]string{"export"})
	require.NoError(t, err)

	out := export.Flags().Lookup("out")
	require.NotNil(t, out)
	assert.Equal(t, "release.xlsx", out.DefValue)

	// Export takes exactly the release ID
	assert.Error(t, export.Args(export, nil))
	assert.NoError(t, export.Args(export, []string{"some-id"}))
}
