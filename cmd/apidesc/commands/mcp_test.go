package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupMCPFlags(t *testing.T) {
	fs, flags := SetupMCPFlags()
	require.NoError(t, fs.Parse([]string{"-config", "apidesc.yaml", "-v"}))
	assert.Equal(t, "apidesc.yaml", flags.Config)
	assert.True(t, flags.Verbose)
	assert.Nil(t, fs.Lookup("dir"))
}

func TestHandleMCP_Help(t *testing.T) {
	assert.NoError(t, HandleMCP([]string{"--help"}))
}

func TestHandleMCP_BadConfig(t *testing.T) {
	err := HandleMCP([]string{"-config", "testdata/missing.yaml"})
	assert.Error(t, err)
}
