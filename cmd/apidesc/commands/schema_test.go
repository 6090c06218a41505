package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/apidesc/apierrors"
)

func TestSetupSchemaFlags(t *testing.T) {
	fs, flags := SetupSchemaFlags()

	t.Run("default values", func(t *testing.T) {
		assert.Equal(t, FormatJSON, flags.Format)
		assert.Equal(t, ".", flags.Dir)
		assert.Equal(t, DefaultPatterns, flags.Patterns)
		assert.Empty(t, flags.Config)
		assert.False(t, flags.Verbose)
	})

	t.Run("parse flags", func(t *testing.T) {
		args := []string{"-dir", "svc", "-pkg", "./api", "-format", "yaml", "-v", "Order"}
		require.NoError(t, fs.Parse(args))

		assert.Equal(t, "svc", flags.Dir)
		assert.Equal(t, "./api", flags.Patterns)
		assert.Equal(t, FormatYAML, flags.Format)
		assert.True(t, flags.Verbose)
		assert.Equal(t, "Order", fs.Arg(0))
	})
}

func TestHandleSchema_NoArgs(t *testing.T) {
	err := HandleSchema([]string{})
	assert.Error(t, err)
}

func TestHandleSchema_Help(t *testing.T) {
	err := HandleSchema([]string{"--help"})
	assert.NoError(t, err)
}

func TestHandleSchema_InvalidFormat(t *testing.T) {
	err := HandleSchema([]string{"-format", "text", "Order"})
	assert.Error(t, err)
}

func TestHandleSchema(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		buf := captureStdout(t)
		require.NoError(t, HandleSchema(shopArgs("Item")))

		var s map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &s))
		assert.Equal(t, "object", s["type"])
		assert.Equal(t, "Item is one order line.", s["description"])
	})

	t.Run("yaml", func(t *testing.T) {
		buf := captureStdout(t)
		require.NoError(t, HandleSchema(shopArgs("-format", "yaml", "Item")))
		assert.Contains(t, buf.String(), "type: object")
	})

	t.Run("unknown type", func(t *testing.T) {
		err := HandleSchema(shopArgs("Missing"))
		assert.ErrorIs(t, err, apierrors.ErrConfig)
	})
}
