package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/apidesc/apierrors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "apidesc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, []string{"XXX_unrecognized"}, cfg.ExcludeFields)
	assert.Equal(t, "└", cfg.Prefix)
	assert.Equal(t, "api_generator", cfg.DefaultCategory)
	assert.Equal(t, "api_docs", cfg.OutputDir)
	assert.True(t, cfg.Overwrite)
	assert.False(t, cfg.AutoCategory)
	require.NoError(t, cfg.Validate())
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
excludeFields: [XXX_unrecognized, XXX_sizecache]
prefix: "-"
autoCategory: true
outputDir: out
overwrite: false
catalog:
  url: https://yapi.example.com
  token: secret
  projectId: 11
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"XXX_unrecognized", "XXX_sizecache"}, cfg.ExcludeFields)
	assert.Equal(t, "-", cfg.Prefix)
	assert.Equal(t, "api_generator", cfg.DefaultCategory)
	assert.True(t, cfg.AutoCategory)
	assert.Equal(t, "out", cfg.OutputDir)
	assert.False(t, cfg.Overwrite)
	assert.Equal(t, Catalog{URL: "https://yapi.example.com", Token: "secret", ProjectID: 11}, cfg.Catalog)
	require.NoError(t, cfg.RequireCatalog())
}

func TestLoad_EmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		option  string
	}{
		{name: "unknown key", content: "prefx: x\n", option: "config"},
		{name: "bad yaml", content: "prefix: [\n", option: "config"},
		{name: "bad url", content: "catalog:\n  url: not a url\n", option: "catalog.url"},
		{name: "empty category", content: "defaultCategory: \"\"\n", option: "defaultCategory"},
		{name: "negative project", content: "catalog:\n  projectId: -1\n", option: "catalog.projectId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.ErrorIs(t, err, apierrors.ErrConfig)
			var cfgErr *apierrors.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.option, cfgErr.Option)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apierrors.ErrConfig)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("APIDESC_EXCLUDE_FIELDS", "a, b,,c")
	t.Setenv("APIDESC_PREFIX", ">")
	t.Setenv("APIDESC_AUTO_CATEGORY", "true")
	t.Setenv("APIDESC_OVERWRITE", "false")
	t.Setenv("APIDESC_SUMMARY_FILE_NAMES", "1")
	t.Setenv("APIDESC_CATALOG_URL", "http://localhost:3000")
	t.Setenv("APIDESC_CATALOG_TOKEN", "tok")
	t.Setenv("APIDESC_CATALOG_PROJECT_ID", "42")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.ExcludeFields)
	assert.Equal(t, ">", cfg.Prefix)
	assert.True(t, cfg.AutoCategory)
	assert.False(t, cfg.Overwrite)
	assert.True(t, cfg.SummaryFileNames)
	assert.Equal(t, Catalog{URL: "http://localhost:3000", Token: "tok", ProjectID: 42}, cfg.Catalog)
}

func TestApplyEnv_InvalidKeepsValue(t *testing.T) {
	t.Setenv("APIDESC_OVERWRITE", "maybe")
	t.Setenv("APIDESC_CATALOG_PROJECT_ID", "eleven")

	cfg := Default()
	cfg.Catalog.ProjectID = 7
	cfg.ApplyEnv()
	assert.True(t, cfg.Overwrite)
	assert.Equal(t, 7, cfg.Catalog.ProjectID)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("APIDESC_OUTPUT_DIR", "from-env")
	cfg, err := Load(writeConfig(t, "outputDir: from-file\n"))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.OutputDir)
}

func TestRequireCatalog(t *testing.T) {
	tests := []struct {
		name    string
		catalog Catalog
		option  string
	}{
		{name: "missing url", catalog: Catalog{Token: "t"}, option: "catalog.url"},
		{name: "missing token", catalog: Catalog{URL: "http://x"}, option: "catalog.token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Catalog = tt.catalog
			err := cfg.RequireCatalog()
			var cfgErr *apierrors.ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.option, cfgErr.Option)
		})
	}
}
