// Package config loads apidesc settings.
//
// Settings come from three layers, later layers winning: built-in defaults,
// an optional YAML file, and APIDESC_* environment variables. The result is
// validated and then passed explicitly to the packages that need it; there is
// no process-wide configuration.
//
//	excludeFields: [XXX_unrecognized, XXX_sizecache]
//	prefix: "└"
//	defaultCategory: api_generator
//	autoCategory: true
//	outputDir: docs/api
//	overwrite: false
//	catalog:
//	  url: https://yapi.example.com
//	  token: ${TOKEN}
//	  projectId: 11
package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apidesc/apierrors"
)

// Defaults.
const (
	DefaultPrefix    = "└"
	DefaultCategory  = "api_generator"
	DefaultOutputDir = "api_docs"
)

// DefaultExcludeFields lists serialization-only fields of generated code.
var DefaultExcludeFields = []string{"XXX_unrecognized"}

// Config holds all apidesc settings.
type Config struct {
	// ExcludeFields are Go or JSON field names left out of descriptor trees.
	ExcludeFields []string `yaml:"excludeFields"`
	// Prefix is the nesting marker of Markdown tables.
	Prefix string `yaml:"prefix" validate:"required"`
	// DefaultCategory is the catalog category used without auto-categorization.
	DefaultCategory string `yaml:"defaultCategory" validate:"required"`
	// AutoCategory files endpoints under the first word of the controller doc.
	AutoCategory bool `yaml:"autoCategory"`
	// OutputDir is where documents are written.
	OutputDir string `yaml:"outputDir" validate:"required"`
	// Overwrite allows replacing existing documents.
	Overwrite bool `yaml:"overwrite"`
	// SummaryFileNames names documents after the first word of the
	// description instead of the method name.
	SummaryFileNames bool `yaml:"summaryFileNames"`
	// Catalog holds the remote API catalog connection.
	Catalog Catalog `yaml:"catalog"`
}

// Catalog is the connection to a YApi-compatible API catalog.
type Catalog struct {
	URL       string `yaml:"url" validate:"omitempty,http_url"`
	Token     string `yaml:"token"`
	ProjectID int    `yaml:"projectId" validate:"gte=0"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		ExcludeFields:   append([]string(nil), DefaultExcludeFields...),
		Prefix:          DefaultPrefix,
		DefaultCategory: DefaultCategory,
		OutputDir:       DefaultOutputDir,
		Overwrite:       true,
	}
}

// Load reads the YAML file at path (skipped when path is empty), applies
// environment overrides and validates the result. Unknown keys in the file
// are errors.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // G304: path is provided by the user
		if err != nil {
			return nil, &apierrors.ConfigError{Option: "config", Value: path, Message: "cannot read file", Cause: err}
		}
		if err := decode(data, cfg); err != nil {
			return nil, &apierrors.ConfigError{Option: "config", Value: path, Message: "invalid YAML", Cause: err}
		}
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overrides settings from APIDESC_* environment variables. Invalid
// values log a warning and keep the current value.
func (c *Config) ApplyEnv() {
	c.ExcludeFields = envList("APIDESC_EXCLUDE_FIELDS", c.ExcludeFields)
	c.Prefix = envString("APIDESC_PREFIX", c.Prefix)
	c.DefaultCategory = envString("APIDESC_DEFAULT_CATEGORY", c.DefaultCategory)
	c.AutoCategory = envBool("APIDESC_AUTO_CATEGORY", c.AutoCategory)
	c.OutputDir = envString("APIDESC_OUTPUT_DIR", c.OutputDir)
	c.Overwrite = envBool("APIDESC_OVERWRITE", c.Overwrite)
	c.SummaryFileNames = envBool("APIDESC_SUMMARY_FILE_NAMES", c.SummaryFileNames)
	c.Catalog.URL = envString("APIDESC_CATALOG_URL", c.Catalog.URL)
	c.Catalog.Token = envString("APIDESC_CATALOG_TOKEN", c.Catalog.Token)
	c.Catalog.ProjectID = envInt("APIDESC_CATALOG_PROJECT_ID", c.Catalog.ProjectID)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report YAML key names rather than Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the settings. The first failing setting is reported as a
// *apierrors.ConfigError.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var valErrs validator.ValidationErrors
	if errors.As(err, &valErrs) && len(valErrs) > 0 {
		ve := valErrs[0]
		return &apierrors.ConfigError{
			Option:  optionName(ve.Namespace()),
			Value:   ve.Value(),
			Message: formatValidationError(ve),
		}
	}
	return &apierrors.ConfigError{Message: "invalid configuration", Cause: err}
}

// RequireCatalog reports whether the catalog connection is usable.
func (c *Config) RequireCatalog() error {
	switch {
	case c.Catalog.URL == "":
		return &apierrors.ConfigError{Option: "catalog.url", Message: "required for publishing"}
	case c.Catalog.Token == "":
		return &apierrors.ConfigError{Option: "catalog.token", Message: "required for publishing"}
	}
	return nil
}

// optionName turns "Config.catalog.url" into "catalog.url".
func optionName(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}
	return rest
}

func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "http_url":
		return "must be a valid http or https URL"
	case "gte":
		return "must be at least " + ve.Param()
	default:
		return "failed " + ve.Tag() + " validation"
	}
}
