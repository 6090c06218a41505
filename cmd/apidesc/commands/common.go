// Package commands provides CLI command handlers for apidesc.
package commands

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/apidesc/config"
	"github.com/erraggy/apidesc/internal/cliutil"
	"github.com/erraggy/apidesc/internal/workspace"
	"github.com/erraggy/apidesc/typeinfo"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// DefaultPatterns selects every package below the source directory.
const DefaultPatterns = "./..."

// stdout receives command output. Tests replace it.
var stdout io.Writer = os.Stdout

// ValidateOutputFormat validates an output format and returns an error if invalid.
func ValidateOutputFormat(format string) error {
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
	}
	return nil
}

// OutputStructured outputs data in the specified format (json or yaml) to stdout.
// Returns an error if marshaling fails.
func OutputStructured(data any, format string) error {
	var bytes []byte
	var err error

	switch format {
	case FormatJSON:
		bytes, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		bytes, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}

	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	Writef(stdout, "%s\n", strings.TrimRight(string(bytes), "\n"))
	return nil
}

// Writef writes formatted output to the writer.
func Writef(w io.Writer, format string, args ...any) {
	cliutil.Writef(w, format, args...)
}

// SourceFlags are the flags shared by every command that loads Go source.
type SourceFlags struct {
	Dir      string
	Patterns string
	Config   string
	Verbose  bool
}

// register binds the shared flags to fs.
func (s *SourceFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&s.Dir, "dir", ".", "directory of the Go module to load from")
	fs.StringVar(&s.Patterns, "pkg", DefaultPatterns, "comma-separated package patterns to load")
	fs.StringVar(&s.Config, "config", "", "path to a YAML configuration file")
	fs.BoolVar(&s.Verbose, "v", false, "enable debug logging on stderr")
}

// patterns splits the -pkg flag.
func (s *SourceFlags) patterns() []string {
	var out []string
	for _, p := range strings.Split(s.Patterns, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{DefaultPatterns}
	}
	return out
}

// logger returns a text slog logger on stderr, at debug level with -v.
func (s *SourceFlags) logger() typeinfo.Logger {
	level := slog.LevelWarn
	if s.Verbose {
		level = slog.LevelDebug
	}
	return typeinfo.NewSlogAdapter(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// loadConfig loads the configuration named by -config.
func (s *SourceFlags) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(s.Config)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}

// open loads the configured packages.
func (s *SourceFlags) open(ctx context.Context, cfg *config.Config) (*workspace.Workspace, error) {
	ws, err := workspace.Open(ctx, cfg, s.Dir, s.patterns(), s.logger())
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", s.Patterns, err)
	}
	return ws, nil
}

// splitTarget splits "Controller.Method" into its parts. A target without a
// dot has an empty method.
func splitTarget(target string) (typeName, method string) {
	typeName, method, _ = strings.Cut(target, ".")
	return typeName, method
}
