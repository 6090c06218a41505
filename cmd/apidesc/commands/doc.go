package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/erraggy/apidesc/apierrors"
	"github.com/erraggy/apidesc/config"
	"github.com/erraggy/apidesc/docgen"
	"github.com/erraggy/apidesc/internal/cliutil"
	"github.com/erraggy/apidesc/internal/workspace"
	"github.com/erraggy/apidesc/route"
	"github.com/erraggy/apidesc/typeinfo"
)

// DocFlags contains flags for the doc command
type DocFlags struct {
	SourceFlags
	Output    string
	Overwrite bool
	NoClobber bool
	Summary   bool
	Quiet     bool
}

// SetupDocFlags creates and configures a FlagSet for the doc command.
// Returns the FlagSet and a DocFlags struct with bound flag variables.
func SetupDocFlags() (*flag.FlagSet, *DocFlags) {
	fs := flag.NewFlagSet("doc", flag.ContinueOnError)
	flags := &DocFlags{}

	flags.register(fs)
	fs.StringVar(&flags.Output, "o", "", "output directory (default: configured outputDir)")
	fs.StringVar(&flags.Output, "output", "", "output directory (default: configured outputDir)")
	fs.BoolVar(&flags.Overwrite, "overwrite", false, "replace existing documents even when the configuration forbids it")
	fs.BoolVar(&flags.NoClobber, "no-clobber", false, "fail instead of replacing existing documents")
	fs.BoolVar(&flags.Summary, "summary", false, "name endpoint documents after the first word of their title")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: do not list written files")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: do not list written files")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: apidesc doc [flags] <type|controller|controller.method>\n\n")
		Writef(fs.Output(), "Write Markdown documents. A controller writes one document per mapped method;\n")
		Writef(fs.Output(), "any other struct type writes a single document with its example and field table.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  apidesc doc OrderController\n")
		Writef(fs.Output(), "  apidesc doc -o docs/api OrderController.Get\n")
		Writef(fs.Output(), "  apidesc doc -no-clobber Order\n")
	}

	return fs, flags
}

// HandleDoc executes the doc command
func HandleDoc(args []string) error {
	fs, flags := SetupDocFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("doc command requires exactly one type, controller or controller.method")
	}
	if flags.Overwrite && flags.NoClobber {
		return fmt.Errorf("-overwrite and -no-clobber are mutually exclusive")
	}

	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}
	applyDocFlags(cfg, flags)

	logger := flags.logger()
	ws, err := flags.open(context.Background(), cfg)
	if err != nil {
		return err
	}
	opts := docgen.Options{
		Prefix:           cfg.Prefix,
		Module:           loadModule(flags.Dir, logger),
		SummaryFileNames: cfg.SummaryFileNames,
	}

	written, err := writeDocs(ws, fs.Arg(0), opts)
	if err != nil {
		return err
	}
	if !flags.Quiet {
		for _, path := range written {
			Writef(os.Stderr, "wrote %s\n", path)
		}
	}
	return nil
}

func applyDocFlags(cfg *config.Config, flags *DocFlags) {
	if flags.Output != "" {
		cfg.OutputDir = flags.Output
	}
	if flags.Overwrite {
		cfg.Overwrite = true
	}
	if flags.NoClobber {
		cfg.Overwrite = false
	}
	if flags.Summary {
		cfg.SummaryFileNames = true
	}
}

// loadModule reads go.mod in dir. Documents are written without a dependency
// section when it is missing.
func loadModule(dir string, logger typeinfo.Logger) *docgen.Module {
	m, err := docgen.Dependency(filepath.Join(dir, "go.mod"))
	if err != nil {
		logger.Debug("no module information", "error", err)
		return nil
	}
	return m
}

// writeDocs renders and writes the documents of target and returns the
// written paths.
func writeDocs(ws *workspace.Workspace, target string, opts docgen.Options) ([]string, error) {
	cfg := ws.Config()
	typeName, method := splitTarget(target)

	if method != "" {
		d, err := ws.Endpoint(typeName, method)
		if err != nil {
			return nil, err
		}
		content, err := docgen.Method(d, opts)
		if err != nil {
			return nil, err
		}
		path, err := cliutil.WriteFile(cfg.OutputDir, docgen.FileName(d, opts.SummaryFileNames), content, cfg.Overwrite)
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	}

	t, err := ws.Source().Type(typeName)
	if err != nil {
		return nil, err
	}
	if !route.IsController(t.Annotations()) {
		nodes, err := ws.Fields(typeName)
		if err != nil {
			return nil, err
		}
		content, err := docgen.Type(typeName, nodes, opts)
		if err != nil {
			return nil, err
		}
		path, err := cliutil.WriteFile(cfg.OutputDir, docgen.TypeFileName(typeName), content, cfg.Overwrite)
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	}

	ds, err := ws.Endpoints(typeName)
	if err != nil {
		return nil, err
	}
	if len(ds) == 0 {
		return nil, &apierrors.NotApplicableError{Target: typeName, Reason: "controller has no mapped methods"}
	}
	written := make([]string, 0, len(ds))
	for _, d := range ds {
		content, err := docgen.Method(d, opts)
		if err != nil {
			return written, err
		}
		path, err := cliutil.WriteFile(cfg.OutputDir, docgen.FileName(d, opts.SummaryFileNames), content, cfg.Overwrite)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
