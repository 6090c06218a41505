package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/apidesc/schema"
)

// SchemaFlags contains flags for the schema command
type SchemaFlags struct {
	SourceFlags
	Format string
}

// SetupSchemaFlags creates and configures a FlagSet for the schema command.
// Returns the FlagSet and a SchemaFlags struct with bound flag variables.
func SetupSchemaFlags() (*flag.FlagSet, *SchemaFlags) {
	fs := flag.NewFlagSet("schema", flag.ContinueOnError)
	flags := &SchemaFlags{}

	flags.register(fs)
	fs.StringVar(&flags.Format, "format", FormatJSON, "output format: json or yaml")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: apidesc schema [flags] <type>\n\n")
		Writef(fs.Output(), "Render the schema of a Go type: type, description, example, properties, items and required fields.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  apidesc schema Order\n")
		Writef(fs.Output(), "  apidesc schema -dir ./service -pkg ./api/... -format yaml CreateOrderRequest\n")
	}

	return fs, flags
}

// HandleSchema executes the schema command
func HandleSchema(args []string) error {
	fs, flags := SetupSchemaFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("schema command requires exactly one type name")
	}
	if flags.Format != FormatJSON && flags.Format != FormatYAML {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s", flags.Format, FormatJSON, FormatYAML)
	}

	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}
	ws, err := flags.open(context.Background(), cfg)
	if err != nil {
		return err
	}
	n, err := ws.Schema(fs.Arg(0))
	if err != nil {
		return err
	}

	var out string
	if flags.Format == FormatYAML {
		out, err = schema.YAML(n)
	} else {
		out, err = schema.JSON(n)
	}
	if err != nil {
		return fmt.Errorf("rendering schema: %w", err)
	}
	Writef(stdout, "%s\n", out)
	return nil
}
