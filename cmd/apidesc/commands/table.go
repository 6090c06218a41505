package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
)

// TableFlags contains flags for the table command
type TableFlags struct {
	SourceFlags
	Prefix string
}

// SetupTableFlags creates and configures a FlagSet for the table command.
// Returns the FlagSet and a TableFlags struct with bound flag variables.
func SetupTableFlags() (*flag.FlagSet, *TableFlags) {
	fs := flag.NewFlagSet("table", flag.ContinueOnError)
	flags := &TableFlags{}

	flags.register(fs)
	fs.StringVar(&flags.Prefix, "prefix", "", "nesting marker for child rows (default: configured prefix)")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: apidesc table [flags] <type>\n\n")
		Writef(fs.Output(), "Render the fields of a Go struct type as a Markdown table.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nColumns:\n")
		Writef(fs.Output(), "  name, type, required (Y/N), range, description\n")
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  apidesc table Order\n")
		Writef(fs.Output(), "  apidesc table -prefix '-' -pkg ./api Order\n")
	}

	return fs, flags
}

// HandleTable executes the table command
func HandleTable(args []string) error {
	fs, flags := SetupTableFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("table command requires exactly one type name")
	}

	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}
	if flags.Prefix != "" {
		cfg.Prefix = flags.Prefix
	}
	ws, err := flags.open(context.Background(), cfg)
	if err != nil {
		return err
	}
	table, err := ws.Table(fs.Arg(0))
	if err != nil {
		return err
	}
	Writef(stdout, "%s", table)
	return nil
}
