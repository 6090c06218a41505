package commands

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/apidesc/internal/mcpserver"
)

// SetupMCPFlags creates and configures a FlagSet for the mcp command.
// Only -config and -v apply; sources are chosen per tool call.
func SetupMCPFlags() (*flag.FlagSet, *SourceFlags) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	flags := &SourceFlags{}

	fs.StringVar(&flags.Config, "config", "", "path to a YAML configuration file")
	fs.BoolVar(&flags.Verbose, "v", false, "enable debug logging on stderr")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: apidesc mcp [flags]\n\n")
		Writef(fs.Output(), "Run an MCP (Model Context Protocol) server over stdio exposing the\n")
		Writef(fs.Output(), "list_endpoints, describe_endpoint, render_schema, render_table and render_doc tools.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nEnvironment:\n")
		Writef(fs.Output(), "  APIDESC_MCP_CACHE_ENABLED, APIDESC_MCP_CACHE_TTL, APIDESC_MCP_CACHE_MAX_SIZE,\n")
		Writef(fs.Output(), "  APIDESC_MCP_CACHE_SWEEP_INTERVAL, APIDESC_MCP_LOAD_TIMEOUT\n")
	}

	return fs, flags
}

// HandleMCP executes the mcp command
func HandleMCP(args []string) error {
	fs, flags := SetupMCPFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx, cfg, flags.logger())
}
