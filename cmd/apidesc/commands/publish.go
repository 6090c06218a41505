package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/erraggy/apidesc/catalog"
	"github.com/erraggy/apidesc/config"
)

// PublishFlags contains flags for the publish command
type PublishFlags struct {
	SourceFlags
	URL       string
	Token     string
	ProjectID int
	Category  string
	Auto      bool
	Status    string
	DryRun    bool
	Timeout   time.Duration
}

// SetupPublishFlags creates and configures a FlagSet for the publish command.
// Returns the FlagSet and a PublishFlags struct with bound flag variables.
func SetupPublishFlags() (*flag.FlagSet, *PublishFlags) {
	fs := flag.NewFlagSet("publish", flag.ContinueOnError)
	flags := &PublishFlags{}

	flags.register(fs)
	fs.StringVar(&flags.URL, "url", "", "catalog base URL (default: configured catalog.url)")
	fs.StringVar(&flags.Token, "token", "", "catalog project token (default: configured catalog.token)")
	fs.IntVar(&flags.ProjectID, "project", 0, "catalog project ID (default: looked up from the token)")
	fs.StringVar(&flags.Category, "category", "", "category for endpoints (default: configured defaultCategory)")
	fs.BoolVar(&flags.Auto, "auto-category", false, "file endpoints under the first word of their controller's doc comment")
	fs.StringVar(&flags.Status, "status", catalog.StatusUndone, "status of saved interfaces: done or undone")
	fs.BoolVar(&flags.DryRun, "dry-run", false, "print the interface entries as JSON instead of saving them")
	fs.DurationVar(&flags.Timeout, "timeout", catalog.DefaultTimeout, "timeout for each catalog request")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: apidesc publish [flags] [controller[.method]]\n\n")
		Writef(fs.Output(), "Save endpoint descriptions to a YApi-compatible API catalog. Without an argument\n")
		Writef(fs.Output(), "every controller in the loaded packages is published.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nEnvironment:\n")
		Writef(fs.Output(), "  APIDESC_CATALOG_URL, APIDESC_CATALOG_TOKEN, APIDESC_CATALOG_PROJECT_ID\n")
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  apidesc publish -url https://yapi.example.com -token $TOKEN OrderController\n")
		Writef(fs.Output(), "  apidesc publish -dry-run OrderController.Get\n")
	}

	return fs, flags
}

// HandlePublish executes the publish command
func HandlePublish(args []string) error {
	fs, flags := SetupPublishFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() > 1 {
		fs.Usage()
		return fmt.Errorf("publish command accepts at most one controller or controller.method")
	}
	if flags.Status != catalog.StatusDone && flags.Status != catalog.StatusUndone {
		return fmt.Errorf("invalid status '%s'. Valid statuses: %s, %s", flags.Status, catalog.StatusDone, catalog.StatusUndone)
	}

	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}
	if err := applyPublishFlags(cfg, flags); err != nil {
		return err
	}

	ctx := context.Background()
	ws, err := flags.open(ctx, cfg)
	if err != nil {
		return err
	}
	ds, err := selectEndpoints(ws, fs.Arg(0))
	if err != nil {
		return err
	}

	if flags.DryRun {
		entries := make([]*catalog.Interface, 0, len(ds))
		for _, d := range ds {
			iface, err := catalog.FromDescriptor(d, catalog.MapOptions{Status: flags.Status})
			if err != nil {
				return err
			}
			entries = append(entries, iface)
		}
		return OutputStructured(entries, FormatJSON)
	}

	if err := cfg.RequireCatalog(); err != nil {
		return err
	}
	logger := flags.logger()
	client := catalog.NewClient(cfg.Catalog.URL, cfg.Catalog.Token, catalog.WithLogger(logger))
	publisher := catalog.NewPublisher(client, catalog.PublisherOptions{
		ProjectID:       cfg.Catalog.ProjectID,
		DefaultCategory: cfg.DefaultCategory,
		AutoCategory:    cfg.AutoCategory,
		Status:          flags.Status,
		Logger:          logger,
	})

	for _, d := range ds {
		reqCtx, cancel := context.WithTimeout(ctx, flags.Timeout)
		err := publisher.Publish(reqCtx, d)
		cancel()
		if err != nil {
			return fmt.Errorf("publishing %s.%s: %w", d.Controller, d.Method, err)
		}
		Writef(os.Stderr, "published %s %s\n", d.Meta.Verb, d.Path())
	}
	return nil
}

func applyPublishFlags(cfg *config.Config, flags *PublishFlags) error {
	if flags.URL != "" {
		cfg.Catalog.URL = flags.URL
	}
	if flags.Token != "" {
		cfg.Catalog.Token = flags.Token
	}
	if flags.ProjectID != 0 {
		cfg.Catalog.ProjectID = flags.ProjectID
	}
	if flags.Category != "" {
		cfg.DefaultCategory = flags.Category
	}
	if flags.Auto {
		cfg.AutoCategory = true
	}
	return cfg.Validate()
}
