// Package cli implements the pipeline's command-line entry points.
package cli

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/montafon/moonlight/internal/config"
	"github.com/montafon/moonlight/internal/importers"
	"github.com/montafon/moonlight/internal/pipeline"
	"github.com/montafon/moonlight/internal/store"
)

// ImportCommand imports the chapter sheet into chapters.json.
type ImportCommand struct {
	FilePath string
	SheetURL string
	Output   string
	DryRun   bool

	cfg *config.Config
}

func NewImportCommand() *ImportCommand {
	return &ImportCommand{cfg: config.NewConfig()}
}

func (cmd *ImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "Path to a local CSV export of the chapter sheet")
	fs.StringVar(&cmd.SheetURL, "url", cmd.cfg.Sheet.CSVURL, "URL of the published sheet CSV")
	fs.StringVar(&cmd.Output, "output", cmd.cfg.Store.Path, "Path to the chapters JSON file")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Parse and report without writing anything")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import [-file <path> | -url <csv-url>] [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import the chapter sheet into the chapters JSON file.\n")
		fmt.Fprintf(os.Stderr, "The previous file is backed up before it is overwritten.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" && cmd.SheetURL == "" {
		return fmt.Errorf("either -file or -url (or SHEET_CSV_URL) is required")
	}

	return nil
}

func (cmd *ImportCommand) Run() error {
	var csv string

	if cmd.FilePath != "" {
		data, err := os.ReadFile(cmd.FilePath)
		if err != nil {
			return fmt.Errorf("read %s: %w", cmd.FilePath, err)
		}
		csv = string(data)
		fmt.Printf("Importing from file: %s\n", cmd.FilePath)
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		fetched, err := pipeline.FetchSheet(ctx, &http.Client{Timeout: 30 * time.Second}, cmd.SheetURL)
		if err != nil {
			return err
		}
		csv = fetched
		fmt.Printf("Importing from sheet: %s\n", cmd.SheetURL)
	}

	importer := importers.NewImporter(TemplatesFromConfig(cmd.cfg))
	chapters, err := importer.Import(csv)
	if err != nil {
		return err
	}

	fmt.Printf("Parsed %d chapters\n", len(chapters))

	if cmd.DryRun {
		for _, ch := range chapters {
			fmt.Printf("  %2d. %s (%s)\n", ch.Number, ch.Title, ch.Slug)
		}
		fmt.Println("Dry run - nothing written")
		return nil
	}

	chapterStore := store.New(cmd.Output, cmd.cfg.Store.BackupSuffix)
	if err := chapterStore.Save(chapters); err != nil {
		return err
	}

	fmt.Printf("Wrote %s (previous version backed up)\n", cmd.Output)
	return nil
}

// TemplatesFromConfig builds the importer's template set from configuration.
func TemplatesFromConfig(cfg *config.Config) importers.Templates {
	return importers.Templates{
		HrefPrefix:      cfg.Site.HrefPrefix,
		CoverTemplate:   cfg.Assets.CoverTemplate,
		HeroTemplate:    cfg.Assets.HeroTemplate,
		ContentTemplate: cfg.Site.ContentTemplate,
		VersionStart:    cfg.Assets.VersionStart,
		VersionEnd:      cfg.Assets.VersionEnd,
		VersionQuery:    cfg.Assets.VersionQuery,
	}
}
