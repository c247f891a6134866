package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/montafon/moonlight/internal/config"
	"github.com/montafon/moonlight/internal/scraper"
	"github.com/montafon/moonlight/internal/tasks"
)

// ScrapeCommand fetches one Korean chapter page and writes chapter-data.json
// for the workflow tool.
type ScrapeCommand struct {
	URL    string
	Output string

	cfg *config.Config
}

func NewScrapeCommand() *ScrapeCommand {
	return &ScrapeCommand{cfg: config.NewConfig()}
}

func (cmd *ScrapeCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("scrape", flag.ExitOnError)

	fs.StringVar(&cmd.Output, "output", "chapter-data.json", "Output path for the extracted chapter data")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s scrape [options] <korean-url>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Extract Korean text and the article image from a source page.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s scrape http://www.mediabuddha.net/m/news/view.php?number=35373\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		return fmt.Errorf("a Korean page URL is required")
	}
	cmd.URL = fs.Arg(0)

	return nil
}

func (cmd *ScrapeCommand) Run() error {
	fmt.Printf("Fetching: %s\n", cmd.URL)

	client := scraper.NewClient(scraper.Config{
		UserAgent:   cmd.cfg.Scraper.UserAgent,
		Timeout:     cmd.cfg.Scraper.Timeout,
		RateLimit:   cmd.cfg.Scraper.RateLimit,
		ContentHost: cmd.cfg.Scraper.ContentHost,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cmd.cfg.Scraper.Timeout*2)
	defer cancel()

	chapter, err := client.Scrape(ctx, cmd.URL)
	if err != nil {
		return err
	}

	fmt.Printf("Extracted %d paragraphs\n", chapter.ParagraphCount)
	if chapter.ImageURL != "" {
		fmt.Printf("Found image: %s\n", chapter.ImageURL)
	}

	if dir := filepath.Dir(cmd.Output); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	if err := tasks.WriteChapterData(chapter, cmd.Output); err != nil {
		return err
	}

	fmt.Printf("Saved to %s\n", cmd.Output)
	return nil
}
