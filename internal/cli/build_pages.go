package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/montafon/moonlight/internal/config"
	"github.com/montafon/moonlight/internal/pages"
	"github.com/montafon/moonlight/internal/store"
)

// BuildPagesCommand regenerates the per-chapter social-preview pages.
type BuildPagesCommand struct {
	ChaptersPath string
	SiteDir      string
	BaseURL      string

	cfg *config.Config
}

func NewBuildPagesCommand() *BuildPagesCommand {
	return &BuildPagesCommand{cfg: config.NewConfig()}
}

func (cmd *BuildPagesCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("build-pages", flag.ExitOnError)

	fs.StringVar(&cmd.ChaptersPath, "chapters", cmd.cfg.Store.Path, "Path to the chapters JSON file")
	fs.StringVar(&cmd.SiteDir, "site", cmd.cfg.Site.Dir, "Site output directory")
	fs.StringVar(&cmd.BaseURL, "base-url", cmd.cfg.Site.BaseURL, "Public site origin for absolute URLs")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s build-pages [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Generate one social-preview HTML page per chapter.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *BuildPagesCommand) Run() error {
	chapterStore := store.New(cmd.ChaptersPath, cmd.cfg.Store.BackupSuffix)

	chapters, err := chapterStore.Load()
	if err != nil {
		return err
	}
	if len(chapters) == 0 {
		return fmt.Errorf("no chapters in %s; run import first", cmd.ChaptersPath)
	}

	generator := pages.NewGenerator(cmd.BaseURL, cmd.SiteDir)
	result, err := generator.BuildAll(chapters)
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %d pages to %s/p\n", result.PagesWritten, cmd.SiteDir)
	if result.ChaptersSkipped > 0 {
		fmt.Printf("Skipped %d chapters without slugs\n", result.ChaptersSkipped)
	}
	return nil
}
