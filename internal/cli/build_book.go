package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/montafon/moonlight/internal/book"
	"github.com/montafon/moonlight/internal/config"
	"github.com/montafon/moonlight/internal/store"
)

// BuildBookCommand compiles all chapters into the Markdown manuscript.
type BuildBookCommand struct {
	ChaptersPath string
	ContentDir   string
	Output       string
	Title        string
	Author       string

	cfg *config.Config
}

func NewBuildBookCommand() *BuildBookCommand {
	return &BuildBookCommand{cfg: config.NewConfig()}
}

func (cmd *BuildBookCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("build-book", flag.ExitOnError)

	fs.StringVar(&cmd.ChaptersPath, "chapters", cmd.cfg.Store.Path, "Path to the chapters JSON file")
	fs.StringVar(&cmd.ContentDir, "content", cmd.cfg.Book.ContentDir, "Directory holding per-chapter content HTML")
	fs.StringVar(&cmd.Output, "output", cmd.cfg.Book.ManuscriptPath, "Output path for the manuscript")
	fs.StringVar(&cmd.Title, "title", "Montafon Moonlight", "Book title for the manuscript front matter")
	fs.StringVar(&cmd.Author, "author", "", "Author line for the manuscript front matter")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s build-book [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Compile all chapter content into a single Markdown manuscript\n")
		fmt.Fprintf(os.Stderr, "ready for pandoc e-book/print conversion.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *BuildBookCommand) Run() error {
	chapterStore := store.New(cmd.ChaptersPath, cmd.cfg.Store.BackupSuffix)

	chapters, err := chapterStore.Load()
	if err != nil {
		return err
	}
	if len(chapters) == 0 {
		return fmt.Errorf("no chapters in %s; run import first", cmd.ChaptersPath)
	}

	compiler := book.NewCompiler(cmd.ContentDir, cmd.Output, cmd.Title, cmd.Author)
	result, err := compiler.Compile(chapters)
	if err != nil {
		return err
	}

	fmt.Printf("Compiled %d chapters into %s\n", result.PagesWritten, cmd.Output)
	if result.ChaptersSkipped > 0 {
		fmt.Printf("Skipped %d chapters without content\n", result.ChaptersSkipped)
	}
	return nil
}
