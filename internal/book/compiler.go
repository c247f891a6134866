// Package book compiles every chapter into a single Markdown manuscript for
// the external typesetting tool (pandoc handles the e-book and print
// conversions downstream).
package book

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/montafon/moonlight/internal/entities"
)

// Compiler assembles the manuscript from the chapter list and the
// per-chapter content HTML files.
type Compiler struct {
	contentDir     string
	manuscriptPath string
	title          string
	author         string
}

func NewCompiler(contentDir, manuscriptPath, title, author string) *Compiler {
	return &Compiler{
		contentDir:     contentDir,
		manuscriptPath: manuscriptPath,
		title:          title,
		author:         author,
	}
}

// Compile writes the manuscript. Chapters whose content file is missing are
// skipped with a warning; a partial manuscript of finished chapters is still
// useful during translation.
func (c *Compiler) Compile(chapters []entities.Chapter) (entities.BuildResult, error) {
	var result entities.BuildResult
	var manuscript strings.Builder

	c.writeFrontMatter(&manuscript)

	for _, chapter := range chapters {
		contentPath := filepath.Join(c.contentDir, filepath.Base(chapter.ContentHTML))

		html, err := os.ReadFile(contentPath)
		if err != nil {
			if os.IsNotExist(err) {
				log.Printf("Skipping chapter %d (%s): no content at %s",
					chapter.Number, chapter.Title, contentPath)
				result.ChaptersSkipped++
				continue
			}
			return result, fmt.Errorf("read %s: %w", contentPath, err)
		}

		fmt.Fprintf(&manuscript, "## Chapter %d: %s\n\n", chapter.Number, chapter.Title)
		manuscript.WriteString(HTMLToMarkdown(string(html)))
		manuscript.WriteString("\n\n")
		result.PagesWritten++
	}

	if result.PagesWritten == 0 {
		return result, fmt.Errorf("no chapter content found under %s", c.contentDir)
	}

	if dir := filepath.Dir(c.manuscriptPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return result, fmt.Errorf("create %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(c.manuscriptPath, []byte(manuscript.String()), 0644); err != nil {
		return result, fmt.Errorf("write %s: %w", c.manuscriptPath, err)
	}

	return result, nil
}

// writeFrontMatter emits the pandoc YAML metadata block.
func (c *Compiler) writeFrontMatter(w *strings.Builder) {
	fmt.Fprintf(w, "---\n")
	fmt.Fprintf(w, "title: %s\n", c.title)
	if c.author != "" {
		fmt.Fprintf(w, "author: %s\n", c.author)
	}
	fmt.Fprintf(w, "date: %s\n", time.Now().Format("2006-01-02"))
	fmt.Fprintf(w, "lang: en\n")
	fmt.Fprintf(w, "---\n\n")
}
