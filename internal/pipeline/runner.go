// Package pipeline wires the full sheet-to-site flow: fetch the published
// spreadsheet, import it, commit the chapter list, regenerate preview pages.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/montafon/moonlight/internal/entities"
	"github.com/montafon/moonlight/internal/importers"
	"github.com/montafon/moonlight/internal/pages"
	"github.com/montafon/moonlight/internal/store"
)

// RunResult summarizes one pipeline run.
type RunResult struct {
	Chapters     int
	PagesWritten int
}

// Runner executes the scheduled import flow. Parsing happens before any
// write: a fetch or import failure leaves chapters.json and the site
// untouched.
type Runner struct {
	sheetURL   string
	httpClient *http.Client
	importer   *importers.Importer
	store      *store.ChapterStore
	generator  *pages.Generator
}

func NewRunner(sheetURL string, importer *importers.Importer, chapterStore *store.ChapterStore, generator *pages.Generator) *Runner {
	return &Runner{
		sheetURL:   sheetURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		importer:   importer,
		store:      chapterStore,
		generator:  generator,
	}
}

// Run performs one full pipeline pass.
func (r *Runner) Run(ctx context.Context) (RunResult, error) {
	var result RunResult

	if r.sheetURL == "" {
		return result, fmt.Errorf("sheet CSV URL is not configured")
	}

	csv, err := FetchSheet(ctx, r.httpClient, r.sheetURL)
	if err != nil {
		return result, err
	}

	chapters, err := r.importer.Import(csv)
	if err != nil {
		return result, fmt.Errorf("import sheet: %w", err)
	}

	if err := r.store.Save(chapters); err != nil {
		return result, err
	}
	result.Chapters = len(chapters)

	if r.generator != nil {
		buildResult, err := r.generator.BuildAll(chapters)
		if err != nil {
			return result, fmt.Errorf("build pages: %w", err)
		}
		result.PagesWritten = buildResult.PagesWritten
	}

	return result, nil
}

// Chapters loads the currently persisted chapter list.
func (r *Runner) Chapters() ([]entities.Chapter, error) {
	return r.store.Load()
}

// FetchSheet downloads the published sheet CSV.
func FetchSheet(ctx context.Context, client *http.Client, sheetURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sheetURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch sheet: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read sheet: %w", err)
	}

	return string(body), nil
}
