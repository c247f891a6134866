package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/montafon/moonlight/internal/entities"
	"github.com/montafon/moonlight/internal/utils"
)

// ChapterScraper is the piece of the pipeline that fetches and extracts one
// Korean source page.
type ChapterScraper interface {
	Scrape(ctx context.Context, url string) (*entities.ScrapedChapter, error)
}

// ScrapeChapterTask fetches one chapter's Korean source page and writes the
// chapter-data JSON the browser workflow tool loads.
type ScrapeChapterTask struct {
	URL  string `json:"url"`
	Slug string `json:"slug"`
}

// Config returns the queue configuration for chapter scrape tasks.
func (t ScrapeChapterTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "scrape_chapter",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ScrapeChapterProcessor creates a processor for ScrapeChapterTask. Output
// lands in outputDir as chapter-data-<slug>.json, or chapter-data.json when
// the task has no slug (matching what the workflow tool expects for ad-hoc
// scrapes).
func ScrapeChapterProcessor(scraper ChapterScraper, outputDir string) backlite.QueueProcessor[ScrapeChapterTask] {
	return func(ctx context.Context, task ScrapeChapterTask) error {
		if scraper == nil {
			return fmt.Errorf("scraper not configured")
		}

		chapter, err := scraper.Scrape(ctx, task.URL)
		if err != nil {
			return fmt.Errorf("scrape %s: %w", task.URL, err)
		}

		path := outputPath(outputDir, task.Slug)
		if err := WriteChapterData(chapter, path); err != nil {
			return err
		}

		log.Printf("[TASK] Scraped %s (%d paragraphs) -> %s",
			task.URL, chapter.ParagraphCount, path)
		return nil
	}
}

// NewScrapeChapterQueue creates the backlite queue for chapter scrape tasks.
func NewScrapeChapterQueue(scraper ChapterScraper, outputDir string) backlite.Queue {
	return backlite.NewQueue(ScrapeChapterProcessor(scraper, outputDir))
}

// WriteChapterData persists a scrape result as the JSON file consumed by the
// workflow tool.
func WriteChapterData(chapter *entities.ScrapedChapter, path string) error {
	data, err := json.MarshalIndent(chapter, "", "  ")
	if err != nil {
		return fmt.Errorf("encode chapter data: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func outputPath(outputDir, slug string) string {
	if slug == "" {
		return filepath.Join(outputDir, "chapter-data.json")
	}
	return filepath.Join(outputDir, "chapter-data-"+utils.SanitizeSlug(slug)+".json")
}
