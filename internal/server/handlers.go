package server

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/montafon/moonlight/internal/entities"
	"github.com/montafon/moonlight/internal/importers"
	"github.com/montafon/moonlight/internal/store"
	"github.com/montafon/moonlight/internal/tasks"
)

// Controller handles the workflow API endpoints.
type Controller struct {
	scraper  ChapterScraper
	store    *store.ChapterStore
	importer *importers.Importer
	queue    *tasks.Queue
}

// fetchResponse mirrors the JSON shape the workflow tool already parses.
type fetchResponse struct {
	Success        bool   `json:"success"`
	Title          string `json:"title,omitempty"`
	KoreanText     string `json:"koreanText"`
	ImageURL       string `json:"imageUrl"`
	ParagraphCount int    `json:"paragraphCount"`
	Error          string `json:"error,omitempty"`
}

func (ctrl *Controller) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Fetch proxies one Korean page fetch for the workflow tool.
func (ctrl *Controller) Fetch(c *gin.Context) {
	pageURL := c.Query("url")
	if pageURL == "" {
		c.JSON(http.StatusBadRequest, fetchResponse{Success: false, Error: "missing url parameter"})
		return
	}

	chapter, err := ctrl.scraper.Scrape(c.Request.Context(), pageURL)
	if err != nil {
		log.Printf("Fetch failed for %s: %v", pageURL, err)
		c.JSON(http.StatusInternalServerError, fetchResponse{Success: false, Error: err.Error()})
		return
	}

	log.Printf("Fetched: %s (%d paragraphs)", chapter.Title, chapter.ParagraphCount)

	c.JSON(http.StatusOK, fetchResponse{
		Success:        true,
		Title:          chapter.Title,
		KoreanText:     chapter.KoreanText,
		ImageURL:       chapter.ImageURL,
		ParagraphCount: chapter.ParagraphCount,
	})
}

// ListChapters returns the persisted chapter records.
func (ctrl *Controller) ListChapters(c *gin.Context) {
	chapters, err := ctrl.store.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if chapters == nil {
		chapters = []entities.Chapter{} // serialize as [], not null
	}
	c.JSON(http.StatusOK, chapters)
}

// Import takes a raw sheet CSV export in the request body, runs the
// importer, and commits the result. A parse that yields nothing is a 422,
// never a silent empty commit.
func (ctrl *Controller) Import(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	chapters, err := ctrl.importer.Import(string(body))
	if err != nil {
		status := http.StatusUnprocessableEntity
		var missing *importers.MissingRequiredFieldError
		if !errors.Is(err, importers.ErrEmptyInput) &&
			!errors.Is(err, importers.ErrNoChapters) &&
			!errors.As(err, &missing) {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	if err := ctrl.store.Save(chapters); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	log.Printf("Imported %d chapters to %s", len(chapters), ctrl.store.Path())
	c.JSON(http.StatusOK, gin.H{"imported": len(chapters)})
}

// EnqueueScrapes queues a scrape task for every chapter with a Korean link.
func (ctrl *Controller) EnqueueScrapes(c *gin.Context) {
	if ctrl.queue == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "scrape queue is disabled"})
		return
	}

	chapters, err := ctrl.store.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	queued := 0
	for _, chapter := range chapters {
		if chapter.KoreanLink == "" {
			continue
		}
		task := tasks.ScrapeChapterTask{URL: chapter.KoreanLink, Slug: chapter.Slug}
		if _, err := ctrl.queue.Add(task).Save(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		queued++
	}

	c.JSON(http.StatusOK, gin.H{"queued": queued})
}
