// Package server runs the localhost workflow API: the CORS proxy the
// browser-based translation tool fetches Korean pages through, plus JSON
// endpoints over the chapter list.
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/montafon/moonlight/internal/entities"
	"github.com/montafon/moonlight/internal/importers"
	"github.com/montafon/moonlight/internal/store"
	"github.com/montafon/moonlight/internal/tasks"
)

// ChapterScraper fetches and extracts one Korean source page.
type ChapterScraper interface {
	Scrape(ctx context.Context, url string) (*entities.ScrapedChapter, error)
}

// RouterConfig carries the router's dependencies.
type RouterConfig struct {
	Scraper  ChapterScraper
	Store    *store.ChapterStore
	Importer *importers.Importer

	// Queue is optional; without it the bulk-scrape endpoint is disabled.
	Queue *tasks.Queue
}

// NewRouter creates the workflow HTTP router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// The workflow tool is a local file:// page, so every response must be
	// CORS-open. The server binds to localhost only.
	router.Use(corsMiddleware())

	controller := &Controller{
		scraper:  cfg.Scraper,
		store:    cfg.Store,
		importer: cfg.Importer,
		queue:    cfg.Queue,
	}

	router.GET("/health", controller.Health)
	router.GET("/fetch", controller.Fetch)
	router.GET("/chapters", controller.ListChapters)
	router.POST("/import", controller.Import)
	router.POST("/scrape", controller.EnqueueScrapes)

	return router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
