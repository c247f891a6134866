package server

import (
	"context"
	"log"

	"github.com/montafon/moonlight/internal/cache"
	"github.com/montafon/moonlight/internal/config"
	"github.com/montafon/moonlight/internal/importers"
	"github.com/montafon/moonlight/internal/pages"
	"github.com/montafon/moonlight/internal/pipeline"
	"github.com/montafon/moonlight/internal/scheduler"
	"github.com/montafon/moonlight/internal/scraper"
	"github.com/montafon/moonlight/internal/store"
	"github.com/montafon/moonlight/internal/tasks"
)

// Run wires every component from configuration and serves the workflow API
// until interrupted.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting moonlight pipeline v%s", version)

	pageCache, err := cache.New(cfg.Cache.DatabasePath, cfg.Cache.TTL)
	if err != nil {
		log.Fatalf("Failed to open page cache: %v", err)
	}
	defer pageCache.Close()

	client := scraper.NewClient(scraper.Config{
		UserAgent:   cfg.Scraper.UserAgent,
		Timeout:     cfg.Scraper.Timeout,
		RateLimit:   cfg.Scraper.RateLimit,
		ContentHost: cfg.Scraper.ContentHost,
	})
	cachedScraper := scraper.NewCachedClient(client, pageCache)

	chapterStore := store.New(cfg.Store.Path, cfg.Store.BackupSuffix)

	importer := importers.NewImporter(importers.Templates{
		HrefPrefix:      cfg.Site.HrefPrefix,
		CoverTemplate:   cfg.Assets.CoverTemplate,
		HeroTemplate:    cfg.Assets.HeroTemplate,
		ContentTemplate: cfg.Site.ContentTemplate,
		VersionStart:    cfg.Assets.VersionStart,
		VersionEnd:      cfg.Assets.VersionEnd,
		VersionQuery:    cfg.Assets.VersionQuery,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Scrape queue
	var queue *tasks.Queue
	if cfg.Tasks.Enabled {
		queue, err = tasks.NewQueue(cfg.Cache.DatabasePath, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
			OutputDir:       cfg.Tasks.OutputDir,
		})
		if err != nil {
			log.Fatalf("Failed to create scrape queue: %v", err)
		}
		defer queue.Close()

		queue.Register(tasks.NewScrapeChapterQueue(cachedScraper, cfg.Tasks.OutputDir))
		go queue.Start(ctx)
	} else {
		log.Printf("Scrape queue disabled")
	}

	// Scheduled sheet sync
	generator := pages.NewGenerator(cfg.Site.BaseURL, cfg.Site.Dir)
	runner := pipeline.NewRunner(cfg.Sheet.CSVURL, importer, chapterStore, generator)
	pipelineScheduler := scheduler.NewPipelineScheduler(runner, cfg.Pipeline.Schedule, cfg.Pipeline.Enabled)
	if err := pipelineScheduler.Start(ctx); err != nil {
		log.Fatalf("Failed to start pipeline scheduler: %v", err)
	}

	router := NewRouter(RouterConfig{
		Scraper:  cachedScraper,
		Store:    chapterStore,
		Importer: importer,
		Queue:    queue,
	})

	Serve(router, cfg, func(shutdownCtx context.Context) {
		pipelineScheduler.Stop()
		if queue != nil {
			queue.Stop(shutdownCtx)
		}
	})
}
