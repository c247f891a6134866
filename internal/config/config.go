package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Site
		Sheet
		Assets
		Store
		Scraper
		Cache
		Tasks
		Pipeline
		Book
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}

	// Site holds URL and path templates for generated site artifacts.
	Site struct {
		BaseURL         string // Public site origin, used for absolute Open Graph URLs
		Dir             string // Output directory for generated pages
		HrefPrefix      string // Reader deep-link prefix, slug is appended
		ContentTemplate string // Per-chapter content path, chapter number substituted
	}

	// Sheet identifies the published spreadsheet the chapter list is imported from.
	Sheet struct {
		CSVURL string
	}

	// Assets describes cover/hero image paths. Chapters in the
	// [VersionStart, VersionEnd] number range get VersionQuery appended,
	// a cache-busting artifact of past asset replacements.
	Assets struct {
		CoverTemplate string
		HeroTemplate  string
		VersionStart  int
		VersionEnd    int
		VersionQuery  string
	}

	Store struct {
		Path         string
		BackupSuffix string
	}

	Scraper struct {
		UserAgent   string
		Timeout     time.Duration
		RateLimit   time.Duration
		ContentHost string // Fallback host for relative image URLs
	}

	Cache struct {
		DatabasePath string
		TTL          time.Duration
	}

	Tasks struct {
		Enabled         bool
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
		OutputDir       string // Where scrape tasks drop chapter-data JSON files
	}

	// Pipeline controls the scheduled fetch -> import -> commit -> build run.
	Pipeline struct {
		Enabled  bool
		Schedule string // Cron format: "0 * * * *" = hourly
	}

	Book struct {
		ManuscriptPath string
		ContentDir     string // Directory holding per-chapter content HTML
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8899)
	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	v.SetDefault("site_base_url", "https://montafon-moonlight.pages.dev")
	v.SetDefault("site_dir", DefaultSiteDir)
	v.SetDefault("site_href_prefix", "chapter.html?slug=")
	v.SetDefault("site_content_template", "content/chapter-%d.html")

	v.SetDefault("sheet_csv_url", "")

	v.SetDefault("asset_cover_template", "assets/ch%d-cover.jpg")
	v.SetDefault("asset_hero_template", "assets/ch%d-hero.jpg")
	v.SetDefault("asset_version_start", 4)
	v.SetDefault("asset_version_end", 8)
	v.SetDefault("asset_version_query", "?v=2")

	v.SetDefault("chapters_path", DefaultChaptersPath)
	v.SetDefault("chapters_backup_suffix", ".bak")

	v.SetDefault("scraper_user_agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")
	v.SetDefault("scraper_timeout", "10s")
	v.SetDefault("scraper_rate_limit", "1s")
	v.SetDefault("scraper_content_host", "http://www.mediabuddha.net")

	v.SetDefault("cache_database_path", DefaultCacheDatabasePath)
	v.SetDefault("cache_ttl", "168h") // Source pages are effectively immutable once published

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_output_dir", ".")

	v.SetDefault("pipeline_enabled", false)
	v.SetDefault("pipeline_schedule", "0 * * * *") // Hourly at :00

	v.SetDefault("manuscript_path", DefaultManuscriptPath)
	v.SetDefault("book_content_dir", "./content")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Site: Site{
			BaseURL:         v.GetString("SITE_BASE_URL"),
			Dir:             v.GetString("SITE_DIR"),
			HrefPrefix:      v.GetString("SITE_HREF_PREFIX"),
			ContentTemplate: v.GetString("SITE_CONTENT_TEMPLATE"),
		},
		Sheet: Sheet{
			CSVURL: v.GetString("SHEET_CSV_URL"),
		},
		Assets: Assets{
			CoverTemplate: v.GetString("ASSET_COVER_TEMPLATE"),
			HeroTemplate:  v.GetString("ASSET_HERO_TEMPLATE"),
			VersionStart:  v.GetInt("ASSET_VERSION_START"),
			VersionEnd:    v.GetInt("ASSET_VERSION_END"),
			VersionQuery:  v.GetString("ASSET_VERSION_QUERY"),
		},
		Store: Store{
			Path:         v.GetString("CHAPTERS_PATH"),
			BackupSuffix: v.GetString("CHAPTERS_BACKUP_SUFFIX"),
		},
		Scraper: Scraper{
			UserAgent:   v.GetString("SCRAPER_USER_AGENT"),
			Timeout:     v.GetDuration("SCRAPER_TIMEOUT"),
			RateLimit:   v.GetDuration("SCRAPER_RATE_LIMIT"),
			ContentHost: v.GetString("SCRAPER_CONTENT_HOST"),
		},
		Cache: Cache{
			DatabasePath: v.GetString("CACHE_DATABASE_PATH"),
			TTL:          v.GetDuration("CACHE_TTL"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
			OutputDir:       v.GetString("TASK_OUTPUT_DIR"),
		},
		Pipeline: Pipeline{
			Enabled:  v.GetBool("PIPELINE_ENABLED"),
			Schedule: v.GetString("PIPELINE_SCHEDULE"),
		},
		Book: Book{
			ManuscriptPath: v.GetString("MANUSCRIPT_PATH"),
			ContentDir:     v.GetString("BOOK_CONTENT_DIR"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
