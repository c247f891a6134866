package config

// Default paths for pipeline inputs and outputs
const (
	// DefaultChaptersPath is the default location of the persisted chapter records
	DefaultChaptersPath = "./chapters.json"

	// DefaultCacheDatabasePath is the default path for the scraped-page cache database
	DefaultCacheDatabasePath = "./page-cache.db"

	// DefaultSiteDir is the default output directory for generated static pages
	DefaultSiteDir = "./site"

	// DefaultManuscriptPath is the default output path for the compiled manuscript
	DefaultManuscriptPath = "./book/manuscript.md"
)
