// Package cache stores fetched source pages in a local SQLite database.
// Published chapters never change, so caching spares the source site repeat
// traffic and makes reruns of the pipeline fast and offline-friendly.
package cache

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// CachedPage is one fetched source page, keyed by URL hash.
type CachedPage struct {
	ID        uint   `gorm:"primaryKey"`
	URLHash   string `gorm:"uniqueIndex;size:64"`
	URL       string `gorm:"size:2048"`
	HTML      string
	FetchedAt time.Time
}

// FetchFunc retrieves a page when the cache has no fresh copy.
type FetchFunc func(ctx context.Context, url string) (string, error)

// PageCache is a TTL'd page store backed by SQLite.
type PageCache struct {
	db  *gorm.DB
	ttl time.Duration
}

// New opens (creating if needed) the cache database at dbPath. A zero ttl
// means entries never expire.
func New(dbPath string, ttl time.Duration) (*PageCache, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if err := db.AutoMigrate(&CachedPage{}); err != nil {
		return nil, fmt.Errorf("failed to migrate cache schema: %w", err)
	}

	return &PageCache{db: db, ttl: ttl}, nil
}

// Get returns the cached HTML for a URL, or "" when absent or stale.
func (c *PageCache) Get(url string) (string, bool) {
	var page CachedPage
	err := c.db.Where("url_hash = ?", hashURL(url)).First(&page).Error
	if err != nil {
		return "", false
	}

	if c.ttl > 0 && time.Since(page.FetchedAt) > c.ttl {
		return "", false
	}

	return page.HTML, true
}

// Put stores or refreshes the cached copy of a page.
func (c *PageCache) Put(url, html string) error {
	page := CachedPage{
		URLHash:   hashURL(url),
		URL:       url,
		HTML:      html,
		FetchedAt: time.Now(),
	}

	var existing CachedPage
	err := c.db.Where("url_hash = ?", page.URLHash).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.db.Create(&page).Error
	}
	if err != nil {
		return err
	}

	existing.HTML = html
	existing.FetchedAt = page.FetchedAt
	return c.db.Save(&existing).Error
}

// GetOrFetch returns the cached page, fetching and caching on a miss. Fetch
// failures never corrupt the cache; a stale entry is simply refetched next
// time.
func (c *PageCache) GetOrFetch(ctx context.Context, url string, fetch FetchFunc) (string, error) {
	if html, ok := c.Get(url); ok {
		return html, nil
	}

	html, err := fetch(ctx, url)
	if err != nil {
		return "", err
	}

	if err := c.Put(url, html); err != nil {
		return "", fmt.Errorf("cache %s: %w", url, err)
	}

	return html, nil
}

// Invalidate removes the cached copy of a URL.
func (c *PageCache) Invalidate(url string) error {
	return c.db.Where("url_hash = ?", hashURL(url)).Delete(&CachedPage{}).Error
}

// Close releases the underlying database connection.
func (c *PageCache) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func hashURL(url string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(url)))
}
