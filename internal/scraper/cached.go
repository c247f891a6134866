package scraper

import (
	"context"
	"fmt"

	"github.com/montafon/moonlight/internal/cache"
	"github.com/montafon/moonlight/internal/entities"
)

// CachedClient scrapes through the page cache, so re-running the pipeline
// does not refetch pages the source site already served.
type CachedClient struct {
	client *Client
	pages  *cache.PageCache
}

func NewCachedClient(client *Client, pages *cache.PageCache) *CachedClient {
	return &CachedClient{client: client, pages: pages}
}

// Scrape returns the extracted chapter, fetching the page only on a cache
// miss.
func (c *CachedClient) Scrape(ctx context.Context, pageURL string) (*entities.ScrapedChapter, error) {
	html, err := c.pages.GetOrFetch(ctx, pageURL, c.client.FetchPage)
	if err != nil {
		return nil, err
	}

	chapter, err := Extract(html, pageURL, c.client.contentHost)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", pageURL, err)
	}

	return chapter, nil
}
