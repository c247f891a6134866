// Package scraper fetches and extracts chapter text from the Korean source
// site. The site serves legacy EUC-KR pages, so responses are transcoded
// before extraction.
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"

	"github.com/montafon/moonlight/internal/entities"
)

// Config holds the scraper's HTTP behavior.
type Config struct {
	UserAgent   string
	Timeout     time.Duration
	RateLimit   time.Duration
	ContentHost string // Host used to absolutize relative image URLs
}

// Client fetches chapter pages with a per-client rate limit so repeated
// scrapes do not hammer the source site.
type Client struct {
	httpClient  *http.Client
	userAgent   string
	contentHost string
	rateLimiter *rateLimiter
}

type rateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	interval time.Duration
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

func (r *rateLimiter) wait() {
	r.mu.Lock()
	defer r.mu.Unlock()

	since := time.Since(r.lastCall)
	if since < r.interval {
		time.Sleep(r.interval - since)
	}
	r.lastCall = time.Now()
}

// NewClient creates a rate-limited scraper client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = time.Second
	}

	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		userAgent:   cfg.UserAgent,
		contentHost: cfg.ContentHost,
		rateLimiter: newRateLimiter(cfg.RateLimit),
	}
}

// Scrape fetches a chapter page and extracts its title, body text, and
// article image.
func (c *Client) Scrape(ctx context.Context, pageURL string) (*entities.ScrapedChapter, error) {
	html, err := c.FetchPage(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	chapter, err := Extract(html, pageURL, c.contentHost)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", pageURL, err)
	}

	return chapter, nil
}

// FetchPage retrieves a page and returns its body as UTF-8 text.
func (c *Client) FetchPage(ctx context.Context, pageURL string) (string, error) {
	c.rateLimiter.wait()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch %s: HTTP %d", pageURL, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", pageURL, err)
	}

	return decodePage(raw), nil
}

// decodePage converts a page body to UTF-8. The source site serves EUC-KR;
// bytes that already form valid UTF-8 pass through unchanged.
func decodePage(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}

	decoded, err := korean.EUCKR.NewDecoder().Bytes(raw)
	if err != nil {
		// Keep whatever is salvageable rather than failing the scrape.
		return string(raw)
	}

	return string(decoded)
}
