package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/montafon/moonlight/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQueue(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "page-cache.db")

	cfg := DefaultConfig()
	cfg.Workers = 1

	queue, err := NewQueue(dbPath, cfg)
	require.NoError(t, err)
	require.NotNil(t, queue)

	// Verify the queue database was created alongside the cache database
	_, err = os.Stat(filepath.Join(tmpDir, "page-cache-tasks.db"))
	assert.NoError(t, err, "task database should be created")

	assert.NoError(t, queue.Close())
}

func TestQueueStartStop(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Workers = 1

	queue, err := NewQueue(filepath.Join(t.TempDir(), "page-cache.db"), cfg)
	require.NoError(t, err)
	defer queue.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go queue.Start(ctx)
	time.Sleep(50 * time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()

	assert.True(t, queue.Stop(stopCtx), "stop should succeed gracefully")
}

type stubScraper struct {
	chapter *entities.ScrapedChapter
	err     error
}

func (s *stubScraper) Scrape(ctx context.Context, url string) (*entities.ScrapedChapter, error) {
	if s.err != nil {
		return nil, s.err
	}
	c := *s.chapter
	c.KoreanURL = url
	return &c, nil
}

func TestScrapeChapterProcessor_WritesChapterData(t *testing.T) {
	tmpDir := t.TempDir()
	scraper := &stubScraper{chapter: &entities.ScrapedChapter{
		Title:          "달빛 제1화",
		KoreanText:     "본문",
		ImageURL:       "http://x/img.jpg",
		ParagraphCount: 1,
	}}

	processor := ScrapeChapterProcessor(scraper, tmpDir)
	err := processor(context.Background(), ScrapeChapterTask{URL: "http://x/1", Slug: "first-chapter"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(tmpDir, "chapter-data-first-chapter.json"))
	require.NoError(t, err)

	var written entities.ScrapedChapter
	require.NoError(t, json.Unmarshal(data, &written))
	assert.Equal(t, "http://x/1", written.KoreanURL)
	assert.Equal(t, "달빛 제1화", written.Title)
	assert.Equal(t, 1, written.ParagraphCount)
}

func TestScrapeChapterProcessor_NoSlugUsesDefaultName(t *testing.T) {
	tmpDir := t.TempDir()
	scraper := &stubScraper{chapter: &entities.ScrapedChapter{Title: "T"}}

	processor := ScrapeChapterProcessor(scraper, tmpDir)
	require.NoError(t, processor(context.Background(), ScrapeChapterTask{URL: "http://x/1"}))

	_, err := os.Stat(filepath.Join(tmpDir, "chapter-data.json"))
	assert.NoError(t, err)
}

func TestScrapeChapterProcessor_ScrapeFailure(t *testing.T) {
	wantErr := errors.New("fetch failed")
	processor := ScrapeChapterProcessor(&stubScraper{err: wantErr}, t.TempDir())

	err := processor(context.Background(), ScrapeChapterTask{URL: "http://x/1"})
	assert.ErrorIs(t, err, wantErr)
}
