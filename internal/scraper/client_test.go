package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"
)

func testClient() *Client {
	return NewClient(Config{
		UserAgent: "test-agent",
		Timeout:   2 * time.Second,
		RateLimit: time.Millisecond,
	})
}

func TestClient_FetchPage_DecodesEUCKR(t *testing.T) {
	page := `<html><head><title>달빛 제3화</title></head><body></body></html>`
	encoded, err := korean.EUCKR.NewEncoder().Bytes([]byte(page))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=euc-kr")
		w.Write(encoded)
	}))
	defer srv.Close()

	html, err := testClient().FetchPage(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, html, "달빛 제3화")
}

func TestClient_FetchPage_UTF8PassThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>이미 UTF-8</title></head></html>`))
	}))
	defer srv.Close()

	html, err := testClient().FetchPage(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, html, "이미 UTF-8")
}

func TestClient_FetchPage_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testClient().FetchPage(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestClient_Scrape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(newsPageHTML))
	}))
	defer srv.Close()

	chapter, err := testClient().Scrape(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, srv.URL, chapter.KoreanURL)
	assert.Equal(t, 2, chapter.ParagraphCount)
}
