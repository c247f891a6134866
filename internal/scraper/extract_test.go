package scraper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const newsPageHTML = `<!DOCTYPE html>
<html>
<head><title>달빛 제1화 | 미디어붓다</title></head>
<body>
<div id="content">
  <p style="text-align: justify">산골짜기의 겨울은 길고 깊었다. 눈은 며칠째 그치지 않고 내렸고, 마을로 내려가는 길은 이미 오래전에 끊겨 있었다.</p>
  <p>짧은 캡션</p>
  <p style="text-align: justify">1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1</p>
  <p style="text-align: justify">그는 창밖을 오래 바라보았다. 달빛이 눈 덮인 능선을 타고 흘러내리는 것을 보며, 지난 여름의 일들을 떠올렸다.</p>
  <img src="/skin/banner.png">
  <img src="/data/editor/2501/ch1-photo.jpg">
</div>
</body>
</html>`

func TestExtract_NewsLayout(t *testing.T) {
	chapter, err := Extract(newsPageHTML, "http://www.mediabuddha.net/news/view.php?number=35373", "http://www.mediabuddha.net")

	require.NoError(t, err)
	assert.Equal(t, "달빛 제1화", chapter.Title)
	assert.Equal(t, 2, chapter.ParagraphCount)
	assert.Contains(t, chapter.KoreanText, "산골짜기의 겨울은")
	assert.Contains(t, chapter.KoreanText, "달빛이 눈 덮인")
	assert.NotContains(t, chapter.KoreanText, "짧은 캡션")
	assert.True(t, strings.Contains(chapter.KoreanText, "\n\n"), "paragraphs joined by blank line")
	assert.Equal(t, "http://www.mediabuddha.net/data/editor/2501/ch1-photo.jpg", chapter.ImageURL)
}

func TestExtract_DigitOnlyParagraphsFiltered(t *testing.T) {
	chapter, err := Extract(newsPageHTML, "http://www.mediabuddha.net/news/view.php?number=1", "")

	require.NoError(t, err)
	assert.NotContains(t, chapter.KoreanText, "1 2 3")
}

func TestExtract_ArticleFallback(t *testing.T) {
	html := `<html><head><title>Some Post - Blog</title></head><body>
	<article>
	  <p>short</p>
	  <p>This paragraph is comfortably longer than ten characters.</p>
	</article>
	<img src="uploads/photo1.jpg">
	</body></html>`

	chapter, err := Extract(html, "https://example.com/post/1", "")

	require.NoError(t, err)
	assert.Equal(t, "Some Post", chapter.Title)
	assert.Equal(t, 1, chapter.ParagraphCount)
	assert.Equal(t, "https://example.com/uploads/photo1.jpg", chapter.ImageURL)
}

func TestExtract_ContentClassFallback(t *testing.T) {
	html := `<html><body>
	<div class="view-article">
	  <p>A fallback container paragraph that is long enough to keep.</p>
	</div>
	</body></html>`

	chapter, err := Extract(html, "https://example.com/x", "")

	require.NoError(t, err)
	assert.Equal(t, 1, chapter.ParagraphCount)
}

func TestExtract_NoContent(t *testing.T) {
	chapter, err := Extract("<html><body><p>hi</p></body></html>", "https://example.com/x", "")

	require.NoError(t, err)
	assert.Equal(t, 0, chapter.ParagraphCount)
	assert.Equal(t, "", chapter.KoreanText)
	assert.Equal(t, "", chapter.ImageURL)
}

func TestCleanParagraph_StripsMarkupAndNbsp(t *testing.T) {
	assert.Equal(t, "plain text", cleanParagraph(" plain text "))
}

func TestAbsolutize(t *testing.T) {
	assert.Equal(t, "http://a.net/x.jpg", absolutize("http://a.net/x.jpg", "http://b.net/p", "http://c.net"))
	assert.Equal(t, "http://b.net/x.jpg", absolutize("/x.jpg", "http://b.net/p", "http://c.net"))
	assert.Equal(t, "http://c.net/x.jpg", absolutize("/x.jpg", "", "http://c.net"))
}
