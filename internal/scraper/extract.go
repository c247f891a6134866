package scraper

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"

	"github.com/montafon/moonlight/internal/entities"
)

// Anything a paragraph drags along (spans, inline styles, stray tags) is
// stripped before the text enters the pipeline.
var textPolicy = bluemonday.StrictPolicy()

var fallbackContainer = regexp.MustCompile(`content|article|view`)

// Extract pulls the chapter title, Korean body text, and article image out
// of a source page.
//
// The primary layout is the news template: a div#content whose real
// paragraphs carry an inline "text-align: justify" style, with decorative
// captions and page furniture left unstyled. When that layout is absent the
// extraction falls back to generic article containers with a looser length
// filter.
func Extract(html, pageURL, contentHost string) (*entities.ScrapedChapter, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	chapter := &entities.ScrapedChapter{
		KoreanURL: pageURL,
		Title:     extractTitle(doc),
	}

	paragraphs := extractParagraphs(doc)
	chapter.KoreanText = strings.Join(paragraphs, "\n\n")
	chapter.ParagraphCount = len(paragraphs)
	chapter.ImageURL = extractImage(doc, pageURL, contentHost)

	return chapter, nil
}

// extractTitle takes the page title up to the first site-name separator.
func extractTitle(doc *goquery.Document) string {
	title := doc.Find("title").First().Text()
	title = strings.SplitN(title, "|", 2)[0]
	title = strings.SplitN(title, "-", 2)[0]
	return strings.TrimSpace(title)
}

func extractParagraphs(doc *goquery.Document) []string {
	var paragraphs []string

	content := doc.Find("div#content").First()
	if content.Length() > 0 {
		content.Find("p").Each(func(_ int, p *goquery.Selection) {
			style, _ := p.Attr("style")
			if !strings.Contains(style, "text-align: justify") {
				return
			}
			if text := cleanParagraph(p.Text()); keepParagraph(text, 20) {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) > 0 {
			return paragraphs
		}
	}

	// Generic article layouts: <article>, or containers named like content
	area := doc.Find("article").First()
	if area.Length() == 0 {
		doc.Find("div").EachWithBreak(func(_ int, div *goquery.Selection) bool {
			class, _ := div.Attr("class")
			id, _ := div.Attr("id")
			if fallbackContainer.MatchString(class) || fallbackContainer.MatchString(id) {
				area = div
				return false
			}
			return true
		})
	}

	if area.Length() > 0 {
		area.Find("p").Each(func(_ int, p *goquery.Selection) {
			if text := cleanParagraph(p.Text()); keepParagraph(text, 10) {
				paragraphs = append(paragraphs, text)
			}
		})
	}

	return paragraphs
}

// cleanParagraph sanitizes and normalizes one paragraph of extracted text.
func cleanParagraph(text string) string {
	text = textPolicy.Sanitize(text)
	text = strings.ReplaceAll(text, " ", " ")
	return strings.TrimSpace(text)
}

// keepParagraph filters page furniture: too-short lines and digit-only runs
// (page numbers, dates rendered as bare numerals).
func keepParagraph(text string, minLen int) bool {
	if utf8.RuneCountInString(text) <= minLen {
		return false
	}

	compact := strings.ReplaceAll(text, " ", "")
	if compact == "" {
		return false
	}
	for _, r := range compact {
		if r < '0' || r > '9' {
			return true
		}
	}
	return false
}

// extractImage finds the article's editor-uploaded image, falling back to
// any plausibly content-related <img>.
func extractImage(doc *goquery.Document, pageURL, contentHost string) string {
	var found string

	content := doc.Find("div#content").First()
	if content.Length() > 0 {
		content.Find("img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
			src, _ := img.Attr("src")
			if strings.Contains(src, "/data/editor/") {
				found = absolutize(src, pageURL, contentHost)
				return false
			}
			return true
		})
	}
	if found != "" {
		return found
	}

	doc.Find("img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		src, _ := img.Attr("src")
		if src == "" {
			return true
		}
		if strings.Contains(src, "upload") || strings.Contains(src, "photo") || strings.Contains(src, "image") {
			found = absolutize(src, pageURL, contentHost)
			return false
		}
		return true
	})

	return found
}

// absolutize resolves a relative image src against the page's origin,
// falling back to the configured content host.
func absolutize(src, pageURL, contentHost string) string {
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return src
	}

	if page, err := url.Parse(pageURL); err == nil && page.Host != "" {
		origin := page.Scheme + "://" + page.Host
		if strings.HasPrefix(src, "/") {
			return origin + src
		}
		return origin + "/" + src
	}

	if strings.HasPrefix(src, "/") {
		return contentHost + src
	}
	return contentHost + "/" + src
}
