// Package pages generates the per-chapter static HTML pages. The pages exist
// for link unfurling: crawlers that never run the reader's JavaScript still
// get real Open Graph metadata, then humans get redirected into the reader.
package pages

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/montafon/moonlight/internal/entities"
	"github.com/montafon/moonlight/internal/utils"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}} | Montafon Moonlight</title>
<meta property="og:type" content="article">
<meta property="og:title" content="{{.Title}}">
<meta property="og:description" content="{{.Description}}">
<meta property="og:image" content="{{.ImageURL}}">
<meta property="og:url" content="{{.PageURL}}">
<meta name="twitter:card" content="summary_large_image">
<meta name="twitter:title" content="{{.Title}}">
<meta name="twitter:description" content="{{.Description}}">
<meta name="twitter:image" content="{{.ImageURL}}">
<meta http-equiv="refresh" content="0; url={{.RedirectURL}}">
<link rel="canonical" href="{{.RedirectURL}}">
</head>
<body>
<p>Continue to <a href="{{.RedirectURL}}">{{.Title}}</a>.</p>
</body>
</html>
`

// descriptionPolicy strips the summary's inline markup for meta attributes.
var descriptionPolicy = bluemonday.StrictPolicy()

type pageData struct {
	Title       string
	Description string
	ImageURL    string
	PageURL     string
	RedirectURL string
}

// Generator writes social-preview pages under <siteDir>/p/.
type Generator struct {
	baseURL string
	siteDir string
	tmpl    *template.Template
}

func NewGenerator(baseURL, siteDir string) *Generator {
	return &Generator{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		siteDir: siteDir,
		tmpl:    template.Must(template.New("page").Parse(pageTemplate)),
	}
}

// BuildAll writes one preview page per chapter. Chapters without a slug have
// no stable page URL and are skipped.
func (g *Generator) BuildAll(chapters []entities.Chapter) (entities.BuildResult, error) {
	var result entities.BuildResult

	pagesDir := filepath.Join(g.siteDir, "p")
	if err := os.MkdirAll(pagesDir, 0755); err != nil {
		return result, fmt.Errorf("create %s: %w", pagesDir, err)
	}

	for _, chapter := range chapters {
		if chapter.Slug == "" {
			result.ChaptersSkipped++
			continue
		}

		if err := g.buildPage(chapter, pagesDir); err != nil {
			return result, err
		}
		result.PagesWritten++
	}

	return result, nil
}

func (g *Generator) buildPage(chapter entities.Chapter, pagesDir string) error {
	name := utils.SanitizeSlug(chapter.Slug) + ".html"
	path := filepath.Join(pagesDir, name)

	data := pageData{
		Title:       chapter.Title,
		Description: descriptionPolicy.Sanitize(chapter.Summary),
		ImageURL:    g.absoluteURL(chapter.Hero),
		PageURL:     g.baseURL + "/p/" + name,
		RedirectURL: g.absoluteURL(chapter.Href),
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := g.tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}

	return nil
}

func (g *Generator) absoluteURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return g.baseURL + "/" + strings.TrimPrefix(path, "/")
}
