package importers

import (
	"fmt"
	"regexp"

	"github.com/montafon/moonlight/internal/entities"
)

// Templates carries the URL and path patterns a projector stamps into each
// record. Sheet identifiers and site URLs are deployment facts, so they are
// injected here rather than compiled in.
type Templates struct {
	HrefPrefix      string // e.g. "chapter.html?slug="
	CoverTemplate   string // e.g. "assets/ch%d-cover.jpg"
	HeroTemplate    string // e.g. "assets/ch%d-hero.jpg"
	ContentTemplate string // e.g. "content/chapter-%d.html"

	// Chapters numbered in [VersionStart, VersionEnd] get VersionQuery
	// appended to cover and hero paths. The historical range is 4-8, a
	// leftover from past asset replacements on those chapters.
	VersionStart int
	VersionEnd   int
	VersionQuery string
}

// emphasisPattern matches a minimal *...* span. Leftmost-shortest, so
// unpaired or nested asterisks fall through untouched, and the substitution
// is a single pass rather than recursive.
var emphasisPattern = regexp.MustCompile(`\*([^*]+)\*`)

// renderEmphasis rewrites *text* spans to <em>text</em>.
func renderEmphasis(s string) string {
	return emphasisPattern.ReplaceAllString(s, "<em>$1</em>")
}

// Projector turns raw sheet rows into chapter records.
type Projector struct {
	templates Templates
}

func NewProjector(templates Templates) *Projector {
	return &Projector{templates: templates}
}

// assetPath renders an asset template for a chapter number, appending the
// version query when the number falls in the configured range.
func (p *Projector) assetPath(template string, number int) string {
	path := fmt.Sprintf(template, number)
	if number >= p.templates.VersionStart && number <= p.templates.VersionEnd {
		path += p.templates.VersionQuery
	}
	return path
}

// ProjectRecords maps each surviving row at position i to a chapter record
// numbered i+1. Numbering counts surviving rows only; blank and invalid rows
// were already dropped in ParseTable, so they never shift chapter numbers.
// No row is dropped here.
func (p *Projector) ProjectRecords(rows []RawRow) []entities.Chapter {
	chapters := make([]entities.Chapter, 0, len(rows))

	for i, row := range rows {
		number := i + 1

		chapters = append(chapters, entities.Chapter{
			Number:      number,
			Title:       row.Title,
			Slug:        row.Slug,
			Href:        p.templates.HrefPrefix + row.Slug,
			Date:        row.Date,
			Cover:       p.assetPath(p.templates.CoverTemplate, number),
			Hero:        p.assetPath(p.templates.HeroTemplate, number),
			Summary:     renderEmphasis(row.Summary),
			Status:      entities.ChapterStatusPublished,
			ContentHTML: fmt.Sprintf(p.templates.ContentTemplate, number),
			KoreanLink:  row.KoreanLink,
		})
	}

	return chapters
}
