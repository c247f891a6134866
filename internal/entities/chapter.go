package entities

// ChapterStatus is the publication state of a chapter record.
type ChapterStatus string

const (
	ChapterStatusPublished ChapterStatus = "published"
	ChapterStatusDraft     ChapterStatus = "draft"
)

// Chapter is one normalized installment of the serial, as persisted in
// chapters.json. JSON field names match the schema the site reader and the
// workflow tool already consume, so they must not change.
type Chapter struct {
	Number      int           `json:"-"` // 1-based position, derivable from slice order
	Title       string        `json:"title"`
	Slug        string        `json:"slug"`
	Href        string        `json:"href"`
	Date        string        `json:"date"`
	Cover       string        `json:"cover"`
	Hero        string        `json:"hero"`
	Summary     string        `json:"summary"`
	Status      ChapterStatus `json:"status"`
	ContentHTML string        `json:"contentHtml"`
	KoreanLink  string        `json:"koreanLink"`
}

// ScrapedChapter is the extraction result for one Korean source page.
// Field names mirror the chapter-data.json file the browser workflow tool reads.
type ScrapedChapter struct {
	KoreanURL      string `json:"koreanUrl"`
	Title          string `json:"title"`
	KoreanText     string `json:"koreanText"`
	ImageURL       string `json:"imageUrl"`
	ParagraphCount int    `json:"paragraphCount"`
}

// BuildResult counts the outputs of a site/manuscript build.
type BuildResult struct {
	PagesWritten    int
	ChaptersSkipped int
}
