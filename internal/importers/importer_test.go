package importers

import (
	"fmt"
	"testing"

	"github.com/montafon/moonlight/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTemplates() Templates {
	return Templates{
		HrefPrefix:      "chapter.html?slug=",
		CoverTemplate:   "assets/ch%d-cover.jpg",
		HeroTemplate:    "assets/ch%d-hero.jpg",
		ContentTemplate: "content/chapter-%d.html",
		VersionStart:    4,
		VersionEnd:      8,
		VersionQuery:    "?v=2",
	}
}

func TestImporter_EndToEnd(t *testing.T) {
	imp := NewImporter(testTemplates())

	chapters, err := imp.Import("Title,Slug,Date,Korean Link,Summary\n" +
		"First Chapter,first-chapter,2025-01-01,http://x/1,A *great* start\n")

	require.NoError(t, err)
	require.Len(t, chapters, 1)

	assert.Equal(t, entities.Chapter{
		Number:      1,
		Title:       "First Chapter",
		Slug:        "first-chapter",
		Href:        "chapter.html?slug=first-chapter",
		Date:        "2025-01-01",
		Cover:       "assets/ch1-cover.jpg",
		Hero:        "assets/ch1-hero.jpg",
		Summary:     "A <em>great</em> start",
		Status:      entities.ChapterStatusPublished,
		ContentHTML: "content/chapter-1.html",
		KoreanLink:  "http://x/1",
	}, chapters[0])
}

func TestImporter_Idempotent(t *testing.T) {
	imp := NewImporter(testTemplates())
	input := "Title,Slug,Summary\nA,a,*one*\nB,b,two\n"

	first, err := imp.Import(input)
	require.NoError(t, err)
	second, err := imp.Import(input)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestImporter_BlankRowsDoNotShiftNumbering(t *testing.T) {
	imp := NewImporter(testTemplates())

	chapters, err := imp.Import("Title,Slug\nA,a\n,,\nB,b\n")

	require.NoError(t, err)
	require.Len(t, chapters, 2)
	assert.Equal(t, 1, chapters[0].Number)
	assert.Equal(t, 2, chapters[1].Number)
	assert.Equal(t, "content/chapter-2.html", chapters[1].ContentHTML)
}

func TestImporter_HeaderOnlyIsAnError(t *testing.T) {
	imp := NewImporter(testTemplates())

	chapters, err := imp.Import("Title,Slug,Date\n")

	assert.ErrorIs(t, err, ErrNoChapters)
	assert.Nil(t, chapters)
}

func TestImporter_AllRowsInvalidIsAnError(t *testing.T) {
	imp := NewImporter(testTemplates())

	_, err := imp.Import("Title,Slug,Date\n,,2025-01-01\n,,2025-01-08\n")

	assert.ErrorIs(t, err, ErrNoChapters)
}

func TestImporter_OrderPreserved(t *testing.T) {
	imp := NewImporter(testTemplates())

	chapters, err := imp.Import("Title,Slug\nZ,z\nA,a\nM,m\n")

	require.NoError(t, err)
	require.Len(t, chapters, 3)
	assert.Equal(t, "z", chapters[0].Slug)
	assert.Equal(t, "a", chapters[1].Slug)
	assert.Equal(t, "m", chapters[2].Slug)
}

func TestProjector_VersionedAssetRange(t *testing.T) {
	p := NewProjector(testTemplates())

	rows := make([]RawRow, 10)
	for i := range rows {
		rows[i] = RawRow{Title: "T", Slug: "t"}
	}

	chapters := p.ProjectRecords(rows)
	require.Len(t, chapters, 10)

	// Chapters 4-8 carry the cache-busting suffix, the rest do not.
	for _, ch := range chapters {
		if ch.Number >= 4 && ch.Number <= 8 {
			assert.Equal(t, fmt.Sprintf("assets/ch%d-cover.jpg?v=2", ch.Number), ch.Cover)
			assert.Equal(t, fmt.Sprintf("assets/ch%d-hero.jpg?v=2", ch.Number), ch.Hero)
		} else {
			assert.NotContains(t, ch.Cover, "?v=2", "chapter %d", ch.Number)
			assert.NotContains(t, ch.Hero, "?v=2", "chapter %d", ch.Number)
		}
	}
}

func TestRenderEmphasis(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Thoughts of *vacation* bring him back", "Thoughts of <em>vacation</em> bring him back"},
		{"*a* and *b*", "<em>a</em> and <em>b</em>"},
		{"no markup", "no markup"},
		{"unmatched * star", "unmatched * star"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, renderEmphasis(tc.in), "input %q", tc.in)
	}
}

func TestImporter_QuotedSummaryWithCommas(t *testing.T) {
	imp := NewImporter(testTemplates())

	chapters, err := imp.Import("Title,Slug,Summary\n" +
		`A,a,"Snow, wind, and a *long* road"` + "\n")

	require.NoError(t, err)
	require.Len(t, chapters, 1)
	assert.Equal(t, "Snow, wind, and a <em>long</em> road", chapters[0].Summary)
}
