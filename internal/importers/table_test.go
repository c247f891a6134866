package importers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTable_BasicRows(t *testing.T) {
	rows, err := ParseTable("Title,Slug,Date\nFirst,first,2025-01-01\nSecond,second,2025-01-08\n")

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "First", rows[0].Title)
	assert.Equal(t, "first", rows[0].Slug)
	assert.Equal(t, "2025-01-01", rows[0].Date)
	assert.Equal(t, "Second", rows[1].Title)
}

func TestParseTable_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "\n\n\n", "   \n\t\n"} {
		_, err := ParseTable(input)
		assert.ErrorIs(t, err, ErrEmptyInput)
	}
}

func TestParseTable_MissingRequiredHeader(t *testing.T) {
	_, err := ParseTable("Date,Summary\n2025-01-01,hello\n")

	var missing *MissingRequiredFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "title/slug", missing.Field)
}

func TestParseTable_BlankRowsSkipped(t *testing.T) {
	rows, err := ParseTable("Title,Slug\nA,a\n,,\n  ,  \nB,b\n")

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "A", rows[0].Title)
	assert.Equal(t, "B", rows[1].Title)
}

func TestParseTable_RowsWithoutTitleOrSlugDropped(t *testing.T) {
	rows, err := ParseTable("Title,Slug,Date\nA,a,2025-01-01\n,,2025-01-08\nB,b,2025-01-15\n")

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].Slug)
	assert.Equal(t, "b", rows[1].Slug)
}

func TestParseTable_TitleOnlyRowSurvives(t *testing.T) {
	rows, err := ParseTable("Title,Slug\nOnly a title,\n")

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Only a title", rows[0].Title)
	assert.Equal(t, "", rows[0].Slug)
}

func TestParseTable_CaseInsensitiveHeaders(t *testing.T) {
	upper, err := ParseTable("Title,Slug,Korean Link\nA,a,http://x/1\n")
	require.NoError(t, err)

	lower, err := ParseTable("title,slug,korean link\nA,a,http://x/1\n")
	require.NoError(t, err)

	assert.Equal(t, upper, lower)
	assert.Equal(t, "http://x/1", upper[0].KoreanLink)
}

func TestParseTable_RaggedRowsPadWithEmpty(t *testing.T) {
	rows, err := ParseTable("Title,Slug,Date,Summary\nShort,short\n")

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Date)
	assert.Equal(t, "", rows[0].Summary)
}

func TestParseTable_TrimsFieldsAndHandlesCRLF(t *testing.T) {
	rows, err := ParseTable("Title,Slug\r\n  Padded  , padded-slug \r\n")

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Padded", rows[0].Title)
	assert.Equal(t, "padded-slug", rows[0].Slug)
}

func TestParseTable_HeaderOnlyYieldsNoRows(t *testing.T) {
	rows, err := ParseTable("Title,Slug,Date\n")

	require.NoError(t, err)
	assert.Empty(t, rows)
}
