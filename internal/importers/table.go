package importers

import "strings"

// RawRow is one surviving data row of the sheet, with each logical column
// already resolved through its header aliases. Rows are built fresh per line
// and consumed immediately by the projector.
type RawRow struct {
	Title      string
	Slug       string
	Date       string
	Summary    string
	KoreanLink string
}

// Accepted header spellings per logical column, in match priority order.
// Headers are lowercased before matching, so each entry also covers its
// exact-case form; upstream sheets are not guaranteed to normalize case.
var (
	titleAliases      = []string{"title", "chapter title"}
	slugAliases       = []string{"slug"}
	dateAliases       = []string{"date", "published", "publish date"}
	summaryAliases    = []string{"summary", "description"}
	koreanLinkAliases = []string{"korean link", "koreanlink", "korean url"}
)

// columnIndex maps each logical column to its position in the header row,
// or -1 when no alias matched. Resolved once per parse so data rows never
// do string-keyed lookups.
type columnIndex struct {
	title      int
	slug       int
	date       int
	summary    int
	koreanLink int
}

func resolveColumns(header []string) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, h := range header {
		positions[strings.ToLower(strings.TrimSpace(h))] = i
	}

	lookup := func(aliases []string) int {
		for _, alias := range aliases {
			if idx, ok := positions[alias]; ok {
				return idx
			}
		}
		return -1
	}

	cols := columnIndex{
		title:      lookup(titleAliases),
		slug:       lookup(slugAliases),
		date:       lookup(dateAliases),
		summary:    lookup(summaryAliases),
		koreanLink: lookup(koreanLinkAliases),
	}

	// A sheet without a title or slug column can only ever yield empty
	// records. Fail fast instead of silently producing them.
	if cols.title < 0 && cols.slug < 0 {
		return cols, &MissingRequiredFieldError{Field: "title/slug"}
	}

	return cols, nil
}

// field returns the trimmed token at position idx, or empty when the column
// is absent or the row is too short.
func field(tokens []string, idx int) string {
	if idx < 0 || idx >= len(tokens) {
		return ""
	}
	return strings.TrimSpace(tokens[idx])
}

// blankRow reports whether every tokenized field is empty or whitespace.
func blankRow(tokens []string) bool {
	for _, t := range tokens {
		if strings.TrimSpace(t) != "" {
			return false
		}
	}
	return true
}

// ParseTable parses a full sheet export into surviving rows.
//
// The first non-blank line is the header row. Fully blank data rows are
// skipped, and rows with neither a title nor a slug are silently dropped;
// that filter is content-level validation, not an error. The returned rows
// keep input order, which downstream numbering depends on.
func ParseTable(text string) ([]RawRow, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(strings.TrimSuffix(line, "\r")) != "" {
			lines = append(lines, strings.TrimSuffix(line, "\r"))
		}
	}

	if len(lines) == 0 {
		return nil, ErrEmptyInput
	}

	cols, err := resolveColumns(tokenizeLine(lines[0]))
	if err != nil {
		return nil, err
	}

	var rows []RawRow
	for _, line := range lines[1:] {
		tokens := tokenizeLine(line)
		if blankRow(tokens) {
			continue
		}

		row := RawRow{
			Title:      field(tokens, cols.title),
			Slug:       field(tokens, cols.slug),
			Date:       field(tokens, cols.date),
			Summary:    field(tokens, cols.summary),
			KoreanLink: field(tokens, cols.koreanLink),
		}

		if row.Title == "" && row.Slug == "" {
			continue
		}

		rows = append(rows, row)
	}

	return rows, nil
}
