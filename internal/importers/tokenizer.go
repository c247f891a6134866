package importers

import "strings"

// tokenizeLine splits one line of sheet text on unescaped commas.
//
// A double quote opens a quoted span: commas inside the span are literal, and
// a doubled quote ("") is an escaped literal quote character. The quote state
// is scoped to the line, so an unterminated quote is implicitly closed at end
// of line rather than treated as an error; exported spreadsheets reliably
// close quotes per line, and tolerating the stray case beats rejecting a row.
//
// Surrounding quote delimiters are stripped and escapes unescaped. No
// field-count validation happens here; ragged rows are resolved positionally
// against the header later.
func tokenizeLine(line string) []string {
	fields := make([]string, 0, 8)
	var current strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		switch {
		case ch == '"' && inQuotes:
			if i+1 < len(runes) && runes[i+1] == '"' {
				// Escaped literal quote
				current.WriteRune('"')
				i++
			} else {
				inQuotes = false
			}
		case ch == '"':
			inQuotes = true
		case ch == ',' && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}

	fields = append(fields, current.String())
	return fields
}
