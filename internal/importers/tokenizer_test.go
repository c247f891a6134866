package importers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeLine_SplitsOnCommas(t *testing.T) {
	fields := tokenizeLine("a,b,c")
	assert.Equal(t, []string{"a", "b", "c"}, fields)
}

func TestTokenizeLine_QuotedCommaIsNotASeparator(t *testing.T) {
	fields := tokenizeLine(`"a, b",c`)
	assert.Equal(t, []string{"a, b", "c"}, fields)
}

func TestTokenizeLine_EscapedQuotes(t *testing.T) {
	fields := tokenizeLine(`"she said ""hi""",next`)
	assert.Equal(t, []string{`she said "hi"`, "next"}, fields)
}

func TestTokenizeLine_UnterminatedQuoteClosesAtEndOfLine(t *testing.T) {
	fields := tokenizeLine(`a,"b, c`)
	assert.Equal(t, []string{"a", "b, c"}, fields)
}

func TestTokenizeLine_EmptyFields(t *testing.T) {
	fields := tokenizeLine(",a,,")
	assert.Equal(t, []string{"", "a", "", ""}, fields)
}

func TestTokenizeLine_QuoteInMiddleOfField(t *testing.T) {
	// A quote opening mid-field still protects the following comma.
	fields := tokenizeLine(`pre"in, quotes"post,b`)
	assert.Equal(t, []string{"prein, quotespost", "b"}, fields)
}

func TestTokenizeLine_SingleField(t *testing.T) {
	assert.Equal(t, []string{"only"}, tokenizeLine("only"))
	assert.Equal(t, []string{""}, tokenizeLine(""))
}
