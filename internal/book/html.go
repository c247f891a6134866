package book

import (
	"regexp"
	"strings"
)

var (
	emphasisOpen  = regexp.MustCompile(`(?i)<(em|i)(\s[^>]*)?>`)
	emphasisClose = regexp.MustCompile(`(?i)</(em|i)>`)
	strongOpen    = regexp.MustCompile(`(?i)<(strong|b)(\s[^>]*)?>`)
	strongClose   = regexp.MustCompile(`(?i)</(strong|b)>`)
	lineBreak     = regexp.MustCompile(`(?i)<br\s*/?>`)
	horizontalBar = regexp.MustCompile(`(?i)<hr\s*/?>`)
	paragraphOpen = regexp.MustCompile(`(?i)<p(\s[^>]*)?>`)
	paragraphEnd  = regexp.MustCompile(`(?i)</p>`)
	anyTag        = regexp.MustCompile(`<[^>]*>`)
	excessBlank   = regexp.MustCompile(`\n{3,}`)
)

var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&hellip;", "…",
)

// HTMLToMarkdown converts chapter-content HTML into the subset of Markdown
// the typesetting tool consumes. Tags without a mapping are dropped, not
// escaped; chapter content is trusted project output, not arbitrary input.
func HTMLToMarkdown(html string) string {
	text := html

	text = emphasisOpen.ReplaceAllString(text, "*")
	text = emphasisClose.ReplaceAllString(text, "*")
	text = strongOpen.ReplaceAllString(text, "**")
	text = strongClose.ReplaceAllString(text, "**")
	text = lineBreak.ReplaceAllString(text, "\n")
	text = horizontalBar.ReplaceAllString(text, "\n\n* * *\n\n")
	text = paragraphOpen.ReplaceAllString(text, "")
	text = paragraphEnd.ReplaceAllString(text, "\n\n")
	text = anyTag.ReplaceAllString(text, "")

	text = entityReplacer.Replace(text)
	text = excessBlank.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
