package coverletters

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	markupPattern = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)
	blankRuns     = regexp.MustCompile(`\n{3,}`)
	spaceRuns     = regexp.MustCompile(`[ \t]+`)
)

// blockTags end a line when a pasted posting is flattened to text.
const blockTags = "p, div, li, br, h1, h2, h3, h4, h5, h6, tr, section, article"

// plainText flattens job descriptions pasted from job boards as HTML.
// Text without markup is returned trimmed and otherwise untouched.
func plainText(s string) string {
	s = strings.TrimSpace(s)
	if !markupPattern.MatchString(s) {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	doc.Find("script, style, noscript").Remove()
	doc.Find(blockTags).Each(func(_ int, sel *goquery.Selection) {
		sel.AppendHtml("\n")
	})
	doc.Find("li").Each(func(_ int, sel *goquery.Selection) {
		sel.PrependHtml("- ")
	})

	lines := strings.Split(doc.Text(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRuns.ReplaceAllString(line, " "))
	}
	out := strings.Join(lines, "\n")
	return strings.TrimSpace(blankRuns.ReplaceAllString(out, "\n\n"))
}
