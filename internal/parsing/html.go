package parsing

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockElements get a line break after their text so paragraphs stay separate.
const blockElements = "p, div, li, h1, h2, h3, h4, h5, h6, tr, br"

// StripHTML extracts readable text from an HTML fragment or document.
func StripHTML(content string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript").Remove()
	doc.Find(blockElements).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return NormalizeText(doc.Text()), nil
}
