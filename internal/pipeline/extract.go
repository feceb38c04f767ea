package pipeline

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// ExtractText pulls the primary readable text out of a fetched page,
// discarding boilerplate, scripts and markup. Readability runs first; when it
// yields nothing useful, a selector-based paragraph walk is tried. An empty
// return means the article should be dropped.
func ExtractText(html, pageURL string) string {
	html = strings.TrimSpace(html)
	if html == "" {
		return ""
	}

	if text := extractReadable(html, pageURL); text != "" {
		return text
	}
	return extractParagraphs(html)
}

// extractReadable runs a readability-style extractor over the document.
func extractReadable(html, pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}

	article, err := readability.FromReader(strings.NewReader(html), parsed)
	if err != nil {
		return ""
	}

	return cleanText(article.TextContent)
}

// paragraph selectors tried in order, most specific first
var paragraphSelectors = []string{
	"article p",
	".article-body p",
	".article-content p",
	".content p",
	"main p",
	"p",
}

// extractParagraphs collects paragraph text with goquery when readability
// fails, skipping fragments too short to be body text.
func extractParagraphs(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	doc.Find("script, style, noscript").Remove()

	for _, selector := range paragraphSelectors {
		var paragraphs []string
		doc.Find(selector).Each(func(i int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if len(text) > 10 {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) > 0 {
			return cleanText(strings.Join(paragraphs, "\n\n"))
		}
	}

	return ""
}

// cleanText normalizes whitespace without destroying paragraph breaks.
func cleanText(text string) string {
	lines := strings.Split(text, "\n")
	var kept []string
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
