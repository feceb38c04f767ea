package pipeline

import (
	"strings"
	"testing"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head><title>Funding news</title><script>var x = 1;</script></head>
<body>
<nav>Home | News | About</nav>
<article>
<h1>Federal grant program expands</h1>
<p>The federal government announced a major expansion of research funding for universities across several states.</p>
<p>Officials said the program will prioritize semiconductor manufacturing hubs and regional economic development.</p>
<p>Awards are expected to be announced later this year after a competitive review process concludes.</p>
</article>
<footer>Copyright 2026</footer>
</body>
</html>`

func TestExtractText_Article(t *testing.T) {
	text := ExtractText(articleHTML, "https://example.org/news/grants")
	if text == "" {
		t.Fatal("expected extracted text")
	}
	if !strings.Contains(text, "expansion of research funding") {
		t.Errorf("body text missing from extraction: %q", text)
	}
	if strings.Contains(text, "var x = 1") {
		t.Errorf("script content leaked into extraction: %q", text)
	}
}

func TestExtractText_ParagraphFallback(t *testing.T) {
	// Minimal markup readability tends to reject; the selector walk should
	// still find the paragraphs.
	html := `<html><body>
<p>The university received a research grant to expand its semiconductor lab this fall semester.</p>
<p>Local officials welcomed the investment as a boost for the regional economy and workforce.</p>
</body></html>`

	text := ExtractText(html, "https://example.org/short")
	if !strings.Contains(text, "research grant") {
		t.Errorf("expected paragraph fallback to extract text, got %q", text)
	}
}

func TestExtractText_Empty(t *testing.T) {
	if got := ExtractText("", "https://example.org"); got != "" {
		t.Errorf("expected empty result for empty HTML, got %q", got)
	}
	if got := ExtractText("<html><body><script>x</script></body></html>", "https://example.org"); got != "" {
		t.Errorf("expected empty result for contentless page, got %q", got)
	}
}

func TestCleanText(t *testing.T) {
	in := "  line one   with   gaps  \n\n\n line two \n"
	want := "line one with gaps\nline two"
	if got := cleanText(in); got != want {
		t.Errorf("cleanText = %q, want %q", got, want)
	}
}
