package nlp

import (
	"strings"
	"testing"
)

func TestExtractKeywords_ShortBody(t *testing.T) {
	// Exactly 19 non-whitespace characters is below the minimum.
	body := "abcdefghijklmnopqrs"
	if got := len(body); got != 19 {
		t.Fatalf("test body should have 19 characters, got %d", got)
	}
	if kws := ExtractKeywords(body); kws != nil {
		t.Errorf("expected nil for short body, got %v", kws)
	}
}

func TestExtractKeywords_WhitespaceDoesNotCount(t *testing.T) {
	body := "abcde fghij klmno pqrs" // still 19 non-whitespace characters
	if kws := ExtractKeywords(body); kws != nil {
		t.Errorf("expected nil, got %v", kws)
	}
}

func TestExtractKeywords_AllStopwords(t *testing.T) {
	body := "the and with from this that would should because through"
	if kws := ExtractKeywords(body); kws != nil {
		t.Errorf("expected nil for all-stopword body, got %v", kws)
	}
}

func TestExtractKeywords_MostFrequentFirst(t *testing.T) {
	body := strings.Repeat("semiconductor ", 5) +
		strings.Repeat("funding ", 3) +
		"university research grants policy"

	kws := ExtractKeywords(body)
	if len(kws) == 0 {
		t.Fatal("expected keywords")
	}
	if kws[0] != "semiconductor" {
		t.Errorf("expected most frequent term first, got %v", kws)
	}
	if kws[1] != "funding" {
		t.Errorf("expected second most frequent term next, got %v", kws)
	}
}

func TestExtractKeywords_TopFiveOnly(t *testing.T) {
	body := "alpha beta gamma delta epsilon zeta eta theta iota kappa lambda mu"
	kws := ExtractKeywords(body)
	if len(kws) != 5 {
		t.Errorf("expected 5 keywords, got %d: %v", len(kws), kws)
	}
}

func TestExtractKeywords_ExcludesStopwords(t *testing.T) {
	body := "the the the the the semiconductor industry is growing fast again"
	for _, kw := range ExtractKeywords(body) {
		if stopWords[kw] {
			t.Errorf("stop word %q leaked into keywords", kw)
		}
	}
}
