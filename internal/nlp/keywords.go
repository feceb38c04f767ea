package nlp

import (
	"sort"
	"strings"
	"unicode"
)

const (
	// minBodyLength is the minimum number of non-whitespace characters a
	// body needs before extraction is attempted.
	minBodyLength = 20

	// vocabularyCap bounds the working vocabulary to the highest-frequency
	// terms.
	vocabularyCap = 100

	// topTerms is how many terms ExtractKeywords returns.
	topTerms = 5
)

// ExtractKeywords returns the top salient terms of a document by
// term-frequency weight, stop words excluded, in descending relevance order.
// Bodies below the minimum length, or whose tokens are all stop words, yield
// nil; that is not an error.
func ExtractKeywords(body string) []string {
	if nonWhitespaceLen(body) < minBodyLength {
		return nil
	}

	counts := make(map[string]int)
	for _, token := range tokenize(body) {
		if stopWords[token] {
			continue
		}
		counts[token]++
	}
	if len(counts) == 0 {
		return nil
	}

	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}

	// Highest frequency first; ties break alphabetically so extraction is
	// deterministic.
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})

	if len(terms) > vocabularyCap {
		terms = terms[:vocabularyCap]
	}
	if len(terms) > topTerms {
		terms = terms[:topTerms]
	}

	return terms
}

// tokenize lowercases and splits on non-letter/digit runes, dropping tokens
// shorter than two characters.
func tokenize(text string) []string {
	var tokens []string
	for _, field := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if len(field) >= 2 {
			tokens = append(tokens, field)
		}
	}
	return tokens
}

func nonWhitespaceLen(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
