package nlp

import (
	"context"
	"math"
	"strings"
)

// Embedder turns text into a sentence embedding. The production
// implementation lives in the llm package; tests inject fakes.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Scorer computes the blended article-theme relevance score. The score is
// advisory, for ranking and threshold tuning; it never alters the hard
// keyword gate applied by the classifier.
type Scorer struct {
	weights  map[string]float64 // lowercase keyword -> weight, default 1.0
	embedder Embedder           // nil disables the semantic component
}

// NewScorer creates a scorer. weights may be nil; embedder may be nil, in
// which case the semantic component is zero.
func NewScorer(weights map[string]float64, embedder Embedder) *Scorer {
	normalized := make(map[string]float64, len(weights))
	for kw, w := range weights {
		normalized[strings.ToLower(kw)] = w
	}
	return &Scorer{weights: normalized, embedder: embedder}
}

// WeightedKeywordScore sums the weights of theme keywords present in the text
// as case-insensitive substrings.
func (s *Scorer) WeightedKeywordScore(text string, keywords []string) float64 {
	score := 0.0
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		kwLower := strings.ToLower(kw)
		if !strings.Contains(lower, kwLower) {
			continue
		}
		weight, ok := s.weights[kwLower]
		if !ok {
			weight = 1.0
		}
		score += weight
	}
	return score
}

// SemanticScore is the cosine similarity between embeddings of the theme text
// and the article text. Embedding failures degrade to zero.
func (s *Scorer) SemanticScore(ctx context.Context, themeText, articleText string) float64 {
	if s.embedder == nil {
		return 0
	}

	themeVec, err := s.embedder.Embed(ctx, themeText)
	if err != nil {
		return 0
	}
	articleVec, err := s.embedder.Embed(ctx, articleText)
	if err != nil {
		return 0
	}

	return CosineSimilarity(themeVec, articleVec)
}

// CombinedScore blends both signals, weighting direct keyword matches above
// semantic similarity.
func (s *Scorer) CombinedScore(ctx context.Context, articleText string, themeKeywords []string) float64 {
	keywordScore := s.WeightedKeywordScore(articleText, themeKeywords)
	semantic := s.SemanticScore(ctx, strings.Join(themeKeywords, " "), articleText)
	return 0.6*keywordScore + 0.4*semantic
}

// CosineSimilarity returns the cosine of the angle between two vectors, in
// [-1, 1]. Mismatched or zero-length vectors yield 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
