// Package pipeline orchestrates one intelligence run: search, concurrent
// article retrieval and extraction, date/keyword filtering, geography and
// keyword enrichment, theme classification, briefing generation and delivery.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/briefops/intelbrief/internal/delivery"
	"github.com/briefops/intelbrief/internal/geo"
	"github.com/briefops/intelbrief/internal/llm"
	"github.com/briefops/intelbrief/internal/model"
	"github.com/briefops/intelbrief/internal/nlp"
	"github.com/briefops/intelbrief/internal/report"
)

// Pipeline owns the stages of a run. Stages are dependency-injected once per
// process and shared across scheduled runs; none of them keeps per-run state.
type Pipeline struct {
	collector  *Collector
	resolver   *geo.Resolver
	classifier *nlp.Classifier
	scorer     *nlp.Scorer
	generator  *llm.Generator
	sinks      []delivery.Sink
	themes     []model.Theme
	verbose    bool
	now        func() time.Time // injectable for tests
}

// New wires a pipeline from its stages. embedder may be nil; relevance ranking
// then uses the keyword component alone.
func New(cfg *model.Config, collector *Collector, resolver *geo.Resolver, embedder nlp.Embedder, generator *llm.Generator, sinks ...delivery.Sink) *Pipeline {
	universe := model.KeywordUniverse(cfg.Themes)
	return &Pipeline{
		collector:  collector,
		resolver:   resolver,
		classifier: nlp.NewClassifier(cfg.Themes, universe),
		scorer:     nlp.NewScorer(nil, embedder),
		generator:  generator,
		sinks:      sinks,
		themes:     cfg.Themes,
		verbose:    cfg.Output.Verbose,
		now:        time.Now,
	}
}

// RunResult summarizes one run. An empty stage is not an error: Outcome says
// why the run stopped and Report stays nil.
type RunResult struct {
	Collected  int
	Filtered   int
	Classified nlp.Classification
	Report     *report.Report
	Delivered  []string
	Outcome    string
}

// Run executes the full pipeline for one search request.
func (p *Pipeline) Run(ctx context.Context, req model.SearchRequest) (*RunResult, error) {
	result := &RunResult{}

	// Phase 1+2: search call, then the concurrent retrieval fan-out.
	articles := p.collector.Collect(ctx, req)
	result.Collected = len(articles)
	if len(articles) == 0 {
		result.Outcome = "no articles collected"
		return result, nil
	}

	// Date window and keyword gate run before any enrichment.
	filter := NewFilter(req.Window, req.Keywords)
	articles = filter.Apply(articles)
	result.Filtered = len(articles)
	if len(articles) == 0 {
		result.Outcome = "no articles survived filtering"
		return result, nil
	}

	// Enrichment is pure and per-article; failures degrade to defaults.
	for i := range articles {
		articles[i].Region = p.resolver.Resolve(articles[i].Body)
		articles[i].Keywords = nlp.ExtractKeywords(articles[i].Body)
	}

	result.Classified = p.classifier.Classify(articles)
	if len(result.Classified.Themes) == 0 {
		result.Outcome = "no themed articles to summarize"
		return result, nil
	}

	// Rank each theme's articles by blended relevance so the most pertinent
	// ones lead the briefing prompt. Ranking never drops an article.
	briefings := make(map[string]string)
	for name, themeSet := range result.Classified.Themes {
		p.rank(ctx, themeSet)
		briefings[name] = p.generator.ThemeBriefing(ctx, themeSet)
	}

	result.Report = report.Assemble(p.now(), p.themes, result.Classified, briefings)
	if result.Report.Empty() {
		result.Outcome = "no summaries produced"
		result.Report = nil
		return result, nil
	}

	content := result.Report.Markdown()
	for _, sink := range p.sinks {
		status := sink.Deliver(ctx, result.Report.Title, content)
		result.Delivered = append(result.Delivered, fmt.Sprintf("%s: %s", sink.Name(), status))
		if p.verbose {
			fmt.Fprintf(os.Stderr, "%s: %s\n", sink.Name(), status)
		}
	}

	result.Outcome = "report delivered"
	return result, nil
}

// rank orders a theme's articles by combined relevance, most relevant first.
// The sort is stable so equal scores keep collection order.
func (p *Pipeline) rank(ctx context.Context, theme nlp.ThemeSet) {
	if len(theme.Articles) < 2 {
		return
	}

	type scored struct {
		article model.Article
		score   float64
	}
	ranked := make([]scored, len(theme.Articles))
	for i, a := range theme.Articles {
		ranked[i] = scored{article: a, score: p.scorer.CombinedScore(ctx, a.SearchText(), theme.Keywords)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	for i := range ranked {
		theme.Articles[i] = ranked[i].article
	}
}
