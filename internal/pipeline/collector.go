package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briefops/intelbrief/internal/cache"
	"github.com/briefops/intelbrief/internal/model"
	"github.com/briefops/intelbrief/internal/search"
	"github.com/briefops/intelbrief/internal/util"
	"github.com/briefops/intelbrief/internal/worker"
)

// Collector turns one search request into a batch of article records: one
// provider call, then a concurrent fan-out of page retrievals. A retrieval or
// extraction failure for one URL never aborts the batch; that article is
// dropped and the rest continue.
type Collector struct {
	provider     search.Provider
	fetcher      *Fetcher
	robots       *util.RobotsChecker
	limiter      *worker.Limiter
	pages        *cache.PageCache // nil when caching is disabled
	fetchTimeout time.Duration
	workers      int
	verbose      bool
}

// NewCollector wires a collector from its components. pages may be nil.
func NewCollector(cfg *model.Config, provider search.Provider, pages *cache.PageCache) *Collector {
	return &Collector{
		provider:     provider,
		fetcher:      NewFetcher(cfg.HTTP.FetchTimeout, cfg.HTTP.UserAgent, cfg.HTTP.MaxBodyBytes),
		robots:       util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.SearchTimeout),
		limiter:      worker.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
		pages:        pages,
		fetchTimeout: cfg.HTTP.FetchTimeout,
		workers:      cfg.Concurrency.FetchWorkers,
		verbose:      cfg.Output.Verbose,
	}
}

// fetchJob retrieves and extracts one search result.
type fetchJob struct {
	collector *Collector
	result    search.Result
}

// fetchJobResult carries either an article or a per-item failure marker.
type fetchJobResult struct {
	article model.Article
	err     error
}

func (r *fetchJobResult) GetError() error { return r.err }

// Execute fetches the page, extracts its body text and builds the article
// record. Every failure path returns a marker, never a panic or an abort.
func (j *fetchJob) Execute(ctx context.Context) worker.Result {
	c := j.collector
	link := j.result.Link

	if !c.robots.IsAllowed(ctx, link) {
		return &fetchJobResult{err: fmt.Errorf("%s: disallowed by robots.txt", link)}
	}

	body, cached := "", false
	if c.pages != nil {
		body, cached = c.pages.Get(link)
	}

	if !cached {
		if err := c.limiter.Wait(ctx, link); err != nil {
			return &fetchJobResult{err: fmt.Errorf("%s: rate limit: %w", link, err)}
		}

		fetchCtx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
		defer cancel()

		page, err := c.fetcher.Fetch(fetchCtx, link)
		if err != nil {
			return &fetchJobResult{err: fmt.Errorf("%s: %w", link, err)}
		}

		body = ExtractText(page.HTML, page.FinalURL)
		if c.pages != nil && body != "" {
			c.pages.Set(link, body)
		}
	}

	if body == "" {
		return &fetchJobResult{err: fmt.Errorf("%s: empty extraction", link)}
	}

	title := j.result.Title
	if title == "" {
		title = "No Title"
	}

	source := j.result.Source
	if source == "" {
		source = HostLabel(link)
	}

	return &fetchJobResult{article: model.Article{
		Title:     title,
		Link:      link,
		Published: ParsePublished(j.result.Date),
		Body:      body,
		Source:    source,
		Region:    "Uncategorized",
	}}
}

// Collect runs the two network phases for one request. A provider failure or
// an empty result list yields an empty batch; the caller decides whether that
// ends the run.
func (c *Collector) Collect(ctx context.Context, req model.SearchRequest) []model.Article {
	results, err := c.provider.Search(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: search failed: %v\n", err)
		return nil
	}
	if len(results) == 0 {
		if c.verbose {
			fmt.Fprintf(os.Stderr, "No results found for query: %q\n", req.Query)
		}
		return nil
	}

	pool := worker.NewPool(c.workers)
	pool.Start()
	for _, result := range results {
		pool.Submit(&fetchJob{collector: c, result: result})
	}

	var articles []model.Article
	seen := make(map[string]bool)
	for _, res := range pool.Wait() {
		fr := res.(*fetchJobResult)
		if fr.err != nil {
			if c.verbose {
				fmt.Fprintf(os.Stderr, "Warning: dropped article: %v\n", fr.err)
			}
			continue
		}
		if seen[fr.article.Link] {
			continue
		}
		seen[fr.article.Link] = true
		articles = append(articles, fr.article)
	}

	return articles
}
