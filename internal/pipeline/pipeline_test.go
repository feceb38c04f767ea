package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/briefops/intelbrief/internal/delivery"
	"github.com/briefops/intelbrief/internal/geo"
	"github.com/briefops/intelbrief/internal/llm"
	"github.com/briefops/intelbrief/internal/model"
	"github.com/briefops/intelbrief/internal/search"
)

type stubRecognizer struct{}

func (stubRecognizer) Entities(text string) ([]geo.Entity, error) { return nil, nil }

func testThemes() []model.Theme {
	return []model.Theme{
		{Name: "Federal Policy", Keywords: []string{"CHIPS Act"}},
		{Name: "University Research", Keywords: []string{"University"}},
	}
}

func newPipeline(t *testing.T, provider search.Provider, outputDir string) *Pipeline {
	t.Helper()
	cfg := collectorConfig()
	cfg.Themes = testThemes()
	return New(cfg,
		NewCollector(cfg, provider, nil),
		geo.NewResolver(stubRecognizer{}, nil, 0, 0),
		nil, // keyword-only ranking
		llm.NewGenerator(model.LLMConfig{}),
		delivery.NewDocumentSink(outputDir),
	)
}

// TestRun_Funnel drives the whole pipeline through one request: 20 search
// results, of which 3 fail to fetch and 2 extract to nothing; of the 15
// collected, 5 are older than the week window and 4 more carry no query
// keyword. The 6 survivors split 4/2 across the two themes.
func TestRun_Funnel(t *testing.T) {
	chipsBody := "Congress moved to expand the CHIPS Act incentives for domestic semiconductor manufacturing plants."
	uniBody := "The state University announced a new research initiative funded by federal grants this week."
	noneBody := "Local officials discussed road construction projects and municipal budget planning for next year."

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/robots.txt":
			http.NotFound(w, r)
		case strings.HasPrefix(r.URL.Path, "/fail/"):
			w.WriteHeader(http.StatusBadGateway)
		case strings.HasPrefix(r.URL.Path, "/empty/"):
			_, _ = fmt.Fprint(w, "<html><body></body></html>")
		case strings.HasPrefix(r.URL.Path, "/chips/"):
			_, _ = fmt.Fprint(w, pageHTML(chipsBody))
		case strings.HasPrefix(r.URL.Path, "/uni/"):
			_, _ = fmt.Fprint(w, pageHTML(uniBody))
		default:
			_, _ = fmt.Fprint(w, pageHTML(noneBody))
		}
	}))
	defer server.Close()

	recent := time.Now().UTC().AddDate(0, 0, -2).Format(time.RFC3339)
	stale := time.Now().UTC().AddDate(0, 0, -20).Format(time.RFC3339)

	var results []search.Result
	add := func(prefix string, n int, date string) {
		for i := 0; i < n; i++ {
			results = append(results, search.Result{
				Title: fmt.Sprintf("story %s %d", prefix, i),
				Link:  fmt.Sprintf("%s/%s/%d", server.URL, prefix, i),
				Date:  date,
			})
		}
	}
	add("fail", 3, recent)
	add("empty", 2, recent)
	add("old", 5, stale)
	add("none", 4, recent)
	add("chips", 4, recent)
	add("uni", 2, recent)
	if len(results) != 20 {
		t.Fatalf("test setup broken: %d results", len(results))
	}

	outputDir := t.TempDir()
	p := newPipeline(t, &fakeProvider{results: results}, outputDir)

	result, err := p.Run(context.Background(), model.SearchRequest{
		Query:    "q",
		Keywords: []string{"CHIPS Act", "University"},
		Window:   model.WindowWeek,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Collected != 15 {
		t.Errorf("Collected = %d, want 15", result.Collected)
	}
	if result.Filtered != 6 {
		t.Errorf("Filtered = %d, want 6", result.Filtered)
	}

	if got := len(result.Classified.Themes["Federal Policy"].Articles); got != 4 {
		t.Errorf("Federal Policy theme has %d articles, want 4", got)
	}
	if got := len(result.Classified.Themes["University Research"].Articles); got != 2 {
		t.Errorf("University Research theme has %d articles, want 2", got)
	}

	if result.Outcome != "report delivered" {
		t.Fatalf("Outcome = %q, want report delivered", result.Outcome)
	}
	if result.Report == nil || len(result.Report.Sections) != 2 {
		t.Fatalf("expected 2 report sections, got %+v", result.Report)
	}
	// Sections come out in theme-table order regardless of map iteration.
	if result.Report.Sections[0].Theme != "Federal Policy" {
		t.Errorf("first section = %q, want Federal Policy", result.Report.Sections[0].Theme)
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		t.Fatalf("reading output dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 delivered document, got %d", len(entries))
	}
	if len(result.Delivered) != 1 || !strings.Contains(result.Delivered[0], "Success") {
		t.Errorf("unexpected delivery statuses: %v", result.Delivered)
	}
}

func TestRun_NoArticlesCollected(t *testing.T) {
	p := newPipeline(t, &fakeProvider{}, t.TempDir())
	result, err := p.Run(context.Background(), model.SearchRequest{Query: "q"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Outcome != "no articles collected" {
		t.Errorf("Outcome = %q", result.Outcome)
	}
	if result.Report != nil {
		t.Error("expected nil report")
	}
}

func TestRun_NothingSurvivesFilter(t *testing.T) {
	server := newArticleServer(t)
	defer server.Close()

	p := newPipeline(t, &fakeProvider{results: []search.Result{
		{Title: "story", Link: server.URL + "/ok/1", Date: "2020-01-01T00:00:00Z"},
	}}, t.TempDir())

	result, err := p.Run(context.Background(), model.SearchRequest{
		Query:    "q",
		Keywords: []string{"university"},
		Window:   model.WindowWeek,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Collected != 1 || result.Filtered != 0 {
		t.Errorf("funnel = %d/%d, want 1/0", result.Collected, result.Filtered)
	}
	if result.Outcome != "no articles survived filtering" {
		t.Errorf("Outcome = %q", result.Outcome)
	}
}

// A substring keyword hit that is not a whole-word theme hit passes the
// filter but produces no themed articles.
func TestRun_NoThemedArticles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		_, _ = fmt.Fprint(w, pageHTML("A universitywide memo circulated about parking changes on campus."))
	}))
	defer server.Close()

	p := newPipeline(t, &fakeProvider{results: []search.Result{
		{Title: "story", Link: server.URL + "/a/1"},
	}}, t.TempDir())

	result, err := p.Run(context.Background(), model.SearchRequest{
		Query:    "q",
		Keywords: []string{"University"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Filtered != 1 {
		t.Fatalf("Filtered = %d, want 1", result.Filtered)
	}
	if result.Outcome != "no themed articles to summarize" {
		t.Errorf("Outcome = %q", result.Outcome)
	}
}
