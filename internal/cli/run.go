package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/briefops/intelbrief/internal/cache"
	"github.com/briefops/intelbrief/internal/delivery"
	"github.com/briefops/intelbrief/internal/geo"
	"github.com/briefops/intelbrief/internal/llm"
	"github.com/briefops/intelbrief/internal/model"
	"github.com/briefops/intelbrief/internal/nlp"
	"github.com/briefops/intelbrief/internal/pipeline"
	"github.com/briefops/intelbrief/internal/search"
)

var (
	keywordsFile string
	searchKind   string
	maxResults   int
	window       string
	runTimeout   time.Duration
	outputDir    string
	recipient    string
	geoTable     string
	noCache      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one collection-and-briefing run",
	Long: `Run executes the full pipeline once:
- Compose a search query from the tracked keywords
- Retrieve and extract candidate articles concurrently
- Filter by recency window and keyword relevance
- Resolve regions, extract salient terms, classify into themes
- Generate per-theme briefings and deliver the consolidated report

Example:
  intelbrief run
  intelbrief run --keywords keywords.csv --window week --results 20
  intelbrief run --recipient analyst@example.org --output-dir ./briefings`,
	Args: cobra.NoArgs,
	RunE: runOnce,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&keywordsFile, "keywords", "keywords.csv", "tracked keywords file (CSV with a keyword column, or one per line)")
	runCmd.Flags().StringVar(&searchKind, "kind", "news", "search vertical (news, web)")
	runCmd.Flags().IntVar(&maxResults, "results", 20, "maximum search results to retrieve")
	runCmd.Flags().StringVar(&window, "window", "week", "recency window (day, week, month, none)")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 5*time.Minute, "overall run timeout")
	runCmd.Flags().StringVar(&outputDir, "output-dir", "./briefings", "directory for the report document")
	runCmd.Flags().StringVar(&recipient, "recipient", "", "email recipient (empty skips email delivery)")
	runCmd.Flags().StringVar(&geoTable, "geo-table", "city_to_msa_mapping.csv", "City,MSA lookup CSV")
	runCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the page cache (force fresh fetches)")
}

func runOnce(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	p, req, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	return executeRun(ctx, p, req)
}

// buildConfig layers the run flags and required environment secrets over the
// defaults.
func buildConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose
	cfg.Search.KeywordsFile = keywordsFile
	cfg.Search.Kind = model.SearchKind(searchKind)
	cfg.Search.MaxResults = maxResults
	cfg.Search.Window = parseWindow(window)
	cfg.Delivery.OutputDir = outputDir
	cfg.Delivery.Recipient = recipient
	cfg.Geo.TablePath = geoTable
	cfg.Cache.Enabled = !noCache

	// Required secrets are checked up front so a misconfigured scheduled run
	// fails at startup, not mid-pipeline.
	cfg.Search.APIKey = os.Getenv("SERPER_API_KEY")
	if cfg.Search.APIKey == "" {
		return nil, fmt.Errorf("SERPER_API_KEY environment variable not set")
	}
	cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.Delivery.SMTP.Host = os.Getenv("SMTP_HOST")
	cfg.Delivery.SMTP.Username = os.Getenv("SMTP_USERNAME")
	cfg.Delivery.SMTP.Password = os.Getenv("SMTP_PASSWORD")

	return cfg, nil
}

// buildPipeline constructs the process-wide components and the search request
// for one run.
func buildPipeline(cfg *model.Config) (*pipeline.Pipeline, model.SearchRequest, error) {
	keywords, err := model.LoadKeywords(cfg.Search.KeywordsFile)
	if err != nil {
		return nil, model.SearchRequest{}, err
	}
	if len(keywords) == 0 {
		return nil, model.SearchRequest{}, fmt.Errorf("no keywords found in %s", cfg.Search.KeywordsFile)
	}

	req := model.SearchRequest{
		Query:      search.ComposeQuery(keywords),
		Keywords:   keywords,
		Kind:       cfg.Search.Kind,
		MaxResults: cfg.Search.MaxResults,
		Window:     cfg.Search.Window,
	}

	provider := search.NewSerperClient(cfg.Search.Endpoint, cfg.Search.APIKey, cfg.HTTP.SearchTimeout)

	var pages *cache.PageCache
	if cfg.Cache.Enabled {
		pages = cache.NewPageCache(cfg.Cache.TTL)
	}
	collector := pipeline.NewCollector(cfg, provider, pages)

	// A missing city table disables region resolution rather than the run.
	table, err := geo.LoadTable(cfg.Geo.TablePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v; region resolution disabled\n", err)
		table = nil
	}
	resolver := geo.NewResolver(geo.NewProseRecognizer(), table, cfg.Geo.MaxPrefix, cfg.Geo.MinScore)

	generator := llm.NewGenerator(cfg.LLM)

	// Without an API key, relevance ranking runs on keywords alone.
	var embedder nlp.Embedder
	if e, err := llm.NewOpenAIEmbedder(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.EmbeddingModel); err == nil {
		embedder = e
	}

	sinks := []delivery.Sink{delivery.NewDocumentSink(cfg.Delivery.OutputDir)}
	if cfg.Delivery.Recipient != "" {
		sinks = append(sinks, delivery.NewEmailSink(cfg.Delivery))
	}

	return pipeline.New(cfg, collector, resolver, embedder, generator, sinks...), req, nil
}

// executeRun runs the pipeline and reports the outcome. Empty stages exit
// cleanly; only configuration and rendering problems are errors.
func executeRun(ctx context.Context, p *pipeline.Pipeline, req model.SearchRequest) error {
	result, err := p.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Collected %d articles, %d survived filtering\n", result.Collected, result.Filtered)
		fmt.Fprintf(os.Stderr, "Themes with articles: %d\n", len(result.Classified.Themes))
	}

	for _, status := range result.Delivered {
		fmt.Println(status)
	}
	fmt.Println(result.Outcome)

	return nil
}

func parseWindow(s string) model.Window {
	switch s {
	case "day":
		return model.WindowDay
	case "week":
		return model.WindowWeek
	case "month":
		return model.WindowMonth
	default:
		return model.WindowNone
	}
}
