package model

import "time"

// Config is the complete runtime configuration. Defaults come from
// DefaultConfig, then a config file, environment variables (INTELBRIEF_*)
// and CLI flags are layered on top.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	Search      SearchConfig      `yaml:"search"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
	Cache       CacheConfig       `yaml:"cache"`
	Geo         GeoConfig         `yaml:"geo"`
	Themes      []Theme           `yaml:"themes"`
	LLM         LLMConfig         `yaml:"llm"`
	Delivery    DeliveryConfig    `yaml:"delivery"`
	Schedule    ScheduleConfig    `yaml:"schedule"`
	Output      OutputConfig      `yaml:"output"`
}

// HTTPConfig controls the two network phases. The search call gets a shorter
// timeout than article retrieval.
type HTTPConfig struct {
	SearchTimeout time.Duration `yaml:"search_timeout"`
	FetchTimeout  time.Duration `yaml:"fetch_timeout"`
	UserAgent     string        `yaml:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes"`
}

// SearchConfig configures the search provider call.
type SearchConfig struct {
	Endpoint     string     `yaml:"endpoint"`
	APIKey       string     `yaml:"-"` // env only, never written to disk
	Kind         SearchKind `yaml:"kind"`
	MaxResults   int        `yaml:"max_results"`
	Window       Window     `yaml:"window"`
	KeywordsFile string     `yaml:"keywords_file"`
}

// ConcurrencyConfig bounds the page-retrieval fan-out.
type ConcurrencyConfig struct {
	FetchWorkers int `yaml:"fetch_workers"`
}

// RateLimitConfig configures per-domain politeness limits.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// CacheConfig configures the in-memory page cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

// GeoConfig configures the geography resolver.
type GeoConfig struct {
	// TablePath points at the City,MSA lookup CSV.
	TablePath string `yaml:"table_path"`
	// MaxPrefix bounds how much body text is handed to entity recognition.
	MaxPrefix int `yaml:"max_prefix"`
	// MinScore is the minimum fuzzy-match similarity (0-100).
	MinScore int `yaml:"min_score"`
}

// LLMConfig configures the briefing generator and embedder. An empty APIKey
// disables the client; the generator then falls back to templated summaries.
type LLMConfig struct {
	APIKey         string        `yaml:"-"` // env only
	BaseURL        string        `yaml:"base_url"`
	Model          string        `yaml:"model"`
	EmbeddingModel string        `yaml:"embedding_model"`
	MaxTokens      int           `yaml:"max_tokens"`
	Temperature    float32       `yaml:"temperature"`
	Timeout        time.Duration `yaml:"timeout"`
}

// DeliveryConfig configures the report sinks.
type DeliveryConfig struct {
	OutputDir string     `yaml:"output_dir"`
	Recipient string     `yaml:"recipient"`
	SMTP      SMTPConfig `yaml:"smtp"`
}

// SMTPConfig holds mail transport settings for the email sink.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"-"` // env only
	From     string `yaml:"from"`
}

// ScheduleConfig holds the cron expression for scheduled runs.
type ScheduleConfig struct {
	Cron string `yaml:"cron"`
}

// OutputConfig controls diagnostics.
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns sensible defaults for all sections.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			SearchTimeout: 20 * time.Second,
			FetchTimeout:  25 * time.Second,
			UserAgent:     "intelbrief/0.1 (+https://github.com/briefops/intelbrief)",
			MaxBodyBytes:  2_000_000,
		},
		Search: SearchConfig{
			Endpoint:     "https://google.serper.dev",
			Kind:         SearchKindNews,
			MaxResults:   20,
			Window:       WindowWeek,
			KeywordsFile: "keywords.csv",
		},
		Concurrency: ConcurrencyConfig{
			FetchWorkers: 20,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 2,
			Burst:             5,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     time.Hour,
		},
		Geo: GeoConfig{
			TablePath: "city_to_msa_mapping.csv",
			MaxPrefix: 5000,
			MinScore:  70,
		},
		Themes: DefaultThemes(),
		LLM: LLMConfig{
			Model:          "gpt-4o-mini",
			EmbeddingModel: "text-embedding-3-small",
			MaxTokens:      350,
			Temperature:    0.5,
			Timeout:        30 * time.Second,
		},
		Delivery: DeliveryConfig{
			OutputDir: "./briefings",
			SMTP: SMTPConfig{
				Port: 587,
			},
		},
		Schedule: ScheduleConfig{
			// Monday 13:00 UTC, matching the weekly report cadence.
			Cron: "0 13 * * MON",
		},
	}
}
