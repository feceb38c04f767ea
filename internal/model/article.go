package model

import "time"

// Article is the unit of work flowing through the pipeline. It is created by
// the collector from one search call, enriched in place by the filter, the
// geography resolver and the keyword extractor, and consumed read-only by the
// theme classifier and the briefing generator. Nothing is persisted between
// runs.
type Article struct {
	Title string `json:"title"`
	Link  string `json:"link"` // unique key within a run

	// Published is nil when the source provided no parseable date.
	Published *time.Time `json:"published,omitempty"`

	// Body is the extracted plain text. An article with an empty body never
	// leaves the collector.
	Body string `json:"body"`

	// Source is the site label from the search result metadata, falling back
	// to the URL host.
	Source string `json:"source"`

	// Region is the resolved metro region. "Uncategorized" is the explicit
	// default, not a missing value.
	Region string `json:"region"`

	// Keywords holds the top salient terms, in descending relevance order.
	Keywords []string `json:"keywords,omitempty"`

	// Themes lists the names of the themes this article was assigned to.
	// Empty before classification; an article may belong to several themes.
	Themes []string `json:"themes,omitempty"`
}

// SearchText returns the text the keyword filters run against.
func (a *Article) SearchText() string {
	return a.Title + " " + a.Body
}

// SearchKind selects the search provider vertical.
type SearchKind string

const (
	SearchKindNews SearchKind = "news"
	SearchKindWeb  SearchKind = "web"
)

// Window is a relative recency bound applied both server-side (as a provider
// hint) and locally against parsed publication dates.
type Window string

const (
	WindowNone  Window = ""
	WindowDay   Window = "day"
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
)

// Days returns the window length in days, or 0 for WindowNone.
func (w Window) Days() int {
	switch w {
	case WindowDay:
		return 1
	case WindowWeek:
		return 7
	case WindowMonth:
		return 30
	default:
		return 0
	}
}

// SearchRequest describes one query against the search provider.
type SearchRequest struct {
	// Query is the composed boolean query string sent to the provider.
	Query string

	// Keywords is the flat list of tracked keywords the query was composed
	// from. The keyword filter matches against this list directly instead of
	// re-parsing tokens out of Query.
	Keywords []string

	Kind       SearchKind
	MaxResults int
	Window     Window
}
