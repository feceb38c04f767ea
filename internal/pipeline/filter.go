package pipeline

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/briefops/intelbrief/internal/model"
)

// Filter drops articles outside the requested recency window and articles
// that mention none of the tracked keywords. It runs before geography and
// keyword enrichment so no work is wasted on discarded records.
type Filter struct {
	window   model.Window
	keywords []string
	now      func() time.Time // injectable for tests
}

// NewFilter creates a filter for one search request. The keyword list is the
// flat list the query was composed from, passed through explicitly rather
// than re-parsed out of the query string.
func NewFilter(window model.Window, keywords []string) *Filter {
	var kept []string
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if len(kw) >= 2 {
			kept = append(kept, kw)
		}
	}

	return &Filter{
		window:   window,
		keywords: kept,
		now:      time.Now,
	}
}

// Apply returns the articles surviving both checks. Input order is preserved.
func (f *Filter) Apply(articles []model.Article) []model.Article {
	var kept []model.Article
	for _, a := range articles {
		if !f.withinWindow(a.Published) {
			continue
		}
		if !f.matchesKeywords(a.SearchText()) {
			continue
		}
		kept = append(kept, a)
	}
	return kept
}

// withinWindow checks the recency window. With no window set, date absence is
// tolerated; with a window set, articles with unknown dates are dropped.
func (f *Filter) withinWindow(published *time.Time) bool {
	days := f.window.Days()
	if days == 0 {
		return true
	}
	if published == nil {
		return false
	}

	cutoff := f.now().UTC().AddDate(0, 0, -days)
	return !published.Before(cutoff)
}

// matchesKeywords requires at least one tracked keyword to appear as a
// case-insensitive substring. An empty keyword list matches everything.
func (f *Filter) matchesKeywords(text string) bool {
	if len(f.keywords) == 0 {
		return true
	}

	lower := strings.ToLower(text)
	for _, kw := range f.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// ParsePublished leniently parses a free-form date string and normalizes it
// to UTC. It returns nil when the string is empty or unparseable; the date
// filter decides what that means.
func ParsePublished(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return nil
	}

	utc := t.UTC()
	return &utc
}
