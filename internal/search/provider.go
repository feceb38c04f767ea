// Package search talks to the external search provider. The provider is an
// interface so the pipeline can be tested against a fake; the only real
// implementation is the Serper client.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/briefops/intelbrief/internal/model"
)

// Result is one search hit. Date and Source may be empty depending on the
// vertical and the site.
type Result struct {
	Title  string `json:"title"`
	Link   string `json:"link"`
	Date   string `json:"date,omitempty"`
	Source string `json:"source,omitempty"`
}

// Provider issues one query and returns candidate results. A failed call or
// an empty result list is a valid, handled outcome: callers log it and carry
// on with an empty batch.
type Provider interface {
	Search(ctx context.Context, req model.SearchRequest) ([]Result, error)
}

// ComposeQuery builds the boolean query string for a set of tracked keywords:
// multi-word keywords become quoted exact phrases, single words stay bare, and
// the whole disjunction is constrained to the R&D-policy context and
// authoritative domains.
func ComposeQuery(keywords []string) string {
	var parts []string
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		if strings.Contains(kw, " ") {
			parts = append(parts, fmt.Sprintf("%q", kw))
		} else {
			parts = append(parts, kw)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf(
		"(%s) AND ('university research funding' OR 'federal research grants' OR 'R&D policy') AND (site:.gov OR site:.edu OR site:.org)",
		strings.Join(parts, " OR "),
	)
}
