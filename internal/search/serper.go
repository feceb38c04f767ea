package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/briefops/intelbrief/internal/model"
)

// SerperClient implements Provider against the serper.dev JSON API.
type SerperClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewSerperClient creates a Serper client. The timeout here is the search-call
// timeout, deliberately shorter than the page-fetch timeout.
func NewSerperClient(endpoint, apiKey string, timeout time.Duration) *SerperClient {
	return &SerperClient{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type serperRequest struct {
	Query string `json:"q"`
	Num   int    `json:"num,omitempty"`
	TBS   string `json:"tbs,omitempty"`
}

type serperResponse struct {
	News    []Result `json:"news"`
	Organic []Result `json:"organic"`
}

// Search issues one query against the provider. The recency window is passed
// server-side via the tbs hint; local date filtering still applies afterwards.
func (c *SerperClient) Search(ctx context.Context, req model.SearchRequest) ([]Result, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("search: missing API key")
	}

	path := "/search"
	if req.Kind == model.SearchKindNews {
		path = "/news"
	}

	payload := serperRequest{
		Query: req.Query,
		Num:   req.MaxResults,
		TBS:   windowHint(req.Window),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("search: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("search: create request: %w", err)
	}
	httpReq.Header.Set("X-API-KEY", c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("search: unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("search: read response: %w", err)
	}

	var parsed serperResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("search: decode response: %w", err)
	}

	results := parsed.News
	if req.Kind != model.SearchKindNews {
		results = parsed.Organic
	}

	// Drop hits without a link; they cannot be retrieved.
	filtered := results[:0]
	for _, r := range results {
		if r.Link != "" {
			filtered = append(filtered, r)
		}
	}

	return filtered, nil
}

// windowHint maps a recency window to the provider's tbs parameter.
func windowHint(w model.Window) string {
	switch w {
	case model.WindowDay:
		return "qdr:d"
	case model.WindowWeek:
		return "qdr:w"
	case model.WindowMonth:
		return "qdr:m"
	default:
		return ""
	}
}
