package tools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/vinayprograms/edinburgh/internal/config"
	"github.com/vinayprograms/edinburgh/internal/logging"
)

const webSearchName = "web-search"

// Search result limits.
const (
	MinSearchResults = 1
	MaxSearchResults = 10
)

// SearchResult represents a single search result
type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

// SearchResponse is the web-search tool result.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
	Query   string         `json:"query"`
}

const noSnippet = "No description available."

// webSearchTool searches the DuckDuckGo HTML endpoint. It needs no API key.
type webSearchTool struct {
	endpoint     string
	userAgent    string
	defaultLimit int
	client       *http.Client
	logger       *logging.Logger
}

func newWebSearchTool(cfg config.SearchConfig, logger *logging.Logger) *webSearchTool {
	return &webSearchTool{
		endpoint:     cfg.Endpoint,
		userAgent:    cfg.UserAgent,
		defaultLimit: cfg.DefaultLimit,
		client:       &http.Client{Timeout: time.Duration(cfg.Timeout) * time.Second},
		logger:       logger,
	}
}

func (t *webSearchTool) Name() string { return webSearchName }

func (t *webSearchTool) Description() string {
	return "Search the web for current information, news, facts, or specific topics. Returns search results with titles, URLs, and snippets."
}

func (t *webSearchTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"query": map[string]interface{}{
				"type":        "string",
				"description": `Search query, e.g., "latest AI news", "weather in Tokyo", "React 19 features"`,
			},
			"limit": map[string]interface{}{
				"type":        "integer",
				"description": fmt.Sprintf("Maximum number of results to return (%d-%d, default %d)", MinSearchResults, MaxSearchResults, t.defaultLimit),
			},
		},
		"required": []string{"query"},
	}
}

// Execute never fails on transport problems. The failure is reported as a
// single result so the calling agent can read it.
func (t *webSearchTool) Execute(ctx context.Context, args map[string]interface{}) (interface{}, error) {
	query, err := requireString(t.Name(), args, "query")
	if err != nil {
		return nil, err
	}

	limit := t.defaultLimit
	if l, ok := intArg(args, "limit"); ok && l != 0 {
		limit = l
	}
	limit = clampInt(limit, MinSearchResults, MaxSearchResults)

	results, err := t.search(ctx, query, limit)
	if err != nil {
		t.logger.Warn("web search failed", map[string]interface{}{"error": err.Error()})
		return &SearchResponse{
			Results: []SearchResult{{Title: "Search failed", Snippet: err.Error()}},
			Query:   query,
		}, nil
	}
	if len(results) == 0 {
		results = []SearchResult{{
			Title:   "No results found",
			Snippet: "The search returned no results. Try a different query.",
		}}
	}
	return &SearchResponse{Results: results, Query: query}, nil
}

func (t *webSearchTool) search(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	u, err := url.Parse(t.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid search endpoint: %w", err)
	}
	q := u.Query()
	q.Set("q", query)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("search request failed with status %d", resp.StatusCode)
	}

	return ParseResults(resp.Body, limit)
}

// ParseResults extracts up to limit results from a DuckDuckGo HTML page.
// A result starts at each a.result__a link; the next .result__snippet
// element supplies its snippet.
func ParseResults(r io.Reader, limit int) ([]SearchResult, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse search results: %w", err)
	}

	var results []SearchResult
	var current *SearchResult
	flush := func() {
		if current == nil {
			return
		}
		if current.Snippet == "" {
			current.Snippet = noSnippet
		}
		results = append(results, *current)
		current = nil
	}

	var walk func(n *html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			switch {
			case n.Data == "a" && hasClass(n, "result__a"):
				flush()
				if len(results) >= limit {
					return false
				}
				current = &SearchResult{
					Title: collapse(textOf(n)),
					URL:   unwrapRedirect(attr(n, "href")),
				}
				return true
			case hasClass(n, "result__snippet"):
				if current != nil && current.Snippet == "" {
					current.Snippet = collapse(textOf(n))
				}
				return true
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if !walk(c) {
				return false
			}
		}
		return true
	}
	walk(doc)
	flush()
	return results, nil
}

// unwrapRedirect returns the target of a DuckDuckGo /l/?uddg= redirect link,
// or href unchanged.
func unwrapRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
