package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vinayprograms/edinburgh/internal/config"
	"github.com/vinayprograms/edinburgh/internal/logging"
)

// fixtureServer serves body and returns a func reporting the last request.
func fixtureServer(t *testing.T, status int, body string) (*httptest.Server, func() *http.Request) {
	t.Helper()
	var mu sync.Mutex
	var last *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		last = r.Clone(context.Background())
		mu.Unlock()
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, func() *http.Request {
		mu.Lock()
		defer mu.Unlock()
		return last
	}
}

func newTestSearch(endpoint string) *webSearchTool {
	cfg := config.New().Search
	cfg.Endpoint = endpoint
	cfg.Timeout = 5
	return newWebSearchTool(cfg, logging.Nop())
}

func readFixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("testdata/ddg_results.html")
	if err != nil {
		t.Fatalf("failed to read fixture: %v", err)
	}
	return string(data)
}

func TestParseResults(t *testing.T) {
	got, err := ParseResults(strings.NewReader(readFixture(t)), 10)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	want := []SearchResult{
		{
			Title:   "Go Concurrency Patterns: Pipelines",
			URL:     "https://go.dev/blog/pipelines",
			Snippet: "Go's concurrency primitives make it easy to construct streaming data pipelines.",
		},
		{
			Title:   "Direct Link",
			URL:     "https://example.com/direct",
			Snippet: "No description available.",
		},
		{
			Title:   "Go by Example: Goroutines",
			URL:     "https://gobyexample.com/goroutines",
			Snippet: "A goroutine is a lightweight thread of execution.",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestParseResults_Limit(t *testing.T) {
	got, err := ParseResults(strings.NewReader(readFixture(t)), 2)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[1].Title != "Direct Link" {
		t.Errorf("unexpected second result: %+v", got[1])
	}
}

func TestWebSearch_Execute(t *testing.T) {
	srv, lastRequest := fixtureServer(t, http.StatusOK, readFixture(t))
	tool := newTestSearch(srv.URL + "/html/")

	out, err := tool.Execute(context.Background(), map[string]interface{}{
		"query": "go concurrency",
		"limit": 1.0,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp := out.(*SearchResponse)
	if resp.Query != "go concurrency" {
		t.Errorf("expected query echoed, got %q", resp.Query)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(resp.Results))
	}

	req := lastRequest()
	if got := req.URL.Query().Get("q"); got != "go concurrency" {
		t.Errorf("expected q parameter, got %q", got)
	}
	if got := req.Header.Get("User-Agent"); got != "Mozilla/5.0 (compatible; ResearchAgent/1.0)" {
		t.Errorf("unexpected user agent %q", got)
	}
}

func TestWebSearch_LimitClamped(t *testing.T) {
	srv, _ := fixtureServer(t, http.StatusOK, readFixture(t))
	tool := newTestSearch(srv.URL)

	for _, limit := range []float64{-3, 0, 50} {
		out, err := tool.Execute(context.Background(), map[string]interface{}{"query": "go", "limit": limit})
		if err != nil {
			t.Fatalf("limit %v: unexpected error: %v", limit, err)
		}
		if n := len(out.(*SearchResponse).Results); n < MinSearchResults || n > MaxSearchResults {
			t.Errorf("limit %v: %d results out of range", limit, n)
		}
	}
}

func TestWebSearch_NoResults(t *testing.T) {
	srv, _ := fixtureServer(t, http.StatusOK, "<html><body><p>nothing</p></body></html>")
	tool := newTestSearch(srv.URL)

	out, err := tool.Execute(context.Background(), map[string]interface{}{"query": "zzzz"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	results := out.(*SearchResponse).Results
	if len(results) != 1 || results[0].Title != "No results found" || results[0].URL != "" {
		t.Errorf("unexpected results: %+v", results)
	}
}

func TestWebSearch_FailureIsAResult(t *testing.T) {
	srv, _ := fixtureServer(t, http.StatusServiceUnavailable, "down")
	tool := newTestSearch(srv.URL)

	out, err := tool.Execute(context.Background(), map[string]interface{}{"query": "go"})
	if err != nil {
		t.Fatalf("transport failures should not be errors: %v", err)
	}
	results := out.(*SearchResponse).Results
	if len(results) != 1 || results[0].Title != "Search failed" {
		t.Fatalf("unexpected results: %+v", results)
	}
	if !strings.Contains(results[0].Snippet, "503") {
		t.Errorf("expected status in snippet, got %q", results[0].Snippet)
	}
}

func TestWebSearch_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	out, err := newTestSearch(endpoint).Execute(context.Background(), map[string]interface{}{"query": "go"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := out.(*SearchResponse).Results[0].Title; got != "Search failed" {
		t.Errorf("expected 'Search failed', got %q", got)
	}
}

func TestWebSearch_RequiresQuery(t *testing.T) {
	_, err := newTestSearch("http://unused").Execute(context.Background(), map[string]interface{}{})
	if err == nil {
		t.Error("expected error for missing query")
	}
}

func TestUnwrapRedirect(t *testing.T) {
	tests := map[string]string{
		"//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.org%2Fa%3Fb%3D1&rut=x": "https://example.org/a?b=1",
		"https://example.org/plain": "https://example.org/plain",
		"":                          "",
	}
	for in, want := range tests {
		if got := unwrapRedirect(in); got != want {
			t.Errorf("unwrapRedirect(%q) = %q, want %q", in, got, want)
		}
	}
}
