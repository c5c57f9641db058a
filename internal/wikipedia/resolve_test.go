package wikipedia

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	apierrors "github.com/patqa/wikipedia-asof-mcp-server/internal/errors"
)

// newTestClient returns a client pointed at the given fake upstream.
func newTestClient(t *testing.T, upstream *httptest.Server) *Client {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	config := DefaultConfig()
	config.APIURL = upstream.URL
	return NewClient(config, WithLogger(logger))
}

func TestResolveRevision(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		fmt.Fprint(w, `{
			"query": {
				"pages": [{
					"pageid": 1234,
					"title": "Alan Turing",
					"revisions": [{"revid": 987654321, "parentid": 987654000, "timestamp": "2024-04-10T08:15:00Z"}]
				}]
			}
		}`)
	}))
	defer server.Close()

	client := newTestClient(t, server)
	resolved, err := client.ResolveRevision(context.Background(), "Alan Turing", "2024-04-15T23:59:59Z")
	if err != nil {
		t.Fatalf("ResolveRevision failed: %v", err)
	}

	if resolved.Title != "Alan Turing" {
		t.Errorf("Title = %q, want %q", resolved.Title, "Alan Turing")
	}
	if resolved.RevID != 987654321 {
		t.Errorf("RevID = %d, want 987654321", resolved.RevID)
	}
	if resolved.RevTime != "2024-04-10T08:15:00Z" {
		t.Errorf("RevTime = %q, want %q", resolved.RevTime, "2024-04-10T08:15:00Z")
	}
	if got := oldidFromPermalink(resolved.OldIDURL); got != 987654321 {
		t.Errorf("permalink oldid = %d, want 987654321 (url %q)", got, resolved.OldIDURL)
	}

	// The backward search must be fully bounded in a single request.
	wantParams := map[string]string{
		"action":        "query",
		"prop":          "revisions",
		"titles":        "Alan Turing",
		"rvlimit":       "1",
		"rvdir":         "older",
		"rvstart":       "2024-04-15T23:59:59Z",
		"rvend":         "2001-01-01T00:00:00Z",
		"rvprop":        "ids|timestamp",
		"redirects":     "1",
		"format":        "json",
		"formatversion": "2",
		"maxlag":        "5",
	}
	for k, want := range wantParams {
		if got := gotQuery[k]; got != want {
			t.Errorf("query param %s = %q, want %q", k, got, want)
		}
	}
}

func TestResolveRevision_RedirectCanonicalTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Upstream followed the redirect and reports the canonical page.
		fmt.Fprint(w, `{
			"query": {
				"redirects": [{"from": "UK", "to": "United Kingdom"}],
				"pages": [{
					"pageid": 31717,
					"title": "United Kingdom",
					"revisions": [{"revid": 555, "timestamp": "2024-01-01T00:00:00Z"}]
				}]
			}
		}`)
	}))
	defer server.Close()

	client := newTestClient(t, server)
	resolved, err := client.ResolveRevision(context.Background(), "UK", "2024-04-15T23:59:59Z")
	if err != nil {
		t.Fatalf("ResolveRevision failed: %v", err)
	}
	if resolved.Title != "United Kingdom" {
		t.Errorf("Title = %q, want canonical %q", resolved.Title, "United Kingdom")
	}
}

func TestResolveRevision_NoRevision(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "missing page",
			body: `{"query": {"pages": [{"title": "No Such Page", "missing": true}]}}`,
		},
		{
			name: "no revisions before instant",
			body: `{"query": {"pages": [{"pageid": 1, "title": "New Page", "revisions": []}]}}`,
		},
		{
			name: "empty pages",
			body: `{"query": {"pages": []}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			client := newTestClient(t, server)
			_, err := client.ResolveRevision(context.Background(), "x", "2024-04-15T23:59:59Z")
			if err == nil {
				t.Fatal("expected error")
			}
			if !apierrors.IsNoRevision(err) {
				t.Errorf("expected NoRevisionError, got %T: %v", err, err)
			}
		})
	}
}

func TestResolveRevision_RejectsLaterRevision(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Revision timestamp after the requested instant violates the bound.
		fmt.Fprint(w, `{
			"query": {
				"pages": [{
					"pageid": 1,
					"title": "Alan Turing",
					"revisions": [{"revid": 999, "timestamp": "2024-05-01T00:00:00Z"}]
				}]
			}
		}`)
	}))
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.ResolveRevision(context.Background(), "Alan Turing", "2024-04-15T23:59:59Z")
	if err == nil {
		t.Fatal("expected error")
	}
	if !apierrors.IsNoRevision(err) {
		t.Errorf("expected NoRevisionError, got %T: %v", err, err)
	}
}

func TestResolveRevision_Forbidden(t *testing.T) {
	const detail = `{"error": "rate limited: add a descriptive User-Agent header"}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, detail)
	}))
	defer server.Close()

	client := newTestClient(t, server)
	_, err := client.ResolveRevision(context.Background(), "Alan Turing", "2024-04-15T23:59:59Z")
	if err == nil {
		t.Fatal("expected error")
	}
	if !apierrors.IsForbidden(err) {
		t.Fatalf("expected ForbiddenError, got %T: %v", err, err)
	}

	var forbidden *apierrors.ForbiddenError
	if !errors.As(err, &forbidden) {
		t.Fatal("expected *ForbiddenError in chain")
	}
	// Upstream detail must surface verbatim for the operator.
	if forbidden.Detail != detail {
		t.Errorf("Detail = %q, want verbatim %q", forbidden.Detail, detail)
	}
}

func TestResolveRevision_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(error) bool
	}{
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   "internal error",
			check:  apierrors.IsUpstream,
		},
		{
			name:   "service unavailable",
			status: http.StatusServiceUnavailable,
			body:   "maxlag exceeded",
			check:  apierrors.IsUpstream,
		},
		{
			name:   "not found maps to no revision",
			status: http.StatusNotFound,
			body:   "not found",
			check:  apierrors.IsNoRevision,
		},
		{
			name:   "api error object in 200",
			status: http.StatusOK,
			body:   `{"error": {"code": "maxlag", "info": "Waiting for replica"}}`,
			check:  apierrors.IsUpstream,
		},
		{
			name:   "malformed body",
			status: http.StatusOK,
			body:   "<html>not json</html>",
			check:  apierrors.IsUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			client := newTestClient(t, server)
			_, err := client.ResolveRevision(context.Background(), "Alan Turing", "2024-04-15T23:59:59Z")
			if err == nil {
				t.Fatal("expected error")
			}
			if !tt.check(err) {
				t.Errorf("error taxonomy mismatch, got %T: %v", err, err)
			}
		})
	}
}

func TestLaterThan(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		bound     string
		want      bool
	}{
		{"strictly after", "2024-04-16T00:00:00Z", "2024-04-15T23:59:59Z", true},
		{"equal", "2024-04-15T23:59:59Z", "2024-04-15T23:59:59Z", false},
		{"before", "2024-04-10T00:00:00Z", "2024-04-15T23:59:59Z", false},
		{"unparseable candidate", "garbage", "2024-04-15T23:59:59Z", false},
		{"unparseable bound", "2024-04-16T00:00:00Z", "garbage", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := laterThan(tt.candidate, tt.bound); got != tt.want {
				t.Errorf("laterThan(%q, %q) = %v, want %v", tt.candidate, tt.bound, got, tt.want)
			}
		})
	}
}
