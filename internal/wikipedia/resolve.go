package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	apierrors "github.com/patqa/wikipedia-asof-mcp-server/internal/errors"
)

// ResolveRevision returns the most recent revision of title with a timestamp
// at or before instant. The search runs backward from instant down to the
// revision floor; redirects are resolved upstream, so the returned title may
// differ from the input. The permalink is built locally from the revision id.
func (c *Client) ResolveRevision(ctx context.Context, title, instant string) (*ResolvedRevision, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "revisions")
	params.Set("titles", title)
	params.Set("rvlimit", "1")
	params.Set("rvdir", "older")
	params.Set("rvstart", instant)
	params.Set("rvend", revisionFloor)
	params.Set("rvprop", "ids|timestamp")
	params.Set("redirects", "1")

	body, status, err := c.doRequest(ctx, "resolve", params)
	if err != nil {
		return nil, &apierrors.UpstreamError{Operation: "resolve", Err: err}
	}

	switch {
	case status == http.StatusForbidden:
		return nil, &apierrors.ForbiddenError{Operation: "resolve", Detail: string(body)}
	case status == http.StatusNotFound:
		return nil, &apierrors.NoRevisionError{Title: title, Instant: instant}
	case status != http.StatusOK:
		return nil, &apierrors.UpstreamError{
			Operation:  "resolve",
			StatusCode: status,
			Err:        fmt.Errorf("unexpected status: %s", truncateForError(body)),
		}
	}

	var resp revisionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &apierrors.UpstreamError{Operation: "resolve", Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	if resp.Error != nil {
		return nil, &apierrors.UpstreamError{
			Operation: "resolve",
			Err:       fmt.Errorf("API error [%s]: %s", resp.Error.Code, resp.Error.Info),
		}
	}

	if len(resp.Query.Pages) == 0 {
		return nil, &apierrors.NoRevisionError{Title: title, Instant: instant}
	}
	page := resp.Query.Pages[0]
	if page.Missing || len(page.Revisions) == 0 {
		return nil, &apierrors.NoRevisionError{Title: title, Instant: instant}
	}

	rev := page.Revisions[0]
	if laterThan(rev.Timestamp, instant) {
		// The API contract guarantees rev.Timestamp <= instant; a violation
		// means the bound was not honored and the candidate must be rejected.
		return nil, &apierrors.NoRevisionError{Title: title, Instant: instant}
	}

	canonicalTitle := page.Title
	if canonicalTitle == "" {
		canonicalTitle = title
	}

	c.Logger.Debug("Resolved revision",
		"title", canonicalTitle,
		"rev_id", rev.RevID,
		"rev_time", rev.Timestamp,
		"instant", instant,
	)

	return &ResolvedRevision{
		Title:    canonicalTitle,
		RevID:    rev.RevID,
		RevTime:  rev.Timestamp,
		OldIDURL: c.permalink(rev.RevID),
	}, nil
}

// laterThan reports whether candidate is strictly after bound. Unparseable
// values return false: the upstream already applied the bound and a local
// parse failure is no reason to reject its answer.
func laterThan(candidate, bound string) bool {
	ct, err := time.Parse(time.RFC3339, candidate)
	if err != nil {
		return false
	}
	bt, err := time.Parse(time.RFC3339, bound)
	if err != nil {
		return false
	}
	return ct.After(bt)
}

// truncateForError shortens a response body for inclusion in error messages.
func truncateForError(body []byte) string {
	const maxLen = 200
	s := string(body)
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}

// oldidFromPermalink extracts the revision id from a permalink; zero if absent.
// Used by tests and diagnostics, the inverse of permalink construction.
func oldidFromPermalink(link string) int64 {
	u, err := url.Parse(link)
	if err != nil {
		return 0
	}
	oldid, err := strconv.ParseInt(u.Query().Get("oldid"), 10, 64)
	if err != nil {
		return 0
	}
	return oldid
}
