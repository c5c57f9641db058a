package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	apierrors "github.com/patqa/wikipedia-asof-mcp-server/internal/errors"
	"github.com/patqa/wikipedia-asof-mcp-server/metrics"
)

// Content formats accepted by the fetcher.
const (
	FormatHTML = "html"
	FormatText = "text"
)

// truncationMarker is appended to plain-text extracts cut at the budget.
const truncationMarker = "\n\n[content truncated]"

// fetchContent retrieves the content of exactly the given revision. The
// returned title is the page title as reported for that revision; it may be
// empty for the text format when the upstream omits it. Any non-2xx response
// is fatal for the request.
func (c *Client) fetchContent(ctx context.Context, oldid int64, format string) (*ContentPayload, string, error) {
	switch format {
	case FormatText:
		return c.fetchExtract(ctx, oldid)
	default:
		return c.fetchHTML(ctx, oldid)
	}
}

// fetchHTML retrieves rendered markup plus the section index for a revision.
// Both are returned verbatim; HTML is never truncated.
func (c *Client) fetchHTML(ctx context.Context, oldid int64) (*ContentPayload, string, error) {
	params := url.Values{}
	params.Set("action", "parse")
	params.Set("oldid", strconv.FormatInt(oldid, 10))
	params.Set("prop", "text|sections")

	body, status, err := c.doRequest(ctx, "fetch_html", params)
	if err != nil {
		return nil, "", &apierrors.ContentFetchError{OldID: oldid, Format: FormatHTML, Err: err}
	}
	if err := fetchStatusError(oldid, FormatHTML, status, body); err != nil {
		return nil, "", err
	}

	var resp parseResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, "", &apierrors.ContentFetchError{
			OldID: oldid, Format: FormatHTML,
			Err: fmt.Errorf("failed to parse response: %w", err),
		}
	}
	if resp.Error != nil {
		return nil, "", &apierrors.ContentFetchError{
			OldID: oldid, Format: FormatHTML,
			Err: fmt.Errorf("API error [%s]: %s", resp.Error.Code, resp.Error.Info),
		}
	}

	payload := &ContentPayload{
		Format:       FormatHTML,
		Body:         resp.Parse.Text,
		Truncated:    false,
		ExtractChars: len(resp.Parse.Text),
		Sections:     resp.Parse.Sections,
	}
	metrics.RecordContentSize(FormatHTML, len(payload.Body))

	return payload, resp.Parse.Title, nil
}

// fetchExtract retrieves the plain-text extract for a revision, truncating at
// the configured character budget.
func (c *Client) fetchExtract(ctx context.Context, oldid int64) (*ContentPayload, string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "extracts")
	params.Set("explaintext", "1")
	params.Set("revids", strconv.FormatInt(oldid, 10))

	body, status, err := c.doRequest(ctx, "fetch_text", params)
	if err != nil {
		return nil, "", &apierrors.ContentFetchError{OldID: oldid, Format: FormatText, Err: err}
	}
	if err := fetchStatusError(oldid, FormatText, status, body); err != nil {
		return nil, "", err
	}

	var resp extractResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, "", &apierrors.ContentFetchError{
			OldID: oldid, Format: FormatText,
			Err: fmt.Errorf("failed to parse response: %w", err),
		}
	}
	if resp.Error != nil {
		return nil, "", &apierrors.ContentFetchError{
			OldID: oldid, Format: FormatText,
			Err: fmt.Errorf("API error [%s]: %s", resp.Error.Code, resp.Error.Info),
		}
	}
	if len(resp.Query.Pages) == 0 {
		return nil, "", &apierrors.ContentFetchError{
			OldID: oldid, Format: FormatText,
			Err: fmt.Errorf("no page in response for revision"),
		}
	}

	page := resp.Query.Pages[0]
	extract := page.Extract

	truncated := false
	if budget := c.config.MaxExtractChars; budget > 0 && len(extract) > budget {
		original := len(extract)
		extract = extract[:budget] + truncationMarker
		truncated = true
		metrics.RecordTruncation()
		c.Logger.Info("Extract truncated",
			"oldid", oldid,
			"original_chars", original,
			"budget", budget,
			"returned_chars", len(extract),
		)
	}

	payload := &ContentPayload{
		Format:       FormatText,
		Body:         extract,
		Truncated:    truncated,
		ExtractChars: len(extract),
	}
	metrics.RecordContentSize(FormatText, len(payload.Body))

	return payload, page.Title, nil
}

// fetchStatusError maps a non-2xx content response to the fetch error
// taxonomy. A 403 wraps ForbiddenError so callers can still detect the
// operator-fixable cause through the fetch failure.
func fetchStatusError(oldid int64, format string, status int, body []byte) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusForbidden:
		return &apierrors.ContentFetchError{
			OldID: oldid, Format: format,
			Err: &apierrors.ForbiddenError{Operation: "fetch", Detail: string(body)},
		}
	default:
		return &apierrors.ContentFetchError{
			OldID: oldid, Format: format,
			Err: fmt.Errorf("unexpected status %d: %s", status, truncateForError(body)),
		}
	}
}
