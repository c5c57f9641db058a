package wikipedia

import (
	"context"

	apierrors "github.com/patqa/wikipedia-asof-mcp-server/internal/errors"
)

// ReadAsOf runs the full pipeline: normalize the reference, pick the query
// instant, resolve the revision, fetch its content, and assemble the result.
// A pinned oldid short-circuits both timestamp normalization and resolution.
// At most two sequential upstream calls are made per request; fetch is
// strictly ordered after resolve because it needs the resolved id.
func (c *Client) ReadAsOf(ctx context.Context, queryOrURL, tQuery, format string) (*AsOfResult, error) {
	ref, err := ParseReference(queryOrURL)
	if err != nil {
		return nil, err
	}

	if ref.Pinned() {
		payload, title, err := c.fetchContent(ctx, ref.OldID, format)
		if err != nil {
			return nil, err
		}
		resolved := &ResolvedRevision{
			Title:    title,
			RevID:    ref.OldID,
			OldIDURL: c.permalink(ref.OldID),
		}
		return assembleResult(queryOrURL, tQuery, ref, resolved, payload), nil
	}

	if tQuery == "" {
		if c.config.RequireTimestamp {
			return nil, &apierrors.MissingTimestampError{Title: ref.Title}
		}
		tQuery = DefaultTimestamp(c.now())
	}
	instant := NormalizeTimestamp(tQuery)

	resolved, err := c.ResolveRevision(ctx, ref.Title, instant)
	if err != nil {
		return nil, err
	}

	payload, title, err := c.fetchContent(ctx, resolved.RevID, format)
	if err != nil {
		return nil, err
	}
	if title != "" {
		// The parse title is authoritative for the fetched revision.
		resolved.Title = title
	}

	return assembleResult(queryOrURL, tQuery, ref, resolved, payload), nil
}

// assembleResult merges the normalizer, resolver, and fetcher outputs into
// the result aggregate. Pure: no I/O, no failure; every error has already
// surfaced upstream. A pinned reference is marked as such and carries no
// revision timestamp.
func assembleResult(queryOrURL, tQuery string, ref Reference, resolved *ResolvedRevision, payload *ContentPayload) *AsOfResult {
	return &AsOfResult{
		Input: AsOfInput{
			QueryOrURL: queryOrURL,
			TQuery:     tQuery,
		},
		Resolved: *resolved,
		Pinned:   ref.Pinned(),
		Content:  *payload,
	}
}
