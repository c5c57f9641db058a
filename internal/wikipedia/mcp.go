package wikipedia

import (
	"context"
	"encoding/json"
)

// MCP tool wrapper methods.
// These wrap the pipeline with Args/Result types for MCP integration and
// convert every pipeline error into the uniform {output, error} shape: the
// tool boundary is where the error taxonomy stops.

// ReadAsOfMCP is the MCP wrapper for ReadAsOf.
func (c *Client) ReadAsOfMCP(ctx context.Context, args ReadAsOfArgs) (ReadAsOfResult, error) {
	if err := ValidateQueryOrURL(args.QueryOrURL); err != nil {
		return ReadAsOfResult{Error: err.Error()}, nil
	}
	format, err := NormalizeFormat(args.Format)
	if err != nil {
		return ReadAsOfResult{Error: err.Error()}, nil
	}

	result, err := c.ReadAsOf(ctx, args.QueryOrURL, args.TQuery, format)
	if err != nil {
		return ReadAsOfResult{Error: err.Error()}, nil
	}

	out, err := json.Marshal(result)
	if err != nil {
		return ReadAsOfResult{Error: "failed to encode result: " + err.Error()}, nil
	}
	return ReadAsOfResult{Output: string(out)}, nil
}

// ResolveRevisionMCP is the MCP wrapper for ResolveRevision. Unlike the read
// tool it always requires t_query: resolving "as of now" is what the read
// tool's default policy is for.
func (c *Client) ResolveRevisionMCP(ctx context.Context, args ResolveRevisionArgs) (ResolveRevisionResult, error) {
	if err := ValidateTitle(args.Title); err != nil {
		return ResolveRevisionResult{Error: err.Error()}, nil
	}
	if args.TQuery == "" {
		return ResolveRevisionResult{Error: "t_query is required"}, nil
	}

	resolved, err := c.ResolveRevision(ctx, args.Title, NormalizeTimestamp(args.TQuery))
	if err != nil {
		return ResolveRevisionResult{Error: err.Error()}, nil
	}
	return ResolveRevisionResult{Resolved: resolved}, nil
}
