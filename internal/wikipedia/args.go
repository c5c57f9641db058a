package wikipedia

// ReadAsOfArgs contains parameters for the read-as-of tool.
type ReadAsOfArgs struct {
	QueryOrURL string `json:"query_or_url" jsonschema:"required" jsonschema_description:"Page title or a Wikipedia URL (may contain oldid=...)"`
	TQuery     string `json:"t_query,omitempty" jsonschema_description:"As-of date/time, e.g. 2024-04-15 (YYYY-MM-DD or ISO 8601). Ignored when the URL pins an oldid."`
	Format     string `json:"format,omitempty" jsonschema_description:"Content format: 'html' (rendered markup plus section index, default) or 'text' (plain-text extract, truncated at the configured budget)"`
}

// ReadAsOfResult is the uniform tool result: on success Output holds the
// JSON-encoded AsOfResult, on failure Error holds the message. The pipeline
// never propagates an error past this shape.
type ReadAsOfResult struct {
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

// ResolveRevisionArgs contains parameters for the resolve-only tool.
type ResolveRevisionArgs struct {
	Title  string `json:"title" jsonschema:"required" jsonschema_description:"Page title (redirects are resolved upstream)"`
	TQuery string `json:"t_query" jsonschema:"required" jsonschema_description:"As-of date/time, e.g. 2024-04-15 (YYYY-MM-DD or ISO 8601)"`
}

// ResolveRevisionResult is the result of the resolve-only tool.
type ResolveRevisionResult struct {
	Resolved *ResolvedRevision `json:"resolved,omitempty"`
	Error    string            `json:"error,omitempty"`
}
