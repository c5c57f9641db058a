package tools

// AllTools contains all tool specifications for the Wikipedia as-of MCP server.
// Tool descriptions follow a structured format for optimal LLM tool selection:
// - USE WHEN: Natural language triggers
// - NOT FOR: Disambiguation from similar tools
// - PARAMETERS: Key arguments with defaults
// - RETURNS: What the tool returns
var AllTools = []ToolSpec{
	{
		Name:     "wikipedia_read_asof",
		Method:   "ReadAsOf",
		Title:    "Read Wikipedia As Of",
		Category: "read",
		Description: `Read a Wikipedia article as it existed at a specific moment in time.

USE WHEN: User asks "what did the X article say in 2019", "show me Y as of last March", or pastes a Wikipedia URL and wants its historical or pinned content.

NOT FOR: Finding which revision was current without reading content (use wikipedia_resolve_revision instead).

PARAMETERS:
- query_or_url: Page title or Wikipedia URL (required). A URL carrying oldid=N pins that exact revision and t_query is ignored.
- t_query: As-of date or ISO 8601 timestamp (optional, defaults to today). A bare date means end of that day UTC.
- format: "html" (rendered markup with section index, default) or "text" (plain-text extract, truncated at the character budget).

RETURNS: Resolved revision (title, rev_id, rev_time, permalink URL) plus the content in the requested format.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
	{
		Name:     "wikipedia_resolve_revision",
		Method:   "ResolveRevision",
		Title:    "Resolve Revision As Of",
		Category: "resolve",
		Description: `Resolve which revision of a Wikipedia article was current at a specific moment, without fetching content.

USE WHEN: User asks "which revision was live on date X", "give me a permalink to Y as of Z", or needs a stable oldid citation.

NOT FOR: Reading article content (use wikipedia_read_asof instead).

PARAMETERS:
- title: Page title (required). Redirects are resolved to the canonical page.
- t_query: As-of date or ISO 8601 timestamp (required). A bare date means end of that day UTC.

RETURNS: Canonical title, revision ID, revision timestamp, and a permanent oldid URL.`,
		ReadOnly:   true,
		Idempotent: true,
		OpenWorld:  true,
	},
}
