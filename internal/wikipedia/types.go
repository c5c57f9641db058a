// Package wikipedia resolves and reads English Wikipedia content as of a
// point in time. Given a title or URL and a query timestamp it selects the
// revision that was current at that instant via the MediaWiki Action API,
// then fetches that exact revision's content.
package wikipedia

// Reference identifies a page either by title or by a pinned oldid.
// After normalization exactly one of the two fields is set: a pinned oldid
// fully determines content and makes temporal resolution moot.
type Reference struct {
	Title string
	OldID int64
}

// Pinned reports whether the reference carries an exact revision id.
func (r Reference) Pinned() bool {
	return r.OldID > 0
}

// ResolvedRevision identifies the revision selected for a query.
// RevTime is empty when the reference was pinned directly by oldid, in which
// case no temporal resolution took place.
type ResolvedRevision struct {
	Title    string `json:"title"`
	RevID    int64  `json:"rev_id"`
	RevTime  string `json:"rev_time,omitempty"`
	OldIDURL string `json:"oldid_url"`
}

// Section is one entry of a page's section index as returned by action=parse.
type Section struct {
	TocLevel int    `json:"toclevel"`
	Level    string `json:"level"`
	Line     string `json:"line"`
	Number   string `json:"number"`
	Index    string `json:"index"`
	Anchor   string `json:"anchor"`
}

// ContentPayload carries the content of a single revision.
// For format "text" the body may be truncated at the configured character
// budget; ExtractChars always equals the length of Body as returned.
type ContentPayload struct {
	Format       string    `json:"format"`
	Body         string    `json:"body"`
	Truncated    bool      `json:"truncated"`
	ExtractChars int       `json:"extract_chars"`
	Sections     []Section `json:"sections,omitempty"`
}

// AsOfInput echoes the request that produced a result.
type AsOfInput struct {
	QueryOrURL string `json:"query_or_url"`
	TQuery     string `json:"t_query,omitempty"`
}

// AsOfResult is the aggregate returned by the read-as-of pipeline.
// Pinned distinguishes "revision pinned directly by oldid" from "resolved
// temporally"; callers must not conflate the two.
type AsOfResult struct {
	Input    AsOfInput        `json:"input"`
	Resolved ResolvedRevision `json:"resolved"`
	Pinned   bool             `json:"pinned"`
	Content  ContentPayload   `json:"content"`
}

// apiError is the error object the Action API embeds in 200 responses.
type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

// revisionsResponse is the formatversion=2 shape of a prop=revisions query.
type revisionsResponse struct {
	Error *apiError `json:"error,omitempty"`
	Query struct {
		Pages []struct {
			PageID    int64  `json:"pageid"`
			Title     string `json:"title"`
			Missing   bool   `json:"missing"`
			Revisions []struct {
				RevID     int64  `json:"revid"`
				ParentID  int64  `json:"parentid"`
				Timestamp string `json:"timestamp"`
			} `json:"revisions"`
		} `json:"pages"`
	} `json:"query"`
}

// parseResponse is the formatversion=2 shape of an action=parse call.
type parseResponse struct {
	Error *apiError `json:"error,omitempty"`
	Parse struct {
		Title    string    `json:"title"`
		PageID   int64     `json:"pageid"`
		RevID    int64     `json:"revid"`
		Text     string    `json:"text"`
		Sections []Section `json:"sections"`
	} `json:"parse"`
}

// extractResponse is the formatversion=2 shape of a prop=extracts query.
type extractResponse struct {
	Error *apiError `json:"error,omitempty"`
	Query struct {
		Pages []struct {
			PageID  int64  `json:"pageid"`
			Title   string `json:"title"`
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}
