package wikipedia

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	apierrors "github.com/patqa/wikipedia-asof-mcp-server/internal/errors"
)

var urlSchemeRegex = regexp.MustCompile(`^https?://`)

// ParseReference classifies an input string as a bare title, a URL carrying
// an oldid, or a URL carrying a title, and returns the normalized reference.
// An oldid in the URL takes precedence over any title also present: the oldid
// alone determines content.
func ParseReference(queryOrURL string) (Reference, error) {
	input := strings.TrimSpace(queryOrURL)
	if input == "" {
		return Reference{}, apierrors.NewInvalidReferenceError(queryOrURL, "empty input")
	}

	if !urlSchemeRegex.MatchString(input) {
		// Plain title.
		return Reference{Title: input}, nil
	}

	u, err := url.Parse(input)
	if err != nil {
		return Reference{}, apierrors.NewInvalidReferenceError(input, "not a parseable URL")
	}
	query := u.Query()

	if raw := query.Get("oldid"); raw != "" {
		if oldid, err := strconv.ParseInt(raw, 10, 64); err == nil && oldid > 0 {
			return Reference{OldID: oldid}, nil
		}
		// Unparseable oldid falls through to the title forms.
	}

	if idx := strings.Index(u.Path, "/wiki/"); idx >= 0 {
		raw := u.Path[idx+len("/wiki/"):]
		if title := decodeTitle(raw); title != "" {
			return Reference{Title: title}, nil
		}
	}

	if raw := query.Get("title"); raw != "" {
		if title := decodeTitle(raw); title != "" {
			return Reference{Title: title}, nil
		}
	}

	return Reference{}, apierrors.NewInvalidReferenceError(input, "URL carries neither an article path, a title parameter, nor an oldid")
}

// decodeTitle percent-decodes a URL title segment and applies MediaWiki's
// underscore-to-space convention.
func decodeTitle(raw string) string {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		decoded = raw
	}
	return strings.TrimSpace(strings.ReplaceAll(decoded, "_", " "))
}
