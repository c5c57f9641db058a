package wikipedia

import (
	"fmt"

	apierrors "github.com/patqa/wikipedia-asof-mcp-server/internal/errors"
)

// MaxQueryLength is the maximum allowed length for query_or_url and title
// inputs. MediaWiki titles are capped at 255 bytes; URLs get headroom.
const MaxQueryLength = 2048

// ValidateQueryOrURL validates the free-form page reference input.
func ValidateQueryOrURL(queryOrURL string) error {
	if queryOrURL == "" {
		return apierrors.NewInvalidReferenceError(queryOrURL, "query_or_url is required")
	}
	if len(queryOrURL) > MaxQueryLength {
		return apierrors.NewInvalidReferenceError(queryOrURL[:64]+"...",
			fmt.Sprintf("exceeds maximum length of %d characters", MaxQueryLength))
	}
	return nil
}

// ValidateTitle validates a bare page title input.
func ValidateTitle(title string) error {
	if title == "" {
		return fmt.Errorf("title is required")
	}
	if len(title) > MaxQueryLength {
		return fmt.Errorf("title exceeds maximum length of %d characters", MaxQueryLength)
	}
	return nil
}

// NormalizeFormat validates the requested content format and applies the
// default.
func NormalizeFormat(format string) (string, error) {
	switch format {
	case "":
		return FormatHTML, nil
	case FormatHTML, FormatText:
		return format, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be %q or %q", format, FormatHTML, FormatText)
	}
}
