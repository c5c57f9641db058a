package wikipedia

import (
	"os"
	"strconv"
	"time"
)

const (
	// DefaultAPIURL is the English Wikipedia Action API endpoint.
	DefaultAPIURL = "https://en.wikipedia.org/w/api.php"

	// DefaultIndexURL is the base for oldid permalinks.
	DefaultIndexURL = "https://en.wikipedia.org/w/index.php"

	// DefaultUserAgent identifies the client per Wikimedia's User-Agent policy.
	// Override with WIKIPEDIA_USER_AGENT and include a contact address.
	DefaultUserAgent = "wikipedia-asof-mcp-server/1.0 (github.com/patqa/wikipedia-asof-mcp-server)"

	// DefaultMaxExtractChars is the character budget for plain-text extracts.
	DefaultMaxExtractChars = 25000

	// DefaultTimeout bounds each upstream call.
	DefaultTimeout = 30 * time.Second
)

// Config holds Wikipedia connection settings. It is built once at startup and
// injected into the client; the pipeline itself never reads the environment.
type Config struct {
	// APIURL is the Action API endpoint.
	APIURL string

	// IndexURL is the permalink base; oldid permalinks are IndexURL?oldid=N.
	IndexURL string

	// UserAgent identifies the client to Wikipedia.
	UserAgent string

	// Timeout for API requests.
	Timeout time.Duration

	// MaxExtractChars is the truncation budget for plain-text extracts.
	MaxExtractChars int

	// RequireTimestamp makes t_query mandatory for unpinned references
	// instead of defaulting to the current UTC date.
	RequireTimestamp bool
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		APIURL:          DefaultAPIURL,
		IndexURL:        DefaultIndexURL,
		UserAgent:       DefaultUserAgent,
		Timeout:         DefaultTimeout,
		MaxExtractChars: DefaultMaxExtractChars,
	}
}

// LoadConfig loads configuration from environment variables, falling back to
// defaults for anything unset.
func LoadConfig() (*Config, error) {
	config := DefaultConfig()

	if v := os.Getenv("WIKIPEDIA_API_URL"); v != "" {
		config.APIURL = v
	}
	if v := os.Getenv("WIKIPEDIA_INDEX_URL"); v != "" {
		config.IndexURL = v
	}
	if v := os.Getenv("WIKIPEDIA_USER_AGENT"); v != "" {
		config.UserAgent = v
	}
	if v := os.Getenv("WIKIPEDIA_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.Timeout = d
		}
	}
	if v := os.Getenv("WIKIPEDIA_MAX_EXTRACT_CHARS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.MaxExtractChars = n
		}
	}
	if v := os.Getenv("WIKIPEDIA_REQUIRE_TIMESTAMP"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.RequireTimestamp = b
		}
	}

	return config, nil
}
