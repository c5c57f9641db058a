package wikipedia

import (
	"regexp"
	"strings"
	"time"
)

var dateOnlyRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// NormalizeTimestamp converts a user-supplied date/time into the canonical
// upper bound for revision search. A bare calendar date is pinned to
// 23:59:59 UTC of that day, so any revision made during the day counts.
// Inputs that already carry a zone pass through unchanged; anything else is
// assumed UTC. Pure; syntactically invalid results propagate to the resolver
// as an upstream rejection.
func NormalizeTimestamp(raw string) string {
	s := strings.TrimSpace(raw)

	if dateOnlyRegex.MatchString(s) {
		return s + "T23:59:59Z"
	}

	if strings.HasSuffix(s, "Z") {
		return s
	}

	// An explicit offset sits after the time separator, e.g. +02:00 or -05:00.
	if i := strings.IndexByte(s, 'T'); i >= 0 && strings.ContainsAny(s[i+1:], "+-") {
		return s
	}

	return s + "Z"
}

// DefaultTimestamp returns the fallback t_query for the lenient policy: the
// current UTC calendar date. Combined with NormalizeTimestamp's end-of-day
// pinning this selects the latest revision with a timestamp at or before now.
func DefaultTimestamp(now time.Time) string {
	return now.UTC().Format("2006-01-02")
}
