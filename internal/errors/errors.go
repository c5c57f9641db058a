// Package errors provides shared error types for the Wikipedia as-of pipeline.
package errors

import (
	"errors"
	"fmt"
)

// InvalidReferenceError indicates an input string that yields neither a page
// title nor an oldid.
type InvalidReferenceError struct {
	Input  string // the raw query_or_url value
	Reason string // why it could not be classified
}

func (e *InvalidReferenceError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid page reference %q: %s", e.Input, e.Reason)
	}
	return fmt.Sprintf("invalid page reference %q", e.Input)
}

// NewInvalidReferenceError creates an InvalidReferenceError.
func NewInvalidReferenceError(input, reason string) *InvalidReferenceError {
	return &InvalidReferenceError{Input: input, Reason: reason}
}

// MissingTimestampError indicates that no as-of timestamp was supplied while
// the server runs in strict mode and the reference is not pinned to an oldid.
type MissingTimestampError struct {
	Title string
}

func (e *MissingTimestampError) Error() string {
	return fmt.Sprintf("t_query is required when no oldid is provided (title: %q)", e.Title)
}

// NoRevisionError indicates that no revision of the page exists at or before
// the query instant. Distinct from transport failures: the data is absent.
type NoRevisionError struct {
	Title   string
	Instant string // normalized upper bound
}

func (e *NoRevisionError) Error() string {
	return fmt.Sprintf("no revision of %q at or before %s", e.Title, e.Instant)
}

// ForbiddenError indicates the upstream API rejected the request, typically
// because of a missing or non-descriptive User-Agent header. Operator-fixable,
// so the upstream detail is carried verbatim.
type ForbiddenError struct {
	Operation string // "resolve" or "fetch"
	Detail    string // upstream response body or message
}

func (e *ForbiddenError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("upstream rejected %s request (403): %s", e.Operation, e.Detail)
	}
	return fmt.Sprintf("upstream rejected %s request (403): check the configured User-Agent", e.Operation)
}

// UpstreamError indicates a transport-level failure or an unexpected upstream
// status. Retryable at the caller's discretion; never retried internally.
type UpstreamError struct {
	Operation  string
	StatusCode int // 0 for transport failures
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("upstream %s request failed with status %d: %v", e.Operation, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("upstream %s request failed: %v", e.Operation, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// ContentFetchError indicates the content request for a resolved oldid failed.
// Fatal for the request: there is no partial-content fallback.
type ContentFetchError struct {
	OldID  int64
	Format string
	Err    error
}

func (e *ContentFetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s content for oldid %d: %v", e.Format, e.OldID, e.Err)
}

func (e *ContentFetchError) Unwrap() error {
	return e.Err
}

// IsInvalidReference returns true if the error is an InvalidReferenceError.
func IsInvalidReference(err error) bool {
	var target *InvalidReferenceError
	return errors.As(err, &target)
}

// IsMissingTimestamp returns true if the error is a MissingTimestampError.
func IsMissingTimestamp(err error) bool {
	var target *MissingTimestampError
	return errors.As(err, &target)
}

// IsNoRevision returns true if the error is a NoRevisionError.
func IsNoRevision(err error) bool {
	var target *NoRevisionError
	return errors.As(err, &target)
}

// IsForbidden returns true if the error is a ForbiddenError.
func IsForbidden(err error) bool {
	var target *ForbiddenError
	return errors.As(err, &target)
}

// IsUpstream returns true if the error is an UpstreamError.
func IsUpstream(err error) bool {
	var target *UpstreamError
	return errors.As(err, &target)
}

// IsContentFetch returns true if the error is a ContentFetchError.
func IsContentFetch(err error) bool {
	var target *ContentFetchError
	return errors.As(err, &target)
}
