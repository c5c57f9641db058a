// Package infra provides shared infrastructure for talking to the Wikipedia
// Action API, currently a circuit breaker that fails fast when the API is
// unresponsive. Requests are never retried internally; the breaker only
// decides whether a fresh request is allowed to go out at all.
package infra

import (
	"sync"
	"time"
)

// BreakerState represents the current state of the circuit breaker.
type BreakerState int

const (
	BreakerClosed   BreakerState = iota // normal operation
	BreakerOpen                         // failing fast, rejecting requests
	BreakerHalfOpen                     // probing whether the API recovered
)

func (s BreakerState) String() string {
	switch s {
	case BreakerClosed:
		return "closed"
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// BreakerSettings configures a CircuitBreaker.
type BreakerSettings struct {
	FailureThreshold int           // consecutive failures before opening
	ResetTimeout     time.Duration // wait before probing recovery
	HalfOpenMax      int           // probe requests allowed while half-open
}

// DefaultBreakerSettings are the settings used for the Wikipedia API.
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		FailureThreshold: 5,
		ResetTimeout:     30 * time.Second,
		HalfOpenMax:      2,
	}
}

// CircuitBreaker tracks consecutive upstream failures and rejects requests
// once a threshold is crossed, until a reset timeout elapses.
type CircuitBreaker struct {
	mu       sync.RWMutex
	settings BreakerSettings

	state            BreakerState
	consecutiveFails int
	lastFailure      time.Time
	halfOpenCount    int
}

// NewCircuitBreaker creates a circuit breaker with the given settings.
// Zero-valued settings fall back to DefaultBreakerSettings.
func NewCircuitBreaker(settings BreakerSettings) *CircuitBreaker {
	def := DefaultBreakerSettings()
	if settings.FailureThreshold <= 0 {
		settings.FailureThreshold = def.FailureThreshold
	}
	if settings.ResetTimeout <= 0 {
		settings.ResetTimeout = def.ResetTimeout
	}
	if settings.HalfOpenMax <= 0 {
		settings.HalfOpenMax = def.HalfOpenMax
	}
	return &CircuitBreaker{settings: settings, state: BreakerClosed}
}

// Allow reports whether a request may proceed right now.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case BreakerClosed:
		return true

	case BreakerOpen:
		if time.Since(cb.lastFailure) > cb.settings.ResetTimeout {
			cb.state = BreakerHalfOpen
			cb.halfOpenCount = 1
			return true
		}
		return false

	case BreakerHalfOpen:
		if cb.halfOpenCount < cb.settings.HalfOpenMax {
			cb.halfOpenCount++
			return true
		}
		return false

	default:
		return false
	}
}

// RecordSuccess resets the failure count and closes a half-open circuit.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.consecutiveFails = 0
	if cb.state == BreakerHalfOpen {
		cb.state = BreakerClosed
		cb.halfOpenCount = 0
	}
}

// RecordFailure counts a failed request, opening the circuit at the threshold.
// Any failure while half-open reopens immediately.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.consecutiveFails++
	cb.lastFailure = time.Now()

	switch cb.state {
	case BreakerClosed:
		if cb.consecutiveFails >= cb.settings.FailureThreshold {
			cb.state = BreakerOpen
		}
	case BreakerHalfOpen:
		cb.state = BreakerOpen
		cb.halfOpenCount = 0
	}
}

// State returns the current breaker state.
func (cb *CircuitBreaker) State() BreakerState {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// Stats returns a snapshot of the breaker for logging and diagnostics.
func (cb *CircuitBreaker) Stats() BreakerStats {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return BreakerStats{
		State:            cb.state.String(),
		ConsecutiveFails: cb.consecutiveFails,
		LastFailure:      cb.lastFailure,
		RetryAt:          cb.lastFailure.Add(cb.settings.ResetTimeout),
	}
}

// BreakerStats is a point-in-time snapshot of the circuit breaker.
type BreakerStats struct {
	State            string    `json:"state"`
	ConsecutiveFails int       `json:"consecutive_failures"`
	LastFailure      time.Time `json:"last_failure,omitempty"`
	RetryAt          time.Time `json:"retry_at,omitempty"`
}

// ErrCircuitOpen is returned when a request is rejected by an open circuit.
type ErrCircuitOpen struct {
	RetryAt  time.Time
	Failures int
}

func (e *ErrCircuitOpen) Error() string {
	return "circuit breaker is open: the Wikipedia API is failing, retry after " + e.RetryAt.Format(time.RFC3339)
}
