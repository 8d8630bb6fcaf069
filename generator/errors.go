package generator

import (
	"errors"
	"fmt"
)

// Guard errors returned by session transitions.
var (
	// ErrBusy rejects a generate/regenerate request while a cycle is in flight.
	ErrBusy = errors.New("a generation cycle is already in flight")
	// ErrContextIncomplete rejects generation until all three context fields are filled.
	ErrContextIncomplete = errors.New("fill Introduction, Previous Works, and Methods first")
	// ErrEmptyDraft rejects sending an empty draft to the discussion.
	ErrEmptyDraft = errors.New("no draft yet")
	// ErrEmptyComment rejects a blank discussion comment.
	ErrEmptyComment = errors.New("empty comment")
	// ErrNoSuchItem rejects a Likert edit with an out-of-range index.
	ErrNoSuchItem = errors.New("no such item")
)

// TransportError wraps a network-level failure reaching the relay or provider.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UpstreamError is a non-success response from the relay or provider.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Body)
}

// ParseError is a structurally malformed provider payload, distinct from
// transport and upstream failures. The response parser itself never produces
// one; this covers the missing choices[0].message.content case.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed completion payload: %s", e.Reason)
}

// ConfigError is a missing credential or setting. The relay surfaces it to
// remote callers as a status-500 UpstreamError.
type ConfigError struct {
	Missing string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing %s", e.Missing)
}
