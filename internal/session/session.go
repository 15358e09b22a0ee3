// Package session defines the typed request/response vocabulary between
// the presentation layer and the host work (diff loading, generation),
// plus the single in-flight guard for generation requests.
package session

import (
	"sync"

	"github.com/yanjianzhang/CommitAIFlow/internal/models"
)

// RequestKind is the closed set of host request tags
type RequestKind int

const (
	// RequestGenerate asks for a message from the current staged diff
	RequestGenerate RequestKind = iota
	// RequestGenerateFromDiff asks for a message from caller-supplied diff text
	RequestGenerateFromDiff
	// RequestLoadDiff asks for a fresh diff without generating
	RequestLoadDiff
)

// ResponseKind is the closed set of host response tags
type ResponseKind int

const (
	// ResponseMessageReady carries a sanitized commit message
	ResponseMessageReady ResponseKind = iota
	// ResponseDiffReady carries a loaded diff
	ResponseDiffReady
	// ResponseError carries a host failure
	ResponseError
)

// Request is one host request. Diff is set only for RequestGenerateFromDiff.
type Request struct {
	Kind RequestKind
	Diff string
}

// Response is one host response. Exactly one payload field is meaningful
// for a given Kind.
type Response struct {
	Kind    ResponseKind
	Message string
	Diff    models.DiffSource
	Err     error
}

// Session guards generation so only one request runs at a time. New
// requests arriving while one is in flight are ignored, not queued.
type Session struct {
	mu       sync.Mutex
	inFlight bool
}

// New creates an idle session
func New() *Session {
	return &Session{}
}

// Begin marks a generation as started. It reports false, leaving the
// session untouched, when one is already running.
func (s *Session) Begin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return false
	}
	s.inFlight = true
	return true
}

// End marks the running generation as finished
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
}

// InFlight reports whether a generation is currently running
func (s *Session) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}
