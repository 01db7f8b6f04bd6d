// Package mock provides a canned compliance reviewer for testing without
// API credentials.
package mock

import (
	"context"
	"sync"
)

// DefaultVerdict is returned when no verdict has been configured.
const DefaultVerdict = `{"severity":"Low","issues_found":[],"summary":"No compliance issues detected. Transcript reviewed in full."}`

// Reviewer implements audit.Reviewer with a fixed verdict or error.
type Reviewer struct {
	mu       sync.Mutex
	verdict  string
	err      error
	received []string
}

// New creates a mock reviewer returning DefaultVerdict.
func New() *Reviewer {
	return &Reviewer{verdict: DefaultVerdict}
}

// SetVerdict changes the verdict returned by Review.
func (r *Reviewer) SetVerdict(verdict string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.verdict = verdict
}

// Fail makes Review return err.
func (r *Reviewer) Fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Received returns the transcripts passed to Review so far.
func (r *Reviewer) Received() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.received))
	copy(out, r.received)
	return out
}

// Review implements audit.Reviewer.
func (r *Reviewer) Review(_ context.Context, transcript string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return "", r.err
	}
	r.received = append(r.received, transcript)
	return r.verdict, nil
}
