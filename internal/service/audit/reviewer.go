// Package audit defines the interface for compliance-review collaborators.
package audit

import "context"

// Reviewer classifies a transcript for compliance issues and returns the
// verdict as a JSON document.
type Reviewer interface {
	Review(ctx context.Context, transcript string) (string, error)
}
