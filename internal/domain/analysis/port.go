package analysis

import "context"

// Classifier port: one structured classification call against the remote model.
// Any error triggers the deterministic fallback in the application layer.
type Classifier interface {
	Classify(ctx context.Context, text string) (Result, error)
}
