package ai

import "context"

// Client extracts and analyzes audit questions from document text using a
// generative backend. Every failure mode (missing credentials, transport,
// malformed response) is reported as an error wrapping ErrUnavailable, so
// callers degrade to the heuristic path without per-error branching.
type Client interface {
	Extract(ctx context.Context, text string) ([]RawQuestion, error)
}
