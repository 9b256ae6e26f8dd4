package ai

import "errors"

// ErrUnavailable indicates the backend could not produce a usable result.
// It is the designed trigger for the heuristic fallback, never a fault.
var ErrUnavailable = errors.New("ai backend unavailable")
