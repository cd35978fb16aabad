package embedding

import "errors"

// ErrUnavailable marks a provider that could not be reached or answered
// with a non-success status. Callers surface it, never retry silently.
var ErrUnavailable = errors.New("embedding provider unavailable")

// EmbeddingProvider maps a text string to a fixed-length vector.
type EmbeddingProvider interface {
	Generate(text string, taskType string) (*EmbeddingResponse, error)
}
