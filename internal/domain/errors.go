package domain

import "errors"

var (
	// ErrValidation signals malformed or missing required input.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound signals a missing product record.
	ErrNotFound = errors.New("product not found")
	// ErrEmbeddingProvider signals an embedding provider failure.
	ErrEmbeddingProvider = errors.New("embedding provider error")
	// ErrDimensionMismatch signals an embedding vector whose length does not
	// match the configured index dimensionality. Treated as a fatal
	// configuration error, never retried.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	// ErrIndexUnavailable signals that the backing store (vector index or
	// record store) is unreachable.
	ErrIndexUnavailable = errors.New("index unavailable")
)
