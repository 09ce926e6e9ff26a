package domain

import "errors"

var (
	// ErrProductNotFound signals a missing product record.
	ErrProductNotFound = errors.New("product not found")
	// ErrEmptyQuery signals an empty or whitespace-only search query.
	ErrEmptyQuery = errors.New("query cannot be empty")
	// ErrInvalidProduct signals a product record failing validation.
	ErrInvalidProduct = errors.New("invalid product")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrIndexNotReady signals a search before the first index build.
	ErrIndexNotReady = errors.New("search index not built")
)
